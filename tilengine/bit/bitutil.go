package bit

// Combine combines two 16 bit values into a single 32 bit value.
// The high half will be the most significant one.
func Combine(high, low uint16) uint32 {
	return (uint32(high) << 16) | uint32(low)
}

// Low returns the low part of a 32 bit number.
func Low(value uint32) uint16 {
	return uint16(value)
}

// High returns the high part of a 32 bit number.
func High(value uint32) uint16 {
	return uint16(value >> 16)
}

// CheckedAdd adds two 8 bit unsigned values and detects if an overflow happened.
func CheckedAdd(a, b uint8) (result uint8, overflow bool) {
	highBits := (uint16(a) + uint16(b)) & 0xFF00
	return a + b, highBits > 0
}

// CheckedSub subtracts two 8 bit unsigned values and detects if a borrow happened.
func CheckedSub(a, b uint8) (result uint8, borrow bool) {
	highBits := (uint16(a) - uint16(b)) & 0xFF00
	return a - b, highBits > 0
}

// SaturatingAdd adds two color channels, clamping at 255.
func SaturatingAdd(a, b uint8) uint8 {
	if result, overflow := CheckedAdd(a, b); !overflow {
		return result
	}
	return 0xFF
}

// SaturatingSub subtracts two color channels, clamping at 0.
func SaturatingSub(a, b uint8) uint8 {
	if result, borrow := CheckedSub(a, b); !borrow {
		return result
	}
	return 0
}

// Clamp limits an integer to the 0-255 range of a color channel.
func Clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 0xFF {
		return 0xFF
	}
	return uint8(v)
}

// IsSet will check if the bit at the specified index is set to 1 or not.
func IsSet(index uint8, value uint16) bool {
	return ((value >> index) & 1) == 1
}

// Set will return the passed value with the bit at the specified index set to 1.
func Set(index uint8, value uint16) uint16 {
	return value | (1 << index)
}

// Clear will return the passed value with the bit at the specified index set to 0.
func Clear(index uint8, value uint16) uint16 {
	return value &^ (1 << index)
}

// Toggle sets or clears the given mask depending on enable.
func Toggle(value, mask uint16, enable bool) uint16 {
	if enable {
		return value | mask
	}
	return value &^ mask
}

// ExtractBits extracts bits from highBit to lowBit (inclusive)
// Example: ExtractBits(0b11010110, 6, 4) -> 0b101 (extracts bits 6, 5, 4)
func ExtractBits(value uint32, highBit, lowBit uint8) uint32 {
	width := highBit - lowBit + 1
	mask := uint32((1 << width) - 1)
	return (value >> lowBit) & mask
}
