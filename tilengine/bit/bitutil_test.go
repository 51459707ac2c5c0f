package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		high, low uint16
		expected  uint32
	}{
		{0xABCD, 0x1234, 0xABCD1234},
		{0x0000, 0x0000, 0x00000000},
		{0xFFFF, 0xFFFF, 0xFFFFFFFF},
		{0x8000, 0x0001, 0x80000001},
	}

	for _, tt := range tests {
		result := Combine(tt.high, tt.low)
		assert.Equal(t, tt.expected, result)
		assert.Equal(t, tt.high, High(result))
		assert.Equal(t, tt.low, Low(result))
	}
}

func TestCheckedAdd(t *testing.T) {
	tests := []struct {
		a, b             uint8
		expectedResult   uint8
		expectedOverflow bool
	}{
		{0b11111111, 0b00000001, 0, true},
		{0b11111111, 0b11111111, 254, true},
		{0b00000001, 0b00000001, 2, false},
		{0b10000000, 0b00000000, 128, false},
	}

	for _, tt := range tests {
		result, overflow := CheckedAdd(tt.a, tt.b)
		assert.Equal(t, tt.expectedResult, result)
		assert.Equal(t, tt.expectedOverflow, overflow)
	}
}

func TestCheckedSub(t *testing.T) {
	tests := []struct {
		a, b           uint8
		expectedResult uint8
		expectedBorrow bool
	}{
		{0b00000000, 0b00000001, 255, true},
		{0b00000001, 0b00000001, 0, false},
		{0b10000000, 0b00000000, 128, false},
		{0b11111111, 0b11111111, 0, false},
	}

	for _, tt := range tests {
		result, borrow := CheckedSub(tt.a, tt.b)
		assert.Equal(t, tt.expectedResult, result)
		assert.Equal(t, tt.expectedBorrow, borrow)
	}
}

func TestSaturating(t *testing.T) {
	assert.Equal(t, uint8(255), SaturatingAdd(200, 100))
	assert.Equal(t, uint8(150), SaturatingAdd(100, 50))
	assert.Equal(t, uint8(0), SaturatingSub(50, 100))
	assert.Equal(t, uint8(50), SaturatingSub(100, 50))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, uint8(0), Clamp(-20))
	assert.Equal(t, uint8(255), Clamp(300))
	assert.Equal(t, uint8(128), Clamp(128))
}

func TestFlagBits(t *testing.T) {
	var flags uint16

	flags = Set(15, flags)
	assert.True(t, IsSet(15, flags))
	assert.Equal(t, uint16(0x8000), flags)

	flags = Set(12, flags)
	flags = Clear(15, flags)
	assert.False(t, IsSet(15, flags))
	assert.Equal(t, uint16(0x1000), flags)

	assert.Equal(t, uint16(0x3000), Toggle(flags, 0x2000, true))
	assert.Equal(t, uint16(0x0000), Toggle(flags, 0x1000, false))
}

func TestExtractBits(t *testing.T) {
	assert.Equal(t, uint32(0b101), ExtractBits(0b11010110, 6, 4))
	assert.Equal(t, uint32(0x7), ExtractBits(0xE0000000, 31, 29))
}
