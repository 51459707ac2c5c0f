package display

// ARGB pixel format constants. Palettes and framebuffers store colors as
// 0xAARRGGBB words.
const (
	// BytesPerPixel is the number of bytes per framebuffer pixel
	BytesPerPixel = 4
	// ARGBAShift is the bit shift for the alpha component
	ARGBAShift = 24
	// ARGBRShift is the bit shift for the red component
	ARGBRShift = 16
	// ARGBGShift is the bit shift for the green component
	ARGBGShift = 8
	// ARGBBShift is the bit shift for the blue component
	ARGBBShift = 0
	// ColorMask is the mask for extracting color components
	ColorMask = 0xFF
	// FullAlpha is the alpha value for fully opaque pixels
	FullAlpha = 0xFF
)

// Default engine geometry used by the demos and the CLI
const (
	// DefaultWidth is the default horizontal resolution
	DefaultWidth = 400
	// DefaultHeight is the default vertical resolution
	DefaultHeight = 240
	// DefaultPixelScale is the default window scaling factor
	DefaultPixelScale = 2
	// MaxPixelScale is the largest scale selectable with window flags
	MaxPixelScale = 5
)

// Test pattern constants
const (
	// TestPatternCount is the number of available test patterns
	TestPatternCount = 4
	// TestPatternTileSize is the size of tiles for checkerboard and diagonal patterns
	TestPatternTileSize = 8
	// TestPatternStripeWidth is the width of stripes in the stripe pattern
	TestPatternStripeWidth = 4
)

// UnpackRGBA splits a 0xAARRGGBB word into its components.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c >> ARGBRShift), uint8(c >> ARGBGShift), uint8(c >> ARGBBShift), uint8(c >> ARGBAShift)
}
