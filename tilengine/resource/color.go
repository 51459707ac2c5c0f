package resource

import "github.com/valerio/go-tilengine/tilengine/display"

// RGB packs a color as 0xAARRGGBB with full alpha.
func RGB(r, g, b uint8) uint32 {
	return uint32(display.FullAlpha)<<display.ARGBAShift |
		uint32(r)<<display.ARGBRShift |
		uint32(g)<<display.ARGBGShift |
		uint32(b)<<display.ARGBBShift
}

// Channels unpacks the red, green and blue channels of a packed color.
func Channels(c uint32) (r, g, b uint8) {
	return uint8(c >> display.ARGBRShift), uint8(c >> display.ARGBGShift), uint8(c >> display.ARGBBShift)
}
