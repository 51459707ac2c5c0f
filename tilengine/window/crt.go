package window

import (
	"image"

	"github.com/valerio/go-tilengine/tilengine/display"
	"github.com/valerio/go-tilengine/tilengine/video"
)

// Overlay selects the mask the CRT effect lays over the frame.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayShadowMask
	OverlayAperture
	OverlayScanlines
	OverlayCustom
)

// CRT holds the parameters of the CRT effect. The brightness of each
// channel is mapped through two linear segments, (0,V0)-(Threshold,V1)
// and (Threshold,V2)-(255,V3), to build a glow image that is added on top
// of the masked frame.
type CRT struct {
	Overlay       Overlay
	OverlayFactor uint8
	Threshold     uint8
	V0, V1        uint8
	V2, V3        uint8
	Blur          bool
	GlowFactor    uint8
}

// DefaultCRT is the effect toggled with the CRT input.
var DefaultCRT = CRT{
	Overlay:       OverlayAperture,
	OverlayFactor: 128,
	Threshold:     192,
	V0:            0,
	V1:            64,
	V2:            64,
	V3:            128,
	GlowFactor:    255,
}

// effects post-processes frames into an output buffer.
type effects struct {
	crt     CRT
	crtOn   bool
	blur    bool
	custom  image.Image
	out     *video.FrameBuffer
	glow    []uint32
	blurred []uint32
}

func (fx *effects) active() bool {
	return fx.crtOn || fx.blur
}

// apply returns src when no effect is enabled, or the processed copy. Both
// effects include the horizontal blur.
func (fx *effects) apply(src *video.FrameBuffer) *video.FrameBuffer {
	if !fx.active() {
		return src
	}
	w, h := src.Width(), src.Height()
	if fx.out == nil || fx.out.Width() != w || fx.out.Height() != h {
		fx.out = video.NewFrameBuffer(w, h)
		fx.glow = make([]uint32, w)
		fx.blurred = make([]uint32, w)
	}

	for y := 0; y < h; y++ {
		dst := fx.out.Row(y)
		blurRow(src.Row(y), dst)
		if !fx.crtOn {
			continue
		}
		fx.glowRow(dst)
		for x := range dst {
			dst[x] = addScaled(fx.mask(dst[x], x, y), fx.glow[x], fx.crt.GlowFactor)
		}
	}
	return fx.out
}

// blurRow mixes each pixel with its horizontal neighbours, 1-2-1.
func blurRow(src, dst []uint32) {
	last := len(src) - 1
	for x := range src {
		l, r := src[max(x-1, 0)], src[min(x+1, last)]
		dst[x] = mixChannels(l, src[x], r)
	}
}

func mixChannels(l, c, r uint32) uint32 {
	var out uint32 = uint32(display.FullAlpha) << display.ARGBAShift
	for _, shift := range [...]uint{display.ARGBRShift, display.ARGBGShift, display.ARGBBShift} {
		v := (l>>shift&display.ColorMask + 2*(c>>shift&display.ColorMask) + r>>shift&display.ColorMask) / 4
		out |= v << shift
	}
	return out
}

// glowRow maps the brightness of row into fx.glow, softened with a
// horizontal blur when requested.
func (fx *effects) glowRow(row []uint32) {
	target := fx.glow
	if fx.crt.Blur {
		target = fx.blurred
	}
	for x, c := range row {
		var out uint32 = uint32(display.FullAlpha) << display.ARGBAShift
		for _, shift := range [...]uint{display.ARGBRShift, display.ARGBGShift, display.ARGBBShift} {
			out |= uint32(fx.crt.brightness(uint8(c>>shift))) << shift
		}
		target[x] = out
	}
	if fx.crt.Blur {
		blurRow(fx.blurred, fx.glow)
	}
}

func (c CRT) brightness(v uint8) uint8 {
	t := int(c.Threshold)
	if int(v) < t || t == 255 {
		if t == 0 {
			return c.V1
		}
		return uint8(int(c.V0) + (int(c.V1)-int(c.V0))*int(v)/t)
	}
	return uint8(int(c.V2) + (int(c.V3)-int(c.V2))*(int(v)-t)/(255-t))
}

// maskValue returns the overlay transmission of one channel at (x, y).
func (fx *effects) maskValue(x, y int, shift uint) uint32 {
	channel := 0
	switch shift {
	case display.ARGBGShift:
		channel = 1
	case display.ARGBBShift:
		channel = 2
	}
	switch fx.crt.Overlay {
	case OverlayAperture:
		if x%3 == channel {
			return 255
		}
		return 64
	case OverlayShadowMask:
		offset := (y / 2) % 2
		if (x+offset)%3 != channel {
			return 64
		}
		if y%2 == 0 {
			return 255
		}
		return 160
	case OverlayScanlines:
		if y%2 == 0 {
			return 255
		}
		return 0
	case OverlayCustom:
		if fx.custom == nil {
			return 255
		}
		b := fx.custom.Bounds()
		r, g, bl, _ := fx.custom.At(b.Min.X+x%b.Dx(), b.Min.Y+y%b.Dy()).RGBA()
		return [...]uint32{r >> 8, g >> 8, bl >> 8}[channel]
	}
	return 255
}

// mask darkens c by the overlay, weighted by OverlayFactor.
func (fx *effects) mask(c uint32, x, y int) uint32 {
	if fx.crt.Overlay == OverlayNone || fx.crt.OverlayFactor == 0 {
		return c
	}
	factor := uint32(fx.crt.OverlayFactor)
	var out uint32 = uint32(display.FullAlpha) << display.ARGBAShift
	for _, shift := range [...]uint{display.ARGBRShift, display.ARGBGShift, display.ARGBBShift} {
		m := fx.maskValue(x, y, shift)
		transmission := 255 - factor*(255-m)/255
		v := (c >> shift & display.ColorMask) * transmission / 255
		out |= v << shift
	}
	return out
}

// addScaled adds glow*factor/255 to c, saturating each channel.
func addScaled(c, glow uint32, factor uint8) uint32 {
	if factor == 0 {
		return c
	}
	var out uint32 = uint32(display.FullAlpha) << display.ARGBAShift
	for _, shift := range [...]uint{display.ARGBRShift, display.ARGBGShift, display.ARGBBShift} {
		v := c>>shift&display.ColorMask + (glow>>shift&display.ColorMask)*uint32(factor)/255
		out |= min(v, display.ColorMask) << shift
	}
	return out
}
