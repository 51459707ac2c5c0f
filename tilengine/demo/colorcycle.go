package demo

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// palette layout of the color cycle picture
const (
	ccSky       = 1  // 32 entries of sky gradient
	ccRock      = 40 // 8 entries of cliff shades
	ccFall      = 64 // 16 entries cycled up
	ccPool      = 80 // 16 entries cycled down
	ccSkyCount  = 32
	ccRockCount = 8
	ccFallCount = 16
	ccPoolCount = 16

	// seconds of a full day to night fade
	ccFadeTime = 6
)

// ColorCycle animates a static bitmap background only through its palette:
// a waterfall and its pool cycle in opposite directions while the whole
// palette fades between day and night colors.
type ColorCycle struct {
	bag
	e      *tilengine.Engine
	bitmap *resource.Bitmap

	day, night, mixed *resource.Palette

	fade    *gween.Tween
	reverse bool
}

func (c *ColorCycle) Name() string        { return "colorcycle" }
func (c *ColorCycle) Description() string { return "bitmap layer animated by palette cycling" }

func (c *ColorCycle) Setup(e *tilengine.Engine) error {
	if err := checkSlots(e); err != nil {
		return err
	}
	c.e = e
	w, h := e.Width(), e.Height()

	bmp, err := resource.NewBitmap(w, h, 8)
	if err != nil {
		return err
	}
	c.add(bmp)
	c.bitmap = bmp

	if c.day, err = c.palette(0xFF3070D0, 0xFFA0D0F0, 0xFF1050C0, 0xFFE0F0FF); err != nil {
		return err
	}
	if c.night, err = c.palette(0xFF080818, 0xFF283060, 0xFF102040, 0xFF5070A0); err != nil {
		return err
	}
	if c.mixed, err = c.day.Clone(); err != nil {
		return err
	}
	c.add(c.mixed)
	if err := bmp.Palette().CopyFrom(c.day); err != nil {
		return err
	}

	fallX1, fallX2 := w*2/5, w*3/5
	skyH := max(h/5, 1)
	pool := h * 3 / 4
	err = fillBitmap(bmp, func(x, y int) uint8 {
		switch {
		case y >= pool:
			// ripples move outward from the fall
			d := abs(x - w/2)
			return uint8(ccPool + (d/6+y)%ccPoolCount)
		case x >= fallX1 && x < fallX2 && y >= skyH:
			return uint8(ccFall + (y+x%3)%ccFallCount)
		case y >= skyH:
			return uint8(ccRock + (x/5+y/7)%ccRockCount)
		}
		return uint8(ccSky + y*ccSkyCount/skyH)
	})
	if err != nil {
		return err
	}

	seq, err := resource.NewCycle("waterfall", []resource.ColorStrip{
		{Delay: 3, First: ccFall, Count: ccFallCount},
		{Delay: 5, First: ccPool, Count: ccPoolCount, Dir: true},
	})
	if err != nil {
		return err
	}
	c.add(seq)
	if err := e.SetLayerBitmap(0, bmp); err != nil {
		return err
	}
	if err := e.SetPaletteAnimation(0, bmp.Palette(), seq, true); err != nil {
		return err
	}
	c.fade = gween.New(0, 255, ccFadeTime, ease.InOutQuad)
	return nil
}

// palette builds one lighting variant of the picture colors.
func (c *ColorCycle) palette(skyTop, skyBottom, water, foam uint32) (*resource.Palette, error) {
	p, err := resource.NewPalette(resource.MaxPaletteEntries)
	if err != nil {
		return nil, err
	}
	c.add(p)
	rock := resource.Lerp(skyTop, 0xFF403828, 3, 4)
	steps := []struct {
		first, count int
		stops        []uint32
	}{
		{ccSky, ccSkyCount, []uint32{skyTop, skyBottom}},
		{ccRock, ccRockCount, []uint32{rock, resource.Lerp(rock, 0xFF000000, 1, 2)}},
		{ccFall, ccFallCount, []uint32{water, foam, water}},
		{ccPool, ccPoolCount, []uint32{water, resource.Lerp(water, foam, 1, 2), water}},
	}
	for _, s := range steps {
		if err := ramp(p, s.first, s.count, s.stops...); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (c *ColorCycle) Update(frame int, in Controls) error {
	v, done := c.fade.Update(1.0 / 60)
	if done {
		c.reverse = !c.reverse
		c.fade = gween.New(0, 255, ccFadeTime, ease.InOutQuad)
	}
	factor := uint8(v)
	if c.reverse {
		factor = 255 - factor
	}
	if err := resource.MixPalettes(c.day, c.night, c.mixed, factor); err != nil {
		return err
	}
	// the cycled ranges are rewritten from the source when the frame is drawn
	if err := c.bitmap.Palette().CopyFrom(c.mixed); err != nil {
		return err
	}
	return c.e.SetPaletteAnimationSource(0, c.mixed)
}

func (c *ColorCycle) Close() error {
	if c.e != nil {
		_ = c.e.DisablePaletteAnimation(0)
	}
	return c.release()
}
