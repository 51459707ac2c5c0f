package demo

import (
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// pixelFunc returns the color index of a pixel of a procedural picture.
type pixelFunc func(x, y int) uint8

// render draws fn into a w×h buffer.
func render(w, h int, fn pixelFunc) []byte {
	buf := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*w+x] = fn(x, y)
		}
	}
	return buf
}

// ramp fills entries [first, first+count) of p with a gradient through the
// given colors.
func ramp(p *resource.Palette, first, count int, stops ...uint32) error {
	if len(stops) == 1 {
		stops = append(stops, stops[0])
	}
	segments := len(stops) - 1
	for i := 0; i < count; i++ {
		pos := i * segments * 256 / max(count-1, 1)
		seg := min(pos/256, segments-1)
		c := resource.Lerp(stops[seg], stops[seg+1], pos-seg*256, 256)
		r, g, b := resource.Channels(c)
		if err := p.SetColor(first+i, r, g, b); err != nil {
			return err
		}
	}
	return nil
}

// newTileset creates a tileset with one procedural picture per entry.
// Entry 0 stays blank since tile index 0 is an empty cell.
func newTileset(b *bag, size int, p *resource.Palette, tiles ...pixelFunc) (*resource.Tileset, error) {
	ts, err := resource.NewTileset(len(tiles)+1, size, size, p, nil, nil)
	if err != nil {
		return nil, err
	}
	b.add(ts)
	for i, fn := range tiles {
		if err := ts.SetPixels(i+1, render(size, size, fn), size); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

// newSpriteset lays out equally sized frames side by side in one atlas.
func newSpriteset(b *bag, w, h int, names []string, frames []pixelFunc) (*resource.Spriteset, error) {
	bmp, err := resource.NewBitmap(w*len(frames), h, 8)
	if err != nil {
		return nil, err
	}
	data := make([]resource.SpriteData, len(frames))
	for i := range frames {
		data[i] = resource.SpriteData{Name: names[i], X: i * w, W: w, H: h}
	}
	ss, err := resource.NewSpriteset(bmp, data)
	if err != nil {
		_ = bmp.Delete()
		return nil, err
	}
	b.add(ss)
	for i, fn := range frames {
		if err := ss.SetData(i, data[i], render(w, h, fn), w); err != nil {
			return nil, err
		}
	}
	return ss, nil
}

// fillBitmap draws fn over the whole bitmap.
func fillBitmap(bmp *resource.Bitmap, fn pixelFunc) error {
	for y := 0; y < bmp.Height(); y++ {
		for x := 0; x < bmp.Width(); x++ {
			if err := bmp.SetPixel(x, y, fn(x, y)); err != nil {
				return err
			}
		}
	}
	return nil
}

// solid is a tile filled with one color.
func solid(c uint8) pixelFunc {
	return func(x, y int) uint8 { return c }
}

// box is a tile with a one pixel border.
func box(fill, border uint8, size int) pixelFunc {
	return func(x, y int) uint8 {
		if x == 0 || y == 0 || x == size-1 || y == size-1 {
			return border
		}
		return fill
	}
}
