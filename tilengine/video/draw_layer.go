package video

import (
	"math"

	"github.com/valerio/go-tilengine/tilengine/resource"
)

// tilePixel returns the color index of pixel (x, y) inside a tile cell,
// honoring tileset animations and the cell flip flags.
func (l *Layer) tilePixel(tile resource.Tile, x, y int) uint8 {
	ts := l.tileset
	index := int(ts.Lookup(tile.Index))
	if index <= 0 || index >= ts.NumTiles() {
		return 0
	}
	tw, th := ts.TileWidth(), ts.TileHeight()
	sx, sy := resource.TransformPixel(tile.Flags, x, y, tw, th)
	if sx < 0 || sy < 0 || sx >= tw || sy >= th {
		return 0
	}
	return ts.Tile(index)[sy*tw+sx]
}

// sample returns the color index at layer pixel (x, y) and whether it comes
// from a priority tile. Tile and bitmap layers wrap around.
func (l *Layer) sample(x, y int) (uint8, bool) {
	switch l.typ {
	case LayerTile:
		tw, th := l.tileset.TileWidth(), l.tileset.TileHeight()
		x = wrap(x, l.tilemap.Cols()*tw)
		y = wrap(y, l.tilemap.Rows()*th)
		tile := l.tilemap.Cell(y/th, x/tw)
		if tile.Empty() {
			return 0, false
		}
		prio := tile.Flags.Has(resource.FlagPriority)
		return l.tilePixel(tile, x%tw, y%th), prio
	case LayerBitmap:
		x = wrap(x, l.bitmap.Width())
		y = wrap(y, l.bitmap.Height())
		return l.bitmap.Pixel(x, y), false
	}
	return 0, false
}

// source maps screen pixel (x, y) to the layer pixel it shows.
func (l *Layer) source(x, y, hstart, vstart int) (int, int) {
	switch l.mode {
	case modeScaling:
		return hstart + int(math.Floor(float64(x)/l.sx)), vstart + int(math.Floor(float64(y)/l.sy))
	case modeAffine:
		fx, fy := l.inverse.Apply(float64(x), float64(y))
		return hstart + int(math.Floor(fx)), vstart + int(math.Floor(fy))
	case modePixelMap:
		pm := l.pixelMap[y*l.width+x]
		return hstart + x + int(pm.Dx), vstart + y + int(pm.Dy)
	}
	if l.columns != nil && l.typ == LayerTile {
		tw := l.tileset.TileWidth()
		col := (x + wrap(hstart, tw)) / tw
		if col < len(l.columns) {
			y += l.columns[col]
		}
	}
	return hstart + x, vstart + y
}

// span returns the horizontal range drawn on line y, or ok false when the
// line is clipped out.
func (l *Layer) span(y int) (x1, x2 int, ok bool) {
	if !l.clip.enabled {
		return 0, l.width, true
	}
	if y < l.clip.y1 || y >= l.clip.y2 {
		return 0, 0, false
	}
	return l.clip.x1, l.clip.x2, l.clip.x1 < l.clip.x2
}

// drawLine composites one screen line of the layer into dst. Pixels of
// priority tiles go to the priority buffer instead, unless the whole layer
// is drawn with priority.
func (r *Renderer) drawLayerLine(l *Layer, y int, dst []uint32) {
	pal := l.Palette()
	if pal == nil || pal.Deleted() {
		return
	}
	x1, x2, ok := l.span(y)
	if !ok {
		return
	}
	if l.typ == LayerObject {
		r.drawObjectsLine(l, y, x1, x2, dst)
		return
	}

	colors := pal.Entries()
	hstart, vstart := l.Position()
	sy := y
	if l.mosaicH > 1 {
		sy -= y % l.mosaicH
	}
	for x := x1; x < x2; x++ {
		sx := x
		if l.mosaicW > 1 {
			sx -= x % l.mosaicW
		}
		lx, ly := l.source(sx, sy, hstart, vstart)
		index, prio := l.sample(lx, ly)
		if index == 0 || int(index) >= len(colors) {
			continue
		}
		r.plot(dst, x, colors[index], l.blend, prio && !l.priority)
	}
}

// drawObjectsLine draws the objects of an object layer crossing line y.
func (r *Renderer) drawObjectsLine(l *Layer, y, x1, x2 int, dst []uint32) {
	hstart, vstart := l.Position()
	ts := l.tileset
	for _, o := range l.objects.Objects() {
		if !o.Visible || o.GID <= 0 {
			continue
		}
		oy := o.Y - vstart
		ox := o.X - hstart
		if y < oy || y >= oy+o.Height || ox >= x2 || ox+o.Width <= x1 {
			continue
		}

		var (
			w, h   int
			pixels []byte
			pitch  int
			colors []uint32
		)
		if ts.IsImageTileset() {
			img, ok := ts.Image(uint16(o.GID))
			if !ok || img.Bitmap.Deleted() {
				continue
			}
			w, h = img.Bitmap.Width(), img.Bitmap.Height()
			pixels, pitch = img.Bitmap.Data(), img.Bitmap.Pitch()
			colors = img.Bitmap.Palette().Entries()
		} else {
			if o.GID >= ts.NumTiles() {
				continue
			}
			w, h = ts.TileWidth(), ts.TileHeight()
			pixels, pitch = ts.Tile(o.GID), w
			colors = ts.Palette().Entries()
		}
		if l.palette != nil {
			colors = l.palette.Entries()
		}

		// image size in drawn orientation
		dw, dh := w, h
		if o.Flags.Has(resource.FlagRotate) {
			dw, dh = h, w
		}
		prio := o.Flags.Has(resource.FlagPriority) && !l.priority
		for x := max(ox, x1); x < min(ox+o.Width, x2); x++ {
			// objects larger than their image repeat it
			px, py := resource.TransformPixel(o.Flags, (x-ox)%dw, (y-oy)%dh, dw, dh)
			if px >= w || py >= h {
				continue
			}
			index := pixels[py*pitch+px]
			if index == 0 || int(index) >= len(colors) {
				continue
			}
			r.plot(dst, x, colors[index], l.blend, prio)
		}
	}
}

// plot writes one pixel either to the line or to the priority buffer.
func (r *Renderer) plot(dst []uint32, x int, color uint32, mode Blend, deferred bool) {
	if deferred {
		r.prio[x] = color
		r.prioBlend[x] = mode
		r.prioSet[x] = true
		r.prioUsed = true
		return
	}
	if mode != BlendNone {
		color = r.blender.Apply(mode, color, dst[x])
	}
	dst[x] = color
}
