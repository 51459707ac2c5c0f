package tilengine

import (
	"github.com/valerio/go-tilengine/tilengine/anim"
	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
	"github.com/valerio/go-tilengine/tilengine/video"
)

func (e *Engine) layer(op string, n int) (*video.Layer, error) {
	if err := e.check(op); err != nil {
		return nil, err
	}
	if n < 0 || n >= e.renderer.NumLayers() {
		return nil, errcode.New(op, errcode.IdxLayer)
	}
	l, _ := e.renderer.Layer(n)
	return l, nil
}

// withLayer runs fn on layer n and reports the result.
func (e *Engine) withLayer(op string, n int, fn func(l *video.Layer) error) error {
	l, err := e.layer(op, n)
	if err != nil {
		return e.report(err)
	}
	return e.report(fn(l))
}

// SetLayer shows tm on layer n drawn with ts. A nil tileset uses the one
// attached to the tilemap.
func (e *Engine) SetLayer(n int, ts *resource.Tileset, tm *resource.Tilemap) error {
	return e.withLayer("SetLayer", n, func(l *video.Layer) error {
		if err := l.SetTiles(ts, tm); err != nil {
			return err
		}
		e.watchTileset(l.Tileset())
		return nil
	})
}

// SetLayerTilemap shows tm on layer n with its own tileset.
func (e *Engine) SetLayerTilemap(n int, tm *resource.Tilemap) error {
	return e.SetLayer(n, nil, tm)
}

// SetLayerBitmap shows bmp on layer n.
func (e *Engine) SetLayerBitmap(n int, bmp *resource.Bitmap) error {
	return e.withLayer("SetLayerBitmap", n, func(l *video.Layer) error {
		return l.SetBitmap(bmp)
	})
}

// SetLayerObjects shows the objects of list on layer n, drawn with the
// images of ts.
func (e *Engine) SetLayerObjects(n int, list *resource.ObjectList, ts *resource.Tileset) error {
	return e.withLayer("SetLayerObjects", n, func(l *video.Layer) error {
		return l.SetObjects(list, ts)
	})
}

// SetLayerPalette overrides the palette of layer n.
func (e *Engine) SetLayerPalette(n int, p *resource.Palette) error {
	return e.withLayer("SetLayerPalette", n, func(l *video.Layer) error {
		return l.SetPalette(p)
	})
}

// SetLayerPosition sets the layer pixel shown at the top-left corner of the
// screen.
func (e *Engine) SetLayerPosition(n, hstart, vstart int) error {
	return e.withLayer("SetLayerPosition", n, func(l *video.Layer) error {
		l.SetPosition(hstart, vstart)
		return nil
	})
}

// LayerPosition returns the effective position of layer n, following its
// parent.
func (e *Engine) LayerPosition(n int) (int, int, error) {
	l, err := e.layer("GetLayerPosition", n)
	if err != nil {
		return 0, 0, e.report(err)
	}
	x, y := l.Position()
	return x, y, e.report(nil)
}

func (e *Engine) SetLayerScaling(n int, sx, sy float64) error {
	return e.withLayer("SetLayerScaling", n, func(l *video.Layer) error {
		return l.SetScaling(sx, sy)
	})
}

func (e *Engine) SetLayerAffineTransform(n int, a Affine) error {
	return e.withLayer("SetLayerAffineTransform", n, func(l *video.Layer) error {
		return l.SetAffine(a)
	})
}

// SetLayerTransform rotates layer n angle degrees around screen point
// (dx, dy) and scales it by sx, sy.
func (e *Engine) SetLayerTransform(n int, angle, dx, dy, sx, sy float64) error {
	return e.withLayer("SetLayerTransform", n, func(l *video.Layer) error {
		return l.SetAffine(Affine{Angle: angle, Dx: dx, Dy: dy, Sx: sx, Sy: sy})
	})
}

func (e *Engine) SetLayerPixelMapping(n int, table []PixelMap) error {
	return e.withLayer("SetLayerPixelMapping", n, func(l *video.Layer) error {
		return l.SetPixelMapping(table)
	})
}

func (e *Engine) SetLayerBlendMode(n int, mode Blend, factor uint8) error {
	return e.withLayer("SetLayerBlendMode", n, func(l *video.Layer) error {
		return l.SetBlendMode(mode, factor)
	})
}

func (e *Engine) SetLayerColumnOffset(n int, offsets []int) error {
	return e.withLayer("SetLayerColumnOffset", n, func(l *video.Layer) error {
		l.SetColumnOffset(offsets)
		return nil
	})
}

func (e *Engine) SetLayerClip(n, x1, y1, x2, y2 int) error {
	return e.withLayer("SetLayerClip", n, func(l *video.Layer) error {
		return l.SetClip(x1, y1, x2, y2)
	})
}

func (e *Engine) DisableLayerClip(n int) error {
	return e.withLayer("DisableLayerClip", n, func(l *video.Layer) error {
		l.DisableClip()
		return nil
	})
}

func (e *Engine) SetLayerMosaic(n, w, h int) error {
	return e.withLayer("SetLayerMosaic", n, func(l *video.Layer) error {
		return l.SetMosaic(w, h)
	})
}

func (e *Engine) DisableLayerMosaic(n int) error {
	return e.withLayer("DisableLayerMosaic", n, func(l *video.Layer) error {
		l.DisableMosaic()
		return nil
	})
}

// ResetLayerMode disables scaling, affine transform and pixel mapping.
func (e *Engine) ResetLayerMode(n int) error {
	return e.withLayer("ResetLayerMode", n, func(l *video.Layer) error {
		l.ResetMode()
		return nil
	})
}

// SetLayerPriority draws layer n in front of regular sprites.
func (e *Engine) SetLayerPriority(n int, enable bool) error {
	return e.withLayer("SetLayerPriority", n, func(l *video.Layer) error {
		l.SetPriority(enable)
		return nil
	})
}

// SetLayerParent makes layer n follow the position of layer parent.
func (e *Engine) SetLayerParent(n, parent int) error {
	p, err := e.layer("SetLayerParent", parent)
	if err != nil {
		return e.report(err)
	}
	return e.withLayer("SetLayerParent", n, func(l *video.Layer) error {
		return l.SetParent(p)
	})
}

func (e *Engine) DisableLayerParent(n int) error {
	return e.withLayer("DisableLayerParent", n, func(l *video.Layer) error {
		l.DisableParent()
		return nil
	})
}

// DisableLayer hides layer n keeping its configuration.
func (e *Engine) DisableLayer(n int) error {
	return e.withLayer("DisableLayer", n, func(l *video.Layer) error {
		l.Disable()
		return nil
	})
}

// EnableLayer shows a disabled layer again.
func (e *Engine) EnableLayer(n int) error {
	return e.withLayer("EnableLayer", n, func(l *video.Layer) error {
		return l.Enable()
	})
}

// LayerType returns the kind of content shown by layer n.
func (e *Engine) LayerType(n int) (LayerType, error) {
	l, err := e.layer("GetLayerType", n)
	if err != nil {
		return LayerNone, e.report(err)
	}
	return l.Type(), e.report(nil)
}

// LayerPalette returns the palette used to draw layer n.
func (e *Engine) LayerPalette(n int) (*resource.Palette, error) {
	l, err := e.layer("GetLayerPalette", n)
	if err != nil {
		return nil, e.report(err)
	}
	return l.Palette(), e.report(nil)
}

func (e *Engine) LayerTileset(n int) (*resource.Tileset, error) {
	l, err := e.layer("GetLayerTileset", n)
	if err != nil {
		return nil, e.report(err)
	}
	if l.Type() != LayerTile && l.Type() != LayerObject {
		return nil, e.report(nil)
	}
	return l.Tileset(), e.report(nil)
}

func (e *Engine) LayerTilemap(n int) (*resource.Tilemap, error) {
	l, err := e.layer("GetLayerTilemap", n)
	if err != nil {
		return nil, e.report(err)
	}
	if l.Type() != LayerTile {
		return nil, e.report(nil)
	}
	return l.Tilemap(), e.report(nil)
}

func (e *Engine) LayerBitmap(n int) (*resource.Bitmap, error) {
	l, err := e.layer("GetLayerBitmap", n)
	if err != nil {
		return nil, e.report(err)
	}
	if l.Type() != LayerBitmap {
		return nil, e.report(nil)
	}
	return l.Bitmap(), e.report(nil)
}

func (e *Engine) LayerObjects(n int) (*resource.ObjectList, error) {
	l, err := e.layer("GetLayerObjects", n)
	if err != nil {
		return nil, e.report(err)
	}
	if l.Type() != LayerObject {
		return nil, e.report(nil)
	}
	return l.Objects(), e.report(nil)
}

// LayerTile returns the tile under layer pixel (x, y).
func (e *Engine) LayerTile(n, x, y int) (TileInfo, error) {
	l, err := e.layer("GetLayerTile", n)
	if err != nil {
		return TileInfo{}, e.report(err)
	}
	info, err := l.Tile(x, y)
	return info, e.report(err)
}

// LayerWidth returns the width of the layer content in pixels.
func (e *Engine) LayerWidth(n int) (int, error) {
	l, err := e.layer("GetLayerWidth", n)
	if err != nil {
		return 0, e.report(err)
	}
	return l.Width(), e.report(nil)
}

// LayerHeight returns the height of the layer content in pixels.
func (e *Engine) LayerHeight(n int) (int, error) {
	l, err := e.layer("GetLayerHeight", n)
	if err != nil {
		return 0, e.report(err)
	}
	return l.Height(), e.report(nil)
}

// watchTileset starts the tile animations of ts, if it has any.
func (e *Engine) watchTileset(ts *resource.Tileset) {
	if _, ok := e.tiles[ts]; ok {
		return
	}
	e.tiles[ts] = anim.NewTiles(ts)
}
