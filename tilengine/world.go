package tilengine

import (
	"math"

	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/loader"
)

// world tracks a Tiled map loaded into consecutive layers and the sprites
// placed in world coordinates.
type world struct {
	m      *loader.Map
	x, y   int
	layers []worldLayer
	// sprite world positions, by sprite index
	sprites map[int][2]int
}

type worldLayer struct {
	index      int
	factorX    float64
	factorY    float64
	offX, offY int
}

func (w *world) unpin(sprite int) {
	delete(w.sprites, sprite)
}

// LoadWorld loads every layer of a Tiled map into consecutive layers
// starting at first. The topmost map layer goes to layer first, so the
// stacking of the map is preserved. A previously loaded world is released.
func (e *Engine) LoadWorld(name string, first int) error {
	if err := e.check("LoadWorld"); err != nil {
		return e.report(err)
	}
	m, err := e.loader.LoadMap(name)
	if err != nil {
		return e.report(err)
	}
	if first < 0 || first+len(m.Layers) > e.renderer.NumLayers() {
		m.Release()
		return e.report(errcode.New("LoadWorld", errcode.IdxLayer))
	}
	e.ReleaseWorld()

	w := &world{m: m, sprites: make(map[int][2]int)}
	n := first
	for i := len(m.Layers) - 1; i >= 0; i-- {
		ml := m.Layers[i]
		l, _ := e.renderer.Layer(n)
		n++
		if ml.Tileset == nil {
			// empty layer, or objects without images
			continue
		}
		switch ml.Kind {
		case loader.TileLayer:
			err = l.SetTiles(ml.Tileset, ml.Tilemap)
			if err == nil {
				e.watchTileset(ml.Tileset)
			}
		case loader.ObjectLayer:
			err = l.SetObjects(ml.Objects, ml.Tileset)
		}
		if err != nil {
			m.Release()
			return e.report(err)
		}
		if !ml.Visible {
			l.Disable()
		}
		w.layers = append(w.layers, worldLayer{
			index:   l.Index(),
			factorX: ml.ParallaxX,
			factorY: ml.ParallaxY,
			offX:    ml.OffsetX,
			offY:    ml.OffsetY,
		})
	}
	if m.HasBGColor {
		e.renderer.SetBGColor(m.BGColor)
	}
	e.world = w
	e.logger.Debug("world loaded", "name", name, "layers", len(w.layers), "first", first)
	e.SetWorldPosition(0, 0)
	return e.report(nil)
}

// SetLayerParallaxFactor sets how fast layer n scrolls relative to the
// world position.
func (e *Engine) SetLayerParallaxFactor(n int, x, y float64) error {
	if _, err := e.layer("SetLayerParallaxFactor", n); err != nil {
		return e.report(err)
	}
	if e.world == nil {
		return e.report(errcode.New("SetLayerParallaxFactor", errcode.RefTilemap))
	}
	for i := range e.world.layers {
		if e.world.layers[i].index == n {
			e.world.layers[i].factorX, e.world.layers[i].factorY = x, y
			e.SetWorldPosition(e.world.x, e.world.y)
			return e.report(nil)
		}
	}
	return e.report(errcode.New("SetLayerParallaxFactor", errcode.IdxLayer))
}

// SetWorldPosition scrolls the world so that (x, y) is at the top-left
// corner of the screen. World layers move by their parallax factor.
func (e *Engine) SetWorldPosition(x, y int) {
	w := e.world
	if w == nil || e.renderer == nil {
		return
	}
	w.x, w.y = x, y
	for _, wl := range w.layers {
		l, _ := e.renderer.Layer(wl.index)
		l.SetPosition(
			int(math.Floor(float64(x)*wl.factorX))-wl.offX,
			int(math.Floor(float64(y)*wl.factorY))-wl.offY,
		)
	}
	e.updateWorldSprites()
}

// WorldPosition returns the current world position.
func (e *Engine) WorldPosition() (int, int) {
	if e.world == nil {
		return 0, 0
	}
	return e.world.x, e.world.y
}

// SetSpriteWorldPosition places sprite n in world coordinates. The sprite
// follows the world position until SetSpritePosition is called.
func (e *Engine) SetSpriteWorldPosition(n, x, y int) error {
	s, err := e.sprite("SetSpriteWorldPosition", n)
	if err != nil {
		return e.report(err)
	}
	if e.world == nil {
		return e.report(errcode.New("SetSpriteWorldPosition", errcode.RefTilemap))
	}
	e.world.sprites[n] = [2]int{x, y}
	s.SetPosition(x-e.world.x, y-e.world.y)
	return e.report(nil)
}

func (e *Engine) updateWorldSprites() {
	w := e.world
	if w == nil {
		return
	}
	for n, pos := range w.sprites {
		s, err := e.renderer.Sprite(n)
		if err == nil {
			s.SetPosition(pos[0]-w.x, pos[1]-w.y)
		}
	}
}

// ReleaseWorld empties the world layers and deletes the map resources.
func (e *Engine) ReleaseWorld() {
	w := e.world
	if w == nil {
		return
	}
	for _, wl := range w.layers {
		l, _ := e.renderer.Layer(wl.index)
		l.Disable()
		if ts := l.Tileset(); ts != nil {
			if a := e.tiles[ts]; a != nil {
				a.Stop()
			}
			delete(e.tiles, ts)
		}
	}
	w.m.Release()
	e.world = nil
}
