package demo

import (
	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/input/action"
)

const worldScroll = 2

// World scrolls a Tiled map loaded from the engine load path or resource
// pack. Without input it pans right on its own.
type World struct {
	Map string

	e    *tilengine.Engine
	x, y int
}

// NewWorld returns a viewer for the map file name.
func NewWorld(name string) *World {
	return &World{Map: name}
}

func (w *World) Name() string        { return "world" }
func (w *World) Description() string { return w.Map }

func (w *World) Setup(e *tilengine.Engine) error {
	if err := e.LoadWorld(w.Map, 0); err != nil {
		return err
	}
	w.e = e
	e.SetWorldPosition(0, 0)
	return nil
}

// Position returns the world position shown at the top-left corner.
func (w *World) Position() (int, int) { return w.x, w.y }

func (w *World) Update(frame int, in Controls) error {
	dx, dy := 0, 0
	if in.Input(action.Left) {
		dx -= worldScroll
	}
	if in.Input(action.Right) {
		dx += worldScroll
	}
	if in.Input(action.Up) {
		dy -= worldScroll
	}
	if in.Input(action.Down) {
		dy += worldScroll
	}
	if dx == 0 && dy == 0 {
		dx = 1
	}
	w.x = max(w.x+dx, 0)
	w.y = max(w.y+dy, 0)
	w.e.SetWorldPosition(w.x, w.y)
	return nil
}

func (w *World) Close() error {
	if w.e != nil {
		w.e.ReleaseWorld()
	}
	return nil
}
