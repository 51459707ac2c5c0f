// Package demo holds procedural scenes that exercise the engine's raster
// effects without external assets.
package demo

import (
	"errors"
	"fmt"
	"slices"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/backend"
	"github.com/valerio/go-tilengine/tilengine/input/action"
)

// Engine slots every scene fits in.
const (
	Layers     = 4
	Sprites    = 64
	Animations = 8
)

// Controls is the input state a scene reads each frame.
type Controls interface {
	Input(in action.Input) bool
}

// Scene is a demo driven one frame at a time.
type Scene interface {
	Name() string
	Description() string
	// Setup builds the scene resources and binds them to e.
	Setup(e *tilengine.Engine) error
	// Update runs before frame is drawn.
	Update(frame int, in Controls) error
	// Close releases every resource created by Setup.
	Close() error
}

// EventHandler is implemented by scenes that react to raw backend events
// such as mouse clicks.
type EventHandler interface {
	HandleEvent(evt backend.InputEvent)
}

var registry = map[string]func() Scene{
	"platformer": func() Scene { return &Platformer{} },
	"mode7":      func() Scene { return &Mode7{} },
	"colorcycle": func() Scene { return &ColorCycle{} },
	"scaling":    func() Scene { return &Scaling{} },
	"mouse":      func() Scene { return &Mouse{} },
	"walker":     func() Scene { return &Walker{} },
}

// ErrUnknownScene is returned by New for names not in Names.
var ErrUnknownScene = errors.New("unknown demo scene")

// Names lists the registered scenes in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New returns a fresh scene by name.
func New(name string) (Scene, error) {
	create, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return create(), nil
}

// checkSlots fails when e is too small for the demo scenes.
func checkSlots(e *tilengine.Engine) error {
	if e.NumLayers() < Layers || e.NumSprites() < Sprites {
		return errSlots(e)
	}
	return nil
}

func errSlots(e *tilengine.Engine) error {
	return fmt.Errorf("engine too small: %d layers and %d sprites", e.NumLayers(), e.NumSprites())
}

// bag collects the delete functions of the resources a scene creates.
type bag struct {
	deleters []func() error
}

type deleter interface {
	Delete() error
}

func (b *bag) add(r deleter) {
	b.deleters = append(b.deleters, r.Delete)
}

// release deletes everything in reverse creation order.
func (b *bag) release() error {
	var errs []error
	for i := len(b.deleters) - 1; i >= 0; i-- {
		if err := b.deleters[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.deleters = nil
	return errors.Join(errs...)
}
