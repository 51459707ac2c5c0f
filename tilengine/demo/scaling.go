package demo

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/input/action"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

const (
	scalingMin  = 1.0
	scalingMax  = 3.0
	scalingTime = 2 // seconds per zoom
	ballSize    = 16
)

// Scaling zooms a tile layer and a sprite in and out around the screen
// center with eased timing.
type Scaling struct {
	bag
	e      *tilengine.Engine
	width  int
	height int

	zoom   *gween.Tween
	in     bool
	scale  float64
	paused bool
	held   bool
}

func (s *Scaling) Name() string        { return "scaling" }
func (s *Scaling) Description() string { return "eased layer and sprite scaling" }

func (s *Scaling) Setup(e *tilengine.Engine) error {
	if err := checkSlots(e); err != nil {
		return err
	}
	s.e = e
	s.width, s.height = e.Width(), e.Height()
	s.scale = scalingMin
	s.in = true
	s.zoom = gween.New(scalingMin, scalingMax, scalingTime, ease.InOutQuad)

	pal, err := resource.NewPalette(8)
	if err != nil {
		return err
	}
	s.add(pal)
	if err := ramp(pal, 1, 4, 0xFF503070, 0xFFC080E0); err != nil {
		return err
	}
	const size = 16
	ts, err := newTileset(&s.bag, size, pal,
		box(2, 4, size),
		func(x, y int) uint8 { return uint8(1 + (x/4+y/4)%2*2) },
	)
	if err != nil {
		return err
	}
	rows := (s.height + size - 1) / size
	cols := (s.width + size - 1) / size
	tiles := make([]resource.Tile, rows*cols)
	for i := range tiles {
		tiles[i].Index = uint16(1 + (i/cols+i%cols)%2)
	}
	tm, err := resource.NewTilemap(rows, cols, tiles, 0, ts)
	if err != nil {
		return err
	}
	s.add(tm)
	if err := e.SetLayerTilemap(0, tm); err != nil {
		return err
	}

	ball, err := newSpriteset(&s.bag, ballSize, ballSize, []string{"ball"}, []pixelFunc{
		func(x, y int) uint8 {
			dx, dy := 2*x-ballSize+1, 2*y-ballSize+1
			d := dx*dx + dy*dy
			r := ballSize * ballSize
			switch {
			case d > r:
				return 0
			case d > r*2/3:
				return 1
			}
			return 2
		},
	})
	if err != nil {
		return err
	}
	if err := ramp(ball.Palette(), 1, 2, 0xFFD0A020, 0xFFFFF080); err != nil {
		return err
	}
	if err := e.ConfigSprite(0, ball, tilengine.FlagNone); err != nil {
		return err
	}
	if err := e.SetSpritePivot(0, 0.5, 0.5); err != nil {
		return err
	}
	return e.SetSpritePosition(0, s.width/2, s.height/2)
}

func (s *Scaling) Update(frame int, in Controls) error {
	// Button1 pauses on press, not while held
	pressed := in.Input(action.Button1)
	if pressed && !s.held {
		s.paused = !s.paused
	}
	s.held = pressed

	if !s.paused {
		v, done := s.zoom.Update(1.0 / 60)
		s.scale = float64(v)
		if done {
			s.in = !s.in
			if s.in {
				s.zoom = gween.New(scalingMin, scalingMax, scalingTime, ease.InOutQuad)
			} else {
				s.zoom = gween.New(scalingMax, scalingMin, scalingTime, ease.OutBounce)
			}
		}
	}

	// keep the screen center fixed on the layer
	cx, cy := float64(s.width)/2, float64(s.height)/2
	if err := s.e.SetLayerPosition(0, int(cx-cx/s.scale), int(cy-cy/s.scale)); err != nil {
		return err
	}
	if err := s.e.SetLayerScaling(0, s.scale, s.scale); err != nil {
		return err
	}
	return s.e.SetSpriteScaling(0, s.scale, s.scale)
}

func (s *Scaling) Close() error {
	if s.e != nil {
		_ = s.e.DisableSprite(0)
	}
	return s.release()
}
