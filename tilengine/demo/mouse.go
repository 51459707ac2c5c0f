package demo

import (
	"sync"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/backend"
	"github.com/valerio/go-tilengine/tilengine/input/event"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

const (
	mouseSprites = 8
	crateSize    = 24
)

// Mouse scatters crates that can be picked and dragged with the left mouse
// button. The picked crate is drawn with a highlight palette and moved to
// the front of the sprite list.
type Mouse struct {
	bag
	e         *tilengine.Engine
	highlight *resource.Palette
	order     []int

	mu      sync.Mutex
	pending []backend.InputEvent

	picked       int
	grabX, grabY int
}

func (m *Mouse) Name() string        { return "mouse" }
func (m *Mouse) Description() string { return "sprite picking and palette swap with the mouse" }

func (m *Mouse) Setup(e *tilengine.Engine) error {
	if err := checkSlots(e); err != nil {
		return err
	}
	m.e = e
	m.picked = -1
	w, h := e.Width(), e.Height()

	crate, err := newSpriteset(&m.bag, crateSize, crateSize, []string{"crate"}, []pixelFunc{
		func(x, y int) uint8 {
			switch {
			case x < 2 || y < 2 || x >= crateSize-2 || y >= crateSize-2:
				return 1
			case x == y || x == crateSize-1-y:
				return 2
			}
			return 3
		},
	})
	if err != nil {
		return err
	}
	if err := ramp(crate.Palette(), 1, 3, 0xFF503010, 0xFFB08040); err != nil {
		return err
	}
	if m.highlight, err = crate.Palette().Clone(); err != nil {
		return err
	}
	m.add(m.highlight)
	if err := m.highlight.AddColor(0x60, 0x60, 0x20, 1, 3); err != nil {
		return err
	}

	m.order = make([]int, mouseSprites)
	for i := range m.order {
		m.order[i] = i
		if err := e.ConfigSprite(i, crate, tilengine.FlagNone); err != nil {
			return err
		}
		x := (i%4)*w/4 + w/8 - crateSize/2
		y := (i/4)*h/2 + h/4 - crateSize/2
		if err := e.SetSpritePosition(i, x, y); err != nil {
			return err
		}
	}
	e.SetBGColor(0x20, 0x28, 0x30)
	return m.relink()
}

// HandleEvent queues mouse events for the next Update.
func (m *Mouse) HandleEvent(evt backend.InputEvent) {
	switch evt.Type {
	case event.MouseDown, event.MouseUp, event.MouseMotion:
	default:
		return
	}
	m.mu.Lock()
	m.pending = append(m.pending, evt)
	m.mu.Unlock()
}

// Picked returns the sprite being dragged, or -1.
func (m *Mouse) Picked() int {
	return m.picked
}

func (m *Mouse) Update(frame int, in Controls) error {
	m.mu.Lock()
	events := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, evt := range events {
		if err := m.handle(evt); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mouse) handle(evt backend.InputEvent) error {
	switch evt.Type {
	case event.MouseDown:
		if evt.Button != backend.ButtonLeft || m.picked >= 0 {
			return nil
		}
		n, err := m.pick(evt.X, evt.Y)
		if err != nil || n < 0 {
			return err
		}
		st, err := m.e.SpriteState(n)
		if err != nil {
			return err
		}
		m.picked = n
		m.grabX, m.grabY = evt.X-st.X, evt.Y-st.Y
		if err := m.e.SetSpritePalette(n, m.highlight); err != nil {
			return err
		}
		m.raise(n)
		return m.relink()
	case event.MouseMotion:
		if m.picked < 0 {
			return nil
		}
		return m.e.SetSpritePosition(m.picked, evt.X-m.grabX, evt.Y-m.grabY)
	case event.MouseUp:
		if evt.Button != backend.ButtonLeft || m.picked < 0 {
			return nil
		}
		n := m.picked
		m.picked = -1
		return m.e.SetSpritePalette(n, nil)
	}
	return nil
}

// pick returns the frontmost sprite with an opaque pixel at (x, y).
func (m *Mouse) pick(x, y int) (int, error) {
	for i := len(m.order) - 1; i >= 0; i-- {
		n := m.order[i]
		st, err := m.e.SpriteState(n)
		if err != nil {
			return -1, err
		}
		px, py := x-st.X, y-st.Y
		if px < 0 || py < 0 || px >= st.W || py >= st.H {
			continue
		}
		if st.Spriteset.Pixel(st.Index, px, py) != 0 {
			return n, nil
		}
	}
	return -1, nil
}

// raise moves sprite n to the end of the draw order.
func (m *Mouse) raise(n int) {
	for i, v := range m.order {
		if v == n {
			m.order = append(append(m.order[:i:i], m.order[i+1:]...), n)
			return
		}
	}
}

func (m *Mouse) relink() error {
	if err := m.e.SetFirstSprite(m.order[0]); err != nil {
		return err
	}
	for i, n := range m.order {
		next := -1
		if i+1 < len(m.order) {
			next = m.order[i+1]
		}
		if err := m.e.SetNextSprite(n, next); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mouse) Close() error {
	if m.e != nil {
		for n := range m.order {
			_ = m.e.DisableSprite(n)
		}
	}
	return m.release()
}
