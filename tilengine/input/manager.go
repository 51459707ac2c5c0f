// Package input tracks the state of the arcade style inputs of up to four
// players, fed by key events from a backend.
package input

import (
	"sync"
	"time"

	"github.com/valerio/go-tilengine/tilengine/input/action"
	"github.com/valerio/go-tilengine/tilengine/input/event"
)

const (
	// debounceDuration is the minimum time between two presses of a
	// system input
	debounceDuration = 300 * time.Millisecond
)

type player struct {
	enabled  bool
	keys     map[string]action.Input
	joystick int // -1 when none is assigned
	buttons  map[int]action.Input
	pressed  [action.Count]bool
}

// Manager maps key names to player inputs and keeps their pressed state.
// It is safe for concurrent use: the threaded window feeds it from its
// render goroutine while the game loop reads it.
type Manager struct {
	mu            sync.Mutex
	players       [action.MaxPlayers]player
	handlers      map[action.Input]map[event.Type][]func()
	lastTriggered map[action.Input]time.Time
	now           func() time.Time
}

// NewManager creates a manager with player 1 enabled and bound to
// DefaultKeyMap, DefaultJoystick and DefaultButtonMap.
func NewManager() *Manager {
	m := &Manager{
		handlers:      make(map[action.Input]map[event.Type][]func()),
		lastTriggered: make(map[action.Input]time.Time),
		now:           time.Now,
	}
	for i := range m.players {
		m.players[i].keys = make(map[string]action.Input)
		m.players[i].buttons = make(map[int]action.Input)
		m.players[i].joystick = -1
	}
	p1 := &m.players[action.Player1]
	p1.enabled = true
	for key, in := range DefaultKeyMap {
		p1.keys[key] = in
	}
	p1.joystick = DefaultJoystick
	for button, in := range DefaultButtonMap {
		p1.buttons[button] = in
	}
	return m
}

func valid(p action.Player) bool {
	return p >= action.Player1 && p < action.MaxPlayers
}

// Enable turns input for a player on or off. Disabling a player releases
// all its inputs.
func (m *Manager) Enable(p action.Player, enable bool) {
	if !valid(p) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p].enabled = enable
	if !enable {
		m.players[p].pressed = [action.Count]bool{}
	}
}

// Enabled reports whether input for a player is on.
func (m *Manager) Enabled(p action.Player) bool {
	if !valid(p) {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.players[p].enabled
}

// DefineKey assigns key to an input of player p, replacing any previous key
// of that input.
func (m *Manager) DefineKey(p action.Player, in action.Input, key string) {
	in = in.Base()
	if !valid(p) || in <= action.None || in >= action.Count {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := m.players[p].keys
	for k, bound := range keys {
		if bound == in {
			delete(keys, k)
		}
	}
	keys[key] = in
}

// AssignJoystick binds joystick index to player p. A negative index
// detaches the player from any joystick.
func (m *Manager) AssignJoystick(p action.Player, index int) {
	if !valid(p) {
		return
	}
	if index < 0 {
		index = -1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p].joystick = index
	m.players[p].pressed = [action.Count]bool{}
}

// DefineButton assigns a joystick button to an input of player p, replacing
// any previous button of that input.
func (m *Manager) DefineButton(p action.Player, in action.Input, button int) {
	in = in.Base()
	if !valid(p) || in <= action.None || in >= action.Count {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	buttons := m.players[p].buttons
	for b, bound := range buttons {
		if bound == in {
			delete(buttons, b)
		}
	}
	buttons[button] = in
}

// On registers a callback for an input and event type. Inputs are given
// with their player selector.
func (m *Manager) On(in action.Input, evt event.Type, callback func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handlers[in] == nil {
		m.handlers[in] = make(map[event.Type][]func())
	}
	m.handlers[in][evt] = append(m.handlers[in][evt], callback)
}

// Trigger handles a key event from a backend. Every enabled player that has
// the key bound sees its input change. Callbacks run after the state is
// updated, outside the lock.
func (m *Manager) Trigger(key string, evt event.Type) {
	m.dispatch(evt, func(pl *player) (action.Input, bool) {
		in, ok := pl.keys[key]
		return in, ok
	})
}

// TriggerButton handles a joystick button event. JoyDown and JoyUp are
// treated as Press and Release for every enabled player assigned to the
// joystick.
func (m *Manager) TriggerButton(joystick, button int, evt event.Type) {
	switch evt {
	case event.JoyDown:
		evt = event.Press
	case event.JoyUp:
		evt = event.Release
	}
	m.dispatch(evt, func(pl *player) (action.Input, bool) {
		if joystick < 0 || pl.joystick != joystick {
			return action.None, false
		}
		in, ok := pl.buttons[button]
		return in, ok
	})
}

func (m *Manager) dispatch(evt event.Type, lookup func(*player) (action.Input, bool)) {
	var callbacks []func()

	m.mu.Lock()
	for i := range m.players {
		pl := &m.players[i]
		if !pl.enabled {
			continue
		}
		in, ok := lookup(pl)
		if !ok {
			continue
		}
		id := action.For(action.Player(i), in)
		switch evt {
		case event.Press:
			if in.System() && m.debounced(id) {
				continue
			}
			pl.pressed[in] = true
		case event.Hold:
			pl.pressed[in] = true
		case event.Release:
			pl.pressed[in] = false
		default:
			continue
		}
		callbacks = append(callbacks, m.handlers[id][evt]...)
	}
	m.mu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}

func (m *Manager) debounced(id action.Input) bool {
	now := m.now()
	if last, ok := m.lastTriggered[id]; ok && now.Sub(last) < debounceDuration {
		return true
	}
	m.lastTriggered[id] = now
	return false
}

// Pressed reports whether an input is held down. The player is taken from
// the input's player selector.
func (m *Manager) Pressed(in action.Input) bool {
	p, base := in.Player(), in.Base()
	if !valid(p) || base <= action.None || base >= action.Count {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pl := &m.players[p]
	return pl.enabled && pl.pressed[base]
}

// ReleaseAll clears the pressed state of every input.
func (m *Manager) ReleaseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.players {
		m.players[i].pressed = [action.Count]bool{}
	}
}
