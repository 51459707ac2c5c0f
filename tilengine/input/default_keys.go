package input

import "github.com/valerio/go-tilengine/tilengine/input/action"

// DefaultKeyMap holds the keys assigned to player 1 when a manager is
// created. Key names are shared by all backends.
var DefaultKeyMap = map[string]action.Input{
	"Up":    action.Up,
	"Down":  action.Down,
	"Left":  action.Left,
	"Right": action.Right,

	"z": action.Button1,
	"x": action.Button2,
	"c": action.Button3,
	"v": action.Button4,
	"b": action.Button5,
	"n": action.Button6,

	"Enter":     action.Start,
	"Escape":    action.Quit,
	"Backspace": action.CRT,
	"F9":        action.Snapshot,
}

// Joystick hats are reported as buttons numbered past the physical ones.
const (
	HatUp = 256 + iota
	HatRight
	HatDown
	HatLeft
)

// DefaultJoystick is the joystick index assigned to player 1 when a manager
// is created.
const DefaultJoystick = 0

// DefaultButtonMap holds the joystick buttons assigned to player 1 when a
// manager is created.
var DefaultButtonMap = map[int]action.Input{
	HatUp:    action.Up,
	HatDown:  action.Down,
	HatLeft:  action.Left,
	HatRight: action.Right,

	0: action.Button1,
	1: action.Button2,
	2: action.Button3,
	3: action.Button4,
	4: action.Button5,
	5: action.Button6,
	7: action.Start,
}

// GetDefaultMapping returns the default input for a key, if one exists
func GetDefaultMapping(key string) (action.Input, bool) {
	in, ok := DefaultKeyMap[key]
	return in, ok
}
