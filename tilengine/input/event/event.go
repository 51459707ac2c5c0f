package event

// Type represents the type of input event
type Type int

const (
	Press   Type = iota // Key pressed down
	Release             // Key released
	Hold                // Continuous while pressed (not debounced)

	MouseDown   // Mouse button pressed at a frame position
	MouseUp     // Mouse button released
	MouseMotion // Pointer moved
	Close       // Window closed by the user

	JoyDown // Joystick button pressed
	JoyUp   // Joystick button released
)

func (t Type) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	case Hold:
		return "hold"
	case MouseDown:
		return "mouse_down"
	case MouseUp:
		return "mouse_up"
	case MouseMotion:
		return "mouse_motion"
	case Close:
		return "close"
	case JoyDown:
		return "joy_down"
	case JoyUp:
		return "joy_up"
	}
	return "unknown"
}

// Key reports whether events of this type carry a key name.
func (t Type) Key() bool {
	return t == Press || t == Release || t == Hold
}

// Joy reports whether events of this type carry a joystick button.
func (t Type) Joy() bool {
	return t == JoyDown || t == JoyUp
}
