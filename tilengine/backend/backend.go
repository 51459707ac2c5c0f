// Package backend defines the platform layer of the window shell: something
// that presents frames and reports input.
package backend

import (
	"github.com/valerio/go-tilengine/tilengine/input/event"
	"github.com/valerio/go-tilengine/tilengine/video"
)

// Backend represents an output platform (terminal, SDL window, headless).
// Backends are responsible for:
// - Presenting frames on their specific output
// - Translating platform events to key names and mouse positions
// - Handling backend-specific features (snapshots, log panels)
type Backend interface {
	// Init configures the backend. It is a required step before calling
	// Update.
	Init(config Config) error

	// Update presents frame, if not nil, and returns the input events
	// received since the previous call. Mouse positions are reported in
	// frame buffer pixels.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// Titler is implemented by backends that can show a window title.
type Titler interface {
	SetTitle(title string)
}

// StatusReporter is implemented by backends with a status line.
type StatusReporter interface {
	SetStatus(status string)
}

// Config holds configuration for backends
type Config struct {
	Title      string
	Width      int // Frame buffer width
	Height     int // Frame buffer height
	Scale      int // Window pixel scale, 0 picks the largest that fits
	VSync      bool
	Fullscreen bool
	Nearest    bool // Unfiltered scaling
}

// InputEvent is a platform event translated to backend independent terms.
type InputEvent struct {
	Type     event.Type
	Key      string // Key name for key events, see input.DefaultKeyMap
	Button   int    // Mouse button, 1 left, 2 middle, 3 right; joystick button for joystick events
	Joystick int    // Joystick index for joystick events
	X, Y     int    // Pointer position for mouse events
}

// Mouse buttons
const (
	ButtonLeft   = 1
	ButtonMiddle = 2
	ButtonRight  = 3
)
