//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/valerio/go-tilengine/tilengine/backend"
	"github.com/valerio/go-tilengine/tilengine/display"
	"github.com/valerio/go-tilengine/tilengine/input"
	"github.com/valerio/go-tilengine/tilengine/input/event"
	"github.com/valerio/go-tilengine/tilengine/video"
	"github.com/veandco/go-sdl2/sdl"
)

// Backend implements the Backend interface using SDL2 bindings
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed renderer, see build tags (sdl2)
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	config   backend.Config
	events   []backend.InputEvent

	joysticks []*sdl.Joystick
	joyIndex  map[sdl.JoystickID]int   // instance id to device index
	hats      map[sdl.JoystickID]uint8 // last hat value per joystick
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.Config) error {
	s.config = config

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_JOYSTICK); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}
	s.openJoysticks()

	scale := config.Scale
	if scale <= 0 {
		scale = s.fitScale()
	}

	var windowFlags uint32 = sdl.WINDOW_SHOWN
	if config.Fullscreen {
		windowFlags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(config.Width*scale),
		int32(config.Height*scale),
		windowFlags,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	quality := "1"
	if config.Nearest {
		quality = "0"
	}
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, quality)

	var rendererFlags uint32 = sdl.RENDERER_ACCELERATED
	if config.VSync {
		rendererFlags |= sdl.RENDERER_PRESENTVSYNC
	}
	renderer, err := sdl.CreateRenderer(window, -1, rendererFlags)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer

	// Letterbox the frame and report mouse positions in frame pixels
	if err := renderer.SetLogicalSize(int32(config.Width), int32(config.Height)); err != nil {
		slog.Warn("Failed to set logical size", "error", err)
	}

	// Frame buffer words are 0xAARRGGBB, which is ARGB8888 in native order
	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(config.Width),
		int32(config.Height),
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %w", err)
	}
	s.texture = texture

	slog.Info("SDL2 backend initialized", "scale", scale, "vsync", config.VSync, "fullscreen", config.Fullscreen)
	return nil
}

func (s *Backend) openJoysticks() {
	s.joyIndex = make(map[sdl.JoystickID]int)
	s.hats = make(map[sdl.JoystickID]uint8)
	for i := 0; i < sdl.NumJoysticks(); i++ {
		joy := sdl.JoystickOpen(i)
		if joy == nil || !joy.Attached() {
			continue
		}
		slog.Info("Joystick opened", "index", i, "name", joy.Name())
		s.joysticks = append(s.joysticks, joy)
		s.joyIndex[joy.InstanceID()] = i
	}
}

// fitScale returns the largest integer scale that fits the desktop.
func (s *Backend) fitScale() int {
	mode, err := sdl.GetDesktopDisplayMode(0)
	if err != nil {
		return display.DefaultPixelScale
	}
	scale := min(int(mode.W)/s.config.Width, int(mode.H)/s.config.Height)
	return max(1, min(scale, display.MaxPixelScale))
}

// SetTitle sets the window title.
func (s *Backend) SetTitle(title string) {
	if s.window != nil {
		s.window.SetTitle(title)
	}
}

// Update renders a frame and processes events
func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	s.events = nil
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		s.handleEvent(ev)
	}

	if frame != nil {
		if err := s.renderFrame(frame); err != nil {
			return s.events, err
		}
	}
	return s.events, nil
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	for _, joy := range s.joysticks {
		joy.Close()
	}
	s.joysticks = nil

	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

func (s *Backend) handleEvent(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		s.events = append(s.events, backend.InputEvent{Type: event.Close})

	case *sdl.KeyboardEvent:
		// Ignore key repeat events
		if e.Repeat != 0 {
			return
		}
		name, ok := keyName(e.Keysym.Sym)
		if !ok {
			return
		}
		typ := event.Press
		if e.Type == sdl.KEYUP {
			typ = event.Release
		}
		s.events = append(s.events, backend.InputEvent{Type: typ, Key: name})

	case *sdl.MouseButtonEvent:
		typ := event.MouseDown
		if e.Type == sdl.MOUSEBUTTONUP {
			typ = event.MouseUp
		}
		s.events = append(s.events, backend.InputEvent{Type: typ, Button: mouseButton(e.Button), X: int(e.X), Y: int(e.Y)})

	case *sdl.MouseMotionEvent:
		s.events = append(s.events, backend.InputEvent{Type: event.MouseMotion, X: int(e.X), Y: int(e.Y)})

	case *sdl.JoyButtonEvent:
		index, ok := s.joyIndex[e.Which]
		if !ok {
			return
		}
		typ := event.JoyDown
		if e.State != sdl.PRESSED {
			typ = event.JoyUp
		}
		s.events = append(s.events, backend.InputEvent{Type: typ, Joystick: index, Button: int(e.Button)})

	case *sdl.JoyHatEvent:
		index, ok := s.joyIndex[e.Which]
		if !ok || e.Hat != 0 {
			return
		}
		prev := s.hats[e.Which]
		s.hats[e.Which] = e.Value
		for _, h := range hatButtons {
			was, is := prev&h.mask != 0, e.Value&h.mask != 0
			switch {
			case is && !was:
				s.events = append(s.events, backend.InputEvent{Type: event.JoyDown, Joystick: index, Button: h.button})
			case was && !is:
				s.events = append(s.events, backend.InputEvent{Type: event.JoyUp, Joystick: index, Button: h.button})
			}
		}
	}
}

// hatButtons maps hat direction bits to the buttons they are reported as.
var hatButtons = []struct {
	mask   uint8
	button int
}{
	{sdl.HAT_UP, input.HatUp},
	{sdl.HAT_RIGHT, input.HatRight},
	{sdl.HAT_DOWN, input.HatDown},
	{sdl.HAT_LEFT, input.HatLeft},
}

// keyMapping maps SDL2 special keys to key names
var keyMapping = map[sdl.Keycode]string{
	sdl.K_UP:        "Up",
	sdl.K_DOWN:      "Down",
	sdl.K_LEFT:      "Left",
	sdl.K_RIGHT:     "Right",
	sdl.K_RETURN:    "Enter",
	sdl.K_ESCAPE:    "Escape",
	sdl.K_BACKSPACE: "Backspace",
	sdl.K_TAB:       "Tab",
	sdl.K_SPACE:     "Space",
	sdl.K_F1:        "F1",
	sdl.K_F2:        "F2",
	sdl.K_F3:        "F3",
	sdl.K_F4:        "F4",
	sdl.K_F5:        "F5",
	sdl.K_F9:        "F9",
	sdl.K_F10:       "F10",
	sdl.K_F11:       "F11",
	sdl.K_F12:       "F12",
}

func keyName(key sdl.Keycode) (string, bool) {
	if name, ok := keyMapping[key]; ok {
		return name, true
	}
	// printable keys use their ASCII code as keycode
	if key > ' ' && key < 0x7F {
		return string(rune(key)), true
	}
	return "", false
}

func mouseButton(b uint8) int {
	switch b {
	case sdl.BUTTON_LEFT:
		return backend.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return backend.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return backend.ButtonRight
	}
	return int(b)
}

func (s *Backend) renderFrame(frame *video.FrameBuffer) error {
	pixels := frame.ToSlice()
	if err := s.texture.Update(nil, unsafe.Pointer(&pixels[0]), frame.Pitch()); err != nil {
		return fmt.Errorf("failed to update texture: %w", err)
	}

	s.renderer.SetDrawColor(0, 0, 0, display.FullAlpha)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}
