// Package window hosts an engine in a backend: it presents the frames,
// feeds key events to the player inputs and applies the CRT effect.
//
// A window runs either in the caller's goroutine, driven by Process and
// DrawFrame, or in its own goroutine (CreateThread), where DrawFrame hands
// the frame over and WaitRedraw waits for it to be presented. The engine is
// not synchronized: in threaded mode the caller must not touch it between
// DrawFrame and WaitRedraw.
package window

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/backend"
	"github.com/valerio/go-tilengine/tilengine/debug"
	"github.com/valerio/go-tilengine/tilengine/display"
	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/input"
	"github.com/valerio/go-tilengine/tilengine/input/action"
	"github.com/valerio/go-tilengine/tilengine/input/event"
	"github.com/valerio/go-tilengine/tilengine/timing"
)

const (
	// DefaultTitle is the title of new windows.
	DefaultTitle = "Tilengine window"

	// SnapshotName prefixes the files saved with the snapshot key.
	SnapshotName = "tilengine"
)

// Window presents an engine's frames through a backend.
type Window struct {
	engine  *tilengine.Engine
	backend backend.Backend
	input   *input.Manager
	limiter timing.Limiter
	clock   *timing.Clock
	stats   *debug.Stats
	flags   Flags
	scale   int
	pattern *debug.Pattern

	snapshotDir  string
	snapshotNext atomic.Bool
	snapshots    []string

	active atomic.Bool

	mu         sync.Mutex // guards the fields below
	fx         effects
	title      string
	titleDirty bool
	onEvent    func(backend.InputEvent)

	// threaded mode
	threaded bool
	group    errgroup.Group
	requests chan int
	redrawn  chan struct{}
	stopped  chan struct{}
	closing  sync.Once
}

// Option configures a window at creation.
type Option func(*Window)

// WithLimiter paces presented frames with l instead of the default, which
// waits for the next 60 Hz tick when VSync is set and does not wait
// otherwise.
func WithLimiter(l timing.Limiter) Option {
	return func(w *Window) { w.limiter = l }
}

// WithInput shares an input manager with the window.
func WithInput(m *input.Manager) Option {
	return func(w *Window) { w.input = m }
}

// WithOverlay sets the image tiled by OverlayCustom.
func WithOverlay(img image.Image) Option {
	return func(w *Window) { w.fx.custom = img }
}

// WithSnapshotDir sets the directory the snapshot key saves frames to. The
// default is the working directory.
func WithSnapshotDir(dir string) Option {
	return func(w *Window) { w.snapshotDir = dir }
}

// WithTestPattern presents a test pattern instead of the engine output.
func WithTestPattern(p debug.Pattern) Option {
	return func(w *Window) { w.pattern = &p }
}

func newWindow(e *tilengine.Engine, b backend.Backend, flags Flags, opts []Option) (*Window, error) {
	if e == nil || b == nil || e.FrameBuffer() == nil {
		return nil, errcode.New("CreateWindow", errcode.NullPointer)
	}
	w := &Window{
		engine:     e,
		backend:    b,
		flags:      flags,
		scale:      flags.Scale(),
		clock:      timing.NewClock(),
		stats:      debug.NewStats(),
		title:      DefaultTitle,
		titleDirty: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.scale == 0 {
		w.scale = display.DefaultPixelScale
	}
	if w.input == nil {
		w.input = input.NewManager()
	}
	if w.limiter == nil {
		w.limiter = timing.NewNoOpLimiter()
		if flags.has(VSync) {
			w.limiter = timing.NewVSyncLimiter(timing.DefaultFPS)
		}
	}
	w.input.On(action.Quit, event.Press, func() { w.active.Store(false) })
	w.input.On(action.CRT, event.Press, w.toggleCRT)
	w.input.On(action.Snapshot, event.Press, func() { w.snapshotNext.Store(true) })
	return w, nil
}

func (w *Window) init() error {
	err := w.backend.Init(backend.Config{
		Title:      w.title,
		Width:      w.engine.Width(),
		Height:     w.engine.Height(),
		Scale:      w.scale,
		VSync:      w.flags.has(VSync),
		Fullscreen: w.flags.has(Fullscreen),
		Nearest:    w.flags.has(Nearest),
	})
	if err != nil {
		return err
	}
	w.active.Store(true)
	slog.Debug("window created", "width", w.Width(), "height", w.Height(), "threaded", w.threaded)
	return nil
}

// Create opens a window driven from the calling goroutine with Process and
// DrawFrame.
func Create(e *tilengine.Engine, b backend.Backend, flags Flags, opts ...Option) (*Window, error) {
	w, err := newWindow(e, b, flags, opts)
	if err != nil {
		return nil, err
	}
	if err := w.init(); err != nil {
		return nil, err
	}
	return w, nil
}

// SetTitle sets the window title, shown from the next presented frame.
func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.title = title
	w.titleDirty = true
}

// Title returns the window title.
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Process polls the backend for input. It returns false once the user has
// asked to quit. Threaded windows poll on their own, Process only reports
// the state.
func (w *Window) Process() bool {
	if w.threaded || !w.IsActive() {
		return w.IsActive()
	}
	events, err := w.backend.Update(nil)
	if err != nil {
		slog.Error("window update failed", "error", err)
		w.active.Store(false)
	}
	w.handle(events)
	return w.IsActive()
}

// IsActive reports whether the window is still open.
func (w *Window) IsActive() bool {
	return w.active.Load()
}

// Input reports whether in is pressed. Combine in with action.P1..P4 to
// query other players.
func (w *Window) Input(in action.Input) bool {
	return w.input.Pressed(in)
}

// EnableInput turns input for a player on or off.
func (w *Window) EnableInput(p action.Player, enable bool) {
	w.input.Enable(p, enable)
}

// DefineInputKey assigns a key name to an input of player p.
func (w *Window) DefineInputKey(p action.Player, in action.Input, key string) {
	w.input.DefineKey(p, in, key)
}

// AssignInputJoystick binds a joystick index to player p. A negative index
// disables joystick input for the player.
func (w *Window) AssignInputJoystick(p action.Player, index int) {
	w.input.AssignJoystick(p, index)
}

// DefineInputButton assigns a joystick button to an input of player p.
func (w *Window) DefineInputButton(p action.Player, in action.Input, button int) {
	w.input.DefineButton(p, in, button)
}

// SetEventCallback registers fn to receive every backend event, after the
// window has processed it. A nil fn removes the callback.
func (w *Window) SetEventCallback(fn func(backend.InputEvent)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onEvent = fn
}

// DrawFrame renders frame and presents it. A zero frame continues from the
// previous one. Threaded windows render in their goroutine; call WaitRedraw
// before changing the engine again.
func (w *Window) DrawFrame(frame int) error {
	if !w.IsActive() {
		return nil
	}
	if w.threaded {
		select {
		case w.requests <- frame:
		case <-w.stopped:
		}
		return nil
	}
	return w.present(frame)
}

// WaitRedraw blocks until the frame handed to DrawFrame is presented.
func (w *Window) WaitRedraw() {
	if !w.threaded {
		return
	}
	select {
	case <-w.redrawn:
	case <-w.stopped:
	}
}

// Delete closes the window and releases the backend.
func (w *Window) Delete() error {
	var err error
	w.closing.Do(func() {
		w.active.Store(false)
		if w.threaded {
			close(w.requests)
			err = w.group.Wait()
			return
		}
		err = w.backend.Cleanup()
	})
	return err
}

// EnableCRTEffect turns on the CRT simulation with the given parameters.
func (w *Window) EnableCRTEffect(overlay Overlay, overlayFactor, threshold, v0, v1, v2, v3 uint8, blur bool, glowFactor uint8) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fx.crt = CRT{
		Overlay:       overlay,
		OverlayFactor: overlayFactor,
		Threshold:     threshold,
		V0:            v0,
		V1:            v1,
		V2:            v2,
		V3:            v3,
		Blur:          blur,
		GlowFactor:    glowFactor,
	}
	w.fx.crtOn = true
}

// DisableCRTEffect turns the CRT simulation off.
func (w *Window) DisableCRTEffect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fx.crtOn = false
}

// CRTEnabled reports whether the CRT simulation is on.
func (w *Window) CRTEnabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fx.crtOn
}

// EnableBlur turns the horizontal blur on or off.
func (w *Window) EnableBlur(enable bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fx.blur = enable
}

func (w *Window) toggleCRT() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.fx.crtOn && w.fx.crt == (CRT{}) {
		w.fx.crt = DefaultCRT
	}
	w.fx.crtOn = !w.fx.crtOn
}

// Delay suspends the caller for ms milliseconds.
func (w *Window) Delay(ms uint32) {
	timing.Delay(ms)
}

// Ticks returns the milliseconds elapsed since the window was created.
func (w *Window) Ticks() uint32 {
	return w.clock.Ticks()
}

// Width returns the window width in pixels.
func (w *Window) Width() int {
	return w.engine.Width() * w.scale
}

// Height returns the window height in pixels.
func (w *Window) Height() int {
	return w.engine.Height() * w.scale
}

// Snapshots returns the files saved with the snapshot key.
func (w *Window) Snapshots() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.snapshots...)
}

// Stats returns the frame statistics of the window.
func (w *Window) Stats() *debug.Stats {
	return w.stats
}

// present renders a frame, post-processes it, hands it to the backend and
// handles the events the backend returns.
func (w *Window) present(frame int) error {
	if err := w.engine.UpdateFrame(frame); err != nil {
		return err
	}
	fb := w.engine.FrameBuffer()
	if w.pattern != nil {
		debug.DrawTestPattern(fb, *w.pattern, w.stats.Frames())
	}

	w.mu.Lock()
	out := w.fx.apply(fb)
	title, titleDirty := w.title, w.titleDirty
	w.titleDirty = false
	w.mu.Unlock()

	if w.snapshotNext.CompareAndSwap(true, false) {
		if path := debug.TakeSnapshot(out, SnapshotName, w.snapshotDir); path != "" {
			w.mu.Lock()
			w.snapshots = append(w.snapshots, path)
			w.mu.Unlock()
		}
	}
	if titleDirty {
		if t, ok := w.backend.(backend.Titler); ok {
			t.SetTitle(title)
		}
	}
	if s, ok := w.backend.(backend.StatusReporter); ok {
		s.SetStatus(w.stats.String())
	}

	events, err := w.backend.Update(out)
	w.stats.Frame()
	w.handle(events)
	w.limiter.WaitForNextFrame()
	return err
}

func (w *Window) handle(events []backend.InputEvent) {
	w.mu.Lock()
	onEvent := w.onEvent
	w.mu.Unlock()

	for _, evt := range events {
		switch {
		case evt.Type == event.Close:
			w.active.Store(false)
		case evt.Type.Key():
			w.input.Trigger(evt.Key, evt.Type)
		case evt.Type.Joy():
			w.input.TriggerButton(evt.Joystick, evt.Button, evt.Type)
		}
		if onEvent != nil {
			onEvent(evt)
		}
	}
}
