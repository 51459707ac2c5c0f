package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-tilengine/tilengine/backend"
	"github.com/valerio/go-tilengine/tilengine/backend/terminal/render"
	"github.com/valerio/go-tilengine/tilengine/display"
	"github.com/valerio/go-tilengine/tilengine/input/event"
	"github.com/valerio/go-tilengine/tilengine/video"
)

const (
	logRows       = 4
	minLogTermH   = 16
	logBufferSize = 100

	// Key expiry timeout - slightly longer than typical key repeat interval.
	// Terminals report no key releases, a key counts as released when its
	// repeats stop.
	keyTimeout = 100 * time.Millisecond
)

// Backend implements the Backend interface using tcell for terminal
// rendering. Frames are drawn with truecolor half blocks, two frame rows
// per cell, shrunk to fit the terminal.
type Backend struct {
	screen    tcell.Screen
	running   bool
	logBuffer *render.LogBuffer
	logLevel  slog.Level
	config    backend.Config
	title     string
	status    string
	sampler   render.Sampler
	now       func() time.Time

	keyStates  map[string]time.Time // Last time each key was reported
	activeKeys map[string]bool      // Keys active in previous update
	buttons    tcell.ButtonMask
	mouseX     int
	mouseY     int

	mu      sync.Mutex
	pending []backend.InputEvent
	done    chan struct{}
}

// New creates a new terminal backend on the controlling terminal.
func New() *Backend {
	return &Backend{
		logLevel: slog.LevelInfo,
		now:      time.Now,
	}
}

// NewWithScreen creates a backend drawing on an existing screen, such as a
// tcell simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	t := New()
	t.screen = screen
	return t
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.Config) error {
	t.config = config
	t.title = config.Title
	t.keyStates = make(map[string]time.Time)
	t.activeKeys = make(map[string]bool)
	t.mouseX, t.mouseY = -1, -1
	t.sampler = render.Sampler{Step: 1}
	t.done = make(chan struct{})

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.screen.EnableMouse()
	t.running = true

	// Logs go to the panel under the frame instead of the terminal
	t.logBuffer = render.NewLogBuffer(logBufferSize)
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)))
	slog.Info("Terminal backend initialized", "width", config.Width, "height", config.Height)

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	// Set up signal handling for graceful shutdown
	go t.handleSignals(t.done)

	return nil
}

// SetTitle sets the text of the title bar.
func (t *Backend) SetTitle(title string) { t.title = title }

// SetStatus sets the text shown next to the title.
func (t *Backend) SetStatus(status string) { t.status = status }

// LogBuffer returns the buffer backing the log panel.
func (t *Backend) LogBuffer() *render.LogBuffer { return t.logBuffer }

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	var events []backend.InputEvent
	now := t.now()

	// Poll for input events synchronously
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			events = t.processKeyEvent(ev, now, events)
		case *tcell.EventMouse:
			events = t.processMouseEvent(ev, events)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	// Track which keys are currently active this update
	currentlyActive := make(map[string]bool)
	for key, lastPressed := range t.keyStates {
		if now.Sub(lastPressed) >= keyTimeout {
			// Key has expired - remove it
			delete(t.keyStates, key)
			continue
		}
		currentlyActive[key] = true
		if !t.activeKeys[key] {
			events = append(events, backend.InputEvent{Type: event.Press, Key: key})
		} else {
			events = append(events, backend.InputEvent{Type: event.Hold, Key: key})
		}
	}

	// Check for released keys (were active last update but not this one)
	for key := range t.activeKeys {
		if !currentlyActive[key] {
			events = append(events, backend.InputEvent{Type: event.Release, Key: key})
		}
	}
	t.activeKeys = currentlyActive

	t.mu.Lock()
	events = append(events, t.pending...)
	t.pending = nil
	t.mu.Unlock()

	if !t.running || frame == nil {
		return events, nil
	}

	t.render(frame)
	t.screen.Show()

	return events, nil
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.done != nil {
		close(t.done)
		t.done = nil
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

func (t *Backend) handleSignals(done <-chan struct{}) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	defer signal.Stop(signals)

	select {
	case <-signals:
		t.queue(backend.InputEvent{Type: event.Close})
	case <-done:
	}
}

func (t *Backend) queue(evt backend.InputEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, evt)
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyEscape:     "Escape",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyTab:        "Tab",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// KeyName returns the name of a tcell key event, or "" for keys without one.
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return "Space"
		}
		return string(ev.Rune())
	}
	return tcellKeyNameMap[ev.Key()]
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time, events []backend.InputEvent) []backend.InputEvent {
	if ev.Key() == tcell.KeyCtrlC {
		t.running = false
		return append(events, backend.InputEvent{Type: event.Close})
	}

	name := KeyName(ev)
	switch name {
	case "":
		return events
	case "+", "=":
		t.changeLogLevel(1)
		return events
	case "-", "_":
		t.changeLogLevel(-1)
		return events
	}

	// Clear other directions to simulate exclusive directional input, the
	// terminal only repeats the last key held
	switch name {
	case "Up", "Down", "Left", "Right":
		delete(t.keyStates, "Up")
		delete(t.keyStates, "Down")
		delete(t.keyStates, "Left")
		delete(t.keyStates, "Right")
	}
	t.keyStates[name] = now
	return events
}

var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button int
}{
	{tcell.Button1, backend.ButtonLeft},
	{tcell.Button3, backend.ButtonMiddle},
	{tcell.Button2, backend.ButtonRight},
}

func (t *Backend) processMouseEvent(ev *tcell.EventMouse, events []backend.InputEvent) []backend.InputEvent {
	col, row := ev.Position()
	x, y := t.sampler.FramePosition(col, row-1)
	if row < 1 || x >= t.config.Width || y >= t.config.Height {
		return events
	}

	if x != t.mouseX || y != t.mouseY {
		t.mouseX, t.mouseY = x, y
		events = append(events, backend.InputEvent{Type: event.MouseMotion, X: x, Y: y})
	}

	buttons := ev.Buttons()
	for _, mb := range mouseButtons {
		was, is := t.buttons&mb.mask != 0, buttons&mb.mask != 0
		switch {
		case is && !was:
			events = append(events, backend.InputEvent{Type: event.MouseDown, Button: mb.button, X: x, Y: y})
		case was && !is:
			events = append(events, backend.InputEvent{Type: event.MouseUp, Button: mb.button, X: x, Y: y})
		}
	}
	t.buttons = buttons
	return events
}

func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel
	switch direction {
	case -1:
		switch t.logLevel {
		case slog.LevelDebug:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelError
		}
	case 1:
		switch t.logLevel {
		case slog.LevelError:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelDebug
		}
	}
	if oldLevel != t.logLevel {
		slog.Info("Log filter changed", "level", t.logLevel.String())
	}
}

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	panelRows := 0
	if termHeight >= minLogTermH {
		panelRows = logRows
	}
	imageRows := termHeight - 1 - panelRows
	if imageRows <= 0 || termWidth <= 0 {
		return
	}

	t.sampler = render.FitSampler(frame.Width(), frame.Height(), termWidth, imageRows)
	_, usedRows := t.sampler.Cells(frame.Width(), frame.Height())

	t.drawTitle(termWidth)
	t.drawFrame(frame)
	if panelRows > 0 {
		t.drawLogs(1+usedRows, termWidth, termHeight)
	}
}

func (t *Backend) drawTitle(termWidth int) {
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	title := " " + t.title + " "
	if t.status != "" {
		title += "| " + t.status + " "
	}
	if t.sampler.Step > 1 {
		title += fmt.Sprintf("| 1:%d ", t.sampler.Step)
	}
	drawText(t.screen, 0, 0, termWidth, title, titleStyle)
}

func (t *Backend) drawFrame(frame *video.FrameBuffer) {
	cols, rows := t.sampler.Cells(frame.Width(), frame.Height())
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top, bottom := t.sampler.Pixels(frame, col, row)
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			t.screen.SetContent(col, row+1, render.UpperHalfBlock, nil, style)
		}
	}
}

func cellColor(c uint32) tcell.Color {
	r, g, b, _ := display.UnpackRGBA(c)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (t *Backend) drawLogs(startY, termWidth, termHeight int) {
	availableHeight := termHeight - startY
	if availableHeight <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range t.logBuffer.GetRecent(availableHeight, t.logLevel) {
		style := infoStyle
		switch entry.Level {
		case slog.LevelDebug:
			style = debugStyle
		case slog.LevelWarn:
			style = warnStyle
		case slog.LevelError:
			style = errStyle
		}
		drawText(t.screen, 0, startY+i, termWidth, render.FormatLogEntry(entry), style)
	}
}

func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if x+i >= maxWidth {
			return
		}
		screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
