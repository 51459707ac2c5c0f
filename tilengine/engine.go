// Package tilengine is a 2D graphics engine that renders tilemap layers,
// sprites and palette animations scanline by scanline into a 32 bit frame
// buffer.
//
// An Engine owns a fixed number of layer, sprite and animation slots
// addressed by index. Resources (palettes, bitmaps, tilesets, tilemaps,
// spritesets, sequences and object lists) are created with the resource
// package or loaded from asset files, and bound to slots. Every frame is
// produced by UpdateFrame, which advances the animations and composites the
// slots line by line, calling the raster callback before each line.
package tilengine

import (
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/valerio/go-tilengine/tilengine/anim"
	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/loader"
	"github.com/valerio/go-tilengine/tilengine/resource"
	"github.com/valerio/go-tilengine/tilengine/video"
)

// Version is the engine version, packed as 0x00MMmmpp.
const Version = 0x000F02

// LogLevel selects which engine events are logged.
type LogLevel int

const (
	LogNone LogLevel = iota
	LogErrors
	LogVerbose
)

// Engine is a rendering context.
type Engine struct {
	renderer *video.Renderer
	loader   *loader.Loader

	logger   *slog.Logger
	level    *slog.LevelVar
	logLevel LogLevel
	lastErr  error

	frame      int
	animations []*anim.Cycle
	players    []*anim.Player
	tiles      map[*resource.Tileset]*anim.Tiles

	world *world
}

// Option configures an engine at creation.
type Option func(*Engine)

// WithLogger makes the engine log through logger instead of stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLoader makes the engine load assets through l.
func WithLoader(l *loader.Loader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

var current atomic.Pointer[Engine]

// Init creates an engine rendering hres x vres frames with the given number
// of layer, sprite and palette animation slots. The new engine becomes the
// current context.
func Init(hres, vres, numLayers, numSprites, numAnimations int, opts ...Option) (*Engine, error) {
	if numAnimations < 0 {
		return nil, errcode.New("Init", errcode.WrongSize)
	}
	renderer, err := video.NewRenderer(hres, vres, numLayers, numSprites)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		renderer:   renderer,
		level:      new(slog.LevelVar),
		animations: make([]*anim.Cycle, numAnimations),
		players:    make([]*anim.Player, numSprites),
		tiles:      make(map[*resource.Tileset]*anim.Tiles),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: e.level}))
	}
	if e.loader == nil {
		e.loader = loader.New(e.logger)
	}
	e.SetLogLevel(LogErrors)

	e.logger.Debug("engine initialized",
		"width", hres, "height", vres,
		"layers", numLayers, "sprites", numSprites, "animations", numAnimations)
	current.Store(e)
	return e, nil
}

// Deinit stops every animation, releases the world and empties the slots.
// Resources owned by the caller stay alive.
func (e *Engine) Deinit() {
	if e.renderer == nil {
		return
	}
	e.ReleaseWorld()
	for i, c := range e.animations {
		if c != nil {
			c.Close()
			e.animations[i] = nil
		}
	}
	for _, a := range e.tiles {
		if a != nil {
			a.Stop()
		}
	}
	e.tiles = nil
	e.players = nil
	e.renderer = nil
	current.CompareAndSwap(e, nil)
	e.logger.Debug("engine released")
}

// SetContext makes e the current context.
func SetContext(e *Engine) {
	current.Store(e)
}

// Context returns the current context, or nil.
func Context() *Engine {
	return current.Load()
}

// DeleteContext releases e, clearing the current context if it was e.
func DeleteContext(e *Engine) {
	if e != nil {
		e.Deinit()
	}
}

// report records err as the last error and logs it. It returns err
// unchanged so operations can end with return e.report(err).
func (e *Engine) report(err error) error {
	e.lastErr = err
	if err != nil && e.logLevel >= LogErrors {
		e.logger.Error("tilengine", "err", err)
	}
	return err
}

// LastError returns the code of the last operation.
func (e *Engine) LastError() errcode.Code {
	return errcode.Of(e.lastErr)
}

// SetLastError overrides the last error code.
func (e *Engine) SetLastError(code errcode.Code) {
	if code == errcode.OK {
		e.lastErr = nil
		return
	}
	e.lastErr = errcode.New("SetLastError", code)
}

// SetLogLevel selects which events are logged.
func (e *Engine) SetLogLevel(level LogLevel) {
	e.logLevel = level
	switch level {
	case LogNone:
		e.level.Set(slog.LevelError + 4)
	case LogErrors:
		e.level.Set(slog.LevelError)
	default:
		e.level.Set(slog.LevelDebug)
	}
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Loader returns the asset loader used by the Load methods.
func (e *Engine) Loader() *loader.Loader { return e.loader }

func (e *Engine) Version() int { return Version }

func (e *Engine) Width() int {
	if e.renderer == nil {
		return 0
	}
	return e.renderer.Width()
}

func (e *Engine) Height() int {
	if e.renderer == nil {
		return 0
	}
	return e.renderer.Height()
}

func (e *Engine) NumLayers() int {
	if e.renderer == nil {
		return 0
	}
	return e.renderer.NumLayers()
}

func (e *Engine) NumSprites() int {
	if e.renderer == nil {
		return 0
	}
	return e.renderer.NumSprites()
}

// NumObjects returns the number of live resources.
func (e *Engine) NumObjects() int {
	n, _ := resource.Stats()
	return n
}

// UsedMemory returns the approximate number of bytes held by live
// resources.
func (e *Engine) UsedMemory() int {
	_, n := resource.Stats()
	return n
}

// Frame returns the number of the last rendered frame.
func (e *Engine) Frame() int { return e.frame }

func (e *Engine) check(op string) error {
	if e.renderer == nil {
		return errcode.New(op, errcode.NullPointer)
	}
	return nil
}

// SetBGColor sets the color drawn where no layer covers the frame.
func (e *Engine) SetBGColor(r, g, b uint8) {
	if e.renderer != nil {
		e.renderer.SetBGColor(resource.RGB(r, g, b))
	}
}

// SetBGColorFromTilemap uses the background color stored in tm.
func (e *Engine) SetBGColorFromTilemap(tm *resource.Tilemap) error {
	if err := e.check("SetBGColorFromTilemap"); err != nil {
		return e.report(err)
	}
	if tm == nil || tm.Deleted() {
		return e.report(errcode.New("SetBGColorFromTilemap", errcode.RefTilemap))
	}
	e.renderer.SetBGColor(tm.BGColor())
	return e.report(nil)
}

// DisableBGColor stops clearing the frame before drawing layers.
func (e *Engine) DisableBGColor() {
	if e.renderer != nil {
		e.renderer.DisableBGColor()
	}
}

// SetBGBitmap draws bmp behind every layer; nil disables it.
func (e *Engine) SetBGBitmap(bmp *resource.Bitmap) error {
	if err := e.check("SetBGBitmap"); err != nil {
		return e.report(err)
	}
	return e.report(e.renderer.SetBGBitmap(bmp))
}

// SetBGPalette changes the palette of the background bitmap.
func (e *Engine) SetBGPalette(p *resource.Palette) error {
	if err := e.check("SetBGPalette"); err != nil {
		return e.report(err)
	}
	return e.report(e.renderer.SetBGPalette(p))
}

// SetRasterCallback sets the function called before each line is drawn.
func (e *Engine) SetRasterCallback(fn func(line int)) {
	if e.renderer != nil {
		e.renderer.SetRasterCallback(fn)
	}
}

// SetFrameCallback sets the function called after each frame is drawn.
func (e *Engine) SetFrameCallback(fn func(frame int)) {
	if e.renderer != nil {
		e.renderer.SetFrameCallback(fn)
	}
}

// SetCustomBlendFunction sets the per channel function of BlendCustom.
func (e *Engine) SetCustomBlendFunction(fn func(src, dst uint8) uint8) {
	if e.renderer != nil {
		e.renderer.SetCustomBlendFunction(fn)
	}
}

// SetRenderTarget renders into buf, whose rows are pitch bytes apart. A nil
// buf selects the internal frame buffer.
func (e *Engine) SetRenderTarget(buf []uint32, pitch int) error {
	if err := e.check("SetRenderTarget"); err != nil {
		return e.report(err)
	}
	return e.report(e.renderer.SetTarget(buf, pitch))
}

// FrameBuffer returns the frame buffer being rendered to.
func (e *Engine) FrameBuffer() *video.FrameBuffer {
	if e.renderer == nil {
		return nil
	}
	return e.renderer.Target()
}

// UpdateFrame advances the animations and renders a frame. A zero frame
// continues from the previous one.
func (e *Engine) UpdateFrame(frame int) error {
	if err := e.check("UpdateFrame"); err != nil {
		return e.report(err)
	}
	if frame == 0 {
		frame = e.frame + 1
	}
	e.frame = frame

	e.updateAnimations(frame)
	e.updateWorldSprites()
	e.renderer.Draw(frame)
	return e.report(nil)
}
