package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/backend"
	"github.com/valerio/go-tilengine/tilengine/backend/headless"
	"github.com/valerio/go-tilengine/tilengine/backend/sdl2"
	"github.com/valerio/go-tilengine/tilengine/backend/terminal"
	"github.com/valerio/go-tilengine/tilengine/config"
	"github.com/valerio/go-tilengine/tilengine/debug"
	"github.com/valerio/go-tilengine/tilengine/demo"
	"github.com/valerio/go-tilengine/tilengine/timing"
	"github.com/valerio/go-tilengine/tilengine/window"
)

var windowFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Usage: "YAML settings file; flags override its values",
	},
	cli.StringFlag{
		Name:  "backend, b",
		Usage: "Output backend: headless, terminal or sdl2",
	},
	cli.IntFlag{
		Name:  "frames",
		Usage: "Number of frames to run in headless mode (required for headless)",
	},
	cli.IntFlag{
		Name:  "snapshot-interval",
		Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
	},
	cli.StringFlag{
		Name:  "snapshot-dir",
		Usage: "Directory to save frame snapshots (default: temp directory)",
	},
	cli.IntFlag{
		Name:  "scale",
		Usage: "Window pixel scale, 1 to 5",
	},
	cli.BoolFlag{
		Name:  "vsync",
		Usage: "Pace frames to 60 fps",
	},
	cli.BoolFlag{
		Name:  "fullscreen",
		Usage: "Open the window fullscreen (sdl2)",
	},
	cli.BoolFlag{
		Name:  "crt",
		Usage: "Start with the CRT effect enabled",
	},
	cli.BoolFlag{
		Name:  "threaded",
		Usage: "Render and present in a separate goroutine",
	},
	cli.StringFlag{
		Name:  "test-pattern",
		Usage: "Draw a test pattern over every frame: checkerboard, gradient, stripes or diagonal",
	},
	cli.StringFlag{
		Name:  "log-level",
		Usage: "Engine log level: none, errors or verbose",
	},
}

var assetFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "assets",
		Usage: "Directory asset names are relative to",
	},
	cli.StringFlag{
		Name:  "pack",
		Usage: "Resource pack to load assets from",
	},
	cli.StringFlag{
		Name:  "key",
		Usage: "Passphrase of the resource pack",
	},
}

// settings loads the config file named by --config, if any, and applies
// the flags that were set on top of it.
func settings(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if c.IsSet("backend") {
		cfg.Window.Backend = c.String("backend")
	}
	if c.IsSet("scale") {
		cfg.Window.Scale = c.Int("scale")
	}
	if c.IsSet("vsync") {
		cfg.Window.VSync = c.Bool("vsync")
	}
	if c.IsSet("fullscreen") {
		cfg.Window.Fullscreen = c.Bool("fullscreen")
	}
	if c.IsSet("crt") {
		cfg.Window.CRT = c.Bool("crt")
	}
	if c.IsSet("threaded") {
		cfg.Window.Threaded = c.Bool("threaded")
	}
	if c.IsSet("frames") {
		cfg.Headless.Frames = c.Int("frames")
	}
	if c.IsSet("snapshot-interval") {
		cfg.Headless.SnapshotInterval = c.Int("snapshot-interval")
	}
	if c.IsSet("snapshot-dir") {
		cfg.Headless.SnapshotDir = c.String("snapshot-dir")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("assets") {
		cfg.Assets.Path = c.String("assets")
	}
	if c.IsSet("pack") {
		cfg.Assets.Pack = c.String("pack")
	}
	if c.IsSet("key") {
		cfg.Assets.PackKey = c.String("key")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newBackend creates the output backend selected by cfg.
func newBackend(cfg *config.Config, name string) (backend.Backend, error) {
	switch cfg.Window.Backend {
	case config.BackendHeadless:
		frames := cfg.Headless.Frames
		if frames <= 0 {
			return nil, errors.New("headless mode requires --frames option with a positive value")
		}

		// Set up debug logging for headless mode
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		slog.SetDefault(slog.New(handler))

		snapshots, err := headless.CreateSnapshotConfig(cfg.Headless.SnapshotInterval, cfg.Headless.SnapshotDir, name)
		if err != nil {
			return nil, err
		}
		return headless.New(frames, snapshots), nil
	case config.BackendTerminal:
		return terminal.New(), nil
	case config.BackendSDL2:
		return sdl2.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Window.Backend)
}

func windowOptions(cfg *config.Config, c *cli.Context) ([]window.Option, window.Flags, error) {
	var flags window.Flags
	if cfg.Window.VSync {
		flags |= window.VSync
	}
	if cfg.Window.Fullscreen {
		flags |= window.Fullscreen
	}
	if cfg.Window.Nearest {
		flags |= window.Nearest
	}
	if cfg.Window.Scale > 0 {
		flags |= window.Flags(cfg.Window.Scale) << 2
	}

	var opts []window.Option
	if cfg.Window.Backend == config.BackendHeadless {
		opts = append(opts, window.WithLimiter(timing.NewNoOpLimiter()))
	}
	if cfg.Headless.SnapshotDir != "" {
		opts = append(opts, window.WithSnapshotDir(cfg.Headless.SnapshotDir))
	}
	if name := c.String("test-pattern"); name != "" {
		p, err := debug.ParsePattern(name)
		if err != nil {
			return nil, 0, err
		}
		opts = append(opts, window.WithTestPattern(p))
	}
	return opts, flags, nil
}

// newEngine creates an engine sized by cfg with its assets configured.
func newEngine(cfg *config.Config) (*tilengine.Engine, error) {
	e, err := tilengine.Init(cfg.Engine.Width, cfg.Engine.Height,
		cfg.Engine.Layers, cfg.Engine.Sprites, cfg.Engine.Anims,
		tilengine.WithLogger(slog.Default()))
	if err != nil {
		return nil, err
	}
	e.SetLogLevel(cfg.LogLevel())
	if cfg.Assets.Path != "" {
		e.SetLoadPath(cfg.Assets.Path)
	}
	if cfg.Assets.Pack != "" {
		if err := e.OpenResourcePack(cfg.Assets.Pack, cfg.Assets.PackKey); err != nil {
			e.Deinit()
			return nil, err
		}
	}
	return e, nil
}

// play opens a window for cfg and runs s until it closes.
func play(c *cli.Context, cfg *config.Config, s demo.Scene) error {
	b, err := newBackend(cfg, s.Name())
	if err != nil {
		return err
	}
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer e.Deinit()
	defer e.CloseResourcePack()

	opts, flags, err := windowOptions(cfg, c)
	if err != nil {
		return err
	}
	create := window.Create
	if cfg.Window.Threaded {
		create = window.CreateThread
	}
	w, err := create(e, b, flags, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Delete(); err != nil {
			slog.Error("failed to close window", "error", err)
		}
	}()
	if cfg.Window.CRT {
		crt := window.DefaultCRT
		w.EnableCRTEffect(crt.Overlay, crt.OverlayFactor, crt.Threshold,
			crt.V0, crt.V1, crt.V2, crt.V3, crt.Blur, crt.GlowFactor)
	}

	h, headlessRun := b.(*headless.Backend)
	if headlessRun {
		last := cfg.Headless.Frames
		e.SetFrameCallback(func(frame int) {
			if frame != last {
				return
			}
			slog.Debug(debug.FormatSummary(e))
			for _, sprite := range debug.Sprites(e) {
				slog.Debug(sprite.String())
			}
		})
	}

	if err := demo.Run(e, w, s); err != nil {
		return err
	}
	if headlessRun {
		slog.Info("frame digest", "frames", h.Frames(), "digest", debug.FormatDigest(h.Digest()))
	}
	return nil
}

func runDemo(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowCommandHelp(c, "demo")
		return fmt.Errorf("no scene given, choose one of %v", demo.Names())
	}
	s, err := demo.New(c.Args().Get(0))
	if err != nil {
		return err
	}
	cfg, err := settings(c)
	if err != nil {
		return err
	}
	return play(c, cfg, s)
}

func runWorld(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowCommandHelp(c, "world")
		return errors.New("no map given")
	}
	cfg, err := settings(c)
	if err != nil {
		return err
	}
	return play(c, cfg, demo.NewWorld(c.Args().Get(0)))
}
