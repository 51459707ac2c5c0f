// Package config loads the settings of the tilengine command from a YAML
// file. Command line flags override the file.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/display"
)

// Backend names
const (
	BackendHeadless = "headless"
	BackendTerminal = "terminal"
	BackendSDL2     = "sdl2"
)

// Config is the file layout.
type Config struct {
	Window   Window   `yaml:"window"`
	Engine   Engine   `yaml:"engine"`
	Assets   Assets   `yaml:"assets"`
	Log      Log      `yaml:"log"`
	Headless Headless `yaml:"headless"`
}

type Window struct {
	Backend    string `yaml:"backend"`
	Scale      int    `yaml:"scale"`
	VSync      bool   `yaml:"vsync"`
	Fullscreen bool   `yaml:"fullscreen"`
	Nearest    bool   `yaml:"nearest"`
	CRT        bool   `yaml:"crt"`
	Threaded   bool   `yaml:"threaded"`
}

type Engine struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Layers  int `yaml:"layers"`
	Sprites int `yaml:"sprites"`
	Anims   int `yaml:"animations"`
}

type Assets struct {
	Path    string `yaml:"path"`
	Pack    string `yaml:"pack"`
	PackKey string `yaml:"pack_key"`
}

type Log struct {
	// Level is one of none, errors or verbose
	Level string `yaml:"level"`
}

type Headless struct {
	Frames           int    `yaml:"frames"`
	SnapshotInterval int    `yaml:"snapshot_interval"`
	SnapshotDir      string `yaml:"snapshot_dir"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Window: Window{
			Backend: BackendTerminal,
			Scale:   display.DefaultPixelScale,
			VSync:   true,
		},
		Engine: Engine{
			Width:   display.DefaultWidth,
			Height:  display.DefaultHeight,
			Layers:  4,
			Sprites: 64,
			Anims:   8,
		},
		Log: Log{Level: "errors"},
	}
}

// LoadYAML decodes a config from r on top of the defaults. Unknown keys
// are rejected.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the config file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Window.Backend {
	case BackendHeadless, BackendTerminal, BackendSDL2:
	default:
		return fmt.Errorf("unknown backend %q", c.Window.Backend)
	}
	if c.Window.Scale < 0 || c.Window.Scale > display.MaxPixelScale {
		return fmt.Errorf("window scale %d out of range 0..%d", c.Window.Scale, display.MaxPixelScale)
	}
	if c.Engine.Width <= 0 || c.Engine.Height <= 0 {
		return fmt.Errorf("invalid resolution %dx%d", c.Engine.Width, c.Engine.Height)
	}
	if c.Engine.Layers < 0 || c.Engine.Sprites < 0 || c.Engine.Anims < 0 {
		return fmt.Errorf("negative slot count")
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Headless.Frames < 0 || c.Headless.SnapshotInterval < 0 {
		return fmt.Errorf("negative headless frame settings")
	}
	return nil
}

// ParseLogLevel converts a level name to the engine log level.
func ParseLogLevel(s string) (tilengine.LogLevel, error) {
	switch strings.ToLower(s) {
	case "none":
		return tilengine.LogNone, nil
	case "", "errors", "error":
		return tilengine.LogErrors, nil
	case "verbose", "debug":
		return tilengine.LogVerbose, nil
	}
	return tilengine.LogErrors, fmt.Errorf("unknown log level %q", s)
}

// LogLevel returns the configured engine log level.
func (c *Config) LogLevel() tilengine.LogLevel {
	level, _ := ParseLogLevel(c.Log.Level)
	return level
}
