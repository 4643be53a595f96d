// Package config holds the demo runner settings, read from an optional TOML
// file and overridden by command-line flags.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"
)

// Config is the runner configuration.
type Config struct {
	Window          Window `toml:"window"`
	Route           string `toml:"route"`
	Debug           bool   `toml:"debug"`
	Overlay         bool   `toml:"overlay"`
	ValidateShaders bool   `toml:"validate_shaders"`

	Render Render `toml:"render"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type Render struct {
	// Instances is how many objects the instancing demos draw. It is passed
	// through as-is and never checked against buffer or device limits.
	Instances   int    `toml:"instances"`
	Seed        uint64 `toml:"seed"`
	ClearColor  string `toml:"clear_color"`
	SampleCount uint32 `toml:"sample_count"`
	Checker     bool   `toml:"checker"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "WebGPU Demos",
		},
		Route:           "triangle",
		Overlay:         true,
		ValidateShaders: true,
		Render: Render{
			Instances:   100,
			Seed:        1,
			ClearColor:  "black",
			SampleCount: 4,
			Checker:     false,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// path is empty.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks the values that would otherwise fail deep inside the GPU
// setup.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Render.Instances < 0 {
		return fmt.Errorf("%w: negative instance count %d", ErrInvalid, c.Render.Instances)
	}
	switch c.Render.SampleCount {
	case 1, 4:
	default:
		return fmt.Errorf("%w: sample count %d, want 1 or 4", ErrInvalid, c.Render.SampleCount)
	}
	if _, err := c.Render.Clear(); err != nil {
		return err
	}
	return nil
}

// Clear resolves the clear color name (any SVG color name, e.g. "black",
// "midnightblue") to normalized RGBA.
func (r Render) Clear() ([4]float64, error) {
	name := strings.ToLower(strings.TrimSpace(r.ClearColor))
	if name == "" {
		name = "black"
	}
	c, ok := colornames.Map[name]
	if !ok {
		return [4]float64{}, fmt.Errorf("%w: unknown clear color %q", ErrInvalid, r.ClearColor)
	}
	return normalize(c), nil
}

func normalize(c color.RGBA) [4]float64 {
	return [4]float64{
		float64(c.R) / 255,
		float64(c.G) / 255,
		float64(c.B) / 255,
		float64(c.A) / 255,
	}
}

// Encode renders the configuration back to TOML, used by -dump-config.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
