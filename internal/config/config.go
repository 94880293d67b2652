// Package config loads goobj settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultFile is looked up in the working directory when no path is given
const DefaultFile = "goobj.toml"

// Config holds all settings. Zero values in a file are replaced by defaults.
type Config struct {
	// Largest dimension of the model after normalization
	TargetSize float32 `toml:"target_size"`
	LogLevel   string  `toml:"log_level"`

	Render RenderSettings `toml:"render"`
	Watch  WatchSettings  `toml:"watch"`
	Fetch  FetchSettings  `toml:"fetch"`
}

// RenderSettings configures the software preview renderer
type RenderSettings struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	RotateX     float64 `toml:"rotate_x"` // degrees
	RotateY     float64 `toml:"rotate_y"` // degrees
	Supersample int     `toml:"supersample"`
	Background  string  `toml:"background"` // #rrggbb
}

// WatchSettings configures the file watcher
type WatchSettings struct {
	Debounce Duration `toml:"debounce"`
}

// FetchSettings configures asset downloads
type FetchSettings struct {
	Timeout Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a string such as "250ms"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		TargetSize: 5,
		LogLevel:   "info",
		Render: RenderSettings{
			Width:       800,
			Height:      600,
			RotateX:     20,
			RotateY:     -30,
			Supersample: 2,
			Background:  "#202020",
		},
		Watch: WatchSettings{Debounce: Duration{300 * time.Millisecond}},
		Fetch: FetchSettings{Timeout: Duration{30 * time.Second}},
	}
}

// Load reads the file at path over the defaults. An empty path tries
// DefaultFile and silently falls back to the defaults if it does not exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	var file Config
	if _, err := toml.DecodeFile(path, &file); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	cfg.merge(file)
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot be used
func (c Config) Validate() error {
	if c.TargetSize <= 0 {
		return fmt.Errorf("target_size must be positive, got %v", c.TargetSize)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.Supersample < 1 {
		return fmt.Errorf("render.supersample must be at least 1, got %d", c.Render.Supersample)
	}
	return nil
}

func (c *Config) merge(f Config) {
	if f.TargetSize != 0 {
		c.TargetSize = f.TargetSize
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if f.Render.Width != 0 {
		c.Render.Width = f.Render.Width
	}
	if f.Render.Height != 0 {
		c.Render.Height = f.Render.Height
	}
	if f.Render.RotateX != 0 {
		c.Render.RotateX = f.Render.RotateX
	}
	if f.Render.RotateY != 0 {
		c.Render.RotateY = f.Render.RotateY
	}
	if f.Render.Supersample != 0 {
		c.Render.Supersample = f.Render.Supersample
	}
	if f.Render.Background != "" {
		c.Render.Background = f.Render.Background
	}
	if f.Watch.Debounce.Duration != 0 {
		c.Watch.Debounce = f.Watch.Debounce
	}
	if f.Fetch.Timeout.Duration != 0 {
		c.Fetch.Timeout = f.Fetch.Timeout
	}
}
