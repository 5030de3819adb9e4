// Package config loads tickloop settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Window  WindowConfig  `toml:"window"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
}

type EngineConfig struct {
	TickRate      int    `toml:"tick_rate"`  // update loop ticks per second
	FrameRate     int    `toml:"frame_rate"` // render loop frames per second
	Width         int    `toml:"width"`
	Height        int    `toml:"height"`
	Workspace     string `toml:"workspace"` // root that resource paths resolve against
	Diagnostics   bool   `toml:"diagnostics"`
	FullscreenKey string `toml:"fullscreen_key"`
	Background    string `toml:"background"` // "#RRGGBB"
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Resizable bool   `toml:"resizable"`
	DebugUI   bool   `toml:"debug_ui"`
}

type AudioConfig struct {
	Enabled    bool          `toml:"enabled"`
	SampleRate int           `toml:"sample_rate"`
	Buffer     time.Duration `toml:"buffer"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads the TOML file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			TickRate:      24,
			FrameRate:     60,
			Width:         1280,
			Height:        720,
			Workspace:     ".",
			FullscreenKey: "F11",
			Background:    "#000000",
		},
		Window: WindowConfig{
			Title:     "tickloop",
			Resizable: true,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Buffer:     100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Engine.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("engine.tick_rate must be positive, got %d", c.Engine.TickRate))
	}
	if c.Engine.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("engine.frame_rate must be positive, got %d", c.Engine.FrameRate))
	}
	if c.Engine.Width <= 0 || c.Engine.Height <= 0 {
		errs = append(errs, fmt.Errorf("engine resolution must be positive, got %dx%d", c.Engine.Width, c.Engine.Height))
	}
	if c.Engine.Workspace == "" {
		errs = append(errs, errors.New("engine.workspace must not be empty"))
	}
	if _, err := c.Engine.BackgroundColor(); err != nil {
		errs = append(errs, err)
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	return errors.Join(errs...)
}

// BackgroundColor parses the "#RRGGBB" background setting.
func (e EngineConfig) BackgroundColor() (color.RGBA, error) {
	s := strings.TrimPrefix(e.Background, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("engine.background %q: want #RRGGBB", e.Background)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("engine.background %q: %w", e.Background, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
