// Package config loads the application settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names
const (
	BackendEbiten   = "ebiten"
	BackendTerminal = "terminal"
)

type Config struct {
	Backend string        `yaml:"backend"`
	Loop    LoopConfig    `yaml:"loop"`
	Window  WindowConfig  `yaml:"window"`
	Input   InputConfig   `yaml:"input"`
	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
	Assets  AssetsConfig  `yaml:"assets"`
}

type LoopConfig struct {
	TickRate       float64       `yaml:"tick_rate"`
	Report         bool          `yaml:"report"`
	Buffers        int           `yaml:"buffers"`
	PresentTimeout time.Duration `yaml:"present_timeout"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Icon      string `yaml:"icon"`
	Resizable bool   `yaml:"resizable"`
	VSync     bool   `yaml:"vsync"`
}

type InputConfig struct {
	// KeyHold is how long a key counts as pressed on hosts that never
	// report key releases.
	KeyHold     time.Duration `yaml:"key_hold"`
	DoubleClick time.Duration `yaml:"double_click"`
}

type AudioConfig struct {
	SampleRate int           `yaml:"sample_rate"`
	Buffer     time.Duration `yaml:"buffer"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type AssetsConfig struct {
	Atlas string `yaml:"atlas"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Backend: BackendEbiten,
		Loop: LoopConfig{
			TickRate:       60.0,
			Report:         true,
			Buffers:        2,
			PresentTimeout: 50 * time.Millisecond,
		},
		Window: WindowConfig{
			Width:  640,
			Height: 480,
			Title:  "framekit",
			VSync:  true,
		},
		Input: InputConfig{
			KeyHold:     150 * time.Millisecond,
			DoubleClick: 400 * time.Millisecond,
		},
		Audio: AudioConfig{
			SampleRate: 44100,
			Buffer:     100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Assets: AssetsConfig{
			Atlas: "data/atlases/demo.json",
		},
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendEbiten, BackendTerminal:
	default:
		errs = append(errs, fmt.Errorf("backend: unknown %q", c.Backend))
	}
	if c.Loop.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("loop.tick_rate: must be positive, got %v", c.Loop.TickRate))
	}
	if c.Loop.Buffers < 0 {
		errs = append(errs, fmt.Errorf("loop.buffers: must not be negative, got %d", c.Loop.Buffers))
	}
	if c.Loop.PresentTimeout < 0 {
		errs = append(errs, errors.New("loop.present_timeout: must not be negative"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Input.KeyHold <= 0 {
		errs = append(errs, errors.New("input.key_hold: must be positive"))
	}
	if c.Input.DoubleClick < 0 {
		errs = append(errs, errors.New("input.double_click: must not be negative"))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate: must be positive, got %d", c.Audio.SampleRate))
	}
	if c.Audio.Buffer <= 0 {
		errs = append(errs, errors.New("audio.buffer: must be positive"))
	}
	return errors.Join(errs...)
}
