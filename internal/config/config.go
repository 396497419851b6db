// Package config provides configuration loading for the fuel grid frontends.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"fuelgrid/internal/fuel"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all runtime configuration.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Economy   EconomyConfig   `yaml:"economy"`
	Clock     ClockConfig     `yaml:"clock"`
	Window    WindowConfig    `yaml:"window"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

// GridConfig holds the fixed grid dimensions.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// EconomyConfig holds the starting economy.
type EconomyConfig struct {
	StartingBalance float64 `yaml:"starting_balance"`
}

// ClockConfig holds the tick cadence. The rate is also the per-tick decay.
type ClockConfig struct {
	TicksPerSecond float64 `yaml:"ticks_per_second"`
}

// WindowConfig holds GUI settings.
type WindowConfig struct {
	Title    string `yaml:"title"`
	Scale    int    `yaml:"scale"`     // pixels per cell
	HUDWidth int    `yaml:"hud_width"` // side panel width in pixels
}

// TelemetryConfig controls CSV output.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // empty disables output
	LogEvery  uint64 `yaml:"log_every"`  // log a summary every N ticks, 0 disables
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("parsing embedded defaults: %v", err))
	}
	return cfg
}

// Load reads the embedded defaults and overlays the file at path, if any.
// Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	return cfg, nil
}

// Validate rejects configurations the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalid, c.Grid.Width, c.Grid.Height))
	}
	if b := c.Economy.StartingBalance; !(b >= 0) || math.IsInf(b, 1) {
		errs = append(errs, fmt.Errorf("%w: starting_balance must be finite and not negative, got %v", ErrInvalid, b))
	}
	if r := c.Clock.TicksPerSecond; !(r > 0 && r <= fuel.MaxTicksPerSecond) {
		errs = append(errs, fmt.Errorf("%w: ticks_per_second must be in (0, %d], got %v", ErrInvalid, fuel.MaxTicksPerSecond, r))
	}
	if c.Window.Scale <= 0 {
		errs = append(errs, fmt.Errorf("%w: window scale must be positive, got %d", ErrInvalid, c.Window.Scale))
	}
	if c.Window.HUDWidth < 0 {
		errs = append(errs, fmt.Errorf("%w: hud_width must not be negative, got %d", ErrInvalid, c.Window.HUDWidth))
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format))
	}
	return errors.Join(errs...)
}

// Fuel converts the config into the game's starting configuration.
func (c *Config) Fuel() fuel.Config {
	return fuel.Config{
		Width:          c.Grid.Width,
		Height:         c.Grid.Height,
		Balance:        c.Economy.StartingBalance,
		TicksPerSecond: c.Clock.TicksPerSecond,
	}
}

// WriteYAML saves the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
