package fuel

import "strconv"

// MaxTicksPerSecond bounds the configurable tick rate.
const MaxTicksPerSecond = 1000

// Config controls the grid dimensions and the starting economy.
type Config struct {
	Width  int
	Height int

	Balance        float64
	TicksPerSecond float64
}

// DefaultConfig returns the standard 20x20 configuration.
func DefaultConfig() Config {
	return Config{
		Width:          20,
		Height:         20,
		Balance:        100,
		TicksPerSecond: 1,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Invalid values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["balance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Balance = parsed
		}
	}
	if v, ok := cfg["tps"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed <= MaxTicksPerSecond {
			c.TicksPerSecond = parsed
		}
	}
	return c
}

// Map renders the config as FromMap input.
func (c Config) Map() map[string]string {
	return map[string]string{
		"w":       strconv.Itoa(c.Width),
		"h":       strconv.Itoa(c.Height),
		"balance": strconv.FormatFloat(c.Balance, 'g', -1, 64),
		"tps":     strconv.FormatFloat(c.TicksPerSecond, 'g', -1, 64),
	}
}
