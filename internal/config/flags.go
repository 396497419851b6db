package config

import "flag"

// Flags represents the command-line overrides shared by the frontends. Zero
// values leave the loaded configuration untouched.
type Flags struct {
	Path      string
	Width     int
	Height    int
	Balance   float64
	TPS       float64
	Scale     int
	OutputDir string
	LogLevel  string

	fs *flag.FlagSet
}

// Bind attaches the flags to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.Path, "config", f.Path, "path to a YAML config file (empty = defaults)")
	fs.IntVar(&f.Width, "w", f.Width, "grid width (0 = config)")
	fs.IntVar(&f.Height, "h", f.Height, "grid height (0 = config)")
	fs.Float64Var(&f.Balance, "balance", f.Balance, "starting balance (unset = config)")
	fs.Float64Var(&f.TPS, "tps", f.TPS, "ticks per second (0 = config)")
	fs.IntVar(&f.Scale, "scale", f.Scale, "pixels per cell (0 = config)")
	fs.StringVar(&f.OutputDir, "output-dir", f.OutputDir, "directory for telemetry CSV and config snapshot")
	fs.StringVar(&f.LogLevel, "log-level", f.LogLevel, "debug, info, warn or error (empty = config)")
}

// Apply overlays the non-zero flags onto cfg. The balance is applied whenever
// it was given on the command line, so -balance 0 starts broke.
func (f *Flags) Apply(cfg *Config) {
	if f.Width > 0 {
		cfg.Grid.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Grid.Height = f.Height
	}
	if f.isSet("balance") || f.Balance > 0 {
		cfg.Economy.StartingBalance = f.Balance
	}
	if f.TPS > 0 {
		cfg.Clock.TicksPerSecond = f.TPS
	}
	if f.Scale > 0 {
		cfg.Window.Scale = f.Scale
	}
	if f.OutputDir != "" {
		cfg.Telemetry.OutputDir = f.OutputDir
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
}

// Resolve loads the config named by the flags, applies the overrides and
// validates the result.
func (f *Flags) Resolve() (*Config, error) {
	cfg, err := Load(f.Path)
	if err != nil {
		return nil, err
	}
	f.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isSet reports whether the named flag was given on the command line.
func (f *Flags) isSet(name string) bool {
	if f.fs == nil {
		return false
	}
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}
