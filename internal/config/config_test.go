package config

import (
	"flag"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelgrid/internal/fuel"
)

func TestDefaultsMatchSampleGame(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, fuel.DefaultConfig(), cfg.Fuel())
	assert.Equal(t, 20, cfg.Window.Scale)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysOnlyPresentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid:\n  width: 5\nclock:\n  ticks_per_second: 4\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Grid.Width)
	assert.Equal(t, 20, cfg.Grid.Height)
	assert.Equal(t, 4.0, cfg.Clock.TicksPerSecond)
	assert.Equal(t, 100.0, cfg.Economy.StartingBalance)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid: [1, 2"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Grid.Width = 0
	cfg.Economy.StartingBalance = -1
	cfg.Clock.TicksPerSecond = 0
	cfg.Log.Format = "xml"

	err := cfg.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "grid")
	assert.Contains(t, err.Error(), "starting_balance")
	assert.Contains(t, err.Error(), "ticks_per_second")
	assert.Contains(t, err.Error(), "xml")
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Grid.Width = 7
	path := filepath.Join(t.TempDir(), "out.yaml")

	require.NoError(t, cfg.WriteYAML(path))
	loaded, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestFlagsOverrideConfig(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-w", "3", "-tps", "2.5", "-log-level", "debug"}))

	cfg, err := f.Resolve()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Grid.Width)
	assert.Equal(t, 20, cfg.Grid.Height)
	assert.Equal(t, 2.5, cfg.Clock.TicksPerSecond)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidateRejectsNonFiniteRates(t *testing.T) {
	for _, tps := range []float64{math.Inf(1), math.NaN(), 4294967296, fuel.MaxTicksPerSecond + 1} {
		cfg := Default()
		cfg.Clock.TicksPerSecond = tps
		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrInvalid, "tps %v", tps)
	}

	cfg := Default()
	cfg.Clock.TicksPerSecond = fuel.MaxTicksPerSecond
	assert.NoError(t, cfg.Validate())

	cfg.Economy.StartingBalance = math.NaN()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestFlagsRejectInfiniteRate(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-tps", "inf"}))

	_, err := f.Resolve()
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestFlagsZeroBalanceOverrides(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-balance", "0"}))

	cfg, err := f.Resolve()
	require.NoError(t, err)
	assert.Zero(t, cfg.Economy.StartingBalance)

	var unset Flags
	unset.Bind(flag.NewFlagSet("test", flag.ContinueOnError))
	cfg, err = unset.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.Economy.StartingBalance)
}
