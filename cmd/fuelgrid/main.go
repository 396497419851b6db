//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fuelgrid/internal/app"
	"fuelgrid/internal/config"
	"fuelgrid/internal/engine"
	"fuelgrid/internal/fuel"
	"fuelgrid/internal/logging"
	"fuelgrid/internal/telemetry"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var flags config.Flags
	flags.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	logger := logging.New(cfg.Log, os.Stderr)
	if err := run(cfg, logger); err != nil {
		logger.Error("fuelgrid exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	out, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		logger.Warn("config snapshot", "error", err)
	}

	world, err := fuel.Open(fuel.SimName, cfg.Fuel())
	if err != nil {
		return err
	}
	recorder := telemetry.NewRecorder(out, logger, cfg.Telemetry.LogEvery)
	game := app.New(world, app.Options{
		Scale:     cfg.Window.Scale,
		HUDWidth:  cfg.Window.HUDWidth,
		Kind:      fuel.Wood,
		Logger:    logger,
		Observers: []engine.Observer{recorder},
	})

	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(w, h)

	logger.Info("starting",
		"grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"balance", cfg.Economy.StartingBalance,
		"tps", cfg.Clock.TicksPerSecond,
	)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	logger.Info("finished", "ticks", recorder.Last().Tick, "balance", world.State().Balance)
	return nil
}
