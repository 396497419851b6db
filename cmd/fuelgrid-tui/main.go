package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"fuelgrid/internal/config"
	"fuelgrid/internal/engine"
	"fuelgrid/internal/fuel"
	"fuelgrid/internal/logging"
	"fuelgrid/internal/telemetry"
	"fuelgrid/internal/tui"
)

func main() {
	var flags config.Flags
	flags.Bind(flag.CommandLine)
	logPath := flag.String("log-file", "", "write logs to this file (the terminal is taken by the UI)")
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "fuelgrid-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logPath string) error {
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(cfg.Log, logOut)

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
	if err := tui.Run(world, tui.Options{
		Kind:      fuel.Wood,
		Logger:    logger,
		Observers: []engine.Observer{recorder},
	}); err != nil {
		return err
	}
	fmt.Printf("Balance: %v after %d ticks\n", world.State().Balance, recorder.Last().Tick)
	return nil
}
