package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fuelgrid/internal/config"
	"fuelgrid/internal/engine"
	"fuelgrid/internal/fuel"
	"fuelgrid/internal/logging"
	"fuelgrid/internal/telemetry"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	var flags config.Flags
	flags.Bind(flag.CommandLine)
	ticks := flag.Uint64("ticks", 10, "number of ticks to run (0 = until interrupted, realtime only)")
	realtime := flag.Bool("realtime", false, "tick on the wall clock instead of as fast as possible")
	var places kvList
	flag.Var(&places, "place", "placement in [kind:]row,col[@tick] form (repeatable)")
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	logger := logging.New(cfg.Log, os.Stderr)

	orders := make([]engine.Order, 0, len(places))
	for _, p := range places {
		o, err := engine.ParseOrder(p)
		if err != nil {
			logger.Error("bad -place", "error", err)
			os.Exit(2)
		}
		orders = append(orders, o)
	}
	if !*realtime && *ticks == 0 {
		logger.Error("-ticks 0 requires -realtime")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, orders, *ticks, *realtime); err != nil {
		logger.Error("run failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, orders []engine.Order, ticks uint64, realtime bool) error {
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
	state := world.State()
	recorder := telemetry.NewRecorder(out, logger, cfg.Telemetry.LogEvery)
	loop := engine.NewLoop(state, logger, recorder)
	sched := engine.NewScheduler(orders)

	logger.Info("starting",
		"grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"balance", state.Balance,
		"tps", state.TicksPerSecond,
		"orders", len(orders),
		"realtime", realtime,
	)

	if realtime {
		err = runRealtime(ctx, loop, sched, logger, ticks)
	} else {
		err = sched.RunFor(ctx, loop, ticks)
	}
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		err = nil
	}
	if err != nil {
		return err
	}

	summary := recorder.Last()
	logger.Info("finished",
		"ticks", loop.Ticks(),
		"balance", state.Balance,
		"burning", state.Burning(),
		"durability_mean", summary.DurabilityMean,
		"pending_orders", sched.Pending(),
	)
	if dir := out.Dir(); dir != "" {
		logger.Info("telemetry written", "dir", dir)
	}
	fmt.Printf("Balance: %v\n", state.Balance)
	return nil
}

// runRealtime wires driver -> scheduler -> loop over channels and stops after
// ticks ticks, or when ctx is done if ticks is zero.
func runRealtime(ctx context.Context, loop *engine.Loop, sched *engine.Scheduler, logger *slog.Logger, ticks uint64) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := false
	if ticks > 0 {
		loop.AddObserver(engine.ObserverFunc(func(o engine.Outcome) {
			if _, ok := o.Command.(engine.Tick); ok && o.Tick >= ticks {
				done = true
				cancel()
			}
		}))
	}

	driver := engine.NewDriver(loop.State().TicksPerSecond, logger)
	defer driver.Stop()
	clock := make(chan engine.Command)
	cmds := make(chan engine.Command)
	go driver.Run(ctx, clock)
	go sched.Forward(ctx, clock, cmds)

	err := loop.Run(ctx, cmds)
	if done {
		return nil
	}
	return err
}
