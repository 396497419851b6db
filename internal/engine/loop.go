package engine

import (
	"context"
	"fmt"
	"log/slog"

	"fuelgrid/internal/fuel"
)

// Outcome describes the effect of one applied command.
type Outcome struct {
	Seq     uint64
	Tick    uint64 // ticks processed so far, including this one
	Command Command

	Report  fuel.TickReport // set for Tick
	Placed  bool            // set for PlaceFuel
	Err     error
	Balance float64

	// State is only valid for the duration of Observe.
	State *fuel.State
}

// Observer receives every outcome on the loop goroutine. Observers must not
// block or retain State.
type Observer interface {
	Observe(Outcome)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Outcome)

// Observe calls f(o).
func (f ObserverFunc) Observe(o Outcome) { f(o) }

// Resetter is implemented by observers that keep per-run state. The loop
// calls Reset when it is handed a fresh state.
type Resetter interface {
	Reset()
}

// Loop owns the state and applies commands to it one at a time.
type Loop struct {
	state     *fuel.State
	logger    *slog.Logger
	observers []Observer

	seq   uint64
	ticks uint64
}

// NewLoop returns a loop that takes exclusive ownership of state.
func NewLoop(state *fuel.State, logger *slog.Logger, observers ...Observer) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{state: state, logger: logger, observers: observers}
}

// AddObserver registers o for subsequent outcomes.
func (l *Loop) AddObserver(o Observer) {
	l.observers = append(l.observers, o)
}

// State exposes the owned state. Only the goroutine driving the loop may use it.
func (l *Loop) State() *fuel.State { return l.state }

// Ticks returns the number of ticks applied so far.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Reset swaps in a fresh state. Tick and sequence numbers keep counting so
// outcomes stay ordered across runs. Observers implementing Resetter are
// told about the swap.
func (l *Loop) Reset(state *fuel.State) {
	l.state = state
	for _, o := range l.observers {
		if r, ok := o.(Resetter); ok {
			r.Reset()
		}
	}
	l.logger.Info("state reset", "tick", l.ticks, "balance", state.Balance)
}

// Apply runs cmd to completion and notifies observers.
func (l *Loop) Apply(cmd Command) Outcome {
	l.seq++
	out := Outcome{Seq: l.seq, Command: cmd}
	switch c := cmd.(type) {
	case Tick:
		l.ticks++
		out.Report = l.state.Tick()
		if out.Report.Exhausted > 0 {
			l.logger.Debug("fuel exhausted", "tick", l.ticks, "cells", out.Report.Exhausted)
		}
	case PlaceFuel:
		out.Placed, out.Err = l.state.Place(c.Row, c.Col, c.Kind)
		switch {
		case out.Err != nil:
			l.logger.Warn("placement rejected", "row", c.Row, "col", c.Col, "kind", c.Kind.String(), "error", out.Err)
		case !out.Placed:
			l.logger.Debug("insufficient balance", "row", c.Row, "col", c.Col, "price", c.Kind.Price(), "balance", l.state.Balance)
		default:
			l.logger.Info("fuel placed", "row", c.Row, "col", c.Col, "kind", c.Kind.String(), "balance", l.state.Balance)
		}
	default:
		out.Err = fmt.Errorf("unsupported command %T", cmd)
		l.logger.Error("unsupported command", "type", fmt.Sprintf("%T", cmd))
	}
	out.Tick = l.ticks
	out.Balance = l.state.Balance
	out.State = l.state
	for _, o := range l.observers {
		o.Observe(out)
	}
	out.State = nil
	return out
}

// Run applies commands from cmds in arrival order until the channel is closed
// or ctx is cancelled. It returns ctx.Err() on cancellation and nil when the
// channel closes.
func (l *Loop) Run(ctx context.Context, cmds <-chan Command) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-cmds:
			if !ok {
				return nil
			}
			l.Apply(cmd)
		}
	}
}
