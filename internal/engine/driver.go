package engine

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"fuelgrid/internal/core"
)

// Driver emits one Tick every 1000/tps milliseconds.
type Driver struct {
	period time.Duration
	logger *slog.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

// NewDriver returns a driver for the given tick rate.
func NewDriver(tps float64, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		period: core.Period(tps),
		logger: logger,
		stop:   make(chan struct{}),
	}
}

// Period returns the interval between ticks.
func (d *Driver) Period() time.Duration { return d.period }

// Run sends a Tick on out at every period until ctx is done or Stop is called.
// Call in a goroutine.
func (d *Driver) Run(ctx context.Context, out chan<- Command) {
	d.logger.Debug("driver started", "period", d.period)

	ticker := time.NewTicker(d.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("driver stopped by context")
			return
		case <-d.stop:
			d.logger.Debug("driver stopped")
			return
		case <-ticker.C:
			select {
			case out <- Tick{}:
			case <-ctx.Done():
				return
			case <-d.stop:
				return
			}
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
}

// Scheduler merges timed placement orders into a stream of ticks. Orders due
// at tick k are forwarded right before the k-th tick (zero-based), so the
// downstream loop sees them in a deterministic position.
type Scheduler struct {
	orders []Order
	next   int
	ticks  uint64
}

// NewScheduler sorts orders by due tick, keeping the given order for ties.
func NewScheduler(orders []Order) *Scheduler {
	sorted := append([]Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &Scheduler{orders: sorted}
}

// Due returns the placements that must precede the next tick and marks the
// tick as consumed.
func (s *Scheduler) Due() []PlaceFuel {
	var due []PlaceFuel
	for s.next < len(s.orders) && s.orders[s.next].At <= s.ticks {
		due = append(due, s.orders[s.next].Place)
		s.next++
	}
	s.ticks++
	return due
}

// Pending reports how many orders have not been released yet.
func (s *Scheduler) Pending() int { return len(s.orders) - s.next }

// Forward reads ticks from in and writes them to out, preceded by any due
// placements. It closes out when in is closed or ctx is done.
func (s *Scheduler) Forward(ctx context.Context, in <-chan Command, out chan<- Command) {
	defer close(out)
	send := func(cmd Command) bool {
		select {
		case out <- cmd:
			return true
		case <-ctx.Done():
			return false
		}
	}
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-in:
			if !ok {
				return
			}
			if _, isTick := cmd.(Tick); isTick {
				for _, p := range s.Due() {
					if !send(p) {
						return
					}
				}
			}
			if !send(cmd) {
				return
			}
		}
	}
}

// RunFor applies n ticks synchronously on loop, releasing scheduled orders
// before each tick. It stops early when ctx is done.
func (s *Scheduler) RunFor(ctx context.Context, loop *Loop, n uint64) error {
	for i := uint64(0); i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, p := range s.Due() {
			loop.Apply(p)
		}
		loop.Apply(Tick{})
	}
	return nil
}
