package core

import "time"

// DefaultTPS is the tick rate used when a non-positive rate is supplied.
const DefaultTPS = 1.0

// Period converts a ticks-per-second rate into the interval between ticks,
// truncated to whole milliseconds. The result is never shorter than 1ms.
func Period(tps float64) time.Duration {
	if tps <= 0 {
		tps = DefaultTPS
	}
	millis := time.Duration(1000 / tps)
	if millis < 1 {
		millis = 1
	}
	return millis * time.Millisecond
}

// FixedStep helps run simulation updates at a steady ticks-per-second rate
// from a frame-driven loop.
type FixedStep struct {
	tps         float64
	step        time.Duration
	accumulator time.Duration
	last        time.Time

	now func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS. The
// first tick fires one full period after the first ShouldStep call.
func NewFixedStep(tps float64) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps float64) {
	if tps <= 0 {
		tps = DefaultTPS
	}
	if tps == f.tps {
		return
	}
	f.tps = tps
	f.step = Period(tps)
}

// TPS returns the current tick rate.
func (f *FixedStep) TPS() float64 { return f.tps }

// Period returns the interval between ticks.
func (f *FixedStep) Period() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
