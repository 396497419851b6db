package telemetry

import (
	"log/slog"

	"fuelgrid/internal/engine"
)

// Sink receives one row per tick.
type Sink interface {
	WriteTick(TickStats) error
}

// Recorder is an engine.Observer that turns outcomes into TickStats.
type Recorder struct {
	sink     Sink
	logger   *slog.Logger
	logEvery uint64

	purchases int
	rejected  int
	run       int
	last      TickStats
	failed    bool
}

// NewRecorder returns a recorder writing to sink, which may be nil. A summary
// is logged every logEvery ticks when logEvery is positive.
func NewRecorder(sink Sink, logger *slog.Logger, logEvery uint64) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{sink: sink, logger: logger, logEvery: logEvery}
}

// Observe implements engine.Observer.
func (r *Recorder) Observe(o engine.Outcome) {
	switch o.Command.(type) {
	case engine.PlaceFuel:
		if o.Placed {
			r.purchases++
		} else {
			r.rejected++
		}
	case engine.Tick:
		stats := TickStats{
			Tick:      o.Tick,
			Balance:   o.Balance,
			Burned:    o.Report.Burned,
			Exhausted: o.Report.Exhausted,
			Energy:    o.Report.Energy,
			Purchases: r.purchases,
			Rejected:  r.rejected,
			Run:       r.run,
		}
		if o.State != nil {
			durabilities := o.State.Durabilities()
			stats.Burning = len(durabilities)
			stats.DurabilityMean, stats.DurabilityP50 = DurabilityStats(durabilities)
		}
		r.purchases, r.rejected = 0, 0
		r.last = stats
		r.write(stats)
		if r.logEvery > 0 && stats.Tick%r.logEvery == 0 {
			r.logger.Info("tick summary",
				"tick", stats.Tick,
				"balance", stats.Balance,
				"burning", stats.Burning,
				"durability_mean", stats.DurabilityMean,
			)
		}
	}
}

// Reset implements engine.Resetter. Counters pending for the old state are
// dropped and later rows carry the next run number.
func (r *Recorder) Reset() {
	r.purchases, r.rejected = 0, 0
	r.run++
}

// Last returns the stats of the most recent tick.
func (r *Recorder) Last() TickStats { return r.last }

func (r *Recorder) write(stats TickStats) {
	if r.sink == nil || r.failed {
		return
	}
	if err := r.sink.WriteTick(stats); err != nil {
		// One failure disables further writes so the log is not flooded.
		r.failed = true
		r.logger.Error("telemetry disabled", "error", err)
	}
}
