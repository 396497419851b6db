// Package telemetry records per-tick statistics of the fuel economy.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TickStats holds the state of the economy right after a tick, plus the
// purchases made since the previous tick.
type TickStats struct {
	Tick      uint64  `csv:"tick"`
	Balance   float64 `csv:"balance"`
	Burning   int     `csv:"burning"`
	Burned    int     `csv:"burned"`
	Exhausted int     `csv:"exhausted"`
	Energy    float64 `csv:"energy"`

	DurabilityMean float64 `csv:"durability_mean"`
	DurabilityP50  float64 `csv:"durability_p50"`

	Purchases int `csv:"purchases"`
	Rejected  int `csv:"rejected"`

	Run int `csv:"run"` // bumped on every reset
}

// DurabilityStats returns the mean and median of the given durabilities.
// Both are zero for an empty slice.
func DurabilityStats(values []float64) (mean, p50 float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return mean, p50
}
