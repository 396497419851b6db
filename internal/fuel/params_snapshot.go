package fuel

import (
	"math"
	"strconv"

	"fuelgrid/internal/core"
)

const (
	// ParamBalance is the snapshot key of the current balance.
	ParamBalance = "balance"
	// ParamTicksPerSecond is the key of the adjustable tick rate.
	ParamTicksPerSecond = "ticks_per_second"
	// ParamBurning is the snapshot key of the occupied cell count.
	ParamBurning = "burning"

	minControlTPS = 0.25
	maxControlTPS = 20
)

// Parameters reports the economy for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	s := w.state
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Economy",
			Params: []core.Parameter{
				floatParam(ParamBalance, "Balance", s.Balance),
				intParam(ParamBurning, "Burning", s.Burning()),
			},
		},
		{
			Name: "Clock",
			Params: []core.Parameter{
				floatParam(ParamTicksPerSecond, "Ticks/sec", s.TicksPerSecond),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable values.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{{
		Key:    ParamTicksPerSecond,
		Label:  "Ticks/sec",
		Type:   core.ParamTypeFloat,
		Step:   0.25,
		Min:    minControlTPS,
		Max:    maxControlTPS,
		HasMin: true,
		HasMax: true,
	}}
}

// SetFloatParameter updates an adjustable value, clamping it to its bounds.
func (w *World) SetFloatParameter(key string, value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	switch key {
	case ParamTicksPerSecond:
		w.state.TicksPerSecond = w.ParameterControls()[0].Clamp(value)
		return true
	default:
		return false
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
