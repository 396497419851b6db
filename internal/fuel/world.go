package fuel

import (
	"fmt"
	"strings"

	"fuelgrid/internal/core"
)

// SimName is the registry name of the fuel world.
const SimName = "fuel"

// World adapts a State to the core.Sim contract used by the frontends.
type World struct {
	cfg     Config
	state   *State
	display []uint8
	last    TickReport
}

// NewWorld returns a World with a fresh State built from cfg.
func NewWorld(cfg Config) *World {
	w := &World{cfg: cfg}
	w.Reset()
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return SimName }

// Size reports the grid dimensions.
func (w *World) Size() core.Size {
	return core.Size{W: w.state.Grid.W, H: w.state.Grid.H}
}

// State exposes the underlying game state.
func (w *World) State() *State { return w.state }

// Reset discards the current state and starts over from the configuration.
func (w *World) Reset() {
	w.state = NewState(w.cfg)
	w.display = make([]uint8, len(w.state.Grid.Cells()))
	w.last = TickReport{}
}

// Step advances the economy by one tick.
func (w *World) Step() {
	w.last = w.state.Tick()
}

// LastTick returns the report of the most recent Step.
func (w *World) LastTick() TickReport { return w.last }

// Place buys kind at (row, col).
func (w *World) Place(row, col int, kind Kind) (bool, error) {
	return w.state.Place(row, col, kind)
}

// Cells encodes the grid into the display buffer. The buffer is rebuilt on
// every call so it always reflects the current state.
func (w *World) Cells() []uint8 {
	for i, c := range w.state.Grid.Cells() {
		w.display[i] = encodeCell(c)
	}
	return w.display
}

// Open builds the sim registered under name from cfg. It fails when the name
// is unknown or does not belong to a fuel world.
func Open(name string, cfg Config) (*World, error) {
	factory, ok := core.Sims()[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", core.ErrUnknownSim, name, strings.Join(core.SimNames(), ", "))
	}
	w, ok := factory(cfg.Map()).(*World)
	if !ok {
		return nil, fmt.Errorf("sim %q is not a fuel world", name)
	}
	return w, nil
}

func init() {
	core.Register(SimName, func(cfg map[string]string) core.Sim {
		return NewWorld(FromMap(cfg))
	})
}
