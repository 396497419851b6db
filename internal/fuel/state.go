package fuel

import (
	"fmt"
	"math"

	"fuelgrid/internal/core"
)

// State is the single root of mutable game state. It is owned by exactly one
// goroutine; Tick and Place must not be called concurrently.
type State struct {
	Grid           *core.Grid[Fuel]
	Balance        float64
	TicksPerSecond float64
}

// NewState returns a state with an empty grid sized from cfg.
func NewState(cfg Config) *State {
	return &State{
		Grid:           core.NewGrid[Fuel](cfg.Width, cfg.Height),
		Balance:        cfg.Balance,
		TicksPerSecond: cfg.TicksPerSecond,
	}
}

// TickReport summarizes a single tick.
type TickReport struct {
	Burned    int
	Exhausted int
	Energy    float64
}

// DecayPerTick is the durability removed from each burning cell per tick. The
// rate is truncated to whole units with a floor of one so fuel always burns
// out at fractional tick rates. NaN counts as the floor and rates beyond the
// uint32 range saturate.
func (s *State) DecayPerTick() uint32 {
	r := s.TicksPerSecond
	switch {
	case !(r >= 1):
		return 1
	case r >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(r)
}

// Tick decays every occupied cell and credits the energy it produced. Energy
// is credited on the tick that exhausts a cell as well.
func (s *State) Tick() TickReport {
	var rep TickReport
	decay := s.DecayPerTick()
	cells := s.Grid.Cells()
	for i := range cells {
		c := &cells[i]
		if c.Kind == None {
			continue
		}
		if c.Durability > 0 {
			if c.Durability > decay {
				c.Durability -= decay
			} else {
				c.Durability = 0
			}
			energy := c.Kind.EnergyPerTick()
			s.Balance += energy
			rep.Energy += energy
			rep.Burned++
		}
		if c.Durability == 0 {
			c.Kind = None
			rep.Exhausted++
		}
	}
	return rep
}

// Place buys a unit of kind and puts it at (row, col), replacing whatever was
// there. An insufficient balance is not an error: the call reports false and
// leaves the state untouched.
func (s *State) Place(row, col int, kind Kind) (bool, error) {
	if !kind.Purchasable() {
		return false, fmt.Errorf("%w: %s", ErrNotPurchasable, kind)
	}
	if !s.Grid.InBounds(row, col) {
		_, err := s.Grid.At(row, col)
		return false, err
	}
	price := kind.Price()
	if s.Balance < price {
		return false, nil
	}
	s.Balance -= price
	return true, s.Grid.Set(row, col, New(kind))
}

// Burning counts the occupied cells.
func (s *State) Burning() int {
	n := 0
	for _, c := range s.Grid.Cells() {
		if !c.Empty() {
			n++
		}
	}
	return n
}

// Durabilities returns the remaining durability of every occupied cell.
func (s *State) Durabilities() []float64 {
	var out []float64
	for _, c := range s.Grid.Cells() {
		if !c.Empty() {
			out = append(out, float64(c.Durability))
		}
	}
	return out
}
