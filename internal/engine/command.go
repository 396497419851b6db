// Package engine runs the fuel economy as a single-threaded command loop. A
// periodic driver feeds Tick commands and the player feeds PlaceFuel commands;
// each command is applied to completion before the next one is read.
package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fuelgrid/internal/core"
	"fuelgrid/internal/fuel"
)

// ErrBadOrder is returned when a placement order cannot be parsed.
var ErrBadOrder = errors.New("bad placement order")

// Command is one of Tick or PlaceFuel.
type Command interface {
	command()
}

// Tick advances the economy by one step.
type Tick struct{}

// PlaceFuel buys Kind at (Row, Col).
type PlaceFuel struct {
	Row  int
	Col  int
	Kind fuel.Kind
}

func (Tick) command()      {}
func (PlaceFuel) command() {}

func (Tick) String() string { return "tick" }

func (p PlaceFuel) String() string {
	return fmt.Sprintf("place %s at %s", p.Kind, core.Coord{Row: p.Row, Col: p.Col})
}

// Order schedules a placement to be applied just before tick number At
// (zero-based) is processed.
type Order struct {
	At    uint64
	Place PlaceFuel
}

// ParseOrder parses "row,col", "row,col@tick" or "kind:row,col@tick". The kind
// defaults to wood.
func ParseOrder(s string) (Order, error) {
	o := Order{Place: PlaceFuel{Kind: fuel.Wood}}
	body := strings.TrimSpace(s)
	if name, rest, ok := strings.Cut(body, ":"); ok {
		kind, err := fuel.ParseKind(name)
		if err != nil {
			return Order{}, fmt.Errorf("%w %q: %w", ErrBadOrder, s, err)
		}
		o.Place.Kind = kind
		body = rest
	}
	if coord, at, ok := strings.Cut(body, "@"); ok {
		tick, err := strconv.ParseUint(strings.TrimSpace(at), 10, 64)
		if err != nil {
			return Order{}, fmt.Errorf("%w %q: tick: %w", ErrBadOrder, s, err)
		}
		o.At = tick
		body = coord
	}
	row, col, ok := strings.Cut(body, ",")
	if !ok {
		return Order{}, fmt.Errorf("%w %q: want row,col", ErrBadOrder, s)
	}
	var err error
	if o.Place.Row, err = strconv.Atoi(strings.TrimSpace(row)); err != nil {
		return Order{}, fmt.Errorf("%w %q: row: %w", ErrBadOrder, s, err)
	}
	if o.Place.Col, err = strconv.Atoi(strings.TrimSpace(col)); err != nil {
		return Order{}, fmt.Errorf("%w %q: col: %w", ErrBadOrder, s, err)
	}
	return o, nil
}
