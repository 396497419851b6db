package app

import "fuelgrid/internal/core"

// cellAt maps a cursor position in screen pixels to the grid cell under it.
func cellAt(x, y, scale int, size core.Size) (core.Coord, bool) {
	if scale <= 0 || x < 0 || y < 0 {
		return core.Coord{}, false
	}
	c := core.Coord{Row: y / scale, Col: x / scale}
	if c.Row >= size.H || c.Col >= size.W {
		return core.Coord{}, false
	}
	return c, true
}

// clickTracker reports a click only when the button is pressed and released
// over the same cell.
type clickTracker struct {
	pressed core.Coord
	active  bool
}

// Press records the cell under the cursor when the button goes down.
func (t *clickTracker) Press(c core.Coord, ok bool) {
	t.pressed = c
	t.active = ok
}

// Release returns the clicked cell, if the release lands on the pressed one.
func (t *clickTracker) Release(c core.Coord, ok bool) (core.Coord, bool) {
	wasActive := t.active
	t.active = false
	if !wasActive || !ok || c != t.pressed {
		return core.Coord{}, false
	}
	return c, true
}
