package core

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a coordinate falls outside the grid.
var ErrIndexOutOfRange = errors.New("index out of range")

// Coord addresses a single grid cell.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Grid stores a 2D grid of cell values in row-major order. Its dimensions are
// fixed at construction.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for (row, col). It does not bounds check.
func (g *Grid[T]) Index(row, col int) int { return g.W*row + col }

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *Grid[T]) InBounds(row, col int) bool {
	return row >= 0 && row < g.H && col >= 0 && col < g.W
}

// At returns the value stored at (row, col).
func (g *Grid[T]) At(row, col int) (T, error) {
	if !g.InBounds(row, col) {
		var zero T
		return zero, g.outOfRange(row, col)
	}
	return g.data[g.Index(row, col)], nil
}

// Set stores v at (row, col).
func (g *Grid[T]) Set(row, col int, v T) error {
	if !g.InBounds(row, col) {
		return g.outOfRange(row, col)
	}
	g.data[g.Index(row, col)] = v
	return nil
}

func (g *Grid[T]) outOfRange(row, col int) error {
	return fmt.Errorf("%w: %s outside %dx%d grid", ErrIndexOutOfRange, Coord{Row: row, Col: col}, g.W, g.H)
}
