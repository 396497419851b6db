package core

import (
	"errors"
	"testing"
	"time"
)

func TestGridIndexRowMajor(t *testing.T) {
	g := NewGrid[int](4, 3)
	if got := g.Index(2, 1); got != 9 {
		t.Fatalf("Index(2,1) = %d, want 9", got)
	}
	if err := g.Set(2, 1, 7); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if g.Cells()[9] != 7 {
		t.Fatalf("backing slice not updated: %v", g.Cells())
	}
	v, err := g.At(2, 1)
	if err != nil || v != 7 {
		t.Fatalf("At(2,1) = %d, %v", v, err)
	}
}

func TestGridOutOfRange(t *testing.T) {
	g := NewGrid[int](2, 2)
	cases := []Coord{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 5}}
	for _, c := range cases {
		if _, err := g.At(c.Row, c.Col); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("At%s err = %v, want ErrIndexOutOfRange", c, err)
		}
		if err := g.Set(c.Row, c.Col, 1); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("Set%s err = %v, want ErrIndexOutOfRange", c, err)
		}
	}
	for i, v := range g.Cells() {
		if v != 0 {
			t.Fatalf("cell %d mutated by out of range Set: %d", i, v)
		}
	}
}

func TestGridClampsDimensions(t *testing.T) {
	g := NewGrid[uint8](0, -3)
	if g.W != 1 || g.H != 1 || len(g.Cells()) != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d (%d cells)", g.W, g.H, len(g.Cells()))
	}
}

func TestPeriod(t *testing.T) {
	tests := []struct {
		tps  float64
		want time.Duration
	}{
		{1, time.Second},
		{4, 250 * time.Millisecond},
		{0.5, 2 * time.Second},
		{3, 333 * time.Millisecond},
		{0, time.Second},
		{5000, time.Millisecond},
	}
	for _, tt := range tests {
		if got := Period(tt.tps); got != tt.want {
			t.Errorf("Period(%v) = %v, want %v", tt.tps, got, tt.want)
		}
	}
}

func TestFixedStepCadence(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(2)
	fs.now = func() time.Time { return clock }

	if fs.ShouldStep() {
		t.Fatal("first call must not step")
	}
	clock = clock.Add(400 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("stepped before a full period elapsed")
	}
	clock = clock.Add(100 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected a step after 500ms at 2 tps")
	}
	if fs.ShouldStep() {
		t.Fatal("expected a single step per period")
	}

	fs.SetTPS(10)
	if fs.Period() != 100*time.Millisecond {
		t.Fatalf("Period after SetTPS = %v", fs.Period())
	}
	clock = clock.Add(100 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected a step at the new rate")
	}
}

func TestRegistry(t *testing.T) {
	Register("", func(map[string]string) Sim { return nil })
	Register("nil-factory", nil)
	if _, ok := Sims()[""]; ok {
		t.Fatal("empty name must not register")
	}
	if _, ok := Sims()["nil-factory"]; ok {
		t.Fatal("nil factory must not register")
	}
}
