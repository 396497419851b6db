package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelgrid/internal/core"
	"fuelgrid/internal/fuel"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLoop(t *testing.T, w, h int, balance, tps float64, observers ...Observer) *Loop {
	t.Helper()
	state := fuel.NewState(fuel.Config{Width: w, Height: h, Balance: balance, TicksPerSecond: tps})
	return NewLoop(state, quietLogger(), observers...)
}

func TestApplyScenario(t *testing.T) {
	var seen []Outcome
	loop := newLoop(t, 2, 2, 100, 1, ObserverFunc(func(o Outcome) {
		require.NotNil(t, o.State)
		seen = append(seen, o)
	}))

	out := loop.Apply(PlaceFuel{Row: 0, Col: 0, Kind: fuel.Wood})
	assert.True(t, out.Placed)
	assert.NoError(t, out.Err)
	assert.Equal(t, 20.0, out.Balance)
	assert.Nil(t, out.State)

	out = loop.Apply(Tick{})
	assert.Equal(t, uint64(1), out.Tick)
	assert.Equal(t, fuel.TickReport{Burned: 1, Energy: 10}, out.Report)
	assert.Equal(t, 30.0, out.Balance)

	require.Len(t, seen, 2)
	assert.Equal(t, uint64(1), seen[0].Seq)
	assert.Equal(t, uint64(2), seen[1].Seq)
	assert.Equal(t, uint64(1), loop.Ticks())
}

func TestApplyReportsOutOfRange(t *testing.T) {
	loop := newLoop(t, 2, 2, 100, 1)

	out := loop.Apply(PlaceFuel{Row: 5, Col: 0, Kind: fuel.Wood})

	assert.False(t, out.Placed)
	assert.True(t, errors.Is(out.Err, core.ErrIndexOutOfRange))
	assert.Equal(t, 100.0, out.Balance)
}

func TestApplyInsufficientBalance(t *testing.T) {
	loop := newLoop(t, 2, 2, 10, 1)

	out := loop.Apply(PlaceFuel{Row: 1, Col: 1, Kind: fuel.Wood})

	assert.False(t, out.Placed)
	assert.NoError(t, out.Err)
	assert.Equal(t, 10.0, out.Balance)
}

func TestRunProcessesInArrivalOrder(t *testing.T) {
	loop := newLoop(t, 1, 1, 80, 1)
	cmds := make(chan Command, 4)
	// Tick before the purchase earns nothing; the purchase then succeeds and
	// the second tick credits energy.
	cmds <- Tick{}
	cmds <- PlaceFuel{Row: 0, Col: 0, Kind: fuel.Wood}
	cmds <- Tick{}
	close(cmds)

	err := loop.Run(context.Background(), cmds)

	require.NoError(t, err)
	assert.Equal(t, uint64(2), loop.Ticks())
	assert.Equal(t, 10.0, loop.State().Balance)
	c, err := loop.State().Grid.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, fuel.Fuel{Kind: fuel.Wood, Durability: 99}, c)
}

func TestRunStopsOnCancel(t *testing.T) {
	loop := newLoop(t, 1, 1, 0, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := loop.Run(ctx, make(chan Command))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDriverEmitsTicks(t *testing.T) {
	d := NewDriver(1000, quietLogger())
	assert.Equal(t, time.Millisecond, d.Period())

	out := make(chan Command)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan struct{})
	go func() {
		d.Run(ctx, out)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		select {
		case cmd := <-out:
			assert.IsType(t, Tick{}, cmd)
		case <-ctx.Done():
			t.Fatal("driver did not tick")
		}
	}
	d.Stop()
	d.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("driver did not stop")
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in   string
		want Order
	}{
		{"3,4", Order{Place: PlaceFuel{Row: 3, Col: 4, Kind: fuel.Wood}}},
		{" 1 , 2 @ 10", Order{At: 10, Place: PlaceFuel{Row: 1, Col: 2, Kind: fuel.Wood}}},
		{"wood:0,0@2", Order{At: 2, Place: PlaceFuel{Row: 0, Col: 0, Kind: fuel.Wood}}},
	}
	for _, tt := range tests {
		got, err := ParseOrder(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "3", "a,1", "1,b", "1,1@x", "coal:1,1"} {
		_, err := ParseOrder(bad)
		assert.ErrorIs(t, err, ErrBadOrder, bad)
	}
}

func TestSchedulerRunFor(t *testing.T) {
	loop := newLoop(t, 2, 1, 160, 1)
	sched := NewScheduler([]Order{
		{At: 2, Place: PlaceFuel{Row: 0, Col: 1, Kind: fuel.Wood}},
		{At: 0, Place: PlaceFuel{Row: 0, Col: 0, Kind: fuel.Wood}},
	})

	require.NoError(t, sched.RunFor(context.Background(), loop, 3))

	assert.Zero(t, sched.Pending())
	// 160 - 80 (t0) + 10 + 10 - 80 (t2) + 20
	assert.Equal(t, 40.0, loop.State().Balance)
	c0, _ := loop.State().Grid.At(0, 0)
	c1, _ := loop.State().Grid.At(0, 1)
	assert.Equal(t, uint32(97), c0.Durability)
	assert.Equal(t, uint32(99), c1.Durability)
}

func TestSchedulerForward(t *testing.T) {
	sched := NewScheduler([]Order{{At: 1, Place: PlaceFuel{Row: 0, Col: 0, Kind: fuel.Wood}}})
	in := make(chan Command, 3)
	out := make(chan Command, 8)
	in <- Tick{}
	in <- Tick{}
	in <- PlaceFuel{Row: 1, Col: 1, Kind: fuel.Wood}
	close(in)

	sched.Forward(context.Background(), in, out)

	var got []Command
	for cmd := range out {
		got = append(got, cmd)
	}
	assert.Equal(t, []Command{
		Tick{},
		PlaceFuel{Row: 0, Col: 0, Kind: fuel.Wood},
		Tick{},
		PlaceFuel{Row: 1, Col: 1, Kind: fuel.Wood},
	}, got)
}

type countingObserver struct {
	seen   int
	resets int
}

func (c *countingObserver) Observe(Outcome) { c.seen++ }
func (c *countingObserver) Reset()          { c.resets++ }

func TestResetKeepsCounters(t *testing.T) {
	obs := &countingObserver{}
	loop := newLoop(t, 1, 1, 100, 1, obs)
	loop.Apply(PlaceFuel{Row: 0, Col: 0, Kind: fuel.Wood})
	loop.Apply(Tick{})
	loop.Apply(Tick{})

	fresh := fuel.NewState(fuel.Config{Width: 1, Height: 1, Balance: 100, TicksPerSecond: 1})
	loop.Reset(fresh)
	out := loop.Apply(Tick{})

	assert.Same(t, fresh, loop.State())
	assert.Equal(t, 1, obs.resets)
	assert.Equal(t, uint64(3), out.Tick)
	assert.Equal(t, uint64(4), out.Seq)
	assert.Equal(t, 100.0, out.Balance)
}
