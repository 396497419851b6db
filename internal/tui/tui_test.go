package tui

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelgrid/internal/engine"
	"fuelgrid/internal/fuel"
	"fuelgrid/internal/telemetry"
)

func newModel(t *testing.T, observers ...engine.Observer) Model {
	t.Helper()
	world := fuel.NewWorld(fuel.Config{Width: 3, Height: 2, Balance: 100, TicksPerSecond: 1})
	return NewModel(world, Options{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Observers: observers,
	})
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlaceAndTick(t *testing.T) {
	m := newModel(t)
	assert.Contains(t, m.View(), "Balance: 100")

	m, _ = send(t, m, key("enter"))
	assert.Equal(t, 20.0, m.Balance())
	assert.Contains(t, m.View(), "Balance: 20")

	m, cmd := send(t, m, TickMsg(time.Now()))
	require.NotNil(t, cmd, "tick must re-arm the timer")
	assert.Equal(t, 30.0, m.Balance())
	assert.Equal(t, uint32(99), m.world.State().Grid.Cells()[0].Durability)
}

func TestPlaceWithoutFundsReportsPrice(t *testing.T) {
	m := newModel(t)
	m, _ = send(t, m, key("enter"))
	m, _ = send(t, m, key("l"))
	m, _ = send(t, m, key("enter"))

	assert.Equal(t, 20.0, m.Balance())
	assert.Equal(t, 1, m.world.State().Burning())
	assert.Contains(t, m.View(), "costs 80")
}

func TestCursorStaysOnGrid(t *testing.T) {
	m := newModel(t)
	for i := 0; i < 5; i++ {
		m, _ = send(t, m, key("right"))
		m, _ = send(t, m, key("down"))
	}
	assert.Equal(t, 2, m.cursor.Col)
	assert.Equal(t, 1, m.cursor.Row)

	for i := 0; i < 5; i++ {
		m, _ = send(t, m, key("h"))
		m, _ = send(t, m, key("k"))
	}
	assert.Zero(t, m.cursor.Col)
	assert.Zero(t, m.cursor.Row)
}

func TestPauseSkipsTicks(t *testing.T) {
	m := newModel(t)
	m, _ = send(t, m, key("enter"))
	m, _ = send(t, m, key("p"))
	m, cmd := send(t, m, TickMsg(time.Now()))

	assert.NotNil(t, cmd)
	assert.Equal(t, 20.0, m.Balance())
	assert.Contains(t, m.View(), "[paused]")

	m, _ = send(t, m, key("n"))
	assert.Equal(t, 30.0, m.Balance())
}

func TestRateKeysClamp(t *testing.T) {
	m := newModel(t)
	m, _ = send(t, m, key("+"))
	assert.Equal(t, 1.25, m.world.State().TicksPerSecond)

	for i := 0; i < 10; i++ {
		m, _ = send(t, m, key("-"))
	}
	assert.Equal(t, 0.25, m.world.State().TicksPerSecond)
}

func TestResetKeepsObservers(t *testing.T) {
	var ticks int
	obs := engine.ObserverFunc(func(o engine.Outcome) {
		if _, ok := o.Command.(engine.Tick); ok {
			ticks++
		}
	})
	m := newModel(t, obs)
	m, _ = send(t, m, key("enter"))
	m, _ = send(t, m, key("r"))
	assert.Equal(t, 100.0, m.Balance())
	assert.Zero(t, m.world.State().Burning())

	m, _ = send(t, m, key("n"))
	assert.Equal(t, 1, ticks)
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := send(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestResetContinuesTickNumbers(t *testing.T) {
	sink := &rowSink{}
	rec := telemetry.NewRecorder(sink, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	m := newModel(t, rec)
	for _, k := range []string{"n", "n", "r", "n"} {
		m, _ = send(t, m, key(k))
	}

	require.Len(t, sink.rows, 3)
	for i, row := range sink.rows {
		assert.Equal(t, uint64(i+1), row.Tick)
	}
	assert.Equal(t, 1, sink.rows[2].Run)
	assert.Equal(t, uint64(3), rec.Last().Tick)
}

type rowSink struct{ rows []telemetry.TickStats }

func (s *rowSink) WriteTick(r telemetry.TickStats) error {
	s.rows = append(s.rows, r)
	return nil
}
