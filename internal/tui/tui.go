// Package tui is a terminal frontend for the fuel grid built on Bubble Tea.
// Every command goes through an engine.Loop on the Bubble Tea update goroutine.
package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fuelgrid/internal/core"
	"fuelgrid/internal/engine"
	"fuelgrid/internal/fuel"
)

// TickMsg drives one simulation tick.
type TickMsg time.Time

// tickCmd schedules the next tick. The period is recomputed on every call so
// a rate change takes effect from the next tick on.
func tickCmd(tps float64) tea.Cmd {
	return tea.Tick(core.Period(tps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

const tpsStep = 0.25

var (
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	freshStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	wornStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	paneStyle   = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("2"))
)

// Options configures the model.
type Options struct {
	Kind      fuel.Kind
	Logger    *slog.Logger
	Observers []engine.Observer
}

// Model is the Bubble Tea model of one game.
type Model struct {
	world  *fuel.World
	loop   *engine.Loop
	opts   Options
	cursor core.Coord
	paused bool
	status string
}

// NewModel returns a model playing world.
func NewModel(world *fuel.World, opts Options) Model {
	if !opts.Kind.Purchasable() {
		opts.Kind = fuel.Wood
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return Model{
		world: world,
		loop:  engine.NewLoop(world.State(), opts.Logger, opts.Observers...),
		opts:  opts,
	}
}

// Init starts the tick timer.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.world.State().TicksPerSecond)
}

// Update handles key presses and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if !m.paused {
			m.loop.Apply(engine.Tick{})
		}
		return m, tickCmd(m.world.State().TicksPerSecond)
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	size := m.world.Size()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case "down", "j":
		if m.cursor.Row < size.H-1 {
			m.cursor.Row++
		}
	case "left", "h":
		if m.cursor.Col > 0 {
			m.cursor.Col--
		}
	case "right", "l":
		if m.cursor.Col < size.W-1 {
			m.cursor.Col++
		}
	case "enter", " ":
		m.place()
	case "p":
		m.paused = !m.paused
	case "n":
		m.loop.Apply(engine.Tick{})
	case "+", "=":
		m.adjustRate(tpsStep)
	case "-":
		m.adjustRate(-tpsStep)
	case "r":
		m.world.Reset()
		m.loop.Reset(m.world.State())
		m.status = "reset"
	}
	return m, nil
}

func (m *Model) place() {
	cmd := engine.PlaceFuel{Row: m.cursor.Row, Col: m.cursor.Col, Kind: m.opts.Kind}
	out := m.loop.Apply(cmd)
	switch {
	case out.Err != nil:
		m.status = out.Err.Error()
	case !out.Placed:
		m.status = fmt.Sprintf("%s costs %s", m.opts.Kind, formatAmount(m.opts.Kind.Price()))
	default:
		m.status = fmt.Sprintf("bought %s at %s", m.opts.Kind, m.cursor)
	}
}

func (m *Model) adjustRate(delta float64) {
	tps := m.world.State().TicksPerSecond + delta
	if m.world.SetFloatParameter(fuel.ParamTicksPerSecond, tps) {
		m.status = "rate " + formatAmount(m.world.State().TicksPerSecond) + " tps"
	}
}

// View renders the grid, the balance and the key hints.
func (m Model) View() string {
	state := m.world.State()
	grid := state.Grid

	var b strings.Builder
	for row := 0; row < grid.H; row++ {
		for col := 0; col < grid.W; col++ {
			cell := grid.Cells()[grid.Index(row, col)]
			glyph := cellGlyph(cell)
			if row == m.cursor.Row && col == m.cursor.Col {
				glyph = cursorStyle.Render(glyph)
			}
			b.WriteString(glyph)
		}
		if row < grid.H-1 {
			b.WriteByte('\n')
		}
	}

	status := "Balance: " + formatAmount(state.Balance)
	if m.paused {
		status += "  [paused]"
	}
	lines := []string{
		paneStyle.Render(b.String()),
		statusStyle.Render(status),
	}
	if m.status != "" {
		lines = append(lines, m.status)
	}
	lines = append(lines, hintStyle.Render("arrows/hjkl move  enter buy  p pause  n step  +/- rate  r reset  q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Balance returns the current balance.
func (m Model) Balance() float64 { return m.world.State().Balance }

func cellGlyph(c fuel.Fuel) string {
	if c.Empty() {
		return emptyStyle.Render("·")
	}
	if c.Ratio() > 0.5 {
		return freshStyle.Render("█")
	}
	return wornStyle.Render("▒")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Run plays world until the user quits.
func Run(world *fuel.World, opts Options) error {
	p := tea.NewProgram(NewModel(world, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
