//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"fuelgrid/internal/core"
	"fuelgrid/internal/engine"
	"fuelgrid/internal/fuel"
	"fuelgrid/internal/render"
	"fuelgrid/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const minScreenHeight = 200

// Options configures the GUI.
type Options struct {
	Scale     int
	HUDWidth  int
	Kind      fuel.Kind // kind bought on click
	Logger    *slog.Logger
	Observers []engine.Observer
}

// Game adapts the fuel world to the ebiten.Game interface. All commands run on
// ebiten's update goroutine through an engine.Loop.
type Game struct {
	world   *fuel.World
	loop    *engine.Loop
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	step    *core.FixedStep
	clicks  clickTracker

	opts     Options
	logger   *slog.Logger
	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided world.
func New(world *fuel.World, opts Options) *Game {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if !opts.Kind.Purchasable() {
		opts.Kind = fuel.Wood
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	size := world.Size()
	g := &Game{
		world:   world,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(world, opts.Scale),
		step:    core.NewFixedStep(world.State().TicksPerSecond),
		opts:    opts,
		logger:  opts.Logger,
	}
	g.hud = ui.NewHUD(world, opts.HUDWidth,
		"Click: buy "+opts.Kind.String(),
		"Space: pause  N: step",
		"R: reset  D/H: overlay",
	)
	g.loop = engine.NewLoop(world.State(), g.logger, opts.Observers...)
	return g
}

// Reset restarts the world from its configuration.
func (g *Game) Reset() {
	g.world.Reset()
	g.loop.Reset(g.world.State())
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}

	g.overlay.Update()
	g.hud.Update(g.gridWidth())
	g.handleClicks()

	g.step.SetTPS(g.world.State().TicksPerSecond)
	due := g.step.ShouldStep()
	if (!g.paused && due) || g.tickOnce {
		g.loop.Apply(engine.Tick{})
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handleClicks() {
	size := g.world.Size()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.clicks.Press(cellAt(x, y, g.opts.Scale, size))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if c, ok := g.clicks.Release(cellAt(x, y, g.opts.Scale, size)); ok {
			g.loop.Apply(engine.PlaceFuel{Row: c.Row, Col: c.Col, Kind: g.opts.Kind})
		}
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	g.painter.Blit(screen, g.world.Cells(), g.world.Palette(), g.opts.Scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridWidth(), g.opts.Scale)
	g.logger.Debug("paint", "elapsed", time.Since(start))
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	h := s.H * g.opts.Scale
	if g.hud.Width() > 0 && h < minScreenHeight {
		h = minScreenHeight
	}
	return g.gridWidth() + g.hud.Width(), h
}

func (g *Game) gridWidth() int {
	return g.world.Size().W * g.opts.Scale
}
