//go:build ebiten

package ui

import (
	"image/color"

	"fuelgrid/internal/fuel"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional visuals on top of the grid: a durability bar under
// every burning cell and a frame around the hovered cell.
type Overlay struct {
	world *fuel.World
	scale int

	showDurability bool
	showHover      bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(world *fuel.World, scale int) *Overlay {
	o := &Overlay{world: world, scale: scale, showDurability: true, showHover: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the layers: D for durability bars, H for the hover frame.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.showDurability = !o.showDurability
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHover = !o.showHover
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	grid := o.world.State().Grid
	if o.showDurability && scale >= 4 {
		barHeight := scale / 8
		if barHeight < 1 {
			barHeight = 1
		}
		for row := 0; row < grid.H; row++ {
			for col := 0; col < grid.W; col++ {
				cell := grid.Cells()[grid.Index(row, col)]
				if cell.Empty() {
					continue
				}
				width := float64(scale-2) * cell.Ratio()
				x := float64(col*scale + 1)
				y := float64((row+1)*scale - barHeight - 1)
				o.fillRect(screen, x, y, width, float64(barHeight), durabilityColor(cell.Ratio()))
			}
		}
	}
	if o.showHover {
		mx, my := ebiten.CursorPosition()
		row, col := my/scale, mx/scale
		if mx >= 0 && my >= 0 && grid.InBounds(row, col) {
			frame := color.RGBA{R: 240, G: 200, B: 40, A: 255}
			x, y, s := float64(col*scale), float64(row*scale), float64(scale)
			o.fillRect(screen, x, y, s, 1, frame)
			o.fillRect(screen, x, y+s-1, s, 1, frame)
			o.fillRect(screen, x, y, 1, s, frame)
			o.fillRect(screen, x+s-1, y, 1, s, frame)
		}
	}
}

func (o *Overlay) fillRect(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(o.pixel, op)
}

func durabilityColor(ratio float64) color.RGBA {
	switch {
	case ratio > 0.5:
		return color.RGBA{R: 80, G: 200, B: 80, A: 255}
	case ratio > 0.2:
		return color.RGBA{R: 230, G: 190, B: 40, A: 255}
	default:
		return color.RGBA{R: 220, G: 50, B: 40, A: 255}
	}
}
