package fuel

import "image/color"

const (
	displayKindMask   = 0x03
	displayShadeShift = 2
	displayShades     = 8
)

var fuelPalette = buildFuelPalette()

// Palette exposes the color palette used for rendering the display buffer.
func (w *World) Palette() []color.RGBA {
	return fuelPalette
}

// encodeCell packs the kind into the low bits and a durability shade bucket
// above it.
func encodeCell(c Fuel) uint8 {
	if c.Empty() {
		return uint8(None)
	}
	shade := int(c.Ratio() * displayShades)
	if shade >= displayShades {
		shade = displayShades - 1
	}
	if shade < 0 {
		shade = 0
	}
	return uint8(c.Kind)&displayKindMask | uint8(shade)<<displayShadeShift
}

// DecodeCell reverses encodeCell, returning the kind and shade bucket.
func DecodeCell(v uint8) (Kind, int) {
	return Kind(v & displayKindMask), int(v >> displayShadeShift)
}

func buildFuelPalette() []color.RGBA {
	palette := make([]color.RGBA, (displayKindMask+1)*displayShades)
	for i := range palette {
		kind, shade := DecodeCell(uint8(i))
		palette[i] = paletteColorFor(kind, shade)
	}
	return palette
}

func paletteColorFor(kind Kind, shade int) color.RGBA {
	switch kind {
	case Wood:
		spent := color.RGBA{R: 90, G: 30, B: 10, A: 255}
		fresh := color.RGBA{R: 176, G: 112, B: 56, A: 255}
		return blendColors(spent, fresh, float64(shade)/float64(displayShades-1))
	case None:
		return color.RGBA{R: 245, G: 245, B: 240, A: 255}
	default:
		return color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
}

func blendColors(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
