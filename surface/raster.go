package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/pthm-cable/backdrop/background"
)

// GradientAt samples g at logical point (x, y). Points at or beyond the
// radius take the outer stop.
func GradientAt(g background.RadialGradient, x, y float64) background.Color {
	t := 1.0
	if g.R > 0 {
		t = math.Min(math.Hypot(x-g.CX, y-g.CY)/g.R, 1)
	}
	return background.Color{
		R: lerp8(g.Inner.R, g.Outer.R, t),
		G: lerp8(g.Inner.G, g.Outer.G, t),
		B: lerp8(g.Inner.B, g.Outer.B, t),
		A: g.Inner.A + (g.Outer.A-g.Inner.A)*t,
	}
}

// RasterizeGradient renders g over a w x h logical rectangle with one pixel
// per step logical units. Each pixel samples the gradient at its centre.
func RasterizeGradient(g background.RadialGradient, w, h, step float64) *image.NRGBA {
	if step < 1 {
		step = 1
	}
	pw := max(int(math.Ceil(w/step)), 1)
	ph := max(int(math.Ceil(h/step)), 1)

	img := image.NewNRGBA(image.Rect(0, 0, pw, ph))
	for j := 0; j < ph; j++ {
		y := (float64(j) + 0.5) * step
		for i := 0; i < pw; i++ {
			x := (float64(i) + 0.5) * step
			img.SetNRGBA(i, j, NRGBA(GradientAt(g, x, y)))
		}
	}
	return img
}

// NRGBA converts a color to 8-bit non-premultiplied form.
func NRGBA(c background.Color) color.NRGBA {
	a := math.Max(0, math.Min(1, c.A))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
