package background

import (
	"math"

	"github.com/pthm-cable/backdrop/config"
)

var (
	white    = Color{R: 255, G: 255, B: 255}
	clearInk = Color{}
)

// Vignette returns the radial darkening gradient for a viewport.
func Vignette(cfg *config.BackgroundConfig, view Viewport) RadialGradient {
	cx, cy := view.Center()
	return RadialGradient{
		CX:    cx,
		CY:    cy,
		R:     math.Max(view.Width, view.Height) * cfg.VignetteRadius,
		Inner: clearInk,
		Outer: Color{A: cfg.VignetteAlpha},
	}
}

// LinkAlpha returns the line opacity for two particles dist apart:
// peak at zero distance, falling linearly to zero at the link distance.
// Returns 0 for dist >= the link distance.
func LinkAlpha(cfg *config.BackgroundConfig, dist float64) float64 {
	if dist >= cfg.LinkDistance {
		return 0
	}
	return (1 - dist/cfg.LinkDistance) * cfg.LinkAlpha
}

// drawVignette clears the viewport and paints the vignette over it.
func drawVignette(s Surface, cfg *config.BackgroundConfig, view Viewport) {
	s.ClearRect(0, 0, view.Width, view.Height)
	s.FillRectRadial(0, 0, view.Width, view.Height, Vignette(cfg, view))
}

func drawLinks(s Surface, cfg *config.BackgroundConfig, ps []Particle, links []Link) {
	for _, l := range links {
		a, b := &ps[l.I], &ps[l.J]
		c := white
		c.A = LinkAlpha(cfg, l.Dist)
		s.StrokeLine(a.X, a.Y, b.X, b.Y, cfg.LinkWidth, c)
	}
}

func drawDots(s Surface, cfg *config.BackgroundConfig, ps []Particle) {
	c := white
	c.A = cfg.DotAlpha
	for i := range ps {
		s.FillCircle(ps[i].X, ps[i].Y, ps[i].R, c)
	}
}
