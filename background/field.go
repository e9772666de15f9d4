package background

import (
	"math"

	"github.com/pthm-cable/backdrop/config"
)

// FlowForce returns the forcing vector acting on p at time t (seconds).
// It depends only on the particle's own state and the clock.
func FlowForce(cfg *config.BackgroundConfig, p *Particle, t float64) (fx, fy float64) {
	fx = math.Sin(p.Y/cfg.FlowScaleY+t+p.Phase) * cfg.Force
	fy = math.Cos(p.X/cfg.FlowScaleX-t+p.Phase) * cfg.Force
	return fx, fy
}

// stepParticles integrates every particle by one frame and re-applies the wrap.
func stepParticles(ps []Particle, cfg *config.BackgroundConfig, view Viewport, t float64) {
	for i := range ps {
		p := &ps[i]

		fx, fy := FlowForce(cfg, p, t)

		// Additive forcing, multiplicative damping
		p.VX = (p.VX + fx) * cfg.Damping
		p.VY = (p.VY + fy) * cfg.Damping

		p.X += p.VX
		p.Y += p.VY

		p.X = wrap(p.X, view.Width, cfg.WrapMargin)
		p.Y = wrap(p.Y, view.Height, cfg.WrapMargin)
	}
}

// wrap moves v to the opposite edge of [-margin, size+margin] when it leaves it.
func wrap(v, size, margin float64) float64 {
	if v < -margin {
		return size + margin
	}
	if v > size+margin {
		return -margin
	}
	return v
}
