package background

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/backdrop/config"
)

// Particle is a single drifting dot.
type Particle struct {
	X, Y   float64
	VX, VY float64
	R      float64 // radius, fixed at creation
	Phase  float64 // flow field offset, fixed at creation
}

// ParticleCount returns the density-based particle count for a viewport,
// clamped to the configured bounds.
func ParticleCount(cfg *config.BackgroundConfig, w, h float64) int {
	n := int(math.Floor(w * h / cfg.AreaPerParticle))
	if n < cfg.MinParticles {
		return cfg.MinParticles
	}
	if n > cfg.MaxParticles {
		return cfg.MaxParticles
	}
	return n
}

// seedParticles fills dst with n fresh particles spread uniformly over the viewport.
// dst is reused when it has enough capacity.
func seedParticles(dst []Particle, n int, w, h float64, cfg *config.BackgroundConfig, rng *rand.Rand) []Particle {
	if cap(dst) < n {
		dst = make([]Particle, n)
	}
	dst = dst[:n]

	for i := range dst {
		dst[i] = Particle{
			X:     uniform(rng, 0, w),
			Y:     uniform(rng, 0, h),
			VX:    uniform(rng, -cfg.InitSpeed, cfg.InitSpeed),
			VY:    uniform(rng, -cfg.InitSpeed, cfg.InitSpeed),
			R:     uniform(rng, cfg.MinRadius, cfg.MaxRadius),
			Phase: uniform(rng, 0, 2*math.Pi),
		}
	}
	return dst
}

func uniform(rng *rand.Rand, a, b float64) float64 {
	return a + rng.Float64()*(b-a)
}
