package background

import (
	"math"
	"math/rand"
	"testing"
)

func TestFlowForce_ClosedForm(t *testing.T) {
	cfg := testConfig()
	p := Particle{X: 110, Y: 90, Phase: 0.3}
	tm := 1.25

	fx, fy := FlowForce(cfg, &p, tm)

	wantX := math.Sin(90.0/180+tm+0.3) * 0.04
	wantY := math.Cos(110.0/220-tm+0.3) * 0.04
	if math.Abs(fx-wantX) > 1e-12 || math.Abs(fy-wantY) > 1e-12 {
		t.Errorf("expected force (%v, %v), got (%v, %v)", wantX, wantY, fx, fy)
	}
	if math.Abs(fx) > 0.04 || math.Abs(fy) > 0.04 {
		t.Errorf("force (%v, %v) exceeds amplitude 0.04", fx, fy)
	}
}

func TestStep_IntegratesVelocityThenPosition(t *testing.T) {
	cfg := testConfig()
	view := Viewport{Width: 500, Height: 500, DPR: 1}
	ps := []Particle{{X: 250, Y: 250, VX: 0.2, VY: -0.1, R: 1.5, Phase: 1}}

	fx, fy := FlowForce(cfg, &ps[0], 2)
	wantVX := (0.2 + fx) * 0.994
	wantVY := (-0.1 + fy) * 0.994

	stepParticles(ps, cfg, view, 2)

	p := ps[0]
	if math.Abs(p.VX-wantVX) > 1e-12 || math.Abs(p.VY-wantVY) > 1e-12 {
		t.Errorf("expected velocity (%v, %v), got (%v, %v)", wantVX, wantVY, p.VX, p.VY)
	}
	if math.Abs(p.X-(250+wantVX)) > 1e-12 || math.Abs(p.Y-(250+wantVY)) > 1e-12 {
		t.Errorf("expected position (%v, %v), got (%v, %v)", 250+wantVX, 250+wantVY, p.X, p.Y)
	}
	if p.R != 1.5 || p.Phase != 1 {
		t.Error("radius and phase must not change during a step")
	}
}

func TestStep_WrapsPastRightEdge(t *testing.T) {
	cfg := testConfig()
	view := Viewport{Width: 400, Height: 300, DPR: 1}
	ps := []Particle{{X: 400 + 21, Y: 150}}

	stepParticles(ps, cfg, view, 0)

	if ps[0].X != -20 {
		t.Errorf("expected x wrapped to -20, got %v", ps[0].X)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"inside", 50, 50},
		{"on low edge", -20, -20},
		{"on high edge", 120, 120},
		{"past low edge", -20.5, 120},
		{"past high edge", 120.5, -20},
		{"far past high edge", 900, -20},
	}

	for _, tt := range tests {
		if got := wrap(tt.v, 100, 20); got != tt.want {
			t.Errorf("%s: wrap(%v) expected %v, got %v", tt.name, tt.v, tt.want, got)
		}
	}
}

func TestStep_StaysInsideInflatedViewport(t *testing.T) {
	cfg := testConfig()
	view := Viewport{Width: 640, Height: 360, DPR: 1}
	rng := rand.New(rand.NewSource(3))
	ps := seedParticles(nil, ParticleCount(cfg, view.Width, view.Height), view.Width, view.Height, cfg, rng)

	for frame := 0; frame < 5000; frame++ {
		stepParticles(ps, cfg, view, float64(frame)/60)
		for i, p := range ps {
			if p.X < -20 || p.X > view.Width+20 || p.Y < -20 || p.Y > view.Height+20 {
				t.Fatalf("frame %d particle %d: (%f, %f) outside inflated viewport", frame, i, p.X, p.Y)
			}
		}
	}
}

func TestStep_VelocityBounded(t *testing.T) {
	cfg := testConfig()
	view := Viewport{Width: 1200, Height: 800, DPR: 1}
	rng := rand.New(rand.NewSource(11))
	ps := seedParticles(nil, 150, view.Width, view.Height, cfg, rng)

	// The bound is per axis; the magnitude adds a factor of sqrt 2.
	vMax := math.Sqrt2*cfg.VelocityBound() + 1e-9

	for frame := 0; frame < 10000; frame++ {
		stepParticles(ps, cfg, view, float64(frame)*0.016)
	}
	for i, p := range ps {
		if v := math.Hypot(p.VX, p.VY); v > vMax {
			t.Errorf("particle %d: |v| = %f exceeds bound %f", i, v, vMax)
		}
	}
}
