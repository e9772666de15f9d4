package surface

import (
	"math"
	"testing"

	"github.com/pthm-cable/backdrop/background"
)

var testVignette = background.RadialGradient{
	CX: 100, CY: 50, R: 80,
	Inner: background.Color{},
	Outer: background.Color{A: 0.45},
}

func TestGradientAt(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float64
		wantA float64
	}{
		{"centre", 100, 50, 0},
		{"halfway", 140, 50, 0.225},
		{"on radius", 100, 130, 0.45},
		{"beyond radius", 0, 0, 0.45},
	}

	for _, tt := range tests {
		got := GradientAt(testVignette, tt.x, tt.y)
		if math.Abs(got.A-tt.wantA) > 1e-12 {
			t.Errorf("%s: expected alpha %v, got %v", tt.name, tt.wantA, got.A)
		}
	}
}

func TestGradientAt_ZeroRadius(t *testing.T) {
	g := testVignette
	g.R = 0
	if got := GradientAt(g, 100, 50); got.A != 0.45 {
		t.Errorf("expected outer stop for zero radius, got %v", got.A)
	}
}

func TestGradientAt_LerpsColor(t *testing.T) {
	g := background.RadialGradient{
		R:     10,
		Inner: background.Color{R: 0, G: 100, B: 200, A: 1},
		Outer: background.Color{R: 200, G: 100, B: 0, A: 1},
	}
	got := GradientAt(g, 5, 0)
	if got.R != 100 || got.G != 100 || got.B != 100 {
		t.Errorf("expected midpoint grey, got %+v", got)
	}
}

func TestRasterizeGradient(t *testing.T) {
	img := RasterizeGradient(testVignette, 200, 100, 4)

	b := img.Bounds()
	if b.Dx() != 50 || b.Dy() != 25 {
		t.Fatalf("expected 50x25 image, got %dx%d", b.Dx(), b.Dy())
	}

	// Pixel (24, 12) samples (98, 50): 2 units from centre.
	if a := img.NRGBAAt(24, 12).A; a > 3 {
		t.Errorf("expected near-transparent centre, got alpha %d", a)
	}
	if a := img.NRGBAAt(0, 0).A; a != 115 {
		t.Errorf("expected corner alpha 115, got %d", a)
	}
}

func TestRasterizeGradient_DegenerateSize(t *testing.T) {
	img := RasterizeGradient(testVignette, 0, 0, 0)
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("expected 1x1 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestNRGBA_ClampsAlpha(t *testing.T) {
	if a := NRGBA(background.Color{A: 2}).A; a != 255 {
		t.Errorf("expected 255, got %d", a)
	}
	if a := NRGBA(background.Color{A: -1}).A; a != 0 {
		t.Errorf("expected 0, got %d", a)
	}
	if a := NRGBA(background.Color{A: 0.22}).A; a != 56 {
		t.Errorf("expected 56, got %d", a)
	}
}
