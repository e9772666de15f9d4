// Package renderer draws the background into a raylib window.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/background"
	"github.com/pthm-cable/backdrop/surface"
)

// vignetteStep is the vignette texture resolution in logical units per texel.
// Bilinear filtering hides the downsampling.
const vignetteStep = 4

type vignetteKey struct {
	w, h float64
	g    background.RadialGradient
}

// Surface is a background.Surface drawing with raylib immediate-mode calls.
// Coordinates are logical and multiplied by the installed scale.
type Surface struct {
	scale float32
	clear rl.Color

	vignette       rl.Texture2D
	vignetteKey    vignetteKey
	vignetteLoaded bool
	vignetteBuilds int
}

// NewSurface creates a surface that clears to the given page color.
func NewSurface(clear [3]uint8) *Surface {
	return &Surface{
		scale: 1,
		clear: rl.Color{R: clear[0], G: clear[1], B: clear[2], A: 255},
	}
}

func (s *Surface) SetScale(scale float64) {
	s.scale = float32(scale)
}

// ClearRect resets the target to the page color. The background only ever
// clears its whole viewport, so the rectangle is not consulted.
func (s *Surface) ClearRect(x, y, w, h float64) {
	rl.ClearBackground(s.clear)
}

// FillRectRadial draws the gradient from a texture that is rebuilt only when
// the rectangle or the gradient changes, i.e. after a resize.
func (s *Surface) FillRectRadial(x, y, w, h float64, g background.RadialGradient) {
	key := vignetteKey{w: w, h: h, g: g}
	if !s.vignetteLoaded || key != s.vignetteKey {
		s.buildVignette(key)
	}

	src := rl.Rectangle{Width: float32(s.vignette.Width), Height: float32(s.vignette.Height)}
	dst := rl.Rectangle{
		X:      float32(x) * s.scale,
		Y:      float32(y) * s.scale,
		Width:  float32(w) * s.scale,
		Height: float32(h) * s.scale,
	}
	rl.DrawTexturePro(s.vignette, src, dst, rl.Vector2{}, 0, rl.White)
}

func (s *Surface) buildVignette(key vignetteKey) {
	s.unloadVignette()

	img := rl.NewImageFromImage(surface.RasterizeGradient(key.g, key.w, key.h, vignetteStep))
	s.vignette = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(s.vignette, rl.FilterBilinear)

	s.vignetteKey = key
	s.vignetteLoaded = true
	s.vignetteBuilds++
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c background.Color) {
	rl.DrawLineEx(
		rl.Vector2{X: float32(x0) * s.scale, Y: float32(y0) * s.scale},
		rl.Vector2{X: float32(x1) * s.scale, Y: float32(y1) * s.scale},
		float32(width)*s.scale,
		toRL(c),
	)
}

func (s *Surface) FillCircle(x, y, r float64, c background.Color) {
	rl.DrawCircleV(
		rl.Vector2{X: float32(x) * s.scale, Y: float32(y) * s.scale},
		float32(r)*s.scale,
		toRL(c),
	)
}

// VignetteBuilds returns how many times the vignette texture was generated.
func (s *Surface) VignetteBuilds() int { return s.vignetteBuilds }

func (s *Surface) unloadVignette() {
	if s.vignetteLoaded {
		rl.UnloadTexture(s.vignette)
		s.vignetteLoaded = false
	}
}

// Unload frees GPU resources.
func (s *Surface) Unload() {
	s.unloadVignette()
}

func toRL(c background.Color) rl.Color {
	a := math.Max(0, math.Min(1, c.A))
	return rl.Color{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}
