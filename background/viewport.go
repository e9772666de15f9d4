package background

import "math"

// Viewport is the logical canvas size and the device pixel ratio in use.
type Viewport struct {
	Width, Height float64
	DPR           float64
}

// BackingSize returns the backing store resolution in device pixels.
func (v Viewport) BackingSize() (int, int) {
	return int(math.Floor(v.Width * v.DPR)), int(math.Floor(v.Height * v.DPR))
}

// Center returns the logical centre of the viewport.
func (v Viewport) Center() (float64, float64) {
	return v.Width * 0.5, v.Height * 0.5
}

// ClampDPR clamps a host-reported device pixel ratio to [lo, hi].
// Missing or nonsensical ratios (NaN, Inf, <= 0) count as 1.
func ClampDPR(dpr, lo, hi float64) float64 {
	if math.IsNaN(dpr) || math.IsInf(dpr, 0) || dpr <= 0 {
		dpr = 1
	}
	return math.Max(lo, math.Min(hi, dpr))
}
