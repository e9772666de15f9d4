package background

import "time"

// MountID is the well-known identifier of the render target.
const MountID = "bg-canvas"

// FrameHandle identifies a requested frame. The zero handle means "none".
type FrameHandle uint64

// FrameFunc is invoked once at the next display refresh with the host timestamp,
// measured from the host's time origin.
type FrameFunc func(ts time.Duration)

// Host is the environment the background runs in.
type Host interface {
	// Lookup returns the render target with the given id, or nil when absent.
	Lookup(id string) Canvas
	PrefersReducedMotion() bool
	Hidden() bool
	RequestFrame(fn FrameFunc) FrameHandle
	// CancelFrame guarantees the callback behind h will not fire.
	CancelFrame(h FrameHandle)
	// Listen registers l for resize and visibility notifications.
	Listen(l Listener)
}

// Listener receives host notifications. Neither carries a payload; handlers
// re-read the current size or visibility from the host.
type Listener interface {
	OnResize()
	OnVisibilityChange()
}

// Canvas is the mount target.
type Canvas interface {
	// ClientSize returns the rendered size in logical pixels.
	ClientSize() (w, h float64)
	DevicePixelRatio() float64
	SetBackingSize(w, h int)
	Context() Surface
}

// Color is an RGB colour with a fractional alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// RadialGradient fades from Inner at (CX, CY) to Outer at distance R and beyond.
type RadialGradient struct {
	CX, CY, R    float64
	Inner, Outer Color
}

// Surface is a 2D immediate-mode drawing context in logical coordinates.
type Surface interface {
	// SetScale installs a uniform logical-to-backing scale, replacing any previous one.
	SetScale(s float64)
	ClearRect(x, y, w, h float64)
	FillRectRadial(x, y, w, h float64, g RadialGradient)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	FillCircle(x, y, r float64, c Color)
}
