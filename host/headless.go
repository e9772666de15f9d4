package host

import (
	"time"

	"github.com/pthm-cable/backdrop/background"
	"github.com/pthm-cable/backdrop/surface"
)

// DefaultInterval is the refresh interval of a headless host (60 Hz).
const DefaultInterval = time.Second / 60

// HeadlessOptions configures a Headless host.
type HeadlessOptions struct {
	Width, Height float64
	DPR           float64
	// Surface receives draw calls. Nil uses a surface.Discard.
	Surface background.Surface
	// Interval between simulated refreshes. Zero uses DefaultInterval.
	Interval      time.Duration
	ReducedMotion bool
	// Unmounted makes Lookup report no render target.
	Unmounted bool
}

// Headless is a background.Host without a display. Refreshes happen only when
// Advance is called, with a fixed simulated interval between them.
type Headless struct {
	queue     *FrameQueue
	canvas    *HeadlessCanvas
	reduced   bool
	hidden    bool
	listeners []background.Listener
	interval  time.Duration
	now       time.Duration
	refreshes uint64
}

// NewHeadless creates a visible headless host.
func NewHeadless(opts HeadlessOptions) *Headless {
	h := &Headless{
		queue:    NewFrameQueue(),
		reduced:  opts.ReducedMotion,
		interval: opts.Interval,
	}
	if h.interval <= 0 {
		h.interval = DefaultInterval
	}
	if !opts.Unmounted {
		s := opts.Surface
		if s == nil {
			s = surface.NewDiscard()
		}
		h.canvas = &HeadlessCanvas{w: opts.Width, h: opts.Height, dpr: opts.DPR, surface: s}
	}
	return h
}

// Lookup returns the headless canvas for background.MountID.
func (h *Headless) Lookup(id string) background.Canvas {
	if id != background.MountID || h.canvas == nil {
		return nil
	}
	return h.canvas
}

func (h *Headless) PrefersReducedMotion() bool { return h.reduced }
func (h *Headless) Hidden() bool               { return h.hidden }

func (h *Headless) RequestFrame(fn background.FrameFunc) background.FrameHandle {
	return h.queue.Request(fn)
}

func (h *Headless) CancelFrame(fh background.FrameHandle) { h.queue.Cancel(fh) }

func (h *Headless) Listen(l background.Listener) { h.listeners = append(h.listeners, l) }

// Advance simulates n display refreshes and returns how many frame callbacks ran.
func (h *Headless) Advance(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		h.now += h.interval
		h.refreshes++
		ran += h.queue.Pump(h.now)
	}
	return ran
}

// Resize changes the canvas size and notifies listeners.
func (h *Headless) Resize(w, ht float64) {
	if h.canvas != nil {
		h.canvas.w, h.canvas.h = w, ht
	}
	for _, l := range h.listeners {
		l.OnResize()
	}
}

// SetDPR changes the reported device pixel ratio and notifies listeners, as a
// move to a display with a different density would.
func (h *Headless) SetDPR(dpr float64) {
	if h.canvas != nil {
		h.canvas.dpr = dpr
	}
	for _, l := range h.listeners {
		l.OnResize()
	}
}

// SetHidden changes visibility and notifies listeners when it differs.
func (h *Headless) SetHidden(hidden bool) {
	if h.hidden == hidden {
		return
	}
	h.hidden = hidden
	for _, l := range h.listeners {
		l.OnVisibilityChange()
	}
}

// Now returns the simulated host time.
func (h *Headless) Now() time.Duration { return h.now }

// Refreshes returns the number of simulated refreshes so far.
func (h *Headless) Refreshes() uint64 { return h.refreshes }

// Pending returns the number of frame callbacks waiting to run.
func (h *Headless) Pending() int { return h.queue.Len() }

// Canvas returns the mounted canvas, or nil when unmounted.
func (h *Headless) Canvas() *HeadlessCanvas { return h.canvas }

// HeadlessCanvas is the in-memory mount target of a Headless host.
type HeadlessCanvas struct {
	w, h     float64
	dpr      float64
	backingW int
	backingH int
	surface  background.Surface
	contexts int
}

func (c *HeadlessCanvas) ClientSize() (float64, float64) { return c.w, c.h }
func (c *HeadlessCanvas) DevicePixelRatio() float64     { return c.dpr }

func (c *HeadlessCanvas) SetBackingSize(w, h int) {
	c.backingW, c.backingH = w, h
}

// Context returns the drawing surface and counts the acquisition.
func (c *HeadlessCanvas) Context() background.Surface {
	c.contexts++
	return c.surface
}

// BackingSize returns the last backing store size set by the background.
func (c *HeadlessCanvas) BackingSize() (int, int) { return c.backingW, c.backingH }

// Contexts returns how many times the drawing surface was acquired.
func (c *HeadlessCanvas) Contexts() int { return c.contexts }
