package host

import (
	"testing"
	"time"

	"github.com/pthm-cable/backdrop/background"
	"github.com/pthm-cable/backdrop/surface"
)

type countingListener struct {
	resizes, visibility int
}

func (l *countingListener) OnResize()           { l.resizes++ }
func (l *countingListener) OnVisibilityChange() { l.visibility++ }

func TestHeadless_Lookup(t *testing.T) {
	h := NewHeadless(HeadlessOptions{Width: 10, Height: 10, DPR: 1})
	if h.Lookup(background.MountID) == nil {
		t.Error("expected canvas for the mount id")
	}
	if h.Lookup("other") != nil {
		t.Error("expected no canvas for other ids")
	}

	unmounted := NewHeadless(HeadlessOptions{Unmounted: true})
	if unmounted.Lookup(background.MountID) != nil {
		t.Error("expected no canvas when unmounted")
	}
}

func TestHeadless_AdvanceTimestamps(t *testing.T) {
	h := NewHeadless(HeadlessOptions{Interval: 10 * time.Millisecond})
	var got []time.Duration

	var loop background.FrameFunc
	loop = func(ts time.Duration) {
		got = append(got, ts)
		h.RequestFrame(loop)
	}
	h.RequestFrame(loop)

	if ran := h.Advance(3); ran != 3 {
		t.Errorf("expected 3 callbacks, got %d", ran)
	}
	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("callback %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if h.Now() != 30*time.Millisecond || h.Refreshes() != 3 {
		t.Errorf("expected now 30ms after 3 refreshes, got %v after %d", h.Now(), h.Refreshes())
	}
}

func TestHeadless_DefaultInterval(t *testing.T) {
	h := NewHeadless(HeadlessOptions{})
	h.Advance(60)
	if h.Now() != 60*DefaultInterval {
		t.Errorf("expected %v, got %v", 60*DefaultInterval, h.Now())
	}
}

func TestHeadless_Notifications(t *testing.T) {
	h := NewHeadless(HeadlessOptions{Width: 100, Height: 50, DPR: 1})
	l := &countingListener{}
	h.Listen(l)

	h.Resize(200, 100)
	h.SetDPR(2)
	if l.resizes != 2 {
		t.Errorf("expected 2 resize notifications, got %d", l.resizes)
	}
	if w, ht := h.Canvas().ClientSize(); w != 200 || ht != 100 {
		t.Errorf("expected 200x100, got %vx%v", w, ht)
	}
	if h.Canvas().DevicePixelRatio() != 2 {
		t.Errorf("expected dpr 2, got %v", h.Canvas().DevicePixelRatio())
	}

	h.SetHidden(false) // unchanged
	h.SetHidden(true)
	h.SetHidden(true) // unchanged
	h.SetHidden(false)
	if l.visibility != 2 {
		t.Errorf("expected 2 visibility notifications, got %d", l.visibility)
	}
}

func TestHeadless_DefaultSurfaceDiscards(t *testing.T) {
	h := NewHeadless(HeadlessOptions{Width: 10, Height: 10, DPR: 1})
	ctx := h.Canvas().Context()
	s, ok := ctx.(*surface.Discard)
	if !ok {
		t.Fatalf("expected discard surface, got %T", ctx)
	}
	if h.Canvas().Context() != ctx {
		t.Error("expected the same surface on every acquisition")
	}
	s.ClearRect(0, 0, 10, 10)
	if s.Frames != 1 {
		t.Errorf("expected 1 frame counted, got %d", s.Frames)
	}
	if h.Canvas().Contexts() != 2 {
		t.Errorf("expected 2 context acquisitions, got %d", h.Canvas().Contexts())
	}
}
