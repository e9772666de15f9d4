package background

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/telemetry"
)

// State is the scheduling state of a Background.
type State uint8

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Options holds optional collaborators for New.
type Options struct {
	// Rand drives seeding. Nil uses a source seeded from cfg.Seed (0 = time-based).
	Rand *rand.Rand
	// Logger receives lifecycle events. Nil uses slog.Default().
	Logger *slog.Logger
	// Perf, when set, receives per-phase frame timings.
	Perf *telemetry.PerfCollector
	// Links overrides the finder chosen by cfg.LinkMethod.
	Links LinkFinder
}

// Background is the particle animation. It exclusively owns its particles,
// viewport and pending frame handle.
type Background struct {
	cfg   config.BackgroundConfig
	rng   *rand.Rand
	log   *slog.Logger
	perf  *telemetry.PerfCollector
	links LinkFinder

	host    Host
	canvas  Canvas
	surface Surface

	view      Viewport
	particles []Particle
	linkBuf   []Link
	handle    FrameHandle
	frames    uint64
	closed    bool
}

// New creates a stopped Background. It touches no host resources until Start.
func New(cfg *config.BackgroundConfig, opts Options) *Background {
	b := &Background{
		cfg:   *cfg,
		rng:   opts.Rand,
		log:   opts.Logger,
		perf:  opts.Perf,
		links: opts.Links,
	}
	if b.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		b.rng = rand.New(rand.NewSource(seed))
	}
	if b.log == nil {
		b.log = slog.Default()
	}
	if b.links == nil {
		b.links = NewLinkFinder(cfg.LinkMethod)
	}
	return b
}

// Start mounts the background on host and schedules the first frame.
// It returns false, without touching the drawing context, when the mount
// target is missing or the host prefers reduced motion. Calling Start on a
// background that already started is a no-op returning false.
func (b *Background) Start(host Host) bool {
	if b.host != nil || b.closed {
		return false
	}

	canvas := host.Lookup(MountID)
	if canvas == nil {
		b.log.Debug("background disabled", "reason", "no mount", "id", MountID)
		return false
	}
	if host.PrefersReducedMotion() {
		b.log.Debug("background disabled", "reason", "reduced motion")
		return false
	}

	b.host = host
	b.canvas = canvas
	b.surface = canvas.Context()

	host.Listen(b)
	b.OnResize()
	b.handle = host.RequestFrame(b.frame)

	b.log.Info("background started",
		"width", b.view.Width,
		"height", b.view.Height,
		"dpr", b.view.DPR,
		"particles", len(b.particles),
	)
	return true
}

// OnResize re-reads the mount size, resizes the backing store and reseeds.
func (b *Background) OnResize() {
	if b.canvas == nil || b.closed {
		return
	}

	dpr := ClampDPR(b.canvas.DevicePixelRatio(), b.cfg.MinDPR, b.cfg.MaxDPR)
	w, h := b.canvas.ClientSize()
	b.view = Viewport{Width: w, Height: h, DPR: dpr}

	bw, bh := b.view.BackingSize()
	b.canvas.SetBackingSize(bw, bh)
	b.surface.SetScale(dpr)
	b.links.Resize(b.view, b.cfg.WrapMargin)

	b.Reseed()
}

// Reseed destroys the particle set and creates a fresh one sized for the viewport.
// It is a no-op until Start has succeeded, and after Close.
func (b *Background) Reseed() {
	if b.host == nil || b.closed {
		return
	}
	n := ParticleCount(&b.cfg, b.view.Width, b.view.Height)
	b.particles = seedParticles(b.particles, n, b.view.Width, b.view.Height, &b.cfg, b.rng)
	b.log.Debug("background seeded", "particles", n, "width", b.view.Width, "height", b.view.Height)
}

// OnVisibilityChange stops the frame chain when the host is hidden and
// restarts it with a single request when it becomes visible again.
func (b *Background) OnVisibilityChange() {
	if b.host == nil || b.closed {
		return
	}

	if b.host.Hidden() {
		if b.handle != 0 {
			b.host.CancelFrame(b.handle)
		}
		b.handle = 0
		return
	}
	if b.handle == 0 {
		b.handle = b.host.RequestFrame(b.frame)
	}
}

// Close cancels any pending frame and ignores all later notifications.
func (b *Background) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.host != nil && b.handle != 0 {
		b.host.CancelFrame(b.handle)
	}
	b.handle = 0
}

// frame runs one update+draw and requests the next refresh.
func (b *Background) frame(ts time.Duration) {
	b.handle = 0
	if b.closed {
		return
	}

	b.perf.StartFrame()
	b.perf.StartPhase(telemetry.PhaseUpdate)
	b.Step(ts.Seconds())
	b.Draw(b.surface)
	b.perf.EndFrame(len(b.particles), len(b.linkBuf))

	b.frames++
	b.handle = b.host.RequestFrame(b.frame)
}

// Step advances every particle by one frame at animation time t (seconds).
func (b *Background) Step(t float64) {
	stepParticles(b.particles, &b.cfg, b.view, t)
}

// Draw paints the current particle state onto s.
func (b *Background) Draw(s Surface) {
	b.perf.StartPhase(telemetry.PhaseVignette)
	drawVignette(s, &b.cfg, b.view)

	b.perf.StartPhase(telemetry.PhaseLinks)
	b.linkBuf = b.links.Find(b.linkBuf[:0], b.particles, b.cfg.LinkDistance)
	drawLinks(s, &b.cfg, b.particles, b.linkBuf)

	b.perf.StartPhase(telemetry.PhaseDots)
	drawDots(s, &b.cfg, b.particles)
}

// State reports whether a frame is pending.
func (b *Background) State() State {
	if b.handle != 0 {
		return Running
	}
	return Stopped
}

// Particles returns the live particle slice. Callers must not retain it
// across a resize.
func (b *Background) Particles() []Particle { return b.particles }

// Viewport returns the current logical viewport.
func (b *Background) Viewport() Viewport { return b.view }

// Frames returns the number of completed frames.
func (b *Background) Frames() uint64 { return b.frames }

// Counters returns the sizes of the last drawn frame.
func (b *Background) Counters() telemetry.FrameCounters {
	return telemetry.FrameCounters{
		Frame:     b.frames,
		Particles: len(b.particles),
		Links:     len(b.linkBuf),
	}
}
