// Package telemetry provides frame timing, periodic perf reporting and run output.
package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for a background frame.
const (
	PhaseUpdate   = "update"
	PhaseVignette = "vignette"
	PhaseLinks    = "links"
	PhaseDots     = "dots"
)

// Phases lists the frame phases in execution order.
var Phases = []string{PhaseUpdate, PhaseVignette, PhaseLinks, PhaseDots}

// FrameCounters holds the sizes of one drawn frame.
type FrameCounters struct {
	Frame     uint64
	Particles int
	Links     int
}

// LogValue implements slog.LogValuer.
func (c FrameCounters) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frame", c.Frame),
		slog.Int("particles", c.Particles),
		slog.Int("links", c.Links),
	)
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
	Particles     int
	Links         int
}

// PerfCollector tracks frame timings over a rolling window.
// A nil *PerfCollector is valid and records nothing.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Refresh timing, measured between RecordRefresh calls
	lastRefresh     time.Time
	refreshInterval time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 120 for 2 seconds at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	if p == nil {
		return
	}
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration, len(Phases))
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and begins timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame(particles, links int) {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.lastPhase = ""

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
		Particles:     particles,
		Links:         links,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordRefresh records the interval between display refreshes.
func (p *PerfCollector) RecordRefresh() {
	if p == nil {
		return
	}
	now := time.Now()
	if !p.lastRefresh.IsZero() {
		p.refreshInterval = now.Sub(p.lastRefresh)
	}
	p.lastRefresh = now
}

// Durations returns the frame durations in the window, oldest first.
func (p *PerfCollector) Durations() []time.Duration {
	if p == nil || p.sampleCount == 0 {
		return nil
	}
	out := make([]time.Duration, 0, p.sampleCount)
	start := 0
	if p.sampleCount == p.windowSize {
		start = p.writeIndex
	}
	for i := 0; i < p.sampleCount; i++ {
		out = append(out, p.samples[(start+i)%p.windowSize].FrameDuration)
	}
	return out
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Frames int

	// Frame work timing
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration
	P50FrameDuration time.Duration
	P95FrameDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame time
	PhasePct map[string]float64

	// Average workload
	AvgParticles float64
	AvgLinks     float64

	// Display refresh timing
	RefreshInterval time.Duration
	FPS             float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p == nil {
		return PerfStats{PhaseAvg: map[string]time.Duration{}, PhasePct: map[string]float64{}}
	}

	var fps float64
	if p.refreshInterval > 0 {
		fps = float64(time.Second) / float64(p.refreshInterval)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:        make(map[string]time.Duration),
			PhasePct:        make(map[string]float64),
			RefreshInterval: p.refreshInterval,
			FPS:             fps,
		}
	}

	durations := make([]float64, p.sampleCount)
	particles := make([]float64, p.sampleCount)
	links := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		durations[i] = float64(s.FrameDuration)
		particles[i] = float64(s.Particles)
		links[i] = float64(s.Links)
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := stat.Mean(durations, nil)
	sort.Float64s(durations)

	phaseAvg := make(map[string]time.Duration, len(phaseSum))
	phasePct := make(map[string]float64, len(phaseSum))
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / avg * 100
		}
	}

	return PerfStats{
		Frames:           p.sampleCount,
		AvgFrameDuration: time.Duration(avg),
		MinFrameDuration: time.Duration(durations[0]),
		MaxFrameDuration: time.Duration(durations[len(durations)-1]),
		P50FrameDuration: time.Duration(stat.Quantile(0.5, stat.Empirical, durations, nil)),
		P95FrameDuration: time.Duration(stat.Quantile(0.95, stat.Empirical, durations, nil)),
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		AvgParticles:     stat.Mean(particles, nil),
		AvgLinks:         stat.Mean(links, nil),
		RefreshInterval:  p.refreshInterval,
		FPS:              fps,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("p50_frame_us", s.P50FrameDuration.Microseconds()),
		slog.Int64("p95_frame_us", s.P95FrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
		slog.Float64("particles", s.AvgParticles),
		slog.Float64("links", s.AvgLinks),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    uint64  `csv:"window_end"`
	Frames       int     `csv:"frames"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MinFrameUS   int64   `csv:"min_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	P50FrameUS   int64   `csv:"p50_frame_us"`
	P95FrameUS   int64   `csv:"p95_frame_us"`
	FPS          float64 `csv:"fps"`
	AvgParticles float64 `csv:"particles"`
	AvgLinks     float64 `csv:"links"`
	UpdatePct    float64 `csv:"update_pct"`
	VignettePct  float64 `csv:"vignette_pct"`
	LinksPct     float64 `csv:"links_pct"`
	DotsPct      float64 `csv:"dots_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		Frames:       s.Frames,
		AvgFrameUS:   s.AvgFrameDuration.Microseconds(),
		MinFrameUS:   s.MinFrameDuration.Microseconds(),
		MaxFrameUS:   s.MaxFrameDuration.Microseconds(),
		P50FrameUS:   s.P50FrameDuration.Microseconds(),
		P95FrameUS:   s.P95FrameDuration.Microseconds(),
		FPS:          s.FPS,
		AvgParticles: s.AvgParticles,
		AvgLinks:     s.AvgLinks,
		UpdatePct:    s.PhasePct[PhaseUpdate],
		VignettePct:  s.PhasePct[PhaseVignette],
		LinksPct:     s.PhasePct[PhaseLinks],
		DotsPct:      s.PhasePct[PhaseDots],
	}
}
