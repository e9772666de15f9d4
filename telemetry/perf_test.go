package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few frames
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseUpdate)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseLinks)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame(55, 12)
	}

	stats := pc.Stats()

	if stats.Frames != 5 {
		t.Errorf("expected 5 frames, got %d", stats.Frames)
	}
	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration")
	}
	if _, ok := stats.PhaseAvg[PhaseUpdate]; !ok {
		t.Error("expected update phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseLinks]; !ok {
		t.Error("expected links phase to be tracked")
	}
	if stats.AvgParticles != 55 || stats.AvgLinks != 12 {
		t.Errorf("expected workload 55/12, got %v/%v", stats.AvgParticles, stats.AvgLinks)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseDots)
		pc.EndFrame(i, 0)
	}

	stats := pc.Stats()

	if stats.Frames != 5 {
		t.Errorf("expected window to cap at 5 frames, got %d", stats.Frames)
	}
	// Only frames 5..9 remain
	if stats.AvgParticles != 7 {
		t.Errorf("expected average particles 7, got %v", stats.AvgParticles)
	}
	if got := len(pc.Durations()); got != 5 {
		t.Errorf("expected 5 durations, got %d", got)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate with uneven phase durations
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseVignette)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseLinks)
		time.Sleep(2 * time.Millisecond)
		pc.EndFrame(0, 0)
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct[PhaseVignette]
	slowPct := stats.PhasePct[PhaseLinks]

	if slowPct <= fastPct {
		t.Errorf("expected links phase (%v%%) > vignette phase (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollector_Quantiles(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		time.Sleep(time.Duration(i+1) * 100 * time.Microsecond)
		pc.EndFrame(0, 0)
	}

	stats := pc.Stats()

	if stats.MinFrameDuration > stats.P50FrameDuration {
		t.Errorf("expected min %v <= p50 %v", stats.MinFrameDuration, stats.P50FrameDuration)
	}
	if stats.P50FrameDuration > stats.P95FrameDuration {
		t.Errorf("expected p50 %v <= p95 %v", stats.P50FrameDuration, stats.P95FrameDuration)
	}
	if stats.P95FrameDuration > stats.MaxFrameDuration {
		t.Errorf("expected p95 %v <= max %v", stats.P95FrameDuration, stats.MaxFrameDuration)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgFrameDuration != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}
	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}
	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
	if pc.Durations() != nil {
		t.Error("expected no durations for empty collector")
	}
}

func TestPerfCollector_NilIsNoop(t *testing.T) {
	var pc *PerfCollector

	pc.StartFrame()
	pc.StartPhase(PhaseUpdate)
	pc.EndFrame(1, 1)
	pc.RecordRefresh()

	stats := pc.Stats()
	if stats.Frames != 0 || stats.PhaseAvg == nil {
		t.Errorf("expected empty stats from nil collector, got %+v", stats)
	}
}

func TestPerfCollector_RefreshTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordRefresh()
	time.Sleep(16 * time.Millisecond) // ~60fps refresh
	pc.RecordRefresh()

	stats := pc.Stats()

	if stats.RefreshInterval < 15*time.Millisecond {
		t.Errorf("expected refresh interval >= 15ms, got %v", stats.RefreshInterval)
	}

	// With 16ms refreshes, expect ~60 FPS (allow range 20-80 for slow runners)
	if stats.FPS < 20 || stats.FPS > 80 {
		t.Errorf("expected FPS between 20-80 with 16ms refreshes, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		Frames:           3,
		AvgFrameDuration: 1500 * time.Microsecond,
		P95FrameDuration: 2 * time.Millisecond,
		AvgParticles:     94,
		PhasePct:         map[string]float64{PhaseLinks: 60, PhaseDots: 25},
	}

	row := stats.ToCSV(240)

	if row.WindowEnd != 240 || row.Frames != 3 {
		t.Errorf("expected window 240 with 3 frames, got %d/%d", row.WindowEnd, row.Frames)
	}
	if row.AvgFrameUS != 1500 || row.P95FrameUS != 2000 {
		t.Errorf("expected 1500/2000us, got %d/%d", row.AvgFrameUS, row.P95FrameUS)
	}
	if row.LinksPct != 60 || row.DotsPct != 25 || row.UpdatePct != 0 {
		t.Errorf("unexpected phase split %+v", row)
	}
}

func TestFrameCounters_LogValue(t *testing.T) {
	v := FrameCounters{Frame: 9, Particles: 55, Links: 3}.LogValue()

	attrs := v.Group()
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != "frame" || attrs[0].Value.Uint64() != 9 {
		t.Errorf("expected frame=9, got %v", attrs[0])
	}
}
