package telemetry

import (
	"log/slog"
	"time"
)

// Reporter periodically logs perf stats and appends them to the output CSV.
// Write failures are logged and otherwise ignored: reporting must never stop the animation.
type Reporter struct {
	perf     *PerfCollector
	out      *OutputManager
	log      *slog.Logger
	interval time.Duration
	last     time.Duration
	reports  int
}

// NewReporter creates a reporter emitting every interval of host time.
// A non-positive interval disables periodic reports; Flush still works.
func NewReporter(perf *PerfCollector, out *OutputManager, log *slog.Logger, interval time.Duration) *Reporter {
	if log == nil {
		log = slog.Default()
	}
	return &Reporter{perf: perf, out: out, log: log, interval: interval}
}

// Observe is called once per refresh with the host timestamp and completed frame count.
func (r *Reporter) Observe(now time.Duration, frame uint64) {
	if r == nil || r.interval <= 0 {
		return
	}
	if now-r.last < r.interval {
		return
	}
	r.last = now
	r.report(frame)
}

// Flush emits a final report regardless of the interval.
func (r *Reporter) Flush(frame uint64) {
	if r == nil {
		return
	}
	r.report(frame)
}

// SetInterval changes the report period.
func (r *Reporter) SetInterval(d time.Duration) {
	if r != nil {
		r.interval = d
	}
}

// Interval returns the report period.
func (r *Reporter) Interval() time.Duration {
	if r == nil {
		return 0
	}
	return r.interval
}

// Reports returns how many reports were emitted.
func (r *Reporter) Reports() int {
	if r == nil {
		return 0
	}
	return r.reports
}

func (r *Reporter) report(frame uint64) {
	stats := r.perf.Stats()
	if stats.Frames == 0 {
		return
	}
	r.reports++
	r.log.Info("perf", "frame", frame, "stats", stats)
	if err := r.out.WritePerf(stats, frame); err != nil {
		r.log.Warn("perf output failed", "error", err)
	}
}
