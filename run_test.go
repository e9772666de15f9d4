package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/backdrop/background"
	"github.com/pthm-cable/backdrop/config"
)

func newTestSession(t *testing.T) (*session, string) {
	t.Helper()
	if err := config.Init(""); err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	dir := t.TempDir()
	config.Cfg().Background.Seed = 7
	config.Cfg().Telemetry.OutputDir = dir

	s, err := openSession(config.Cfg().Telemetry.PerfWindow)
	if err != nil {
		t.Fatalf("opening session: %v", err)
	}
	return s, dir
}

func TestSnapshot_FlushesLastFrame(t *testing.T) {
	s, dir := newTestSession(t)

	svg, counters, err := s.snapshot(background.Viewport{Width: 640, Height: 360, DPR: 1}, 120)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("expected SVG output, got %q", svg)
	}
	if counters.Frame != 120 || counters.Particles != 55 {
		t.Errorf("expected 120 frames of 55 particles, got %+v", counters)
	}

	data, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatalf("reading perf.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", data)
	}
	if !strings.HasPrefix(lines[1], "120,") {
		t.Errorf("expected final report at frame 120, got %q", lines[1])
	}
}

func TestSnapshot_ReducedMotion(t *testing.T) {
	s, dir := newTestSession(t)
	s.cfg.Environment.ReducedMotion = true

	_, _, err := s.snapshot(background.Viewport{Width: 640, Height: 360, DPR: 1}, 10)
	if !errors.Is(err, errDisabled) {
		t.Errorf("expected errDisabled, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatalf("reading perf.csv: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected no perf rows without frames, got %q", data)
	}
}
