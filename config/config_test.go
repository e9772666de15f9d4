package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	b := cfg.Background
	if b.AreaPerParticle != 22000 {
		t.Errorf("expected area_per_particle 22000, got %v", b.AreaPerParticle)
	}
	if b.MinParticles != 55 || b.MaxParticles != 150 {
		t.Errorf("expected particle bounds [55, 150], got [%d, %d]", b.MinParticles, b.MaxParticles)
	}
	if b.Damping != 0.994 {
		t.Errorf("expected damping 0.994, got %v", b.Damping)
	}
	if b.LinkDistance != 140 {
		t.Errorf("expected link distance 140, got %v", b.LinkDistance)
	}
	if b.LinkMethod != "pairs" {
		t.Errorf("expected link method pairs, got %q", b.LinkMethod)
	}
	if cfg.Screen.BackgroundRGB != [3]uint8{11, 13, 16} {
		t.Errorf("unexpected background rgb %v", cfg.Screen.BackgroundRGB)
	}
}

func TestBackgroundConfig_VelocityBound(t *testing.T) {
	b := Defaults().Background

	want := 0.994 * 0.04 / (1 - 0.994)
	if got := b.VelocityBound(); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected velocity bound %v, got %v", want, got)
	}

	b.InitSpeed = 50
	if got := b.VelocityBound(); got != 50 {
		t.Errorf("expected starting speed to dominate, got %v", got)
	}

	b.Damping = 1
	if got := b.VelocityBound(); !math.IsInf(got, 1) {
		t.Errorf("expected unbounded speed without damping, got %v", got)
	}
}

func TestLoad_OverlayKeepsUnsetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("background:\n  link_distance: 90\n  link_method: grid\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}
	if cfg.Background.LinkDistance != 90 {
		t.Errorf("expected overridden link distance 90, got %v", cfg.Background.LinkDistance)
	}
	if cfg.Background.LinkMethod != "grid" {
		t.Errorf("expected overridden link method grid, got %q", cfg.Background.LinkMethod)
	}
	if cfg.Background.Damping != 0.994 {
		t.Errorf("expected default damping to survive overlay, got %v", cfg.Background.Damping)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero damping", func(c *Config) { c.Background.Damping = 0 }},
		{"damping one", func(c *Config) { c.Background.Damping = 1 }},
		{"inverted particle bounds", func(c *Config) { c.Background.MinParticles = 200 }},
		{"inverted radius", func(c *Config) { c.Background.MinRadius = 5 }},
		{"zero area", func(c *Config) { c.Background.AreaPerParticle = 0 }},
		{"unknown link method", func(c *Config) { c.Background.LinkMethod = "kdtree" }},
		{"zero link distance", func(c *Config) { c.Background.LinkDistance = 0 }},
		{"bad dpr bounds", func(c *Config) { c.Background.MinDPR = 3 }},
		{"zero screen", func(c *Config) { c.Screen.Width = 0 }},
	}

	for _, tt := range tests {
		cfg := Defaults()
		tt.mutate(cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}
}

func TestWriteYAML_Roundtrip(t *testing.T) {
	cfg := Defaults()
	cfg.Background.LinkAlpha = 0.3

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading yaml: %v", err)
	}
	if loaded.Background.LinkAlpha != 0.3 {
		t.Errorf("expected link alpha 0.3 after roundtrip, got %v", loaded.Background.LinkAlpha)
	}
}

func TestMustInit(t *testing.T) {
	prev := global
	defer func() { global = prev }()

	MustInit("")
	if Cfg().Background.LinkDistance != 140 {
		t.Errorf("expected defaults after MustInit, got link distance %v", Cfg().Background.LinkDistance)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for a missing config file")
		}
	}()
	MustInit(filepath.Join(t.TempDir(), "nope.yaml"))
}

func TestCfg_PanicsBeforeInit(t *testing.T) {
	prev := global
	global = nil
	defer func() {
		global = prev
		if recover() == nil {
			t.Error("expected panic from Cfg before Init")
		}
	}()
	Cfg()
}
