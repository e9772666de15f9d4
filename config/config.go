// Package config provides configuration loading and access for the background.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned (wrapped) by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Background  BackgroundConfig  `yaml:"background"`
	Environment EnvironmentConfig `yaml:"environment"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Terminal    TerminalConfig    `yaml:"terminal"`
	HUD         HUDConfig         `yaml:"hud"`

}

// ScreenConfig holds window settings for the desktop host.
type ScreenConfig struct {
	Title         string   `yaml:"title"`
	Width         int      `yaml:"width"`
	Height        int      `yaml:"height"`
	TargetFPS     int      `yaml:"target_fps"`
	Resizable     bool     `yaml:"resizable"`
	BackgroundRGB [3]uint8 `yaml:"background_rgb"`
}

// BackgroundConfig holds the particle simulation and drawing parameters.
type BackgroundConfig struct {
	Seed            int64   `yaml:"seed"`              // 0 = time-based
	AreaPerParticle float64 `yaml:"area_per_particle"` // count = floor(w*h / this)
	MinParticles    int     `yaml:"min_particles"`
	MaxParticles    int     `yaml:"max_particles"`
	InitSpeed       float64 `yaml:"init_speed"`
	MinRadius       float64 `yaml:"min_radius"`
	MaxRadius       float64 `yaml:"max_radius"`
	Force           float64 `yaml:"force"`
	FlowScaleX      float64 `yaml:"flow_scale_x"`
	FlowScaleY      float64 `yaml:"flow_scale_y"`
	Damping         float64 `yaml:"damping"`
	WrapMargin      float64 `yaml:"wrap_margin"`
	LinkDistance    float64 `yaml:"link_distance"`
	LinkAlpha       float64 `yaml:"link_alpha"`
	LinkWidth       float64 `yaml:"link_width"`
	LinkMethod      string  `yaml:"link_method"` // pairs | grid
	DotAlpha        float64 `yaml:"dot_alpha"`
	VignetteRadius  float64 `yaml:"vignette_radius"`
	VignetteAlpha   float64 `yaml:"vignette_alpha"`
	MinDPR          float64 `yaml:"min_dpr"`
	MaxDPR          float64 `yaml:"max_dpr"`
}

// EnvironmentConfig holds host preference overrides.
type EnvironmentConfig struct {
	ReducedMotion    bool    `yaml:"reduced_motion"`
	ReducedMotionEnv string  `yaml:"reduced_motion_env"` // env var consulted when reduced_motion is false
	DPROverride      float64 `yaml:"dpr_override"`       // 0 = ask the host
}

// TelemetryConfig holds performance logging parameters.
type TelemetryConfig struct {
	PerfWindow     int     `yaml:"perf_window"`      // frames per rolling window
	LogIntervalSec float64 `yaml:"log_interval_sec"` // 0 disables periodic perf logs
	OutputDir      string  `yaml:"output_dir"`       // empty disables CSV output
}

// TerminalConfig holds terminal host parameters.
type TerminalConfig struct {
	FPS         int     `yaml:"fps"`
	UnitsPerDot float64 `yaml:"units_per_dot"` // logical units covered by one braille dot
}

// HUDConfig holds overlay settings for the desktop host.
type HUDConfig struct {
	Enabled bool `yaml:"enabled"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the embedded defaults. Panics if they fail to parse.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Validate checks ranges that would otherwise break the simulation.
func (c *Config) Validate() error {
	b := &c.Background
	switch {
	case b.AreaPerParticle <= 0:
		return fmt.Errorf("%w: background.area_per_particle must be positive, got %v", ErrInvalid, b.AreaPerParticle)
	case b.MinParticles < 0 || b.MaxParticles < b.MinParticles:
		return fmt.Errorf("%w: background particle bounds [%d, %d]", ErrInvalid, b.MinParticles, b.MaxParticles)
	case b.MaxRadius < b.MinRadius:
		return fmt.Errorf("%w: background radius bounds [%v, %v]", ErrInvalid, b.MinRadius, b.MaxRadius)
	case b.Damping <= 0 || b.Damping >= 1:
		return fmt.Errorf("%w: background.damping must be in (0, 1), got %v", ErrInvalid, b.Damping)
	case b.FlowScaleX == 0 || b.FlowScaleY == 0:
		return fmt.Errorf("%w: background flow scales must be non-zero", ErrInvalid)
	case b.LinkDistance <= 0:
		return fmt.Errorf("%w: background.link_distance must be positive, got %v", ErrInvalid, b.LinkDistance)
	case b.LinkMethod != "pairs" && b.LinkMethod != "grid":
		return fmt.Errorf("%w: background.link_method %q (want pairs or grid)", ErrInvalid, b.LinkMethod)
	case b.MinDPR <= 0 || b.MaxDPR < b.MinDPR:
		return fmt.Errorf("%w: background dpr bounds [%v, %v]", ErrInvalid, b.MinDPR, b.MaxDPR)
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case c.Terminal.UnitsPerDot <= 0:
		return fmt.Errorf("%w: terminal.units_per_dot must be positive, got %v", ErrInvalid, c.Terminal.UnitsPerDot)
	}
	return nil
}

// VelocityBound is the per-axis speed limit implied by force and damping.
// v' = (v + f) * d with |f| <= force settles at |v| <= d*force / (1-d);
// a larger starting speed only decays toward it.
func (b *BackgroundConfig) VelocityBound() float64 {
	if b.Damping >= 1 {
		return math.Inf(1)
	}
	steady := b.Damping * math.Abs(b.Force) / (1 - b.Damping)
	return math.Max(steady, b.InitSpeed)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
