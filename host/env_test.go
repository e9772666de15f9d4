package host

import (
	"testing"

	"github.com/pthm-cable/backdrop/config"
)

func TestReducedMotion(t *testing.T) {
	const env = "BACKDROP_TEST_REDUCED_MOTION"

	tests := []struct {
		name   string
		cfg    config.EnvironmentConfig
		envVal string
		want   bool
	}{
		{"config forces on", config.EnvironmentConfig{ReducedMotion: true}, "", true},
		{"unset", config.EnvironmentConfig{ReducedMotionEnv: env}, "", false},
		{"env 1", config.EnvironmentConfig{ReducedMotionEnv: env}, "1", true},
		{"env reduce", config.EnvironmentConfig{ReducedMotionEnv: env}, "reduce", true},
		{"env TRUE padded", config.EnvironmentConfig{ReducedMotionEnv: env}, " TRUE ", true},
		{"env no-preference", config.EnvironmentConfig{ReducedMotionEnv: env}, "no-preference", false},
		{"env 0", config.EnvironmentConfig{ReducedMotionEnv: env}, "0", false},
		{"no env name", config.EnvironmentConfig{}, "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(env, tt.envVal)
			if got := ReducedMotion(&tt.cfg); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
