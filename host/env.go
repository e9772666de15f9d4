package host

import (
	"os"
	"strings"

	"github.com/pthm-cable/backdrop/config"
)

// ReducedMotion resolves the reduced-motion preference from config, then from
// the configured environment variable. Read once by the caller at start-up.
func ReducedMotion(cfg *config.EnvironmentConfig) bool {
	if cfg.ReducedMotion {
		return true
	}
	if cfg.ReducedMotionEnv == "" {
		return false
	}
	return truthy(os.Getenv(cfg.ReducedMotionEnv))
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "reduce":
		return true
	}
	return false
}
