// Package gateway builds configured engines from the environment and
// the config file. It replaces the process-wide singleton pattern with
// explicit instances: callers own the engine they get and pass it
// where needed. The core engine never reads environment variables
// itself.
package gateway

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vkessler/tribunal/internal/config"
	"github.com/vkessler/tribunal/internal/engine"
)

// Environment variables understood by ApplyEnv and FromEnv.
const (
	EnvBaseDir   = "TRIBUNAL_BASE_DIR"
	EnvAllowlist = "TRIBUNAL_ALLOWLIST_PATH"
	EnvThreshold = "TRIBUNAL_CONSENSUS_THRESHOLD"
)

// ApplyEnv overlays environment variables onto cfg. A malformed
// threshold value is a configuration error and fails hard rather than
// silently falling back.
func ApplyEnv(cfg *config.Config) error {
	if v := os.Getenv(EnvBaseDir); v != "" {
		cfg.BaseDir = v
	}
	if v := os.Getenv(EnvAllowlist); v != "" {
		cfg.AllowlistPath = v
	}
	if v := os.Getenv(EnvThreshold); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvThreshold, v, err)
		}
		cfg.ConsensusThreshold = threshold
	}
	return nil
}

// FromConfig overlays the environment onto cfg and constructs the
// engine.
func FromConfig(cfg *config.Config) (*engine.Engine, error) {
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return engine.New(resolveWorkdir(cfg).ToEngine())
}

// FromEnv builds an engine from built-in defaults plus environment
// variables, without consulting any config file.
func FromEnv() (*engine.Engine, error) {
	return FromConfig(config.Default())
}

// resolveWorkdir expands a "." base directory to the process working
// directory so the engine sees an absolute boundary.
func resolveWorkdir(cfg *config.Config) *config.Config {
	if cfg.BaseDir == "." || cfg.BaseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.BaseDir = wd
		}
	}
	return cfg
}
