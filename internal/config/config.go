// Package config loads the tribunal configuration file. The engine
// itself never reads files or environment variables; this package
// exists for the CLI, the gateway, and the SDK.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vkessler/tribunal/internal/engine"
)

// Config holds the configurable enforcement parameters.
type Config struct {
	BaseDir            string  `yaml:"base_dir"`
	AllowlistPath      string  `yaml:"allowlist_path"`
	ConsensusThreshold float64 `yaml:"consensus_threshold"`
}

// Default returns the built-in configuration: the current directory as
// the boundary, config/sanctuary.conf as the allowlist, 0.66 as the
// agreement threshold.
func Default() *Config {
	return &Config{
		BaseDir:            ".",
		AllowlistPath:      filepath.Join("config", "sanctuary.conf"),
		ConsensusThreshold: 0.66,
	}
}

// Load reads configuration from a YAML file. Empty path falls back to
// ~/.tribunal/config.yaml. Missing file returns defaults. Invalid YAML
// returns an error.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, ".tribunal", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Start with defaults, YAML overwrites only specified fields
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// DefaultYAML renders a commented starter configuration, used by
// `tribunal init`.
func DefaultYAML() string {
	return `# tribunal configuration.
#
# base_dir is the security boundary: the allowlist path must resolve
# to a location inside it. Relative allowlist paths are resolved
# against base_dir.
base_dir: .
allowlist_path: config/sanctuary.conf

# Agreement ratio in [0.0, 1.0] a winning result must reach (inclusive).
consensus_threshold: 0.66
`
}

// ToEngine converts the file configuration into an engine Config.
func (c *Config) ToEngine() engine.Config {
	return engine.Config{
		BaseDir:       c.BaseDir,
		AllowlistPath: c.AllowlistPath,
		Threshold:     c.ConsensusThreshold,
	}
}
