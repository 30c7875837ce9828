package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vkessler/tribunal/internal/config"
)

func TestRunInitCreatesStarterFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	cfgPath := filepath.Join(home, ".tribunal", "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("config.yaml not created: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("starter config does not parse: %v", err)
	}
	if cfg.ConsensusThreshold != 0.66 {
		t.Errorf("expected threshold 0.66, got %v", cfg.ConsensusThreshold)
	}
	if cfg.BaseDir != filepath.Join(home, ".tribunal") {
		t.Errorf("expected base_dir pinned to the config directory, got %q", cfg.BaseDir)
	}

	allowPath := filepath.Join(home, ".tribunal", "config", "sanctuary.conf")
	allow, err := os.ReadFile(allowPath)
	if err != nil {
		t.Fatalf("sanctuary.conf not created: %v", err)
	}
	if !strings.HasPrefix(string(allow), "#") {
		t.Error("example allowlist should contain only comments")
	}
}

func TestRunInitLeavesExistingFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".tribunal")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	custom := "base_dir: /srv/custom\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != custom {
		t.Error("init overwrote an existing config without --force")
	}
}
