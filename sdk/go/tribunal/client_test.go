package tribunal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, allowlist string, threshold float64) *Client {
	t.Helper()
	base := t.TempDir()
	if allowlist != "" {
		if err := os.WriteFile(filepath.Join(base, "sanctuary.conf"), []byte(allowlist), 0o644); err != nil {
			t.Fatalf("write allowlist: %v", err)
		}
	}

	c, err := New(
		WithConfigFile(filepath.Join(base, "no-such-config.yaml")),
		WithBaseDir(base),
		WithAllowlistPath("sanctuary.conf"),
		WithThreshold(threshold),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestClientChecks(t *testing.T) {
	c := newTestClient(t, "node-alpha\n", 0.66)

	if r := c.CheckSanctuary("node-alpha"); !r.Passed {
		t.Errorf("expected allowed: %s", r.Message)
	}
	if r := c.CheckSanctuary("node-omega"); r.Passed {
		t.Error("unlisted source allowed")
	}

	if r := c.CheckSynthesis(map[string]any{"source": "a", "action": "b", "data": nil}); !r.Passed {
		t.Errorf("valid packet rejected: %s", r.Message)
	}

	approve := map[string]any{"result": "approve"}
	if r := c.CheckLogic([]map[string]any{approve, approve, approve}); !r.Passed {
		t.Errorf("unanimous responses rejected: %s", r.Message)
	}
}

func TestNewRejectsTraversalPath(t *testing.T) {
	base := t.TempDir()
	_, err := New(
		WithConfigFile(filepath.Join(base, "no-such-config.yaml")),
		WithBaseDir(base),
		WithAllowlistPath("../../etc/passwd"),
	)
	if err == nil {
		t.Error("expected construction to fail for a traversal path")
	}
}

func TestOptionsOverrideConfigFile(t *testing.T) {
	base := t.TempDir()
	cfgPath := filepath.Join(base, "config.yaml")
	cfgYAML := "base_dir: /nonexistent\nallowlist_path: allow.conf\nconsensus_threshold: 0.9\n"
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := New(
		WithConfigFile(cfgPath),
		WithBaseDir(base), // overrides the bogus base_dir from the file
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Status().ConsensusThreshold != 0.9 {
		t.Errorf("file threshold lost: %v", c.Status().ConsensusThreshold)
	}
}

func TestStatusNeverContainsEntries(t *testing.T) {
	c := newTestClient(t, "node-alpha\nnode-beta\n", 0.66)

	st := c.Status()
	if st.AllowlistSize != 2 {
		t.Errorf("expected size 2, got %d", st.AllowlistSize)
	}
	if strings.Contains(st.BaseDir+st.AllowlistPath, "node-alpha") {
		t.Error("status leaks allowlist entries")
	}
}

func TestResetAllowlist(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "sanctuary.conf")
	if err := os.WriteFile(path, []byte("node-alpha\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := New(
		WithConfigFile(filepath.Join(base, "no-such-config.yaml")),
		WithBaseDir(base),
		WithAllowlistPath("sanctuary.conf"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r := c.CheckSanctuary("node-beta"); r.Passed {
		t.Fatal("node-beta allowed before it was added")
	}

	if err := os.WriteFile(path, []byte("node-beta\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	c.ResetAllowlist()

	if r := c.CheckSanctuary("node-beta"); !r.Passed {
		t.Errorf("node-beta denied after reset: %s", r.Message)
	}
}
