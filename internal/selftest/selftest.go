// Package selftest verifies the enforcement engine against its
// known-answer cases. It builds a throwaway fixture in a temp
// directory, runs every directive, and reports labeled results. Safe
// to run repeatedly; nothing outside the fixture is touched.
package selftest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vkessler/tribunal/internal/engine"
)

// Result is one labeled self-test outcome.
type Result struct {
	Label  string
	OK     bool
	Detail string
}

// AllPassed reports whether every result is OK.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}

// Run exercises every directive against a temp fixture and returns the
// outcomes. An error means the fixture itself could not be built, not
// that a check failed.
func Run() ([]Result, error) {
	base, err := os.MkdirTemp("", "tribunal-selftest-*")
	if err != nil {
		return nil, fmt.Errorf("create fixture directory: %w", err)
	}
	defer os.RemoveAll(base)

	confDir := filepath.Join(base, "config")
	if err := os.MkdirAll(confDir, 0o755); err != nil {
		return nil, fmt.Errorf("create fixture config dir: %w", err)
	}
	fixture := "# self-test fixture allowlist\nnode-alpha\nnode-beta\n"
	if err := os.WriteFile(filepath.Join(confDir, "sanctuary.conf"), []byte(fixture), 0o644); err != nil {
		return nil, fmt.Errorf("write fixture allowlist: %w", err)
	}

	eng, err := engine.New(engine.Config{
		BaseDir:       base,
		AllowlistPath: "config/sanctuary.conf",
		Threshold:     0.66,
	})
	if err != nil {
		return nil, fmt.Errorf("construct engine: %w", err)
	}

	var results []Result
	add := func(label string, ok bool, detail string) {
		results = append(results, Result{Label: label, OK: ok, Detail: detail})
	}

	// Sanctuary directive.
	r := eng.CheckSanctuary("node-alpha")
	add("sanctuary: known source allowed", r.Passed(), r.Message)
	r = eng.CheckSanctuary("node-999")
	add("sanctuary: unknown source denied", !r.Passed(), r.Message)
	r = eng.CheckSanctuary("")
	add("sanctuary: empty source denied", !r.Passed(), r.Message)

	// Synthesis directive.
	r = eng.CheckSynthesis(map[string]any{
		"source": "node-alpha",
		"action": "process_data",
		"data":   map[string]any{"key": "value"},
	})
	add("synthesis: valid packet accepted", r.Passed(), r.Message)
	r = eng.CheckSynthesis(map[string]any{"source": "node-alpha", "action": "process_data"})
	add("synthesis: missing data key rejected", !r.Passed(), r.Message)
	r = eng.CheckSynthesis("not a mapping")
	add("synthesis: non-mapping packet rejected", !r.Passed(), r.Message)

	// Logic directive.
	approve := map[string]any{"result": "approve"}
	deny := map[string]any{"result": "deny"}
	r = eng.CheckLogic([]any{approve, approve, approve, deny})
	add("logic: 3/4 reaches consensus", r.Passed(), r.Message)
	r = eng.CheckLogic([]any{approve, approve, deny, deny})
	add("logic: 2/4 split denied", !r.Passed(), r.Message)
	r = eng.CheckLogic([]any{approve})
	add("logic: single response passes", r.Passed(), r.Message)
	r = eng.CheckLogic([]any{})
	add("logic: empty response list denied", !r.Passed(), r.Message)

	// Boundary enforcement at construction.
	_, cerr := engine.New(engine.Config{
		BaseDir:       base,
		AllowlistPath: "../../etc/passwd",
		Threshold:     0.66,
	})
	add("boundary: traversal path rejected", cerr != nil, errDetail(cerr))

	return results, nil
}

func errDetail(err error) string {
	if err == nil {
		return "construction unexpectedly succeeded"
	}
	return err.Error()
}
