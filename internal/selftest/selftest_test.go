package selftest

import "testing"

func TestRunAllChecksPass(t *testing.T) {
	results, err := Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(results) == 0 {
		t.Fatal("expected results, got none")
	}
	for _, r := range results {
		if !r.OK {
			t.Errorf("self-test check failed: %s (%s)", r.Label, r.Detail)
		}
	}
	if !AllPassed(results) {
		t.Error("AllPassed disagrees with individual results")
	}
}

func TestAllPassed(t *testing.T) {
	ok := []Result{{Label: "a", OK: true}, {Label: "b", OK: true}}
	if !AllPassed(ok) {
		t.Error("expected AllPassed for all-OK results")
	}

	mixed := append(ok, Result{Label: "c", OK: false})
	if AllPassed(mixed) {
		t.Error("expected AllPassed false with a failing result")
	}
}
