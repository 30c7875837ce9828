package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vkessler/tribunal/internal/engine"
)

func TestWatcherResetsCacheOnChange(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "sanctuary.conf")
	if err := os.WriteFile(path, []byte("node-alpha\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	eng, err := engine.New(engine.Config{BaseDir: base, AllowlistPath: "sanctuary.conf", Threshold: 0.66})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	if eng.Status().AllowlistSize != 1 {
		t.Fatal("expected one entry before the change")
	}

	reloaded := make(chan string, 1)
	w, err := New(eng, func(p string) {
		select {
		case reloaded <- p:
		default:
		}
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher loop a moment to start before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("node-alpha\nnode-beta\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload within 5s")
	}

	if size := eng.Status().AllowlistSize; size != 2 {
		t.Errorf("expected 2 entries after reload, got %d", size)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Run did not return after cancellation")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "sanctuary.conf")
	if err := os.WriteFile(path, []byte("node-alpha\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	eng, err := engine.New(engine.Config{BaseDir: base, AllowlistPath: "sanctuary.conf", Threshold: 0.66})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	reloaded := make(chan string, 1)
	w, err := New(eng, func(p string) { reloaded <- p })
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(base, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	select {
	case p := <-reloaded:
		t.Errorf("sibling file change triggered a reload of %s", p)
	case <-time.After(1500 * time.Millisecond):
	}
}
