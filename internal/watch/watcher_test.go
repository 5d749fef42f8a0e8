// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"
)

// collector gathers OnChange invocations for assertions.
type collector struct {
	mu    sync.Mutex
	calls [][]string
}

func (c *collector) onChange(_ context.Context, changed []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	sorted := slices.Clone(changed)
	slices.Sort(sorted)
	c.calls = append(c.calls, sorted)
	return nil
}

func (c *collector) snapshot() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.calls)
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func startWatcher(t *testing.T, cfg Config) (*Watcher, context.CancelFunc) {
	t.Helper()
	if cfg.Stderr == nil {
		cfg.Stderr = io.Discard
	}
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run() returned %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("Run() did not stop after cancellation")
		}
	})
	return w, cancel
}

func TestNew_RequiresRoot(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() without Root should fail")
	}
}

func TestNew_RejectsInvalidPattern(t *testing.T) {
	_, err := New(Config{Root: t.TempDir(), Patterns: []string{"[broken"}})
	if err == nil {
		t.Error("New() with invalid glob should fail")
	}
}

func TestRun_CoalescesEventsIntoOneCallback(t *testing.T) {
	root := t.TempDir()
	col := &collector{}
	startWatcher(t, Config{
		Root:     root,
		Debounce: 50 * time.Millisecond,
		OnChange: col.onChange,
	})

	// Two container writes in quick succession.
	if err := os.WriteFile(filepath.Join(root, "classes.dex"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "secondary-1.dex"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 2*time.Second, func() bool { return len(col.snapshot()) >= 1 }) {
		t.Fatal("callback never fired")
	}

	calls := col.snapshot()
	if len(calls) != 1 {
		t.Fatalf("got %d callbacks, want 1 coalesced", len(calls))
	}
	want := []string{"classes.dex", "secondary-1.dex"}
	if !slices.Equal(calls[0], want) {
		t.Errorf("changed = %v, want %v", calls[0], want)
	}
}

func TestRun_IgnoresUnmatchedFiles(t *testing.T) {
	root := t.TempDir()
	col := &collector{}
	startWatcher(t, Config{
		Root:     root,
		Debounce: 50 * time.Millisecond,
		OnChange: col.onChange,
	})

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(250 * time.Millisecond)
	if calls := col.snapshot(); len(calls) != 0 {
		t.Errorf("callback fired for unmatched file: %v", calls)
	}
}

func TestRun_SeesFilesInNewModuleDir(t *testing.T) {
	root := t.TempDir()
	col := &collector{}
	startWatcher(t, Config{
		Root:     root,
		Debounce: 50 * time.Millisecond,
		OnChange: col.onChange,
	})

	modDir := filepath.Join(root, "feature")
	if err := os.Mkdir(modDir, 0o755); err != nil {
		t.Fatal(err)
	}
	// Give the watcher a moment to register the new directory.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(modDir, "feature.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	ok := waitFor(t, 2*time.Second, func() bool {
		for _, call := range col.snapshot() {
			if slices.Contains(call, filepath.Join("feature", "feature.json")) {
				return true
			}
		}
		return false
	})
	if !ok {
		t.Errorf("metadata write in new module dir never reported, calls: %v", col.snapshot())
	}
}

func TestRun_SecondCallFails(t *testing.T) {
	w, _ := startWatcher(t, Config{
		Root:     t.TempDir(),
		Debounce: 50 * time.Millisecond,
	})

	// Let the first Run claim the watcher before the second attempt.
	if !waitFor(t, time.Second, func() bool { return w.started.Load() }) {
		t.Fatal("first Run never started")
	}
	if err := w.Run(context.Background()); err == nil {
		t.Error("second Run() should fail")
	}
}
