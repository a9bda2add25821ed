package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestWatcherTriggersOnDocChange(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "watch_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	fired := make(chan struct{}, 1)
	w, err := NewWatcher(tmpDir, 50*time.Millisecond, func(ctx context.Context) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	writeDoc(t, tmpDir, "quickstart.txt", ">>> 1 + 1\n2\n")

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("expected re-run after doc change, got none")
	}
}

func TestWatcherIgnoresNonDocFiles(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "watch_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	var count int64
	w, err := NewWatcher(tmpDir, 50*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt64(&count, 1)
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	writeDoc(t, tmpDir, "scratch.tmp", "not documentation")

	time.Sleep(600 * time.Millisecond)
	if got := atomic.LoadInt64(&count); got != 0 {
		t.Errorf("expected no re-runs for non-doc file, got %d", got)
	}
}

func TestWatcherDebouncesRapidChanges(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "watch_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	var count int64
	w, err := NewWatcher(tmpDir, 250*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt64(&count, 1)
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// A burst of saves well inside the debounce window
	for i := 0; i < 5; i++ {
		writeDoc(t, tmpDir, "sessions.txt", ">>> 1 + 1\n2\n")
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(time.Second)
	if got := atomic.LoadInt64(&count); got != 1 {
		t.Errorf("expected 1 debounced re-run, got %d", got)
	}
}

func TestWatcherStopIdempotent(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "watch_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	w, err := NewWatcher(tmpDir, 0, func(ctx context.Context) {})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if w.debounceTime != DefaultDebounce {
		t.Errorf("debounceTime = %v, want default %v", w.debounceTime, DefaultDebounce)
	}

	if err := w.Stop(); err != nil {
		t.Errorf("first Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w, err := NewWatcher(filepath.Join(os.TempDir(), "dtp_watch_missing", "docs"), 0, func(ctx context.Context) {})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	if err := w.Start(context.Background()); err == nil {
		t.Error("Start() on missing directory expected error, got nil")
	}
}
