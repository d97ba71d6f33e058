package tailer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func collect(t *testing.T, out <-chan string, n int) []string {
	t.Helper()
	var lines []string
	deadline := time.After(5 * time.Second)
	for len(lines) < n {
		select {
		case line, ok := <-out:
			if !ok {
				t.Fatalf("channel closed after %d of %d lines: %v", len(lines), n, lines)
			}
			lines = append(lines, line)
		case <-deadline:
			t.Fatalf("timed out after %d of %d lines: %v", len(lines), n, lines)
		}
	}
	return lines
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, line); err != nil {
		t.Fatalf("append: %v", err)
	}
}

func TestFollow_BackfillThenStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.jsonl")
	appendLine(t, path, "old 1")
	appendLine(t, path, "old 2")
	appendLine(t, path, "old 3")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan string, 64)
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, []string{path}, Options{TailLines: 2, PollEvery: 20 * time.Millisecond}, out)
	}()

	got := collect(t, out, 2)
	if got[0] != "old 2" || got[1] != "old 3" {
		t.Fatalf("backfill = %v, want last two existing lines", got)
	}

	appendLine(t, path, "new 1")
	appendLine(t, path, "new 2")
	got = collect(t, out, 2)
	if got[0] != "new 1" || got[1] != "new 2" {
		t.Fatalf("streamed = %v, want appended lines in order", got)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Follow returned error: %v", err)
	}
}

func TestFollow_FileAppearsLater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "late.jsonl")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan string, 16)
	go func() {
		_ = Follow(ctx, []string{path}, Options{PollEvery: 20 * time.Millisecond}, out)
	}()

	appendLine(t, path, "first")
	got := collect(t, out, 1)
	if got[0] != "first" {
		t.Fatalf("line = %q, want first", got[0])
	}
}

func TestFollow_TruncationRestartsFromZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotate.jsonl")
	appendLine(t, path, "before")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan string, 16)
	go func() {
		_ = Follow(ctx, []string{path}, Options{PollEvery: 20 * time.Millisecond}, out)
	}()

	appendLine(t, path, "grow")
	if got := collect(t, out, 1); got[0] != "grow" {
		t.Fatalf("line = %q, want grow", got[0])
	}

	if err := os.WriteFile(path, []byte("fresh\n"), 0o644); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if got := collect(t, out, 1); got[0] != "fresh" {
		t.Fatalf("line after truncation = %q, want fresh", got[0])
	}
}
