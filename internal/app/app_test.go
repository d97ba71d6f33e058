package app

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/plumelog/plume/internal/config"
	"github.com/plumelog/plume/internal/console"
	"github.com/plumelog/plume/internal/filter"
	"github.com/plumelog/plume/internal/render"
)

func runApp(t *testing.T, opts Options, input string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir()) // keep the default config path empty

	var out bytes.Buffer
	opts.Stdin = strings.NewReader(input)
	opts.Stdout = &out
	if err := Run(context.Background(), opts); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return out.String()
}

func TestRun_RendersAndPassesThrough(t *testing.T) {
	input := `{"timestamp":"2023-01-01T00:00:00Z","level":"debug","message":"hi","data":{"key1":123}}` + "\n" +
		"not json\n"
	got := runApp(t, Options{}, input)

	want := "◌ 2023-01-01T00:00:00Z DEBUG — hi\n" +
		`    data: {"key1": 123}` + "\n" +
		"not json\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRun_IncludeFilterWithContext(t *testing.T) {
	input := strings.Join([]string{
		`{"level":"info","message":"one"}`,
		`{"level":"info","message":"two"}`,
		`{"level":"error","message":"boom"}`,
		`{"level":"info","message":"three"}`,
		`{"level":"info","message":"four"}`,
	}, "\n") + "\n"

	got := runApp(t, Options{Include: "boom", Before: 1, After: 1}, input)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("emitted %d lines %q, want match plus one line context each side", len(lines), lines)
	}
	if !strings.Contains(lines[0], "two") || !strings.Contains(lines[1], "boom") || !strings.Contains(lines[2], "three") {
		t.Fatalf("context window = %q, want two/boom/three", lines)
	}
}

func TestRun_FieldSelector(t *testing.T) {
	input := strings.Join([]string{
		`{"level":"info","message":"keep me out"}`,
		`{"level":"error","message":"keep me in"}`,
	}, "\n") + "\n"

	got := runApp(t, Options{Selectors: mustSelectors(t, "level=error")}, input)
	if strings.Contains(got, "keep me out") || !strings.Contains(got, "keep me in") {
		t.Fatalf("selector output = %q", got)
	}
}

func TestRun_StatsSummaryAppended(t *testing.T) {
	input := `{"level":"error","message":"x"}` + "\n" + "garbage\n"
	got := runApp(t, Options{Stats: true}, input)
	for _, fragment := range []string{"statistics", "processed: 2 lines", "levels: ERROR=1", "unparsed: 1 lines"} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("output %q missing %q", got, fragment)
		}
	}
}

func TestRun_ReadsFileArguments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jsonl")
	if err := os.WriteFile(path, []byte(`{"message":"from file"}`+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got := runApp(t, Options{Paths: []string{path}}, "stdin ignored")
	if !strings.Contains(got, "from file") {
		t.Fatalf("output = %q, want file content rendered", got)
	}
	if strings.Contains(got, "stdin ignored") {
		t.Fatalf("output = %q, stdin should not be read when files are given", got)
	}
}

func TestRun_TailLimitsBatchFileRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jsonl")
	content := `{"message":"one"}` + "\n" + `{"message":"two"}` + "\n" + `{"message":"three"}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := runApp(t, Options{Paths: []string{path}, TailLines: 2}, "")
	if strings.Contains(got, "one") {
		t.Fatalf("output = %q, tail should skip leading lines", got)
	}
	if !strings.Contains(got, "two") || !strings.Contains(got, "three") {
		t.Fatalf("output = %q, want the last two lines", got)
	}
}

func TestRun_TailLimitsStdin(t *testing.T) {
	input := `{"message":"one"}` + "\n" + `{"message":"two"}` + "\n" + `{"message":"three"}` + "\n"
	got := runApp(t, Options{TailLines: 1}, input)
	if strings.Contains(got, "one") || strings.Contains(got, "two") {
		t.Fatalf("output = %q, want only the final line", got)
	}
	if !strings.Contains(got, "three") {
		t.Fatalf("output = %q, want the final line", got)
	}
}

func TestRun_PassthroughSurvivesSelectors(t *testing.T) {
	input := `{"level":"error","message":"boom"}` + "\n" +
		"  at example.Handler.run(Handler.java:42)\n" +
		`{"level":"info","message":"quiet"}` + "\n"

	got := runApp(t, Options{Selectors: mustSelectors(t, "level=error")}, input)
	if !strings.Contains(got, "boom") {
		t.Fatalf("output = %q, selector should keep the matching record", got)
	}
	if !strings.Contains(got, "Handler.java:42") {
		t.Fatalf("output = %q, plain text between records must not vanish", got)
	}
	if strings.Contains(got, "quiet") {
		t.Fatalf("output = %q, non-matching record should be hidden", got)
	}
}

func TestRun_HighlightKeepsTextIntact(t *testing.T) {
	input := `{"level":"error","message":"request failed"}` + "\n"
	got := runApp(t, Options{Highlight: []string{"failed"}}, input)
	if !strings.Contains(got, "request failed") {
		t.Fatalf("output = %q, highlighting must not alter text", got)
	}
}

func TestFollowFiles_HandlerErrorStopsTailer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jsonl")
	if err := os.WriteFile(path, []byte("a\nb\nc\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	writer := bufio.NewWriterSize(failWriter{}, 1)
	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	flt, err := filter.New(filter.Options{})
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	p := &pipeline{
		renderer: render.New(cfg),
		filter:   flt,
		context:  filter.NewContext(0, 0),
		sink:     console.NewPlain(writer),
		writer:   writer,
	}

	done := make(chan error, 1)
	go func() {
		done <- followFiles(context.Background(), Options{
			Follow:    true,
			TailLines: 3,
			Paths:     []string{path},
		}, p)
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("followFiles returned nil, want the sink error")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("followFiles did not return after the handler failed")
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestRun_Errors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var out bytes.Buffer

	err := Run(context.Background(), Options{Include: "(", Stdout: &out, Stdin: strings.NewReader("")})
	if err == nil || !strings.Contains(err.Error(), "include pattern") {
		t.Fatalf("bad include error = %v, want include pattern error", err)
	}

	err = Run(context.Background(), Options{Highlight: []string{"("}, Stdout: &out, Stdin: strings.NewReader("")})
	if err == nil || !strings.Contains(err.Error(), "highlight pattern") {
		t.Fatalf("bad highlight error = %v, want highlight pattern error", err)
	}

	err = Run(context.Background(), Options{ThemeName: "no-such", Stdout: &out, Stdin: strings.NewReader("")})
	if err == nil || !strings.Contains(err.Error(), "unknown theme") {
		t.Fatalf("bad theme error = %v, want unknown theme error", err)
	}

	err = Run(context.Background(), Options{Follow: true, Stdout: &out})
	if err == nil {
		t.Fatalf("follow without files returned nil error")
	}

	err = Run(context.Background(), Options{Paths: []string{filepath.Join(t.TempDir(), "missing")}, Stdout: &out})
	if err == nil || !strings.Contains(err.Error(), "open input") {
		t.Fatalf("missing file error = %v, want open input error", err)
	}
}

func mustSelectors(t *testing.T, raws ...string) []filter.Selector {
	t.Helper()
	out := make([]filter.Selector, 0, len(raws))
	for _, raw := range raws {
		sel, err := filter.ParseSelector(raw)
		if err != nil {
			t.Fatalf("ParseSelector(%q): %v", raw, err)
		}
		out = append(out, sel)
	}
	return out
}
