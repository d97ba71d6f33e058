package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/plumelog/plume/internal/config"
	"github.com/plumelog/plume/internal/console"
	"github.com/plumelog/plume/internal/filter"
	"github.com/plumelog/plume/internal/render"
	"github.com/plumelog/plume/internal/stats"
	"github.com/plumelog/plume/internal/tailer"
	"github.com/plumelog/plume/internal/theme"
)

// Options configure one plume run.
type Options struct {
	ConfigPath string
	ThemeName  string
	ThemePath  string
	ColorMode  string // auto, always, never

	Include         string
	Exclude         string
	CaseInsensitive bool
	Selectors       []filter.Selector
	Before          int
	After           int
	Highlight       []string

	Stats     bool
	Follow    bool
	TailLines int
	Paths     []string

	// Stdin and Stdout override the process streams, for tests. With a
	// non-nil Stdout, "auto" color resolves to plain output.
	Stdin  io.Reader
	Stdout io.Writer
}

// Run processes input until EOF or context cancellation.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	th, err := resolveTheme(opts)
	if err != nil {
		return err
	}

	flt, err := filter.New(filter.Options{
		Include:         opts.Include,
		Exclude:         opts.Exclude,
		CaseInsensitive: opts.CaseInsensitive,
		Selectors:       opts.Selectors,
	})
	if err != nil {
		return err
	}

	highlight, err := render.NewHighlighter(opts.Highlight)
	if err != nil {
		return err
	}

	out, color := resolveOutput(opts)
	writer := bufio.NewWriter(out)
	defer writer.Flush()

	p := &pipeline{
		renderer:  render.New(cfg),
		filter:    flt,
		context:   filter.NewContext(opts.Before, opts.After),
		highlight: highlight,
		sink:      console.New(writer, th, color),
		writer:    writer,
	}
	if opts.Stats {
		p.stats = stats.NewStore()
	}

	if opts.Follow {
		err = followFiles(ctx, opts, p)
	} else {
		err = readAll(ctx, opts, p)
	}
	if err != nil {
		return err
	}

	if p.stats != nil {
		for _, line := range p.stats.Summary().Lines() {
			if err := p.sink.Emit(line); err != nil {
				return err
			}
		}
	}
	return writer.Flush()
}

// pipeline wires one input line through render, stats, filter, context
// buffering, and the sink.
type pipeline struct {
	renderer  *render.Renderer
	filter    *filter.Filter
	context   *filter.Context
	highlight *render.Highlighter
	sink      console.Sink
	writer    *bufio.Writer
	stats     *stats.Store
}

func (p *pipeline) handle(raw string) error {
	res := p.renderer.Render(raw)
	match := p.filter.Match(res)
	if p.stats != nil {
		p.stats.Observe(res, !match)
	}

	flush, emit := p.context.Observe(res.Lines, match)
	for _, buffered := range flush {
		if err := p.emit(buffered); err != nil {
			return err
		}
	}
	if !emit {
		return nil
	}
	if err := p.emit(res.Lines); err != nil {
		return err
	}
	// Flush per line so tailing stays interactive behind pipes.
	return p.writer.Flush()
}

func (p *pipeline) emit(lines []render.Line) error {
	for _, line := range lines {
		if err := p.sink.Emit(p.highlight.Apply(line)); err != nil {
			return err
		}
	}
	return nil
}

func readAll(ctx context.Context, opts Options, p *pipeline) error {
	if len(opts.Paths) == 0 {
		return scanStdin(ctx, opts, p)
	}
	for _, path := range opts.Paths {
		if err := readFile(ctx, path, opts, p); err != nil {
			return err
		}
	}
	return nil
}

func readFile(ctx context.Context, path string, opts Options, p *pipeline) error {
	if path == "-" {
		return scanStdin(ctx, opts, p)
	}
	// --tail without --follow keeps its meaning: only the last N lines of
	// each file are processed.
	if opts.TailLines > 0 {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		lines, _, err := tailer.Backfill(path, opts.TailLines)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := ctx.Err(); err != nil {
				return nil
			}
			if err := p.handle(line); err != nil {
				return err
			}
		}
		return nil
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()
	return scan(ctx, file, p, 0)
}

func scanStdin(ctx context.Context, opts Options, p *pipeline) error {
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	return scan(ctx, stdin, p, opts.TailLines)
}

// scan processes r line by line. A positive tail defers output behind a ring
// buffer so only the final tail lines are handled, mirroring tail -n for
// input that cannot be seeked.
func scan(ctx context.Context, r io.Reader, p *pipeline, tail int) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var ring []string
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if tail > 0 {
			if len(ring) == tail {
				copy(ring, ring[1:])
				ring[tail-1] = scanner.Text()
			} else {
				ring = append(ring, scanner.Text())
			}
			continue
		}
		if err := p.handle(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	for _, line := range ring {
		if err := p.handle(line); err != nil {
			return err
		}
	}
	return nil
}

func followFiles(ctx context.Context, opts Options, p *pipeline) error {
	if len(opts.Paths) == 0 {
		return errors.New("follow mode needs at least one file argument")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string, 512)
	followErr := make(chan error, 1)
	go func() {
		followErr <- tailer.Follow(ctx, opts.Paths, tailer.Options{
			TailLines: opts.TailLines,
			PollEvery: 250 * time.Millisecond,
		}, lines)
	}()

	for line := range lines {
		if err := p.handle(line); err != nil {
			// Unblock the tailer before returning: cancel its context and
			// drain until it closes the channel.
			cancel()
			for range lines {
			}
			<-followErr
			return err
		}
	}
	return <-followErr
}

func resolveTheme(opts Options) (theme.Theme, error) {
	if opts.ThemePath != "" {
		return theme.LoadFile(opts.ThemePath)
	}
	if opts.ThemeName == "" {
		return theme.Get(""), nil
	}
	th, ok := theme.Lookup(opts.ThemeName)
	if !ok {
		return theme.Theme{}, fmt.Errorf("unknown theme %q (available: %v)", opts.ThemeName, theme.Names())
	}
	return th, nil
}

// resolveOutput picks the output writer and the color decision. An injected
// writer is never a terminal, so "auto" degrades to plain there.
func resolveOutput(opts Options) (io.Writer, bool) {
	if opts.Stdout != nil {
		return opts.Stdout, opts.ColorMode == "always"
	}
	return os.Stdout, console.WantColor(opts.ColorMode, os.Stdout)
}
