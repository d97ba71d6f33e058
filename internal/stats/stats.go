// Package stats collects run statistics and renders an end-of-run summary.
// The store is mutex-guarded so follow mode can feed it from tailer
// goroutines while the main loop reads snapshots.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/plumelog/plume/internal/render"
)

const topKeyCount = 5

// Store accumulates counters while lines flow through the pipeline.
type Store struct {
	mu       sync.Mutex
	start    time.Time
	total    int
	parsed   int
	errors   int
	filtered int
	levels   map[string]int
	keys     map[string]int
}

func NewStore() *Store {
	return &Store{
		start:  time.Now(),
		levels: make(map[string]int),
		keys:   make(map[string]int),
	}
}

// Observe records one processed line. filtered marks lines the filter
// suppressed after parsing.
func (s *Store) Observe(res render.Result, filtered bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	if !res.Parsed {
		s.errors++
		return
	}
	s.parsed++
	if filtered {
		s.filtered++
		return
	}
	if res.Class.Name != "" {
		s.levels[res.Class.Name]++
	}
	if res.Residual != nil {
		for _, key := range res.Residual.Keys() {
			s.keys[key]++
		}
	}
}

// Summary is an immutable snapshot of the counters.
type Summary struct {
	Total    int
	Parsed   int
	Errors   int
	Filtered int
	Elapsed  time.Duration
	Levels   map[string]int
	TopKeys  []KeyCount
}

type KeyCount struct {
	Key   string
	Count int
}

func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	levels := make(map[string]int, len(s.levels))
	for name, n := range s.levels {
		levels[name] = n
	}
	return Summary{
		Total:    s.total,
		Parsed:   s.parsed,
		Errors:   s.errors,
		Filtered: s.filtered,
		Elapsed:  time.Since(s.start),
		Levels:   levels,
		TopKeys:  topKeys(s.keys, topKeyCount),
	}
}

// Throughput returns processed lines per second.
func (s Summary) Throughput() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.Total) / secs
}

// Lines renders the summary as styled output lines.
func (s Summary) Lines() []render.Line {
	lines := []render.Line{
		styled(render.TokenSeparator, "────────────── statistics ──────────────"),
		counter("processed", fmt.Sprintf("%d lines in %.1fs", s.Total, s.Elapsed.Seconds())),
		counter("throughput", fmt.Sprintf("%.0f lines/sec", s.Throughput())),
	}
	if len(s.Levels) > 0 {
		lines = append(lines, counter("levels", joinCounts(sortedCounts(s.Levels))))
	}
	if len(s.TopKeys) > 0 {
		lines = append(lines, counter("top keys", joinCounts(s.TopKeys)))
	}
	if s.Errors > 0 {
		lines = append(lines, counter("unparsed", fmt.Sprintf("%d lines (%.2f%%)", s.Errors, percent(s.Errors, s.Total))))
	}
	if s.Filtered > 0 {
		lines = append(lines, counter("filtered", fmt.Sprintf("%d lines (%.2f%%)", s.Filtered, percent(s.Filtered, s.Total))))
	}
	return lines
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func styled(token, text string) render.Line {
	return render.Line{Spans: []render.Span{{Token: token, Text: text}}}
}

func counter(label, value string) render.Line {
	return render.Line{Spans: []render.Span{
		{Token: render.TokenKey, Text: label},
		{Token: render.TokenSeparator, Text: ": "},
		{Token: render.TokenValue, Text: value},
	}}
}

func joinCounts(counts []KeyCount) string {
	parts := make([]string, 0, len(counts))
	for _, kc := range counts {
		parts = append(parts, fmt.Sprintf("%s=%d", kc.Key, kc.Count))
	}
	return strings.Join(parts, ", ")
}

// topKeys returns the n most frequent keys, count descending, name ascending
// on ties so output is deterministic.
func topKeys(keys map[string]int, n int) []KeyCount {
	out := sortedCounts(keys)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sortedCounts(m map[string]int) []KeyCount {
	out := make([]KeyCount, 0, len(m))
	for key, count := range m {
		out = append(out, KeyCount{Key: key, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
