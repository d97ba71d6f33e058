package render

import (
	"testing"
)

func mustHighlighter(t *testing.T, patterns ...string) *Highlighter {
	t.Helper()
	h, err := NewHighlighter(patterns)
	if err != nil {
		t.Fatalf("NewHighlighter(%v): %v", patterns, err)
	}
	return h
}

func tokens(line Line) []string {
	out := make([]string, 0, len(line.Spans))
	for _, s := range line.Spans {
		out = append(out, s.Token+"|"+s.Text)
	}
	return out
}

func TestHighlight_SplitsSpansAroundMatches(t *testing.T) {
	h := mustHighlighter(t, "failed")
	in := Line{Spans: []Span{{Token: TokenMessage, Text: "request failed twice"}}}
	got := h.Apply(in)

	want := []string{
		TokenMessage + "|request ",
		"highlight0|failed",
		TokenMessage + "| twice",
	}
	if g := tokens(got); len(g) != len(want) || g[0] != want[0] || g[1] != want[1] || g[2] != want[2] {
		t.Fatalf("spans = %v, want %v", g, want)
	}
	if got.Plain() != in.Plain() {
		t.Fatalf("Plain changed: %q, want %q", got.Plain(), in.Plain())
	}
}

func TestHighlight_MatchSpansMultipleSourceSpans(t *testing.T) {
	h := mustHighlighter(t, "or: b")
	in := Line{Spans: []Span{
		{Token: "error", Text: "error"},
		{Token: TokenSeparator, Text: ": "},
		{Token: TokenMessage, Text: "boom"},
	}}
	got := h.Apply(in)

	// The match crosses three spans; each byte keeps its split but carries
	// the highlight token.
	want := []string{
		"error|err",
		"highlight0|or",
		"highlight0|: ",
		"highlight0|b",
		TokenMessage + "|oom",
	}
	if g := tokens(got); len(g) != len(want) {
		t.Fatalf("spans = %v, want %v", g, want)
	} else {
		for i := range want {
			if g[i] != want[i] {
				t.Fatalf("spans[%d] = %q, want %q (all: %v)", i, g[i], want[i], g)
			}
		}
	}
	if got.Plain() != "error: boom" {
		t.Fatalf("Plain changed: %q", got.Plain())
	}
}

func TestHighlight_CaseInsensitiveAndRepeated(t *testing.T) {
	h := mustHighlighter(t, "error")
	got := h.Apply(Line{Spans: []Span{{Text: "ERROR and error and Error"}}})

	count := 0
	for _, s := range got.Spans {
		if s.Token == "highlight0" {
			count++
		}
	}
	if count != 3 {
		t.Fatalf("highlighted %d occurrences, want 3: %v", count, tokens(got))
	}
}

func TestHighlight_PaletteCyclesAndOverlapPrefersLaterPattern(t *testing.T) {
	if got := TokenHighlight(0); got != "highlight0" {
		t.Fatalf("TokenHighlight(0) = %q", got)
	}
	if got := TokenHighlight(highlightPaletteSize + 1); got != "highlight1" {
		t.Fatalf("TokenHighlight(%d) = %q, want highlight1", highlightPaletteSize+1, got)
	}

	h := mustHighlighter(t, "time", "timeout")
	got := h.Apply(Line{Spans: []Span{{Text: "timeout"}}})
	if len(got.Spans) != 1 || got.Spans[0].Token != "highlight1" {
		t.Fatalf("overlap = %v, want one span with the later pattern's token", tokens(got))
	}
}

func TestHighlight_NoMatchAndNilAreNoOps(t *testing.T) {
	in := Line{Spans: []Span{{Token: TokenMessage, Text: "all quiet"}}}

	h := mustHighlighter(t, "error")
	if got := h.Apply(in); len(got.Spans) != 1 || got.Spans[0] != in.Spans[0] {
		t.Fatalf("no-match rewrote the line: %v", tokens(got))
	}

	var nilH *Highlighter
	if got := nilH.Apply(in); len(got.Spans) != 1 || got.Spans[0] != in.Spans[0] {
		t.Fatalf("nil highlighter rewrote the line: %v", tokens(got))
	}

	h, err := NewHighlighter(nil)
	if err != nil || h != nil {
		t.Fatalf("NewHighlighter(nil) = (%v, %v), want (nil, nil)", h, err)
	}
}

func TestHighlight_InvalidPatternErrors(t *testing.T) {
	if _, err := NewHighlighter([]string{"[invalid("}); err == nil {
		t.Fatalf("NewHighlighter accepted an invalid pattern")
	}
}
