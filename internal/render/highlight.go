package render

import (
	"fmt"
	"regexp"
)

// highlightPaletteSize is the number of distinct highlight style tokens.
// Patterns beyond it reuse tokens round-robin.
const highlightPaletteSize = 6

// TokenHighlight returns the style token assigned to the i-th highlight
// pattern. Sinks resolve these against the theme's highlight palette.
func TokenHighlight(i int) string {
	return fmt.Sprintf("highlight%d", i%highlightPaletteSize)
}

// Highlighter retags matched regions of rendered lines so sinks paint them
// with the highlight palette. The text itself is never altered, only span
// tokens, so Plain output and filter matching are unaffected.
type Highlighter struct {
	patterns []*regexp.Regexp
}

// NewHighlighter compiles the patterns case-insensitively. No patterns
// yield a nil Highlighter, which applies as a no-op.
func NewHighlighter(patterns []string) (*Highlighter, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	h := &Highlighter{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, raw := range patterns {
		re, err := regexp.Compile("(?i)" + raw)
		if err != nil {
			return nil, fmt.Errorf("highlight pattern: %w", err)
		}
		h.patterns = append(h.patterns, re)
	}
	return h, nil
}

// Apply layers highlight tokens over every pattern match in the line.
// Patterns apply in flag order, so where matches overlap the later pattern
// wins.
func (h *Highlighter) Apply(line Line) Line {
	if h == nil || len(h.patterns) == 0 {
		return line
	}
	text := line.Plain()
	if text == "" {
		return line
	}

	overrides := make([]string, len(text))
	hit := false
	for i, re := range h.patterns {
		token := TokenHighlight(i)
		for _, m := range re.FindAllStringIndex(text, -1) {
			if m[0] == m[1] {
				continue
			}
			hit = true
			for b := m[0]; b < m[1]; b++ {
				overrides[b] = token
			}
		}
	}
	if !hit {
		return line
	}
	return retag(line, overrides)
}

// retag rebuilds the span list, splitting spans wherever the effective token
// changes. Bytes without an override keep their source span's token.
func retag(line Line, overrides []string) Line {
	var out Line
	pos := 0
	for _, span := range line.Spans {
		tokenAt := func(i int) string {
			if ov := overrides[pos+i]; ov != "" {
				return ov
			}
			return span.Token
		}
		for i := 0; i < len(span.Text); {
			token := tokenAt(i)
			j := i + 1
			for j < len(span.Text) && tokenAt(j) == token {
				j++
			}
			out.Spans = append(out.Spans, Span{Token: token, Text: span.Text[i:j]})
			i = j
		}
		pos += len(span.Text)
	}
	return out
}
