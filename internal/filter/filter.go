package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/plumelog/plume/internal/record"
	"github.com/plumelog/plume/internal/render"
)

// Selector filters on one extracted or residual field.
type Selector struct {
	Key     string
	Pattern string
}

// ParseSelector splits a KEY=PATTERN flag value.
func ParseSelector(raw string) (Selector, error) {
	key, pattern, found := strings.Cut(raw, "=")
	if !found || strings.TrimSpace(key) == "" {
		return Selector{}, fmt.Errorf("field selector must be KEY=PATTERN, got %q", raw)
	}
	return Selector{Key: strings.TrimSpace(key), Pattern: pattern}, nil
}

// Options configure a Filter. Zero options build a filter that passes
// everything.
type Options struct {
	Include         string
	Exclude         string
	CaseInsensitive bool
	Selectors       []Selector
}

// Filter decides which rendered results reach the sink. All criteria AND
// together: a record must pass every selector, match the include pattern,
// and miss the exclude pattern.
type Filter struct {
	include   *regexp.Regexp
	exclude   *regexp.Regexp
	selectors []Selector
}

func New(opts Options) (*Filter, error) {
	f := &Filter{selectors: opts.Selectors}
	var err error
	if f.include, err = compile(opts.Include, opts.CaseInsensitive); err != nil {
		return nil, fmt.Errorf("include pattern: %w", err)
	}
	if f.exclude, err = compile(opts.Exclude, opts.CaseInsensitive); err != nil {
		return nil, fmt.Errorf("exclude pattern: %w", err)
	}
	return f, nil
}

func compile(pattern string, caseInsensitive bool) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	if caseInsensitive {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// Active reports whether any criterion is configured. Context buffering only
// engages around an active filter.
func (f *Filter) Active() bool {
	return f.include != nil || f.exclude != nil || len(f.selectors) > 0
}

// Match applies the filter to one rendered result. Selectors need extracted
// fields, so raw-passthrough lines face only the include/exclude patterns.
func (f *Filter) Match(res render.Result) bool {
	if res.Parsed {
		for _, sel := range f.selectors {
			value, ok := fieldValue(res, sel.Key)
			if !ok {
				return false
			}
			if !globMatch(sel.Pattern, value) {
				return false
			}
		}
	}

	formatted := formatted(res)
	if f.include != nil && !f.include.MatchString(formatted) {
		return false
	}
	if f.exclude != nil && f.exclude.MatchString(formatted) {
		return false
	}
	return true
}

func formatted(res render.Result) string {
	parts := make([]string, 0, len(res.Lines))
	for _, line := range res.Lines {
		parts = append(parts, line.Plain())
	}
	return strings.Join(parts, "\n")
}

// fieldValue resolves a selector key: the four canonical fields by name,
// anything else by (possibly dotted) lookup into the residual record.
func fieldValue(res render.Result, key string) (string, bool) {
	switch key {
	case "timestamp":
		return res.Fields.Timestamp, true
	case "level":
		return res.Fields.Level, res.Fields.Level != ""
	case "logger":
		return res.Fields.Logger, true
	case "message":
		return res.Fields.Message, true
	}
	v, ok := record.Lookup(res.Residual, key)
	if !ok {
		return "", false
	}
	return v.Text(), true
}

// globMatch compares case-insensitively with glob syntax. An invalid
// pattern matches nothing.
func globMatch(pattern, value string) bool {
	ok, err := doublestar.Match(strings.ToLower(pattern), strings.ToLower(value))
	return err == nil && ok
}
