// Package level maps raw level values (names, numeric severity codes, icons)
// to a canonical display name, icon, and style token. The mapping table is
// configuration data; only the numeric severity thresholds are convention.
package level

import (
	"strconv"
	"strings"

	"github.com/plumelog/plume/internal/record"
)

// Spec configures one canonical level.
type Spec struct {
	Icon    string
	Style   string
	Aliases []string
}

// Class is the classification result: always defined, never absent.
type Class struct {
	Name  string // canonical display name, upper-cased
	Icon  string
	Style string
}

// Table classifies raw level values against configured specs.
type Table struct {
	byName  map[string]entry // lower-cased name or alias
	byIcon  map[string]entry
	tiers   map[string]entry // canonical name, lower-cased
	unknown entry
}

type entry struct {
	name string
	spec Spec
}

// UnknownName keys the fallback spec in the configuration table.
const UnknownName = "unknown"

// Numeric severity thresholds, matched high to low. These follow the widely
// shared convention (50 critical, 40 error, 30 warning, 20 info).
var tierThresholds = []struct {
	min  float64
	tier string
}{
	{50, "critical"},
	{40, "error"},
	{30, "warning"},
	{20, "info"},
}

// New builds a Table from configured specs keyed by canonical name. The
// "unknown" key supplies the fallback for unrecognized values; a zero entry
// is used when the configuration omits it.
func New(specs map[string]Spec) *Table {
	t := &Table{
		byName: make(map[string]entry),
		byIcon: make(map[string]entry),
		tiers:  make(map[string]entry),
	}
	for name, spec := range specs {
		canonical := strings.ToLower(strings.TrimSpace(name))
		e := entry{name: strings.ToUpper(canonical), spec: spec}
		if canonical == UnknownName {
			t.unknown = e
			continue
		}
		t.tiers[canonical] = e
		t.byName[canonical] = e
		for _, alias := range spec.Aliases {
			t.byName[strings.ToLower(strings.TrimSpace(alias))] = e
		}
		if spec.Icon != "" {
			t.byIcon[spec.Icon] = e
		}
	}
	return t
}

// Classify resolves a raw level value. present is false when no level field
// was found; the result is then the unknown entry with an empty name.
func (t *Table) Classify(v record.Value, present bool) Class {
	if !present {
		return Class{Icon: t.unknown.spec.Icon, Style: t.unknown.spec.Style}
	}
	switch v.Kind() {
	case record.KindString:
		raw, _ := v.Str()
		return t.classifyString(raw)
	case record.KindNumber:
		if f, err := strconv.ParseFloat(v.Text(), 64); err == nil {
			return t.classifyNumeric(f)
		}
	}
	return t.fallback(v.Text())
}

func (t *Table) classifyString(raw string) Class {
	trimmed := strings.TrimSpace(raw)
	if e, ok := t.byName[strings.ToLower(trimmed)]; ok {
		return e.class()
	}
	// Already-classified input: an exact icon match passes through.
	if e, ok := t.byIcon[trimmed]; ok {
		return e.class()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return t.classifyNumeric(f)
	}
	return t.fallback(trimmed)
}

func (t *Table) classifyNumeric(code float64) Class {
	for _, th := range tierThresholds {
		if code >= th.min {
			return t.tier(th.tier)
		}
	}
	return t.tier("debug")
}

func (t *Table) tier(name string) Class {
	if e, ok := t.tiers[name]; ok {
		return e.class()
	}
	return t.fallback(strings.ToUpper(name))
}

// fallback keeps the raw value visible while borrowing the unknown styling.
func (t *Table) fallback(raw string) Class {
	return Class{
		Name:  strings.ToUpper(strings.TrimSpace(raw)),
		Icon:  t.unknown.spec.Icon,
		Style: t.unknown.spec.Style,
	}
}

func (e entry) class() Class {
	return Class{Name: e.name, Icon: e.spec.Icon, Style: e.spec.Style}
}
