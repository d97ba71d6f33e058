package render

import (
	"strings"

	"github.com/plumelog/plume/internal/config"
	"github.com/plumelog/plume/internal/level"
	"github.com/plumelog/plume/internal/record"
)

// detailIndent marks detail and exception lines apart from headers.
const detailIndent = "    "

// Fields are the canonical values extracted from a record, in display form.
type Fields struct {
	Timestamp string
	Level     string // raw level text before classification, "" when absent
	Logger    string
	Message   string
}

// Result is the full outcome of dispatching one input line. Lines is always
// populated; the remaining fields are meaningful only when Parsed is true.
type Result struct {
	Lines    []Line
	Parsed   bool
	Class    level.Class
	Fields   Fields
	Residual *record.Object
}

// Renderer turns raw input lines into styled line sequences. It holds only
// immutable configuration, so one Renderer serves a whole run.
type Renderer struct {
	keys        config.Keys
	placeholder string
	levels      *level.Table
}

func New(cfg config.Config) *Renderer {
	specs := make(map[string]level.Spec, len(cfg.Levels))
	for name, style := range cfg.Levels {
		specs[name] = level.Spec{Icon: style.Icon, Style: style.Style, Aliases: style.Aliases}
	}
	return &Renderer{
		keys:        cfg.Keys,
		placeholder: cfg.Placeholder,
		levels:      level.New(specs),
	}
}

// Render dispatches one raw line. Input that is not a single JSON object
// passes through unmodified except for trailing newline removal; nothing in
// here raises an error to the caller.
func (r *Renderer) Render(raw string) Result {
	obj, ok := record.Parse(raw)
	if !ok {
		return Result{Lines: []Line{plainLine(stripTrailingNewline(raw))}}
	}
	return r.renderRecord(obj)
}

func (r *Renderer) renderRecord(obj *record.Object) Result {
	timestamp, hasTimestamp := record.Resolve(obj, r.keys.Timestamp)
	rawLevel, hasLevel := record.Resolve(obj, r.keys.Level)
	logger, hasLogger := record.Resolve(obj, r.keys.Logger)
	message, hasMessage := record.Resolve(obj, r.keys.Message)

	class := r.levels.Classify(rawLevel, hasLevel)
	promoted := record.Promote(obj, r.keys.Promoted)
	block, hasBlock := record.ExtractException(obj, r.keys.Exception)

	fields := Fields{
		Timestamp: r.display(timestamp, hasTimestamp),
		Logger:    r.display(logger, hasLogger),
		Message:   r.display(message, hasMessage),
	}
	if hasLevel {
		fields.Level = rawLevel.Text()
	}

	lines := make([]Line, 0, 1+len(promoted)+obj.Len()+len(block.Lines))
	lines = append(lines, r.header(class, fields))
	for _, p := range promoted {
		lines = append(lines, detailLine(p.Path, p.Value))
	}
	for _, key := range obj.Keys() {
		v, _ := obj.Get(key)
		lines = append(lines, detailLine(key, v.Text()))
	}
	if hasBlock {
		for _, text := range block.Lines {
			lines = append(lines, Line{Spans: []Span{
				{Token: TokenNone, Text: detailIndent},
				{Token: TokenException, Text: text},
			}})
		}
	}

	return Result{
		Lines:    lines,
		Parsed:   true,
		Class:    class,
		Fields:   fields,
		Residual: obj,
	}
}

// header builds the one-line summary: icon, timestamp, level, logger,
// message. Absent pieces show the placeholder so columns never collapse.
func (r *Renderer) header(class level.Class, fields Fields) Line {
	levelDisplay := class.Name
	if levelDisplay == "" {
		levelDisplay = r.placeholder
	}
	icon := class.Icon
	if icon == "" {
		icon = " "
	}
	sep := Span{Token: TokenNone, Text: " "}
	return Line{Spans: []Span{
		{Token: class.Style, Text: icon},
		sep,
		{Token: TokenTimestamp, Text: fields.Timestamp},
		sep,
		{Token: class.Style, Text: levelDisplay},
		sep,
		{Token: TokenLogger, Text: fields.Logger},
		sep,
		{Token: TokenMessage, Text: fields.Message},
	}}
}

func detailLine(key, value string) Line {
	return Line{Spans: []Span{
		{Token: TokenNone, Text: detailIndent},
		{Token: TokenKey, Text: key},
		{Token: TokenSeparator, Text: ": "},
		{Token: TokenValue, Text: value},
	}}
}

func (r *Renderer) display(v record.Value, present bool) string {
	if !present {
		return r.placeholder
	}
	return v.Text()
}

func stripTrailingNewline(raw string) string {
	raw = strings.TrimSuffix(raw, "\n")
	return strings.TrimSuffix(raw, "\r")
}
