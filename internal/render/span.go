package render

import "strings"

// Style tokens attached to spans. Sinks map these to concrete terminal
// styles; the renderer itself never emits markup. Level spans carry the
// style token configured for the classified level instead of one of these.
const (
	TokenNone      = ""
	TokenTimestamp = "timestamp"
	TokenLogger    = "logger"
	TokenMessage   = "message"
	TokenKey       = "key"
	TokenValue     = "value"
	TokenSeparator = "separator"
	TokenException = "exception"
)

// Span is one styled run of text.
type Span struct {
	Token string
	Text  string
}

// Line is an ordered sequence of spans forming one output line.
type Line struct {
	Spans []Span
}

// Plain returns the line's text with all styling discarded.
func (l Line) Plain() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

func plainLine(text string) Line {
	return Line{Spans: []Span{{Token: TokenNone, Text: text}}}
}
