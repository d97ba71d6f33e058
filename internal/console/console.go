package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/plumelog/plume/internal/render"
	"github.com/plumelog/plume/internal/theme"
)

// Sink receives rendered lines and writes them to a display target.
type Sink interface {
	Emit(line render.Line) error
}

// ANSI writes lines with terminal styling applied per style token.
type ANSI struct {
	w      io.Writer
	styles map[string]lipgloss.Style
}

// NewANSI builds a styling sink for the given theme.
func NewANSI(w io.Writer, th theme.Theme) *ANSI {
	return &ANSI{w: w, styles: th.Styles()}
}

func (s *ANSI) Emit(line render.Line) error {
	var b strings.Builder
	for _, span := range line.Spans {
		if span.Text == "" {
			continue
		}
		style, ok := s.styles[span.Token]
		if !ok || span.Token == render.TokenNone {
			b.WriteString(span.Text)
			continue
		}
		b.WriteString(style.Render(span.Text))
	}
	_, err := fmt.Fprintln(s.w, b.String())
	return err
}

// Plain writes lines with all styling discarded, for pipes and files.
type Plain struct {
	w io.Writer
}

func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w}
}

func (s *Plain) Emit(line render.Line) error {
	_, err := fmt.Fprintln(s.w, line.Plain())
	return err
}

// WantColor decides whether the given mode enables styling on f.
// Modes: "always", "never", and "auto" (color only when f is a terminal and
// the environment does not disable it).
func WantColor(mode string, f *os.File) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	}
	if termenv.EnvNoColor() {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// New picks the sink for the resolved color decision. Styled output forces
// lipgloss to a truecolor profile so explicitly requested color survives
// redirection (lipgloss otherwise degrades to the detected profile).
func New(w io.Writer, th theme.Theme, color bool) Sink {
	if !color {
		return NewPlain(w)
	}
	lipgloss.SetColorProfile(termenv.TrueColor)
	return NewANSI(w, th)
}
