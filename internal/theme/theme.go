// Package theme holds the built-in color palettes and loads custom palettes
// from TOML files. A Theme names colors only; lipgloss style construction
// happens in Styles so sinks stay palette-agnostic.
package theme

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	toml "github.com/pelletier/go-toml/v2"
)

// Theme defines the colors for every style token the renderer emits.
// Empty color strings render unstyled.
type Theme struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`

	// Level tiers
	Debug    string `toml:"debug"`
	Info     string `toml:"info"`
	Warning  string `toml:"warning"`
	Error    string `toml:"error"`
	Critical string `toml:"critical"`
	Unknown  string `toml:"unknown"`

	// Header and detail components
	Timestamp string `toml:"timestamp"`
	Logger    string `toml:"logger"`
	Message   string `toml:"message"`
	Key       string `toml:"key"`
	Value     string `toml:"value"`
	Separator string `toml:"separator"`
	Exception string `toml:"exception"`

	// Bold flags for the loud tiers
	BoldError    bool `toml:"bold_error"`
	BoldCritical bool `toml:"bold_critical"`
}

// Styles returns the lipgloss style for each render token.
func (t Theme) Styles() map[string]lipgloss.Style {
	styles := map[string]lipgloss.Style{
		"debug":     fg(t.Debug),
		"info":      fg(t.Info),
		"warning":   fg(t.Warning),
		"error":     fg(t.Error),
		"critical":  fg(t.Critical),
		"unknown":   fg(t.Unknown),
		"timestamp": fg(t.Timestamp),
		"logger":    fg(t.Logger),
		"message":   fg(t.Message),
		"key":       fg(t.Key),
		"value":     fg(t.Value),
		"separator": fg(t.Separator),
		"exception": fg(t.Exception),
	}
	if t.BoldError {
		styles["error"] = styles["error"].Bold(true)
	}
	if t.BoldCritical {
		styles["critical"] = styles["critical"].Bold(true)
	}
	for i, bg := range highlightPalette {
		styles[fmt.Sprintf("highlight%d", i)] = lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color("0")).
			Bold(true)
	}
	return styles
}

// highlightPalette backs the highlight0..highlight5 tokens: ANSI background
// colors with black bold text, identical across themes so a pattern keeps
// its color no matter which theme is active.
var highlightPalette = []string{"3", "6", "5", "2", "4", "1"}

func fg(color string) lipgloss.Style {
	if strings.TrimSpace(color) == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Theme definitions

var themes = map[string]Theme{
	"dark":  darkTheme(),
	"mono":  monoTheme(),
	"latte": latteTheme(),
}

var themeOrder = []string{"dark", "mono", "latte"}

// Get returns a built-in theme by name, defaulting to dark.
func Get(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return darkTheme()
}

// Lookup is Get without the fallback, for validating --theme values.
func Lookup(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Names returns the built-in theme names in display order.
func Names() []string {
	out := make([]string, len(themeOrder))
	copy(out, themeOrder)
	return out
}

// Describe returns name → description for every built-in theme, for
// --list-themes output.
func Describe() map[string]string {
	out := make(map[string]string, len(themes))
	for name, t := range themes {
		out[name] = t.Description
	}
	return out
}

// SortedNames returns the built-in names alphabetically, for deterministic
// listings.
func SortedNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile reads a custom theme from a TOML file with a [theme] section.
func LoadFile(path string) (Theme, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}
	var raw struct {
		Theme *Theme `toml:"theme"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Theme{}, fmt.Errorf("parse theme: %w", err)
	}
	if raw.Theme == nil {
		return Theme{}, errors.New("theme file must contain a [theme] section")
	}
	return *raw.Theme, nil
}

func darkTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:        "dark",
		Description: "Default dark theme",

		Debug:    "#738091", // comment
		Info:     "#719cd6", // blue
		Warning:  "#dbc074", // yellow
		Error:    "#c94f6d", // red
		Critical: "#c94f6d", // red
		Unknown:  "#cdcecf", // fg1

		Timestamp: "#63cdcf", // cyan
		Logger:    "#9d79d6", // magenta
		Message:   "#cdcecf", // fg1
		Key:       "#81b29a", // green
		Value:     "#cdcecf", // fg1
		Separator: "#738091", // comment
		Exception: "#c94f6d", // red

		BoldError:    true,
		BoldCritical: true,
	}
}

func monoTheme() Theme {
	// Everything unstyled; for pipes and colorless terminals.
	return Theme{
		Name:        "mono",
		Description: "No colors (monochrome)",
	}
}

func latteTheme() Theme {
	// Catppuccin Latte palette for light backgrounds:
	// https://github.com/catppuccin/catppuccin
	return Theme{
		Name:        "latte",
		Description: "Catppuccin Latte (light) theme",

		Debug:    "#9ca0b0", // surface2
		Info:     "#1e66f5", // blue
		Warning:  "#df8e1d", // yellow
		Error:    "#d20f39", // red
		Critical: "#d20f39", // red
		Unknown:  "#4c4f69", // text

		Timestamp: "#179299", // teal
		Logger:    "#8839ef", // mauve
		Message:   "#4c4f69", // text
		Key:       "#40a02b", // green
		Value:     "#4c4f69", // text
		Separator: "#9ca0b0", // surface2
		Exception: "#d20f39", // red

		BoldError:    true,
		BoldCritical: true,
	}
}
