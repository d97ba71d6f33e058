package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plumelog/plume/internal/app"
	"github.com/plumelog/plume/internal/filter"
	"github.com/plumelog/plume/internal/theme"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

type flags struct {
	configPath string
	themeName  string
	themePath  string
	listThemes bool
	colorMode  string

	include         string
	exclude         string
	selectors       []string
	caseInsensitive bool
	before          int
	after           int
	around          int
	highlight       []string

	stats     bool
	follow    bool
	tailLines int
}

// New builds the root command. Output defaults to the process streams; tests
// swap them with cmd.SetOut and cmd.SetIn.
func New() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "plume [file...]",
		Short: "pretty-print JSON lines logs",
		Long: `plume reads JSON-lines log records from stdin or from files and renders
each one as a colorized header line with indented detail lines. Lines that
are not JSON objects pass through untouched.

Examples:
  tail -f app.log | plume
  plume app.log worker.log
  plume -f app.log -n 50
  plume -i "timeout" --field-selector level=error app.log
  plume -H "req-[0-9]+" app.log`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.listThemes {
				return listThemes(cmd)
			}
			opts, err := f.options(args)
			if err != nil {
				return err
			}
			opts.Stdin = cmd.InOrStdin()
			opts.Stdout = cmd.OutOrStdout()
			return app.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", "", "config file (default ~/.config/plume/config.toml)")
	cmd.Flags().StringVar(&f.themeName, "theme", "", "color theme: "+joinNames())
	cmd.Flags().StringVar(&f.themePath, "theme-path", "", "load a theme from a TOML file")
	cmd.Flags().BoolVar(&f.listThemes, "list-themes", false, "list built-in themes and exit")
	cmd.Flags().StringVar(&f.colorMode, "color", "auto", "colorize output: auto, always, never")

	cmd.Flags().StringVarP(&f.include, "include", "i", "", "only show records matching this regex")
	cmd.Flags().StringVarP(&f.exclude, "exclude", "e", "", "hide records matching this regex")
	cmd.Flags().StringArrayVar(&f.selectors, "field-selector", nil, "only show records where KEY=PATTERN (repeatable, glob patterns)")
	cmd.Flags().BoolVar(&f.caseInsensitive, "case-insensitive", false, "case-insensitive include/exclude matching")
	cmd.Flags().IntVarP(&f.before, "before-context", "B", 0, "show N records before each match")
	cmd.Flags().IntVarP(&f.after, "after-context", "A", 0, "show N records after each match")
	cmd.Flags().IntVarP(&f.around, "context", "C", 0, "show N records around each match (overrides -A and -B)")
	cmd.Flags().StringArrayVarP(&f.highlight, "highlight", "H", nil, "highlight text matching this regex (repeatable, colors cycle)")

	cmd.Flags().BoolVar(&f.stats, "stats", false, "print a summary after the input ends")
	cmd.Flags().BoolVarP(&f.follow, "follow", "f", false, "keep watching the given files for new lines")
	cmd.Flags().IntVarP(&f.tailLines, "tail", "n", 0, "with --follow, start with the last N lines of each file")

	return cmd
}

func (f *flags) options(args []string) (app.Options, error) {
	selectors := make([]filter.Selector, 0, len(f.selectors))
	for _, raw := range f.selectors {
		sel, err := filter.ParseSelector(raw)
		if err != nil {
			return app.Options{}, err
		}
		selectors = append(selectors, sel)
	}

	before, after := f.before, f.after
	if f.around > 0 {
		before, after = f.around, f.around
	}

	switch f.colorMode {
	case "auto", "always", "never":
	default:
		return app.Options{}, fmt.Errorf("invalid --color mode %q (want auto, always, or never)", f.colorMode)
	}

	return app.Options{
		ConfigPath:      f.configPath,
		ThemeName:       f.themeName,
		ThemePath:       f.themePath,
		ColorMode:       f.colorMode,
		Include:         f.include,
		Exclude:         f.exclude,
		CaseInsensitive: f.caseInsensitive,
		Selectors:       selectors,
		Before:          before,
		After:           after,
		Highlight:       f.highlight,
		Stats:           f.stats,
		Follow:          f.follow,
		TailLines:       f.tailLines,
		Paths:           args,
	}, nil
}

func listThemes(cmd *cobra.Command) error {
	descriptions := theme.Describe()
	for _, name := range theme.SortedNames() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", name, descriptions[name])
	}
	return nil
}

func joinNames() string {
	names := theme.SortedNames()
	out := ""
	for i, name := range names {
		if i > 0 {
			out += ", "
		}
		out += name
	}
	return out
}
