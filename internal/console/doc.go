// Package console turns rendered span sequences into bytes on a terminal or
// pipe. The ANSI sink maps style tokens to lipgloss styles from the active
// theme; the plain sink strips styling entirely. Color selection honors
// --color always/never/auto, NO_COLOR, and whether stdout is a terminal.
package console
