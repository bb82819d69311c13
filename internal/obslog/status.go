package obslog

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Status renders the always-on "checking for X ... ok/no" progress lines
// from spec.md §7, styled with lipgloss when stdout is a terminal and as
// plain text otherwise — the same terminal-capability-aware rendering the
// teacher's UI layer applies to its richer output, scaled to single lines.
type Status struct {
	w       io.Writer
	colored bool

	ok   lipgloss.Style
	fail lipgloss.Style
	bold lipgloss.Style
}

// NewStatus returns a Status writing to w, auto-detecting terminal
// capability from w when w is *os.File.
func NewStatus(w io.Writer) *Status {
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Status{
		w:       w,
		colored: colored,
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
		bold:    lipgloss.NewStyle().Bold(true),
	}
}

// Checking prints "checking for <what> ... " without a trailing newline;
// a following Result call completes the line.
func (s *Status) Checking(what string) {
	fmt.Fprintf(s.w, "checking for %s ... ", what)
}

// Result completes a Checking line with a value and whether it counts as
// a success (colors "ok"/failure values green/red).
func (s *Status) Result(value string, ok bool) {
	if !s.colored {
		fmt.Fprintln(s.w, value)
		return
	}
	if ok {
		fmt.Fprintln(s.w, s.ok.Render(value))
	} else {
		fmt.Fprintln(s.w, s.fail.Render(value))
	}
}

// Line prints a standalone section line (e.g. "generating makefile ..").
func (s *Status) Line(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if s.colored {
		msg = s.bold.Render(msg)
	}
	fmt.Fprintln(s.w, msg)
}

// Fatal prints a single-line diagnostic to stderr per spec.md §7's
// propagation rule; callers exit 1 after calling this.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "gocfg: %v\n", err)
}
