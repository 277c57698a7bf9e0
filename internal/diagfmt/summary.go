package diagfmt

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"scr/internal/diag"
)

// Summary counts what a tokenize run produced.
type Summary struct {
	Files      int
	Failed     int // файлы, которые не удалось загрузить
	Tokens     int
	Errors     int
	Warnings   int
	Infos      int
	Suppressed int // отрезано лимитом диагностик на файл
	Elapsed    time.Duration
}

// Add accounts one file's tokens and diagnostics.
func (s *Summary) Add(tokens int, items []diag.Diagnostic) {
	s.Files++
	s.Tokens += tokens
	for _, d := range items {
		switch d.Severity {
		case diag.SevError:
			s.Errors++
			if d.IsIO() {
				s.Failed++
			}
		case diag.SevWarning:
			s.Warnings++
		default:
			s.Infos++
		}
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatSummary prints one status line. Styling goes through lipgloss and
// degrades to plain text when w is not a terminal or color is false.
func FormatSummary(w io.Writer, s Summary, color bool) error {
	r := lipgloss.NewRenderer(w)
	style := func(c string) lipgloss.Style {
		if !color {
			return r.NewStyle()
		}
		return r.NewStyle().Foreground(lipgloss.Color(c)).Bold(true)
	}
	okStyle, errStyle, warnStyle, dim := style("2"), style("1"), style("3"), r.NewStyle()
	if color {
		dim = dim.Faint(true)
	}

	mark := okStyle.Render("✔")
	if s.Errors > 0 {
		mark = errStyle.Render("✘")
	}

	parts := []string{
		plural(s.Files, "file"),
		plural(s.Tokens, "token"),
	}
	errs := plural(s.Errors, "error")
	if s.Errors > 0 {
		errs = errStyle.Render(errs)
	}
	warns := plural(s.Warnings, "warning")
	if s.Warnings > 0 {
		warns = warnStyle.Render(warns)
	}
	parts = append(parts, errs, warns)
	if s.Infos > 0 {
		parts = append(parts, plural(s.Infos, "hint"))
	}
	if s.Failed > 0 {
		parts = append(parts, errStyle.Render(fmt.Sprintf("%d unreadable", s.Failed)))
	}
	if s.Suppressed > 0 {
		parts = append(parts, dim.Render(fmt.Sprintf("%d suppressed", s.Suppressed)))
	}

	line := mark + " " + strings.Join(parts, " · ")
	if s.Elapsed > 0 {
		line += " " + dim.Render("("+s.Elapsed.Round(time.Millisecond).String()+")")
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
