package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"scr/internal/source"
)

// goldenLine is one row of a golden diagnostics file.
type goldenLine struct {
	label string // error, warning, info или note
	code  string
	path  string
	pos   source.LineCol
	msg   string
}

func (l goldenLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.label, l.code, l.path, l.pos.Line, l.pos.Col, l.msg)
}

func compareGolden(a, b goldenLine) int {
	return cmp.Or(
		strings.Compare(a.path, b.path),
		cmp.Compare(a.pos.Line, b.pos.Line),
		cmp.Compare(a.pos.Col, b.pos.Col),
		strings.Compare(a.label, b.label),
		strings.Compare(a.code, b.code),
		strings.Compare(a.msg, b.msg),
	)
}

// FormatGoldenDiagnostics renders diagnostics one per line as
// "severity CODE path:line:col message", sorted so the output does not depend
// on emission order. Paths are relative to the FileSet base directory.
// Entries whose file is unknown to fs are left out.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []goldenLine
	add := func(label string, code Code, sp source.Span, msg string) {
		if int(sp.File) >= fs.Len() {
			return
		}
		start, _ := fs.Resolve(sp)
		path := fs.Get(sp.File).DisplayPath(source.PathRelative, fs.BaseDir())
		for strings.HasPrefix(path, "./") {
			path = path[2:]
		}
		lines = append(lines, goldenLine{
			label: label,
			code:  code.ID(),
			path:  path,
			pos:   start,
			msg:   oneLine(msg),
		})
	}
	for _, d := range diags {
		add(SeverityLabel(d.Severity), d.Code, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code, n.Span, n.Msg)
		}
	}

	slices.SortStableFunc(lines, compareGolden)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

// oneLine folds any newline flavour into a space.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
