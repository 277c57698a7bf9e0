package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"scr/internal/diag"
	"scr/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, gutter    *color.Color
	caret, note     *color.Color
	add, del        *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
		add:    color.New(color.FgGreen),
		del:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note, p.add, p.del} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строки контекста с подчёркиванием ^~~~ по Span, notes и fixes.
// items печатаются в переданном порядке, то есть в порядке обнаружения.
func Pretty(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	header := fmt.Sprintf("%s %s: %s",
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)

	// I/O ошибки не привязаны к содержимому файла
	located := !d.IsIO() && hasFile(fs, d.Primary.File)
	if located {
		fmt.Fprintf(w, "%s: %s\n", spanLocation(fs, d.Primary, opts.PathMode), header)
		writeExcerpt(w, fs, d.Primary, int(opts.Context), p)
	} else {
		fmt.Fprintln(w, header)
	}

	if d.Reason != "" {
		fmt.Fprintf(w, "  = reason: %s\n", d.Reason)
	}
	if d.Char != 0 {
		fmt.Fprintf(w, "  = char: %q (U+%04X)\n", d.Char, d.Char)
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			loc := spanLocation(fs, note.Span, opts.PathMode)
			if loc == "" {
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), note.Msg)
				continue
			}
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), loc, note.Msg)
		}
	}

	if opts.ShowFixes {
		for i, fix := range d.Fixes {
			fmt.Fprintf(w, "  fix #%d: %s\n", i+1, fix.Title)
			for _, edit := range fix.Edits {
				fmt.Fprintf(w, "    edit %s apply=%q\n", spanLocation(fs, edit.Span, opts.PathMode), edit.NewText)
				if !opts.ShowPreview {
					continue
				}
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				fmt.Fprintln(w, "    preview:")
				for _, line := range preview.before {
					fmt.Fprintf(w, "      %s\n", p.del.Sprint("- "+line))
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "      %s\n", p.add.Sprint("+ "+line))
				}
			}
		}
	}
}

// writeExcerpt prints the primary line with context and a caret underline.
// Columns are measured in display cells so wide characters line up.
func writeExcerpt(w io.Writer, fs *source.FileSet, span source.Span, context int, p palette) {
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)

	first := max(int(start.Line)-context, 1)
	last := min(int(start.Line)+context, lineCount(file))
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		line := file.Line(uint32(ln)) //nolint:gosec // ln >= 1 and bounded by a uint32 line
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), expandTabs(line))
		if ln != int(start.Line) {
			continue
		}

		col := min(max(int(start.Col)-1, 0), len(line))
		stop := len(line)
		if end.Line == start.Line {
			stop = min(int(end.Col)-1, len(line))
		}
		pad := runewidth.StringWidth(expandTabs(line[:col]))
		width := max(runewidth.StringWidth(expandTabs(line[col:max(stop, col)])), 1)
		underline := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint(underline))
	}
}

func lineCount(f *source.File) int {
	return len(f.LineIdx) + 1
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
