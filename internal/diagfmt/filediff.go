package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// FormatFileDiff prints a line diff of before/after under a ---/+++ header.
// Unchanged runs longer than 2*context lines are collapsed to "...".
func FormatFileDiff(w io.Writer, path string, before, after []byte, context int, useColor bool) error {
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	if useColor {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}

	if _, err := fmt.Fprintf(w, "--- %s\n+++ %s (fixed)\n", path, path); err != nil {
		return err
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for i, d := range diffs {
		text := splitDiffLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, line := range text {
				del.Fprintf(w, "-%s\n", line)
			}
		case diffmatchpatch.DiffInsert:
			for _, line := range text {
				ins.Fprintf(w, "+%s\n", line)
			}
		default:
			text = trimEqual(text, context, i == 0, i == len(diffs)-1)
			for _, line := range text {
				fmt.Fprintf(w, " %s\n", line)
			}
		}
	}
	return nil
}

func splitDiffLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// trimEqual keeps context lines next to changes; first/last runs only keep
// the side that touches a change.
func trimEqual(lines []string, context int, first, last bool) []string {
	keepHead, keepTail := context, context
	if first {
		keepHead = 0
	}
	if last {
		keepTail = 0
	}
	if len(lines) <= keepHead+keepTail {
		return lines
	}
	out := make([]string, 0, keepHead+keepTail+1)
	out = append(out, lines[:keepHead]...)
	out = append(out, "...")
	return append(out, lines[len(lines)-keepTail:]...)
}
