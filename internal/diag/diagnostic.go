package diag

import (
	"strings"

	"scr/internal/source"
)

// Severity orders diagnostics. Lexical errors never stop tokenization; they
// only decide the exit status of the CLI.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityLabels = [...]string{SevInfo: "info", SevWarning: "warning", SevError: "error"}

// String is the upper-case form used by pretty and JSON output.
func (s Severity) String() string {
	if int(s) >= len(severityLabels) {
		return "UNKNOWN"
	}
	return strings.ToUpper(severityLabels[s])
}

// SeverityLabel returns the lower-case label used by line-oriented output.
func SeverityLabel(sev Severity) string {
	if int(sev) >= len(severityLabels) {
		return "info"
	}
	return severityLabels[sev]
}

// ParseSeverity accepts the labels produced by SeverityLabel or String.
func ParseSeverity(s string) (Severity, bool) {
	for i, label := range severityLabels {
		if strings.EqualFold(s, label) {
			return Severity(i), true
		}
	}
	return SevInfo, false
}

// Note points at a secondary location, e.g. where a string was opened.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit replaces Span with NewText; an empty Span is an insertion.
type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	// Char is the offending character for LexInvalidCharacter; 0 otherwise.
	Char rune
	// Reason is a static explanation attached to LexInvalidNumber.
	Reason string
	Notes  []Note
	Fixes  []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// Значение-получатель: With* возвращают копию, исходная диагностика не меняется.

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes[:len(d.Fixes):len(d.Fixes)], Fix{Title: title, Edits: edits})
	return d
}

func (d Diagnostic) WithChar(c rune) Diagnostic {
	d.Char = c
	return d
}

func (d Diagnostic) WithReason(reason string) Diagnostic {
	d.Reason = reason
	return d
}

// IsIO reports whether d describes a file that could not be read rather
// than a problem inside its text.
func (d Diagnostic) IsIO() bool {
	return d.Code >= 4000 && d.Code < 5000
}
