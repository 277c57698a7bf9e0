package diag

import (
	"sync"

	"scr/internal/source"
)

// DedupReporter forwards each distinct diagnostic once. Re-lexing a region
// after Lexer.Restore reports the same problems again; wrapping the reporter
// keeps the bag free of repeats.
type DedupReporter struct {
	next Reporter
	mu   sync.Mutex
	seen map[dedupKey]struct{}
}

// Char входит в ключ: два разных недопустимых символа в одной позиции
// различаются только им.
type dedupKey struct {
	code    Code
	sev     Severity
	primary source.Span
	char    rune
	msg     string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	r.ReportDiagnostic(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes, Fixes: fixes,
	})
}

func (r *DedupReporter) ReportDiagnostic(d Diagnostic) {
	if r == nil {
		return
	}
	key := dedupKey{code: d.Code, sev: d.Severity, primary: d.Primary, char: d.Char, msg: d.Message}
	r.mu.Lock()
	_, dup := r.seen[key]
	r.seen[key] = struct{}{}
	r.mu.Unlock()
	if !dup {
		Emit(r.next, d)
	}
}
