package diag

import "scr/internal/source"

// Reporter receives diagnostics from the lexer and the driver.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)
}

// DiagnosticReporter accepts whole diagnostics, Char and Reason included.
// Emit prefers it over Report.
type DiagnosticReporter interface {
	ReportDiagnostic(d Diagnostic)
}

// Emit delivers d to r. Reporters that only implement Report lose Char/Reason.
func Emit(r Reporter, d Diagnostic) {
	switch r := r.(type) {
	case nil:
	case DiagnosticReporter:
		r.ReportDiagnostic(d)
	default:
		r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
	}
}

// BagReporter stores everything it receives in Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	d := New(sev, code, primary, msg)
	d.Notes, d.Fixes = notes, fixes
	r.ReportDiagnostic(d)
}

func (r BagReporter) ReportDiagnostic(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// ReportBuilder assembles one diagnostic and sends it with Emit.
// A nil builder is inert, so call chains need no checks.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

// NewReportBuilder starts a diagnostic addressed to r.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(sev, code, primary, msg)}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, primary, msg)
}

func (b *ReportBuilder) update(fn func(Diagnostic) Diagnostic) *ReportBuilder {
	if b != nil {
		b.d = fn(b.d)
	}
	return b
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	return b.update(func(d Diagnostic) Diagnostic { return d.WithNote(sp, msg) })
}

func (b *ReportBuilder) WithFix(title string, edits ...FixEdit) *ReportBuilder {
	return b.update(func(d Diagnostic) Diagnostic { return d.WithFix(title, edits...) })
}

func (b *ReportBuilder) WithChar(c rune) *ReportBuilder {
	return b.update(func(d Diagnostic) Diagnostic { return d.WithChar(c) })
}

func (b *ReportBuilder) WithReason(reason string) *ReportBuilder {
	return b.update(func(d Diagnostic) Diagnostic { return d.WithReason(reason) })
}

// Emit sends the diagnostic; repeated calls are no-ops.
func (b *ReportBuilder) Emit() {
	if b == nil || b.sent {
		return
	}
	b.sent = true
	Emit(b.to, b.d)
}

// Diagnostic returns what has been assembled so far.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.d
}
