// Package diag defines the diagnostic model shared by the lexer, the driver and
// any consumer layered on top of the token stream.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     (LEX1004, SYN2001, ...).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the byte range in the source that the diagnostic points to.
//   - Char – the offending character of an invalid-character diagnostic.
//   - Reason – static explanation attached to invalid numbers.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional edits that would resolve the problem (for example,
//     inserting a missing closing quote).
//
// Lexical diagnostics are never fatal: the lexer keeps producing tokens and the
// driver decides what to do with the collected list.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter. ReportBuilder (NewReportBuilder, ReportError,
// ReportWarning, ReportInfo) collects notes, fixes and payloads before Emit.
// Reporters that implement DiagnosticReporter receive the complete record;
// plain Reporters get the classic positional call.
//
// # Storage
//
// Bag is an append-only list capped at construction. It is guarded by a mutex so
// several producers may share one bag. Drain extracts the items exactly once;
// afterwards the bag is consumed and rejects new entries. Entries refused
// because the cap was reached are counted by Dropped.
package diag
