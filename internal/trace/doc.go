// Package trace records what a tokenize run spends its time on.
//
// Tracers are carried through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
//
// StreamTracer writes text or NDJSON as events happen; RingTracer keeps the
// last N events and is dumped when a file makes the lexer panic.
//
// Levels: off, error (ring only), phase (driver + pass), detail (per file), debug.
package trace
