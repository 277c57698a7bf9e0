// Package dialect selects which stylesheet syntax (plain CSS, SCSS or the indented
// Sass syntax) the lexer runs in, and answers per-dialect capability questions.
//
// It also collects lightweight evidence of Sass-only constructs seen while scanning
// a file in another dialect. Evidence collection never changes tokenization; it only
// feeds optional hint diagnostics.
package dialect
