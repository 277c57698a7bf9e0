// Package token defines lexical token kinds and token values for stylesheet sources.
// Invariants:
//   - Token.Span covers exactly the bytes consumed for the token; successive tokens
//     from one lexer are contiguous and non-decreasing.
//   - Trivia (whitespace and comments) are ordinary tokens, never dropped.
//   - Only identifier-like kinds (Ident, Variable, Str) carry a text Value and only
//     Number/Float carry a numeric Value; everything else carries NoValue.
//   - Value.Text is a substring of the source unless Value.Owned is set, in which
//     case it was materialized (escape decoding) and may live in an interner.
package token
