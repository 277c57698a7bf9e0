package token

import (
	"scr/internal/source"
)

// Token represents a single source token with its location and decoded value.
type Token struct {
	Kind Kind
	Span source.Span
	// Escaped is set when identifier text contained at least one backslash escape.
	Escaped bool
	Value   Value
}

// Start returns the byte offset of the first consumed byte.
func (t Token) Start() uint32 { return t.Span.Start }

// End returns the byte offset one past the last consumed byte.
func (t Token) End() uint32 { return t.Span.End }

// Text returns the decoded text value, or "" for non-text tokens.
func (t Token) Text() string {
	if t.Value.Kind != TextValue {
		return ""
	}
	return t.Value.Text
}

// IsTrivia reports whether the token is whitespace or a comment.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, Float, Str:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Amp, At, Bang, LBracket, RBracket, Caret, Colon, Comma, LBrace, RBrace,
		Dollar, Dot, DotDotDot, Eq, EqEq, Minus, LParen, RParen, Percent, Plus, Pound,
		Semicolon, Slash, Star, Tilde, Gt, Lt, GtEq, LtEq, BangEq, CDO, CDC, HashLBrace:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier or a variable.
func (t Token) IsIdent() bool { return t.Kind == Ident || t.Kind == Variable }
