package lexer

import (
	"errors"
	"strconv"
	"strings"

	"scr/internal/diag"
	"scr/internal/token"
)

// scanNumber: первая цифра уже прочитана.
func (lx *Lexer) scanNumber() token.Token {
	lx.cursor.EatWhile(isDigit)
	kind := token.Number
	if lx.cursor.Eat('.') {
		lx.digitsAfterPoint()
		kind = token.Float
	}
	if lx.optionalExponent() {
		kind = token.Float
	}
	return lx.numberToken(kind)
}

// scanFraction: точка уже прочитана, за ней гарантированно цифра.
func (lx *Lexer) scanFraction() token.Token {
	lx.digitsAfterPoint()
	lx.optionalExponent()
	return lx.numberToken(token.Float)
}

// digitsAfterPoint требует хотя бы одну цифру после '.'.
func (lx *Lexer) digitsAfterPoint() {
	if !isDigit(lx.cursor.Peek()) {
		lx.errLex(diag.LexExpectedDigit, lx.emptySpan(), "expected digit").Emit()
		return
	}
	lx.cursor.EatWhile(isDigit)
}

// optionalExponent съедает e/E[+-]digits, только если за e действительно идут цифры:
// "1em" — это число и единица измерения.
func (lx *Lexer) optionalExponent() bool {
	if c := lx.cursor.Peek(); c != 'e' && c != 'E' {
		return false
	}
	next := lx.cursor.PeekN(1)
	signed := (next == '+' || next == '-') && isDigit(lx.cursor.PeekN(2))
	if !isDigit(next) && !signed {
		return false
	}
	lx.cursor.Bump()
	if signed {
		lx.cursor.Bump()
	}
	lx.cursor.EatWhile(isDigit)
	return true
}

func (lx *Lexer) numberToken(kind token.Kind) token.Token {
	text := strings.TrimSuffix(lx.src[lx.start:lx.cursor.Off], ".")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		lx.errLex(diag.LexInvalidNumber, lx.tokenSpan(), "invalid number").
			WithReason("invalid float").
			Emit()
		return token.Token{Kind: kind, Value: token.MalformedNumber()}
	}
	return token.Token{Kind: kind, Value: token.NumberOf(f)}
}
