package lexer

import (
	"scr/internal/diag"
	"scr/internal/token"
)

// identName дочитывает идентификатор. n — сколько символов уже в тексте,
// leadDash — первый из них '-'. Возвращает итоговое число символов.
func (lx *Lexer) identName(b *textBuilder, n int, leadDash bool) int {
	for {
		atStart := n == 0 || (n == 1 && leadDash)
		c := lx.cursor.Peek()
		if isIdentContinue(c) {
			lx.bumpMatching(b)
			if n == 0 {
				leadDash = c == '-'
			}
			n++
			continue
		}
		if c != '\\' {
			return n
		}
		esc := lx.cursor.Off
		lx.cursor.Bump()
		b.forceEscape(lx.src, esc)
		if r, ok := lx.decodeEscape(esc); ok {
			b.pushIdentEscape(r, atStart)
			n++
		}
	}
}

// decodeEscape reads the escape body after the backslash at esc.
// It reports and returns false when nothing could be decoded.
func (lx *Lexer) decodeEscape(esc uint32) (rune, bool) {
	c := lx.cursor.Peek()
	switch {
	case c == eofRune || isNewline(c):
		lx.errLex(diag.LexExpectedEscapeSequence, lx.cursor.SpanFrom(Mark(esc)), "expected escape sequence").Emit()
		return 0, false

	case isHexDigit(c):
		var value rune
		for i := 0; i < 6 && isHexDigit(lx.cursor.Peek()); i++ {
			value = value<<4 | hexValue(lx.cursor.Bump())
		}
		// один пробельный символ после hex поглощается; "\r\n" считаем одним
		if ws := lx.cursor.Peek(); isWhitespace(ws) {
			lx.cursor.Bump()
			if ws == '\r' {
				lx.cursor.Eat('\n')
			}
		}
		if value == 0 || (value >= 0xd800 && value <= 0xdfff) || value > 0x10ffff {
			lx.errLex(diag.LexInvalidUnicodeCodePoint, lx.cursor.SpanFrom(Mark(esc)), "invalid unicode code point").Emit()
			return 0, false
		}
		return value, true

	default:
		return lx.cursor.Bump(), true
	}
}

func hexValue(c rune) rune {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// scanDollar: '$' уже прочитан. В Scss/Sass "$name" — Variable со значением "name".
func (lx *Lexer) scanDollar() token.Token {
	if !lx.opts.Syntax.AllowsVariables() {
		return token.Token{Kind: token.Dollar}
	}

	c := lx.cursor.Peek()
	switch {
	case c == eofRune:
		lx.errLex(diag.LexUnexpectedEnd, lx.emptySpan(), "expected variable name after '$'").Emit()
		return token.Token{Kind: token.Dollar}
	case isIdentStart(c), lx.startsEscape(0):
	case c == '-':
		if next := lx.cursor.PeekN(1); !isIdentStart(next) && next != '-' && !lx.startsEscape(1) {
			return token.Token{Kind: token.Dollar}
		}
	default:
		return token.Token{Kind: token.Dollar}
	}

	b := newTextBuilder(lx.cursor.Off)
	if lx.identName(&b, 0, false) == 0 {
		lx.errLex(diag.LexExpectedIdentifier, lx.tokenSpan(), "expected identifier").Emit()
	}
	return lx.finishIdent(token.Variable, &b)
}
