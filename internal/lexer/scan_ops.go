package lexer

import (
	"fmt"

	"scr/internal/diag"
	"scr/internal/token"
)

// scanMinus: '-' уже прочитан.
//   - "-5", "-.5"  → число
//   - "-->"        → CDC
//   - "-foo", "--x", "-\31 " → идентификатор (значение включает '-')
//   - иначе        → Minus
func (lx *Lexer) scanMinus() token.Token {
	c := lx.cursor.Peek()
	switch {
	case isDigit(c):
		lx.cursor.Bump()
		return lx.scanNumber()
	case c == '.' && isDigit(lx.cursor.PeekN(1)):
		lx.cursor.Bump()
		return lx.scanFraction()
	case lx.try2('-', '>'):
		return token.Token{Kind: token.CDC}
	case isIdentContinue(c), lx.startsEscape(0):
		b := newTextBuilder(lx.start)
		lx.identName(&b, 1, true)
		return lx.finishIdent(token.Ident, &b)
	}
	return token.Token{Kind: token.Minus}
}

// scanOperatorOrPunct: c уже прочитан.
// Многосимвольные операторы Sass (`...`, `==`, `>=`, `<=`, `!=`, `#{`) включаются
// только когда диалект их допускает; в CSS они распадаются на одиночные токены.
func (lx *Lexer) scanOperatorOrPunct(c rune) token.Token {
	syn := lx.opts.Syntax
	emit := func(k token.Kind) token.Token { return token.Token{Kind: k} }

	switch c {
	case '.':
		if isDigit(lx.cursor.Peek()) {
			return lx.scanFraction()
		}
		if syn.AllowsEllipsis() && lx.try2('.', '.') {
			return emit(token.DotDotDot)
		}
		return emit(token.Dot)
	case '<':
		if lx.try3('!', '-', '-') {
			return emit(token.CDO)
		}
		if syn.AllowsComparison() && lx.cursor.Eat('=') {
			return emit(token.LtEq)
		}
		return emit(token.Lt)
	case '>':
		if syn.AllowsComparison() && lx.cursor.Eat('=') {
			return emit(token.GtEq)
		}
		return emit(token.Gt)
	case '!':
		if syn.AllowsComparison() && lx.cursor.Eat('=') {
			return emit(token.BangEq)
		}
		return emit(token.Bang)
	case '=':
		if syn.AllowsComparison() && lx.cursor.Eat('=') {
			return emit(token.EqEq)
		}
		return emit(token.Eq)
	case '#':
		if syn.AllowsInterpolation() && lx.cursor.Eat('{') {
			return emit(token.HashLBrace)
		}
		return emit(token.Pound)
	case '&':
		return emit(token.Amp)
	case '@':
		return emit(token.At)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '^':
		return emit(token.Caret)
	case ':':
		return emit(token.Colon)
	case ',':
		return emit(token.Comma)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '%':
		return emit(token.Percent)
	case '+':
		return emit(token.Plus)
	case ';':
		return emit(token.Semicolon)
	case '*':
		return emit(token.Star)
	case '~':
		return emit(token.Tilde)
	}

	// неизвестный символ
	msg := fmt.Sprintf("invalid character '%c'", c)
	if isNonPrintable(c) {
		msg = fmt.Sprintf("invalid character U+%04X", c)
	}
	lx.errLex(diag.LexInvalidCharacter, lx.tokenSpan(), msg).
		WithChar(c).
		Emit()
	return emit(token.Unknown)
}
