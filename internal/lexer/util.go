package lexer

import (
	"scr/internal/source"
)

// tokenSpan covers the current token from its first byte up to the cursor.
func (lx *Lexer) tokenSpan() source.Span {
	return lx.cursor.SpanFrom(Mark(lx.start))
}

// bumpMatching consumes one character and feeds its source bytes to b.
func (lx *Lexer) bumpMatching(b *textBuilder) rune {
	from := lx.cursor.Off
	c := lx.cursor.Bump()
	b.pushMatching(lx.src[from:lx.cursor.Off])
	return c
}

// emptySpan is a zero-width span at the cursor.
func (lx *Lexer) emptySpan() source.Span {
	return source.PointSpan(lx.cursor.file, lx.cursor.Off)
}

// ===== Матчеры последовательностей (жадность) =====

// try2/try3 пробуют "съесть" следующие 2/3 символа, если совпадают.
func (lx *Lexer) try2(a, b rune) bool {
	if lx.cursor.Peek() != a || lx.cursor.PeekN(1) != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}

func (lx *Lexer) try3(a, b, c rune) bool {
	if lx.cursor.Peek() != a || lx.cursor.PeekN(1) != b || lx.cursor.PeekN(2) != c {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}

// startsEscape reports whether the character n positions ahead is a backslash
// that begins a valid escape (not followed by a newline or end of input).
func (lx *Lexer) startsEscape(n int) bool {
	if lx.cursor.PeekN(n) != '\\' {
		return false
	}
	next := lx.cursor.PeekN(n + 1)
	return next != eofRune && !isNewline(next)
}
