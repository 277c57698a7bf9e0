package lexer

import (
	"strings"

	"scr/internal/diag"
	"scr/internal/token"
)

// "//..." до перевода строки (сам перевод строки не входит в токен).
// Первый '/' уже прочитан.
func (lx *Lexer) scanLineComment() token.Token {
	lx.cursor.Bump() // второй '/'
	lx.cursor.EatWhile(func(c rune) bool { return !isNewline(c) })
	return token.Token{Kind: token.LineComment}
}

// "/* ... */" с вложенностью: каждый "/*" увеличивает глубину, "*/" уменьшает.
// Незакрытый комментарий съедает остаток файла и возвращается как EOF.
func (lx *Lexer) scanBlockComment() token.Token {
	lx.cursor.Bump() // '*'
	depth := 1
	for depth > 0 {
		switch c := lx.cursor.Bump(); {
		case c == eofRune:
			lx.errLex(diag.LexUnterminatedBlockComment, lx.tokenSpan(), "unterminated block comment").
				WithFix("close comment", diag.FixEdit{Span: lx.emptySpan(), NewText: strings.Repeat("*/", depth)}).
				Emit()
			return token.Token{Kind: token.EOF}
		case c == '/' && lx.cursor.Eat('*'):
			depth++
		case c == '*' && lx.cursor.Eat('/'):
			depth--
		}
	}
	return token.Token{Kind: token.BlockComment}
}
