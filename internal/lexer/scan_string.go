package lexer

import (
	"scr/internal/diag"
	"scr/internal/token"
)

// scanString: открывающая кавычка уже прочитана. Значение — содержимое без кавычек.
// Экранирование как в идентификаторах, "\<newline>" — продолжение строки.
// Неэкранированный перевод строки завершает токен с ошибкой и в токен не входит.
func (lx *Lexer) scanString(quote rune) token.Token {
	b := newTextBuilder(lx.cursor.Off)
	for {
		c := lx.cursor.Peek()
		switch {
		case c == quote:
			end := lx.cursor.Off
			lx.cursor.Bump()
			text, owned := b.finish(lx.src, end)
			return lx.stringToken(&b, text, owned)

		case c == eofRune || isNewline(c):
			lx.errLex(diag.LexUnterminatedString, lx.tokenSpan(), "unterminated string").
				WithFix("insert closing quote", diag.FixEdit{Span: lx.emptySpan(), NewText: string(quote)}).
				Emit()
			text, owned := b.finish(lx.src, lx.cursor.Off)
			return lx.stringToken(&b, text, owned)

		case c == '\\':
			esc := lx.cursor.Off
			lx.cursor.Bump()
			b.forceEscape(lx.src, esc)
			if next := lx.cursor.Peek(); isNewline(next) {
				lx.cursor.Bump()
				if next == '\r' {
					lx.cursor.Eat('\n')
				}
				continue
			}
			if r, ok := lx.decodeEscape(esc); ok {
				b.push(r)
			}

		default:
			lx.bumpMatching(&b)
		}
	}
}

func (lx *Lexer) stringToken(b *textBuilder, text string, owned bool) token.Token {
	if owned && lx.opts.Interner != nil {
		text = lx.opts.Interner.InternString(text)
	}
	return token.Token{
		Kind:    token.Str,
		Escaped: b.hasEscape(),
		Value:   token.TextOf(text, owned),
	}
}
