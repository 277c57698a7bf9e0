package lexer

import (
	"scr/internal/diag"
	"scr/internal/source"
	"scr/internal/token"
)

type Lexer struct {
	file   *source.File
	src    string
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	start  uint32       // начало текущего токена
}

func New(file *source.File, opts Options) *Lexer {
	cursor := NewCursor(file)
	return &Lexer{
		file:   file,
		src:    cursor.src,
		cursor: cursor,
		opts:   opts,
	}
}

// Next возвращает следующий токен, включая trivia.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	start := lx.cursor.Mark()
	lx.start = uint32(start)
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(start)}
	}

	tok := lx.scanToken()
	tok.Span = lx.cursor.SpanFrom(start)

	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token exceeds maximum length").Emit()
		lx.cursor.Off = lx.cursor.Limit
		return token.Token{Kind: token.Unknown, Span: lx.cursor.SpanFrom(start)}
	}
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// Remaining returns the source text not yet handed out by Next.
func (lx *Lexer) Remaining() string {
	if lx.look != nil {
		return lx.src[lx.look.Span.Start:lx.cursor.Limit]
	}
	return lx.cursor.Rest()
}

// Offset returns the byte offset of the next token.
func (lx *Lexer) Offset() uint32 {
	if lx.look != nil {
		return lx.look.Span.Start
	}
	return lx.cursor.Off
}

// Checkpoint captures the lexer position, including a peeked token.
// Diagnostics reported after the checkpoint stay reported after Restore;
// wrap the reporter in diag.NewDedupReporter when re-lexing a region.
type Checkpoint struct {
	off     uint32
	prev    rune
	look    token.Token
	hasLook bool
}

func (lx *Lexer) Checkpoint() Checkpoint {
	cp := Checkpoint{off: lx.cursor.Off, prev: lx.cursor.prev}
	if lx.look != nil {
		cp.look, cp.hasLook = *lx.look, true
	}
	return cp
}

func (lx *Lexer) Restore(cp Checkpoint) {
	lx.cursor.Off = cp.off
	lx.cursor.prev = cp.prev
	lx.look = nil
	if cp.hasLook {
		look := cp.look
		lx.look = &look
	}
}

func (lx *Lexer) scanToken() token.Token {
	c := lx.cursor.Bump()
	switch {
	case c == '/':
		switch lx.cursor.Peek() {
		case '/':
			return lx.scanLineComment()
		case '*':
			return lx.scanBlockComment()
		}
		return token.Token{Kind: token.Slash}

	case isWhitespace(c):
		lx.cursor.EatWhile(isWhitespace)
		return token.Token{Kind: token.Whitespace}

	case isIdentStart(c):
		b := newTextBuilder(lx.start)
		lx.identName(&b, 1, false)
		return lx.finishIdent(token.Ident, &b)

	case isDigit(c):
		return lx.scanNumber()

	case c == '\\':
		b := newTextBuilder(lx.start)
		b.forceEscape(lx.src, lx.start)
		n := 0
		if r, ok := lx.decodeEscape(lx.start); ok {
			b.pushIdentEscape(r, true)
			n = 1
		}
		lx.identName(&b, n, false)
		return lx.finishIdent(token.Ident, &b)

	case c == '"' || c == '\'':
		return lx.scanString(c)

	case c == '-':
		return lx.scanMinus()

	case c == '$':
		return lx.scanDollar()
	}
	return lx.scanOperatorOrPunct(c)
}

// finishIdent materializes identifier text collected in b.
func (lx *Lexer) finishIdent(kind token.Kind, b *textBuilder) token.Token {
	return token.Token{
		Kind:    kind,
		Escaped: b.hasEscape(),
		Value:   lx.textValue(b),
	}
}

func (lx *Lexer) textValue(b *textBuilder) token.Value {
	text, owned := b.finish(lx.src, lx.cursor.Off)
	if owned && lx.opts.Interner != nil {
		text = lx.opts.Interner.InternString(text)
	}
	return token.TextOf(text, owned)
}
