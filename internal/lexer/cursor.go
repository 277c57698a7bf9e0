package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"scr/internal/source"
)

// eofRune is returned by Cursor reads past the end of input.
const eofRune rune = -1

// Cursor представляет собой позицию в исходном тексте файла.
// Читает по рунам; смещения остаются байтовыми.
type Cursor struct {
	src  string
	file source.FileID
	Off  uint32
	// Limit is the exclusive upper bound for Off.
	Limit uint32
	// prev — последний прочитанный символ; нужен только для проверок в тестах.
	prev rune
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	return newCursor(f.ID, string(f.Content))
}

func newCursor(id source.FileID, src string) Cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		src:   src,
		file:  id,
		Limit: limit,
		prev:  eofRune,
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

func (c *Cursor) decode(off uint32) (r rune, size uint32) {
	if off >= c.Limit {
		return eofRune, 0
	}
	b := c.src[off]
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	r, sz := utf8.DecodeRuneInString(c.src[off:c.Limit])
	return r, uint32(sz) //nolint:gosec // sz is in [1, 4]
}

// Peek читает текущий символ, не сдвигая курсор; eofRune на конце.
func (c *Cursor) Peek() rune {
	r, _ := c.decode(c.Off)
	return r
}

// PeekN возвращает n-й символ после текущего (PeekN(0) == Peek()).
func (c *Cursor) PeekN(n int) rune {
	off := c.Off
	for ; n > 0; n-- {
		_, sz := c.decode(off)
		if sz == 0 {
			return eofRune
		}
		off += sz
	}
	r, _ := c.decode(off)
	return r
}

// Bump сдвигает курсор на один символ и возвращает его; eofRune на конце.
func (c *Cursor) Bump() rune {
	r, sz := c.decode(c.Off)
	if sz == 0 {
		return eofRune
	}
	c.Off += sz
	c.prev = r
	return r
}

// Eat consumes the next character if it matches r.
func (c *Cursor) Eat(r rune) bool {
	if c.Peek() != r {
		return false
	}
	c.Bump()
	return true
}

// EatWhile consumes characters while pred holds.
func (c *Cursor) EatWhile(pred func(rune) bool) {
	for !c.EOF() && pred(c.Peek()) {
		c.Bump()
	}
}

// Prev returns the last consumed character, or eofRune before the first Bump.
func (c *Cursor) Prev() rune {
	return c.prev
}

// Rest returns the unconsumed suffix.
func (c *Cursor) Rest() string {
	if c.EOF() {
		return ""
	}
	return c.src[c.Off:c.Limit]
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.file,
		Start: uint32(m),
		End:   c.Off,
	}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
