package lexer

import (
	"strconv"
	"unicode/utf8"
)

// textBuilder produces the decoded text of one token.
//
// While borrowed it records only the start offset: the text is the source slice
// up to wherever the token ends. The first escape forces an owned buffer seeded
// with everything matched so far; from then on every character is appended.
type textBuilder struct {
	start   uint32
	buf     []byte
	owned   bool
	escaped bool
}

func newTextBuilder(start uint32) textBuilder {
	return textBuilder{start: start}
}

// pushMatching records source bytes consumed verbatim. Owned mode copies
// them as is, so invalid UTF-8 reads the same in both modes.
func (b *textBuilder) pushMatching(raw string) {
	if b.owned {
		b.buf = append(b.buf, raw...)
	}
}

// forceEscape switches to owned mode at the backslash located at off.
// The backslash itself is not copied.
func (b *textBuilder) forceEscape(src string, off uint32) {
	b.escaped = true
	if b.owned {
		return
	}
	b.owned = true
	b.buf = append(make([]byte, 0, int(off-b.start)+16), src[b.start:off]...)
}

// push appends a decoded character; the builder must already be owned.
func (b *textBuilder) push(c rune) {
	b.buf = utf8.AppendRune(b.buf, c)
}

// pushIdentEscape appends a decoded identifier escape, re-serializing characters
// that would not survive as literals at this position.
func (b *textBuilder) pushIdentEscape(c rune, atStart bool) {
	matched := isIdentContinue(c)
	if atStart {
		matched = isIdentStart(c)
	}
	switch {
	case matched:
		b.push(c)
	case (atStart && isDigit(c)) || isControl(c):
		b.buf = append(b.buf, '\\')
		b.buf = strconv.AppendInt(b.buf, int64(c), 16)
		b.buf = append(b.buf, ' ')
	default:
		b.buf = append(b.buf, '\\')
		b.push(c)
	}
}

func (b *textBuilder) hasEscape() bool {
	return b.escaped
}

// finish returns the text and whether it was materialized.
func (b *textBuilder) finish(src string, end uint32) (string, bool) {
	if b.owned {
		return string(b.buf), true
	}
	if end < b.start {
		end = b.start
	}
	return src[b.start:end], false
}
