package lexer

import "testing"

func TestCharacterClasses(t *testing.T) {
	type class struct {
		name string
		fn   func(rune) bool
		yes  []rune
		no   []rune
	}
	classes := []class{
		{"digit", isDigit, []rune("09"), []rune("a/:")},
		{"hex", isHexDigit, []rune("09afAF"), []rune("gG-")},
		{"letter", isLetter, []rune("azAZ"), []rune("_0é")},
		{"nonASCII", isNonASCII, []rune{0x80, 'é', '→'}, []rune{0x7f, 'a'}},
		{"identStart", isIdentStart, []rune("a_Zé"), []rune("0-\\ ")},
		{"identContinue", isIdentContinue, []rune("a_Z0-é"), []rune("\\ .$")},
		{"nonPrintable", isNonPrintable, []rune{0, 8, 0x0b, 0x0e, 0x1f, 0x7f}, []rune{'\t', '\n', 0x0c, '\r', ' '}},
		{"newline", isNewline, []rune("\n\r\f"), []rune("\t ")},
		{"whitespace", isWhitespace, []rune("\n\r\f\t "), []rune{0x0b, 0xa0, 'a'}},
	}
	for _, c := range classes {
		for _, r := range c.yes {
			if !c.fn(r) {
				t.Errorf("%s(%q) = false, want true", c.name, r)
			}
		}
		for _, r := range append(c.no, eofRune) {
			if c.fn(r) {
				t.Errorf("%s(%q) = true, want false", c.name, r)
			}
		}
	}
}
