package lexer

// Категории символов из CSS Syntax Level 3, §4.2.
// Все предикаты ложны для eofRune.

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isNonASCII: U+0080 и выше.
func isNonASCII(c rune) bool {
	return c >= 0x80
}

// isIdentStart: буква, non-ASCII или '_'.
func isIdentStart(c rune) bool {
	return isLetter(c) || isNonASCII(c) || c == '_'
}

// isIdentContinue: ident-start, цифра или '-'.
func isIdentContinue(c rune) bool {
	return isIdentStart(c) || isDigit(c) || c == '-'
}

func isNonPrintable(c rune) bool {
	return (c >= 0 && c <= 0x08) || c == 0x0b || (c >= 0x0e && c <= 0x1f) || c == 0x7f
}

// isNewline includes CR and FF: sources are not preprocessed into LF.
func isNewline(c rune) bool {
	return c == '\n' || c == '\r' || c == '\f'
}

func isWhitespace(c rune) bool {
	return isNewline(c) || c == '\t' || c == ' '
}

// isControl covers the characters an identifier escape must re-serialize in hex form.
func isControl(c rune) bool {
	return (c >= 0 && c <= 0x1f) || c == 0x7f
}
