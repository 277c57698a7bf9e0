package diag

import (
	"fmt"
	"strings"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexPanic                    Code = 1001
	LexUnexpectedEnd            Code = 1002
	LexExpectedDigit            Code = 1003
	LexInvalidCharacter         Code = 1004
	LexInvalidNumber            Code = 1005
	LexUnterminatedBlockComment Code = 1006
	LexInvalidUnicodeCodePoint  Code = 1007
	LexExpectedIdentifier       Code = 1008
	LexExpectedEscapeSequence   Code = 1009
	LexUnterminatedString       Code = 1010
	LexTokenTooLong             Code = 1011
	LexDialectHint              Code = 1012

	// Для потребителей поверх лексера (парсер и т.п.)
	SynInfo          Code = 2000
	SynExpectedToken Code = 2001

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexPanic:                    "internal lexer failure",
	LexUnexpectedEnd:            "unexpected end of input",
	LexExpectedDigit:            "expected a digit",
	LexInvalidCharacter:         "invalid character",
	LexInvalidNumber:            "invalid number",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexInvalidUnicodeCodePoint:  "invalid unicode code point",
	LexExpectedIdentifier:       "expected an identifier",
	LexExpectedEscapeSequence:   "expected an escape sequence",
	LexUnterminatedString:       "unterminated string",
	LexTokenTooLong:             "token too long",
	LexDialectHint:              "source looks like a different dialect",
	SynInfo:                     "Syntax information",
	SynExpectedToken:            "expected token",
	IOLoadFileError:             "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode maps an ID such as "LEX1010" (case-insensitive) back to its Code.
func ParseCode(id string) (Code, bool) {
	id = strings.ToUpper(strings.TrimSpace(id))
	for c := range codeDescription {
		if c != UnknownCode && c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}
