package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Unknown is produced for a character no rule accepts.
	Unknown Kind = iota
	// EOF marks the end of the source input (or an unterminated block comment).
	EOF

	// Whitespace is any run of whitespace characters, newlines included.
	Whitespace
	// LineComment is `//` up to, not including, the next newline.
	LineComment
	// BlockComment is a (possibly nested) `/* ... */` comment.
	BlockComment

	// Ident represents an identifier, custom property names included.
	Ident
	// Variable represents a `$name` reference (Scss/Sass only).
	Variable
	// Float represents a number with a fraction or an exponent.
	Float
	// Number represents an integer number.
	Number
	// Str represents a quoted string.
	Str

	Amp       // &
	At        // @
	Bang      // !
	LBracket  // [
	RBracket  // ]
	Caret     // ^
	Colon     // :
	Comma     // ,
	LBrace    // {
	RBrace    // }
	Dollar    // $
	Dot       // .
	DotDotDot // ...
	Eq        // =
	EqEq      // ==
	Minus     // -
	LParen    // (
	RParen    // )
	Percent   // %
	Plus      // +
	Pound     // #
	Semicolon // ;
	Slash     // /
	Star      // *
	Tilde     // ~
	Gt        // >
	Lt        // <

	GtEq       // >=
	LtEq       // <=
	BangEq     // !=
	CDO        // <!--
	CDC        // -->
	HashLBrace // #{

	kindCount
)

var kindText = [kindCount]string{
	Unknown:      "Unknown",
	EOF:          "EOF",
	Whitespace:   " ",
	LineComment:  "//",
	BlockComment: "/* */",
	Ident:        "Identifier",
	Variable:     "Variable",
	Float:        "Float",
	Number:       "Number",
	Str:          "String",
	Amp:          "&",
	At:           "@",
	Bang:         "!",
	LBracket:     "[",
	RBracket:     "]",
	Caret:        "^",
	Colon:        ":",
	Comma:        ",",
	LBrace:       "{",
	RBrace:       "}",
	Dollar:       "$",
	Dot:          ".",
	DotDotDot:    "...",
	Eq:           "=",
	EqEq:         "==",
	Minus:        "-",
	LParen:       "(",
	RParen:       ")",
	Percent:      "%",
	Plus:         "+",
	Pound:        "#",
	Semicolon:    ";",
	Slash:        "/",
	Star:         "*",
	Tilde:        "~",
	Gt:           ">",
	Lt:           "<",
	GtEq:         ">=",
	LtEq:         "<=",
	BangEq:       "!=",
	CDO:          "<!--",
	CDC:          "-->",
	HashLBrace:   "#{",
}

var kindName = [kindCount]string{
	Unknown:      "Unknown",
	EOF:          "EOF",
	Whitespace:   "Whitespace",
	LineComment:  "LineComment",
	BlockComment: "BlockComment",
	Ident:        "Ident",
	Variable:     "Variable",
	Float:        "Float",
	Number:       "Number",
	Str:          "Str",
	Amp:          "Amp",
	At:           "At",
	Bang:         "Bang",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	Caret:        "Caret",
	Colon:        "Colon",
	Comma:        "Comma",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	Dollar:       "Dollar",
	Dot:          "Dot",
	DotDotDot:    "DotDotDot",
	Eq:           "Eq",
	EqEq:         "EqEq",
	Minus:        "Minus",
	LParen:       "LParen",
	RParen:       "RParen",
	Percent:      "Percent",
	Plus:         "Plus",
	Pound:        "Pound",
	Semicolon:    "Semicolon",
	Slash:        "Slash",
	Star:         "Star",
	Tilde:        "Tilde",
	Gt:           "Gt",
	Lt:           "Lt",
	GtEq:         "GtEq",
	LtEq:         "LtEq",
	BangEq:       "BangEq",
	CDO:          "CDO",
	CDC:          "CDC",
	HashLBrace:   "HashLBrace",
}

// String returns the canonical display form used in diagnostics ("{", "Identifier", ...).
func (k Kind) String() string {
	if k >= kindCount {
		return "Unknown"
	}
	return kindText[k]
}

// Name returns the Go-style enumerator name, stable for machine-readable output.
func (k Kind) Name() string {
	if k >= kindCount {
		return "Unknown"
	}
	return kindName[k]
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// IsTrivia reports whether the kind is whitespace or a comment.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, LineComment, BlockComment:
		return true
	default:
		return false
	}
}

func (k Kind) IsEOF() bool { return k == EOF }
