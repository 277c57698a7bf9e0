package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"scr/internal/dialect"
	"scr/internal/lexer"
	"scr/internal/source"
	"scr/internal/token"
)

var fragments = []string{
	"a", "Z", "_x", "é", "-", "--", "-->", "<!--", "<", ">", "=", "!", "$", "#", "#{", "{", "}",
	".", "..", "...", "1", "09", ".5", "e", "E+", "1e3", "\\", "\\41 ", "\\0", "\\d800", "\\\n",
	"'", "\"", "/", "*", "/*", "*/", "//", " ", "\t", "\n", "\r\n", "\f", "`", "|", "\x00",
	"\xff", "@", "%", ";", ":", ",", "(", ")", "[", "]", "~", "^", "&", "+",
}

func stylesheetish() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOfN(rapid.SampledFrom(fragments), 0, 40).Draw(t, "parts")
		return strings.Join(parts, "")
	})
}

func anyInput() *rapid.Generator[string] {
	return rapid.OneOf(
		stylesheetish(),
		rapid.String(),
		rapid.Custom(func(t *rapid.T) string {
			return string(rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "bytes"))
		}),
	)
}

func anySyntax() *rapid.Generator[dialect.Syntax] {
	return rapid.SampledFrom([]dialect.Syntax{dialect.Css, dialect.Scss, dialect.Sass})
}

func lexAll(t *rapid.T, input string, syn dialect.Syntax) []token.Token {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("prop.scss", []byte(input)))
	lx := lexer.New(file, lexer.Options{Syntax: syn})

	// каждый вызов продвигает курсор хотя бы на байт, иначе это EOF
	limit := len(input) + 2
	tokens := make([]token.Token, 0, limit)
	for i := 0; i < limit; i++ {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
	t.Fatalf("no EOF after %d calls for %q", limit, input)
	return nil
}

func TestPropertyTotalityAndCoverage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		input := anyInput().Draw(rt, "input")
		syn := anySyntax().Draw(rt, "syntax")
		tokens := lexAll(rt, input, syn)

		var b strings.Builder
		var prevEnd uint32
		for i, tok := range tokens {
			if tok.Span.Start != prevEnd {
				rt.Fatalf("token %d (%s) starts at %d, previous ended at %d", i, tok.Kind.Name(), tok.Span.Start, prevEnd)
			}
			if tok.Span.End < tok.Span.Start {
				rt.Fatalf("token %d has inverted span %v", i, tok.Span)
			}
			if tok.Kind != token.EOF && tok.Span.Empty() {
				rt.Fatalf("token %d (%s) consumed nothing", i, tok.Kind.Name())
			}
			b.WriteString(input[tok.Span.Start:tok.Span.End])
			prevEnd = tok.Span.End
		}
		if b.String() != input {
			rt.Fatalf("spans do not reconstruct input:\n got %q\nwant %q", b.String(), input)
		}
	})
}

func TestPropertyValueKinds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tokens := lexAll(rt, stylesheetish().Draw(rt, "input"), anySyntax().Draw(rt, "syntax"))
		for _, tok := range tokens {
			switch tok.Kind {
			case token.Ident, token.Variable, token.Str:
				if !tok.Value.IsText() {
					rt.Fatalf("%s must carry text", tok.Kind.Name())
				}
			case token.Number, token.Float:
				if !tok.Value.IsNumber() {
					rt.Fatalf("%s must carry a number", tok.Kind.Name())
				}
			default:
				if !tok.Value.IsNone() || tok.Escaped {
					rt.Fatalf("%s must not carry a value", tok.Kind.Name())
				}
			}
		}
	})
}

func TestPropertyUnescapedIdentifierRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.StringMatching(`[a-zA-Z_][a-zA-Z0-9_-]{0,24}`).Draw(rt, "name")
		tokens := lexAll(rt, name, anySyntax().Draw(rt, "syntax"))
		if len(tokens) != 2 || tokens[0].Kind != token.Ident {
			rt.Fatalf("expected one identifier for %q, got %d tokens", name, len(tokens)-1)
		}
		tok := tokens[0]
		if tok.Text() != name || tok.Escaped || tok.Value.Owned {
			rt.Fatalf("round trip failed for %q: %+v", name, tok)
		}
	})
}

func TestPropertyHexEscapeDecodes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cp := rapid.Int32Range(0x80, 0x10ffff).
			Filter(func(r int32) bool { return r < 0xd800 || r > 0xdfff }).
			Draw(rt, "codepoint")
		input := fmt.Sprintf(`\%x x`, cp)
		tokens := lexAll(rt, input, dialect.Scss)
		if len(tokens) != 2 || tokens[0].Text() != string(rune(cp))+"x" || !tokens[0].Escaped {
			rt.Fatalf("escape %q decoded to %+v", input, tokens[0])
		}
	})
}

func TestPropertyRestoreReplaysSameTokens(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		input := stylesheetish().Draw(rt, "input")
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("prop.scss", []byte(input)))
		lx := lexer.New(file, lexer.Options{})

		skip := rapid.IntRange(0, 8).Draw(rt, "skip")
		for i := 0; i < skip; i++ {
			lx.Next()
		}
		if rapid.Bool().Draw(rt, "peek") {
			lx.Peek()
		}
		cp := lx.Checkpoint()
		remaining := lx.Remaining()
		first := []token.Token{}
		for tok := lx.Next(); ; tok = lx.Next() {
			first = append(first, tok)
			if tok.Kind == token.EOF {
				break
			}
		}
		lx.Restore(cp)
		if lx.Remaining() != remaining {
			rt.Fatalf("remaining differs after restore")
		}
		for i := range first {
			got := lx.Next()
			if got.Kind != first[i].Kind || got.Span != first[i].Span || got.Value.String() != first[i].Value.String() {
				rt.Fatalf("token %d differs after restore: %+v vs %+v", i, got, first[i])
			}
		}
	})
}
