package token_test

import (
	"math"
	"testing"

	"scr/internal/source"
	"scr/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsTrivia(t *testing.T) {
	for _, k := range token.Kinds() {
		want := k == token.Whitespace || k == token.LineComment || k == token.BlockComment
		if got := k.IsTrivia(); got != want {
			t.Fatalf("%s.IsTrivia() = %v, want %v", k.Name(), got, want)
		}
	}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.Number, token.Float, token.Str} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k.Name())
		}
	}
	for _, k := range []token.Kind{token.Ident, token.Variable, token.Plus, token.LParen} {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k.Name())
		}
	}
}

func TestEveryKindIsClassified(t *testing.T) {
	// каждый вид — ровно одна из категорий
	for _, k := range token.Kinds() {
		tk := tok(k)
		n := 0
		for _, b := range []bool{tk.IsTrivia(), tk.IsLiteral(), tk.IsPunctOrOp(), tk.IsIdent(), k == token.Unknown || k == token.EOF} {
			if b {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("%s falls into %d categories", k.Name(), n)
		}
	}
}

func TestKindDisplay(t *testing.T) {
	cases := map[token.Kind]string{
		token.Whitespace:   " ",
		token.BlockComment: "/* */",
		token.Ident:        "Identifier",
		token.Str:          "String",
		token.GtEq:         ">=",
		token.BangEq:       "!=",
		token.CDO:          "<!--",
		token.CDC:          "-->",
		token.DotDotDot:    "...",
		token.HashLBrace:   "#{",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%s.String() = %q, want %q", k.Name(), got, want)
		}
	}
	if token.Kind(250).String() != "Unknown" || token.Kind(250).Name() != "Unknown" {
		t.Errorf("out-of-range kinds must render as Unknown")
	}
}

func TestKindNamesUnique(t *testing.T) {
	seen := map[string]token.Kind{}
	for _, k := range token.Kinds() {
		name := k.Name()
		if name == "" {
			t.Fatalf("kind %d has no name", k)
		}
		if prev, ok := seen[name]; ok {
			t.Fatalf("kinds %d and %d share name %q", prev, k, name)
		}
		seen[name] = k
	}
}

func TestValues(t *testing.T) {
	v := token.TextOf("color", false)
	if !v.IsText() || v.Owned || v.String() != "color" {
		t.Fatalf("unexpected text value %+v", v)
	}
	n := token.NumberOf(10.5)
	if !n.IsNumber() || n.String() != "10.5" {
		t.Fatalf("unexpected number value %+v", n)
	}
	bad := token.MalformedNumber()
	if !bad.Malformed || !math.IsNaN(bad.Number) || bad.String() != "NaN" {
		t.Fatalf("unexpected malformed value %+v", bad)
	}
	if !(token.Value{}).IsNone() {
		t.Fatalf("zero value must be NoValue")
	}
}

func TestTokenAccessors(t *testing.T) {
	tk := token.Token{
		Kind:  token.Ident,
		Span:  source.Span{Start: 4, End: 9},
		Value: token.TextOf("hello", false),
	}
	if tk.Start() != 4 || tk.End() != 9 || tk.Text() != "hello" {
		t.Fatalf("unexpected accessors for %+v", tk)
	}
	if tok(token.Number).Text() != "" {
		t.Fatalf("non-text token must have empty Text()")
	}
}
