package fuzztests

import (
	"testing"

	"scr/internal/diag"
	"scr/internal/dialect"
	"scr/internal/lexer"
	"scr/internal/source"
	"scr/internal/testkit"
	"scr/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func lexAll(t *testing.T, input []byte, syntax dialect.Syntax) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz"+"."+syntax.String(), input))

	bag := diag.NewBag(64)
	lx := lexer.New(file, lexer.Options{Syntax: syntax, Reporter: diag.BagReporter{Bag: bag}})

	// каждый не-EOF токен съедает хотя бы байт, так что len+1 — верхняя граница
	limit := len(input) + 1
	tokens := make([]token.Token, 0, 64)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind.IsEOF() {
			break
		}
		if len(tokens) > limit {
			t.Fatalf("%s: more than %d tokens for %d bytes", syntax, limit, len(input))
		}
	}
	if err := testkit.CheckTokenInvariants(tokens, file); err != nil {
		t.Fatalf("%s: %v\ninput: %q", syntax, err, input)
	}
	if again := lx.Next(); again.Kind != token.EOF {
		t.Fatalf("%s: Next after EOF returned %s", syntax, again.Kind.Name())
	}
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		input = append([]byte(nil), input...)
		for _, syntax := range []dialect.Syntax{dialect.Css, dialect.Scss, dialect.Sass} {
			lexAll(t, input, syntax)
		}
	})
}

func FuzzCheckpointRestore(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("cp.scss", append([]byte(nil), input...)))
		lx := lexer.New(file, lexer.Options{})

		first := lx.Next()
		cp := lx.Checkpoint()
		var ahead []token.Token
		for i := 0; i < 4; i++ {
			ahead = append(ahead, lx.Next())
		}
		lx.Restore(cp)
		for i, want := range ahead {
			if got := lx.Next(); !sameToken(got, want) {
				t.Fatalf("after restore token %d = %+v, want %+v (first %+v)", i, got, want, first)
			}
		}
	})
}

// sameToken compares tokens treating two malformed (NaN) numbers as equal.
func sameToken(a, b token.Token) bool {
	if a.Value.Malformed && b.Value.Malformed {
		a.Value.Number, b.Value.Number = 0, 0
	}
	return a == b
}
