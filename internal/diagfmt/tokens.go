package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"

	"scr/internal/source"
	"scr/internal/token"
)

type TokenOutput struct {
	Kind      string   `json:"kind" msgpack:"kind"`
	Text      string   `json:"text,omitempty" msgpack:"text,omitempty"`
	Number    *float64 `json:"number,omitempty" msgpack:"number,omitempty"`
	Malformed bool     `json:"malformed,omitempty" msgpack:"malformed,omitempty"`
	Escaped   bool     `json:"escaped,omitempty" msgpack:"escaped,omitempty"`
	Start     uint32   `json:"start" msgpack:"start"`
	End       uint32   `json:"end" msgpack:"end"`
	Line      uint32   `json:"line,omitempty" msgpack:"line,omitempty"`
	Col       uint32   `json:"col,omitempty" msgpack:"col,omitempty"`
}

// TokenStream is one file's token dump.
type TokenStream struct {
	File   string        `json:"file" msgpack:"file"`
	Syntax string        `json:"syntax" msgpack:"syntax"`
	Tokens []TokenOutput `json:"tokens" msgpack:"tokens"`
}

func keepToken(tok token.Token, opts TokenOpts) bool {
	return opts.Trivia || !tok.IsTrivia()
}

// BuildTokenOutput converts tokens up to EOF, dropping trivia unless opts.Trivia.
// Numbers outside JSON's range (NaN, ±Inf) are left out of Number.
func BuildTokenOutput(tokens []token.Token, fs *source.FileSet, opts TokenOpts) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		if !keepToken(tok, opts) {
			continue
		}
		to := TokenOutput{
			Kind:      tok.Kind.Name(),
			Text:      tok.Text(),
			Malformed: tok.Value.Malformed,
			Escaped:   tok.Escaped,
			Start:     tok.Span.Start,
			End:       tok.Span.End,
		}
		if n := tok.Value.Number; tok.Value.IsNumber() && !math.IsNaN(n) && !math.IsInf(n, 0) {
			to.Number = &n
		}
		if opts.Positions && hasFile(fs, tok.Span.File) {
			pos, _ := fs.Resolve(tok.Span)
			to.Line, to.Col = pos.Line, pos.Col
		}
		out = append(out, to)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате:
//
//	  1: Ident           "color" at 1:1-1:6
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, opts TokenOpts) error {
	n := 0
	for _, tok := range tokens {
		if !keepToken(tok, opts) {
			continue
		}
		n++
		if _, err := fmt.Fprintf(w, "%3d: %-15s", n, tok.Kind.Name()); err != nil {
			return err
		}
		switch {
		case tok.Value.IsText():
			fmt.Fprintf(w, " %q", tok.Text())
		case tok.Value.Malformed:
			fmt.Fprint(w, " NaN (malformed)")
		case tok.Value.IsNumber():
			fmt.Fprint(w, " ", strconv.FormatFloat(tok.Value.Number, 'g', -1, 64))
		}
		if tok.Escaped {
			fmt.Fprint(w, " escaped")
		}
		if hasFile(fs, tok.Span.File) {
			start, end := fs.Resolve(tok.Span)
			fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		} else {
			fmt.Fprintf(w, " at %d..%d", tok.Span.Start, tok.Span.End)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet, opts TokenOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokenOutput(tokens, fs, opts))
}

// FormatTokensMsgpack writes stream as a single msgpack value.
func FormatTokensMsgpack(w io.Writer, stream TokenStream) error {
	return msgpack.NewEncoder(w).Encode(stream)
}

// DecodeTokensMsgpack reads one value written by FormatTokensMsgpack.
func DecodeTokensMsgpack(r io.Reader) (TokenStream, error) {
	var stream TokenStream
	err := msgpack.NewDecoder(r).Decode(&stream)
	return stream, err
}
