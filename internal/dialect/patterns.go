package dialect

import (
	"scr/internal/token"
)

// ObserveTokenPair records token-pattern evidence, if any, using a sliding 2-token
// window. The caller is responsible for feeding tokens in source order.
func ObserveTokenPair(e *Evidence, prev, tok token.Token) {
	if e == nil {
		return
	}

	adjacent := prev.Span.Adjacent(tok.Span)

	// $name lexed under plain CSS rules
	if prev.Kind == token.Dollar && tok.Kind == token.Ident && adjacent {
		e.Add(Hint{
			Syntax: Scss,
			Score:  5,
			Reason: "sass variable `$" + tok.Text() + "`",
			Span:   prev.Span.Cover(tok.Span),
		})
	}

	// #{...} interpolation lexed under plain CSS rules
	if prev.Kind == token.Pound && tok.Kind == token.LBrace && adjacent {
		e.Add(Hint{
			Syntax: Scss,
			Score:  6,
			Reason: "sass interpolation `#{...}`",
			Span:   prev.Span.Cover(tok.Span),
		})
	}

	if prev.Kind == token.At && tok.Kind == token.Ident && adjacent {
		RecordAtRule(e, tok.Text(), prev.Span.Cover(tok.Span))
	}
}

// ObserveToken records evidence carried by a single token.
func ObserveToken(e *Evidence, tok token.Token) {
	if e == nil {
		return
	}
	switch tok.Kind {
	case token.LineComment:
		e.Add(Hint{Syntax: Scss, Score: 2, Reason: "`//` line comment", Span: tok.Span})
	case token.Variable:
		e.Add(Hint{Syntax: Scss, Score: 5, Reason: "sass variable `$" + tok.Text() + "`", Span: tok.Span})
	case token.HashLBrace:
		e.Add(Hint{Syntax: Scss, Score: 6, Reason: "sass interpolation `#{...}`", Span: tok.Span})
	case token.EqEq, token.BangEq:
		e.Add(Hint{Syntax: Scss, Score: 3, Reason: "sass comparison `" + tok.Kind.String() + "`", Span: tok.Span})
	case token.DotDotDot:
		e.Add(Hint{Syntax: Scss, Score: 3, Reason: "sass rest argument `...`", Span: tok.Span})
	}
}

// Observer feeds a token stream into Evidence, remembering the previous significant token.
type Observer struct {
	e    *Evidence
	prev token.Token
	seen bool
}

// NewObserver wraps e. A nil Evidence yields an observer that records nothing.
func NewObserver(e *Evidence) *Observer {
	return &Observer{e: e}
}

// Observe records evidence for tok and for the pair it forms with the previous token.
func (o *Observer) Observe(tok token.Token) {
	if o == nil || o.e == nil {
		return
	}
	ObserveToken(o.e, tok)
	if o.seen {
		ObserveTokenPair(o.e, o.prev, tok)
	}
	o.prev, o.seen = tok, true
}

func (o *Observer) Evidence() *Evidence {
	if o == nil {
		return nil
	}
	return o.e
}
