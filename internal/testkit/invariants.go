package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"scr/internal/source"
	"scr/internal/token"
)

// CheckTokenInvariants validates a complete token stream for sf:
// 1) the stream ends with exactly one EOF token, at the end of the content
// 2) every span belongs to sf and lies within the content
// 3) spans are contiguous from offset 0, so together they cover the input
// 4) every non-EOF token is non-empty (the cursor always advances)
func CheckTokenInvariants(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	prev := source.PointSpan(sf.ID, 0)
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d (%s): file mismatch: got=%d want=%d", i, tok.Kind.Name(), sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("token %d (%s): span %v outside content [0,%d)", i, tok.Kind.Name(), sp, lenContent)
		}
		if !prev.Adjacent(sp) {
			return fmt.Errorf("token %d (%s): starts at %d, previous token ended at %d", i, tok.Kind.Name(), sp.Start, prev.End)
		}
		last := i == len(tokens)-1
		if tok.Kind == token.EOF && !last {
			return fmt.Errorf("token %d: EOF before the end of the stream", i)
		}
		if tok.Kind != token.EOF && sp.Empty() {
			return fmt.Errorf("token %d (%s): empty span at %d", i, tok.Kind.Name(), sp.Start)
		}
		prev = sp
	}

	if eof := tokens[len(tokens)-1]; eof.Kind != token.EOF {
		return fmt.Errorf("stream does not end with EOF (last is %s)", eof.Kind.Name())
	}
	if prev.End != lenContent {
		return fmt.Errorf("tokens cover [0,%d) but content has %d bytes", prev.End, lenContent)
	}
	return nil
}
