package dialect

import "scr/internal/source"

// Hint is one observation pointing at a dialect, e.g. a `$var` seen in a .css file.
// Hints feed the classifier; only the driver turns them into a diagnostic.
type Hint struct {
	Syntax Syntax
	Score  int
	Reason string
	Span   source.Span
}

// Evidence is the per-file hint log plus running scores per dialect.
// A nil *Evidence ignores everything.
type Evidence struct {
	hints  []Hint
	scores [syntaxCount]int
}

func NewEvidence() *Evidence {
	return &Evidence{hints: make([]Hint, 0, 16)}
}

// Add logs h. Hints with a non-positive score or an unknown dialect are kept
// in the log but do not count towards any score.
func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.hints = append(e.hints, h)
	if h.Score > 0 && h.Syntax < syntaxCount {
		e.scores[h.Syntax] += h.Score
	}
}

// Hints returns the log in observation order.
func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}

// Score is the accumulated score of s.
func (e *Evidence) Score(s Syntax) int {
	if e == nil || s >= syntaxCount {
		return 0
	}
	return e.scores[s]
}

// First finds the earliest hint for s; the driver anchors its diagnostic there.
func (e *Evidence) First(s Syntax) (Hint, bool) {
	for _, h := range e.Hints() {
		if h.Syntax == s {
			return h, true
		}
	}
	return Hint{}, false
}
