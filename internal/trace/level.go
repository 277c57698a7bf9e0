package trace

import "fmt"

// Level controls how much gets recorded.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // ring only, dumped when a file panics
	LevelPhase        // command and per-file lex/classify passes
	LevelDetail       // plus file loads, cache hits
	LevelDebug
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string { return nameOf(levelNames, l) }

// ParseLevel accepts the names above; "" means off.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelOff, nil
	}
	if l, ok := parseName[Level](levelNames, s); ok {
		return l, nil
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ShouldEmit reports whether events of scope are recorded at level l.
// Phase keeps only coarse scopes; error keeps everything, since the ring
// is only useful with full context.
func (l Level) ShouldEmit(scope Scope) bool {
	switch {
	case l == LevelOff:
		return false
	case l == LevelPhase:
		return scope <= ScopePass
	default:
		return true
	}
}
