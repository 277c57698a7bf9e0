package trace

import "time"

// Kind says whether an event opens a span, closes it, or stands alone.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = []string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string { return nameOf(kindNames, k) }

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one CLI command
	ScopePass                    // lex or classify of one file
	ScopeFile                    // load, cache lookups
)

var scopeNames = []string{ScopeDriver: "driver", ScopePass: "pass", ScopeFile: "file"}

func (s Scope) String() string { return nameOf(scopeNames, s) }

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // глобальный порядок
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 для корня
	Name     string // "tokenize", "lex", "file"...
	Detail   string
	Extra    map[string]string // tokens, diagnostics, syntax
}
