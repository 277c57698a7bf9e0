package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func record(kind Kind, scope Scope, name string, span, parent uint64) *Event {
	return &Event{
		Time:     time.Now(),
		Seq:      seqCounter.Add(1),
		Kind:     kind,
		Scope:    scope,
		SpanID:   span,
		ParentID: parent,
		Name:     name,
	}
}

func active(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Span is an open begin/end pair. Spans from a disabled tracer are inert.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

// Begin opens a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !active(t, scope) {
		return &Span{}
	}
	s := &Span{tracer: t, id: spanCounter.Add(1), parent: parent, scope: scope, name: name}
	ev := record(KindSpanBegin, scope, name, s.id, parent)
	s.started = ev.Time
	t.Emit(ev)
	return s
}

func (s *Span) live() bool { return s != nil && s.tracer != nil }

// End emits the end event carrying detail and the extras, and returns the
// span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	ev := record(KindSpanEnd, s.scope, s.name, s.id, s.parent)
	ev.Detail, ev.Extra = detail, s.extra
	s.tracer.Emit(ev)
	return ev.Time.Sub(s.started)
}

// WithExtra adds key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID is 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits a standalone event under parent.
func Point(t Tracer, scope Scope, name string, parent uint64, detail string) {
	if !active(t, scope) {
		return
	}
	ev := record(KindPoint, scope, name, 0, parent)
	ev.Detail = detail
	t.Emit(ev)
}
