package diag

import (
	"slices"
	"sync"
)

// Bag collects the diagnostics of one file. Guarded by a mutex so TokenizeDir
// workers and the dialect classifier can report into it concurrently.
//
// Entries are never removed or rewritten. Once Drain has run the bag is
// consumed: it rejects new entries and Drain returns nil.
type Bag struct {
	mu       sync.Mutex
	items    []Diagnostic
	limit    int
	dropped  int
	consumed bool
}

// NewBag creates a bag holding at most limit entries; limit < 0 acts as 0.
func NewBag(limit int) *Bag {
	limit = max(limit, 0)
	return &Bag{limit: limit, items: make([]Diagnostic, 0, min(limit, 64))}
}

// Add appends d. It reports false when the bag is full or already drained.
func (b *Bag) Add(d Diagnostic) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case b.consumed:
		return false
	case len(b.items) >= b.limit:
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Dropped counts entries rejected because the limit was reached.
func (b *Bag) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// AddDropped records n entries rejected elsewhere, e.g. by a cached run.
func (b *Bag) AddDropped(n int) {
	if n <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dropped += n
}

// HasErrors: есть ли хоть одна ошибка.
func (b *Bag) HasErrors() bool { return b.worst() >= SevError }

// HasWarnings: есть ли предупреждение или ошибка.
func (b *Bag) HasWarnings() bool { return b.worst() >= SevWarning }

func (b *Bag) worst() Severity {
	b.mu.Lock()
	defer b.mu.Unlock()
	w := Severity(0)
	for _, d := range b.items {
		w = max(w, d.Severity)
	}
	return w
}

// Items copies the entries in insertion order without consuming the bag.
func (b *Bag) Items() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.items)
}

// Drain hands out the entries exactly once.
func (b *Bag) Drain() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.consumed {
		return nil
	}
	b.consumed = true
	out := b.items
	b.items = nil
	return out
}

// Consumed reports whether Drain has been called.
func (b *Bag) Consumed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consumed
}
