package source

import (
	"slices"
	"strings"
	"sync"
)

// StringID is an index into an Interner; 0 is always "".
type StringID uint32

const NoStringID StringID = 0

// Interner pools the texts the lexer has to own (unescaped identifiers,
// decoded strings) so equal texts share one allocation. One pool is shared
// by all TokenizeDir workers.
type Interner struct {
	mu    sync.RWMutex
	texts []string
	ids   map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		texts: []string{""},
		ids:   map[string]StringID{"": NoStringID},
	}
}

func (in *Interner) find(s string) (StringID, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	id, ok := in.ids[s]
	return id, ok
}

// Intern returns the id of s, adding a private copy on first sight.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.find(s); ok {
		return id
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	// другой воркер мог успеть между RUnlock и Lock
	if id, ok := in.ids[s]; ok {
		return id
	}
	owned := strings.Clone(s)
	id := StringID(len(in.texts)) //nolint:gosec // pool size is bounded by input size
	in.texts = append(in.texts, owned)
	in.ids[owned] = id
	return id
}

// InternString is Intern followed by Lookup: it returns the pooled copy of s.
func (in *Interner) InternString(s string) string {
	id := in.Intern(s)
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.texts[id]
}

// Lookup returns the text for id.
func (in *Interner) Lookup(id StringID) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) >= len(in.texts) {
		return "", false
	}
	return in.texts[id], true
}

// Len counts pooled texts, the reserved "" included.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.texts)
}

// Snapshot copies the pool in id order.
func (in *Interner) Snapshot() []string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return slices.Clone(in.texts)
}
