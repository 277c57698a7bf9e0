package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"scr/internal/diag"
	"scr/internal/dialect"
	"scr/internal/source"
	"scr/internal/token"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// CacheKey identifies one lexing of one file content.
type CacheKey [sha256.Size]byte

// DiskCache хранит результаты лексинга по хешу содержимого на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the on-disk form of a lexed file. Spans are stored without
// FileID and rebound to the file they are loaded for.
type DiskPayload struct {
	Schema uint16

	Syntax      uint8
	Tokens      []cachedToken
	Diagnostics []cachedDiagnostic
	Dropped     int // diagnostics cut off by the bag limit

	Dialect dialect.Classification
}

type cachedToken struct {
	Kind      uint8
	Start     uint32
	End       uint32
	Escaped   bool
	ValueKind uint8
	Text      string
	Owned     bool
	Number    float64
	Malformed bool
}

type cachedNote struct {
	Start, End uint32
	Msg        string
}

type cachedFix struct {
	Title string
	Edits []cachedNote // Msg = NewText
}

type cachedDiagnostic struct {
	Severity   uint8
	Code       uint16
	Message    string
	Start, End uint32
	Char       rune
	Reason     string
	Notes      []cachedNote
	Fixes      []cachedFix
}

// OpenDiskCache opens (creating if needed) a cache under $XDG_CACHE_HOME/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// KeyFor mixes everything that changes the lexer's output for file.
func KeyFor(file *source.File, syntax dialect.Syntax, opts Options) CacheKey {
	h := sha256.New()
	var hdr [12]byte
	binary.LittleEndian.PutUint16(hdr[0:], diskCacheSchemaVersion)
	hdr[2] = byte(syntax)
	if opts.Hints {
		hdr[3] = 1
	}
	binary.LittleEndian.PutUint64(hdr[4:], uint64(opts.maxDiagnostics())) //nolint:gosec // positive by construction
	h.Write(hdr[:])
	h.Write(file.Hash[:])
	var key CacheKey
	copy(key[:], h.Sum(nil))
	return key
}

func (c *DiskCache) pathFor(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не держать тысячи файлов в одном
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key CacheKey, payload *DiskPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // после Rename файла уже нет

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads a payload; a missing entry or an older schema is a miss.
func (c *DiskCache) Get(key CacheKey, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close() //nolint:errcheck

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func toDiskPayload(syntax dialect.Syntax, tokens []token.Token, diags []diag.Diagnostic, dropped int, cls dialect.Classification) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Syntax:      uint8(syntax),
		Tokens:      make([]cachedToken, len(tokens)),
		Diagnostics: make([]cachedDiagnostic, len(diags)),
		Dropped:     dropped,
		Dialect:     cls,
	}
	for i, tok := range tokens {
		payload.Tokens[i] = cachedToken{
			Kind:      uint8(tok.Kind),
			Start:     tok.Span.Start,
			End:       tok.Span.End,
			Escaped:   tok.Escaped,
			ValueKind: uint8(tok.Value.Kind),
			Text:      tok.Value.Text,
			Owned:     tok.Value.Owned,
			Number:    tok.Value.Number,
			Malformed: tok.Value.Malformed,
		}
	}
	for i, d := range diags {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Char:     d.Char,
			Reason:   d.Reason,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, fix := range d.Fixes {
			cf := cachedFix{Title: fix.Title}
			for _, e := range fix.Edits {
				cf.Edits = append(cf.Edits, cachedNote{Start: e.Span.Start, End: e.Span.End, Msg: e.NewText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		payload.Diagnostics[i] = cd
	}
	return payload
}

// fromDiskPayload rebinds cached spans to file and refills bag.
func fromDiskPayload(payload *DiskPayload, file source.FileID, bag *diag.Bag, interner *source.Interner) []token.Token {
	span := func(start, end uint32) source.Span {
		return source.Span{File: file, Start: start, End: end}
	}

	tokens := make([]token.Token, len(payload.Tokens))
	for i, ct := range payload.Tokens {
		text := ct.Text
		if ct.Owned && interner != nil {
			text = interner.InternString(text)
		}
		tokens[i] = token.Token{
			Kind:    token.Kind(ct.Kind),
			Span:    span(ct.Start, ct.End),
			Escaped: ct.Escaped,
			Value: token.Value{
				Kind:      token.ValueKind(ct.ValueKind),
				Text:      text,
				Owned:     ct.Owned,
				Number:    ct.Number,
				Malformed: ct.Malformed,
			},
		}
	}

	for _, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), span(cd.Start, cd.End), cd.Message)
		d.Char = cd.Char
		d.Reason = cd.Reason
		for _, n := range cd.Notes {
			d = d.WithNote(span(n.Start, n.End), n.Msg)
		}
		for _, cf := range cd.Fixes {
			edits := make([]diag.FixEdit, 0, len(cf.Edits))
			for _, e := range cf.Edits {
				edits = append(edits, diag.FixEdit{Span: span(e.Start, e.End), NewText: e.Msg})
			}
			d = d.WithFix(cf.Title, edits...)
		}
		bag.Add(d)
	}
	bag.AddDropped(payload.Dropped)
	return tokens
}
