package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.scss", []byte("hello world"), 0)
	id2 := fs.Add("test.scss", []byte("hello universe"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latestID, exists := fs.Lookup("test.scss")
	if !exists || latestID != id2 {
		t.Fatalf("Lookup = %d,%v want %d", latestID, exists, id2)
	}

	// старая версия остаётся доступной
	if string(fs.Get(id1).Content) != "hello world" {
		t.Errorf("first version lost: %q", fs.Get(id1).Content)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.css", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestLoadStripsBOMAndKeepsCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.css")
	content := []byte{0xEF, 0xBB, 0xBF, 'a', '\r', '\n', 'b'}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if file.Flags&FileHadBOM == 0 {
		t.Error("Expected FileHadBOM flag to be set")
	}
	if string(file.Content) != "a\r\nb" {
		t.Errorf("content = %q, CRLF must be preserved", file.Content)
	}
	if got := file.Line(1); got != "a" {
		t.Errorf("Line(1) = %q", got)
	}
	if got := file.Line(2); got != "b" {
		t.Errorf("Line(2) = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.scss")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()

	// α занимает 2 байта
	id := fs.AddVirtual("test.scss", []byte("α\nβ"))
	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) || end != (LineCol{Line: 1, Col: 2}) {
		t.Errorf("Resolve = %+v..%+v", start, end)
	}
	start, _ = fs.Resolve(Span{File: id, Start: 3, End: 5})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Errorf("Resolve second line = %+v", start)
	}
}

func TestFileSlice(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("s.css", []byte("abc"))
	f := fs.Get(id)
	if got := f.Slice(Span{Start: 1, End: 3}); got != "bc" {
		t.Errorf("Slice = %q", got)
	}
	if got := f.Slice(Span{Start: 2, End: 10}); got != "c" {
		t.Errorf("Slice past end = %q", got)
	}
}

func TestDisplayPath(t *testing.T) {
	f := &File{Path: "styles/main.scss"}
	if got := f.DisplayPath(PathBasename, ""); got != "main.scss" {
		t.Errorf("basename = %q", got)
	}
	if got := f.DisplayPath(PathAuto, ""); got != "styles/main.scss" {
		t.Errorf("auto = %q", got)
	}
	long := &File{Path: "/very/long/absolute/path/to/the/project/styles/main.scss"}
	if got := long.DisplayPath(PathAuto, ""); got != "main.scss" {
		t.Errorf("auto long = %q", got)
	}
	if got := long.DisplayPath(PathRelative, "/very/long/absolute/path/to/the/project"); got != "styles/main.scss" {
		t.Errorf("relative = %q", got)
	}
}

func TestParsePathMode(t *testing.T) {
	for _, m := range []PathMode{PathAuto, PathAbsolute, PathRelative, PathBasename} {
		if got := ParsePathMode(m.String()); got != m {
			t.Errorf("ParsePathMode(%q) = %v", m.String(), got)
		}
	}
	if got := ParsePathMode("weird"); got != PathAuto {
		t.Errorf("unknown mode = %v", got)
	}
}

func TestLineOutOfRange(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.css", []byte("ab")))
	if f.LineCount() != 2 || f.Line(2) != "b" {
		t.Fatalf("LineCount=%d Line(2)=%q", f.LineCount(), f.Line(2))
	}
	if f.Line(0) != "" || f.Line(3) != "" {
		t.Fatal("out of range lines must be empty")
	}
}
