package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scr/internal/diag"
	"scr/internal/driver"
	"scr/internal/source"
)

func loadFile(t *testing.T, content string) (*source.FileSet, *source.File) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.scss")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return fs, fs.Get(id)
}

func insertFix(file source.FileID, code diag.Code, at uint32, text string) diag.Diagnostic {
	span := source.Span{File: file, Start: at, End: at}
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  code.Title(),
		Primary:  span,
		Fixes:    []diag.Fix{{Title: "insert " + text, Edits: []diag.FixEdit{{Span: span, NewText: text}}}},
	}
}

func TestApplyAllWritesFile(t *testing.T) {
	fs, file := loadFile(t, "a: 'x\nb: /* c")
	items := []diag.Diagnostic{
		insertFix(file.ID, diag.LexUnterminatedBlockComment, 13, "*/"),
		insertFix(file.ID, diag.LexUnterminatedString, 5, "'"),
	}

	res, err := Apply(fs, items, ApplyOptions{Mode: ApplyModeAll, Write: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 2 || len(res.Skipped) != 0 {
		t.Fatalf("applied=%d skipped=%d", len(res.Applied), len(res.Skipped))
	}
	// кандидаты сортируются по позиции
	if res.Applied[0].Code != diag.LexUnterminatedString {
		t.Fatalf("first applied fix = %v", res.Applied[0].Code)
	}
	want := "a: 'x'\nb: /* c*/"
	if len(res.Changes) != 1 || string(res.Changes[0].After) != want {
		t.Fatalf("unexpected changes %+v", res.Changes)
	}
	got, err := os.ReadFile(file.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != want {
		t.Fatalf("file content %q, want %q", got, want)
	}
}

func TestApplyOnceWithoutWrite(t *testing.T) {
	fs, file := loadFile(t, "'a\n'b")
	items := []diag.Diagnostic{
		insertFix(file.ID, diag.LexUnterminatedString, 2, "'"),
		insertFix(file.ID, diag.LexUnterminatedString, 5, "'"),
	}
	res, err := Apply(fs, items, ApplyOptions{Mode: ApplyModeOnce})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if string(res.Changes[0].After) != "'a'\n'b" {
		t.Fatalf("after = %q", res.Changes[0].After)
	}
	disk, _ := os.ReadFile(file.Path)
	if string(disk) != "'a\n'b" {
		t.Fatalf("file must stay untouched without Write, got %q", disk)
	}
}

func TestApplyByCode(t *testing.T) {
	fs, file := loadFile(t, "'a /* b")
	items := []diag.Diagnostic{
		insertFix(file.ID, diag.LexUnterminatedString, 7, "'"),
		insertFix(file.ID, diag.LexUnterminatedBlockComment, 7, "*/"),
	}
	res, err := Apply(fs, items, ApplyOptions{Mode: ApplyModeCode, Code: diag.LexUnterminatedBlockComment})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("applied %+v", res.Applied)
	}
}

func TestApplySkipsDuplicatesAndConflicts(t *testing.T) {
	fs, file := loadFile(t, "abcdef")
	dup := insertFix(file.ID, diag.LexUnterminatedString, 5, "'")
	inside := insertFix(file.ID, diag.LexUnterminatedString, 2, "'")
	replace := diag.Diagnostic{
		Code:    diag.LexInvalidCharacter,
		Primary: source.Span{File: file.ID, Start: 1, End: 4},
		Fixes: []diag.Fix{{Title: "replace", Edits: []diag.FixEdit{
			{Span: source.Span{File: file.ID, Start: 1, End: 4}, NewText: "X"},
		}}},
	}
	res, err := Apply(fs, []diag.Diagnostic{dup, inside, dup, replace}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 2 {
		t.Fatalf("applied %+v", res.Applied)
	}
	reasons := map[string]bool{}
	for _, s := range res.Skipped {
		reasons[s.Reason] = true
	}
	if len(res.Skipped) != 2 || !reasons["duplicate fix"] {
		t.Fatalf("skipped %+v", res.Skipped)
	}
	// replace [1,4) идёт первым по позиции, вставка в 2 с ним конфликтует
	if res.Applied[0].Title != "replace" || string(res.Changes[0].After) != "aXe'f" {
		t.Fatalf("applied=%+v after=%q", res.Applied, res.Changes[0].After)
	}
}

func TestApplyVirtualFileSkipped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("v.scss", []byte("'x"))
	_, err := Apply(fs, []diag.Diagnostic{insertFix(id, diag.LexUnterminatedString, 2, "'")}, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
}

func TestApplyNoFixes(t *testing.T) {
	_, err := Apply(source.NewFileSet(), nil, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
}

func TestApplyLexerFixesRoundTrip(t *testing.T) {
	_, file := loadFile(t, "a { content: 'open\n} /* tail")
	res, err := driver.Tokenize(t.Context(), file.Path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	fixed, err := Apply(res.FileSet, res.Bag.Drain(), ApplyOptions{Mode: ApplyModeAll, Write: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(fixed.Applied) != 2 {
		t.Fatalf("applied %+v", fixed.Applied)
	}

	again, err := driver.Tokenize(t.Context(), file.Path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if again.Bag.HasErrors() {
		t.Fatalf("fixed file still has errors: %+v", again.Bag.Items())
	}
}
