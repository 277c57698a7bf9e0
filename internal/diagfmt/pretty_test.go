package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"scr/internal/diag"
	"scr/internal/source"
)

func unterminated(t *testing.T) (*source.FileSet, diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/site/styles/x.scss", []byte("a { content: 'abc\n}\n"))
	fs.SetBaseDir("/home/user/site")

	d := diag.NewError(diag.LexUnterminatedString, source.Span{File: fileID, Start: 13, End: 17}, "unterminated string").
		WithFix("insert closing quote", diag.FixEdit{Span: source.Span{File: fileID, Start: 17, End: 17}, NewText: "'"}).
		WithNote(source.Span{File: fileID, Start: 13, End: 14}, "string starts here")
	return fs, d
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs, d := unterminated(t)

	tests := []struct {
		name     string
		mode     source.PathMode
		contains string
	}{
		{"Absolute path", source.PathAbsolute, "/home/user/site/styles/x.scss:1:14"},
		{"Relative path", source.PathRelative, "styles/x.scss:1:14"},
		{"Basename only", source.PathBasename, "x.scss:1:14"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("expected %q in:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "ERROR LEX1010: unterminated string") {
				t.Errorf("missing header in:\n%s", out)
			}
		})
	}
}

func TestPrettyExcerptAndCaret(t *testing.T) {
	fs, d := unterminated(t)
	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{PathMode: source.PathBasename, Context: 1})
	out := buf.String()

	want := "1 | a { content: 'abc\n" +
		"  |              ^~~~\n" +
		"2 | }\n"
	if !strings.Contains(out, want) {
		t.Fatalf("expected excerpt\n%s\ngot:\n%s", want, out)
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("w.css", []byte("日本 x"))
	d := diag.NewError(diag.LexInvalidCharacter, source.Span{File: fileID, Start: 7, End: 8}, "invalid character 'x'").WithChar('x')

	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{})
	out := buf.String()
	if !strings.Contains(out, "\n  |      ^\n") {
		t.Fatalf("caret not aligned to display width:\n%s", out)
	}
	if !strings.Contains(out, "= char: 'x' (U+0078)") {
		t.Fatalf("missing char line:\n%s", out)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs, d := unterminated(t)
	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{
		PathMode:    source.PathBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	out := buf.String()

	for _, want := range []string{
		"note: x.scss:1:14: string starts here",
		"fix #1: insert closing quote",
		`apply="'"`,
		"preview:",
		"- a { content: 'abc",
		"+ a { content: 'abc'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestPrettyLoadErrorHasNoExcerpt(t *testing.T) {
	d := diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: permission denied")
	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, source.NewFileSet(), PrettyOpts{})
	if got := buf.String(); got != "ERROR IO4001: failed to load file: permission denied\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPrettyReason(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("n.css", []byte("1x"))
	d := diag.NewError(diag.LexInvalidNumber, source.Span{File: fileID, Start: 0, End: 1}, "invalid number").WithReason("invalid float")
	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), "= reason: invalid float") {
		t.Fatalf("missing reason:\n%s", buf.String())
	}
}
