package testkit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"

	"scr/internal/token"
)

// UpdateEnv rewrites golden files instead of comparing when set to "1".
const UpdateEnv = "SCR_UPDATE_GOLDEN"

// RenderTokens renders one token per line: `Kind start..end value`.
// Text values are quoted, numbers use Go's shortest float form.
func RenderTokens(tokens []token.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%s %d..%d", tok.Kind.Name(), tok.Span.Start, tok.Span.End)
		if v := tok.Value; !v.IsNone() {
			sb.WriteString(" ")
			if v.IsText() {
				fmt.Fprintf(&sb, "%q", v.Text)
			} else {
				sb.WriteString(v.String())
			}
		}
		if tok.Escaped {
			sb.WriteString(" escaped")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Diff returns a line-oriented diff of want and got, or "" when they match.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// CheckGolden compares got with the file at path; with SCR_UPDATE_GOLDEN=1 it
// writes got there instead.
func CheckGolden(t testing.TB, path, got string) {
	t.Helper()
	if os.Getenv(UpdateEnv) == "1" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(got), 0o600); err != nil {
			t.Fatalf("write golden %s: %v", path, err)
		}
		return
	}
	// #nosec G304 -- golden paths come from the test's own testdata
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v (run with %s=1 to create it)", path, err, UpdateEnv)
	}
	if diff := Diff(string(want), got); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", path, diff)
	}
}
