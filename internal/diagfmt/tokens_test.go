package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scr/internal/diag"
	"scr/internal/dialect"
	"scr/internal/driver"
	"scr/internal/source"
)

func lex(t *testing.T, src string, syntax dialect.Syntax) (*source.FileSet, []diag.Diagnostic, TokenStream) {
	t.Helper()
	fs := source.NewFileSet()
	fs.AddVirtual("t.scss", []byte(src))
	tokens, diags := driver.TokenizeSource("t.scss", []byte(src), syntax)
	return fs, diags, TokenStream{
		File:   "t.scss",
		Syntax: syntax.String(),
		Tokens: BuildTokenOutput(tokens, fs, TokenOpts{Trivia: true, Positions: true}),
	}
}

func TestFormatTokensPretty(t *testing.T) {
	src := "a { w: 1.5px }"
	fs := source.NewFileSet()
	fs.AddVirtual("t.css", []byte(src))
	tokens, _ := driver.TokenizeSource("t.css", []byte(src), dialect.Css)

	var buf bytes.Buffer
	require.NoError(t, FormatTokensPretty(&buf, tokens, fs, TokenOpts{}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8) // a { w : 1.5 px } EOF
	require.Equal(t, `  1: Ident           "a" at 1:1-1:2`, lines[0])
	require.Contains(t, lines[4], "Float")
	require.Contains(t, lines[4], " 1.5 at 1:8-1:11")
	require.Contains(t, lines[7], "EOF")

	buf.Reset()
	require.NoError(t, FormatTokensPretty(&buf, tokens, fs, TokenOpts{Trivia: true}))
	require.Contains(t, buf.String(), "Whitespace")
}

func TestFormatTokensJSON(t *testing.T) {
	src := `$x: "\41 b" 1e`
	fs := source.NewFileSet()
	fs.AddVirtual("t.scss", []byte(src))
	tokens, _ := driver.TokenizeSource("t.scss", []byte(src), dialect.Scss)

	var buf bytes.Buffer
	require.NoError(t, FormatTokensJSON(&buf, tokens, fs, TokenOpts{Positions: true}))

	var out []TokenOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "Variable", out[0].Kind)
	require.Equal(t, "x", out[0].Text)
	require.Equal(t, uint32(1), out[0].Line)

	require.Equal(t, "Str", out[2].Kind)
	require.Equal(t, "Ab", out[2].Text)
	require.True(t, out[2].Escaped)

	require.Equal(t, "Number", out[3].Kind)
	require.NotNil(t, out[3].Number)
	require.InDelta(t, 1.0, *out[3].Number, 0)
	require.Equal(t, "EOF", out[len(out)-1].Kind)
}

func TestFormatTokensMsgpackRoundTrip(t *testing.T) {
	_, _, stream := lex(t, "a{}//c", dialect.Scss)

	var buf bytes.Buffer
	require.NoError(t, FormatTokensMsgpack(&buf, stream))
	back, err := DecodeTokensMsgpack(&buf)
	require.NoError(t, err)
	require.Equal(t, stream.File, back.File)
	require.Equal(t, "scss", back.Syntax)
	require.Len(t, back.Tokens, len(stream.Tokens))
	require.Equal(t, "LineComment", back.Tokens[3].Kind)
}

func TestJSONDiagnostics(t *testing.T) {
	fs, diags, _ := lex(t, "a { b: 'x", dialect.Scss)
	require.Len(t, diags, 1)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, diags, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
		PathMode:         source.PathBasename,
	}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 1, out.Count)
	d := out.Diagnostics[0]
	require.Equal(t, "ERROR", d.Severity)
	require.Equal(t, "LEX1010", d.Code)
	require.Equal(t, "t.scss", d.Location.File)
	require.Equal(t, uint32(1), d.Location.StartLine)
	require.Equal(t, uint32(7), d.Location.StartByte)
	require.NotEmpty(t, d.Fixes)
	require.Equal(t, "'", d.Fixes[0].Edits[0].NewText)
	require.Equal(t, []string{"a { b: 'x'"}, d.Fixes[0].Edits[0].AfterLines)
}

func TestJSONMaxAndCharacter(t *testing.T) {
	fs, diags, _ := lex(t, "a ` b ` c", dialect.Css)
	require.Len(t, diags, 2)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, diags, fs, JSONOpts{Max: 1}))
	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 1, out.Count)
	require.Equal(t, "`", out.Diagnostics[0].Char)
}

func TestSarif(t *testing.T) {
	fs, diags, _ := lex(t, "a ` b ` 'c", dialect.Css)
	var buf bytes.Buffer
	require.NoError(t, Sarif(&buf, diags, fs, SarifRunMeta{ToolName: "scr", ToolVersion: "test", InvocationArgs: []string{"tokenize"}}))

	var log map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	require.Equal(t, "2.1.0", log["version"])
	runs := log["runs"].([]any)
	run := runs[0].(map[string]any)
	results := run["results"].([]any)
	require.Len(t, results, 3)
	rules := run["tool"].(map[string]any)["driver"].(map[string]any)["rules"].([]any)
	require.Len(t, rules, 2) // invalid character + unterminated string
	first := results[0].(map[string]any)
	require.Equal(t, "error", first["level"])
	require.Equal(t, "LEX1004", first["ruleId"])
}

func TestSummary(t *testing.T) {
	var s Summary
	s.Add(10, nil)
	s.Add(5, []diag.Diagnostic{
		{Severity: diag.SevError, Code: diag.LexInvalidCharacter},
		{Severity: diag.SevWarning, Code: diag.LexInvalidCharacter},
		{Severity: diag.SevInfo, Code: diag.LexDialectHint},
	})
	s.Add(0, []diag.Diagnostic{{Severity: diag.SevError, Code: diag.IOLoadFileError}})
	s.Elapsed = 1500 * time.Microsecond

	var buf bytes.Buffer
	require.NoError(t, FormatSummary(&buf, s, false))
	require.Equal(t, "✘ 3 files · 15 tokens · 2 errors · 1 warning · 1 hint · 1 unreadable (2ms)\n", buf.String())

	buf.Reset()
	require.NoError(t, FormatSummary(&buf, Summary{Files: 1, Tokens: 1}, false))
	require.Equal(t, "✔ 1 file · 1 token · 0 errors · 0 warnings\n", buf.String())

	buf.Reset()
	require.NoError(t, FormatSummary(&buf, Summary{Files: 1, Errors: 1, Suppressed: 4}, false))
	require.Equal(t, "✘ 1 file · 0 tokens · 1 error · 0 warnings · 4 suppressed\n", buf.String())
}
