package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"scr/internal/diagfmt"
	"scr/internal/dialect"
	"scr/internal/source"
	"scr/internal/token"
)

func fakeTokens(t *testing.T, fs *source.FileSet, name, src string) []token.Token {
	t.Helper()
	file := fs.Get(fs.AddVirtual(name, []byte(src)))
	end := uint32(len(src))
	// один Ident на весь файл плюс EOF достаточно для проверки форматирования
	return []token.Token{
		{Kind: token.Ident, Span: source.Span{File: file.ID, End: end}, Value: token.TextOf(src, false)},
		{Kind: token.EOF, Span: source.Span{File: file.ID, Start: end, End: end}},
	}
}

func TestWriteTokensJSONDirectory(t *testing.T) {
	fs := source.NewFileSet()
	streams := []fileTokens{
		{path: "a.css", syntax: dialect.Css, tokens: fakeTokens(t, fs, "a.css", "red")},
		{path: "b.scss", syntax: dialect.Scss, tokens: fakeTokens(t, fs, "b.scss", "blue")},
	}
	var buf bytes.Buffer
	s := tokenizeSettings{format: "json", tokens: diagfmt.TokenOpts{Trivia: true}}
	require.NoError(t, writeTokens(&buf, fs, streams, s, true))

	var got []diagfmt.TokenStream
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "a.css", got[0].File)
	require.Equal(t, "css", got[0].Syntax)
	require.Equal(t, "scss", got[1].Syntax)
	require.Equal(t, "blue", got[1].Tokens[0].Text)
	require.Equal(t, "EOF", got[1].Tokens[1].Kind)
}

func TestWriteTokensPrettyHeaders(t *testing.T) {
	fs := source.NewFileSet()
	streams := []fileTokens{
		{path: "a.css", syntax: dialect.Css, tokens: fakeTokens(t, fs, "a.css", "red")},
		{path: "b.sass", syntax: dialect.Sass, tokens: fakeTokens(t, fs, "b.sass", "x")},
	}
	var buf bytes.Buffer
	s := tokenizeSettings{format: "pretty", tokens: diagfmt.TokenOpts{Trivia: true}}
	require.NoError(t, writeTokens(&buf, fs, streams, s, true))
	out := buf.String()
	require.Contains(t, out, "==> a.css (css) <==\n")
	require.Contains(t, out, "\n\n==> b.sass (sass) <==\n")
}

func TestWriteTokensMsgpackStream(t *testing.T) {
	fs := source.NewFileSet()
	streams := []fileTokens{
		{path: "a.css", syntax: dialect.Css, tokens: fakeTokens(t, fs, "a.css", "red")},
		{path: "b.css", syntax: dialect.Css, tokens: fakeTokens(t, fs, "b.css", "x")},
	}
	var buf bytes.Buffer
	s := tokenizeSettings{format: "msgpack", tokens: diagfmt.TokenOpts{Trivia: true}}
	require.NoError(t, writeTokens(&buf, fs, streams, s, true))

	first, err := diagfmt.DecodeTokensMsgpack(&buf)
	require.NoError(t, err)
	require.Equal(t, "a.css", first.File)
	second, err := diagfmt.DecodeTokensMsgpack(&buf)
	require.NoError(t, err)
	require.Equal(t, "b.css", second.File)
}

func TestWriteTokensUnknownFormat(t *testing.T) {
	err := writeTokens(&bytes.Buffer{}, source.NewFileSet(), nil, tokenizeSettings{format: "yaml"}, false)
	require.Error(t, err)
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in   string
		want switchMode
		ok   bool
	}{
		{"", switchAuto, true},
		{"AUTO", switchAuto, true},
		{" on ", switchOn, true},
		{"never", switchOff, true},
		{"sometimes", switchAuto, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSwitch("ui", tt.in)
			if !tt.ok {
				require.ErrorContains(t, err, "--ui")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
	require.True(t, switchOn.resolve(func() bool { return false }))
	require.False(t, switchOff.resolve(func() bool { return true }))
	require.True(t, switchAuto.resolve(func() bool { return true }))
}

func TestExitErrorIsRecognised(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", exitError{msg: "2 errors"})
	var exit exitError
	require.True(t, errors.As(err, &exit))
	require.Equal(t, "2 errors", exit.Error())
}
