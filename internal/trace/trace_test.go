package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"off": LevelOff, "ERROR": LevelError, "phase": LevelPhase,
		"detail": LevelDetail, "debug": LevelDebug, "": LevelOff,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Fatal("phase level must skip file scope")
	}
	if !LevelPhase.ShouldEmit(ScopePass) {
		t.Fatal("phase level must include pass scope")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) {
		t.Fatal("detail level must include file scope")
	}
	if LevelOff.ShouldEmit(ScopeDriver) {
		t.Fatal("off emits nothing")
	}
}

func TestStreamTracerSpan(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	root := Begin(tr, ScopeDriver, "tokenize", 0)
	child := Begin(tr, ScopePass, "lex", root.ID())
	child.WithExtra("tokens", "12").WithExtra("diagnostics", "0").End("a.scss")
	Begin(tr, ScopeFile, "file:a.scss", child.ID()).End("")
	root.End("")

	out := buf.String()
	if got := strings.Count(out, "\n"); got != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "← lex (a.scss) {diagnostics=0, tokens=12}") {
		t.Fatalf("missing lex end event:\n%s", out)
	}
	if strings.Contains(out, "file:a.scss") {
		t.Fatalf("file scope leaked at phase level:\n%s", out)
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeFile, "load", 0, "x.css")
	line := buf.String()
	if !strings.HasPrefix(line, "{") || !strings.Contains(line, `"kind":"point"`) || !strings.Contains(line, `"detail":"x.css"`) {
		t.Fatalf("unexpected ndjson: %q", line)
	}
}

func TestRingWrap(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeFile, name, 0, "")
	}
	got := r.Snapshot()
	if len(got) != 3 {
		t.Fatalf("snapshot len = %d", len(got))
	}
	for i, want := range []string{"c", "d", "e"} {
		if got[i].Name != want {
			t.Fatalf("snapshot[%d] = %q, want %q", i, got[i].Name, want)
		}
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestNewModes(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off: %v %v", tr, err)
	}

	tr, err = New(Config{Level: LevelError, Mode: ModeStream})
	if err != nil {
		t.Fatal(err)
	}
	if RingOf(tr) == nil {
		t.Fatal("error level must record into a ring")
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "tokenize", 0).End("")
	if buf.Len() == 0 {
		t.Fatal("stream half wrote nothing")
	}
	if ring := RingOf(tr); ring == nil || len(ring.Snapshot()) != 2 {
		t.Fatal("ring half missing events")
	}
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	r := NewRingTracer(8, LevelDebug)
	ctx = WithTracer(ctx, r)
	span := Begin(FromContext(ctx), ScopeDriver, "root", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx).SpanID != span.ID() {
		t.Fatal("span id not propagated")
	}
}

func TestDisabledSpanIsInert(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "x", 0)
	if s.ID() != 0 {
		t.Fatal("nop span must have zero id")
	}
	if s.WithExtra("k", "v").End("") != 0 {
		t.Fatal("nop span must report zero duration")
	}
}

func TestEnumNames(t *testing.T) {
	if ScopePass.String() != "pass" || Kind(9).String() != "unknown" {
		t.Fatalf("names: %s %s", ScopePass, Kind(9))
	}
	if m, err := ParseMode("BOTH"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode: %v %v", m, err)
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat: %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if formatForPath("out.jsonl") != FormatNDJSON || formatForPath("out.log") != FormatText {
		t.Fatal("format must follow the output extension")
	}
}

func TestRingBeforeWrap(t *testing.T) {
	r := NewRingTracer(4, LevelDebug)
	Point(r, ScopeFile, "a", 0, "")
	Point(r, ScopeFile, "b", 0, "")
	got := r.Snapshot()
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "b" {
		t.Fatalf("snapshot = %+v", got)
	}
}
