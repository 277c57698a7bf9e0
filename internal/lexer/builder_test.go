package lexer

import "testing"

func TestBuilderBorrowsUntilEscape(t *testing.T) {
	src := `ab\63 d`
	b := newTextBuilder(0)
	b.pushMatching("a")
	b.pushMatching("b")
	if text, owned := b.finish(src, 2); text != "ab" || owned {
		t.Fatalf("borrowed finish = %q owned=%v", text, owned)
	}
	if b.hasEscape() {
		t.Fatalf("no escape yet")
	}

	b.forceEscape(src, 2)
	b.pushIdentEscape('c', false)
	b.pushMatching("d")
	text, owned := b.finish(src, uint32(len(src)))
	if text != "abcd" || !owned || !b.hasEscape() {
		t.Fatalf("owned finish = %q owned=%v", text, owned)
	}
}

func TestPushIdentEscape(t *testing.T) {
	cases := []struct {
		c       rune
		atStart bool
		want    string
	}{
		{'a', true, "a"},
		{'1', true, `\31 `},
		{'1', false, "1"},
		{'-', true, `\-`},
		{'-', false, "-"},
		{0x01, false, `\1 `},
		{0x1f, true, `\1f `},
		{0x7f, false, `\7f `},
		{' ', false, `\ `},
		{'é', true, "é"},
	}
	for _, tc := range cases {
		b := newTextBuilder(0)
		b.forceEscape("", 0)
		b.pushIdentEscape(tc.c, tc.atStart)
		if got, _ := b.finish("", 0); got != tc.want {
			t.Errorf("pushIdentEscape(%q, %v) = %q, want %q", tc.c, tc.atStart, got, tc.want)
		}
	}
}

func TestBuilderKeepsRawBytesWhenOwned(t *testing.T) {
	src := "\xff\\41"
	b := newTextBuilder(0)
	b.pushMatching(src[:1])
	b.forceEscape(src, 1)
	b.pushIdentEscape('A', false)
	if text, _ := b.finish(src, uint32(len(src))); text != "\xffA" {
		t.Fatalf("owned finish = %q, want raw byte kept", text)
	}
}
