package source

import (
	"testing"
)

func TestPointSpan(t *testing.T) {
	sp := PointSpan(3, 7)
	if !sp.Empty() || sp.File != 3 || sp.Start != 7 {
		t.Fatalf("PointSpan() = %+v", sp)
	}
}

func TestSpan_Adjacent(t *testing.T) {
	a := Span{File: 1, Start: 0, End: 4}
	if !a.Adjacent(Span{File: 1, Start: 4, End: 4}) {
		t.Fatal("EOF span after a token must be adjacent")
	}
	if a.Adjacent(Span{File: 2, Start: 4, End: 5}) || a.Adjacent(Span{File: 1, Start: 5, End: 6}) {
		t.Fatal("gap or other file must not be adjacent")
	}
}

func TestSpan_Cover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("Cover() = %+v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover() across files must keep receiver, got %+v", got)
	}
}

func TestSpan_LenEmptyContains(t *testing.T) {
	sp := Span{Start: 3, End: 5}
	if sp.Len() != 2 || sp.Empty() {
		t.Fatalf("unexpected len/empty for %v", sp)
	}
	if !sp.Contains(3) || !sp.Contains(4) || sp.Contains(5) {
		t.Fatalf("Contains must be half-open for %v", sp)
	}
	if !(Span{Start: 9, End: 9}).Empty() {
		t.Fatalf("zero-length span must be empty")
	}
	if got := sp.String(); got != "0:3-5" {
		t.Fatalf("String() = %q", got)
	}
}
