package source

import "fmt"

// Span is a half-open byte range [Start, End) inside one file.
// Token spans of one file tile it without gaps; EOF is the empty span at len.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// PointSpan is the empty span at off, used for insertions and missing input.
func PointSpan(file FileID, off uint32) Span {
	return Span{File: file, Start: off, End: off}
}

func (s Span) Empty() bool { return s.Start == s.End }

func (s Span) Len() uint32 { return s.End - s.Start }

// String formats as "file:start-end".
func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off < s.End
}

// Cover returns the smallest span holding both; spans of different files
// leave the receiver unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	s.Start = min(s.Start, other.Start)
	s.End = max(s.End, other.End)
	return s
}

// Adjacent reports whether other starts exactly where s ends.
func (s Span) Adjacent(other Span) bool {
	return s.File == other.File && s.End == other.Start
}
