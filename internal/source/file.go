package source

import (
	"fmt"

	"fortio.org/safecast"
)

// FileID indexes a File inside its FileSet.
type FileID uint32

// FileFlags records how the content of a File was obtained.
type FileFlags uint8

const (
	// FileVirtual: content came from memory (stdin, tests), there is nothing to write back.
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM: a UTF-8 byte order mark was dropped before lexing.
	FileHadBOM
	// FileDecodedUTF16: content was transcoded from UTF-16.
	FileDecodedUTF16
)

// File is one loaded stylesheet.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the offsets of line terminators: \n, \f and a lone \r.
	// For "\r\n" only the \n is recorded.
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (f *File) size() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// Slice returns the text under span, clamped to the content.
func (f *File) Slice(span Span) string {
	limit := f.size()
	start, end := min(span.Start, limit), min(span.End, limit)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// LineCount is the number of lines; content without terminators is one line.
func (f *File) LineCount() int {
	return len(f.LineIdx) + 1
}

// Line returns line n (1-based) without its terminator, "" when out of range.
func (f *File) Line(n uint32) string {
	if n == 0 || int(n) > f.LineCount() {
		return ""
	}
	start := uint32(0)
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end := f.size()
	if int(n) <= len(f.LineIdx) {
		end = f.LineIdx[n-1]
	}
	if start > end {
		return ""
	}
	line := f.Content[start:end]
	// терминатор "\r\n" записан на \n
	if k := len(line); k > 0 && line[k-1] == '\r' {
		line = line[:k-1]
	}
	return string(line)
}

// DisplayPath renders the path of f for output according to mode.
// baseDir only matters for PathRelative; "" means the working directory.
func (f *File) DisplayPath(mode PathMode, baseDir string) string {
	switch mode {
	case PathAbsolute:
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case PathRelative:
		if baseDir == "" {
			baseDir = workDir()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case PathBasename:
		return BaseName(f.Path)
	default:
		if isLongAbs(f.Path) {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
