package diagfmt

import (
	"fmt"

	"scr/internal/source"
)

func hasFile(fs *source.FileSet, id source.FileID) bool {
	return fs != nil && int(id) < fs.Len()
}

func displayPath(fs *source.FileSet, f *source.File, mode source.PathMode) string {
	return f.DisplayPath(mode, fs.BaseDir())
}

// spanLocation renders "path:line:col", or "" when span's file is not in fs.
func spanLocation(fs *source.FileSet, span source.Span, mode source.PathMode) string {
	if !hasFile(fs, span.File) {
		return ""
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", displayPath(fs, fs.Get(span.File), mode), start.Line, start.Col)
}
