package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns the stylesheets of one run and maps spans back to line/col.
// Re-adding a path creates a new FileID; older versions stay readable.
type FileSet struct {
	files   []File
	latest  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return NewFileSetAt("")
}

// NewFileSetAt creates a FileSet whose relative paths are computed against dir.
func NewFileSetAt(dir string) *FileSet {
	return &FileSet{latest: make(map[string]FileID), baseDir: dir}
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir is the directory relative paths are shown against; falls back to the
// working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	return workDir()
}

func (fs *FileSet) Len() int { return len(fs.files) }

// Get returns the file for id. The pointer is valid until the next Add.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// Lookup returns the newest FileID registered for path.
func (fs *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

// Add registers content verbatim. Hash and the line index are computed here.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	id := FileID(n)
	key := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    key,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.latest[key] = id
	return id
}

// AddVirtual registers in-memory content with FileVirtual set.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// AddBytes decodes UTF-16 input and drops a UTF-8 BOM, then calls Add.
// Newlines are kept as-is: the lexer handles \r, \r\n and \f itself.
func (fs *FileSet) AddBytes(path string, content []byte) (FileID, error) {
	var flags FileFlags
	content, utf16, err := decodeUTF16(content)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if utf16 {
		flags |= FileDecodedUTF16
	}
	if content, ok := removeBOM(content); ok {
		return fs.Add(path, content, flags|FileHadBOM), nil
	}
	return fs.Add(path, content, flags), nil
}

// Load reads path from disk and passes it through AddBytes.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path comes from the command line or a directory walk
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fs.AddBytes(path, content)
}

// Resolve converts both ends of span to line/col.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	idx := fs.files[span.File].LineIdx
	return toLineCol(idx, span.Start), toLineCol(idx, span.End)
}
