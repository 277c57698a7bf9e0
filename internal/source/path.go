package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// PathMode selects how file paths appear in diagnostics and token dumps.
type PathMode uint8

const (
	// PathAuto keeps the stored path unless it is a long absolute one.
	PathAuto PathMode = iota
	PathAbsolute
	PathRelative
	PathBasename
)

var pathModeNames = [...]string{
	PathAuto:     "auto",
	PathAbsolute: "absolute",
	PathRelative: "relative",
	PathBasename: "basename",
}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return pathModeNames[PathAuto]
}

// ParsePathMode maps a flag value to a PathMode; unknown names give PathAuto.
func ParsePathMode(s string) PathMode {
	for m, name := range pathModeNames {
		if name == s {
			return PathMode(m)
		}
	}
	return PathAuto
}

// longPathLen: absolute paths at least this long are shortened in PathAuto.
const longPathLen = 40

func isLongAbs(p string) bool {
	return len(p) >= longPathLen && filepath.IsAbs(p)
}

func workDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// normalizePath gives one spelling per path so diffs and goldens match across platforms.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the cleaned absolute form of path.
func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns path relative to baseDir. A path outside baseDir comes
// back absolute instead of as a "../" chain.
func RelativePath(path, baseDir string) (string, error) {
	if baseDir == "" {
		return "", errors.New("empty base directory")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}

func BaseName(path string) string {
	return filepath.Base(path)
}
