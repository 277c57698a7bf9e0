package driver

import (
	"scr/internal/dialect"
	"scr/internal/source"
)

// DefaultMaxDiagnostics caps a file's bag when Options leaves it at zero.
const DefaultMaxDiagnostics = 100

// hintThreshold is the evidence score a .css file needs before the driver
// suggests that it is really scss.
const hintThreshold = 5

// Options configures Tokenize and TokenizeDir.
type Options struct {
	MaxDiagnostics int
	// Classifier maps paths to dialects; zero value uses the built-in table.
	Classifier dialect.Classifier
	// ForceSyntax lexes every file as Syntax, ignoring the extension.
	ForceSyntax bool
	Syntax      dialect.Syntax
	// Interner pools owned token text. TokenizeDir creates one if nil.
	Interner *source.Interner
	// Hints enables LexDialectHint for css files that contain sass constructs.
	Hints bool
	// Jobs bounds TokenizeDir workers; <= 0 means GOMAXPROCS.
	Jobs     int
	Progress ProgressObserver
	// Cache, если задан, хранит токены и диагностики по хешу содержимого.
	Cache *DiskCache
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) syntaxFor(path string) dialect.Syntax {
	if o.ForceSyntax {
		return o.Syntax
	}
	return o.Classifier.FromPath(path)
}
