package dialect

import (
	"path/filepath"
	"strings"
)

// Classification is what Classify concluded about one file.
type Classification struct {
	Syntax          Syntax
	Score           int // score of Syntax
	TotalScore      int
	Confidence      float64 // Score / TotalScore, 0 when nothing was observed
	ObservedSignals int
}

// Classifier maps file names to dialects and scores collected evidence.
// Extensions overrides the built-in mapping; keys include the leading dot.
type Classifier struct {
	Default    Syntax
	Extensions map[string]Syntax
}

// FromPath returns the dialect for a file name: `.css` is Css, `.sass` is Sass,
// anything else (including `.scss`) is Scss.
func FromPath(path string) Syntax {
	return Classifier{Default: Default}.FromPath(path)
}

// FromPath classifies path using the configured overrides first.
func (c Classifier) FromPath(path string) Syntax {
	ext := strings.ToLower(filepath.Ext(path))
	if s, ok := c.Extensions[ext]; ok {
		return s
	}
	switch ext {
	case ".css":
		return Css
	case ".sass":
		return Sass
	case ".scss":
		return Scss
	default:
		return c.Default
	}
}

// Classify picks the dialect with the highest score. With no positive score
// the answer is Css. Thresholds are left to the caller.
func (Classifier) Classify(e *Evidence) Classification {
	out := Classification{Syntax: Css, ObservedSignals: len(e.Hints())}
	for s := range syntaxCount {
		score := e.Score(s)
		out.TotalScore += score
		if score > out.Score {
			out.Syntax, out.Score = s, score
		}
	}
	if out.TotalScore > 0 {
		out.Confidence = float64(out.Score) / float64(out.TotalScore)
	}
	return out
}
