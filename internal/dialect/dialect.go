package dialect

import (
	"fmt"
	"strings"
)

// Syntax is the stylesheet dialect a file is written in.
type Syntax uint8

const (
	// Scss is the zero value: files with unknown extensions are treated as SCSS.
	Scss Syntax = iota
	Css
	Sass

	syntaxCount
)

// Default is the dialect used when nothing else is known about a file.
const Default = Scss

func (s Syntax) String() string {
	switch s {
	case Css:
		return "css"
	case Scss:
		return "scss"
	case Sass:
		return "sass"
	default:
		return "unknown"
	}
}

func (s Syntax) GoString() string {
	return fmt.Sprintf("Syntax(%s)", s.String())
}

// Parse converts a dialect name ("css", "scss", "sass") to a Syntax.
func Parse(name string) (Syntax, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "css":
		return Css, nil
	case "scss":
		return Scss, nil
	case "sass":
		return Sass, nil
	default:
		return Default, fmt.Errorf("unknown syntax %q (expected: css|scss|sass)", name)
	}
}

// IsSassFamily reports whether s is one of the Sass dialects.
func (s Syntax) IsSassFamily() bool {
	return s == Scss || s == Sass
}

// AllowsVariables reports whether `$name` scans as a single Variable token.
func (s Syntax) AllowsVariables() bool { return s.IsSassFamily() }

// AllowsComparison reports whether `>=`, `<=`, `!=` and `==` are operators.
func (s Syntax) AllowsComparison() bool { return s.IsSassFamily() }

// AllowsEllipsis reports whether `...` scans as one variadic marker.
func (s Syntax) AllowsEllipsis() bool { return s.IsSassFamily() }

// AllowsInterpolation reports whether `#{` opens an interpolation.
func (s Syntax) AllowsInterpolation() bool { return s.IsSassFamily() }
