package token

import (
	"math"
	"strconv"
)

// ValueKind tags the payload carried by a Value.
type ValueKind uint8

const (
	NoValue ValueKind = iota
	TextValue
	NumberValue
)

// Value is the decoded payload of a token.
type Value struct {
	Kind ValueKind
	// Text is the decoded identifier/string text.
	Text string
	// Owned is set when Text was materialized instead of sliced from the source.
	Owned bool
	// Number holds the parsed numeric literal; NaN when Malformed.
	Number float64
	// Malformed marks a numeric literal the float parser rejected.
	Malformed bool
}

// TextOf builds a text value. owned reports whether the text diverged from the source.
func TextOf(s string, owned bool) Value {
	return Value{Kind: TextValue, Text: s, Owned: owned}
}

// NumberOf builds a numeric value.
func NumberOf(f float64) Value {
	return Value{Kind: NumberValue, Number: f}
}

// MalformedNumber is the value of a numeric token whose text failed to parse.
func MalformedNumber() Value {
	return Value{Kind: NumberValue, Number: math.NaN(), Malformed: true}
}

func (v Value) IsNone() bool   { return v.Kind == NoValue }
func (v Value) IsText() bool   { return v.Kind == TextValue }
func (v Value) IsNumber() bool { return v.Kind == NumberValue }

func (v Value) String() string {
	switch v.Kind {
	case TextValue:
		return v.Text
	case NumberValue:
		if v.Malformed {
			return "NaN"
		}
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	default:
		return ""
	}
}
