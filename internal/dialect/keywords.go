package dialect

import (
	"strings"

	"scr/internal/source"
)

type atRuleSignal struct {
	Score  int
	Reason string
}

// Sass-only at-rules. Shared names such as @media or @import carry no signal.
var atRuleSignals = map[string]atRuleSignal{
	"mixin":    {Score: 6, Reason: "sass at-rule `@mixin`"},
	"include":  {Score: 6, Reason: "sass at-rule `@include`"},
	"extend":   {Score: 4, Reason: "sass at-rule `@extend`"},
	"use":      {Score: 5, Reason: "sass module rule `@use`"},
	"forward":  {Score: 5, Reason: "sass module rule `@forward`"},
	"function": {Score: 5, Reason: "sass at-rule `@function`"},
	"return":   {Score: 4, Reason: "sass at-rule `@return`"},
	"if":       {Score: 3, Reason: "sass control rule `@if`"},
	"else":     {Score: 3, Reason: "sass control rule `@else`"},
	"each":     {Score: 4, Reason: "sass control rule `@each`"},
	"for":      {Score: 3, Reason: "sass control rule `@for`"},
	"while":    {Score: 3, Reason: "sass control rule `@while`"},
	"debug":    {Score: 2, Reason: "sass at-rule `@debug`"},
	"warn":     {Score: 2, Reason: "sass at-rule `@warn`"},
	"error":    {Score: 2, Reason: "sass at-rule `@error`"},
}

// RecordAtRule collects evidence for the name following an `@`.
func RecordAtRule(e *Evidence, name string, span source.Span) {
	if e == nil || name == "" {
		return
	}
	sig, ok := atRuleSignals[strings.ToLower(name)]
	if !ok {
		return
	}
	e.Add(Hint{
		Syntax: Scss,
		Score:  sig.Score,
		Reason: sig.Reason,
		Span:   span,
	})
}
