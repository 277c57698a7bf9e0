// Package fix applies the text edits attached to lexer diagnostics.
package fix

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"scr/internal/diag"
	"scr/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first fix in file/offset order.
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	// ApplyModeCode applies every fix whose diagnostic has ApplyOptions.Code.
	ApplyModeCode
)

type ApplyOptions struct {
	Mode ApplyMode
	Code diag.Code
	// Write stores the results on disk; otherwise only FileChange.After is filled.
	Write bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title     string
	Code      diag.Code
	Message   string
	Path      string
	EditCount int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	Title  string
	Code   diag.Code
	Reason string
}

// FileChange is one rewritten file.
type FileChange struct {
	File      source.FileID
	Path      string
	Before    []byte
	After     []byte
	EditCount int
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Changes []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts
// and applies them to the file contents. Edits are in original-file offsets;
// a fix whose edits overlap an already accepted edit is skipped whole.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, errors.New("fix: FileSet is nil")
	}

	candidates := gatherCandidates(diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)
	selected := selectCandidates(candidates, opts)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	accepted := make(map[source.FileID][]diag.FixEdit)
	baseDir := fs.BaseDir()
	for _, cand := range selected {
		if reason := checkCandidate(fs, cand, accepted); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{Title: cand.fix.Title, Code: cand.diag.Code, Reason: reason})
			continue
		}
		for _, e := range cand.fix.Edits {
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
		}
		path := ""
		if int(cand.diag.Primary.File) < fs.Len() {
			path = fs.Get(cand.diag.Primary.File).DisplayPath(source.PathRelative, baseDir)
		}
		result.Applied = append(result.Applied, AppliedFix{
			Title:     cand.fix.Title,
			Code:      cand.diag.Code,
			Message:   cand.diag.Message,
			Path:      path,
			EditCount: len(cand.fix.Edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	ids := make([]source.FileID, 0, len(accepted))
	for id := range accepted {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		file := fs.Get(id)
		change := FileChange{
			File:      id,
			Path:      file.DisplayPath(source.PathRelative, baseDir),
			Before:    file.Content,
			After:     applyEdits(file.Content, accepted[id]),
			EditCount: len(accepted[id]),
		}
		if opts.Write {
			if err := writeFile(file.Path, change.After); err != nil {
				return result, err
			}
		}
		result.Changes = append(result.Changes, change)
	}
	return result, nil
}

// gatherCandidates keeps every fix that has at least one edit.
func gatherCandidates(diagnostics []diag.Diagnostic) []candidate {
	var cands []candidate
	for _, d := range diagnostics {
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands
}

func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].diag.Primary, candidates[j].diag.Primary
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) []candidate {
	switch opts.Mode {
	case ApplyModeOnce:
		return candidates[:1]
	case ApplyModeAll:
		return candidates
	case ApplyModeCode:
		var out []candidate
		for _, c := range candidates {
			if c.diag.Code == opts.Code {
				out = append(out, c)
			}
		}
		return out
	default:
		return nil
	}
}

// checkCandidate returns why cand cannot be applied, or "".
func checkCandidate(fs *source.FileSet, cand candidate, accepted map[source.FileID][]diag.FixEdit) string {
	for _, e := range cand.fix.Edits {
		if int(e.Span.File) >= fs.Len() {
			return "edit refers to an unknown file"
		}
		file := fs.Get(e.Span.File)
		if file.Flags&source.FileVirtual != 0 {
			return "target file is virtual"
		}
		if e.Span.Start > e.Span.End || int(e.Span.End) > len(file.Content) {
			return "edit span out of range"
		}
		for _, prev := range accepted[e.Span.File] {
			if prev == e {
				return "duplicate fix"
			}
			if spansConflict(prev, e) {
				return fmt.Sprintf("conflicts with a previously applied edit in %s", file.DisplayPath(source.PathAuto, ""))
			}
		}
	}
	return ""
}

// spansConflict reports whether two edits' spans overlap as half-open
// intervals. Two insertions never conflict; an insertion conflicts with a
// replacement that strictly contains its position.
func spansConflict(a, b diag.FixEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart < aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart < bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// applyEdits rewrites content back to front so original offsets stay valid.
// Insertions at the same offset keep their acceptance order.
func applyEdits(content []byte, edits []diag.FixEdit) []byte {
	ordered := slices.Clone(edits)
	slices.Reverse(ordered)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Span.Start > ordered[j].Span.Start
	})
	out := slices.Clone(content)
	for _, e := range ordered {
		out = slices.Concat(out[:e.Span.Start], []byte(e.NewText), out[e.Span.End:])
	}
	return out
}

func writeFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
