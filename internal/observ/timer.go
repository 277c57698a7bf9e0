package observ

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Stage is one measured step of a tokenize run.
type Stage struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	Count int // сколько измерений слито в стадию через Record
}

// Timer collects stage durations. Safe for concurrent Record calls from
// tokenize workers.
type Timer struct {
	mu     sync.Mutex
	stages []Stage
	byName map[string]int
}

func NewTimer() *Timer {
	return &Timer{stages: make([]Stage, 0, 8), byName: make(map[string]int)}
}

// Begin starts a stage and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stages = append(t.stages, Stage{Name: name, Start: time.Now(), Count: 1})
	return len(t.stages) - 1
}

// End finishes the stage started by Begin.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.stages) {
		return
	}
	s := &t.stages[idx]
	s.Dur = time.Since(s.Start)
	s.Note = note
}

// Record adds d to the stage called name, creating it on first use.
// Per-file lex times from parallel workers are summed this way.
func (t *Timer) Record(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx, ok := t.byName[name]; ok {
		t.stages[idx].Dur += d
		t.stages[idx].Count++
		return
	}
	t.byName[name] = len(t.stages)
	t.stages = append(t.stages, Stage{Name: name, Start: time.Now(), Dur: d, Count: 1})
}

// StageReport is the serialized form of a Stage.
type StageReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	WallMS float64       `json:"wall_ms"`
	Stages []StageReport `json:"stages"`
}

// Report snapshots the stages. Wall time spans from the first stage start to
// the latest stage end; summed stages are not added twice.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.stages) == 0 {
		return Report{}
	}
	report := Report{Stages: make([]StageReport, len(t.stages))}
	first, last := t.stages[0].Start, t.stages[0].Start
	for i, s := range t.stages {
		if s.Start.Before(first) {
			first = s.Start
		}
		if end := s.Start.Add(s.Dur); end.After(last) {
			last = end
		}
		report.Stages[i] = StageReport{
			Name:       s.Name,
			DurationMS: durationToMillis(s.Dur),
			Note:       s.Note,
		}
		if s.Count > 1 {
			report.Stages[i].Count = s.Count
		}
	}
	report.WallMS = durationToMillis(last.Sub(first))
	return report
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, s := range report.Stages {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", s.Name, s.DurationMS)
		if s.Count > 1 {
			fmt.Fprintf(&sb, "  (%d files)", s.Count)
		}
		if s.Note != "" {
			sb.WriteString("  // " + s.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "wall", report.WallMS)
	return sb.String()
}

// WriteJSON encodes Report to w.
func (t *Timer) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Report())
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
