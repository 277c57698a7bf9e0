package driver

import "time"

// ProgressStatus is the state a file moved into.
type ProgressStatus int

const (
	ProgressQueued ProgressStatus = iota
	ProgressStarted
	ProgressDone
	ProgressFailed
)

func (s ProgressStatus) String() string {
	switch s {
	case ProgressQueued:
		return "queued"
	case ProgressStarted:
		return "lexing"
	case ProgressDone:
		return "done"
	case ProgressFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ProgressEvent describes one file changing state during Tokenize or TokenizeDir.
type ProgressEvent struct {
	Path        string
	Status      ProgressStatus
	Tokens      int
	Diagnostics int
	Elapsed     time.Duration
}

// ProgressObserver receives events from worker goroutines; it must be safe
// for concurrent calls.
type ProgressObserver func(ProgressEvent)

func (o ProgressObserver) emit(ev ProgressEvent) {
	if o != nil {
		o(ev)
	}
}
