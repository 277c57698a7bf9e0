package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"scr/internal/driver"
	"scr/internal/source"
)

// TokenizeDirOutcome carries driver.TokenizeDir's results plus a UI failure, if any.
type TokenizeDirOutcome struct {
	FileSet *source.FileSet
	Results []driver.TokenizeDirResult
	Err     error
	UIErr   error
}

// RunTokenizeDir runs driver.TokenizeDir over files (as listed by
// driver.ListStyleFiles) while drawing a progress view on out.
func RunTokenizeDir(ctx context.Context, out io.Writer, dir string, files []string, opts driver.Options) TokenizeDirOutcome {
	// queued + started + done на файл: воркеры никогда не блокируются на отправке
	events := make(chan driver.ProgressEvent, len(files)*3+1)
	prev := opts.Progress
	opts.Progress = func(ev driver.ProgressEvent) {
		if prev != nil {
			prev(ev)
		}
		events <- ev
	}

	var outcome TokenizeDirOutcome
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		defer close(events)
		outcome.FileSet, outcome.Results, outcome.Err = driver.TokenizeDir(ctx, dir, opts)
	}()

	program := tea.NewProgram(NewProgressModel("tokenizing "+dir, files, events),
		tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))
	_, uiErr := program.Run()

	<-finished
	outcome.UIErr = uiErr
	return outcome
}
