package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pycheck/internal/driver"
	"pycheck/internal/project"
	"pycheck/internal/source"
	"pycheck/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.CheckDirResult
	err     error
}

func runCheckDirWithUI(ctx context.Context, title, dir string, cfg *project.Config, cache *driver.DiskCache) (*source.FileSet, []driver.CheckDirResult, error) {
	files, err := driver.ListPythonFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		fs, results, err := driver.CheckDir(ctx, dir, cfg, cache, func(ev driver.Event) {
			events <- ev
		})
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// TUI мог завершиться раньше пайплайна (Ctrl+C, ошибка рендера); без
	// слива буфер events заполнится и воркеры повиснут на отправке
	go drainEvents(events)
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

func drainEvents(ch <-chan driver.Event) {
	for range ch {
	}
}
