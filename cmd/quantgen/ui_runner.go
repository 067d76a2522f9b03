package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"quantgen/internal/driver"
	"quantgen/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// uiEnabled decides whether to draw progress. Auto draws only on an
// interactive stderr and never in quiet mode.
func uiEnabled(mode uiMode, quiet bool) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return !quiet && isTerminal(os.Stderr)
}

type runOutcome struct {
	result *driver.Result
	err    error
}

// runFilesWithUI runs the driver in the background while the progress model
// renders its phases to out.
func runFilesWithUI(ctx context.Context, out io.Writer, title string, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.PhaseEvent, len(driver.Phases)*2)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.PhaseObserver = driver.ChannelObserver(events)
		res, err := driver.RunFiles(ctx, files, optsCopy)
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, driver.Phases, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
