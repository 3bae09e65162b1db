package ui

import (
	"context"

	"propview/internal/viewctl"

	tea "github.com/charmbracelet/bubbletea"
)

// initializeCmd starts the summary and list fetches. The controller runs
// them in the background; results arrive later as viewctl.Event messages.
func initializeCmd(ctx context.Context, ctl *viewctl.Controller) tea.Cmd {
	return func() tea.Msg {
		ctl.Initialize(ctx)
		return nil
	}
}

// listenForEvents returns a command that waits for the next controller
// event. Update re-issues it after every event it receives.
func listenForEvents(events <-chan viewctl.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return ev
	}
}
