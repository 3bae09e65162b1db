package main

import (
	"context"

	"propview/internal/logging"
	"propview/internal/ui"
	"propview/internal/viewctl"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// eventBuffer is the controller event backlog tolerated before events are
// dropped. Dropped events only delay a redraw.
const eventBuffer = 256

func runInteractive(ctx context.Context, opts *options) error {
	cfg, err := opts.loadConfig(true)
	if err != nil {
		return err
	}
	// The view owns the terminal, so logs always go to a file.
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, shutdown, err := newClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer shutdown()

	logger.Info("starting interactive view", zap.String("api_base", client.BaseURL()))

	events := make(chan viewctl.Event, eventBuffer)
	ctl := viewctl.New(client,
		viewctl.WithLogger(logger),
		viewctl.WithNotifier(&viewctl.ChanNotifier{Ch: events}),
	)

	model := ui.NewAppModel(ctx, ctl, events).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
