package main

import (
	"context"
	"io"

	"propview/internal/logging"
	"propview/internal/render"
	"propview/internal/viewctl"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDumpCmd(opts *options) *cobra.Command {
	var zpid string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Load the view once and print it",
		Long: `Fetches the summary and the property list, optionally looks up one
property, then prints the rendered view to stdout and exits.

Example:
  propview dump --api-url http://localhost:8080 --zpid 29141010`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(true)
			if err != nil {
				return err
			}
			// stdout carries the view; logs stay on stderr unless a file is given.
			logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: opts.logFile})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			client, shutdown, err := newClient(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer shutdown()

			return runDump(cmd.Context(), cmd.OutOrStdout(), client, logger, zpid)
		},
	}
	cmd.Flags().StringVar(&zpid, "zpid", "", "property to look up before printing")
	return cmd
}

// runDump drives the controller to a settled state and writes the rendered
// view. Fetch failures are logged by the controller and show up as
// placeholders, so only write errors are returned.
func runDump(ctx context.Context, w io.Writer, api viewctl.Fetcher, logger *zap.Logger, zpid string) error {
	ctl := viewctl.New(api, viewctl.WithLogger(logger))
	ctl.Initialize(ctx)
	ctl.Wait()

	if zpid != "" {
		ctl.SetLookupKey(ctx, zpid)
		ctl.Wait()
	}

	_, err := io.WriteString(w, render.Render(ctl.Snapshot()))
	return err
}
