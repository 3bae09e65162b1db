package main

import (
	"context"
	"fmt"

	"propview/internal/apimock"
	"propview/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMockCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve a local Property API with sample data",
		Long: `Starts an HTTP server implementing GET /properties/summary,
GET /properties and GET /property?zpid= over built-in fixtures.
Stops on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(false)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.MockAddr
			}
			logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: opts.logFile})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return runMock(cmd.Context(), cmd, apimock.NewServer(addr, apimock.DefaultFixtures(), logger), logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+apimock.DefaultAddr+")")
	return cmd
}

// runMock serves until ctx is cancelled.
func runMock(ctx context.Context, cmd *cobra.Command, srv *apimock.Server, logger *zap.Logger) error {
	if err := srv.Start(); err != nil {
		return fmt.Errorf("start mock api: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Mock Property API listening on http://%s\n", srv.Addr())

	<-ctx.Done()

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(sctx); err != nil {
		return fmt.Errorf("stop mock api: %w", err)
	}
	logger.Info("mock property api stopped")
	return nil
}
