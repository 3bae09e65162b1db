package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"propview/internal/config"
	"propview/internal/propertyapi"
	"propview/internal/trace"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// shutdownTimeout bounds span flushing and mock server shutdown on exit.
const shutdownTimeout = 5 * time.Second

// options holds the persistent flags shared by every command.
type options struct {
	apiURL   string
	envFile  string
	logFile  string
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "propview",
		Short: "Terminal viewer for the Property API",
		Long: `propview shows the Property API summary, the list of property
addresses and the details of a single property looked up by ZPID.

Run without arguments to start the interactive view. The API base URL comes
from --api-url or PROPVIEW_API_URL (NEXT_PUBLIC_API_URL and
REACT_APP_API_URL are honored as fallbacks).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.apiURL, "api-url", "", "Property API base URL (overrides "+config.EnvAPIURL+")")
	pf.StringVar(&opts.envFile, "env-file", "", "path to a .env file (default ./.env)")
	pf.StringVar(&opts.logFile, "log-file", "", "log destination (default "+config.DefaultLogFile+" for the interactive view, stderr otherwise)")
	pf.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(newDumpCmd(opts), newMockCmd(opts))
	return cmd
}

// loadConfig reads the environment and applies flag overrides. The API base
// is validated only when the command talks to the API.
func (o *options) loadConfig(needAPI bool) (*config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, err
	}
	if o.apiURL != "" {
		cfg.APIBase = o.apiURL
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if needAPI {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newClient builds the API client, exporting spans when an OTLP endpoint is
// configured. The returned func flushes pending spans.
func newClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*propertyapi.Client, func(), error) {
	exp, err := trace.NewOTLPExporter(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		return nil, nil, err
	}
	if exp.Enabled() {
		logger.Info("tracing enabled", zap.String("endpoint", cfg.OTLPEndpoint))
	}

	client := propertyapi.NewClient(cfg.APIBase, propertyapi.WithTracer(exp.Tracer()))
	shutdown := func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := exp.Shutdown(sctx); err != nil {
			logger.Warn("trace exporter shutdown failed", zap.Error(err))
		}
	}
	return client, shutdown, nil
}
