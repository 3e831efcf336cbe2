package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"accidentstats/internal/app"
	"accidentstats/internal/platform/config"
	"accidentstats/internal/platform/logger"
)

// openStore is swapped in tests.
var openStore = app.OpenStore

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "statsctl",
		Short: "statsctl - accident statistics from the command line",
		Long: `statsctl replaces the record set from a CSV export and prints the
same reports the HTTP API serves. Store selection and reporting windows
come from the server's environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newIngestCmd())
	root.AddCommand(newReportCmd())
	return root
}

// Execute runs the CLI, cancelling in-flight store calls on SIGINT.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

// env loads and validates the shared configuration and opens the record store.
func env(ctx context.Context) (config.Server, *slog.Logger, app.RecordStore, func(), error) {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, nil, nil, nil, err
	}
	log := logger.New(cfg.LogLevel, "text")
	records, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return cfg, nil, nil, nil, err
	}
	return cfg, log, records, closeStore, nil
}
