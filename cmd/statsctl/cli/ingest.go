package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"accidentstats/internal/app"
	datasetservice "accidentstats/internal/dataset/service"
	statsservice "accidentstats/internal/stats/service"
)

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <csv>",
		Short: "Replace the record set with a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, records, closeStore, err := env(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			// Report keys carry the store's batch id, so servers miss on the
			// new batch without help. A shared cache is still flushed early.
			opts := []datasetservice.Option{datasetservice.WithLogger(log)}
			reportCache, err := app.OpenReportCache(ctx, cfg, log)
			switch {
			case err != nil:
				log.WarnContext(ctx, "report cache unavailable, old entries stay until they expire", "error", err)
			case reportCache.Health == nil:
				reportCache.Close()
				log.DebugContext(ctx, "no shared report cache configured")
			default:
				defer reportCache.Close()
				reports := statsservice.New(records, cfg.Stats, statsservice.WithCache(reportCache.Cache))
				opts = append(opts, datasetservice.WithReportInvalidator(reports))
			}

			n, err := datasetservice.New(records, opts...).ReplaceFromFile(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ingested %d records from %s\n", n, args[0])
			return nil
		},
	}
}
