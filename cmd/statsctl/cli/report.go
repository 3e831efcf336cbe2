package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	statsservice "accidentstats/internal/stats/service"
)

var reportNames = []string{
	statsservice.ReportYearCount,
	statsservice.ReportYearGender,
	statsservice.ReportAgeYear,
	statsservice.ReportRoadPairs,
}

func newReportCmd() *cobra.Command {
	var (
		yearFrom, yearTo int
		ageFrom, ageTo   int
		flat             bool
	)
	cmd := &cobra.Command{
		Use:       "report <" + strings.Join(reportNames, "|") + ">",
		Short:     "Print a report as JSON",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: reportNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, records, closeStore, err := env(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			window := cfg.Stats
			flags := cmd.Flags()
			if flags.Changed("year-from") {
				window.YearFrom = yearFrom
			}
			if flags.Changed("year-to") {
				window.YearTo = yearTo
			}
			if flags.Changed("age-from") {
				window.AgeFrom = ageFrom
			}
			if flags.Changed("age-to") {
				window.AgeTo = ageTo
			}
			reports := statsservice.New(records, window, statsservice.WithLogger(log))

			out, err := buildReport(ctx, reports, args[0], flat)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().IntVar(&yearFrom, "year-from", 0, "first reported year (default from STATS_YEAR_FROM)")
	cmd.Flags().IntVar(&yearTo, "year-to", 0, "last reported year (default from STATS_YEAR_TO)")
	cmd.Flags().IntVar(&ageFrom, "age-from", 0, "youngest reported age (default from STATS_AGE_FROM)")
	cmd.Flags().IntVar(&ageTo, "age-to", 0, "oldest reported age (default from STATS_AGE_TO)")
	cmd.Flags().BoolVar(&flat, "flat", false, "print age-year as flat rows instead of series")
	return cmd
}

func buildReport(ctx context.Context, reports *statsservice.Service, name string, flat bool) (any, error) {
	switch name {
	case statsservice.ReportYearCount:
		return reports.YearAccidentCount(ctx)
	case statsservice.ReportYearGender:
		return reports.YearGenderAccidentCount(ctx)
	case statsservice.ReportAgeYear:
		if flat {
			return reports.AgeYearDeadAccidentRows(ctx)
		}
		return reports.AgeYearDeadAccidentSummary(ctx)
	case statsservice.ReportRoadPairs:
		return reports.RoadTypeRoadSurfaceCount(ctx)
	default:
		return nil, fmt.Errorf("unknown report %q", name)
	}
}
