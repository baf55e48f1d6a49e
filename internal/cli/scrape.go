package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/openswim/swim-meets/internal/meeting"
)

func newScrapeCmd() *cobra.Command {
	var flagFrom, flagTo string

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape meeting listings over a date range",
		Long: `Fetches the active source's listing pages for the given date range and
upserts every extracted meeting into the local store. Dates that fail to
fetch are skipped and reported; the rest of the range still completes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			format, err := outputFormat()
			if err != nil {
				return err
			}

			start, err := time.Parse("2006-01-02", flagFrom)
			if err != nil {
				return fmt.Errorf("invalid --from date %q (want YYYY-MM-DD)", flagFrom)
			}
			end, err := time.Parse("2006-01-02", flagTo)
			if err != nil {
				return fmt.Errorf("invalid --to date %q (want YYYY-MM-DD)", flagTo)
			}

			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			result, err := a.newScraper().ScrapeMeetings(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			if err := a.save(); err != nil {
				return err
			}

			diff := meeting.Diff(a.previous, a.store.All(), "")
			report := &ScrapeReport{
				CheckedAt:   a.clock.Now().UTC(),
				Source:      a.source.Name,
				Saved:       len(result.Meetings),
				NewMeetings: diff.NewMeetings,
				NewCount:    len(diff.NewMeetings),
			}
			for _, skip := range result.Skips {
				report.SkippedDates = append(report.SkippedDates, skip.Date.Format("2006-01-02"))
			}

			if err := WriteScrapeReport(cmd.OutOrStdout(), report, format, flagVerbose); err != nil {
				return err
			}
			if report.NewCount > 0 {
				os.Exit(ExitNewMeetings)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagFrom, "from", "", "Start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&flagTo, "to", "", "End date inclusive, YYYY-MM-DD (required)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Scrape the upcoming week",
		Long:  "Convenience wrapper scraping the window from today through seven days out.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			count, err := a.newScraper().RefreshUpcomingMeetings(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.save(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d upcoming meetings.\n", count)
			return nil
		},
	}
}
