package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openswim/swim-meets/internal/filter"
	"github.com/openswim/swim-meets/internal/meeting"
)

func newListCmd() *cobra.Command {
	var (
		flagRegions  []string
		flagCourse   string
		flagMaxLevel int
		flagCities   []string
		flagDates    string
		flagWeekends bool
		flagUpcoming bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored meetings",
		Long: `Lists meetings from the local store, optionally filtered by region code,
course type, license level, city, date range, or weekend. Reads only the
persisted snapshot; run scrape or refresh first to populate it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			format, err := outputFormat()
			if err != nil {
				return err
			}

			f := filter.New()
			f.Regions = flagRegions
			f.Cities = flagCities
			f.MaxLevel = flagMaxLevel
			f.WeekendsOnly = flagWeekends

			switch strings.ToLower(flagCourse) {
			case "":
			case "25", "short", "sc":
				f.CourseType = meeting.CourseShort
			case "50", "long", "lc":
				f.CourseType = meeting.CourseLong
			default:
				return fmt.Errorf("invalid --course %q (want 25 or 50)", flagCourse)
			}

			if flagDates != "" {
				from, to, err := filter.ParseDateRange(flagDates)
				if err != nil {
					return err
				}
				f.DateFrom = from
				f.DateTo = to
			}

			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			meetings := a.store.All()
			if flagUpcoming {
				meetings = a.store.Upcoming(a.clock.Now())
			}
			meetings = f.Apply(meetings)
			sort.SliceStable(meetings, func(i, j int) bool {
				return meetings[i].StartDate.Before(meetings[j].StartDate)
			})

			return WriteMeetings(cmd.OutOrStdout(), meetings, f.String(), format, flagVerbose)
		},
	}

	cmd.Flags().StringSliceVar(&flagRegions, "region", nil, "Region codes to include (e.g. NE,SE)")
	cmd.Flags().StringVar(&flagCourse, "course", "", "Course type: 25 or 50")
	cmd.Flags().IntVar(&flagMaxLevel, "max-level", 0, "Keep meetings licensed at this level or below")
	cmd.Flags().StringSliceVar(&flagCities, "city", nil, "City substrings to include")
	cmd.Flags().StringVar(&flagDates, "dates", "", "Date range, e.g. 'Nov 1-15', 'Nov 20 - Dec 6', or 'Nov'")
	cmd.Flags().BoolVar(&flagWeekends, "weekends", false, "Only meetings starting on a weekend")
	cmd.Flags().BoolVar(&flagUpcoming, "upcoming", false, "Only meetings that have not finished")

	return cmd
}
