package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openswim/swim-meets/internal/convert"
)

func newConvertCmd() *cobra.Command {
	var (
		flagTime     string
		flagDistance int
		flagStroke   string
		flagTo       string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a race time between short and long course",
		Long: `Converts a race time between a 25m (short course) and 50m (long course)
pool using the British Swimming equivalent-time model. Pairs of distance
and stroke without an established turn factor are returned unchanged.`,
		Example: `  swim-meets convert --time 1:00.00 --distance 100 --stroke free --to lc
  swim-meets convert --time 58.59 --distance 100 --stroke free --to sc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := convert.ParseRaceTime(flagTime)
			if err != nil {
				return err
			}

			stroke, err := parseStroke(flagStroke)
			if err != nil {
				return err
			}

			var result convert.Result
			var from, to string
			switch strings.ToUpper(flagTo) {
			case convert.CourseLC:
				result = convert.SCToLC(seconds, flagDistance, stroke)
				from, to = "SC", "LC"
			case convert.CourseSC:
				result = convert.LCToSC(seconds, flagDistance, stroke)
				from, to = "LC", "SC"
			default:
				return fmt.Errorf("invalid --to %q (want sc or lc)", flagTo)
			}

			out := cmd.OutOrStdout()
			if !result.Converted {
				fmt.Fprintf(out, "%s (no conversion for %dm %s)\n",
					convert.FormatSeconds(result.Seconds), flagDistance, strings.ToLower(string(stroke)))
				return nil
			}
			fmt.Fprintf(out, "%s %s = %s %s (%dm %s)\n",
				convert.FormatSeconds(seconds), from,
				convert.FormatSeconds(result.Seconds), to,
				flagDistance, strings.ToLower(string(stroke)))
			return nil
		},
	}

	cmd.Flags().StringVar(&flagTime, "time", "", "Race time, e.g. 1:01.38 or 58.59 (required)")
	cmd.Flags().IntVar(&flagDistance, "distance", 0, "Distance in meters: 50, 100, 200, 400, 800, 1500 (required)")
	cmd.Flags().StringVar(&flagStroke, "stroke", "", "Stroke: free, back, breast, fly, im (required)")
	cmd.Flags().StringVar(&flagTo, "to", "", "Target course: sc or lc (required)")
	cmd.MarkFlagRequired("time")
	cmd.MarkFlagRequired("distance")
	cmd.MarkFlagRequired("stroke")
	cmd.MarkFlagRequired("to")

	return cmd
}

func parseStroke(s string) (convert.Stroke, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free", "freestyle":
		return convert.Free, nil
	case "back", "backstroke":
		return convert.Back, nil
	case "breast", "breaststroke":
		return convert.Breast, nil
	case "fly", "butterfly":
		return convert.Fly, nil
	case "im", "medley":
		return convert.Medley, nil
	default:
		return "", fmt.Errorf("invalid --stroke %q (want free, back, breast, fly, or im)", s)
	}
}
