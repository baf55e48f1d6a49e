package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openswim/swim-meets/internal/calendar"
	"github.com/openswim/swim-meets/internal/match"
	"github.com/openswim/swim-meets/internal/meeting"
)

func newExportCmd() *cobra.Command {
	var flagLicense, flagOut string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a stored meeting as an iCalendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			found := match.FindLiveMeeting(a.store, meeting.Meeting{LicenseNumber: flagLicense})
			if found == nil {
				return fmt.Errorf("no meeting found for license %q", flagLicense)
			}

			ics := calendar.GenerateICS(found, a.clock.Now())
			if flagOut == "" {
				fmt.Fprint(cmd.OutOrStdout(), ics)
				return nil
			}
			if err := os.WriteFile(flagOut, []byte(ics), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", flagOut, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", flagOut)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagLicense, "license", "", "License code of the meeting to export (required)")
	cmd.Flags().StringVarP(&flagOut, "output", "o", "", "Output file (default: stdout)")
	cmd.MarkFlagRequired("license")

	return cmd
}
