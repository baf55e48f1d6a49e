package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openswim/swim-meets/internal/match"
	"github.com/openswim/swim-meets/internal/meeting"
)

func newMatchCmd() *cobra.Command {
	var flagLicense, flagName string

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Find the stored meeting for a license code or meeting name",
		Long: `Looks up a stored meeting by license code. The code may be given
explicitly with --license or embedded in a free-text name given with
--name (e.g. "Darlington ASC Club Gala 4 2025 - 4NE252206").`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagLicense == "" && flagName == "" {
				return fmt.Errorf("one of --license or --name is required")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			format, err := outputFormat()
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			found := match.FindLiveMeeting(a.store, meeting.Meeting{
				Name:          flagName,
				LicenseNumber: flagLicense,
			})
			if found == nil {
				if format == FormatJSON {
					return WriteMeetings(cmd.OutOrStdout(), nil, "", format, flagVerbose)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "No matching meeting found.")
				return nil
			}
			return WriteMeetings(cmd.OutOrStdout(), []*meeting.LiveMeeting{found}, "", format, flagVerbose)
		},
	}

	cmd.Flags().StringVar(&flagLicense, "license", "", "Explicit license code, e.g. 4NE252206")
	cmd.Flags().StringVar(&flagName, "name", "", "Meeting name that may embed a license code")

	return cmd
}
