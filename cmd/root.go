package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/cli/handlers"
	"github.com/xolan/shifttrack/internal/filter"
)

var rootCmd = &cobra.Command{
	Use:   "shifttrack",
	Short: "Record and review your working hours",
	Long: `shifttrack records work shifts for a profile and reports the hours worked.

Usage:
  shifttrack profile create <id> --name N --surname S   Sign up a new profile
  shifttrack login <id>                                 Make a profile active
  shifttrack add --date 2024-01-01 --from 09:00 --to 17:00
                                                        Record a shift
  shifttrack add --duration 7h30m                       Record today's hours
  shifttrack                                            List the active profile's entries
  shifttrack delete <id>                                Delete an entry (with confirmation)
  shifttrack stats [--month]                            Summarise worked hours
  shifttrack clock in | out | status                    Track a shift as it happens
  shifttrack tui                                        Open the interactive interface

Times are 24-hour HH:MM. A shift ends on the day it starts.
Duration format: Yh (hours), Ym (minutes), or YhYm (combined)
Examples: 8h, 30m, 7h30m`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, func(d *cli.Deps) {
			handlers.ListEntries(d, filter.Filter{})
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("profile", "p", "", "Act on this profile instead of the active one")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"shifttrack version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
