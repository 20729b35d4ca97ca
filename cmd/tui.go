package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/tui"
)

// tuiCmd opens the interactive terminal interface
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive interface",
	Long: `Open a full-screen interface to sign in or sign up, browse and add
shifts, and review weekly and monthly totals.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, func(d *cli.Deps) {
			if err := tui.Run(d.Services, d.Profile); err != nil {
				_, _ = fmt.Fprintf(d.Stderr, "Error: %v\n", err)
				d.Exit(1)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
