package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/cli/handlers"
)

// clockCmd groups the live time tracking commands
var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Track a shift as it happens",
	Long: `Clock in when a shift starts and clock out when it ends.

Clocking out records an entry from the clock-in time to now. A shift
must end on the day it started.`,
}

var clockInCmd = &cobra.Command{
	Use:     "in [note...]",
	Short:   "Start the clock",
	Example: `  shifttrack clock in stocktaking`,
	Run: func(cmd *cobra.Command, args []string) {
		note := strings.Join(args, " ")
		withServices(cmd, func(d *cli.Deps) {
			handlers.ClockIn(d, note)
		})
	},
}

var clockOutCmd = &cobra.Command{
	Use:   "out",
	Short: "Stop the clock and record the shift",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, handlers.ClockOut)
	},
}

var clockStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the clock is running",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, handlers.ClockStatus)
	},
}

var clockCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Stop the clock without recording anything",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, handlers.ClockCancel)
	},
}

func init() {
	clockCmd.AddCommand(clockInCmd, clockOutCmd, clockStatusCmd, clockCancelCmd)
	rootCmd.AddCommand(clockCmd)
}
