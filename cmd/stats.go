package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/cli/handlers"
)

// statsCmd summarises worked hours
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise worked hours",
	Long: `Summarise the active profile's worked hours.

By default this week is shown. Use --month for this month, or --from/--to
and --last for any other range. Ranges longer than a week are broken down
per week.

Examples:
  shifttrack stats
  shifttrack stats --month
  shifttrack stats --last 30`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		month, _ := cmd.Flags().GetBool("month")
		if month {
			withServices(cmd, handlers.ShowMonthlyStats)
			return
		}

		f, ok := filterFromFlags(cmd)
		if !ok {
			return
		}
		if f.Range.Start.IsZero() && f.Range.End.IsZero() {
			withServices(cmd, handlers.ShowWeeklyStats)
			return
		}
		withServices(cmd, func(d *cli.Deps) {
			handlers.ShowRangeStats(d, f.Range)
		})
	},
}

func init() {
	statsCmd.Flags().Bool("month", false, "Show this month instead of this week")
	statsCmd.Flags().String("from", "", "Start date (YYYY-MM-DD or DD/MM/YYYY)")
	statsCmd.Flags().String("to", "", "End date (YYYY-MM-DD or DD/MM/YYYY)")
	statsCmd.Flags().Int("last", 0, "The last N days including today")
	statsCmd.MarkFlagsMutuallyExclusive("month", "from")
	statsCmd.MarkFlagsMutuallyExclusive("month", "last")
	rootCmd.AddCommand(statsCmd)
}
