package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/cli/handlers"
	"github.com/xolan/shifttrack/internal/service"
)

// addCmd records a new shift
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a shift",
	Long: `Record a shift for the active profile.

Give the start and end time, the start time and a duration, or just a
duration. The end must be after the start on the same day.

Examples:
  shifttrack add --date 2024-01-01 --from 09:00 --to 17:00
  shifttrack add --from 13:00 --duration 4h --note "late shift"
  shifttrack add --date yesterday --duration 7h30m`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		req := service.AddRequest{}
		req.Date, _ = cmd.Flags().GetString("date")
		req.From, _ = cmd.Flags().GetString("from")
		req.To, _ = cmd.Flags().GetString("to")
		req.Duration, _ = cmd.Flags().GetString("duration")
		req.Note, _ = cmd.Flags().GetString("note")
		withServices(cmd, func(d *cli.Deps) {
			handlers.AddEntry(d, req)
		})
	},
}

// listCmd lists entries
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List entries ordered by date",
	Long: `List the active profile's entries ordered by date and start time.

Examples:
  shifttrack list                              All entries
  shifttrack list --last 7                     The last 7 days
  shifttrack list --from 2024-01-01 --to 2024-01-31
  shifttrack list --search inventory           Entries whose note mentions "inventory"`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		f, ok := filterFromFlags(cmd)
		if !ok {
			return
		}
		withServices(cmd, func(d *cli.Deps) {
			handlers.ListEntries(d, f)
		})
	},
}

// deleteCmd deletes an entry
var deleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete an entry",
	Long: `Delete an entry of the active profile.

The id may be abbreviated to any unique prefix of at least 4 characters,
as shown by 'shifttrack list'.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		withServices(cmd, func(d *cli.Deps) {
			handlers.DeleteEntry(d, args[0], yes)
		})
	},
}

func init() {
	addCmd.Flags().StringP("date", "d", "", "Day of the shift (default today)")
	addCmd.Flags().String("from", "", "Start time, HH:MM")
	addCmd.Flags().String("to", "", "End time, HH:MM")
	addCmd.Flags().String("duration", "", "Duration, e.g. 8h or 7h30m")
	addCmd.Flags().StringP("note", "n", "", "Optional note")

	addFilterFlags(listCmd)

	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	rootCmd.AddCommand(addCmd, listCmd, deleteCmd)
}
