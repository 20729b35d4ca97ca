package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/cli/handlers"
)

// restoreCmd restores the store from a backup
var restoreCmd = &cobra.Command{
	Use:   "restore [n]",
	Short: "Restore data from a backup",
	Long: `Restore the CSV store from one of its automatic backups.

Backup 1 is the most recent and is used when n is omitted. Use --list to
see the available backups.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		list, _ := cmd.Flags().GetBool("list")
		if list {
			withServices(cmd, handlers.ListBackups)
			return
		}

		n := 1
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
				_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'shifttrack restore --list' to see available backups")
				deps.Exit(1)
				return
			}
			n = v
		}

		yes, _ := cmd.Flags().GetBool("yes")
		withServices(cmd, func(d *cli.Deps) {
			handlers.RestoreBackup(d, n, yes)
		})
	},
}

func init() {
	restoreCmd.Flags().Bool("list", false, "List available backups")
	restoreCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(restoreCmd)
}
