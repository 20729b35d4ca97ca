package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/shifttrack/internal/cli/handlers"
)

// validateCmd checks the health of the store
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the storage files for problems",
	Long: `Inspect the configured store and report unreadable records.

Corrupted lines are skipped when the CSV store is read; this command lists
them so they can be repaired by hand or by restoring a backup.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, handlers.ValidateStorage)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
