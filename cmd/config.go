package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/shifttrack/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long: `Display the current configuration settings.

The configuration file is located at ~/.config/shifttrack/config.toml.
If no config file exists, default values are shown.

Use --init to create a sample configuration file.
Use --path to show only the config file path.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initFlag, _ := cmd.Flags().GetBool("init")
		pathFlag, _ := cmd.Flags().GetBool("path")
		switch {
		case initFlag:
			withServices(cmd, handlers.InitConfig)
		case pathFlag:
			withServices(cmd, handlers.ShowConfigPath)
		default:
			withServices(cmd, handlers.ShowConfig)
		}
	},
}

func init() {
	configCmd.Flags().Bool("init", false, "Create a sample configuration file")
	configCmd.Flags().Bool("path", false, "Show only the config file path")
	configCmd.MarkFlagsMutuallyExclusive("init", "path")
	rootCmd.AddCommand(configCmd)
}
