package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/cli/handlers"
)

// profileCmd groups the profile management commands
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profiles",
	Long: `Create, inspect, rename and delete profiles.

A profile is identified by a user id (letters, digits, '.', '_' and '-')
and owns every entry recorded for it. Deleting a profile deletes its entries.`,
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <id>",
	Short: "Sign up a new profile",
	Example: `  shifttrack profile create jdoe --name Jane --surname Doe`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		surname, _ := cmd.Flags().GetString("surname")
		withServices(cmd, func(d *cli.Deps) {
			handlers.CreateProfile(d, args[0], name, surname)
		})
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles (* marks the active one)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, handlers.ListProfiles)
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a profile (default: the active one)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		withServices(cmd, func(d *cli.Deps) {
			handlers.ShowProfile(d, id)
		})
	},
}

var profileRenameCmd = &cobra.Command{
	Use:   "rename <id>",
	Short: "Change the name or surname of a profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		surname, _ := cmd.Flags().GetString("surname")
		withServices(cmd, func(d *cli.Deps) {
			handlers.RenameProfile(d, args[0], name, surname)
		})
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a profile and all of its entries",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		withServices(cmd, func(d *cli.Deps) {
			handlers.DeleteProfile(d, args[0], yes)
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <id>",
	Short: "Make a profile the active one",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, func(d *cli.Deps) {
			handlers.Login(d, args[0])
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the active profile",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, handlers.Logout)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the profile commands act on",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, handlers.WhoAmI)
	},
}

func init() {
	profileCreateCmd.Flags().String("name", "", "First name (required)")
	profileCreateCmd.Flags().String("surname", "", "Surname (required)")
	_ = profileCreateCmd.MarkFlagRequired("name")
	_ = profileCreateCmd.MarkFlagRequired("surname")

	profileRenameCmd.Flags().String("name", "", "New first name")
	profileRenameCmd.Flags().String("surname", "", "New surname")

	profileDeleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	profileCmd.AddCommand(profileCreateCmd, profileListCmd, profileShowCmd, profileRenameCmd, profileDeleteCmd)
	rootCmd.AddCommand(profileCmd, loginCmd, logoutCmd, whoamiCmd)
}
