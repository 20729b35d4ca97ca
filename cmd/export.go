package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/cli/handlers"
	"github.com/xolan/shifttrack/internal/service"
)

// exportCmd writes entries in machine-readable formats
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries as JSON, CSV or YAML",
	Long: `Export the active profile's entries to stdout.

Examples:
  shifttrack export json > shifts.json
  shifttrack export csv --last 30
  shifttrack export yaml --from 2024-01-01 --to 2024-03-31`,
}

func newExportFormatCmd(format, short string) *cobra.Command {
	c := &cobra.Command{
		Use:   format,
		Short: short,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			f, ok := filterFromFlags(cmd)
			if !ok {
				return
			}
			withServices(cmd, func(d *cli.Deps) {
				handlers.Export(d, format, f)
			})
		},
	}
	addFilterFlags(c)
	return c
}

func init() {
	exportCmd.AddCommand(
		newExportFormatCmd(service.FormatJSON, "Export as a JSON document"),
		newExportFormatCmd(service.FormatCSV, "Export as CSV rows with a header"),
		newExportFormatCmd(service.FormatYAML, "Export as a YAML document"),
	)
	rootCmd.AddCommand(exportCmd)
}
