package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/config"
	"github.com/xolan/shifttrack/internal/filter"
	"github.com/xolan/shifttrack/internal/logging"
	"github.com/xolan/shifttrack/internal/timeutil"
)

// loadConfig resolves and loads the config file, honouring --verbose.
// Prints an error and exits on failure.
func loadConfig(cmd *cobra.Command) (string, config.Config, bool) {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return "", config.Config{}, false
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that your config file is valid TOML format: %s\n", configPath)
		deps.Exit(1)
		return "", config.Config{}, false
	}

	// Dates are parsed and "today" is computed in time.Local.
	loc, err := cfg.Location()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid timezone %q\n", cfg.Timezone)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return "", config.Config{}, false
	}
	time.Local = loc

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}
	return configPath, cfg, true
}

// withServices opens the store, runs fn with CLI deps bound to it and
// closes the store again.
func withServices(cmd *cobra.Command, fn func(d *cli.Deps)) {
	configPath, cfg, ok := loadConfig(cmd)
	if !ok {
		return
	}

	logger := logging.New(cfg.Log, deps.Stderr)
	services, err := deps.OpenServices(configPath, cfg, logger)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open storage")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check storage.backend and storage.dir in %s\n", configPath)
		deps.Exit(1)
		return
	}
	defer func() {
		if err := services.Close(); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}()

	d := cli.NewDeps(services, cfg).WithIO(deps.Stdout, deps.Stderr, deps.Stdin, deps.Exit)
	d.Profile, _ = cmd.Flags().GetString("profile")
	fn(d)
}

// addFilterFlags registers the date range and search flags on cmd.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().Int("last", 0, "Only the last N days including today")
	cmd.Flags().StringP("search", "s", "", "Only entries whose note contains this text")
}

// filterFromFlags builds a filter from the flags added by addFilterFlags.
// Without any date flag the range is unbounded.
func filterFromFlags(cmd *cobra.Command) (filter.Filter, bool) {
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	lastDays, _ := cmd.Flags().GetInt("last")
	keyword, _ := cmd.Flags().GetString("search")

	f := filter.Filter{Keyword: keyword}
	if fromStr == "" && toStr == "" && lastDays == 0 {
		return f, true
	}

	r, err := timeutil.ParseRangeFlags(fromStr, toStr, lastDays)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use --from/--to with YYYY-MM-DD dates, or --last N on its own")
		deps.Exit(1)
		return filter.Filter{}, false
	}
	f.Range = r
	return f, true
}
