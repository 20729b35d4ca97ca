package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/shifttrack/internal/cli"
)

// ShowConfig displays the current configuration
func ShowConfig(deps *cli.Deps) {
	cfg := deps.Services.Config.Get()
	path := deps.Services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "week_start_day:  %s\n", cfg.WeekStartDay)
	_, _ = fmt.Fprintf(deps.Stdout, "timezone:        %s\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "theme:           %s\n", cfg.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "default_profile: %s\n", valueOrNone(cfg.DefaultProfile))
	_, _ = fmt.Fprintf(deps.Stdout, "storage.backend: %s\n", cfg.Storage.Backend)
	_, _ = fmt.Fprintf(deps.Stdout, "storage.dir:     %s\n", deps.Services.Storage.Dir())
	_, _ = fmt.Fprintf(deps.Stdout, "log.level:       %s\n", cfg.Log.Level)
	_, _ = fmt.Fprintf(deps.Stdout, "log.format:      %s\n", cfg.Log.Format)
}

// ShowConfigPath prints only the config file location
func ShowConfigPath(deps *cli.Deps) {
	_, _ = fmt.Fprintln(deps.Stdout, deps.Services.Config.GetPath())
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	err := deps.Services.Config.Init()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}

func valueOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
