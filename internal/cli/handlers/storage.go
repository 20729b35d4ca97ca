package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/shifttrack/internal/cli"
)

// ValidateStorage checks the store health and reports its status
func ValidateStorage(deps *cli.Deps) {
	health, err := deps.Services.Storage.Check()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to validate storage: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Storage: %s (%s)\n", health.Path, health.Backend)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Profiles:          %d\n", health.Profiles)
	_, _ = fmt.Fprintf(deps.Stdout, "Entries:           %d\n", health.Entries)
	_, _ = fmt.Fprintf(deps.Stdout, "Orphaned entries:  %d\n", health.Orphans)
	_, _ = fmt.Fprintf(deps.Stdout, "Corrupted records: %d\n", len(health.Warnings))

	if len(health.Warnings) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Corrupted records:")
		for _, warning := range health.Warnings {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatCorruptionWarning(warning))
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if health.OK() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Storage is healthy")
		return
	}
	problems := health.Orphans + len(health.Warnings)
	_, _ = fmt.Fprintf(deps.Stderr, "Status: ⚠ Storage has %d %s\n", problems, cli.Pluralize("problem", problems))
}

// ListBackups prints the available backups
func ListBackups(deps *cli.Deps) {
	backups, err := deps.Services.Storage.ListBackups()
	if err != nil {
		fail(deps, err)
		return
	}
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, b := range backups {
		_, _ = fmt.Fprintf(deps.Stdout, "  [%d] %s  %s\n", b.Number, b.ModTime.Format("2006-01-02 15:04:05"), b.Path)
	}
}

// RestoreBackup restores backup n after confirmation
func RestoreBackup(deps *cli.Deps, n int, skipConfirm bool) {
	if n < 1 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup number must be 1 or greater (got %d)\n", n)
		deps.Exit(1)
		return
	}

	if !skipConfirm {
		question := fmt.Sprintf("Replace all current data with backup %d?", n)
		if !promptConfirmation(deps.Stdout, deps.Stdin, question) {
			_, _ = fmt.Fprintln(deps.Stdout, "Restore cancelled")
			return
		}
	}

	if err := deps.Services.Storage.Restore(n); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to restore backup %d\n", n)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List backups with 'shifttrack restore --list'")
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Restored backup %d\n", n)
	_, _ = fmt.Fprintln(deps.Stdout, "Tip: The previous state was saved as backup 1")
}
