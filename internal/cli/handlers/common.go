package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/profile"
	"github.com/xolan/shifttrack/internal/service"
	"github.com/xolan/shifttrack/internal/store"
	"github.com/xolan/shifttrack/internal/validation"
)

// fail prints err with a hint matching its kind and exits with code 1.
func fail(deps *cli.Deps, err error) {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid %s\n", ve.Field)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %s\n", ve.Message)
		if hint := validationHint(ve.Field); hint != "" {
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
		}
	case errors.Is(err, service.ErrNoActiveProfile):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: No active profile")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Log in with 'shifttrack login <id>' or pass --profile <id>")
	case errors.Is(err, store.ErrProfileNotFound):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List profiles with 'shifttrack profile list'")
	case errors.Is(err, store.ErrProfileExists):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Choose another user id")
	case errors.Is(err, store.ErrEntryNotFound), errors.Is(err, service.ErrAmbiguousID), errors.Is(err, service.ErrIDTooShort):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List entries with 'shifttrack list' to see entry ids")
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
	}
	deps.Exit(1)
}

func validationHint(field string) string {
	switch field {
	case "date":
		return "Use YYYY-MM-DD, DD/MM/YYYY, 'today' or 'yesterday'"
	case "start", "end":
		return "Use 24-hour HH:MM times; the end must be after the start on the same day"
	case "duration":
		return "Use a format like '8h', '30m' or '7h30m', max 24h"
	case "time":
		return "Give --from and --to, --from and --duration, or --duration alone"
	case "id":
		return "User ids may contain letters, digits, '.', '_' and '-'"
	}
	return ""
}

// currentProfile resolves the profile a command acts on: the --profile
// override, else the active profile. Prints an error and exits on failure.
func currentProfile(deps *cli.Deps) (profile.Profile, bool) {
	p, err := deps.Services.Profile.Resolve(deps.Profile)
	if err != nil {
		fail(deps, err)
		return profile.Profile{}, false
	}
	return p, true
}

// promptConfirmation asks the user to confirm a destructive action
func promptConfirmation(stdout io.Writer, stdin io.Reader, question string) bool {
	_, _ = fmt.Fprintf(stdout, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
