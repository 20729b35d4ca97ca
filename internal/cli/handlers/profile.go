package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/service"
	"github.com/xolan/shifttrack/internal/store"
)

// CreateProfile signs up a new profile
func CreateProfile(deps *cli.Deps, id, name, surname string) {
	p, err := deps.Services.Profile.Create(id, name, surname)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created profile %s (%s)\n", p.ID, p.DisplayName())
	if deps.Services.Config.Get().DefaultProfile == "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Tip: Run 'shifttrack login %s' to make it the active profile\n", p.ID)
	}
}

// ListProfiles prints every profile, marking the active one
func ListProfiles(deps *cli.Deps) {
	profiles, err := deps.Services.Profile.List()
	if err != nil {
		fail(deps, err)
		return
	}
	if len(profiles) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No profiles yet")
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Create one with 'shifttrack profile create <id> --name N --surname S'")
		return
	}

	active := deps.Services.Config.Get().DefaultProfile
	for _, p := range profiles {
		marker := " "
		if p.ID == active {
			marker = "*"
		}
		_, _ = fmt.Fprintf(deps.Stdout, "%s %-16s %s\n", marker, p.ID, p.DisplayName())
	}
}

// ShowProfile prints a profile and its entry totals. An empty id shows the
// current profile.
func ShowProfile(deps *cli.Deps, id string) {
	if id != "" {
		deps.Profile = id
	}
	p, ok := currentProfile(deps)
	if !ok {
		return
	}

	result, err := deps.Services.Entry.List(p.ID, filterAll)
	if err != nil {
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Profile: %s\n", p.ID)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Name:     %s\n", p.Name)
	_, _ = fmt.Fprintf(deps.Stdout, "Surname:  %s\n", p.Surname)
	_, _ = fmt.Fprintf(deps.Stdout, "Created:  %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	_, _ = fmt.Fprintf(deps.Stdout, "Entries:  %d (%sh)\n", len(result.Entries), cli.FormatHours(result.TotalHours()))
}

// RenameProfile changes the name and/or surname of a profile
func RenameProfile(deps *cli.Deps, id, name, surname string) {
	p, err := deps.Services.Profile.Rename(id, name, surname)
	if err != nil {
		if errors.Is(err, service.ErrNoChanges) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one flag (--name or --surname) is required")
			deps.Exit(1)
			return
		}
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Renamed %s to %s\n", p.ID, p.DisplayName())
}

// DeleteProfile removes a profile and all of its entries after confirmation
func DeleteProfile(deps *cli.Deps, id string, skipConfirm bool) {
	p, err := deps.Services.Profile.Get(id)
	if err != nil {
		fail(deps, err)
		return
	}

	if !skipConfirm {
		question := fmt.Sprintf("Delete profile %s (%s) and all of its entries?", p.ID, p.DisplayName())
		if !promptConfirmation(deps.Stdout, deps.Stdin, question) {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
			return
		}
	}

	removed, err := deps.Services.Profile.Delete(p.ID)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted profile %s and %d %s\n", p.ID, removed, cli.Pluralize("entry", removed))
}

// Login makes a profile the active one
func Login(deps *cli.Deps, id string) {
	p, err := deps.Services.Profile.Login(id)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid User ID")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: Sign up with 'shifttrack profile create %s --name N --surname S'\n", id)
			deps.Exit(1)
			return
		}
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Welcome, %s!\n", p.DisplayName())
}

// Logout clears the active profile
func Logout(deps *cli.Deps) {
	if err := deps.Services.Profile.Logout(); err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Logged out")
}

// WhoAmI prints the profile commands currently act on
func WhoAmI(deps *cli.Deps) {
	p, ok := currentProfile(deps)
	if !ok {
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%s (%s)\n", p.ID, p.DisplayName())
}
