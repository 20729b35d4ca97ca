package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/filter"
	"github.com/xolan/shifttrack/internal/service"
)

var filterAll = filter.Filter{}

// AddEntry records a new shift for the current profile
func AddEntry(deps *cli.Deps, req service.AddRequest) {
	p, ok := currentProfile(deps)
	if !ok {
		return
	}
	req.ProfileID = p.ID

	e, err := deps.Services.Entry.Add(req)
	if err != nil {
		fail(deps, err)
		return
	}

	when := e.DateString()
	if e.HasRange() {
		when += " " + cli.FormatTimeRange(e)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s (%s, %sh) [%s]\n", when, cli.FormatDuration(e.DurationMinutes), cli.FormatHours(e.Hours()), cli.ShortID(e.ID))
}

// ListEntries lists the current profile's entries matching f
func ListEntries(deps *cli.Deps, f filter.Filter) {
	p, ok := currentProfile(deps)
	if !ok {
		return
	}

	result, err := deps.Services.Entry.List(p.ID, f)
	if err != nil {
		fail(deps, err)
		return
	}

	period := cli.BuildPeriodWithKeyword(result.Period, f.Keyword)
	if len(result.Entries) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found for %s\n", period)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Entries of %s for %s:\n", p.DisplayName(), period)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, e := range result.Entries {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatEntryLine(e))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s (%sh) in %d %s\n",
		cli.FormatDuration(result.Total), cli.FormatHours(result.TotalHours()),
		len(result.Entries), cli.Pluralize("entry", len(result.Entries)))
}

// DeleteEntry deletes an entry of the current profile with optional confirmation
func DeleteEntry(deps *cli.Deps, ref string, skipConfirm bool) {
	p, ok := currentProfile(deps)
	if !ok {
		return
	}

	e, err := deps.Services.Entry.Resolve(p.ID, ref)
	if err != nil {
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Entry to delete:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatEntryLine(e))

	if !skipConfirm {
		if !promptConfirmation(deps.Stdout, deps.Stdin, "Delete this entry?") {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
			return
		}
	}

	deleted, err := deps.Services.Entry.Delete(p.ID, e.ID)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s (%s)\n", deleted.DateString(), cli.FormatDuration(deleted.DurationMinutes))
}
