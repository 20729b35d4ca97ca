// Package views holds the screens and tabs of the interactive interface.
package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
		"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/store"
	"github.com/xolan/shifttrack/internal/tui/ui"
	"github.com/xolan/shifttrack/internal/validation"
)

// shiftColumns returns the shift table columns for the given width. The
// note column takes whatever the fixed columns leave over.
func shiftColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "ID", Width: cli.ShortIDLength},
		{Title: "Date", Width: 10},
		{Title: "Start", Width: 5},
		{Title: "End", Width: 5},
		{Title: "Hours", Width: 6},
		{Title: "Note", Width: 20},
	}
	fixed := 0
	for _, c := range cols[:len(cols)-1] {
		fixed += c.Width + 2
	}
	if note := width - fixed - 6; note > cols[len(cols)-1].Width {
		cols[len(cols)-1].Width = note
	}
	return cols
}

// shiftRows converts entries to table rows in shiftColumns order.
func shiftRows(entries []entry.Entry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			cli.ShortID(e.ID),
			e.DateString(),
			e.Start.String(),
			e.End.String(),
			cli.FormatHours(e.Hours()),
			e.Note,
		})
	}
	return rows
}

// describeError turns service errors into a single line for display.
func describeError(err error) string {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		return fmt.Sprintf("Invalid %s: %s", ve.Field, ve.Message)
	case errors.Is(err, store.ErrProfileNotFound):
		return "Invalid User ID"
	case errors.Is(err, store.ErrProfileExists):
		return "That user id is already taken"
	}
	return err.Error()
}

func renderError(styles ui.Styles, err error) string {
	return styles.Error.Render("Error: " + describeError(err))
}

func renderStatLine(styles ui.Styles, label, value string) string {
	return styles.StatLabel.Render(label) + " " + styles.StatValue.Render(value) + "\n"
}

func rule(width int) string {
	return strings.Repeat("─", min(50, max(width, 10)))
}
