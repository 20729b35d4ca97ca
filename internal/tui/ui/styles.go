package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusUser lipgloss.Style
	StatusHelp lipgloss.Style

	// Shift table
	Table    table.Styles
	Selected lipgloss.Style
	Hours    lipgloss.Style

	// Clock
	ClockRunning lipgloss.Style
	ClockStopped lipgloss.Style
	ClockElapsed lipgloss.Style

	// Stats
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Forms
	FieldLabel        lipgloss.Style
	FieldLabelFocused lipgloss.Style
	Hint              lipgloss.Style

	Dialog lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette maps semantic roles to colors:
// primary for tabs and titles, secondary for keys and times, accent for
// hours, muted for labels and inactive elements.
type palette struct {
	primary, secondary, accent, muted lipgloss.TerminalColor
	success, warning, errorColor      lipgloss.TerminalColor
	fg, bg, selectedBg                lipgloss.TerminalColor
}

// DefaultStyles returns the styles used when no theme registry is available
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:    lipgloss.Color("99"),
		secondary:  lipgloss.Color("39"),
		accent:     lipgloss.Color("212"),
		muted:      lipgloss.Color("240"),
		success:    lipgloss.Color("82"),
		warning:    lipgloss.Color("214"),
		errorColor: lipgloss.Color("196"),
		fg:         lipgloss.Color("252"),
		bg:         lipgloss.Color("236"),
		selectedBg: lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates a Styles struct using the colors of the
// registry's current tint.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:    r.Purple(),
		secondary:  r.Cyan(),
		accent:     r.BrightPurple(),
		muted:      r.BrightBlack(),
		success:    r.Green(),
		warning:    r.Yellow(),
		errorColor: r.Red(),
		fg:         r.Fg(),
		bg:         r.Bg(),
		selectedBg: r.BrightBlack(),
	})
}

func newStyles(p palette) Styles {
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.muted).
		BorderBottom(true).
		Foreground(p.primary).
		Bold(true)
	tableStyles.Selected = lipgloss.NewStyle().
		Foreground(p.fg).
		Background(p.selectedBg).
		Bold(true)

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusUser: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		Table: tableStyles,
		Selected: lipgloss.NewStyle().
			Background(p.selectedBg).
			Bold(true),
		Hours: lipgloss.NewStyle().
			Foreground(p.accent),

		ClockRunning: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		ClockStopped: lipgloss.NewStyle().
			Foreground(p.muted),
		ClockElapsed: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(20),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		FieldLabel: lipgloss.NewStyle().
			Foreground(p.muted),
		FieldLabelFocused: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		Hint: lipgloss.NewStyle().
			Foreground(p.muted),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(50),

		Error: lipgloss.NewStyle().
			Foreground(p.errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
