package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/service"
	"github.com/xolan/shifttrack/internal/tui/ui"
)

// StatsModel is the model for the stats view
type StatsModel struct {
	services  *service.Services
	profileID string
	styles    ui.Styles
	keys      ui.KeyMap
	now       func() time.Time

	width   int
	height  int
	result  *service.StatsResult
	loading bool
	err     error
	monthly bool
}

// NewStatsModel creates a new stats view model
func NewStatsModel(services *service.Services, profileID string, styles ui.Styles, keys ui.KeyMap) StatsModel {
	return StatsModel{
		services:  services,
		profileID: profileID,
		styles:    styles,
		keys:      keys,
		now:       time.Now,
		loading:   true,
	}
}

// statsLoadedMsg is sent when stats are loaded
type statsLoadedMsg struct {
	result *service.StatsResult
	err    error
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return m.loadStats()
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Week):
			m.monthly = false
			return m, m.loadStats()
		case key.Matches(msg, m.keys.Month):
			m.monthly = true
			return m, m.loadStats()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadStats()
		}

	case statsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.result = msg.result

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}

	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	var b strings.Builder

	title := "This Week"
	if m.monthly {
		title = "This Month"
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}
	if m.err != nil {
		b.WriteString(renderError(m.styles, m.err))
		return b.String()
	}
	if m.result == nil {
		b.WriteString("No data")
		return b.String()
	}

	s := m.result.Statistics
	b.WriteString(renderStatLine(m.styles, "Period:", m.result.Range.String()))
	b.WriteString(renderStatLine(m.styles, "Hours worked:", cli.FormatHours(s.TotalHours())+"h"))
	b.WriteString(renderStatLine(m.styles, "Shifts:", fmt.Sprintf("%d", s.EntryCount)))
	b.WriteString(renderStatLine(m.styles, "Days worked:", fmt.Sprintf("%d %s", s.DaysWorked, cli.Pluralize("day", s.DaysWorked))))
	b.WriteString(renderStatLine(m.styles, "Average per day:", cli.FormatHours(s.AverageHoursPerDay())+"h"))
	if s.Longest != nil {
		b.WriteString(renderStatLine(m.styles, "Longest shift:",
			fmt.Sprintf("%s on %s", cli.FormatDuration(s.Longest.DurationMinutes), s.Longest.DateString())))
	}

	if m.monthly && len(m.result.Weeks) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.ViewTitle.Render("By Week"))
		b.WriteString("\n")
		for _, w := range m.result.Weeks {
			b.WriteString(fmt.Sprintf("  %s  %s  (%d %s)\n",
				w.Start.Format("Jan 02"),
				m.styles.Hours.Render(fmt.Sprintf("%6sh", cli.FormatHours(w.TotalHours()))),
				w.EntryCount,
				cli.Pluralize("shift", w.EntryCount)))
		}
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *StatsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadStats creates a command to load stats
func (m StatsModel) loadStats() tea.Cmd {
	profileID, monthly, now := m.profileID, m.monthly, m.now()
	return func() tea.Msg {
		var result *service.StatsResult
		var err error
		if monthly {
			result, err = m.services.Stats.Month(profileID, now)
		} else {
			result, err = m.services.Stats.Week(profileID, now)
		}
		return statsLoadedMsg{result: result, err: err}
	}
}
