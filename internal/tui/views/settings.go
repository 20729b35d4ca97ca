package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/shifttrack/internal/config"
	"github.com/xolan/shifttrack/internal/service"
	"github.com/xolan/shifttrack/internal/tui/ui"
)

// maxVisibleThemes is the maximum number of themes to show at once
const maxVisibleThemes = 10

// SettingsModel shows the configuration and lets the user pick a theme
type SettingsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width     int
	height    int
	config    config.Config
	path      string
	exists    bool
	themeName string

	selectingTheme bool
	themes         []string
	themeCursor    int
	themeOffset    int
}

// settingsLoadedMsg is sent when the configuration is loaded
type settingsLoadedMsg struct {
	config config.Config
	path   string
	exists bool
}

// NewSettingsModel creates a new settings view model
func NewSettingsModel(services *service.Services, themes *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) SettingsModel {
	m := SettingsModel{
		services:  services,
		styles:    styles,
		keys:      keys,
		themes:    themes.AvailableThemes(),
		themeName: themes.CurrentName(),
	}
	m.themeCursor = m.indexOf(m.themeName)
	return m
}

// Init implements tea.Model
func (m SettingsModel) Init() tea.Cmd {
	return func() tea.Msg {
		return settingsLoadedMsg{
			config: m.services.Config.Get(),
			path:   m.services.Config.GetPath(),
			exists: m.services.Config.Exists(),
		}
	}
}

// Update implements tea.Model
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selectingTheme {
			return m.handleThemeSelection(msg)
		}
		if key.Matches(msg, m.keys.Select) || key.Matches(msg, m.keys.Theme) {
			m.selectingTheme = true
			m.scrollToCursor()
		}
		return m, nil

	case settingsLoadedMsg:
		m.config = msg.config
		m.path = msg.path
		m.exists = msg.exists

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		m.themeCursor = m.indexOf(msg.ThemeName)
	}

	return m, nil
}

func (m SettingsModel) handleThemeSelection(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
			m.scrollToCursor()
		}
	case key.Matches(msg, m.keys.Down):
		if m.themeCursor < len(m.themes)-1 {
			m.themeCursor++
			m.scrollToCursor()
		}
	case key.Matches(msg, m.keys.Select):
		m.selectingTheme = false
		if len(m.themes) == 0 {
			return m, nil
		}
		name := m.themes[m.themeCursor]
		return m, func() tea.Msg { return ui.ThemeChangeRequestMsg{ThemeName: name} }
	case key.Matches(msg, m.keys.Back):
		m.selectingTheme = false
		m.themeCursor = m.indexOf(m.themeName)
	}
	return m, nil
}

func (m SettingsModel) indexOf(theme string) int {
	for i, t := range m.themes {
		if t == theme {
			return i
		}
	}
	return 0
}

// scrollToCursor keeps the theme cursor inside the visible window
func (m *SettingsModel) scrollToCursor() {
	if m.themeCursor < m.themeOffset {
		m.themeOffset = m.themeCursor
	} else if m.themeCursor >= m.themeOffset+maxVisibleThemes {
		m.themeOffset = m.themeCursor - maxVisibleThemes + 1
	}
}

// View implements tea.Model
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Settings"))
	b.WriteString("\n\n")

	b.WriteString(renderStatLine(m.styles, "Config file:", m.path))
	if m.exists {
		b.WriteString(m.styles.StatLabel.Render("Status:") + " " + m.styles.Success.Render("File exists") + "\n")
	} else {
		b.WriteString(m.styles.StatLabel.Render("Status:") + " " + m.styles.Warning.Render("Using defaults (no config file)") + "\n")
	}
	b.WriteString(rule(m.width))
	b.WriteString("\n")

	b.WriteString(renderStatLine(m.styles, "default_profile:", m.config.DefaultProfile))
	b.WriteString(renderStatLine(m.styles, "week_start_day:", m.config.WeekStartDay))
	b.WriteString(renderStatLine(m.styles, "timezone:", m.config.Timezone))
	b.WriteString(renderStatLine(m.styles, "storage.backend:", m.services.Storage.Backend()))
	b.WriteString(renderStatLine(m.styles, "storage.dir:", m.services.Storage.Dir()))

	if m.selectingTheme {
		b.WriteString(m.renderThemeSelector())
		return b.String()
	}
	b.WriteString(renderStatLine(m.styles, "theme:", m.themeName))
	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render("Press Enter or 't' to change theme"))
	return b.String()
}

func (m SettingsModel) renderThemeSelector() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.styles.FieldLabelFocused.Render("Select a theme"))
	b.WriteString("\n\n")

	end := min(m.themeOffset+maxVisibleThemes, len(m.themes))
	if m.themeOffset > 0 {
		b.WriteString(m.styles.Hint.Render("  ↑ more themes above"))
		b.WriteString("\n")
	}
	for i := m.themeOffset; i < end; i++ {
		name := m.themes[i]
		if name == m.themeName {
			name += " (current)"
		}
		if i == m.themeCursor {
			b.WriteString(m.styles.Selected.Render("▸ " + name))
		} else {
			b.WriteString("  " + m.styles.StatValue.Render(name))
		}
		b.WriteString("\n")
	}
	if end < len(m.themes) {
		b.WriteString(m.styles.Hint.Render("  ↓ more themes below"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render("↑/↓ navigate  Enter select  Esc cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsSelecting returns true while the theme list is open
func (m SettingsModel) IsSelecting() bool {
	return m.selectingTheme
}
