// Package tui provides the Terminal User Interface for shifttrack.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/shifttrack/internal/profile"
	"github.com/xolan/shifttrack/internal/service"
	"github.com/xolan/shifttrack/internal/tui/ui"
	"github.com/xolan/shifttrack/internal/tui/views"
)

// Screen is the top-level screen being shown
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenHome
)

// Tab represents a view tab of the home screen
type Tab int

const (
	TabShifts Tab = iota
	TabClock
	TabStats
	TabSettings
)

var tabNames = []string{"Shifts", "Clock", "Stats", "Settings"}

// Model is the root TUI model
type Model struct {
	services *service.Services

	screen    Screen
	profile   profile.Profile
	activeTab Tab
	width     int
	height    int
	showHelp  bool
	err       error

	loginView    views.LoginModel
	shiftsView   views.ShiftsModel
	clockView    views.ClockModel
	statsView    views.StatsModel
	settingsView views.SettingsModel

	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model. It opens on the home screen when override
// or the active profile names an existing profile, otherwise on the login
// screen.
func New(services *service.Services, override string) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	m := Model{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		loginView:     views.NewLoginModel(services, styles, keys),
		settingsView:  views.NewSettingsModel(services, themeProvider, styles, keys),
	}

	if p, err := services.Profile.Resolve(override); err == nil {
		m = m.signIn(p)
	}
	return m
}

// signIn switches to the home screen for p
func (m Model) signIn(p profile.Profile) Model {
	m.screen = ScreenHome
	m.profile = p
	m.activeTab = TabShifts
	m.shiftsView = views.NewShiftsModel(m.services, p.ID, m.styles, m.keys)
	m.clockView = views.NewClockModel(m.services, p.ID, m.styles, m.keys)
	m.statsView = views.NewStatsModel(m.services, p.ID, m.styles, m.keys)
	m.resize()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.screen == ScreenLogin {
		return m.loginView.Init()
	}
	return tea.Batch(m.shiftsView.Init(), m.clockView.Init(), m.settingsView.Init())
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.screen == ScreenLogin {
			var cmd tea.Cmd
			m.loginView, cmd = m.loginView.Update(msg)
			return m, cmd
		}
		if handled, cmd := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
		return m.updateActiveView(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case ui.LoggedInMsg:
		m.err = nil
		m = m.signIn(msg.Profile)
		return m, m.Init()

	case ui.LogoutRequestMsg:
		if err := m.services.Profile.Logout(); err != nil && !errors.Is(err, service.ErrNoActiveProfile) {
			m.err = err
			return m, nil
		}
		m.screen = ScreenLogin
		m.profile = profile.Profile{}
		m.loginView = views.NewLoginModel(m.services, m.styles, m.keys)
		m.resize()
		return m, m.loginView.Init()

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		m.styles = m.themeProvider.Styles()
		changed := ui.ThemeChangedMsg{ThemeName: m.themeProvider.CurrentName(), Styles: m.styles}
		m = m.broadcast(changed)
		return m, m.saveTheme(changed.ThemeName)
	}

	// Non-key messages go to every view.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.screen == ScreenLogin {
		m.loginView, cmd = m.loginView.Update(msg)
		return m, cmd
	}
	m.shiftsView, cmd = m.shiftsView.Update(msg)
	cmds = append(cmds, cmd)
	m.clockView, cmd = m.clockView.Update(msg)
	cmds = append(cmds, cmd)
	m.statsView, cmd = m.statsView.Update(msg)
	cmds = append(cmds, cmd)
	m.settingsView, cmd = m.settingsView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleGlobalKey handles keys that apply to every tab of the home screen
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.isCapturingKeys() {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return true, nil
	case key.Matches(msg, m.keys.NextTab):
		return true, m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))
	case key.Matches(msg, m.keys.PrevTab):
		return true, m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))
	case key.Matches(msg, m.keys.Tab1):
		return true, m.switchTab(TabShifts)
	case key.Matches(msg, m.keys.Tab2):
		return true, m.switchTab(TabClock)
	case key.Matches(msg, m.keys.Tab3):
		return true, m.switchTab(TabStats)
	case key.Matches(msg, m.keys.Tab4):
		return true, m.switchTab(TabSettings)
	case key.Matches(msg, m.keys.Logout):
		return true, func() tea.Msg { return ui.LogoutRequestMsg{} }
	}
	return false, nil
}

func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabShifts:
		m.shiftsView, cmd = m.shiftsView.Update(msg)
	case TabClock:
		m.clockView, cmd = m.clockView.Update(msg)
	case TabStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case TabSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}
	return m, cmd
}

// switchTab activates tab and reloads its data
func (m *Model) switchTab(tab Tab) tea.Cmd {
	m.activeTab = tab
	switch tab {
	case TabShifts:
		return m.shiftsView.Init()
	case TabClock:
		return m.clockView.Refresh()
	case TabStats:
		return m.statsView.Init()
	case TabSettings:
		return m.settingsView.Init()
	}
	return nil
}

func (m Model) broadcast(msg tea.Msg) Model {
	m.loginView, _ = m.loginView.Update(msg)
	m.settingsView, _ = m.settingsView.Update(msg)
	if m.screen == ScreenHome {
		m.shiftsView, _ = m.shiftsView.Update(msg)
		m.clockView, _ = m.clockView.Update(msg)
		m.statsView, _ = m.statsView.Update(msg)
	}
	return m
}

func (m *Model) resize() {
	contentHeight := m.height - 4 // tabs and status bar
	m.loginView.SetSize(m.width, m.height)
	m.shiftsView.SetSize(m.width, contentHeight)
	m.clockView.SetSize(m.width, contentHeight)
	m.statsView.SetSize(m.width, contentHeight)
	m.settingsView.SetSize(m.width, contentHeight)
}

// isCapturingKeys reports whether the active view is reading typed input
func (m Model) isCapturingKeys() bool {
	switch m.activeTab {
	case TabShifts:
		return m.shiftsView.IsInputMode()
	case TabClock:
		return m.clockView.IsInputMode()
	case TabSettings:
		return m.settingsView.IsSelecting()
	}
	return false
}

// saveTheme persists the chosen theme to the config file
func (m Model) saveTheme(themeName string) tea.Cmd {
	return func() tea.Msg {
		cfg := m.services.Config.Get()
		cfg.Theme = themeName
		_ = m.services.Config.Update(cfg)
		return nil
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.screen == ScreenLogin {
		title := m.styles.ViewTitle.Render("shifttrack")
		return m.styles.App.Render(title + "\n" + m.loginView.View())
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabShifts:
		b.WriteString(m.shiftsView.View())
	case TabClock:
		b.WriteString(m.clockView.View())
	case TabStats:
		b.WriteString(m.statsView.View())
	case TabSettings:
		b.WriteString(m.settingsView.View())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.styles.App.Render(m.renderHelp())
	}
	return m.styles.App.Render(b.String())
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderStatusBar() string {
	parts := []string{m.styles.StatusUser.Render(m.profile.DisplayName())}

	if m.isCapturingKeys() {
		parts = append(parts, m.renderKeyHelp("Enter", "confirm"), m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabShifts:
			parts = append(parts,
				m.renderKeyHelp("a", "add"),
				m.renderKeyHelp("d", "delete"),
				m.renderKeyHelp("/", "search"),
				m.renderKeyHelp("r", "refresh"))
		case TabClock:
			parts = append(parts,
				m.renderKeyHelp("i", "in"),
				m.renderKeyHelp("o", "out"),
				m.renderKeyHelp("c", "discard"))
		case TabStats:
			parts = append(parts,
				m.renderKeyHelp("w", "week"),
				m.renderKeyHelp("m", "month"))
		case TabSettings:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}
		parts = append(parts,
			m.renderKeyHelp("l", "log out"),
			m.renderKeyHelp("?", "help"),
			m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")
	if padding := m.width - lipgloss.Width(content); padding > 0 {
		content += strings.Repeat(" ", padding)
	}
	return m.styles.StatusBar.Render(content)
}

func (m Model) renderKeyHelp(key, desc string) string {
	return m.styles.StatusKey.Render(key) + " " + m.styles.StatusHelp.Render(desc)
}

func (m Model) renderHelp() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")
	help.WriteString(m.styles.FieldLabelFocused.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-4    Switch views\n")
	help.WriteString("  l          Log out\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n\n")

	switch m.activeTab {
	case TabShifts:
		help.WriteString(m.styles.FieldLabelFocused.Render("Shifts:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  a          Add a shift\n")
		help.WriteString("  d          Delete the selected shift\n")
		help.WriteString("  /          Search notes (Esc clears)\n")
		help.WriteString("  r          Refresh\n")
	case TabClock:
		help.WriteString(m.styles.FieldLabelFocused.Render("Clock:"))
		help.WriteString("\n")
		help.WriteString("  i          Clock in\n")
		help.WriteString("  o          Clock out and record the shift\n")
		help.WriteString("  c          Discard the running clock\n")
	case TabStats:
		help.WriteString(m.styles.FieldLabelFocused.Render("Stats:"))
		help.WriteString("\n")
		help.WriteString("  w          This week\n")
		help.WriteString("  m          This month\n")
		help.WriteString("  r          Refresh\n")
	case TabSettings:
		help.WriteString(m.styles.FieldLabelFocused.Render("Settings:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.Hint.Render("Press ? to close"))
	return m.styles.Dialog.Render(help.String())
}

// Screen returns the screen being shown
func (m Model) Screen() Screen {
	return m.screen
}

// ActiveTab returns the active home screen tab
func (m Model) ActiveTab() Tab {
	return m.activeTab
}

// Run starts the TUI application
func Run(services *service.Services, override string) error {
	p := tea.NewProgram(New(services, override), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
