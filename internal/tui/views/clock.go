package views

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/service"
	"github.com/xolan/shifttrack/internal/timer"
	"github.com/xolan/shifttrack/internal/tui/ui"
)

// ClockModel clocks the profile in and out of a running shift
type ClockModel struct {
	services  *service.Services
	profileID string
	styles    ui.Styles
	keys      ui.KeyMap

	width   int
	height  int
	status  *service.ClockStatus
	loading bool
	err     error
	last    *entry.Entry

	// Note input shown before clocking in
	inputMode bool
	input     textinput.Model
}

// NewClockModel creates a new clock view model
func NewClockModel(services *service.Services, profileID string, styles ui.Styles, keys ui.KeyMap) ClockModel {
	ti := textinput.New()
	ti.Placeholder = "Optional note..."
	ti.CharLimit = 200
	ti.Width = 50

	return ClockModel{
		services:  services,
		profileID: profileID,
		styles:    styles,
		keys:      keys,
		loading:   true,
		input:     ti,
	}
}

// clockStatusMsg is sent when the clock state is loaded or changed
type clockStatusMsg struct {
	status *service.ClockStatus
	out    *entry.Entry
	err    error
}

// clockTickMsg is sent every second to update elapsed time
type clockTickMsg time.Time

// Init implements tea.Model
func (m ClockModel) Init() tea.Cmd {
	return tea.Batch(m.loadStatus(), m.tick())
}

// Update implements tea.Model
func (m ClockModel) Update(msg tea.Msg) (ClockModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			return m.handleInputMode(msg)
		}

		running := m.status != nil && m.status.Running
		switch {
		case key.Matches(msg, m.keys.ClockIn) && !running:
			m.inputMode = true
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.ClockOut) && running:
			return m, m.clockOut()
		case key.Matches(msg, m.keys.Cancel) && running:
			return m, m.cancel()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadStatus()
		}

	case clockStatusMsg:
		m.loading = false
		m.inputMode = false
		m.err = msg.err
		if msg.status != nil {
			m.status = msg.status
		}
		if msg.out != nil {
			m.last = msg.out
		}
		return m, nil

	case clockTickMsg:
		if m.status != nil && m.status.Running {
			m.status.Elapsed = m.status.State.Elapsed(time.Time(msg))
		}
		return m, m.tick()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.inputMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ClockModel) handleInputMode(msg tea.KeyMsg) (ClockModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		m.inputMode = false
		m.input.Blur()
		return m, m.clockIn(strings.TrimSpace(m.input.Value()))
	case key.Matches(msg, m.keys.Back):
		m.inputMode = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m ClockModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Clock"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(renderError(m.styles, m.err))
		b.WriteString("\n\n")
	}

	if m.inputMode {
		b.WriteString(m.styles.FieldLabelFocused.Render("▸ Note:"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.styles.Hint.Render("Enter to clock in, Esc to cancel"))
		return b.String()
	}

	if m.status == nil || !m.status.Running {
		b.WriteString(m.styles.ClockStopped.Render("Not clocked in"))
		b.WriteString("\n\n")
		if m.last != nil {
			b.WriteString(m.styles.Success.Render("Recorded " + cli.FormatEntryLine(*m.last)))
			b.WriteString("\n\n")
		}
		b.WriteString(m.styles.Hint.Render("Press 'i' to clock in"))
		return b.String()
	}

	state := m.status.State
	b.WriteString(m.styles.ClockRunning.Render("● Clocked in"))
	b.WriteString("\n\n")
	b.WriteString(renderStatLine(m.styles, "Started:", cli.FormatClockStartTime(state.StartedAt, time.Now())))
	b.WriteString(m.styles.StatLabel.Render("Elapsed:"))
	b.WriteString(" ")
	b.WriteString(m.styles.ClockElapsed.Render(cli.FormatElapsedTime(m.status.Elapsed)))
	b.WriteString("\n")
	if state.Note != "" {
		b.WriteString(renderStatLine(m.styles, "Note:", state.Note))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render("Press 'o' to clock out, 'c' to discard"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *ClockModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m ClockModel) IsInputMode() bool {
	return m.inputMode
}

func (m ClockModel) loadStatus() tea.Cmd {
	profileID := m.profileID
	return func() tea.Msg {
		status, err := m.services.Clock.Status(profileID)
		return clockStatusMsg{status: status, err: err}
	}
}

func (m ClockModel) clockIn(note string) tea.Cmd {
	profileID := m.profileID
	return func() tea.Msg {
		if _, err := m.services.Clock.In(profileID, note); err != nil && !errors.Is(err, timer.ErrRunning) {
			return clockStatusMsg{err: err}
		}
		status, err := m.services.Clock.Status(profileID)
		return clockStatusMsg{status: status, err: err}
	}
}

func (m ClockModel) clockOut() tea.Cmd {
	profileID := m.profileID
	return func() tea.Msg {
		e, err := m.services.Clock.Out(profileID)
		if err != nil {
			return clockStatusMsg{err: err}
		}
		status, err := m.services.Clock.Status(profileID)
		return clockStatusMsg{status: status, out: &e, err: err}
	}
}

func (m ClockModel) cancel() tea.Cmd {
	profileID := m.profileID
	return func() tea.Msg {
		if _, err := m.services.Clock.Cancel(profileID); err != nil {
			return clockStatusMsg{err: err}
		}
		status, err := m.services.Clock.Status(profileID)
		return clockStatusMsg{status: status, err: err}
	}
}

func (m ClockModel) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// Refresh reloads the clock state without starting another tick loop
func (m ClockModel) Refresh() tea.Cmd {
	return m.loadStatus()
}
