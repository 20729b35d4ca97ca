package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/shifttrack/internal/cli"
	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/filter"
	"github.com/xolan/shifttrack/internal/service"
	"github.com/xolan/shifttrack/internal/tui/ui"
)

// shiftMode represents the current mode of the shifts view
type shiftMode int

const (
	shiftModeNormal shiftMode = iota
	shiftModeAdd
	shiftModeDelete
	shiftModeSearch
)

// ShiftsModel lists the profile's shifts in a table and adds or deletes them
type ShiftsModel struct {
	services  *service.Services
	profileID string
	styles    ui.Styles
	keys      ui.KeyMap

	width  int
	height int

	table   table.Model
	entries []entry.Entry
	period  string
	total   int
	loading bool
	err     error
	status  string

	mode        shiftMode
	form        AddForm
	searchInput textinput.Model
	keyword     string
}

// shiftsLoadedMsg is sent when the shift list is loaded
type shiftsLoadedMsg struct {
	result *service.ListResult
	err    error
}

// shiftAddedMsg is sent when the add form was saved
type shiftAddedMsg struct {
	entry entry.Entry
}

// shiftAddFailedMsg is sent when saving the add form was rejected
type shiftAddFailedMsg struct {
	err error
}

// shiftDeletedMsg is sent when a shift was deleted
type shiftDeletedMsg struct {
	entry entry.Entry
	err   error
}

// NewShiftsModel creates the shifts view for profileID
func NewShiftsModel(services *service.Services, profileID string, styles ui.Styles, keys ui.KeyMap) ShiftsModel {
	t := table.New(
		table.WithColumns(shiftColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(styles.Table)

	searchInput := textinput.New()
	searchInput.Placeholder = "Search notes..."
	searchInput.CharLimit = 100
	searchInput.Width = 40

	return ShiftsModel{
		services:    services,
		profileID:   profileID,
		styles:      styles,
		keys:        keys,
		table:       t,
		loading:     true,
		searchInput: searchInput,
	}
}

// Init implements tea.Model
func (m ShiftsModel) Init() tea.Cmd {
	return m.loadShifts()
}

// Update implements tea.Model
func (m ShiftsModel) Update(msg tea.Msg) (ShiftsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case shiftModeAdd:
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		case shiftModeDelete:
			return m.handleDeleteMode(msg)
		case shiftModeSearch:
			return m.handleSearchMode(msg)
		}
		return m.handleNormalMode(msg)

	case addFormCancelMsg:
		m.mode = shiftModeNormal
		return m, nil

	case addFormSubmitMsg:
		return m, m.addShift(msg.req)

	case shiftAddFailedMsg:
		m.form = m.form.WithError(msg.err)
		return m, nil

	case shiftAddedMsg:
		m.mode = shiftModeNormal
		when := msg.entry.DateString()
		if msg.entry.HasRange() {
			when += " " + cli.FormatTimeRange(msg.entry)
		}
		m.status = fmt.Sprintf("Logged %s (%sh)", when, cli.FormatHours(msg.entry.Hours()))
		return m, m.loadShifts()

	case shiftDeletedMsg:
		m.mode = shiftModeNormal
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted %s (%s)", msg.entry.DateString(), cli.FormatDuration(msg.entry.DurationMinutes))
		return m, m.loadShifts()

	case shiftsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.result.Entries
			m.period = msg.result.Period
			m.total = msg.result.Total
			m.table.SetRows(shiftRows(m.entries))
			if m.table.Cursor() >= len(m.entries) {
				m.table.SetCursor(max(0, len(m.entries)-1))
			}
		}
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.form.styles = msg.Styles
		m.table.SetStyles(msg.Styles.Table)
		return m, nil
	}

	if m.mode == shiftModeAdd {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	if m.mode == shiftModeSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ShiftsModel) handleNormalMode(msg tea.KeyMsg) (ShiftsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		m.mode = shiftModeAdd
		m.status = ""
		m.form = NewAddForm(m.styles, m.keys)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.Selected(); ok {
			m.mode = shiftModeDelete
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadShifts()
	case key.Matches(msg, m.keys.Search):
		m.mode = shiftModeSearch
		m.searchInput.SetValue(m.keyword)
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Back):
		if m.keyword != "" {
			m.keyword = ""
			return m, m.loadShifts()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ShiftsModel) handleDeleteMode(msg tea.KeyMsg) (ShiftsModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if e, ok := m.Selected(); ok {
			return m, m.deleteShift(e.ID)
		}
		m.mode = shiftModeNormal
	case "n", "N", "esc":
		m.mode = shiftModeNormal
	}
	return m, nil
}

func (m ShiftsModel) handleSearchMode(msg tea.KeyMsg) (ShiftsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		m.keyword = strings.TrimSpace(m.searchInput.Value())
		m.mode = shiftModeNormal
		m.searchInput.Blur()
		return m, m.loadShifts()
	case key.Matches(msg, m.keys.Back):
		m.mode = shiftModeNormal
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// Selected returns the shift under the table cursor
func (m ShiftsModel) Selected() (entry.Entry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return entry.Entry{}, false
	}
	return m.entries[i], true
}

// View implements tea.Model
func (m ShiftsModel) View() string {
	switch m.mode {
	case shiftModeAdd:
		return m.form.View()
	case shiftModeDelete:
		return m.renderDeleteConfirm()
	}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Shifts for " + cli.BuildPeriodWithKeyword(m.period, m.keyword)))
	b.WriteString("\n")

	if m.mode == shiftModeSearch {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}
	if m.err != nil {
		b.WriteString(renderError(m.styles, m.err))
		return b.String()
	}

	if len(m.entries) == 0 {
		b.WriteString(m.styles.Hint.Render("No shifts found"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Hint.Render("Press 'a' to add a shift"))
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(rule(m.width))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Total: %s in %d %s",
			m.styles.Hours.Render(cli.FormatHours(entry.Entry{DurationMinutes: m.total}.Hours())+"h"),
			len(m.entries),
			cli.Pluralize("shift", len(m.entries))))
	}

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Success.Render(m.status))
	}
	return b.String()
}

func (m ShiftsModel) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Delete Shift"))
	b.WriteString("\n\n")

	if e, ok := m.Selected(); ok {
		b.WriteString(m.styles.Warning.Render("Are you sure you want to delete this shift?"))
		b.WriteString("\n\n")
		b.WriteString(renderStatLine(m.styles, "Date:", e.DateString()))
		if e.HasRange() {
			b.WriteString(renderStatLine(m.styles, "Time:", cli.FormatTimeRange(e)))
		}
		b.WriteString(renderStatLine(m.styles, "Hours:", cli.FormatHours(e.Hours())))
		if e.Note != "" {
			b.WriteString(renderStatLine(m.styles, "Note:", e.Note))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Hint.Render("Press Y to confirm, N or Esc to cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *ShiftsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(shiftColumns(width))
	m.table.SetHeight(max(3, height-6))
}

// IsInputMode returns true when the view is capturing keyboard input
func (m ShiftsModel) IsInputMode() bool {
	return m.mode != shiftModeNormal
}

func (m ShiftsModel) loadShifts() tea.Cmd {
	profileID := m.profileID
	f := filter.Filter{Keyword: m.keyword}
	return func() tea.Msg {
		result, err := m.services.Entry.List(profileID, f)
		return shiftsLoadedMsg{result: result, err: err}
	}
}

func (m ShiftsModel) addShift(req service.AddRequest) tea.Cmd {
	req.ProfileID = m.profileID
	return func() tea.Msg {
		e, err := m.services.Entry.Add(req)
		if err != nil {
			return shiftAddFailedMsg{err: err}
		}
		return shiftAddedMsg{entry: e}
	}
}

func (m ShiftsModel) deleteShift(id string) tea.Cmd {
	profileID := m.profileID
	return func() tea.Msg {
		e, err := m.services.Entry.Delete(profileID, id)
		return shiftDeletedMsg{entry: e, err: err}
	}
}
