package views

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/shifttrack/internal/service"
	"github.com/xolan/shifttrack/internal/tui/ui"
)

type loginMode int

const (
	loginModeSignIn loginMode = iota
	loginModeSignUp
)

// Sign-up field order
const (
	signUpName = iota
	signUpSurname
	signUpID
)

var errMissingFields = errors.New("name, surname and user id are all required")

// LoginModel is the sign-in / sign-up screen shown before any profile is active
type LoginModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int

	mode    loginMode
	idInput textinput.Model
	signUp  []textinput.Model
	focused int
	err     error
}

// loginFailedMsg carries a rejected sign-in or sign-up
type loginFailedMsg struct {
	err error
}

// NewLoginModel creates a new login screen
func NewLoginModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) LoginModel {
	idInput := newInput("User id", 64)
	idInput.Focus()

	signUp := []textinput.Model{
		newInput("Name", 64),
		newInput("Surname", 64),
		newInput("User id (letters, digits, . _ -)", 64),
	}

	return LoginModel{
		services: services,
		styles:   styles,
		keys:     keys,
		idInput:  idInput,
		signUp:   signUp,
	}
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

// Init implements tea.Model
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.SwitchForm):
			return m.switchMode(), textinput.Blink
		case key.Matches(msg, m.keys.Select):
			return m.submit()
		}
		if m.mode == loginModeSignUp {
			switch {
			case key.Matches(msg, m.keys.NextField):
				return m.focus((m.focused + 1) % len(m.signUp)), textinput.Blink
			case key.Matches(msg, m.keys.PrevField):
				return m.focus((m.focused - 1 + len(m.signUp)) % len(m.signUp)), textinput.Blink
			}
		}

	case loginFailedMsg:
		m.err = msg.err
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	var cmd tea.Cmd
	if m.mode == loginModeSignIn {
		m.idInput, cmd = m.idInput.Update(msg)
	} else {
		m.signUp[m.focused], cmd = m.signUp[m.focused].Update(msg)
	}
	return m, cmd
}

func (m LoginModel) switchMode() LoginModel {
	m.err = nil
	if m.mode == loginModeSignIn {
		m.mode = loginModeSignUp
		m.idInput.Blur()
		return m.focus(signUpName)
	}
	m.mode = loginModeSignIn
	for i := range m.signUp {
		m.signUp[i].Blur()
	}
	m.idInput.Focus()
	return m
}

func (m LoginModel) focus(i int) LoginModel {
	// Copy so earlier model values keep their own inputs.
	inputs := make([]textinput.Model, len(m.signUp))
	copy(inputs, m.signUp)
	for j := range inputs {
		if j == i {
			inputs[j].Focus()
		} else {
			inputs[j].Blur()
		}
	}
	m.signUp = inputs
	m.focused = i
	return m
}

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	if m.mode == loginModeSignIn {
		id := strings.TrimSpace(m.idInput.Value())
		if id == "" {
			return m, nil
		}
		return m, m.signIn(id)
	}

	name := strings.TrimSpace(m.signUp[signUpName].Value())
	surname := strings.TrimSpace(m.signUp[signUpSurname].Value())
	id := strings.TrimSpace(m.signUp[signUpID].Value())
	if name == "" || surname == "" || id == "" {
		m.err = errMissingFields
		return m, nil
	}
	return m, m.register(id, name, surname)
}

func (m LoginModel) signIn(id string) tea.Cmd {
	return func() tea.Msg {
		p, err := m.services.Profile.Login(id)
		if err != nil {
			return loginFailedMsg{err: err}
		}
		return ui.LoggedInMsg{Profile: p}
	}
}

func (m LoginModel) register(id, name, surname string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.services.Profile.Create(id, name, surname); err != nil {
			return loginFailedMsg{err: err}
		}
		p, err := m.services.Profile.Login(id)
		if err != nil {
			return loginFailedMsg{err: err}
		}
		return ui.LoggedInMsg{Profile: p}
	}
}

// View implements tea.Model
func (m LoginModel) View() string {
	var b strings.Builder

	if m.mode == loginModeSignIn {
		b.WriteString(m.styles.ViewTitle.Render("Sign in"))
		b.WriteString("\n\n")
		b.WriteString(m.renderField("User id:", m.idInput, true))
	} else {
		b.WriteString(m.styles.ViewTitle.Render("Sign up"))
		b.WriteString("\n\n")
		labels := []string{"Name:", "Surname:", "User id:"}
		for i, input := range m.signUp {
			b.WriteString(m.renderField(labels[i], input, i == m.focused))
		}
	}

	if m.err != nil {
		b.WriteString(renderError(m.styles, m.err))
		b.WriteString("\n\n")
	}

	if m.mode == loginModeSignIn {
		b.WriteString(m.styles.Hint.Render("Enter to sign in, ctrl+n to sign up, ctrl+c to quit"))
	} else {
		b.WriteString(m.styles.Hint.Render("Tab to switch fields, Enter to sign up, ctrl+n to sign in"))
	}
	return m.styles.Dialog.Render(b.String())
}

func (m LoginModel) renderField(label string, input textinput.Model, focused bool) string {
	style := m.styles.FieldLabel
	if focused {
		style = m.styles.FieldLabelFocused
		label = "▸ " + label
	}
	return style.Render(label) + "\n" + input.View() + "\n\n"
}

// SetSize sets the view dimensions
func (m *LoginModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsSignUp reports whether the sign-up form is showing
func (m LoginModel) IsSignUp() bool {
	return m.mode == loginModeSignUp
}
