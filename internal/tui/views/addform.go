package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/shifttrack/internal/service"
	"github.com/xolan/shifttrack/internal/tui/ui"
)

// Add form field order
const (
	fieldDate = iota
	fieldFrom
	fieldTo
	fieldDuration
	fieldNote
	fieldCount
)

var fieldLabels = [fieldCount]string{"Date:", "From:", "To:", "Duration:", "Note:"}

// AddForm collects the values of a new shift
type AddForm struct {
	styles  ui.Styles
	keys    ui.KeyMap
	inputs  []textinput.Model
	focused int
	err     error
}

// addFormSubmitMsg carries the filled-in request to the owning view
type addFormSubmitMsg struct {
	req service.AddRequest
}

// addFormCancelMsg is sent when the form is dismissed with Esc
type addFormCancelMsg struct{}

// NewAddForm creates an empty add form with the date field focused
func NewAddForm(styles ui.Styles, keys ui.KeyMap) AddForm {
	inputs := []textinput.Model{
		newInput("YYYY-MM-DD (default today)", 10),
		newInput("HH:MM", 5),
		newInput("HH:MM", 5),
		newInput("e.g. 7h30m (instead of To)", 10),
		newInput("Optional note", 200),
	}
	f := AddForm{styles: styles, keys: keys, inputs: inputs}
	return f.focus(fieldDate)
}

func (f AddForm) focus(i int) AddForm {
	inputs := make([]textinput.Model, len(f.inputs))
	copy(inputs, f.inputs)
	for j := range inputs {
		if j == i {
			inputs[j].Focus()
		} else {
			inputs[j].Blur()
		}
	}
	f.inputs = inputs
	f.focused = i
	return f
}

// Update handles a message while the form is open
func (f AddForm) Update(msg tea.Msg) (AddForm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.keys.Back):
			return f, func() tea.Msg { return addFormCancelMsg{} }
		case key.Matches(msg, f.keys.Select):
			req := f.Request()
			return f, func() tea.Msg { return addFormSubmitMsg{req: req} }
		case key.Matches(msg, f.keys.NextField):
			return f.focus((f.focused + 1) % fieldCount), textinput.Blink
		case key.Matches(msg, f.keys.PrevField):
			return f.focus((f.focused - 1 + fieldCount) % fieldCount), textinput.Blink
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd
}

// Request returns the form values as an add request
func (f AddForm) Request() service.AddRequest {
	value := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }
	return service.AddRequest{
		Date:     value(fieldDate),
		From:     value(fieldFrom),
		To:       value(fieldTo),
		Duration: value(fieldDuration),
		Note:     value(fieldNote),
	}
}

// WithError returns the form showing err below the fields
func (f AddForm) WithError(err error) AddForm {
	f.err = err
	return f
}

// SetValue fills field i, used to prefill the form
func (f *AddForm) SetValue(i int, v string) {
	f.inputs[i].SetValue(v)
}

// View renders the form
func (f AddForm) View() string {
	var b strings.Builder
	b.WriteString(f.styles.ViewTitle.Render("Add Shift"))
	b.WriteString("\n\n")

	for i, input := range f.inputs {
		label := fieldLabels[i]
		style := f.styles.FieldLabel
		if i == f.focused {
			label = "▸ " + label
			style = f.styles.FieldLabelFocused
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	if f.err != nil {
		b.WriteString(renderError(f.styles, f.err))
		b.WriteString("\n\n")
	}
	b.WriteString(f.styles.Hint.Render("Tab to switch fields, Enter to save, Esc to cancel"))
	return b.String()
}
