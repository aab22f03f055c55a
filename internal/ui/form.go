package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskgrid/internal/app"
	"taskgrid/internal/task"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDeadline
	fieldPriority
	fieldStatus
	fieldTags
)

var formLabels = []string{
	"Title",
	"Description",
	"Deadline (YYYY-MM-DD HH:MM)",
	"Priority (Low/Medium/High)",
	"Status (Active/Done)",
	"Tags (comma-separated)",
}

func newForm() []textinput.Model {
	fields := make([]textinput.Model, len(formLabels))
	for i, label := range formLabels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 256
		ti.Width = 40
		fields[i] = ti
	}
	return fields
}

func (m Model) startForm(e task.Entry) (tea.Model, tea.Cmd) {
	t := e.Task
	values := []string{
		t.Title,
		t.Description,
		t.Deadline,
		t.Priority.String(),
		t.Status.String(),
		app.JoinTags(t.Tags),
	}
	for i := range m.form {
		m.form[i].SetValue(values[i])
		m.form[i].CursorEnd()
		m.form[i].Blur()
	}
	m.editing = e.ID
	m.focus = 0
	m.form[0].Focus()
	m.mode = modeForm
	if e.ID == "" {
		m.status = "New task"
	} else {
		m.status = "Editing task"
	}
	return m, textinput.Blink
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Cancel, "esc":
		m.form[m.focus].Blur()
		m.mode = modeList
		m.editing = ""
		m.status = "Cancelled"
		return m, nil
	case "tab", "down":
		return m.moveFocus(1), nil
	case "shift+tab", "up":
		return m.moveFocus(-1), nil
	case m.cfg.Keys.Confirm, "enter":
		if m.focus < len(m.form)-1 {
			return m.moveFocus(1), nil
		}
		return m.submitForm()
	}
	var cmd tea.Cmd
	m.form[m.focus], cmd = m.form[m.focus].Update(msg)
	return m, cmd
}

func (m Model) moveFocus(delta int) Model {
	m.form[m.focus].Blur()
	m.focus = wrapIndex(m.focus+delta, len(m.form))
	m.form[m.focus].Focus()
	return m
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	t, warnings := app.ParseTaskFields(
		m.form[fieldTitle].Value(),
		m.form[fieldDescription].Value(),
		m.form[fieldPriority].Value(),
		m.form[fieldStatus].Value(),
		m.form[fieldDeadline].Value(),
		m.form[fieldTags].Value(),
	)
	for _, w := range warnings {
		m.logger.Warn(w)
	}

	var err error
	if m.editing == "" {
		var id task.ID
		id, err = m.session.Add(t)
		// a sort or filter may place the new task anywhere, or hide it
		if i := slices.IndexFunc(m.visible(), func(e task.Entry) bool { return e.ID == id }); i >= 0 {
			m.cursor = i
		}
	} else {
		_, err = m.session.EditID(m.editing, t)
	}
	m.form[m.focus].Blur()
	m.mode = modeList
	m.editing = ""

	switch {
	case err != nil:
		m.status = fmt.Sprintf("save failed: %v", err)
	case len(warnings) > 0:
		m.status = "Saved. " + strings.Join(warnings, "; ")
	default:
		m.status = "Saved"
	}
	return m, nil
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i, f := range m.form {
		prefix := " "
		if i == m.focus {
			prefix = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n  %s\n", prefix, formLabels[i], f.View()))
	}
	return b.String()
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
