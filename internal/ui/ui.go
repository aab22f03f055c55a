package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskgrid/internal/app"
	"taskgrid/internal/config"
	"taskgrid/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modePrompt
	modeCalendar
)

type promptKind int

const (
	promptTag promptKind = iota
	promptSearch
)

type Model struct {
	session *app.Session
	cfg     config.Config
	clock   task.Clock
	logger  *log.Logger

	mode   mode
	cursor int
	status string
	width  int

	filter app.Filter
	order  app.Order

	form       []textinput.Model
	focus      int
	editing    task.ID
	pendingDel task.ID

	prompt     textinput.Model
	promptKind promptKind

	calMonth task.YearMonth
}

func New(session *app.Session, cfg config.Config, clock task.Clock, logger *log.Logger) Model {
	order, err := app.ParseOrder(cfg.DefaultSort)
	if err != nil {
		order = app.Unsorted
	}
	prompt := textinput.New()
	prompt.CharLimit = 64
	prompt.Width = 30

	return Model{
		session: session,
		cfg:     cfg,
		clock:   clock,
		logger:  logger,
		order:   order,
		form:    newForm(),
		prompt:  prompt,
		status:  fmt.Sprintf("Press '%s' to add, '%s' for the calendar.", cfg.Keys.Add, cfg.Keys.Calendar),
	}
}

func Run(session *app.Session, cfg config.Config, logger *log.Logger) error {
	program := tea.NewProgram(New(session, cfg, task.SystemClock, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.pendingDel != "" {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modePrompt:
			return m.updatePrompt(msg)
		case modeCalendar:
			return m.updateCalendar(msg.String())
		}
		return m.updateList(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		for i := range m.form {
			m.form[i].Width = max(20, msg.Width-40)
		}
	}
	return m, nil
}

// visible is the list as currently filtered and sorted.
func (m Model) visible() []task.Entry {
	return app.SortByDeadline(m.filter.Apply(m.session.Store.Entries()), m.order)
}

func (m Model) selected() (task.Entry, bool) {
	entries := m.visible()
	if len(entries) == 0 {
		return task.Entry{}, false
	}
	return entries[clampCursor(m.cursor, len(entries))], true
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	keys := m.cfg.Keys
	n := len(m.visible())
	switch key {
	case keys.Quit:
		return m, tea.Quit
	case keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, n)
	case keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, n)
	case keys.Add:
		return m.startForm(task.Entry{Task: task.Task{
			Priority: task.Medium,
			Deadline: m.clock.Now().Format(task.DeadlineLayout),
		}})
	case keys.Edit, keys.Confirm:
		e, ok := m.selected()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.startForm(e)
	case keys.Delete:
		e, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pendingDel = e.ID
		m.status = fmt.Sprintf("Delete %q? y/n", e.Task.Title)
	case keys.Undo:
		m.status = m.report(m.session.Undo())("Undone", "Nothing to undo")
	case keys.Redo:
		m.status = m.report(m.session.Redo())("Redone", "Nothing to redo")
	case keys.FilterTag:
		return m.startPrompt(promptTag, m.filter.Tag)
	case keys.Search:
		return m.startPrompt(promptSearch, m.filter.Keyword)
	case keys.FilterStatus:
		m.filter.Status = nextStatus(m.filter.Status)
		m.cursor = 0
		m.status = "Status filter: " + statusLabel(m.filter.Status)
	case keys.Sort:
		m.order = m.order.Next()
		m.status = "Sort by deadline: " + m.order.String()
	case keys.Calendar:
		months := m.session.Store.Calendar().Months()
		if len(months) == 0 {
			m.status = "No tasks with a valid deadline"
			return m, nil
		}
		m.calMonth = months[0]
		m.mode = modeCalendar
		m.status = ""
	case keys.Cancel:
		m.filter = app.Filter{}
		m.cursor = 0
		m.status = "Filters cleared"
	}
	return m, nil
}

// report turns a session result into a status line.
func (m Model) report(changed bool, err error) func(yes, no string) string {
	return func(yes, no string) string {
		switch {
		case err != nil:
			return fmt.Sprintf("save failed: %v", err)
		case changed:
			return yes
		}
		return no
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	id := m.pendingDel
	m.pendingDel = ""
	switch key {
	case "y", "Y":
		m.status = m.report(m.session.DeleteID(id))("Deleted task", "Nothing to delete")
		m.cursor = clampCursor(m.cursor, len(m.visible()))
	default:
		m.status = "Delete cancelled"
	}
	return m, nil
}

func (m Model) startPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	m.mode = modePrompt
	m.promptKind = kind
	m.prompt.SetValue(value)
	m.prompt.Placeholder = "empty clears"
	m.prompt.Focus()
	if kind == promptTag {
		m.status = "Filter by tag"
	} else {
		m.status = "Search title and description"
	}
	return m, textinput.Blink
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.prompt.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		v := m.prompt.Value()
		if m.promptKind == promptTag {
			m.filter.Tag = strings.TrimSpace(v)
		} else {
			m.filter.Keyword = v
		}
		m.mode = modeList
		m.prompt.Blur()
		m.cursor = 0
		m.status = fmt.Sprintf("%d matching", len(m.visible()))
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(m.describeView()))
	b.WriteString("\n\n")

	switch m.mode {
	case modeCalendar:
		b.WriteString(m.renderCalendar())
	case modeForm:
		b.WriteString(m.renderForm())
	default:
		b.WriteString(m.renderTaskList())
		if m.mode == modePrompt {
			b.WriteString("\n")
			b.WriteString(m.prompt.View())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.renderHelp()))
	return b.String()
}

func (m Model) describeView() string {
	parts := []string{fmt.Sprintf("%d total", m.session.Store.Len())}
	if m.filter.Tag != "" {
		parts = append(parts, "tag:"+m.filter.Tag)
	}
	if m.filter.Status != nil {
		parts = append(parts, "status:"+m.filter.Status.String())
	}
	if m.filter.Keyword != "" {
		parts = append(parts, fmt.Sprintf("search:%q", m.filter.Keyword))
	}
	if m.order != app.Unsorted {
		parts = append(parts, "sort:"+m.order.String())
	}
	return strings.Join(parts, " • ")
}

func (m Model) renderTaskList() string {
	entries := m.visible()
	if len(entries) == 0 {
		return fmt.Sprintf("No tasks. Press '%s' to add one.\n", m.cfg.Keys.Add)
	}
	now := m.clock.Now()
	var b strings.Builder
	for i, e := range entries {
		cursor := " "
		if i == clampCursor(m.cursor, len(entries)) {
			cursor = ">"
		}
		t := e.Task
		checkbox := "[ ]"
		if t.Status == task.Done {
			checkbox = "[x]"
		}
		line := fmt.Sprintf("%s %s %s | %s | %s", cursor, checkbox, t.Title, t.Deadline, priorityStyle(t.Priority).Render(t.Priority.String()))
		if len(t.Tags) > 0 {
			line += " | " + formatTags(t.Tags)
		}
		b.WriteString(urgencyMark(task.Classify(t.Deadline, now)))
		b.WriteString(" ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHelp() string {
	k := m.cfg.Keys
	switch m.mode {
	case modeForm:
		return "tab/shift+tab move • enter next/save • esc cancel"
	case modeCalendar:
		return fmt.Sprintf("%s/%s month • %s back", k.PrevMonth, k.NextMonth, k.Cancel)
	}
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s delete • %s undo • %s redo • %s tag • %s status • %s search • %s sort • %s calendar • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Undo, k.Redo, k.FilterTag, k.FilterStatus, k.Search, k.Sort, k.Calendar, k.Quit)
}

func formatTags(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, ", ")
}

func nextStatus(s *task.Status) *task.Status {
	if s == nil {
		active := task.Active
		return &active
	}
	if *s == task.Active {
		done := task.Done
		return &done
	}
	return nil
}

func statusLabel(s *task.Status) string {
	if s == nil {
		return "all"
	}
	return s.String()
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
