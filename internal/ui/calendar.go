package ui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskgrid/internal/task"
)

const (
	cellWidth    = 14
	tasksPerCell = 2
)

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (m Model) updateCalendar(key string) (tea.Model, tea.Cmd) {
	months := m.session.Store.Calendar().Months()
	if len(months) == 0 {
		m.mode = modeList
		return m, nil
	}
	i := slices.Index(months, m.calMonth)
	if i < 0 {
		i = 0
	}
	switch key {
	case m.cfg.Keys.PrevMonth, "h":
		i = max(0, i-1)
	case m.cfg.Keys.NextMonth, "l":
		i = min(len(months)-1, i+1)
	case m.cfg.Keys.Cancel, m.cfg.Keys.Calendar, m.cfg.Keys.Quit:
		m.mode = modeList
		return m, nil
	}
	m.calMonth = months[i]
	return m, nil
}

func (m Model) renderCalendar() string {
	g := m.session.Store.Calendar().Grid(m.calMonth.Year, m.calMonth.Month)
	return RenderGrid(g)
}

// RenderGrid draws a Monday-first month grid with up to two task titles per
// day.
func RenderGrid(g task.MonthGrid) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(g.YearMonth.String()))
	b.WriteString("\n")
	for _, d := range weekdays {
		b.WriteString(pad(d, cellWidth))
	}
	b.WriteString("\n")

	for _, week := range g.Weeks {
		lines := make([]strings.Builder, tasksPerCell+1)
		for _, cell := range week {
			if cell.Day == 0 {
				for i := range lines {
					lines[i].WriteString(pad("", cellWidth))
				}
				continue
			}
			day := fmt.Sprintf("%2d", cell.Day)
			if len(cell.Tasks) > 0 {
				day = busyStyle.Render(day)
			}
			lines[0].WriteString(day + strings.Repeat(" ", cellWidth-2))
			for i := 0; i < tasksPerCell; i++ {
				text := ""
				switch {
				case i == tasksPerCell-1 && len(cell.Tasks) > tasksPerCell:
					text = fmt.Sprintf("+%d more", len(cell.Tasks)-i)
				case i < len(cell.Tasks):
					text = cell.Tasks[i].Title
				}
				lines[i+1].WriteString(pad(truncate(text, cellWidth-1), cellWidth))
			}
		}
		for i := range lines {
			b.WriteString(strings.TrimRight(lines[i].String(), " "))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
