package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskgrid/internal/task"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	busyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6464"))
	urgentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	normalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#64C864"))
)

func priorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.Low:
		return normalStyle
	case task.Medium:
		return urgentStyle
	}
	return overdueStyle
}

// urgencyMark is the dot drawn before each task: red overdue, yellow due
// within a day, green otherwise.
func urgencyMark(u task.Urgency) string {
	switch u {
	case task.Overdue:
		return overdueStyle.Render("●")
	case task.Urgent:
		return urgentStyle.Render("●")
	case task.Unparsed:
		return dimStyle.Render("○")
	}
	return normalStyle.Render("●")
}
