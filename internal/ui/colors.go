package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/listopia/pkg/task"
)

const (
	Background = lipgloss.Color("#000")

	Primary   = lipgloss.Color("#fff")
	Secondary = lipgloss.Color("#888")
	Faded     = lipgloss.Color("#555")

	Blue   = lipgloss.Color("#4db7ff")
	Green  = lipgloss.Color("#00a352")
	Red    = lipgloss.Color("#c42912")
	Yellow = lipgloss.Color("#c4b810")
	Orange = lipgloss.Color("#c27510")
)

var statusColors = map[task.Status]lipgloss.Color{
	task.StatusTodo:       Secondary,
	task.StatusInProgress: Yellow,
	task.StatusDone:       Green,
}

var badges = map[task.Status]string{
	task.StatusTodo:       "📝",
	task.StatusInProgress: "🚧",
	task.StatusDone:       "✅",
}

// Badge is the emoji shown next to a status
func Badge(s task.Status) string {
	if b, ok := badges[s]; ok {
		return b
	}
	return "🔖"
}

func StatusColor(s task.Status) lipgloss.Color {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return Faded
}

// StatusLabel renders the badge followed by the status name
func StatusLabel(s task.Status) string {
	return Badge(s) + " " + string(s)
}
