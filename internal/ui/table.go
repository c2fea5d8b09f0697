package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/td0m/listopia/pkg/task"
	"github.com/td0m/listopia/pkg/task/date"
)

// column widths in terminal cells
const (
	idWidth     = 4
	descWidth   = 44
	statusWidth = 14
	timeWidth   = 18
	gap         = "  "
)

var (
	TaskTitle   = lipgloss.NewStyle().Bold(true)
	TaskDivider = lipgloss.NewStyle().Foreground(Faded)
	TaskTime    = lipgloss.NewStyle().Foreground(Secondary)
	TaskID      = lipgloss.NewStyle().Foreground(Blue)
	Warning     = lipgloss.NewStyle().Foreground(Orange)
	Failure     = lipgloss.NewStyle().Foreground(Red)
	Success     = lipgloss.NewStyle().Foreground(Green)
)

// Truncate cuts s to at most width cells, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// pad truncates and left-aligns s in a column
func pad(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(Truncate(s, width), width)
}

// Header is the table's column titles followed by a rule
func Header() string {
	h := strings.Join([]string{
		padLeft("ID", idWidth),
		pad("Task", descWidth),
		pad("Status", statusWidth),
		pad("Created", timeWidth),
		pad("Updated", timeWidth),
	}, gap)
	return TaskTitle.Render(h) + "\n" + TaskDivider.Render(strings.Repeat("-", runewidth.StringWidth(h)))
}

// Row renders one task as a table line
func Row(t task.Task) string {
	created := t.CreatedAt
	return strings.Join([]string{
		TaskID.Render(padLeft(fmt.Sprint(t.ID), idWidth)),
		pad(t.Description, descWidth),
		lipgloss.NewStyle().Foreground(StatusColor(t.Status)).Render(pad(StatusLabel(t.Status), statusWidth)),
		TaskTime.Render(pad(date.Display(&created), timeWidth)),
		TaskTime.Render(pad(date.Display(t.UpdatedAt), timeWidth)),
	}, gap)
}

// Table renders a title, the header and one row per task
func Table(title string, ts []task.Task) string {
	var b strings.Builder
	b.WriteString(TaskTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(Header())
	for _, t := range ts {
		b.WriteString("\n")
		b.WriteString(Row(t))
	}
	return b.String()
}

// TableTitle names a listing, e.g. "📋 Done Tasks · 2 item(s)"
func TableTitle(filter task.Status, n int) string {
	name := "All"
	if filter != "" {
		name = titleCase(string(filter))
	}
	return fmt.Sprintf("📋 %s Tasks · %d item(s)", name, n)
}

// Empty is the message shown when a listing has no rows
func Empty(filter task.Status) string {
	if filter == "" {
		return "📭 No tasks found. Use 'Add Task' to create your first task."
	}
	return fmt.Sprintf("📭 No tasks found with status '%s'.", filter)
}

// Details renders a single task for confirmation prompts
func Details(t task.Task) string {
	return Header() + "\n" + Row(t)
}

// Describe turns store errors into the message shown to users
func Describe(err error) string {
	var verr *task.ValidationError
	var nf *task.NotFoundError
	switch {
	case errors.As(err, &nf):
		return fmt.Sprintf("No task found with ID %d", nf.ID)
	case errors.As(err, &verr):
		return capitalize(verr.Err.Error())
	}
	return err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
