// Package fieldinput is a single line prompt that shows whether its current
// value parses.
package fieldinput

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	indicator = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	checkmark = indicator.
			Foreground(lipgloss.AdaptiveColor{Light: "#00ad3b", Dark: "#73F59F"}).
			Render("✓")

	cross = indicator.
		Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "#FF5047"}).
		Render("✗")

	faded = lipgloss.AdaptiveColor{Light: "#666", Dark: "#999"}
)

// Parser turns raw input into its canonical form, which is shown as a hint
// next to the checkmark when it differs from what was typed.
type Parser func(string) (string, error)

type Model struct {
	i     textinput.Model
	label string
	parse Parser
	value string
	err   error
	dirty bool
}

func New(label string, parse Parser) Model {
	i := textinput.New()
	i.Focus()
	i.CharLimit = 200
	i.Width = 50
	i.Prompt = ""
	return Model{
		i:     i,
		label: label,
		parse: parse,
	}
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.i, cmd = m.i.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.dirty = true
		m.value, m.err = m.parse(m.i.Value())
	}
	return m, cmd
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m Model) View() string {
	mark := ""
	switch {
	case !m.dirty || m.i.Value() == "":
	case m.err != nil:
		mark = cross + lipgloss.NewStyle().Foreground(faded).Render(m.err.Error())
	case m.value != m.i.Value():
		mark = checkmark + lipgloss.NewStyle().Foreground(faded).Render(m.value)
	default:
		mark = checkmark
	}
	return lipgloss.NewStyle().Foreground(faded).Render(m.label+": ") + m.i.View() + mark
}

// Value returns the parsed input, or the parse error for the current text
func (m Model) Value() (string, error) {
	return m.parse(m.i.Value())
}

func (m Model) Raw() string {
	return m.i.Value()
}

func (m *Model) SetValue(s string) {
	m.i.SetValue(s)
	m.value, m.err = m.parse(s)
	m.dirty = s != ""
}

func (m Model) Label() string {
	return m.label
}
