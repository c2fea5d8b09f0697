package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/listopia/pkg/task"
)

var (
	tabContainer = lipgloss.NewStyle().Padding(1, 1)
	activeTab    = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	inactiveTab  = lipgloss.NewStyle().Foreground(Secondary)
	tabDivider   = lipgloss.NewStyle().Foreground(Faded)
)

// Tab is a named status filter. An empty Filter shows every task.
type Tab struct {
	Title  string
	Filter task.Status
}

// StatusTabs has one tab for all tasks and one per status
func StatusTabs() []Tab {
	tabs := []Tab{{Title: "All"}}
	for _, s := range task.Statuses {
		tabs = append(tabs, Tab{Title: titleCase(string(s)), Filter: s})
	}
	return tabs
}

type Tabs struct {
	tabs []Tab
	i    int

	Width int
	Info  string
}

// NewTabs creates a new tabs ui bubbletea model
func NewTabs(tabs []Tab) Tabs {
	return Tabs{tabs: tabs}
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m Tabs) Init() tea.Cmd {
	return nil
}

// Update moves between tabs with tab/shift+tab, left/right and h/l.
func (m Tabs) Update(msg tea.Msg) (Tabs, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "right", "l":
			m.Set((m.i + 1) % len(m.tabs))
		case "shift+tab", "left", "h":
			m.Set((m.i - 1 + len(m.tabs)) % len(m.tabs))
		}
	}
	return m, nil
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m Tabs) View() string {
	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		r := inactiveTab
		if i == m.i {
			r = activeTab
		}
		tabs[i] = r.Render(t.Title)
	}
	w := lipgloss.Width
	left := strings.Join(tabs, tabDivider.Render(" | "))
	right := m.Info
	space := lipgloss.NewStyle().Width(max(m.Width-2-w(left)-w(right), 0)).Render("")
	return tabContainer.Render(lipgloss.JoinHorizontal(lipgloss.Center, left, space, right)) + "\n"
}

func (m Tabs) Value() int {
	return m.i
}

// Current returns the selected tab
func (m Tabs) Current() Tab {
	return m.tabs[m.i]
}

func (m *Tabs) Set(i int) {
	m.i = min(max(i, 0), len(m.tabs)-1)
}

func titleCase(s string) string {
	words := strings.Split(s, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
