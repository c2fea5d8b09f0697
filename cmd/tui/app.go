package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/listopia/internal/ui"
	"github.com/td0m/listopia/pkg/fieldinput"
	"github.com/td0m/listopia/pkg/persist"
	"github.com/td0m/listopia/pkg/tracker"
	"go.uber.org/zap"
)

const (
	headerHeight = 3
	footerHeight = 2

	// flashFor is how long a result stays on screen before the menu returns
	flashFor = 2 * time.Second
)

type mode int

const (
	modeMenu mode = iota
	modeInput
	modeList
	modeMessage
)

var (
	header   = lipgloss.NewStyle().Bold(true).Padding(1, 1, 0, 1)
	body     = lipgloss.NewStyle().Padding(1, 1)
	selected = lipgloss.NewStyle().Foreground(ui.Primary).Bold(true)
	item     = lipgloss.NewStyle().Foreground(ui.Secondary)
	help     = lipgloss.NewStyle().Foreground(ui.Faded).Padding(0, 1)
)

type menuItem struct {
	title string
	run   func(*app) tea.Cmd
}

var menu = []menuItem{
	{"➕ Add Task", (*app).startAdd},
	{"📋 View Tasks", (*app).startList},
	{"✏️  Update Task", (*app).startUpdate},
	{"🗑️  Delete Task", (*app).startDelete},
	{"🔄 Change Task Status", (*app).startStatus},
	{"🚪 Exit", (*app).exit},
}

// step asks for one value. done receives the parsed value and either
// returns the next step or ends the flow by switching mode itself.
type step struct {
	context string
	input   fieldinput.Model
	done    func(value string) *step
}

// flashDoneMsg returns to the menu unless a newer message replaced the one
// that scheduled it.
type flashDoneMsg struct {
	seq int
}

type app struct {
	mode mode

	cursor int
	step   *step
	// stepErr is the parse error for the current step's last submit
	stepErr string

	tabs     ui.Tabs
	viewport viewport.Model

	message  string
	flashSeq int
	warning  string
	quitting bool

	tracker *tracker.Tracker
	log     *zap.Logger
}

func newApp(p persist.Persistor, log *zap.Logger) *app {
	a := &app{
		tabs:     ui.NewTabs(ui.StatusTabs()),
		viewport: viewport.New(80, 20),
		log:      log,
	}
	a.tracker = tracker.New(p,
		tracker.WithLogger(log),
		tracker.WithWarningHandler(func(err error) {
			log.Warn("recovered task file", zap.Error(err))
			a.warning = "Warning: " + err.Error()
		}),
	)
	return a
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m *app) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight-4, 1)
		m.tabs.Width = msg.Width
		return m, nil
	case flashDoneMsg:
		if m.mode == modeMessage && msg.seq == m.flashSeq {
			m.toMenu()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.exit()
		}
		switch m.mode {
		case modeMenu:
			return m, m.menuKey(msg)
		case modeInput:
			return m, m.inputKey(msg)
		case modeList:
			return m, m.listKey(msg)
		case modeMessage:
			m.toMenu()
			return m, nil
		}
	}
	if m.mode == modeInput {
		var cmd tea.Cmd
		m.step.input, cmd = m.step.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *app) menuKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		m.cursor = min(m.cursor+1, len(menu)-1)
	case "k", "up":
		m.cursor = max(m.cursor-1, 0)
	case "q":
		return m.exit()
	case "enter", " ":
		return m.choose(m.cursor)
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(menu) {
			m.cursor = n - 1
			return m.choose(m.cursor)
		}
	}
	return nil
}

func (m *app) choose(i int) tea.Cmd {
	m.warning = ""
	return menu[i].run(m)
}

func (m *app) inputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.toMenu()
		return nil
	case tea.KeyEnter:
		value, err := m.step.input.Value()
		if err != nil {
			m.stepErr = err.Error()
			return nil
		}
		next := m.step.done(value)
		if next == nil {
			if m.mode == modeMessage {
				return m.flashTimer()
			}
			return nil
		}
		m.ask(next)
		return nil
	}
	var cmd tea.Cmd
	m.step.input, cmd = m.step.input.Update(msg)
	return cmd
}

func (m *app) listKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "enter":
		m.toMenu()
		return nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.tabs, _ = m.tabs.Update(msg)
		m.refreshList()
		return nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *app) ask(s *step) {
	m.mode = modeInput
	m.step = s
	m.stepErr = ""
}

func (m *app) toMenu() {
	m.mode = modeMenu
	m.step = nil
	m.stepErr = ""
}

// flash shows a result and schedules the return to the menu
func (m *app) flash(text string) {
	m.mode = modeMessage
	m.message = text
	m.step = nil
	m.flashSeq++
}

func (m *app) flashTimer() tea.Cmd {
	seq := m.flashSeq
	return tea.Tick(flashFor, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

func (m *app) exit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m *app) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(header.Render("🗂️  TASK TRACKER"))
	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString(help.Render(ui.Warning.Render(m.warning)))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeMenu:
		b.WriteString(body.Render(m.renderMenu()))
		b.WriteString("\n")
		b.WriteString(help.Render("1-6 or j/k + enter · q to quit"))
	case modeInput:
		s := m.step.input.View()
		if m.step.context != "" {
			s = m.step.context + "\n\n" + s
		}
		if m.stepErr != "" {
			s += "\n" + ui.Failure.Render(m.stepErr)
		}
		b.WriteString(body.Render(s))
		b.WriteString("\n")
		b.WriteString(help.Render("enter to confirm · esc to cancel"))
	case modeList:
		b.WriteString(m.tabs.View())
		b.WriteString(body.Render(m.viewport.View()))
		b.WriteString("\n")
		b.WriteString(help.Render("tab/h/l to filter · j/k to scroll · esc to return"))
	case modeMessage:
		b.WriteString(body.Render(m.message))
		b.WriteString("\n")
		b.WriteString(help.Render("press any key to return to the menu"))
	}
	return b.String()
}

func (m *app) renderMenu() string {
	lines := make([]string, len(menu))
	for i, it := range menu {
		label := strconv.Itoa(i+1) + ") " + it.title
		if i == m.cursor {
			lines[i] = selected.Render("> " + label)
		} else {
			lines[i] = item.Render("  " + label)
		}
	}
	return strings.Join(lines, "\n")
}
