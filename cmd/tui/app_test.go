package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"
	"github.com/td0m/listopia/pkg/persist"
	"github.com/td0m/listopia/pkg/task"
	"go.uber.org/zap"
)

func testApp(t *testing.T) (*app, *persist.JSON) {
	p := persist.InJSON(filepath.Join(t.TempDir(), "tasks.json"))
	return newApp(p, zap.NewNop()), p
}

func key(m *app, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func typeString(m *app, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// submit types s and presses enter
func submit(m *app, s string) tea.Cmd {
	typeString(m, s)
	return key(m, tea.KeyEnter)
}

func loadAll(t *testing.T, p *persist.JSON) []task.Task {
	ts, err := p.Load()
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestApp_Add(t *testing.T) {
	is := is.New(t)
	m, p := testApp(t)

	typeString(m, "1")
	is.Equal(m.mode, modeInput)

	cmd := submit(m, "buy milk")
	is.Equal(m.mode, modeMessage)
	is.True(cmd != nil) // flash timer
	is.True(strings.Contains(m.View(), "Task added successfully"))

	ts := loadAll(t, p)
	is.Equal(len(ts), 1)
	is.Equal(ts[0].Description, "buy milk")

	// any key returns to the menu
	key(m, tea.KeySpace)
	is.Equal(m.mode, modeMenu)
}

func TestApp_AddRejectsBlank(t *testing.T) {
	is := is.New(t)
	m, p := testApp(t)

	typeString(m, "1")
	submit(m, "   ")
	is.Equal(m.mode, modeInput) // stays on the prompt
	is.True(m.stepErr != "")
	is.Equal(len(loadAll(t, p)), 0)

	key(m, tea.KeyEsc)
	is.Equal(m.mode, modeMenu)
}

func TestApp_FlashTimeout(t *testing.T) {
	is := is.New(t)
	m, _ := testApp(t)

	typeString(m, "1")
	submit(m, "x")
	is.Equal(m.mode, modeMessage)

	m.Update(flashDoneMsg{seq: m.flashSeq - 1}) // stale
	is.Equal(m.mode, modeMessage)
	m.Update(flashDoneMsg{seq: m.flashSeq})
	is.Equal(m.mode, modeMenu)
}

func TestApp_StatusUpdateDelete(t *testing.T) {
	is := is.New(t)
	m, p := testApp(t)
	is.NoErr(p.Save([]task.Task{
		task.New(1, "buy milk", epoch()),
		task.New(2, "walk dog", epoch()),
	}))

	t.Run("change status with a prefix", func(t *testing.T) {
		is := is.New(t)
		typeString(m, "5")
		submit(m, "1")
		is.True(strings.Contains(m.View(), "Current task before status change"))
		submit(m, "d")
		is.Equal(m.mode, modeMessage)
		is.Equal(loadAll(t, p)[0].Status, task.StatusDone)
		key(m, tea.KeyEnter)
	})

	t.Run("update asks for confirmation", func(t *testing.T) {
		is := is.New(t)
		typeString(m, "3")
		submit(m, "2")
		submit(m, "walk the dog")
		is.True(strings.Contains(m.View(), "Proceed with update?"))
		submit(m, "n")
		is.True(strings.Contains(m.View(), "Update cancelled."))
		is.Equal(loadAll(t, p)[1].Description, "walk dog")
		key(m, tea.KeyEnter)

		typeString(m, "3")
		submit(m, "2")
		submit(m, "walk the dog")
		submit(m, "y")
		is.Equal(loadAll(t, p)[1].Description, "walk the dog")
		key(m, tea.KeyEnter)
	})

	t.Run("unknown id", func(t *testing.T) {
		is := is.New(t)
		typeString(m, "4")
		submit(m, "9")
		is.Equal(m.mode, modeMessage)
		is.True(strings.Contains(m.View(), "No task found with ID 9"))
		key(m, tea.KeyEnter)
	})

	t.Run("delete reindexes", func(t *testing.T) {
		is := is.New(t)
		typeString(m, "4")
		submit(m, "1")
		is.True(strings.Contains(m.View(), "will be deleted"))
		submit(m, "y")
		is.True(strings.Contains(m.View(), "IDs reindexed"))
		ts := loadAll(t, p)
		is.Equal(len(ts), 1)
		is.Equal(ts[0].ID, task.ID(1))
		is.Equal(ts[0].Description, "walk the dog")
		key(m, tea.KeyEnter)
	})
}

func TestApp_List(t *testing.T) {
	is := is.New(t)
	m, p := testApp(t)
	done := task.New(2, "walk dog", epoch())
	done.Status = task.StatusDone
	is.NoErr(p.Save([]task.Task{task.New(1, "buy milk", epoch()), done}))

	typeString(m, "2")
	is.Equal(m.mode, modeList)
	view := m.View()
	is.True(strings.Contains(view, "buy milk"))
	is.True(strings.Contains(view, "walk dog"))

	// All -> Todo -> In Progress -> Done
	key(m, tea.KeyTab)
	key(m, tea.KeyTab)
	is.True(strings.Contains(m.View(), "No tasks found with status 'in-progress'"))
	key(m, tea.KeyTab)
	view = m.View()
	is.True(strings.Contains(view, "walk dog"))
	is.True(!strings.Contains(view, "buy milk"))

	key(m, tea.KeyEsc)
	is.Equal(m.mode, modeMenu)
}

func TestApp_CorruptedFileWarning(t *testing.T) {
	is := is.New(t)
	m, p := testApp(t)
	is.NoErr(os.WriteFile(p.Path(), []byte("not json"), 0644))

	typeString(m, "2")
	is.True(strings.Contains(m.View(), "Warning: corrupted task file"))
	_, err := os.Stat(p.BackupPath())
	is.NoErr(err)
}

func TestApp_Exit(t *testing.T) {
	is := is.New(t)
	m, _ := testApp(t)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	is.Equal(m.cursor, 1)

	typeString(m, "6")
	is.True(m.quitting)
	is.Equal(m.View(), "")
}

func epoch() time.Time {
	return time.Date(2025, time.September, 26, 9, 0, 0, 0, time.Local)
}
