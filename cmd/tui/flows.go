package main

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/td0m/listopia/internal/ui"
	"github.com/td0m/listopia/pkg/fieldinput"
	"github.com/td0m/listopia/pkg/task"
	"go.uber.org/zap"
)

func (m *app) fail(err error) *step {
	m.log.Debug("action failed", zap.Error(err))
	m.flash(ui.Failure.Render("❌ " + ui.Describe(err)))
	return nil
}

func (m *app) succeed(title string, t task.Task) *step {
	m.flash(ui.Success.Render(title) + "\n\n" + ui.Details(t))
	return nil
}

func (m *app) startAdd() tea.Cmd {
	m.ask(&step{
		input: fieldinput.New("Enter task description", fieldinput.Description),
		done: func(description string) *step {
			created, err := m.tracker.Add(description)
			if err != nil {
				return m.fail(err)
			}
			return m.succeed("✅ Task added successfully!", created)
		},
	})
	return nil
}

func (m *app) startList() tea.Cmd {
	m.mode = modeList
	m.tabs.Set(0)
	m.refreshList()
	return nil
}

func (m *app) refreshList() {
	filter := m.tabs.Current().Filter
	tasks, err := m.tracker.List(filter)
	switch {
	case err != nil:
		m.viewport.SetContent(ui.Failure.Render("❌ " + ui.Describe(err)))
	case len(tasks) == 0:
		m.viewport.SetContent(ui.Empty(filter))
	default:
		m.viewport.SetContent(ui.Table(ui.TableTitle(filter, len(tasks)), tasks))
	}
	m.tabs.Info = ui.TaskTime.Render(m.tabs.Current().Title)
	m.viewport.GotoTop()
}

// askID starts a flow that needs an existing task, then hands it to next
func (m *app) askID(prompt string, next func(task.Task) *step) {
	m.ask(&step{
		input: fieldinput.New(prompt, fieldinput.ID),
		done: func(value string) *step {
			id, err := strconv.Atoi(value)
			if err != nil {
				return m.fail(err)
			}
			t, err := m.tracker.Get(task.ID(id))
			if err != nil {
				return m.fail(err)
			}
			return next(t)
		},
	})
}

func confirm(context, question string, yes func() *step, no func() *step) *step {
	return &step{
		context: context,
		input:   fieldinput.New(question, fieldinput.YesNo),
		done: func(answer string) *step {
			if answer == "yes" {
				return yes()
			}
			return no()
		},
	}
}

func (m *app) cancelled(what string) func() *step {
	return func() *step {
		m.flash(ui.Warning.Render(what + " cancelled."))
		return nil
	}
}

func (m *app) startUpdate() tea.Cmd {
	m.askID("Enter task ID to update", func(t task.Task) *step {
		context := "📝 Updating the following task:\n\n" + ui.Details(t)
		return &step{
			context: context,
			input:   fieldinput.New("Enter new task description", fieldinput.Description),
			done: func(description string) *step {
				return confirm(context+"\n\nNew description: "+description, "Proceed with update? (y/n)",
					func() *step {
						updated, err := m.tracker.Update(t.ID, description)
						if err != nil {
							return m.fail(err)
						}
						return m.succeed("✅ Task updated successfully!", updated)
					},
					m.cancelled("Update"),
				)
			},
		}
	})
	return nil
}

func (m *app) startDelete() tea.Cmd {
	m.askID("Enter task ID to delete", func(t task.Task) *step {
		return confirm("🗑️  The following task will be deleted:\n\n"+ui.Details(t), "Are you sure? (y/n)",
			func() *step {
				if _, err := m.tracker.Delete(t.ID); err != nil {
					return m.fail(err)
				}
				m.flash(ui.Success.Render(fmt.Sprintf("✅ Task %d deleted successfully. IDs reindexed.", t.ID)))
				return nil
			},
			m.cancelled("Deletion"),
		)
	})
	return nil
}

func (m *app) startStatus() tea.Cmd {
	m.askID("Enter task ID to update status", func(t task.Task) *step {
		return &step{
			context: "📝 Current task before status change:\n\n" + ui.Details(t),
			input:   fieldinput.New("Enter new status (todo, in-progress, done)", fieldinput.Status),
			done: func(status string) *step {
				updated, err := m.tracker.SetStatus(t.ID, status)
				if err != nil {
					return m.fail(err)
				}
				return m.succeed("✅ Status updated successfully!", updated)
			},
		}
	})
	return nil
}
