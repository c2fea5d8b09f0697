package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/td0m/listopia/internal/ui"
	"github.com/td0m/listopia/pkg/task"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := a.tracker.Add(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Task added successfully (ID: %d): %s\n", created.ID, created.Description)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "list [status]",
		Short:     "List tasks, optionally only those with a status",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: statusNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter task.Status
			if len(args) == 1 {
				filter = task.Status(strings.ToLower(args[0]))
			}
			tasks, err := a.tracker.List(filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Empty(filter))
				return nil
			}
			fmt.Fprintln(out, ui.Table(ui.TableTitle(filter, len(tasks)), tasks))
			return nil
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <description...>",
		Short: "Replace a task's description",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			updated, err := a.tracker.Update(id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Task %d updated successfully: %s\n", updated.ID, updated.Description)
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task and renumber the rest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.tracker.Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Task %d deleted successfully. IDs reindexed.\n", id)
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set a task's status (todo, in-progress or done)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			updated, err := a.tracker.SetStatus(id, strings.ToLower(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Task %d status updated to %s\n", updated.ID, updated.Status)
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	var fix bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the task file without changing it",
		Long: `check validates the task file against its schema and looks for duplicate
ids. With --fix, ids are renumbered 1..N, which repairs duplicates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			issues, err := a.tracker.Check()
			if err != nil {
				return err
			}
			for _, i := range issues {
				fmt.Fprintln(out, "✗", i)
			}
			if fix {
				n, err := a.tracker.Reindex()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "✅ Reindexed %d task(s)\n", n)
				return nil
			}
			if len(issues) > 0 {
				return fmt.Errorf("%d problem(s) found in %s", len(issues), a.cfg.File)
			}
			fmt.Fprintf(out, "✅ No problems found in %s\n", a.cfg.File)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fix, "fix", false, "Renumber task ids 1..N")
	return cmd
}

func statusNames() []string {
	names := make([]string, len(task.Statuses))
	for i, s := range task.Statuses {
		names[i] = string(s)
	}
	return names
}
