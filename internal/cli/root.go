// Package cli implements the one-shot task commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/td0m/listopia/internal/config"
	"github.com/td0m/listopia/internal/logging"
	"github.com/td0m/listopia/internal/ui"
	"github.com/td0m/listopia/pkg/fieldinput"
	"github.com/td0m/listopia/pkg/persist"
	"github.com/td0m/listopia/pkg/task"
	"github.com/td0m/listopia/pkg/tracker"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	configPath string
	file       string
	logLevel   string

	cfg     *config.Config
	log     *zap.Logger
	tracker *tracker.Tracker
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.file != "" {
		cfg.File = a.file
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	errOut := cmd.ErrOrStderr()
	a.tracker = tracker.New(persist.InJSON(cfg.File),
		tracker.WithLogger(log),
		tracker.WithWarningHandler(func(err error) {
			log.Info("recovered task file", zap.Error(err))
			fmt.Fprintln(errOut, "Warning:", err)
		}),
	)
	log.Debug("opened task file", zap.String("file", cfg.File))
	return nil
}

func (a *app) close(*cobra.Command, []string) error {
	if a.log != nil {
		_ = a.log.Sync()
	}
	return nil
}

// NewRootCmd builds the command tree writing to out
func NewRootCmd(out io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "task-cli",
		Short: "Track personal tasks in a local JSON file",
		Long: `task-cli adds, lists, updates, deletes and changes the status of tasks
stored in a JSON file (tasks.json by default).

Statuses are todo, in-progress and done. Deleting a task renumbers the
remaining tasks so ids always run from 1.`,
		PersistentPreRunE:  a.open,
		PersistentPostRunE: a.close,
		SilenceUsage:       true,
		SilenceErrors:      true,
	}
	root.SetOut(out)
	root.SetFlagErrorFunc(negativeIDs)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a TOML config file")
	root.PersistentFlags().StringVarP(&a.file, "file", "f", "", "Path to the task file (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newStatusCmd(a),
		newCheckCmd(a),
	)
	return root
}

// Execute runs the command line and reports failures on errOut
func Execute(args []string, out, errOut io.Writer) error {
	root := NewRootCmd(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(errOut, "Error:", ui.Describe(err))
		return err
	}
	return nil
}

func parseID(arg string) (task.ID, error) {
	id, err := fieldinput.ParseID(arg)
	if err != nil {
		return 0, errors.New(capitalize(err.Error()))
	}
	return id, nil
}

// negativeIDs reports "delete -1" as a bad id rather than the unknown
// shorthand flag pflag sees in it.
func negativeIDs(_ *cobra.Command, err error) error {
	msg := err.Error()
	if !strings.HasPrefix(msg, "unknown shorthand flag") {
		return err
	}
	i := strings.LastIndex(msg, " in ")
	if i < 0 {
		return err
	}
	arg := msg[i+len(" in "):]
	if _, convErr := strconv.Atoi(arg); convErr != nil {
		return err
	}
	_, err = parseID(arg)
	return err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
