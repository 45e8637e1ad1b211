// Package cli provides the command-line interface for the todo client.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/todolist/todo-client/internal/app"
)

// Command group IDs.
const (
	groupAccount = "account"
	groupTask    = "task"
	groupSetup   = "setup"
)

// ErrReported means the failure was already shown to the user as a notification.
// main exits non-zero without printing it again.
var ErrReported = errors.New("operation failed")

// Builder constructs the container once flags are parsed.
type Builder func(opts app.Options) (*app.Container, error)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// deps builds the container lazily so persistent flags can shape it.
// Fields are ordered to minimize memory padding.
type deps struct {
	build     Builder
	c         *app.Container
	apiURL    string
	configDir string
}

// load builds the container on first use. Interactive mode keeps the toast
// store as notifier; every other command prints notifications to stderr.
func (d *deps) load(cmd *cobra.Command, interactive bool) (*app.Container, error) {
	if d.c != nil {
		return d.c, nil
	}

	opts := app.Options{APIURL: d.apiURL, ConfigDir: d.configDir}
	if !interactive {
		opts.Notifier = newCLINotifier(cmd.ErrOrStderr())
	}
	c, err := d.build(opts)
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	for _, w := range c.Config.Warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
	d.c = c
	return c, nil
}

func (d *deps) close() error {
	if d.c == nil {
		return nil
	}
	err := d.c.Close()
	d.c = nil
	return err
}

// run wraps a command body with container setup and teardown.
func (d *deps) run(fn func(cmd *cobra.Command, args []string, c *app.Container) error) func(*cobra.Command, []string) error {
	return d.runMode(false, fn)
}

func (d *deps) runMode(interactive bool, fn func(cmd *cobra.Command, args []string, c *app.Container) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		c, err := d.load(cmd, interactive)
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, d.close()) }()
		return fn(cmd, args, c)
	}
}

// NewRootCommand creates the root command.
// build is called at most once per execution, after flags are parsed.
func NewRootCommand(build Builder, version string) *cobra.Command {
	d := &deps{build: build}

	root := &cobra.Command{
		Use:   "todo",
		Short: "Task list client",
		Long: `todo is a client for the task list API.

Sign in with 'todo login', then manage tasks from the command line
or run 'todo' without arguments for the interactive interface.

The API origin comes from --api-url, TODO_API_URL or [api] base_url
in ~/.config/todo/config.toml, in that order.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		// Default: launch the TUI
		RunE: d.runMode(true, func(_ *cobra.Command, _ []string, c *app.Container) error {
			return launchTUIFunc(c)
		}),
	}

	root.PersistentFlags().StringVar(&d.apiURL, "api-url", "", "API origin (overrides TODO_API_URL and config)")
	root.PersistentFlags().StringVar(&d.configDir, "config-dir", "", "Configuration directory (default ~/.config/todo)")

	root.AddGroup(
		&cobra.Group{ID: groupAccount, Title: "Account Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Account commands
	loginCmd := newLoginCommand(d)
	loginCmd.GroupID = groupAccount

	registerCmd := newRegisterCommand(d)
	registerCmd.GroupID = groupAccount

	logoutCmd := newLogoutCommand(d)
	logoutCmd.GroupID = groupAccount

	statusCmd := newStatusCommand(d)
	statusCmd.GroupID = groupAccount

	// Task management commands
	listCmd := newListCommand(d)
	listCmd.GroupID = groupTask

	showCmd := newShowCommand(d)
	showCmd.GroupID = groupTask

	addCmd := newAddCommand(d)
	addCmd.GroupID = groupTask

	editCmd := newEditCommand(d)
	editCmd.GroupID = groupTask

	doneCmd := newDoneCommand(d, true)
	doneCmd.GroupID = groupTask

	undoneCmd := newDoneCommand(d, false)
	undoneCmd.GroupID = groupTask

	rmCmd := newRmCommand(d)
	rmCmd.GroupID = groupTask

	tuiCmd := newTUICommand(d)
	tuiCmd.GroupID = groupTask

	// Setup commands
	configCmd := newConfigCommand(d)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		loginCmd,
		registerCmd,
		logoutCmd,
		statusCmd,
		listCmd,
		showCmd,
		addCmd,
		editCmd,
		doneCmd,
		undoneCmd,
		rmCmd,
		tuiCmd,
		configCmd,
	)

	return root
}
