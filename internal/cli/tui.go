package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/todolist/todo-client/internal/app"
	"github.com/todolist/todo-client/internal/tui"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// This is the same as running `todo` without arguments.
func newTUICommand(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long:  `Launch the interactive terminal user interface for managing tasks.`,
		Args:  cobra.NoArgs,
		RunE: d.runMode(true, func(_ *cobra.Command, _ []string, c *app.Container) error {
			return launchTUIFunc(c)
		}),
	}
}

// launchTUI runs the TUI until the user quits.
func launchTUI(c *app.Container) error {
	p := tea.NewProgram(tui.New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
