package cli

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/todolist/todo-client/internal/app"
	"github.com/todolist/todo-client/internal/domain"
	"github.com/todolist/todo-client/internal/infra/config"
)

// newConfigCommand creates the config command.
func newConfigCommand(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage the todo configuration file.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(d))
	cmd.AddCommand(newConfigInitCommand(d))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective configuration after applying defaults,
the config file, TODO_API_URL and --api-url.`,
		Args: cobra.NoArgs,
		RunE: d.run(func(cmd *cobra.Command, _ []string, c *app.Container) error {
			w := cmd.OutOrStdout()
			info := c.ConfigManager.Info()

			_, _ = fmt.Fprintln(w, "[Loaded from]")
			if info.Exists {
				_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
			} else {
				_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
			}
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			out, err := toml.Marshal(c.Config)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, _ = w.Write(out)
			return nil
		}),
	}
}

// newConfigInitCommand creates the config init subcommand.
// It does not build the container, so a broken config file can be replaced.
func newConfigInitCommand(d *deps) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := config.NewLoader()
			if d.configDir != "" {
				loader = config.NewLoaderWithDir(d.configDir)
			}

			path, err := config.NewManager(loader).Init(force)
			if errors.Is(err, domain.ErrConfigExists) {
				return fmt.Errorf("%s: %w (use --force to overwrite)", path, err)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
