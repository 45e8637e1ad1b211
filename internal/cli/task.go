package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/todolist/todo-client/internal/app"
	"github.com/todolist/todo-client/internal/domain"
	"github.com/todolist/todo-client/internal/infra/apiclient"
	"github.com/todolist/todo-client/internal/infra/draftfile"
	"github.com/todolist/todo-client/internal/tasklist"
)

// Output formats for list.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// newListCommand creates the list command.
func newListCommand(d *deps) *cobra.Command {
	var opts struct {
		Search        string
		Output        string
		HideCompleted bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks by due date",
		Long: `List your tasks, earliest due date first.

Examples:
  todo list
  todo list --search milk
  todo list --hide-completed -o yaml > tasks.yaml`,
		Args: cobra.NoArgs,
		RunE: d.run(func(cmd *cobra.Command, _ []string, c *app.Container) error {
			if err := c.RequireSession(); err != nil {
				return err
			}
			switch opts.Output {
			case formatTable, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown output format %q (want table, json or yaml)", opts.Output)
			}

			if !c.Tasks.Search(cmd.Context(), opts.Search) {
				return ErrReported
			}
			c.Tasks.SetShowCompleted(!opts.HideCompleted)
			tasks := c.Tasks.Visible()

			w := cmd.OutOrStdout()
			switch opts.Output {
			case formatJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(tasks)
			case formatYAML:
				return draftfile.Encode(w, tasks)
			}

			if len(tasks) == 0 {
				if opts.Search != "" {
					_, _ = fmt.Fprintf(w, "No tasks match %q.\n", opts.Search)
				} else {
					_, _ = fmt.Fprintln(w, "No tasks yet. Add one with 'todo add --title ...'.")
				}
				return nil
			}
			printTaskTable(w, tasks, c)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "Only tasks matching this text")
	cmd.Flags().BoolVar(&opts.HideCompleted, "hide-completed", false, "Hide completed tasks")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", formatTable, "Output format: table, json, yaml")

	return cmd
}

func printTaskTable(w io.Writer, tasks []*domain.Task, c *app.Container) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tDONE\tDUE\tPRIORITY\tTITLE")

	now := c.Clock.Now()
	for _, t := range tasks {
		done := "[ ]"
		if t.Completed {
			done = "[x]"
		}
		due := t.DueDate.In(now.Location()).Format(domain.DateLayout)
		if !t.Completed && domain.IsBeforeToday(t.DueDate, now) {
			due += " !"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.ID, done, due, t.Priority.Label(), t.Title)
	}
}

// newShowCommand creates the show command.
func newShowCommand(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: d.run(func(cmd *cobra.Command, args []string, c *app.Container) error {
			if err := c.RequireSession(); err != nil {
				return err
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			task, err := c.API.GetTask(cmd.Context(), id)
			if err != nil {
				return apiError(id, err)
			}
			printTaskDetail(cmd.OutOrStdout(), task)
			return nil
		}),
	}
}

func printTaskDetail(w io.Writer, t *domain.Task) {
	_, _ = fmt.Fprintf(w, "Task #%d: %s\n\n", t.ID, t.Title)
	_, _ = fmt.Fprintf(w, "Status:   %s\n", t.StatusText())
	_, _ = fmt.Fprintf(w, "Priority: %s\n", t.Priority.Label())
	_, _ = fmt.Fprintf(w, "Due:      %s\n", t.DueDate.Local().Format(domain.DateLayout))
	_, _ = fmt.Fprintf(w, "Created:  %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"))
	if t.Description != "" {
		_, _ = fmt.Fprintf(w, "\nDescription:\n")
		for _, line := range strings.Split(t.Description, "\n") {
			_, _ = fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

// newAddCommand creates the add command.
func newAddCommand(d *deps) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Due         string
		Priority    string
		From        string
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Long: `Add a task. The due date defaults to today and the priority to normal.

Examples:
  todo add --title "Buy milk"
  todo add --title "Report" --due 2025-03-14 --priority high -d "Q1 numbers"

  # Add every task in a YAML file ("-" reads stdin)
  todo add --from tasks.yaml

File format for --from:
  tasks:
    - title: Buy milk
      due: 2025-03-12
      priority: high
      description: two litres`,
		Args: cobra.NoArgs,
		RunE: d.run(func(cmd *cobra.Command, _ []string, c *app.Container) error {
			if err := c.RequireSession(); err != nil {
				return err
			}
			now := c.Clock.Now()

			var drafts []domain.TaskDraft
			if opts.From != "" {
				var loaded []domain.TaskDraft
				var err error
				if opts.From == "-" {
					loaded, err = draftfile.Parse(cmd.InOrStdin(), now)
				} else {
					loaded, err = draftfile.Load(opts.From, now)
				}
				if err != nil {
					return err
				}
				drafts = loaded
			} else {
				draft := domain.NewTaskDraft(now)
				draft.Title = opts.Title
				draft.Description = opts.Description
				p, err := domain.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
				draft.Priority = p
				if opts.Due != "" {
					due, err := domain.ParseDate(opts.Due, now.Location())
					if err != nil {
						return err
					}
					draft.DueDate = due
				}
				drafts = []domain.TaskDraft{draft}
			}

			failed := 0
			for _, draft := range drafts {
				if !c.Tasks.Create(cmd.Context(), draft) {
					failed++
					if !c.Session.State().IsAuthenticated() {
						break
					}
				}
			}
			if failed > 0 {
				return ErrReported
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "Task title")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Task description")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "Priority: low, normal, high")
	cmd.Flags().StringVar(&opts.From, "from", "", "Read tasks from a YAML file")
	cmd.MarkFlagsMutuallyExclusive("from", "title")

	return cmd
}

// newEditCommand creates the edit command.
func newEditCommand(d *deps) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Due         string
		Priority    string
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Long: `Change fields of a task. Only the flags you pass are changed.

The due date may stay in the past when it is not being changed,
so overdue tasks can still be renamed.

Examples:
  todo edit 3 --title "Buy oat milk"
  todo edit 3 --due 2025-03-20 --priority low`,
		Args: cobra.ExactArgs(1),
		RunE: d.run(func(cmd *cobra.Command, args []string, c *app.Container) error {
			if err := c.RequireSession(); err != nil {
				return err
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			now := c.Clock.Now()

			var patch domain.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &opts.Title
			}
			if flags.Changed("description") {
				patch.Description = &opts.Description
			}
			if flags.Changed("priority") {
				p, err := domain.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
				patch.Priority = &p
			}
			if flags.Changed("due") {
				due, err := domain.ParseDate(opts.Due, now.Location())
				if err != nil {
					return err
				}
				patch.DueDate = &due
			}
			if patch.IsEmpty() {
				return domain.ErrNoFieldsToUpdate
			}

			current, err := loadTask(cmd, c, id)
			if err != nil {
				return err
			}
			if err := patch.Validate(current.Input(), now); err != nil {
				c.Notifier.Notify(tasklist.ValidationMessage(err), domain.ToastWarning)
				return ErrReported
			}
			if !c.Tasks.Update(cmd.Context(), id, patch) {
				return ErrReported
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "New description")
	cmd.Flags().StringVar(&opts.Due, "due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "New priority: low, normal, high")

	return cmd
}

// newDoneCommand creates the done (or undone) command.
func newDoneCommand(d *deps, done bool) *cobra.Command {
	use, short := "done <id>...", "Mark tasks as completed"
	if !done {
		use, short = "undone <id>...", "Mark tasks as active"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: d.run(func(cmd *cobra.Command, args []string, c *app.Container) error {
			if err := c.RequireSession(); err != nil {
				return err
			}
			ids, err := parseTaskIDs(args)
			if err != nil {
				return err
			}
			if !c.Tasks.FetchAll(cmd.Context()) {
				return ErrReported
			}

			for _, id := range ids {
				if _, ok := c.Tasks.Task(id); !ok {
					return fmt.Errorf("task #%d: %w", id, domain.ErrTaskNotFound)
				}
				if !c.Tasks.SetCompleted(cmd.Context(), id, done) {
					return ErrReported
				}
			}
			return nil
		}),
	}
}

// newRmCommand creates the rm command.
func newRmCommand(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete tasks",
		Long: `Delete one or more tasks.

Several ids are deleted one at a time, in the order given. The first
failure stops the run; tasks deleted before it stay deleted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: d.run(func(cmd *cobra.Command, args []string, c *app.Container) error {
			if err := c.RequireSession(); err != nil {
				return err
			}
			ids, err := parseTaskIDs(args)
			if err != nil {
				return err
			}

			if len(ids) == 1 {
				if !c.Tasks.Delete(cmd.Context(), ids[0]) {
					return ErrReported
				}
				return nil
			}

			res := c.Tasks.BulkDelete(cmd.Context(), ids)
			if !res.OK() {
				w := cmd.ErrOrStderr()
				if len(res.Deleted) > 0 {
					_, _ = fmt.Fprintf(w, "Deleted: %s\n", joinIDs(res.Deleted))
				}
				_, _ = fmt.Fprintf(w, "Failed:  #%d\n", res.Failed)
				if len(res.Skipped) > 0 {
					_, _ = fmt.Fprintf(w, "Skipped: %s\n", joinIDs(res.Skipped))
				}
				return ErrReported
			}
			return nil
		}),
	}
}

// loadTask fetches the list so the controller can merge a patch over the task.
func loadTask(cmd *cobra.Command, c *app.Container, id int) (*domain.Task, error) {
	if !c.Tasks.FetchAll(cmd.Context()) {
		return nil, ErrReported
	}
	task, ok := c.Tasks.Task(id)
	if !ok {
		return nil, fmt.Errorf("task #%d: %w", id, domain.ErrTaskNotFound)
	}
	return task, nil
}

// apiError turns a direct API failure into a command error.
func apiError(id int, err error) error {
	switch {
	case domain.IsSessionExpired(err):
		return ErrReported
	case apiclient.StatusCode(err) == http.StatusNotFound:
		return fmt.Errorf("task #%d: %w", id, domain.ErrTaskNotFound)
	}
	return err
}

func parseTaskID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func parseTaskIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := parseTaskID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = "#" + strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
