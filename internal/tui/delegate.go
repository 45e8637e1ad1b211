package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/todolist/todo-client/internal/domain"
)

// rowPrefixWidth is the width of everything before the title:
// "  > [x] " + id(4) + "  " + icon + "  " + date(10) + "  " + priority(6) + "  ".
const rowPrefixWidth = 37

type taskItem struct {
	task    *domain.Task
	checked bool // part of the bulk selection
}

func (t taskItem) FilterValue() string {
	return t.task.Title
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// fitWidth truncates s to width cells (never fewer than 10).
func fitWidth(s string, width int) string {
	if width < 10 {
		width = 10
	}
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "...")
	}
	return s
}

type taskDelegate struct {
	now    func() time.Time
	styles Styles
}

func newTaskDelegate(styles Styles, now func() time.Time) taskDelegate {
	return taskDelegate{styles: styles, now: now}
}

func (d taskDelegate) Height() int {
	return 2
}

func (d taskDelegate) Spacing() int {
	return 1
}

func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	task := ti.task
	cursor := index == m.Index()
	listWidth := m.Width()

	indicator := " "
	if cursor {
		indicator = d.styles.Cursor.Render(">")
	}
	check := "[ ]"
	if ti.checked {
		check = "[" + d.styles.Checkbox.Render("x") + "]"
	}

	now := d.now()
	due := task.DueDate.In(now.Location()).Format(domain.DateLayout)
	dueStyle := d.styles.TaskDue
	if !task.Completed && domain.IsBeforeToday(task.DueDate, now) {
		dueStyle = d.styles.TaskOverdue
	}

	titleStyle := d.styles.TaskTitle
	if task.Completed {
		titleStyle = d.styles.TaskCompleted
	}
	if cursor {
		titleStyle = titleStyle.Bold(true).Foreground(Colors.TitleSelected)
	}
	title := fitWidth(escapeNewlines(task.Title), listWidth-rowPrefixWidth-2)

	line := "  " + indicator + " " + check + " " +
		d.styles.TaskID.Render(fmt.Sprintf("%4d", task.ID)) + "  " +
		CompletedIcon(task.Completed) + "  " +
		dueStyle.Render(due) + "  " +
		d.styles.PriorityStyle(task.Priority).Render(fmt.Sprintf("%-6s", task.Priority.Label())) + "  " +
		titleStyle.Render(title)
	_, _ = fmt.Fprintln(w, line)

	descLine := strings.Repeat(" ", rowPrefixWidth)
	if task.Description != "" {
		descLine += fitWidth(escapeNewlines(task.Description), listWidth-rowPrefixWidth-2)
	}
	_, _ = fmt.Fprint(w, d.styles.TaskDesc.Render(descLine))
}
