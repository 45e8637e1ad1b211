package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/todolist/todo-client/internal/app"
	"github.com/todolist/todo-client/internal/domain"
	"github.com/todolist/todo-client/internal/tasklist"
)

// tickInterval controls how quickly expired toasts leave the screen.
const tickInterval = 250 * time.Millisecond

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container  *app.Container
	ctx        context.Context
	statusLine *StatusLine

	// Components (structs with pointers)
	keys           KeyMap
	styles         Styles
	help           help.Model
	taskList       list.Model
	detailViewport viewport.Model

	// Forms (large structs)
	authForm    authForm
	taskForm    taskForm
	searchInput textinput.Model

	// Numeric state (smaller types last)
	mode          Mode
	prevMode      Mode // restored when help or confirm closes
	confirmAction ConfirmAction
	confirmTaskID int
	detailTaskID  int
	width         int
	height        int
	busy          bool // a submit is in flight; forms ignore further submits
}

// New creates a new TUI Model with the given container.
// It starts on the task list when a session was restored, else on the login form.
func New(c *app.Container) *Model {
	si := textinput.New()
	si.Placeholder = "Search tasks..."
	si.CharLimit = 100

	styles := DefaultStyles()
	delegate := newTaskDelegate(styles, c.Clock.Now)
	taskList := list.New([]list.Item{}, delegate, 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)
	taskList.SetFilteringEnabled(false)
	taskList.DisableQuitKeybindings()

	m := &Model{
		container:   c,
		ctx:         context.Background(),
		keys:        DefaultKeyMap(),
		styles:      styles,
		help:        help.New(),
		taskList:    taskList,
		authForm:    newAuthForm(),
		taskForm:    newTaskForm(),
		searchInput: si,
		mode:        ModeLogin,
	}
	m.statusLine = NewStatusLine(0, &m.styles)
	if c.Session.State().IsAuthenticated() {
		m.mode = ModeNormal
	}
	return m
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.mode == ModeNormal {
		cmds = append(cmds, m.loadTasks(""))
	}
	return tea.Batch(cmds...)
}

// tick schedules the next toast refresh.
func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return MsgTick{}
	})
}

// loadTasks returns a command that fetches (query empty) or searches tasks.
func (m *Model) loadTasks(query string) tea.Cmd {
	tasks := m.container.Tasks
	return func() tea.Msg {
		return MsgTasksLoaded{OK: tasks.Search(m.ctx, query)}
	}
}

// createTask returns a command that submits a draft.
func (m *Model) createTask(d domain.TaskDraft) tea.Cmd {
	tasks := m.container.Tasks
	return func() tea.Msg {
		return MsgTaskCreated{OK: tasks.Create(m.ctx, d)}
	}
}

// updateTask returns a command that saves an edit.
func (m *Model) updateTask(id int, p domain.TaskPatch) tea.Cmd {
	tasks := m.container.Tasks
	return func() tea.Msg {
		return MsgTaskUpdated{TaskID: id, OK: tasks.Update(m.ctx, id, p)}
	}
}

// toggleTask returns a command that flips the completed flag.
func (m *Model) toggleTask(id int) tea.Cmd {
	tasks := m.container.Tasks
	return func() tea.Msg {
		return MsgTaskUpdated{TaskID: id, OK: tasks.ToggleCompleted(m.ctx, id)}
	}
}

// deleteTask returns a command that deletes a task.
func (m *Model) deleteTask(id int) tea.Cmd {
	tasks := m.container.Tasks
	return func() tea.Msg {
		return MsgTaskDeleted{TaskID: id, OK: tasks.Delete(m.ctx, id)}
	}
}

// deleteSelected returns a command that bulk-deletes the selection.
func (m *Model) deleteSelected() tea.Cmd {
	tasks := m.container.Tasks
	return func() tea.Msg {
		return MsgBulkDeleted{Result: tasks.DeleteSelected(m.ctx)}
	}
}

// authenticate returns a command that logs in or registers.
func (m *Model) authenticate(register bool, username, email, password string) tea.Cmd {
	auth := m.container.Auth
	return func() tea.Msg {
		if register {
			return MsgAuthDone{Err: auth.Register(m.ctx, username, password, email)}
		}
		return MsgAuthDone{Err: auth.Login(m.ctx, username, password)}
	}
}

// notify raises a toast through the container's notifier.
func (m *Model) notify(msg string, kind domain.ToastKind) {
	m.container.Notifier.Notify(msg, kind)
}

// SelectedTask returns the task under the cursor, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	if m.taskList.SelectedItem() == nil {
		return nil
	}
	if ti, ok := m.taskList.SelectedItem().(taskItem); ok {
		return ti.task
	}
	return nil
}

// updateTaskList rebuilds the list items from the controller.
func (m *Model) updateTaskList() {
	tasks := m.container.Tasks.Visible()
	items := make([]list.Item, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, taskItem{task: task, checked: m.container.Tasks.IsSelected(task.ID)})
	}
	m.taskList.SetItems(items)
}

// syncSession returns to the login form when the session ended underneath us,
// for example after a 401 logged the user out.
func (m *Model) syncSession() tea.Cmd {
	if m.mode == ModeLogin || m.container.Session.State().IsAuthenticated() {
		return nil
	}
	m.mode = ModeLogin
	m.confirmAction = ConfirmNone
	m.busy = false
	m.container.Tasks.ClearSelection()
	m.taskList.SetItems(nil)
	return m.authForm.setFocus(authUsername)
}

// updateLayoutSizes resizes the components to the window.
func (m *Model) updateLayoutSizes() {
	// header, search line, bulk bar, toasts and footer
	listHeight := m.height - 12
	if listHeight < 3 {
		listHeight = 3
	}
	m.taskList.SetSize(m.width-4, listHeight)
	m.taskForm.setWidth(m.width - 16)
	m.searchInput.Width = m.width - 16
	m.statusLine.SetWidth(m.width - 4)
	m.help.Width = m.width
	if m.mode == ModeDetail {
		m.initDetailViewport()
	}
}

func (m *Model) detailTask() *domain.Task {
	t, ok := m.container.Tasks.Task(m.detailTaskID)
	if !ok {
		return nil
	}
	return t
}

func (m *Model) initDetailViewport() {
	width := m.width - 12
	height := m.height - 10
	if width < 40 {
		width = 40
	}
	if height < 10 {
		height = 10
	}
	m.detailViewport = viewport.New(width, height)
	m.detailViewport.SetContent(m.detailContent(width))
}

func (m *Model) detailContent(width int) string {
	task := m.detailTask()
	if task == nil {
		return "No task selected"
	}
	loc := m.container.Clock.Now().Location()

	row := func(label, value string) string {
		return m.styles.DetailLabel.Render(label) + m.styles.DetailValue.Render(value)
	}

	lines := []string{
		m.styles.DetailTitle.Render(fmt.Sprintf("Task #%d", task.ID)),
		lipgloss.NewStyle().Width(width).Bold(true).Render(task.Title),
		"",
		row("Status", task.StatusText()),
		m.styles.DetailLabel.Render("Priority") + m.styles.PriorityStyle(task.Priority).Render(task.Priority.Label()),
		row("Due", task.DueDate.In(loc).Format(domain.DateLayout)),
		row("Created", task.CreatedAt.In(loc).Format("2006-01-02 15:04")),
	}

	lines = append(lines, "", m.styles.DetailLabel.Render("Description"))
	if task.Description != "" {
		lines = append(lines, m.styles.DetailDesc.Width(width).Render(task.Description))
	} else {
		lines = append(lines, m.styles.FieldHint.Render("No description"))
	}

	return strings.Join(lines, "\n")
}

// sessionErrorToast shows the session error once and clears it.
// Session expiry is already announced by the HTTP client.
func (m *Model) sessionErrorToast() {
	state := m.container.Session.State()
	if state.Error == "" {
		return
	}
	m.notify(state.Error, domain.ToastError)
	m.container.Session.ResetError()
}

// validationToast shows the warning for a rejected form.
func (m *Model) validationToast(err error) {
	m.notify(tasklist.ValidationMessage(err), domain.ToastWarning)
}
