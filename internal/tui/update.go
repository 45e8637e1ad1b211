package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/todolist/todo-client/internal/domain"
	"github.com/todolist/todo-client/internal/tasklist"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayoutSizes()
		return m, nil

	case MsgTick:
		return m, m.tick()

	case MsgAuthDone:
		m.busy = false
		if msg.Err != nil {
			m.sessionErrorToast()
			return m, nil
		}
		m.mode = ModeNormal
		cmd := m.authForm.clear()
		return m, tea.Batch(cmd, m.loadTasks(""))

	case MsgTasksLoaded:
		m.updateTaskList()
		return m, m.syncSession()

	case MsgTaskCreated:
		m.busy = false
		if msg.OK {
			m.mode = ModeNormal
			m.updateTaskList()
			return m, nil
		}
		// Keep the fields so the user can correct them.
		return m, m.syncSession()

	case MsgTaskUpdated:
		m.busy = false
		if msg.OK {
			if m.mode == ModeEdit {
				m.mode = ModeDetail
			}
			m.updateTaskList()
			if m.mode == ModeDetail {
				m.initDetailViewport()
			}
			return m, nil
		}
		return m, m.syncSession()

	case MsgTaskDeleted:
		m.busy = false
		if msg.OK {
			if m.mode == ModeDetail && m.detailTaskID == msg.TaskID {
				m.mode = ModeNormal
			}
			m.updateTaskList()
			return m, nil
		}
		return m, m.syncSession()

	case MsgBulkDeleted:
		m.busy = false
		m.updateTaskList()
		return m, m.syncSession()
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeLogin:
		return m.handleLoginMode(msg)
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeSearch:
		return m.handleSearchMode(msg)
	case ModeAdd, ModeEdit:
		return m.handleFormMode(msg)
	case ModeDetail:
		return m.handleDetailMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	}
	return m, nil
}

func (m *Model) handleLoginMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		return m, tea.Quit

	case key.Matches(msg, m.keys.SwitchAuth):
		m.container.Session.ResetError()
		return m, m.authForm.switchMode()

	case key.Matches(msg, m.keys.NextField):
		return m, m.authForm.move(1)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.authForm.move(-1)

	case msg.Type == tea.KeyEnter:
		if !m.authForm.onLastField() {
			return m, m.authForm.move(1)
		}
		return m.submitAuth()
	}

	return m, m.authForm.update(msg)
}

func (m *Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.authForm.incomplete() {
		m.notify(tasklist.MsgFillInAllFields, domain.ToastWarning)
		return m, nil
	}
	username, email, password := m.authForm.values()
	m.busy = true
	return m, m.authenticate(m.authForm.register, username, email, password)
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.container.Tasks

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.prevMode = m.mode
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		// Clear the search first, then the selection.
		if tasks.Query() != "" {
			m.searchInput.Reset()
			return m, m.loadTasks("")
		}
		tasks.ClearSelection()
		m.updateTaskList()
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.mode = ModeAdd
		return m, m.taskForm.fillDraft(domain.NewTaskDraft(m.container.Clock.Now()))

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.searchInput.SetValue(tasks.Query())
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadTasks(tasks.Query())

	case key.Matches(msg, m.keys.ShowCompleted):
		tasks.SetShowCompleted(!tasks.ShowCompleted())
		m.updateTaskList()
		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		tasks.SelectAll()
		m.updateTaskList()
		return m, nil

	case key.Matches(msg, m.keys.BulkDelete):
		if len(tasks.Selected()) == 0 {
			m.notify(tasklist.MsgNoTasksSelected, domain.ToastWarning)
			return m, nil
		}
		m.confirm(ConfirmBulkDelete, 0)
		return m, nil

	case key.Matches(msg, m.keys.DismissToast):
		m.dismissToast()
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		m.container.Session.Logout()
		return m, m.syncSession()
	}

	task := m.SelectedTask()
	if task != nil {
		switch {
		case key.Matches(msg, m.keys.Detail):
			m.openDetail(task.ID)
			return m, nil

		case key.Matches(msg, m.keys.Select):
			tasks.ToggleSelected(task.ID)
			m.updateTaskList()
			return m, nil

		case key.Matches(msg, m.keys.ToggleComplete):
			return m, m.toggleTask(task.ID)

		case key.Matches(msg, m.keys.Delete):
			m.confirm(ConfirmDelete, task.ID)
			return m, nil
		}
	}

	// Navigation is handled by the list component.
	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.mode = ModeNormal
		m.searchInput.Blur()
		return m, m.loadTasks(m.searchInput.Value())
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleFormMode drives both the add form and the edit form.
func (m *Model) handleFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		// Cancel drops the typed values; the edit form is refilled from the saved task next time.
		if m.mode == ModeEdit {
			m.mode = ModeDetail
			m.initDetailViewport()
		} else {
			m.mode = ModeNormal
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitTaskForm()

	case key.Matches(msg, m.keys.NextField):
		return m, m.taskForm.move(1)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.taskForm.move(-1)
	}

	if m.taskForm.focus == taskPriority {
		switch msg.String() {
		case "left", "h":
			m.taskForm.cyclePriority(-1)
		case "right", "l", " ":
			m.taskForm.cyclePriority(1)
		case "enter":
			return m.submitTaskForm()
		}
		return m, nil
	}
	if msg.Type == tea.KeyEnter && m.taskForm.focus != taskDesc {
		return m, m.taskForm.move(1)
	}

	return m, m.taskForm.update(msg)
}

func (m *Model) submitTaskForm() (tea.Model, tea.Cmd) {
	now := m.container.Clock.Now()

	if m.mode == ModeAdd {
		draft, err := m.taskForm.draft(now.Location())
		if err != nil {
			m.validationToast(err)
			return m, nil
		}
		m.busy = true
		return m, m.createTask(draft)
	}

	task := m.detailTask()
	if task == nil {
		m.mode = ModeNormal
		return m, nil
	}
	patch, err := m.taskForm.patch(task, now.Location())
	if err != nil {
		m.validationToast(err)
		return m, nil
	}
	if patch.IsEmpty() {
		m.notify(tasklist.MsgNothingToUpdate, domain.ToastInfo)
		m.mode = ModeDetail
		m.initDetailViewport()
		return m, nil
	}
	if err := patch.Validate(task.Input(), now); err != nil {
		m.validationToast(err)
		return m, nil
	}
	m.busy = true
	return m, m.updateTask(task.ID, patch)
}

func (m *Model) handleDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	task := m.detailTask()
	if task == nil {
		m.mode = ModeNormal
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		m.mode = ModeEdit
		return m, m.taskForm.fillTask(task, m.container.Clock.Now().Location())

	case key.Matches(msg, m.keys.ToggleComplete):
		return m, m.toggleTask(task.ID)

	case key.Matches(msg, m.keys.Delete):
		m.confirm(ConfirmDelete, task.ID)
		return m, nil

	case key.Matches(msg, m.keys.DismissToast):
		m.dismissToast()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, id := m.confirmAction, m.confirmTaskID
	m.mode = m.prevMode
	m.confirmAction = ConfirmNone
	m.confirmTaskID = 0

	if !key.Matches(msg, m.keys.Confirm) {
		return m, nil
	}

	switch action {
	case ConfirmDelete:
		m.busy = true
		return m, m.deleteTask(id)
	case ConfirmBulkDelete:
		m.busy = true
		return m, m.deleteSelected()
	case ConfirmNone:
	}
	return m, nil
}

func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Quit) {
		m.mode = m.prevMode
	}
	return m, nil
}

func (m *Model) confirm(action ConfirmAction, taskID int) {
	m.prevMode = m.mode
	m.mode = ModeConfirm
	m.confirmAction = action
	m.confirmTaskID = taskID
}

func (m *Model) openDetail(id int) {
	m.detailTaskID = id
	m.mode = ModeDetail
	m.initDetailViewport()
}

func (m *Model) dismissToast() {
	if t, ok := m.container.Toasts.Latest(); ok {
		m.container.Toasts.Remove(t.ID)
	}
}

// confirmPrompt returns the question shown in the confirm dialog.
func (m *Model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmDelete:
		if t, ok := m.container.Tasks.Task(m.confirmTaskID); ok {
			return fmt.Sprintf("Delete task #%d %q?", t.ID, t.Title)
		}
		return fmt.Sprintf("Delete task #%d?", m.confirmTaskID)
	case ConfirmBulkDelete:
		return fmt.Sprintf("Delete %d selected tasks?", len(m.container.Tasks.Selected()))
	case ConfirmNone:
	}
	return ""
}
