package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/todolist/todo-client/internal/domain"
)

// Auth form fields.
const (
	authUsername = iota
	authEmail
	authPassword
	authFieldCount
)

// authForm is the login/register form. Email is only shown when registering.
// Fields are ordered to minimize memory padding.
type authForm struct {
	inputs   [authFieldCount]textinput.Model
	focus    int
	register bool
}

func newAuthForm() authForm {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 100

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 200
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	f := authForm{inputs: [authFieldCount]textinput.Model{username, email, password}}
	f.setFocus(authUsername)
	return f
}

// fields returns the visible fields in tab order.
func (f *authForm) fields() []int {
	if f.register {
		return []int{authUsername, authEmail, authPassword}
	}
	return []int{authUsername, authPassword}
}

func (f *authForm) setFocus(field int) tea.Cmd {
	f.focus = field
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == field {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

// move shifts focus by delta through the visible fields, wrapping around.
func (f *authForm) move(delta int) tea.Cmd {
	fields := f.fields()
	pos := 0
	for i, field := range fields {
		if field == f.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	return f.setFocus(fields[pos])
}

// onLastField reports whether enter should submit.
func (f *authForm) onLastField() bool {
	fields := f.fields()
	return f.focus == fields[len(fields)-1]
}

// switchMode toggles login/register and keeps the typed values.
func (f *authForm) switchMode() tea.Cmd {
	f.register = !f.register
	return f.setFocus(authUsername)
}

func (f *authForm) values() (username, email, password string) {
	return f.inputs[authUsername].Value(), f.inputs[authEmail].Value(), f.inputs[authPassword].Value()
}

// incomplete reports whether a visible field is blank.
func (f *authForm) incomplete() bool {
	for _, field := range f.fields() {
		if strings.TrimSpace(f.inputs[field].Value()) == "" {
			return true
		}
	}
	return false
}

// clear empties every field, used after a successful sign-in.
func (f *authForm) clear() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.register = false
	return f.setFocus(authUsername)
}

func (f *authForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// Task form fields.
const (
	taskTitle = iota
	taskDesc
	taskDue
	taskPriority
	taskFieldCount
)

// taskForm is used by both the add form and the edit form.
// Fields are ordered to minimize memory padding.
type taskForm struct {
	priority domain.Priority
	title    textinput.Model
	due      textinput.Model
	desc     textarea.Model
	focus    int
}

func newTaskForm() taskForm {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200

	due := textinput.New()
	due.Placeholder = domain.DateLayout
	due.CharLimit = len(domain.DateLayout)

	desc := textarea.New()
	desc.Placeholder = "Description (optional)"
	desc.ShowLineNumbers = false
	desc.CharLimit = 2000
	desc.SetHeight(4)

	return taskForm{
		priority: domain.PriorityNormal,
		title:    title,
		due:      due,
		desc:     desc,
	}
}

// fillDraft loads the defaults of a new task.
func (f *taskForm) fillDraft(d domain.TaskDraft) tea.Cmd {
	f.title.SetValue(d.Title)
	f.desc.SetValue(d.Description)
	f.due.SetValue(d.DueDate.Format(domain.DateLayout))
	f.priority = d.Priority
	if !f.priority.IsValid() {
		f.priority = domain.PriorityNormal
	}
	return f.setFocus(taskTitle)
}

// fillTask loads the saved values of t, in loc.
func (f *taskForm) fillTask(t *domain.Task, loc *time.Location) tea.Cmd {
	f.title.SetValue(t.Title)
	f.desc.SetValue(t.Description)
	f.due.SetValue(t.DueDate.In(loc).Format(domain.DateLayout))
	f.priority = t.Priority
	if !f.priority.IsValid() {
		f.priority = domain.PriorityNormal
	}
	return f.setFocus(taskTitle)
}

func (f *taskForm) setFocus(field int) tea.Cmd {
	f.focus = field
	f.title.Blur()
	f.due.Blur()
	f.desc.Blur()
	switch field {
	case taskTitle:
		return f.title.Focus()
	case taskDesc:
		return f.desc.Focus()
	case taskDue:
		return f.due.Focus()
	}
	return nil
}

func (f *taskForm) move(delta int) tea.Cmd {
	return f.setFocus((f.focus + delta + taskFieldCount) % taskFieldCount)
}

// cyclePriority steps through low, normal, high.
func (f *taskForm) cyclePriority(delta int) {
	all := domain.AllPriorities()
	pos := 1
	for i, p := range all {
		if p == f.priority {
			pos = i
		}
	}
	f.priority = all[(pos+delta+len(all))%len(all)]
}

// draft builds a new task from the form.
func (f *taskForm) draft(loc *time.Location) (domain.TaskDraft, error) {
	due, err := domain.ParseDate(f.due.Value(), loc)
	if err != nil {
		return domain.TaskDraft{}, err
	}
	return domain.TaskDraft{
		Title:       strings.TrimSpace(f.title.Value()),
		Description: f.desc.Value(),
		DueDate:     due,
		Priority:    f.priority,
	}, nil
}

// patch returns the fields that differ from t.
func (f *taskForm) patch(t *domain.Task, loc *time.Location) (domain.TaskPatch, error) {
	var p domain.TaskPatch

	if title := strings.TrimSpace(f.title.Value()); title != t.Title {
		p.Title = &title
	}
	if desc := f.desc.Value(); desc != t.Description {
		p.Description = &desc
	}
	if f.due.Value() != t.DueDate.In(loc).Format(domain.DateLayout) {
		due, err := domain.ParseDate(f.due.Value(), loc)
		if err != nil {
			return p, err
		}
		p.DueDate = &due
	}
	if prio := f.priority; prio != t.Priority {
		p.Priority = &prio
	}
	return p, nil
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case taskTitle:
		f.title, cmd = f.title.Update(msg)
	case taskDesc:
		f.desc, cmd = f.desc.Update(msg)
	case taskDue:
		f.due, cmd = f.due.Update(msg)
	}
	return cmd
}

func (f *taskForm) setWidth(width int) {
	if width < 20 {
		width = 20
	}
	f.title.Width = width
	f.due.Width = len(domain.DateLayout) + 1
	f.desc.SetWidth(width)
}
