package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todolist/todo-client/internal/domain"
)

func TestAuthForm_Fields(t *testing.T) {
	f := newAuthForm()

	assert.Equal(t, []int{authUsername, authPassword}, f.fields())
	assert.Equal(t, authUsername, f.focus)

	f.switchMode()

	assert.True(t, f.register)
	assert.Equal(t, []int{authUsername, authEmail, authPassword}, f.fields())
}

func TestAuthForm_MoveWraps(t *testing.T) {
	f := newAuthForm()

	f.move(1)
	assert.Equal(t, authPassword, f.focus, "email is skipped when logging in")
	assert.True(t, f.onLastField())

	f.move(1)
	assert.Equal(t, authUsername, f.focus)

	f.move(-1)
	assert.Equal(t, authPassword, f.focus)
}

func TestAuthForm_Incomplete(t *testing.T) {
	f := newAuthForm()
	f.inputs[authUsername].SetValue("alice")
	assert.True(t, f.incomplete())

	f.inputs[authPassword].SetValue("secret")
	assert.False(t, f.incomplete())

	// Registering also needs the email.
	f.switchMode()
	assert.True(t, f.incomplete())

	f.inputs[authEmail].SetValue("   ")
	assert.True(t, f.incomplete(), "blank input counts as empty")

	f.inputs[authEmail].SetValue("alice@example.com")
	assert.False(t, f.incomplete())
}

func TestAuthForm_SwitchModeKeepsValues(t *testing.T) {
	f := newAuthForm()
	f.inputs[authUsername].SetValue("alice")
	f.inputs[authPassword].SetValue("secret")

	f.switchMode()

	username, _, password := f.values()
	assert.Equal(t, "alice", username)
	assert.Equal(t, "secret", password)
}

func TestAuthForm_Clear(t *testing.T) {
	f := newAuthForm()
	f.switchMode()
	f.inputs[authUsername].SetValue("alice")
	f.inputs[authEmail].SetValue("alice@example.com")
	f.setFocus(authPassword)

	f.clear()

	username, email, password := f.values()
	assert.Empty(t, username+email+password)
	assert.False(t, f.register)
	assert.Equal(t, authUsername, f.focus)
}

func TestTaskForm_CyclePriority(t *testing.T) {
	f := newTaskForm()
	require.Equal(t, domain.PriorityNormal, f.priority)

	f.cyclePriority(1)
	assert.Equal(t, domain.PriorityHigh, f.priority)

	f.cyclePriority(1)
	assert.Equal(t, domain.PriorityLow, f.priority, "wraps around")

	f.cyclePriority(-1)
	assert.Equal(t, domain.PriorityHigh, f.priority)
}

func TestTaskForm_Draft(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newTaskForm()
	f.fillDraft(domain.NewTaskDraft(now))

	assert.Equal(t, "2025-03-10", f.due.Value())
	assert.Equal(t, taskTitle, f.focus)

	f.title.SetValue("  Buy milk  ")
	f.due.SetValue("2025-03-12")
	f.cyclePriority(-1)

	d, err := f.draft(time.UTC)

	require.NoError(t, err)
	assert.Equal(t, "Buy milk", d.Title)
	assert.Equal(t, domain.PriorityLow, d.Priority)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), d.DueDate)
}

func TestTaskForm_DraftInvalidDate(t *testing.T) {
	f := newTaskForm()
	f.title.SetValue("Buy milk")
	f.due.SetValue("soon")

	_, err := f.draft(time.UTC)

	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestTaskForm_Patch(t *testing.T) {
	task := &domain.Task{
		ID:          1,
		Title:       "Buy milk",
		Description: "two litres",
		DueDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Priority:    domain.PriorityNormal,
	}

	tests := []struct {
		edit   func(f *taskForm)
		check  func(t *testing.T, p domain.TaskPatch)
		name   string
		wantOK bool
	}{
		{
			name:   "unchanged",
			edit:   func(*taskForm) {},
			check:  func(t *testing.T, p domain.TaskPatch) { assert.True(t, p.IsEmpty()) },
			wantOK: true,
		},
		{
			name: "title only keeps the overdue date out of the patch",
			edit: func(f *taskForm) { f.title.SetValue("Buy oat milk") },
			check: func(t *testing.T, p domain.TaskPatch) {
				require.NotNil(t, p.Title)
				assert.Equal(t, "Buy oat milk", *p.Title)
				assert.Nil(t, p.DueDate)
				assert.Nil(t, p.Description)
				assert.Nil(t, p.Priority)
			},
			wantOK: true,
		},
		{
			name: "due date and priority",
			edit: func(f *taskForm) {
				f.due.SetValue("2025-03-20")
				f.cyclePriority(1)
			},
			check: func(t *testing.T, p domain.TaskPatch) {
				require.NotNil(t, p.DueDate)
				assert.Equal(t, "2025-03-20", p.DueDate.Format(domain.DateLayout))
				require.NotNil(t, p.Priority)
				assert.Equal(t, domain.PriorityHigh, *p.Priority)
				assert.Nil(t, p.Title)
			},
			wantOK: true,
		},
		{
			name: "cleared description",
			edit: func(f *taskForm) { f.desc.SetValue("") },
			check: func(t *testing.T, p domain.TaskPatch) {
				require.NotNil(t, p.Description)
				assert.Empty(t, *p.Description)
			},
			wantOK: true,
		},
		{
			name: "bad date",
			edit: func(f *taskForm) { f.due.SetValue("2025-13-01") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTaskForm()
			f.fillTask(task, time.UTC)
			tt.edit(&f)

			p, err := f.patch(task, time.UTC)

			if !tt.wantOK {
				assert.ErrorIs(t, err, domain.ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}
