package tasklist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todolist/todo-client/internal/domain"
	"github.com/todolist/todo-client/internal/testutil"
)

var testNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return domain.StartOfDay(testNow).AddDate(0, 0, offset)
}

type fixture struct {
	api      *testutil.MockTaskAPI
	notifier *testutil.MockNotifier
	ctrl     *Controller
}

func newFixture() *fixture {
	f := &fixture{
		api:      testutil.NewMockTaskAPI(),
		notifier: &testutil.MockNotifier{},
	}
	f.ctrl = New(f.api, f.notifier,
		WithClock(&testutil.MockClock{NowTime: testNow}),
		WithLogger(&testutil.MockLogger{}),
	)
	return f
}

// seed stores tasks out of due date order and loads them.
func (f *fixture) seed(t *testing.T) {
	t.Helper()
	f.api.Add(domain.Task{ID: 1, Title: "Later", DueDate: day(5), Priority: domain.PriorityLow})
	f.api.Add(domain.Task{ID: 2, Title: "Soon", DueDate: day(1), Priority: domain.PriorityHigh})
	f.api.Add(domain.Task{ID: 3, Title: "Middle", DueDate: day(3), Priority: domain.PriorityNormal, Completed: true})
	require.True(t, f.ctrl.FetchAll(context.Background()))
	f.notifier.Reset()
	f.api.Calls = nil
}

func ids(tasks []*domain.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestController_FetchAllSortsByDueDate(t *testing.T) {
	// Setup
	f := newFixture()
	f.api.Add(domain.Task{ID: 1, Title: "c", DueDate: day(2)})
	f.api.Add(domain.Task{ID: 2, Title: "a", DueDate: day(0)})
	f.api.Add(domain.Task{ID: 3, Title: "b", DueDate: day(2)})
	f.api.Add(domain.Task{ID: 4, Title: "d", DueDate: day(1)})

	// Execute
	ok := f.ctrl.FetchAll(context.Background())

	// Assert
	require.True(t, ok)
	assert.Equal(t, []int{2, 4, 1, 3}, ids(f.ctrl.Tasks()), "equal dates keep server order")
	assert.False(t, f.ctrl.Loading())
	assert.Empty(t, f.notifier.Toasts)
}

func TestController_FetchAllFailure(t *testing.T) {
	f := newFixture()
	f.seed(t)
	f.api.ListErr = errors.New("connection refused")

	ok := f.ctrl.FetchAll(context.Background())

	assert.False(t, ok)
	assert.Equal(t, []string{MsgLoadFailed}, f.notifier.Messages())
	assert.Equal(t, domain.ToastError, f.notifier.Toasts[0].Kind)
	assert.Len(t, f.ctrl.Tasks(), 3, "state unchanged")
}

func TestController_LoadingDuringFetch(t *testing.T) {
	f := newFixture()
	var during bool
	f.ctrl.api = loadingProbe{MockTaskAPI: f.api, probe: func() { during = f.ctrl.Loading() }}

	f.ctrl.FetchAll(context.Background())

	assert.True(t, during)
	assert.False(t, f.ctrl.Loading())
}

type loadingProbe struct {
	*testutil.MockTaskAPI
	probe func()
}

func (p loadingProbe) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	p.probe()
	return p.MockTaskAPI.ListTasks(ctx)
}

func TestController_SessionExpiredSuppressesToast(t *testing.T) {
	expired := testutil.StatusError{Code: 401}

	tests := []struct {
		name string
		arm  func(api *testutil.MockTaskAPI)
		run  func(c *Controller) bool
	}{
		{"fetch", func(a *testutil.MockTaskAPI) { a.ListErr = expired }, func(c *Controller) bool { return c.FetchAll(context.Background()) }},
		{"search", func(a *testutil.MockTaskAPI) { a.SearchErr = expired }, func(c *Controller) bool { return c.Search(context.Background(), "x") }},
		{"create", func(a *testutil.MockTaskAPI) { a.CreateErr = expired }, func(c *Controller) bool {
			return c.Create(context.Background(), domain.TaskDraft{Title: "t", DueDate: day(0)})
		}},
		{"update", func(a *testutil.MockTaskAPI) { a.UpdateErr = expired }, func(c *Controller) bool {
			title := "x"
			return c.Update(context.Background(), 1, domain.TaskPatch{Title: &title})
		}},
		{"delete", func(a *testutil.MockTaskAPI) { a.DeleteErrs[1] = expired }, func(c *Controller) bool { return c.Delete(context.Background(), 1) }},
		{"bulk delete", func(a *testutil.MockTaskAPI) { a.DeleteErrs[1] = expired }, func(c *Controller) bool {
			return c.BulkDelete(context.Background(), []int{1, 2}).OK()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.seed(t)
			tt.arm(f.api)

			ok := tt.run(f.ctrl)

			assert.False(t, ok)
			assert.Empty(t, f.notifier.Toasts)
		})
	}
}

func TestController_SearchBlankIsFetchAll(t *testing.T) {
	for _, q := range []string{"", "   ", "\t"} {
		f := newFixture()
		f.seed(t)
		want := ids(f.ctrl.Tasks())

		ok := f.ctrl.Search(context.Background(), q)

		require.True(t, ok)
		assert.Equal(t, []string{"list"}, f.api.Calls)
		assert.Equal(t, want, ids(f.ctrl.Tasks()))
		assert.Empty(t, f.ctrl.Query())
	}
}

func TestController_Search(t *testing.T) {
	// Setup
	f := newFixture()
	f.api.Add(domain.Task{ID: 1, Title: "Buy milk", DueDate: day(4)})
	f.api.Add(domain.Task{ID: 2, Title: "Walk dog", DueDate: day(1)})
	f.api.Add(domain.Task{ID: 3, Title: "Buy bread", DueDate: day(2)})

	// Execute
	ok := f.ctrl.Search(context.Background(), "buy")

	// Assert
	require.True(t, ok)
	assert.Equal(t, []string{"search:buy"}, f.api.Calls)
	assert.Equal(t, []int{3, 1}, ids(f.ctrl.Tasks()))
	assert.Equal(t, "buy", f.ctrl.Query())
}

func TestController_SearchFailure(t *testing.T) {
	f := newFixture()
	f.api.SearchErr = errors.New("500")

	assert.False(t, f.ctrl.Search(context.Background(), "x"))
	assert.Equal(t, []string{MsgSearchFailed}, f.notifier.Messages())
}

func TestController_Create(t *testing.T) {
	// Setup
	f := newFixture()
	f.seed(t)

	// Execute
	ok := f.ctrl.Create(context.Background(), domain.TaskDraft{
		Title:    "Today",
		DueDate:  day(0),
		Priority: domain.PriorityHigh,
	})

	// Assert
	require.True(t, ok)
	assert.Equal(t, []string{"create"}, f.api.Calls)
	tasks := f.ctrl.Tasks()
	require.Len(t, tasks, 4)
	assert.Equal(t, "Today", tasks[0].Title)
	assert.True(t, domain.IsSortedByDueDate(tasks))
	assert.Equal(t, []string{MsgAdded}, f.notifier.Messages())
	assert.Equal(t, domain.ToastSuccess, f.notifier.Toasts[0].Kind)
}

func TestController_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		draft domain.TaskDraft
		want  string
	}{
		{"empty title", domain.TaskDraft{Title: "", DueDate: day(1)}, MsgTitleRequired},
		{"blank title", domain.TaskDraft{Title: "   ", DueDate: day(1)}, MsgTitleRequired},
		{"yesterday", domain.TaskDraft{Title: "t", DueDate: day(-1)}, MsgDueDateInPast},
		{"bad priority", domain.TaskDraft{Title: "t", DueDate: day(1), Priority: "urgent"}, MsgInvalidPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			ok := f.ctrl.Create(context.Background(), tt.draft)

			assert.False(t, ok)
			assert.Empty(t, f.api.Calls, "no network call")
			require.Len(t, f.notifier.Toasts, 1)
			assert.Equal(t, tt.want, f.notifier.Toasts[0].Message)
			assert.Equal(t, domain.ToastWarning, f.notifier.Toasts[0].Kind)
		})
	}
}

func TestController_CreateEarlierTodayIsAllowed(t *testing.T) {
	f := newFixture()

	// Earlier time of day on the current date still counts as today
	ok := f.ctrl.Create(context.Background(), domain.TaskDraft{Title: "t", DueDate: day(0).Add(time.Hour)})

	assert.True(t, ok)
}

func TestController_CreateFailure(t *testing.T) {
	f := newFixture()
	f.api.CreateErr = errors.New("500")

	ok := f.ctrl.Create(context.Background(), domain.TaskDraft{Title: "t", DueDate: day(0)})

	assert.False(t, ok)
	assert.Empty(t, f.ctrl.Tasks())
	assert.Equal(t, []string{MsgAddFailed}, f.notifier.Messages())
}

func TestController_UpdateRoundTrip(t *testing.T) {
	// Setup
	f := newFixture()
	f.seed(t)
	before, _ := f.ctrl.Task(1)
	title := "X"

	// Execute
	ok := f.ctrl.Update(context.Background(), 1, domain.TaskPatch{Title: &title})
	require.True(t, ok)
	require.True(t, f.ctrl.FetchAll(context.Background()))

	// Assert
	after, found := f.ctrl.Task(1)
	require.True(t, found)
	assert.Equal(t, "X", after.Title)
	assert.Equal(t, before.Description, after.Description)
	assert.Equal(t, before.Completed, after.Completed)
	assert.Equal(t, before.Priority, after.Priority)
	assert.True(t, before.DueDate.Equal(after.DueDate))
	assert.Equal(t, before.OwnerID, after.OwnerID)

	sent := f.api.Updates[1]
	assert.Equal(t, domain.TaskInput{
		Title:       "X",
		Description: before.Description,
		Completed:   before.Completed,
		DueDate:     before.DueDate,
		Priority:    before.Priority,
	}, sent)
	assert.Equal(t, []string{MsgUpdated}, f.notifier.Messages())
}

func TestController_UpdateResorts(t *testing.T) {
	f := newFixture()
	f.seed(t)
	due := day(10)

	require.True(t, f.ctrl.Update(context.Background(), 2, domain.TaskPatch{DueDate: &due}))

	assert.Equal(t, []int{3, 1, 2}, ids(f.ctrl.Tasks()))
}

func TestController_UpdateCompletedOnlyHasNoGenericToast(t *testing.T) {
	f := newFixture()
	f.seed(t)
	done := true

	ok := f.ctrl.Update(context.Background(), 1, domain.TaskPatch{Completed: &done})

	require.True(t, ok)
	assert.Empty(t, f.notifier.Toasts)
	task, _ := f.ctrl.Task(1)
	assert.True(t, task.Completed)
}

func TestController_UpdateCompletedWithOtherFieldToasts(t *testing.T) {
	f := newFixture()
	f.seed(t)
	done := true
	title := "renamed"

	require.True(t, f.ctrl.Update(context.Background(), 1, domain.TaskPatch{Completed: &done, Title: &title}))

	assert.Equal(t, []string{MsgUpdated}, f.notifier.Messages())
}

func TestController_UpdateUnknownID(t *testing.T) {
	f := newFixture()
	f.seed(t)
	title := "x"

	ok := f.ctrl.Update(context.Background(), 99, domain.TaskPatch{Title: &title})

	assert.False(t, ok)
	assert.Empty(t, f.api.Calls)
	assert.Empty(t, f.notifier.Toasts)
}

func TestController_UpdateFailure(t *testing.T) {
	f := newFixture()
	f.seed(t)
	f.api.UpdateErr = errors.New("500")
	title := "x"

	ok := f.ctrl.Update(context.Background(), 1, domain.TaskPatch{Title: &title})

	assert.False(t, ok)
	assert.Equal(t, []string{MsgUpdateFailed}, f.notifier.Messages())
	task, _ := f.ctrl.Task(1)
	assert.Equal(t, "Later", task.Title)
}

func TestController_ToggleCompleted(t *testing.T) {
	f := newFixture()
	f.seed(t)

	require.True(t, f.ctrl.ToggleCompleted(context.Background(), 1))
	require.True(t, f.ctrl.ToggleCompleted(context.Background(), 3))

	assert.Equal(t, []string{MsgMarkedCompleted, MsgMarkedActive}, f.notifier.Messages())
	assert.Equal(t, 2, f.notifier.Count(domain.ToastInfo))
	assert.False(t, f.ctrl.ToggleCompleted(context.Background(), 42))
}

func TestController_Delete(t *testing.T) {
	// Setup
	f := newFixture()
	f.seed(t)
	f.ctrl.ToggleSelected(2)
	require.True(t, f.ctrl.IsSelected(2))

	// Execute
	ok := f.ctrl.Delete(context.Background(), 2)

	// Assert
	require.True(t, ok)
	assert.Equal(t, []int{3, 1}, ids(f.ctrl.Tasks()))
	assert.False(t, f.ctrl.IsSelected(2))
	assert.Equal(t, []string{MsgRemoved}, f.notifier.Messages())
}

func TestController_DeleteFailure(t *testing.T) {
	f := newFixture()
	f.seed(t)
	f.api.DeleteErrs[2] = errors.New("500")

	assert.False(t, f.ctrl.Delete(context.Background(), 2))
	assert.Len(t, f.ctrl.Tasks(), 3)
	assert.Equal(t, []string{MsgDeleteFailed}, f.notifier.Messages())
}

func TestController_BulkDelete(t *testing.T) {
	// Setup
	f := newFixture()
	f.seed(t)

	// Execute
	res := f.ctrl.BulkDelete(context.Background(), []int{1, 3})

	// Assert
	require.True(t, res.OK())
	assert.Equal(t, []int{1, 3}, res.Deleted)
	assert.Equal(t, []string{"delete:1", "delete:3"}, f.api.Calls)
	assert.Equal(t, []int{2}, ids(f.ctrl.Tasks()))
	assert.Equal(t, []string{"2 tasks removed successfully!"}, f.notifier.Messages())
}

func TestController_BulkDeleteStopsAtFirstFailure(t *testing.T) {
	// Setup: a, b, c where deleting b fails
	f := newFixture()
	f.api.Add(domain.Task{ID: 1, Title: "a", DueDate: day(1)})
	f.api.Add(domain.Task{ID: 2, Title: "b", DueDate: day(2)})
	f.api.Add(domain.Task{ID: 3, Title: "c", DueDate: day(3)})
	require.True(t, f.ctrl.FetchAll(context.Background()))
	f.api.Calls = nil
	boom := errors.New("500")
	f.api.DeleteErrs[2] = boom

	// Execute
	res := f.ctrl.BulkDelete(context.Background(), []int{1, 2, 3})

	// Assert
	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err, boom)
	assert.Equal(t, []int{1}, res.Deleted)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, []int{3}, res.Skipped)
	assert.Equal(t, []string{"delete:1", "delete:2"}, f.api.Calls, "loop does not reach c")
	assert.Equal(t, []int{2, 3}, ids(f.ctrl.Tasks()))
	assert.Equal(t, []string{MsgBulkDeleteFailed}, f.notifier.Messages())
}

func TestController_BulkDeleteEmpty(t *testing.T) {
	f := newFixture()

	res := f.ctrl.BulkDelete(context.Background(), nil)

	assert.ErrorIs(t, res.Err, domain.ErrNoTasksSelected)
	assert.Empty(t, f.api.Calls)
	assert.Equal(t, []string{MsgNoTasksSelected}, f.notifier.Messages())
}

func TestController_DeleteSelectedInListOrder(t *testing.T) {
	f := newFixture()
	f.seed(t)
	f.ctrl.ToggleSelected(1)
	f.ctrl.ToggleSelected(2)

	res := f.ctrl.DeleteSelected(context.Background())

	require.True(t, res.OK())
	assert.Equal(t, []string{"delete:2", "delete:1"}, f.api.Calls)
	assert.Empty(t, f.ctrl.Selected())
}

func TestController_Selection(t *testing.T) {
	f := newFixture()
	f.seed(t)

	f.ctrl.ToggleSelected(99)
	assert.Empty(t, f.ctrl.Selected(), "unknown ids are ignored")

	f.ctrl.SelectAll()
	assert.Equal(t, []int{2, 3, 1}, f.ctrl.Selected())

	f.ctrl.SelectAll()
	assert.Empty(t, f.ctrl.Selected(), "second select-all clears")

	f.ctrl.ToggleSelected(3)
	f.ctrl.ToggleSelected(3)
	assert.Empty(t, f.ctrl.Selected())

	f.ctrl.ToggleSelected(1)
	f.ctrl.ClearSelection()
	assert.Empty(t, f.ctrl.Selected())
}

func TestController_ShowCompletedFilter(t *testing.T) {
	// Setup
	f := newFixture()
	f.seed(t)
	f.ctrl.SelectAll()
	require.True(t, f.ctrl.ShowCompleted())

	// Execute
	f.ctrl.SetShowCompleted(false)

	// Assert
	assert.Equal(t, []int{2, 1}, ids(f.ctrl.Visible()))
	assert.Len(t, f.ctrl.Tasks(), 3)
	assert.Equal(t, []int{2, 1}, f.ctrl.Selected(), "hidden tasks leave the selection")

	total, completed := f.ctrl.Stats()
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, completed)
}

func TestController_TasksAreCopies(t *testing.T) {
	f := newFixture()
	f.seed(t)

	f.ctrl.Tasks()[0].Title = "mutated"

	task, _ := f.ctrl.Task(2)
	assert.Equal(t, "Soon", task.Title)
}

func TestValidationMessage(t *testing.T) {
	assert.Equal(t, MsgTitleRequired, ValidationMessage(domain.ErrEmptyTitle))
	assert.Equal(t, MsgDueDateInPast, ValidationMessage(domain.ErrDueDateInPast))
	assert.Equal(t, MsgFillInAllFields, ValidationMessage(domain.ErrEmptyCredentials))
	assert.Equal(t, msgValidationFallback, ValidationMessage(errors.New("other")))
}

func TestController_SetCompletedIsIdempotent(t *testing.T) {
	f := newFixture()
	f.seed(t)

	require.True(t, f.ctrl.SetCompleted(context.Background(), 3, true))

	task, _ := f.ctrl.Task(3)
	assert.True(t, task.Completed)
	assert.Equal(t, []string{MsgMarkedCompleted}, f.notifier.Messages())
}
