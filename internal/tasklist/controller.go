// Package tasklist owns the signed-in user's in-memory task collection.
//
// Every operation is one round trip to the API. Results are sorted by due
// date and reported through the notifier. Failures caused by an expired
// session produce no toast here, since the API client already raised one.
package tasklist

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/todolist/todo-client/internal/domain"
)

// Controller holds the task list and the selection used by bulk actions.
// It is safe for concurrent use; the lock is never held during a network call.
// Fields are ordered to minimize memory padding.
type Controller struct {
	api           domain.TaskAPI
	notifier      domain.Notifier
	logger        domain.Logger
	clock         domain.Clock
	selected      map[int]struct{}
	query         string
	tasks         []*domain.Task
	mu            sync.Mutex
	loading       bool
	showCompleted bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger.
func WithLogger(l domain.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithClock replaces the clock used for due date validation.
func WithClock(clock domain.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// New creates an empty Controller. Completed tasks are shown by default.
func New(api domain.TaskAPI, notifier domain.Notifier, opts ...Option) *Controller {
	c := &Controller{
		api:           api,
		notifier:      notifier,
		logger:        domain.NopLogger{},
		clock:         domain.RealClock{},
		selected:      make(map[int]struct{}),
		showCompleted: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Now returns the controller clock's current time.
func (c *Controller) Now() time.Time {
	return c.clock.Now()
}

// Tasks returns a copy of the whole list in due date order.
func (c *Controller) Tasks() []*domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneTasks(c.tasks, nil)
}

// Visible returns the tasks passing the completed filter.
func (c *Controller) Visible() []*domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneTasks(c.tasks, c.visibleLocked)
}

// Task returns a copy of the local task with id.
func (c *Controller) Task(id int) (*domain.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t := c.findLocked(id); t != nil {
		cp := *t
		return &cp, true
	}
	return nil, false
}

// Loading reports whether a fetch or search is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Query returns the last search query ("" after FetchAll).
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// ShowCompleted reports whether completed tasks are visible.
func (c *Controller) ShowCompleted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showCompleted
}

// SetShowCompleted sets the completed filter. Hidden tasks leave the selection.
func (c *Controller) SetShowCompleted(show bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showCompleted = show
	for id := range c.selected {
		if t := c.findLocked(id); t == nil || !c.visibleLocked(t) {
			delete(c.selected, id)
		}
	}
}

// Stats counts the whole list.
func (c *Controller) Stats() (total, completed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		if t.Completed {
			completed++
		}
	}
	return len(c.tasks), completed
}

// FetchAll replaces the list with every task of the current user.
func (c *Controller) FetchAll(ctx context.Context) bool {
	c.setLoading(true)
	defer c.setLoading(false)

	tasks, err := c.api.ListTasks(ctx)
	if err != nil {
		c.fail("fetch tasks", err, MsgLoadFailed)
		return false
	}
	c.replace(tasks, "")
	return true
}

// Search replaces the list with the server's matches for query.
// A blank query is the same as FetchAll.
func (c *Controller) Search(ctx context.Context, query string) bool {
	if strings.TrimSpace(query) == "" {
		return c.FetchAll(ctx)
	}

	c.setLoading(true)
	defer c.setLoading(false)

	tasks, err := c.api.SearchTasks(ctx, query)
	if err != nil {
		c.fail("search tasks", err, MsgSearchFailed)
		return false
	}
	c.replace(tasks, query)
	return true
}

// Create validates the draft, then submits it.
// An invalid draft is rejected with a warning and never reaches the server.
func (c *Controller) Create(ctx context.Context, draft domain.TaskDraft) bool {
	if err := draft.Validate(c.clock.Now()); err != nil {
		c.notifier.Notify(ValidationMessage(err), domain.ToastWarning)
		return false
	}

	task, err := c.api.CreateTask(ctx, draft.Input())
	if err != nil {
		c.fail("create task", err, MsgAddFailed)
		return false
	}

	c.mu.Lock()
	c.tasks = append(c.tasks, task)
	domain.SortByDueDate(c.tasks)
	c.mu.Unlock()

	c.logger.Info("tasks", fmt.Sprintf("created task #%d", task.ID))
	c.notifier.Notify(MsgAdded, domain.ToastSuccess)
	return true
}

// Update merges patch over the local task and sends the result as a full
// replacement. An unknown id is a no-op failure. A patch that only flips
// completed gets no generic toast; see ToggleCompleted.
func (c *Controller) Update(ctx context.Context, id int, patch domain.TaskPatch) bool {
	c.mu.Lock()
	current := c.findLocked(id)
	var in domain.TaskInput
	if current != nil {
		in = patch.Apply(current.Input())
	}
	c.mu.Unlock()
	if current == nil {
		c.logger.Warn("tasks", fmt.Sprintf("update task #%d: %v", id, domain.ErrTaskNotFound))
		return false
	}

	updated, err := c.api.UpdateTask(ctx, id, in)
	if err != nil {
		c.fail(fmt.Sprintf("update task #%d", id), err, MsgUpdateFailed)
		return false
	}

	c.mu.Lock()
	for i, t := range c.tasks {
		if t.ID == id {
			c.tasks[i] = updated
			break
		}
	}
	domain.SortByDueDate(c.tasks)
	if !c.visibleLocked(updated) {
		delete(c.selected, id)
	}
	c.mu.Unlock()

	if !patch.OnlyCompleted() {
		c.notifier.Notify(MsgUpdated, domain.ToastSuccess)
	}
	return true
}

// ToggleCompleted flips the completed flag and reports the new status.
func (c *Controller) ToggleCompleted(ctx context.Context, id int) bool {
	t, ok := c.Task(id)
	if !ok {
		return false
	}
	return c.SetCompleted(ctx, id, !t.Completed)
}

// SetCompleted sets the completed flag and reports the new status with an
// info toast in place of the generic update toast.
func (c *Controller) SetCompleted(ctx context.Context, id int, done bool) bool {
	if !c.Update(ctx, id, domain.TaskPatch{Completed: &done}) {
		return false
	}
	if done {
		c.notifier.Notify(MsgMarkedCompleted, domain.ToastInfo)
	} else {
		c.notifier.Notify(MsgMarkedActive, domain.ToastInfo)
	}
	return true
}

// Delete removes the task on the server, then locally and from the selection.
func (c *Controller) Delete(ctx context.Context, id int) bool {
	if err := c.api.DeleteTask(ctx, id); err != nil {
		c.fail(fmt.Sprintf("delete task #%d", id), err, MsgDeleteFailed)
		return false
	}

	c.mu.Lock()
	c.removeLocked([]int{id})
	c.mu.Unlock()

	c.logger.Info("tasks", fmt.Sprintf("deleted task #%d", id))
	c.notifier.Notify(MsgRemoved, domain.ToastSuccess)
	return true
}

// BulkDeleteResult reports what happened to each requested id.
type BulkDeleteResult struct {
	Err     error
	Deleted []int
	Skipped []int // not attempted after the failure
	Failed  int   // 0 when every deletion succeeded
}

// OK reports whether every id was deleted.
func (r BulkDeleteResult) OK() bool {
	return r.Err == nil
}

// BulkDelete deletes ids one at a time, in order, each awaited before the next.
// The first failure stops the loop. Ids deleted before it are removed from the
// list, the failing id and the rest stay untouched. Only one toast is shown.
func (c *Controller) BulkDelete(ctx context.Context, ids []int) BulkDeleteResult {
	var res BulkDeleteResult
	if len(ids) == 0 {
		res.Err = domain.ErrNoTasksSelected
		c.notifier.Notify(MsgNoTasksSelected, domain.ToastWarning)
		return res
	}

	for i, id := range ids {
		if err := c.api.DeleteTask(ctx, id); err != nil {
			res.Err = err
			res.Failed = id
			res.Skipped = slices.Clone(ids[i+1:])
			break
		}
		res.Deleted = append(res.Deleted, id)
	}

	c.mu.Lock()
	c.removeLocked(res.Deleted)
	c.mu.Unlock()

	if res.Err != nil {
		c.fail(fmt.Sprintf("bulk delete stopped at task #%d after %d deleted", res.Failed, len(res.Deleted)), res.Err, MsgBulkDeleteFailed)
		return res
	}
	c.logger.Info("tasks", fmt.Sprintf("bulk deleted %d tasks", len(res.Deleted)))
	c.notifier.Notify(fmt.Sprintf(MsgBulkRemovedFmt, len(res.Deleted)), domain.ToastSuccess)
	return res
}

// DeleteSelected bulk-deletes the selection in list order.
func (c *Controller) DeleteSelected(ctx context.Context) BulkDeleteResult {
	return c.BulkDelete(ctx, c.Selected())
}

// IsSelected reports whether id is selected.
func (c *Controller) IsSelected(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.selected[id]
	return ok
}

// ToggleSelected flips the selection of a known task.
func (c *Controller) ToggleSelected(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
		return
	}
	if c.findLocked(id) != nil {
		c.selected[id] = struct{}{}
	}
}

// SelectAll selects every visible task, or clears the selection when all
// of them are already selected.
func (c *Controller) SelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	all := true
	var visible []int
	for _, t := range c.tasks {
		if !c.visibleLocked(t) {
			continue
		}
		visible = append(visible, t.ID)
		if _, ok := c.selected[t.ID]; !ok {
			all = false
		}
	}
	clear(c.selected)
	if all {
		return
	}
	for _, id := range visible {
		c.selected[id] = struct{}{}
	}
}

// ClearSelection empties the selection.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.selected)
}

// Selected returns the selected ids in list order.
func (c *Controller) Selected() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ids []int
	for _, t := range c.tasks {
		if _, ok := c.selected[t.ID]; ok {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *Controller) replace(tasks []*domain.Task, query string) {
	tasks = slices.Clone(tasks)
	domain.SortByDueDate(tasks)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = tasks
	c.query = query
	for id := range c.selected {
		if t := c.findLocked(id); t == nil || !c.visibleLocked(t) {
			delete(c.selected, id)
		}
	}
}

// fail logs err and shows msg unless the session expired.
func (c *Controller) fail(op string, err error, msg string) {
	if domain.IsSessionExpired(err) {
		c.logger.Warn("tasks", fmt.Sprintf("%s: session expired", op))
		return
	}
	c.logger.Error("tasks", fmt.Sprintf("%s: %v", op, err))
	c.notifier.Notify(msg, domain.ToastError)
}

func (c *Controller) findLocked(id int) *domain.Task {
	for _, t := range c.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (c *Controller) removeLocked(ids []int) {
	if len(ids) == 0 {
		return
	}
	c.tasks = slices.DeleteFunc(c.tasks, func(t *domain.Task) bool {
		return slices.Contains(ids, t.ID)
	})
	for _, id := range ids {
		delete(c.selected, id)
	}
}

func (c *Controller) visibleLocked(t *domain.Task) bool {
	return c.showCompleted || !t.Completed
}

func cloneTasks(tasks []*domain.Task, keep func(*domain.Task) bool) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep != nil && !keep(t) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out
}
