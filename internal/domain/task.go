// Package domain contains core business entities and interfaces.
package domain

import (
	"slices"
	"strings"
	"time"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// AllPriorities returns all valid priority values in ascending order.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityNormal, PriorityHigh}
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// Label returns the capitalized display name ("Low", "Normal", "High").
func (p Priority) Label() string {
	if p == "" {
		return "Normal"
	}
	s := string(p)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParsePriority converts user input into a Priority.
// An empty string yields PriorityNormal.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityNormal, nil
	}
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// Task is a task owned by the signed-in user, as returned by the server.
// ID, CreatedAt and OwnerID are assigned by the server and never sent back.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt   time.Time `json:"created_at"`
	DueDate     time.Time `json:"due_date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	ID          int       `json:"id"`
	OwnerID     int       `json:"owner_id"`
	Completed   bool      `json:"completed"`
}

// TaskInput is the request body for create and update calls.
// It carries only client-owned fields.
type TaskInput struct {
	DueDate     time.Time `json:"due_date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
}

// Input returns the client-owned fields of the task.
func (t *Task) Input() TaskInput {
	return TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
	}
}

// StatusText returns "Completed" or "Active".
func (t *Task) StatusText() string {
	if t.Completed {
		return "Completed"
	}
	return "Active"
}

// TaskDraft is a task that has not been submitted yet.
type TaskDraft struct {
	DueDate     time.Time
	Title       string
	Description string
	Priority    Priority
}

// NewTaskDraft returns a draft with the form defaults: normal priority, due today.
func NewTaskDraft(now time.Time) TaskDraft {
	return TaskDraft{
		Priority: PriorityNormal,
		DueDate:  StartOfDay(now),
	}
}

// Validate checks the draft against the rules enforced before submission.
// The due date is compared by calendar date only.
func (d TaskDraft) Validate(now time.Time) error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if IsBeforeToday(d.DueDate, now) {
		return ErrDueDateInPast
	}
	if d.Priority != "" && !d.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

// Input converts the draft into a request body.
func (d TaskDraft) Input() TaskInput {
	p := d.Priority
	if p == "" {
		p = PriorityNormal
	}
	return TaskInput{
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Priority:    p,
	}
}

// TaskPatch holds a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
	Priority    *Priority
}

// IsEmpty reports whether the patch touches no field.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.DueDate == nil && p.Priority == nil
}

// OnlyCompleted reports whether the patch touches the completed flag and nothing else.
func (p TaskPatch) OnlyCompleted() bool {
	return p.Completed != nil && p.Title == nil && p.Description == nil &&
		p.DueDate == nil && p.Priority == nil
}

// Apply merges the patch over the input and returns the result.
func (p TaskPatch) Apply(in TaskInput) TaskInput {
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if p.Completed != nil {
		in.Completed = *p.Completed
	}
	if p.DueDate != nil {
		in.DueDate = *p.DueDate
	}
	if p.Priority != nil {
		in.Priority = *p.Priority
	}
	return in
}

// SortByDueDate sorts tasks by due date ascending.
// Tasks with equal due dates keep their relative order.
func SortByDueDate(tasks []*Task) {
	slices.SortStableFunc(tasks, func(a, b *Task) int {
		return a.DueDate.Compare(b.DueDate)
	})
}

// IsSortedByDueDate reports whether tasks are in due date order.
func IsSortedByDueDate(tasks []*Task) bool {
	return slices.IsSortedFunc(tasks, func(a, b *Task) int {
		return a.DueDate.Compare(b.DueDate)
	})
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsBeforeToday reports whether the calendar date of t is earlier than the
// calendar date of now. Time of day is ignored; t is compared in now's location.
func IsBeforeToday(t, now time.Time) bool {
	return StartOfDay(t.In(now.Location())).Before(StartOfDay(now))
}

// DateLayout is the date-only format used for input and display.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Validate checks an edit against current. The due date is only checked
// when it actually changes, so an overdue task can still be edited.
func (p TaskPatch) Validate(current TaskInput, now time.Time) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrEmptyTitle
	}
	if p.DueDate != nil && !StartOfDay(*p.DueDate).Equal(StartOfDay(current.DueDate.In(p.DueDate.Location()))) &&
		IsBeforeToday(*p.DueDate, now) {
		return ErrDueDateInPast
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}
