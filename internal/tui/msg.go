package tui

import "github.com/todolist/todo-client/internal/tasklist"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when a fetch or search finishes.
// The tasks themselves live in the controller.
type MsgTasksLoaded struct {
	OK bool
}

func (MsgTasksLoaded) sealed() {}

// MsgTaskCreated is sent when the add form was submitted.
type MsgTaskCreated struct {
	OK bool
}

func (MsgTaskCreated) sealed() {}

// MsgTaskUpdated is sent when an edit or completion toggle finishes.
type MsgTaskUpdated struct {
	TaskID int
	OK     bool
}

func (MsgTaskUpdated) sealed() {}

// MsgTaskDeleted is sent when a single delete finishes.
type MsgTaskDeleted struct {
	TaskID int
	OK     bool
}

func (MsgTaskDeleted) sealed() {}

// MsgBulkDeleted is sent when a bulk delete finishes.
type MsgBulkDeleted struct {
	Result tasklist.BulkDeleteResult
}

func (MsgBulkDeleted) sealed() {}

// MsgAuthDone is sent when a login or register attempt finishes.
type MsgAuthDone struct {
	Err error
}

func (MsgAuthDone) sealed() {}

// MsgTick is sent periodically so expired toasts disappear from the screen.
type MsgTick struct{}

func (MsgTick) sealed() {}
