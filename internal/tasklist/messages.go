package tasklist

import (
	"errors"

	"github.com/todolist/todo-client/internal/domain"
)

// Notification texts.
const (
	MsgLoadFailed         = "Failed to load tasks. Please try again."
	MsgSearchFailed       = "Failed to search tasks. Please try again."
	MsgAdded              = "Task added successfully!"
	MsgAddFailed          = "Failed to add task. Please try again."
	MsgUpdated            = "Task updated successfully!"
	MsgUpdateFailed       = "Failed to update task. Please try again."
	MsgRemoved            = "Task removed successfully!"
	MsgDeleteFailed       = "Failed to delete task. Please try again."
	MsgBulkRemovedFmt     = "%d tasks removed successfully!"
	MsgBulkDeleteFailed   = "Failed to delete tasks. Please try again."
	MsgTitleRequired      = "Title is required"
	MsgDueDateInPast      = "Due date cannot be in the past"
	MsgInvalidPriority    = "Priority must be low, normal or high"
	MsgMarkedCompleted    = "Task marked as completed"
	MsgMarkedActive       = "Task marked as active"
	MsgNoTasksSelected    = "No tasks selected"
	MsgFillInAllFields    = "Please fill in all fields"
	MsgNothingToUpdate    = "No changes to save"
	msgValidationFallback = "Invalid task"
)

// ValidationMessage returns the warning shown for a validation error.
func ValidationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyTitle):
		return MsgTitleRequired
	case errors.Is(err, domain.ErrDueDateInPast):
		return MsgDueDateInPast
	case errors.Is(err, domain.ErrInvalidPriority):
		return MsgInvalidPriority
	case errors.Is(err, domain.ErrInvalidDate):
		return domain.ErrInvalidDate.Error()
	case errors.Is(err, domain.ErrEmptyCredentials), errors.Is(err, domain.ErrEmptyEmail):
		return MsgFillInAllFields
	}
	return msgValidationFallback
}
