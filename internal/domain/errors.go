package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrEmptyTitle         = errors.New("title is required")
	ErrDueDateInPast      = errors.New("due date cannot be in the past")
	ErrInvalidPriority    = errors.New("invalid priority (want low, normal or high)")
	ErrInvalidDate        = errors.New("invalid date (want YYYY-MM-DD)")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrEmptyCredentials   = errors.New("username and password are required")
	ErrEmptyEmail         = errors.New("email is required")
	ErrNotAuthenticated   = errors.New("not logged in (run 'todo login' first)")
	ErrNoAPIURL           = errors.New("api base url is not configured (set TODO_API_URL or [api] base_url)")
	ErrSessionExpired     = errors.New("session expired")
	ErrNoTasksInFile      = errors.New("no tasks found in file")
	ErrNoTasksSelected    = errors.New("no tasks selected")
	ErrInvalidCredentials = errors.New("credential file is corrupted")
	ErrConfigExists       = errors.New("config file already exists")
	ErrNoConfigDir        = errors.New("cannot determine config directory")
)

// UnauthorizedError is implemented by errors that carry a 401 response.
type UnauthorizedError interface {
	error
	Unauthorized() bool
}

// IsSessionExpired reports whether err was caused by a 401 response.
// Those errors are already surfaced by the HTTP layer, so call sites
// suppress their own failure notification for them.
func IsSessionExpired(err error) bool {
	if errors.Is(err, ErrSessionExpired) {
		return true
	}
	var ue UnauthorizedError
	return errors.As(err, &ue) && ue.Unauthorized()
}
