package domain

import (
	"context"
	"time"
)

// CredentialStore persists the credential record outside the process.
type CredentialStore interface {
	// Load returns the stored record. A missing record yields the zero value.
	Load() (Credentials, error)

	// Save writes token and username together.
	Save(creds Credentials) error

	// Clear removes token and username together.
	Clear() error
}

// AuthAPI exchanges credentials with the backend.
type AuthAPI interface {
	// Login posts the form-encoded credentials to the token endpoint.
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)

	// Register creates a new account. It never signs the user in.
	Register(ctx context.Context, req RegisterRequest) (*RegisteredUser, error)
}

// TaskAPI performs task calls against the backend for the current session.
type TaskAPI interface {
	// ListTasks returns every task owned by the current user.
	ListTasks(ctx context.Context) ([]*Task, error)

	// GetTask returns a single task.
	GetTask(ctx context.Context, id int) (*Task, error)

	// SearchTasks returns tasks matching query. Matching is done by the server.
	SearchTasks(ctx context.Context, query string) ([]*Task, error)

	// CreateTask creates a task and returns it with server-assigned fields.
	CreateTask(ctx context.Context, in TaskInput) (*Task, error)

	// UpdateTask replaces the client-owned fields of a task.
	UpdateTask(ctx context.Context, id int, in TaskInput) (*Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id int) error
}

// Notifier raises user-visible notifications.
type Notifier interface {
	// Notify shows message with the default duration.
	Notify(message string, kind ToastKind)
}

// Logger provides diagnostic logging.
type Logger interface {
	// Debug logs a debug message.
	Debug(category, msg string)

	// Info logs an info message.
	Info(category, msg string)

	// Warn logs a warning message.
	Warn(category, msg string)

	// Error logs an error message.
	Error(category, msg string)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Debug(_, _ string) {}
func (NopLogger) Info(_, _ string)  {}
func (NopLogger) Warn(_, _ string)  {}
func (NopLogger) Error(_, _ string) {}

// ConfigLoader loads the effective configuration.
type ConfigLoader interface {
	// Load returns the merged configuration.
	Load() (*Config, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
