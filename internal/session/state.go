// Package session tracks who is signed in.
//
// State changes only through Action values. Each action type implements
// apply, so adding an action without a transition does not compile.
package session

import "github.com/todolist/todo-client/internal/domain"

// Status is the lifecycle phase of the session.
type Status int

// Session statuses.
const (
	StatusInitializing Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Error messages shown after a failed sign-in.
const (
	LoginFailedMessage    = "Login failed: Invalid username or password"
	RegisterFailedMessage = "Registration failed: Email or username may already be in use"
)

// State is a snapshot of the session. The token is never part of it.
// Fields are ordered to minimize memory padding.
type State struct {
	User   *domain.User
	Error  string
	Status Status
}

// InitialState is the state before credentials have been read.
func InitialState() State {
	return State{Status: StatusInitializing}
}

// IsAuthenticated reports whether a user is signed in.
func (s State) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated
}

// Loading reports whether a sign-in is in flight or startup has not finished.
func (s State) Loading() bool {
	return s.Status == StatusInitializing
}

// Username returns the signed-in user's name, or "".
func (s State) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}

// Action is a session transition.
type Action interface {
	apply(State) State
}

// LoginStarted marks a sign-in as in flight.
type LoginStarted struct{}

// LoginSucceeded signs User in.
type LoginSucceeded struct {
	User domain.User
}

// LoginFailed records a sign-in failure.
type LoginFailed struct {
	Message string
}

// LoggedOut ends the session.
type LoggedOut struct{}

// ErrorReset clears the displayed error.
type ErrorReset struct{}

func (LoginStarted) apply(s State) State {
	return State{Status: StatusInitializing}
}

func (a LoginSucceeded) apply(State) State {
	user := a.User
	return State{Status: StatusAuthenticated, User: &user}
}

func (a LoginFailed) apply(State) State {
	return State{Status: StatusUnauthenticated, Error: a.Message}
}

func (LoggedOut) apply(State) State {
	return State{Status: StatusUnauthenticated}
}

func (ErrorReset) apply(s State) State {
	s.Error = ""
	return s
}

// Reduce returns the state after applying a.
func Reduce(s State, a Action) State {
	return a.apply(s)
}
