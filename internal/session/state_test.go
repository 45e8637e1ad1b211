package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/todolist/todo-client/internal/domain"
)

func TestReduce(t *testing.T) {
	alice := &domain.User{Username: "alice"}

	tests := []struct {
		name   string
		from   State
		action Action
		want   State
	}{
		{
			name:   "start clears error",
			from:   State{Status: StatusUnauthenticated, Error: "old"},
			action: LoginStarted{},
			want:   State{Status: StatusInitializing},
		},
		{
			name:   "success signs in",
			from:   State{Status: StatusInitializing},
			action: LoginSucceeded{User: domain.User{Username: "alice"}},
			want:   State{Status: StatusAuthenticated, User: alice},
		},
		{
			name:   "failure records message",
			from:   State{Status: StatusInitializing},
			action: LoginFailed{Message: LoginFailedMessage},
			want:   State{Status: StatusUnauthenticated, Error: LoginFailedMessage},
		},
		{
			name:   "logout drops user",
			from:   State{Status: StatusAuthenticated, User: alice},
			action: LoggedOut{},
			want:   State{Status: StatusUnauthenticated},
		},
		{
			name:   "reset error keeps the rest",
			from:   State{Status: StatusUnauthenticated, Error: RegisterFailedMessage},
			action: ErrorReset{},
			want:   State{Status: StatusUnauthenticated},
		},
		{
			name:   "reset error while authenticated",
			from:   State{Status: StatusAuthenticated, User: alice},
			action: ErrorReset{},
			want:   State{Status: StatusAuthenticated, User: alice},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.from, tt.action))
		})
	}
}

func TestState_Derived(t *testing.T) {
	init := InitialState()
	assert.True(t, init.Loading())
	assert.False(t, init.IsAuthenticated())
	assert.Empty(t, init.Username())

	signedIn := Reduce(init, LoginSucceeded{User: domain.User{Username: "bob"}})
	assert.False(t, signedIn.Loading())
	assert.True(t, signedIn.IsAuthenticated())
	assert.Equal(t, "bob", signedIn.Username())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "initializing", StatusInitializing.String())
	assert.Equal(t, "authenticated", StatusAuthenticated.String())
	assert.Equal(t, "unauthenticated", StatusUnauthenticated.String())
	assert.Equal(t, "unknown", Status(42).String())
}
