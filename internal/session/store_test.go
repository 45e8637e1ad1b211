package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todolist/todo-client/internal/domain"
	"github.com/todolist/todo-client/internal/infra/apiclient"
	"github.com/todolist/todo-client/internal/testutil"
)

func TestStore_RestoreWithCredentials(t *testing.T) {
	// Setup
	creds := &testutil.MockCredentialStore{Creds: domain.Credentials{Token: "tok", Username: "alice"}}
	store := NewStore(creds, nil)
	require.True(t, store.State().Loading())

	// Execute
	state := store.Restore()

	// Assert
	assert.Equal(t, StatusAuthenticated, state.Status)
	assert.Equal(t, "alice", state.Username())
	assert.Equal(t, state, store.State())
}

func TestStore_RestoreWithoutCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds *testutil.MockCredentialStore
	}{
		{"empty", &testutil.MockCredentialStore{}},
		{"token only", &testutil.MockCredentialStore{Creds: domain.Credentials{Token: "tok"}}},
		{"username only", &testutil.MockCredentialStore{Creds: domain.Credentials{Username: "alice"}}},
		{"unreadable", &testutil.MockCredentialStore{LoadErr: domain.ErrInvalidCredentials}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewStore(tt.creds, nil).Restore()
			assert.Equal(t, StatusUnauthenticated, state.Status)
			assert.Nil(t, state.User)
		})
	}
}

func TestStore_Logout(t *testing.T) {
	// Setup
	creds := &testutil.MockCredentialStore{Creds: domain.Credentials{Token: "tok", Username: "alice"}}
	logger := &testutil.MockLogger{}
	store := NewStore(creds, logger)
	store.Restore()

	// Execute
	store.Logout()

	// Assert
	assert.Equal(t, StatusUnauthenticated, store.State().Status)
	assert.False(t, creds.Creds.Valid())
	assert.Equal(t, 1, creds.Clears)
}

func TestStore_LogoutWhenClearFails(t *testing.T) {
	creds := &testutil.MockCredentialStore{ClearErr: errors.New("disk full")}
	logger := &testutil.MockLogger{}
	store := NewStore(creds, logger)
	store.Dispatch(LoginSucceeded{User: domain.User{Username: "alice"}})

	store.Logout()

	assert.Equal(t, StatusUnauthenticated, store.State().Status)
	assert.Contains(t, logger.Lines, "ERROR session: clear credentials: disk full")
}

func TestStore_ResetError(t *testing.T) {
	store := NewStore(&testutil.MockCredentialStore{}, nil)
	store.Dispatch(LoginFailed{Message: LoginFailedMessage})

	store.ResetError()

	assert.Equal(t, State{Status: StatusUnauthenticated}, store.State())
}

// A 401 on a task call ends the session exactly once through the API client.
func TestStore_UnauthorizedResponseLogsOut(t *testing.T) {
	// Setup
	api := testutil.NewFakeAPI()
	t.Cleanup(api.Close)
	api.AddUser("alice", "secret", "alice@example.com")

	creds := &testutil.MockCredentialStore{Creds: domain.Credentials{Token: api.IssueToken("alice"), Username: "alice"}}
	notifier := &testutil.MockNotifier{}
	store := NewStore(creds, nil)
	store.Restore()
	require.True(t, store.State().IsAuthenticated())

	client, err := apiclient.New(api.URL(), creds,
		apiclient.WithUnauthorizedHandler(store.Logout),
		apiclient.WithNotifier(notifier),
	)
	require.NoError(t, err)
	api.ExpireTokens()

	// Execute
	_, err = client.ListTasks(context.Background())

	// Assert
	require.Error(t, err)
	assert.True(t, domain.IsSessionExpired(err))
	assert.Equal(t, StatusUnauthenticated, store.State().Status)
	assert.False(t, creds.Creds.Valid())
	assert.Equal(t, []string{apiclient.SessionExpiredMessage}, notifier.Messages())
	assert.Equal(t, 1, notifier.Count(domain.ToastWarning))
}

func newServerAuth(t *testing.T, url string, creds domain.CredentialStore) domain.AuthAPI {
	t.Helper()
	client, err := apiclient.New(url, creds)
	require.NoError(t, err)
	return client
}
