package session

import (
	"fmt"
	"sync"

	"github.com/todolist/todo-client/internal/domain"
)

// Store owns the process-wide session state.
// Fields are ordered to minimize memory padding.
type Store struct {
	creds  domain.CredentialStore
	logger domain.Logger
	state  State
	mu     sync.RWMutex
}

// NewStore creates a Store in the Initializing state.
func NewStore(creds domain.CredentialStore, logger domain.Logger) *Store {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Store{
		creds:  creds,
		logger: logger,
		state:  InitialState(),
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a and returns the resulting state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return s.state
}

// Restore reads the durable record once at startup.
// A present token is trusted without asking the server; the first 401 ends it.
func (s *Store) Restore() State {
	creds, err := s.creds.Load()
	if err != nil {
		s.logger.Warn("session", fmt.Sprintf("load credentials: %v", err))
		return s.Dispatch(LoggedOut{})
	}
	if !creds.Valid() {
		return s.Dispatch(LoggedOut{})
	}
	s.logger.Debug("session", "restored session for "+creds.Username)
	return s.Dispatch(LoginSucceeded{User: domain.User{Username: creds.Username}})
}

// Logout clears the durable record and ends the session unconditionally.
// It is also the handler the API client calls after a 401.
func (s *Store) Logout() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Error("session", fmt.Sprintf("clear credentials: %v", err))
	}
	s.Dispatch(LoggedOut{})
	s.logger.Info("session", "logged out")
}

// ResetError clears the error without touching anything else.
func (s *Store) ResetError() {
	s.Dispatch(ErrorReset{})
}
