// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/todolist/todo-client/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockCredentialStore is an in-memory domain.CredentialStore.
// Fields are ordered to minimize memory padding.
type MockCredentialStore struct {
	LoadErr  error
	SaveErr  error
	ClearErr error
	Creds    domain.Credentials
	Saves    int
	Clears   int
}

// Load returns the stored credentials.
func (m *MockCredentialStore) Load() (domain.Credentials, error) {
	if m.LoadErr != nil {
		return domain.Credentials{}, m.LoadErr
	}
	return m.Creds, nil
}

// Save stores the credentials.
func (m *MockCredentialStore) Save(creds domain.Credentials) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Creds = creds
	m.Saves++
	return nil
}

// Clear removes the credentials.
func (m *MockCredentialStore) Clear() error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Creds = domain.Credentials{}
	m.Clears++
	return nil
}

// MockNotifier records notifications.
type MockNotifier struct {
	Toasts []domain.Toast
}

// Notify records a notification.
func (m *MockNotifier) Notify(message string, kind domain.ToastKind) {
	m.Toasts = append(m.Toasts, domain.Toast{
		ID:       fmt.Sprintf("mock-%d", len(m.Toasts)+1),
		Message:  message,
		Kind:     kind,
		Duration: domain.DefaultToastDuration,
	})
}

// Messages returns the recorded messages in order.
func (m *MockNotifier) Messages() []string {
	out := make([]string, 0, len(m.Toasts))
	for _, t := range m.Toasts {
		out = append(out, t.Message)
	}
	return out
}

// Count returns the number of notifications of kind.
func (m *MockNotifier) Count(kind domain.ToastKind) int {
	n := 0
	for _, t := range m.Toasts {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

// Reset clears recorded notifications.
func (m *MockNotifier) Reset() {
	m.Toasts = nil
}

// MockAuthAPI is a test double for domain.AuthAPI.
// Fields are ordered to minimize memory padding.
type MockAuthAPI struct {
	LoginErr      error
	RegisterErr   error
	Token         string
	LoginCalls    []domain.LoginRequest
	RegisterCalls []domain.RegisterRequest
}

// Login returns Token or LoginErr.
func (m *MockAuthAPI) Login(_ context.Context, req domain.LoginRequest) (*domain.TokenResponse, error) {
	m.LoginCalls = append(m.LoginCalls, req)
	if m.LoginErr != nil {
		return nil, m.LoginErr
	}
	return &domain.TokenResponse{AccessToken: m.Token, TokenType: "bearer"}, nil
}

// Register returns the created user or RegisterErr.
func (m *MockAuthAPI) Register(_ context.Context, req domain.RegisterRequest) (*domain.RegisteredUser, error) {
	m.RegisterCalls = append(m.RegisterCalls, req)
	if m.RegisterErr != nil {
		return nil, m.RegisterErr
	}
	return &domain.RegisteredUser{ID: len(m.RegisterCalls), Username: req.Username, Email: req.Email, IsActive: true, Role: "user"}, nil
}

// MockTaskAPI is an in-memory domain.TaskAPI.
// Every call is appended to Calls ("list", "get:1", "search:q", "create",
// "update:1", "delete:1").
// Fields are ordered to minimize memory padding.
type MockTaskAPI struct {
	Tasks      map[int]*domain.Task
	DeleteErrs map[int]error
	ListErr    error
	GetErr     error
	SearchErr  error
	CreateErr  error
	UpdateErr  error
	Updates    map[int]domain.TaskInput
	Calls      []string
	NextIDN    int
	OwnerID    int
	Now        time.Time
}

// NewMockTaskAPI creates an empty MockTaskAPI.
func NewMockTaskAPI() *MockTaskAPI {
	return &MockTaskAPI{
		Tasks:      make(map[int]*domain.Task),
		DeleteErrs: make(map[int]error),
		Updates:    make(map[int]domain.TaskInput),
		NextIDN:    1,
		OwnerID:    1,
		Now:        time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

// Add stores a copy of task and returns it.
func (m *MockTaskAPI) Add(task domain.Task) *domain.Task {
	if task.ID == 0 {
		task.ID = m.NextIDN
	}
	if task.ID >= m.NextIDN {
		m.NextIDN = task.ID + 1
	}
	if task.OwnerID == 0 {
		task.OwnerID = m.OwnerID
	}
	t := task
	m.Tasks[t.ID] = &t
	return &t
}

// CallsTo returns how many calls started with prefix.
func (m *MockTaskAPI) CallsTo(prefix string) int {
	n := 0
	for _, c := range m.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (m *MockTaskAPI) snapshot() []*domain.Task {
	out := make([]*domain.Task, 0, len(m.Tasks))
	for id := 1; id < m.NextIDN; id++ {
		if t, ok := m.Tasks[id]; ok {
			c := *t
			out = append(out, &c)
		}
	}
	return out
}

// ListTasks returns all tasks in id order.
func (m *MockTaskAPI) ListTasks(_ context.Context) ([]*domain.Task, error) {
	m.Calls = append(m.Calls, "list")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.snapshot(), nil
}

// GetTask returns one task.
func (m *MockTaskAPI) GetTask(_ context.Context, id int) (*domain.Task, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("get:%d", id))
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	t, ok := m.Tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	c := *t
	return &c, nil
}

// SearchTasks matches query against title and description, case-insensitively.
func (m *MockTaskAPI) SearchTasks(_ context.Context, query string) ([]*domain.Task, error) {
	m.Calls = append(m.Calls, "search:"+query)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	q := strings.ToLower(query)
	var out []*domain.Task
	for _, t := range m.snapshot() {
		if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out, nil
}

// CreateTask stores a new task.
func (m *MockTaskAPI) CreateTask(_ context.Context, in domain.TaskInput) (*domain.Task, error) {
	m.Calls = append(m.Calls, "create")
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	t := m.Add(domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		CreatedAt:   m.Now,
	})
	c := *t
	return &c, nil
}

// UpdateTask replaces the client-owned fields of a task.
func (m *MockTaskAPI) UpdateTask(_ context.Context, id int, in domain.TaskInput) (*domain.Task, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("update:%d", id))
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	t, ok := m.Tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	m.Updates[id] = in
	t.Title = in.Title
	t.Description = in.Description
	t.Completed = in.Completed
	t.DueDate = in.DueDate
	t.Priority = in.Priority
	c := *t
	return &c, nil
}

// DeleteTask removes a task unless DeleteErrs has an entry for it.
func (m *MockTaskAPI) DeleteTask(_ context.Context, id int) error {
	m.Calls = append(m.Calls, fmt.Sprintf("delete:%d", id))
	if err := m.DeleteErrs[id]; err != nil {
		return err
	}
	delete(m.Tasks, id)
	return nil
}

// MockLogger records log lines as "LEVEL category: msg".
type MockLogger struct {
	Lines []string
}

func (m *MockLogger) Debug(category, msg string) { m.add("DEBUG", category, msg) }
func (m *MockLogger) Info(category, msg string)  { m.add("INFO", category, msg) }
func (m *MockLogger) Warn(category, msg string)  { m.add("WARN", category, msg) }
func (m *MockLogger) Error(category, msg string) { m.add("ERROR", category, msg) }

func (m *MockLogger) add(level, category, msg string) {
	m.Lines = append(m.Lines, level+" "+category+": "+msg)
}

// Ensure mocks implement their ports.
var (
	_ domain.Clock           = (*MockClock)(nil)
	_ domain.CredentialStore = (*MockCredentialStore)(nil)
	_ domain.Notifier        = (*MockNotifier)(nil)
	_ domain.AuthAPI         = (*MockAuthAPI)(nil)
	_ domain.TaskAPI         = (*MockTaskAPI)(nil)
	_ domain.Logger          = (*MockLogger)(nil)
)

// StatusError is an HTTP-status error for mocks.
// A 401 is classified as session expiry by domain.IsSessionExpired.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("mock http error %d", e.Code)
}

// Unauthorized reports whether the status is 401.
func (e StatusError) Unauthorized() bool {
	return e.Code == 401
}
