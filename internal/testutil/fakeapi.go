package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/todolist/todo-client/internal/domain"
)

// RecordedRequest is a request seen by FakeAPI.
// Fields are ordered to minimize memory padding.
type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	Body          string
}

type fakeUser struct {
	email    string
	password string
	id       int
}

type failure struct {
	method string
	path   string
	status int
}

// FakeAPI is an in-memory backend serving the /api/v1 routes over httptest.
// Fields are ordered to minimize memory padding.
type FakeAPI struct {
	Server   *httptest.Server
	users    map[string]*fakeUser
	tokens   map[string]string // token -> username
	tasks    map[int]*domain.Task
	requests []RecordedRequest
	failures []failure
	now      time.Time
	mu       sync.Mutex
	nextUser int
	nextTask int
	nextTok  int
}

// NewFakeAPI starts a fake backend. Close it with Close.
func NewFakeAPI() *FakeAPI {
	f := &FakeAPI{
		users:    make(map[string]*fakeUser),
		tokens:   make(map[string]string),
		tasks:    make(map[int]*domain.Task),
		now:      time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		nextUser: 1,
		nextTask: 1,
		nextTok:  1,
	}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Use(f.injectFailures)
	r.Route(domain.APIPathPrefix, func(r chi.Router) {
		r.Post("/auth/token", f.handleToken)
		r.Post("/auth/register", f.handleRegister)
		r.Group(func(r chi.Router) {
			r.Use(f.requireAuth)
			r.Get("/tasks", f.handleList)
			r.Post("/tasks", f.handleCreate)
			r.Get("/tasks/search/", f.handleSearch)
			r.Get("/tasks/{id}", f.handleGet)
			r.Put("/tasks/{id}", f.handleUpdate)
			r.Delete("/tasks/{id}", f.handleDelete)
		})
	})

	f.Server = httptest.NewServer(r)
	return f
}

// URL returns the origin of the fake server (without the /api/v1 prefix).
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// Close shuts the server down.
func (f *FakeAPI) Close() {
	f.Server.Close()
}

// AddUser registers a user directly.
func (f *FakeAPI) AddUser(username, password, email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = &fakeUser{id: f.nextUser, password: password, email: email}
	f.nextUser++
}

// IssueToken creates a valid token for username and returns it.
func (f *FakeAPI) IssueToken(username string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issueTokenLocked(username)
}

func (f *FakeAPI) issueTokenLocked(username string) string {
	tok := fmt.Sprintf("tok-%s-%d", username, f.nextTok)
	f.nextTok++
	f.tokens[tok] = username
	return tok
}

// SetToken registers a fixed token value for username.
func (f *FakeAPI) SetToken(token, username string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = username
}

// ExpireTokens invalidates every issued token.
func (f *FakeAPI) ExpireTokens() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = make(map[string]string)
}

// AddTask stores a task owned by username and returns a copy.
func (f *FakeAPI) AddTask(username string, task domain.Task) domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	task.ID = f.nextTask
	f.nextTask++
	if u, ok := f.users[username]; ok {
		task.OwnerID = u.id
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = f.now
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityNormal
	}
	t := task
	f.tasks[t.ID] = &t
	return t
}

// Task returns a copy of the stored task.
func (f *FakeAPI) Task(id int) (domain.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return domain.Task{}, false
	}
	return *t, true
}

// FailNext makes the next request matching method and path prefix answer status.
func (f *FakeAPI) FailNext(method, pathPrefix string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, failure{method: method, path: pathPrefix, status: status})
}

// Requests returns the recorded requests.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// LastRequest returns the most recent request.
func (f *FakeAPI) LastRequest() RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return RecordedRequest{}
	}
	return f.requests[len(f.requests)-1]
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:        r.Method,
			Path:          strings.TrimPrefix(r.URL.Path, domain.APIPathPrefix),
			RawQuery:      r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          string(body),
		})
		f.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, domain.APIPathPrefix)
		f.mu.Lock()
		for i, fl := range f.failures {
			if fl.method == r.Method && strings.HasPrefix(path, fl.path) {
				f.failures = append(f.failures[:i], f.failures[i+1:]...)
				f.mu.Unlock()
				writeDetail(w, fl.status, "injected failure")
				return
			}
		}
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

type ctxUserKey struct{}

func (f *FakeAPI) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		f.mu.Lock()
		username, ok := f.tokens[token]
		f.mu.Unlock()
		if token == "" || !ok {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		r.Header.Set("X-Fake-User", username)
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid form")
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok || u.password != password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	writeJSON(w, http.StatusOK, domain.TokenResponse{
		AccessToken: f.issueTokenLocked(username),
		TokenType:   "bearer",
	})
}

func (f *FakeAPI) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for name, u := range f.users {
		if name == req.Username || u.email == req.Email {
			writeDetail(w, http.StatusBadRequest, "Username or email already registered")
			return
		}
	}
	u := &fakeUser{id: f.nextUser, password: req.Password, email: req.Email}
	f.nextUser++
	f.users[req.Username] = u
	writeJSON(w, http.StatusOK, domain.RegisteredUser{
		ID:       u.id,
		Email:    req.Email,
		Username: req.Username,
		IsActive: true,
		Role:     "user",
	})
}

func (f *FakeAPI) ownerID(r *http.Request) int {
	if u, ok := f.users[r.Header.Get("X-Fake-User")]; ok {
		return u.id
	}
	return 0
}

func (f *FakeAPI) ownedTasks(owner int, match func(*domain.Task) bool) []*domain.Task {
	out := []*domain.Task{}
	for id := 1; id < f.nextTask; id++ {
		t, ok := f.tasks[id]
		if !ok || t.OwnerID != owner {
			continue
		}
		if match == nil || match(t) {
			c := *t
			out = append(out, &c)
		}
	}
	return out
}

func (f *FakeAPI) handleList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.ownedTasks(f.ownerID(r), nil))
}

func (f *FakeAPI) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("query"))
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.ownedTasks(f.ownerID(r), func(t *domain.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q)
	}))
}

func (f *FakeAPI) lookup(w http.ResponseWriter, r *http.Request) (*domain.Task, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid id")
		return nil, false
	}
	t, ok := f.tasks[id]
	if !ok || t.OwnerID != f.ownerID(r) {
		writeDetail(w, http.StatusNotFound, "Task not found")
		return nil, false
	}
	return t, true
}

func (f *FakeAPI) handleGet(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, t)
	}
}

func (f *FakeAPI) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	t := &domain.Task{
		ID:          f.nextTask,
		OwnerID:     f.ownerID(r),
		CreatedAt:   f.now,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		DueDate:     in.DueDate.UTC(),
		Priority:    in.Priority,
	}
	f.nextTask++
	f.tasks[t.ID] = t
	writeJSON(w, http.StatusOK, t)
}

func (f *FakeAPI) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in domain.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.lookup(w, r)
	if !ok {
		return
	}
	t.Title = in.Title
	t.Description = in.Description
	t.Completed = in.Completed
	t.DueDate = in.DueDate.UTC()
	t.Priority = in.Priority
	writeJSON(w, http.StatusOK, t)
}

func (f *FakeAPI) handleDelete(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.lookup(w, r)
	if !ok {
		return
	}
	delete(f.tasks, t.ID)
	w.WriteHeader(http.StatusNoContent)
}

// writeJSON encodes tasks through domain.Task's MarshalJSON, so datetimes go
// out without an offset the way the real server writes them.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
