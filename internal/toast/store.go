// Package toast holds the ordered list of transient user notifications.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/todolist/todo-client/internal/domain"
)

// Ensure Store implements domain.Notifier.
var _ domain.Notifier = (*Store)(nil)

// Scheduler runs fn once after d. It matches time.AfterFunc.
type Scheduler func(d time.Duration, fn func())

// Store keeps toasts in insertion order.
// Expiry timers run on their own goroutines, so the list is guarded by mu.
// Fields are ordered to minimize memory padding.
type Store struct {
	schedule        Scheduler
	newID           func() string
	toasts          []domain.Toast
	defaultDuration time.Duration
	mu              sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithScheduler replaces the timer used for auto-expiry.
func WithScheduler(s Scheduler) Option {
	return func(st *Store) {
		st.schedule = s
	}
}

// WithDefaultDuration sets the lifetime used by Notify.
func WithDefaultDuration(d time.Duration) Option {
	return func(st *Store) {
		st.defaultDuration = d
	}
}

// WithIDGenerator replaces the id generator.
func WithIDGenerator(fn func() string) Option {
	return func(st *Store) {
		st.newID = fn
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		defaultDuration: domain.DefaultToastDuration,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
		newID: func() string {
			return "toast-" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a toast and returns its id.
// A positive duration schedules removal measured from now; zero keeps it until Remove.
func (s *Store) Add(message string, kind domain.ToastKind, duration time.Duration) string {
	t := domain.Toast{
		ID:       s.newID(),
		Message:  message,
		Kind:     kind,
		Duration: duration,
	}

	s.mu.Lock()
	s.toasts = append(s.toasts, t)
	s.mu.Unlock()

	if !t.Persistent() {
		s.schedule(duration, func() { s.Remove(t.ID) })
	}
	return t.ID
}

// Notify adds a toast with the default duration.
func (s *Store) Notify(message string, kind domain.ToastKind) {
	s.Add(message, kind, s.defaultDuration)
}

// Remove drops the toast with id. Unknown ids are ignored, which covers a
// timer firing after the user already dismissed the toast.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// List returns a snapshot of the current toasts, oldest first.
func (s *Store) List() []domain.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// Latest returns the most recent toast.
func (s *Store) Latest() (domain.Toast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.toasts) == 0 {
		return domain.Toast{}, false
	}
	return s.toasts[len(s.toasts)-1], true
}

// Len returns the number of visible toasts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.toasts)
}
