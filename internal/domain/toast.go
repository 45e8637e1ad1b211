package domain

import "time"

// ToastKind is the severity of a notification.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
	ToastWarning ToastKind = "warning"
)

// DefaultToastDuration is how long a toast stays visible when no duration is given.
const DefaultToastDuration = 5 * time.Second

// Toast is a transient user notification.
// A zero Duration means the toast stays until dismissed.
type Toast struct {
	ID       string
	Message  string
	Kind     ToastKind
	Duration time.Duration
}

// Persistent reports whether the toast never expires on its own.
func (t Toast) Persistent() bool {
	return t.Duration <= 0
}
