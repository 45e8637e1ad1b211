package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// WireLayout is how the server writes datetimes: ISO 8601 with no offset,
// microsecond precision, fractional part omitted when zero.
const WireLayout = "2006-01-02T15:04:05.999999"

// timestampLayouts are tried in order. Values without an offset are UTC,
// which is what the server stores.
var timestampLayouts = []string{
	time.RFC3339Nano,
	WireLayout,
	"2006-01-02 15:04:05.999999",
	DateLayout,
}

// ParseTimestamp parses a server datetime, with or without an offset.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// FormatTimestamp writes t in UTC using WireLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(WireLayout)
}

// Timestamp is a time.Time that reads and writes the server's datetime format.
// A JSON null or empty string is the zero time.
type Timestamp time.Time

// Time returns the underlying time.
func (ts Timestamp) Time() time.Time {
	return time.Time(ts)
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.Time().IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(FormatTimestamp(ts.Time()))
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimestamp, data)
	}
	if s == "" {
		*ts = Timestamp{}
		return nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = Timestamp(t)
	return nil
}

type taskAlias Task

// taskWire shadows the time fields of Task with their wire form.
type taskWire struct {
	*taskAlias
	CreatedAt Timestamp `json:"created_at"`
	DueDate   Timestamp `json:"due_date"`
}

// MarshalJSON writes times the way the server does.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskWire{
		taskAlias: (*taskAlias)(&t),
		CreatedAt: Timestamp(t.CreatedAt),
		DueDate:   Timestamp(t.DueDate),
	})
}

// UnmarshalJSON accepts offset-less server datetimes as well as RFC 3339.
func (t *Task) UnmarshalJSON(data []byte) error {
	w := taskWire{taskAlias: (*taskAlias)(t)}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.CreatedAt = w.CreatedAt.Time()
	t.DueDate = w.DueDate.Time()
	return nil
}

type taskInputAlias TaskInput

// MarshalJSON sends the due date in UTC with an explicit offset.
func (in TaskInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		taskInputAlias
		DueDate string `json:"due_date"`
	}{
		taskInputAlias: taskInputAlias(in),
		DueDate:        in.DueDate.UTC().Format(time.RFC3339),
	})
}
