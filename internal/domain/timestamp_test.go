package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		want time.Time
		in   string
	}{
		{in: "2025-05-02T00:00:00", want: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
		{in: "2025-05-02T10:00:00.123456", want: time.Date(2025, 5, 2, 10, 0, 0, 123456000, time.UTC)},
		{in: "2025-05-02 10:00:00", want: time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)},
		{in: "2025-05-02", want: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
		{in: "2025-05-02T00:00:00Z", want: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
		{in: "2025-05-02T02:00:00+02:00", want: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	_, err := ParseTimestamp("next tuesday")
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestTask_UnmarshalServerJSON(t *testing.T) {
	data := `{"id":3,"title":"Pay rent","description":"","completed":true,` +
		`"due_date":"2025-05-02T00:00:00","priority":"low","owner_id":9,` +
		`"created_at":"2025-04-30T10:15:42.5"}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(data), &task))

	assert.Equal(t, 3, task.ID)
	assert.Equal(t, 9, task.OwnerID)
	assert.Equal(t, "Pay rent", task.Title)
	assert.True(t, task.Completed)
	assert.Equal(t, PriorityLow, task.Priority)
	assert.Equal(t, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), task.DueDate)
	assert.Equal(t, time.Date(2025, 4, 30, 10, 15, 42, 500000000, time.UTC), task.CreatedAt)
}

func TestTask_UnmarshalNullDueDate(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"due_date":null,"created_at":""}`), &task))
	assert.True(t, task.DueDate.IsZero())
	assert.True(t, task.CreatedAt.IsZero())
}

func TestTask_UnmarshalBadDueDate(t *testing.T) {
	var task Task
	err := json.Unmarshal([]byte(`{"id":1,"due_date":"soon"}`), &task)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestTask_MarshalWritesServerFormat(t *testing.T) {
	local := time.FixedZone("UTC+2", 2*60*60)
	task := Task{
		ID:        1,
		Title:     "Pay rent",
		DueDate:   time.Date(2025, 5, 2, 2, 0, 0, 0, local),
		CreatedAt: time.Date(2025, 4, 30, 10, 15, 42, 0, time.UTC),
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2025-05-02T00:00:00", raw["due_date"])
	assert.Equal(t, "2025-04-30T10:15:42", raw["created_at"])
	assert.Equal(t, "Pay rent", raw["title"])

	var back Task
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, task.DueDate.Equal(back.DueDate))
	assert.Equal(t, task.ID, back.ID)
}

func TestTaskInput_MarshalSendsUTC(t *testing.T) {
	local := time.FixedZone("UTC-5", -5*60*60)
	in := TaskInput{Title: "x", DueDate: time.Date(2025, 5, 2, 0, 0, 0, 0, local), Priority: PriorityNormal}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2025-05-02T05:00:00Z", raw["due_date"])
	assert.Equal(t, "normal", raw["priority"])
	assert.Equal(t, false, raw["completed"])
}
