package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/todolist/todo-client/internal/cli"
	"github.com/todolist/todo-client/internal/domain"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		err        error
		name       string
		wantStderr string
		want       int
	}{
		{
			name: "success",
			err:  nil,
			want: 0,
		},
		{
			name:       "plain error is printed",
			err:        domain.ErrNotAuthenticated,
			want:       1,
			wantStderr: "Error: not logged in (run 'todo login' first)\n",
		},
		{
			name: "reported error is silent",
			err:  cli.ErrReported,
			want: 1,
		},
		{
			name: "wrapped reported error is silent",
			err:  fmt.Errorf("add: %w", cli.ErrReported),
			want: 1,
		},
		{
			name: "joined with reported error is silent",
			err:  errors.Join(cli.ErrReported, errors.New("close log: disk full")),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			got := exitCode(tt.err, &stderr)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStderr, stderr.String())
		})
	}
}
