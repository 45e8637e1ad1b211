package tui

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestEscapeNewlines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no newlines", input: "Buy milk", want: "Buy milk"},
		{name: "unix", input: "line1\nline2", want: "line1 line2"},
		{name: "windows", input: "line1\r\nline2", want: "line1 line2"},
		{name: "carriage return", input: "line1\rline2", want: "line1 line2"},
		{name: "trailing", input: "done\n", want: "done "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeNewlines(tt.input))
		})
	}
}

func TestFitWidth(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		width     int
		wantWidth int
		truncated bool
	}{
		{name: "fits", input: "short", width: 20, wantWidth: 5},
		{name: "exact", input: "0123456789", width: 10, wantWidth: 10},
		{name: "truncated", input: "a rather long task title", width: 12, wantWidth: 12, truncated: true},
		{name: "minimum width", input: "a rather long task title", width: 3, wantWidth: 10, truncated: true},
		{name: "wide runes", input: "日本語のタスクのタイトル", width: 11, wantWidth: 11, truncated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fitWidth(tt.input, tt.width)
			assert.LessOrEqual(t, runewidth.StringWidth(got), tt.wantWidth)
			if tt.truncated {
				assert.Contains(t, got, "...")
			} else {
				assert.Equal(t, tt.input, got)
			}
		})
	}
}
