package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	tests := []struct {
		want string
		mode Mode
	}{
		{mode: ModeLogin, want: "login"},
		{mode: ModeNormal, want: "normal"},
		{mode: ModeSearch, want: "search"},
		{mode: ModeAdd, want: "add"},
		{mode: ModeDetail, want: "detail"},
		{mode: ModeEdit, want: "edit"},
		{mode: ModeConfirm, want: "confirm"},
		{mode: ModeHelp, want: "help"},
		{mode: Mode(99), want: "unknown"},
		{mode: Mode(-1), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.String())
		})
	}
}

func TestMode_IsInputMode(t *testing.T) {
	tests := []struct {
		mode Mode
		want bool
	}{
		{mode: ModeLogin, want: true},
		{mode: ModeNormal, want: false},
		{mode: ModeSearch, want: true},
		{mode: ModeAdd, want: true},
		{mode: ModeDetail, want: false},
		{mode: ModeEdit, want: true},
		{mode: ModeConfirm, want: false},
		{mode: ModeHelp, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.IsInputMode())
		})
	}
}

func TestConfirmAction_String(t *testing.T) {
	assert.Equal(t, "", ConfirmNone.String())
	assert.Equal(t, "delete", ConfirmDelete.String())
	assert.Equal(t, "delete selected", ConfirmBulkDelete.String())
}
