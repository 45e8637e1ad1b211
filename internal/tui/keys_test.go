package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_HelpIsComplete(t *testing.T) {
	k := DefaultKeyMap()

	seen := map[string]bool{}
	for _, group := range k.FullHelp() {
		for _, b := range group {
			h := b.Help()
			assert.NotEmpty(t, h.Key)
			assert.NotEmpty(t, h.Desc)
			assert.False(t, seen[h.Key], "duplicate help key %q", h.Key)
			seen[h.Key] = true
		}
	}
}

func TestDefaultKeyMap_Matches(t *testing.T) {
	k := DefaultKeyMap()

	assert.True(t, key.Matches(keyMsg("ctrl+c"), k.Quit))
	assert.True(t, key.Matches(keyMsg("Y"), k.Confirm))
	assert.True(t, key.Matches(keyMsg(" "), k.Select))
	assert.False(t, key.Matches(keyMsg("Q"), k.Quit))
}
