package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// StatusLineInfo contains information for rendering the status line.
// Fields are ordered to minimize memory padding.
type StatusLineInfo struct {
	Pagination string // e.g. "•○○", empty when the list fits on one page
	User       string // signed-in username, empty on the login form
	KeyHints   []KeyHint
	Mode       Mode
	Busy       bool // a request is in flight
}

// KeyHint represents a key and its description.
type KeyHint struct {
	Key  string
	Desc string
}

// hintsFrom builds hints from bindings so the footer matches the key map.
func hintsFrom(bindings ...key.Binding) []KeyHint {
	hints := make([]KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, KeyHint{Key: h.Key, Desc: h.Desc})
	}
	return hints
}

// StatusLine renders the footer: key hints on the left, state on the right.
// Fields are ordered to minimize memory padding.
type StatusLine struct {
	styles *Styles
	width  int
}

// NewStatusLine creates a new StatusLine with the given width and styles.
func NewStatusLine(width int, styles *Styles) *StatusLine {
	return &StatusLine{
		width:  width,
		styles: styles,
	}
}

// SetWidth updates the status line width.
func (s *StatusLine) SetWidth(width int) {
	s.width = width
}

// Render renders the status line with the given info.
// Hints are cut with "..." when they would overlap the right-hand side.
func (s *StatusLine) Render(info StatusLineInfo) string {
	muted := lipgloss.NewStyle().Foreground(Colors.Muted)

	var right []string
	if info.Pagination != "" {
		right = append(right, info.Pagination)
	}
	if info.Busy {
		right = append(right, s.styles.ButtonBusy.Render("working..."))
	}
	if info.User != "" {
		right = append(right, s.styles.HeaderUser.Render(info.User))
	}
	right = append(right, muted.Render("mode:"+info.Mode.String()))
	rightContent := strings.Join(right, "  ")

	parts := make([]string, len(info.KeyHints))
	for i, h := range info.KeyHints {
		parts[i] = s.styles.FooterKey.Render(h.Key) + " " + h.Desc
	}
	left := strings.Join(parts, "  ")

	inner := s.width - 2
	room := inner - lipgloss.Width(rightContent) - 2
	if lipgloss.Width(left) > room {
		if room <= 3 {
			left = "..."
		} else {
			left = lipgloss.NewStyle().MaxWidth(room-3).Render(left) + "..."
		}
	}

	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(rightContent), 1)
	return s.styles.Footer.Width(s.width).Render(left + strings.Repeat(" ", gap) + rightContent)
}

// GetStatusInfo returns status line info for the TUI model.
func (m *Model) GetStatusInfo() StatusLineInfo {
	k := m.keys
	info := StatusLineInfo{
		Mode: m.mode,
		User: m.container.Session.State().Username(),
		Busy: m.busy || m.container.Tasks.Loading(),
	}

	switch m.mode {
	case ModeLogin:
		info.KeyHints = append(hintsFrom(k.NextField),
			KeyHint{Key: "enter", Desc: "submit"})
		info.KeyHints = append(info.KeyHints, hintsFrom(k.SwitchAuth)...)
		info.KeyHints = append(info.KeyHints, KeyHint{Key: "esc", Desc: "quit"})
	case ModeNormal:
		if m.taskList.Paginator.TotalPages > 1 {
			info.Pagination = m.taskList.Paginator.View()
		}
		info.KeyHints = append([]KeyHint{{Key: "j/k", Desc: "nav"}},
			hintsFrom(k.Detail, k.New, k.ToggleComplete, k.Select, k.Search, k.Help, k.Quit)...)
	case ModeSearch:
		info.KeyHints = []KeyHint{{Key: "enter", Desc: "search"}}
		info.KeyHints = append(info.KeyHints, hintsFrom(k.Escape)...)
	case ModeAdd, ModeEdit:
		info.KeyHints = hintsFrom(k.NextField)
		info.KeyHints = append(info.KeyHints, KeyHint{Key: "←/→", Desc: "priority"})
		info.KeyHints = append(info.KeyHints, hintsFrom(k.Submit, k.Escape)...)
	case ModeDetail:
		info.KeyHints = hintsFrom(k.Edit, k.ToggleComplete, k.Delete)
		info.KeyHints = append(info.KeyHints, KeyHint{Key: "esc", Desc: "close"})
	case ModeConfirm, ModeHelp:
		// The dialog shows its own keys.
	}

	return info
}
