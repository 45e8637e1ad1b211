package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Task actions
	Detail         key.Binding // Open task detail
	New            key.Binding // Add a task
	Edit           key.Binding // Edit task (detail view)
	ToggleComplete key.Binding // Mark done / active
	Delete         key.Binding // Delete task

	// Selection
	Select     key.Binding // Toggle selection of the current task
	SelectAll  key.Binding // Select all visible tasks, or none
	BulkDelete key.Binding // Delete the selection

	// View
	Search        key.Binding // Enter search mode
	ShowCompleted key.Binding // Toggle the completed filter
	Refresh       key.Binding // Reload the list
	DismissToast  key.Binding // Dismiss the newest toast
	Help          key.Binding // Show help

	// Forms
	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	SwitchAuth key.Binding // Login <-> register

	// General
	Logout  key.Binding
	Quit    key.Binding
	Escape  key.Binding // Cancel/back
	Confirm key.Binding // Confirm action (in confirm mode)
}

// bind builds a binding whose help line shows helpKey rather than every key.
func bind(helpKey, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:             bind("↑/k", "up", "up", "k"),
		Down:           bind("↓/j", "down", "down", "j"),
		PrevPage:       bind("←/h", "prev page", "left", "h"),
		NextPage:       bind("→/l", "next page", "right", "l"),
		Detail:         bind("enter", "detail", "enter"),
		New:            bind("n", "new task", "n"),
		Edit:           bind("e", "edit", "e"),
		ToggleComplete: bind("x", "done/active", "x"),
		Delete:         bind("d", "delete", "d"),
		Select:         bind("space", "select", " "),
		SelectAll:      bind("a", "select all", "a"),
		BulkDelete:     bind("D", "delete selected", "D"),
		Search:         bind("/", "search", "/"),
		ShowCompleted:  bind("c", "show completed", "c"),
		Refresh:        bind("r", "refresh", "r"),
		DismissToast:   bind("z", "dismiss", "z"),
		Help:           bind("?", "help", "?"),
		NextField:      bind("tab", "next field", "tab"),
		PrevField:      bind("shift+tab", "prev field", "shift+tab"),
		Submit:         bind("ctrl+s", "save", "ctrl+s"),
		SwitchAuth:     bind("ctrl+r", "login/register", "ctrl+r"),
		Logout:         bind("L", "logout", "L"),
		Quit:           bind("q", "quit", "q", "ctrl+c"),
		Escape:         bind("esc", "cancel", "esc"),
		Confirm:        bind("y", "confirm", "y", "Y"),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Detail, k.New, k.ToggleComplete, k.Select, k.Search, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Detail},
		{k.New, k.Edit, k.ToggleComplete, k.Delete},
		{k.Select, k.SelectAll, k.BulkDelete},
		{k.Search, k.ShowCompleted, k.Refresh, k.DismissToast, k.Help},
		{k.NextField, k.PrevField, k.Submit, k.SwitchAuth, k.Escape},
		{k.Logout, k.Quit},
	}
}
