// Package tui provides the terminal user interface for the todo client.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeLogin   Mode = iota // Login/register form (no session)
	ModeNormal              // Task list navigation
	ModeSearch              // Search query input
	ModeAdd                 // New task form
	ModeDetail              // Read-only task detail
	ModeEdit                // Task edit form
	ModeConfirm             // Confirmation dialog
	ModeHelp                // Help overlay
)

var modeNames = [...]string{
	ModeLogin:   "login",
	ModeNormal:  "normal",
	ModeSearch:  "search",
	ModeAdd:     "add",
	ModeDetail:  "detail",
	ModeEdit:    "edit",
	ModeConfirm: "confirm",
	ModeHelp:    "help",
}

// String returns the name shown in the status line.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// IsInputMode reports whether printable keys go to a text field.
func (m Mode) IsInputMode() bool {
	return m == ModeLogin || m == ModeSearch || m == ModeAdd || m == ModeEdit
}

// ConfirmAction represents the type of action requiring confirmation.
type ConfirmAction int

const (
	ConfirmNone       ConfirmAction = iota
	ConfirmDelete                   // Delete one task
	ConfirmBulkDelete               // Delete the selection
)

// String returns a human-readable description of the action.
func (a ConfirmAction) String() string {
	switch a {
	case ConfirmNone:
		return ""
	case ConfirmDelete:
		return "delete"
	case ConfirmBulkDelete:
		return "delete selected"
	}
	return ""
}
