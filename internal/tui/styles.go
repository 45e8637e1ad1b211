package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/todolist/todo-client/internal/domain"
)

// Colors is the palette. Priority and toast colors double as the CLI's
// terminal colors, so they stay readable on light and dark backgrounds.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Info      lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	DescNormal    lipgloss.Color

	PriorityLow    lipgloss.Color
	PriorityNormal lipgloss.Color
	PriorityHigh   lipgloss.Color
}{
	Primary:   lipgloss.Color("#0EA5E9"), // sky
	Secondary: lipgloss.Color("#7DD3FC"),
	Muted:     lipgloss.Color("#64748B"), // slate
	Error:     lipgloss.Color("#EF4444"),
	Success:   lipgloss.Color("#22C55E"),
	Warning:   lipgloss.Color("#F59E0B"),
	Info:      lipgloss.Color("#38BDF8"),

	TitleNormal:   lipgloss.Color("#E2E8F0"),
	TitleSelected: lipgloss.Color("#FDE68A"),
	DescNormal:    lipgloss.Color("#94A3B8"),

	PriorityLow:    lipgloss.Color("#60A5FA"),
	PriorityNormal: lipgloss.Color("#CBD5E1"),
	PriorityHigh:   lipgloss.Color("#F97316"),
}

// Styles holds every lipgloss style the views use.
type Styles struct {
	App        lipgloss.Style
	Header     lipgloss.Style
	HeaderUser lipgloss.Style

	// List rows
	TaskID        lipgloss.Style
	TaskTitle     lipgloss.Style
	TaskCompleted lipgloss.Style
	TaskDue       lipgloss.Style
	TaskOverdue   lipgloss.Style
	TaskDesc      lipgloss.Style
	Cursor        lipgloss.Style
	Checkbox      lipgloss.Style
	BulkBar       lipgloss.Style

	PriorityLow    lipgloss.Style
	PriorityNormal lipgloss.Style
	PriorityHigh   lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastWarning lipgloss.Style
	ToastInfo    lipgloss.Style

	// Overlays
	Help        lipgloss.Style
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	Footer      lipgloss.Style
	FooterKey   lipgloss.Style

	// Login and task forms
	Form          lipgloss.Style
	FormTitle     lipgloss.Style
	FieldLabel    lipgloss.Style
	FieldFocused  lipgloss.Style
	FieldHint     lipgloss.Style
	InputPrompt   lipgloss.Style
	ButtonBusy    lipgloss.Style
	ButtonPrimary lipgloss.Style

	DetailTitle lipgloss.Style
	DetailLabel lipgloss.Style
	DetailValue lipgloss.Style
	DetailDesc  lipgloss.Style
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func strong(c lipgloss.Color) lipgloss.Style {
	return fg(c).Bold(true)
}

func panel(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

// DefaultStyles returns the styles built from Colors.
func DefaultStyles() Styles {
	accent := strong(Colors.Primary)
	hint := fg(Colors.Muted).Italic(true)
	title := accent.MarginBottom(1)

	return Styles{
		App:        lipgloss.NewStyle().Padding(1, 2),
		Header:     accent,
		HeaderUser: fg(Colors.Secondary),

		TaskID:        fg(Colors.Muted),
		TaskTitle:     fg(Colors.TitleNormal),
		TaskCompleted: fg(Colors.Muted).Strikethrough(true),
		TaskDue:       fg(Colors.Muted),
		TaskOverdue:   fg(Colors.Error),
		TaskDesc:      fg(Colors.DescNormal),
		Cursor:        strong(Colors.TitleSelected),
		Checkbox:      fg(Colors.Success),
		BulkBar:       strong(Colors.Warning),

		PriorityLow:    fg(Colors.PriorityLow),
		PriorityNormal: fg(Colors.PriorityNormal),
		PriorityHigh:   strong(Colors.PriorityHigh),

		ToastSuccess: fg(Colors.Success),
		ToastError:   strong(Colors.Error),
		ToastWarning: fg(Colors.Warning),
		ToastInfo:    fg(Colors.Info),

		Help:        panel(Colors.Muted),
		Dialog:      panel(Colors.Warning),
		DialogTitle: strong(Colors.Warning),
		Footer:      fg(Colors.Muted),
		FooterKey:   accent,

		Form:          panel(Colors.Primary),
		FormTitle:     title,
		FieldLabel:    fg(Colors.Muted),
		FieldFocused:  strong(Colors.TitleSelected),
		FieldHint:     hint,
		InputPrompt:   accent,
		ButtonBusy:    hint,
		ButtonPrimary: accent,

		DetailTitle: title,
		DetailLabel: fg(Colors.Muted).Width(12),
		DetailValue: lipgloss.NewStyle(),
		DetailDesc:  fg(Colors.TitleNormal),
	}
}

// PriorityStyle returns the badge style for a priority.
func (s Styles) PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityLow:
		return s.PriorityLow
	case domain.PriorityHigh:
		return s.PriorityHigh
	case domain.PriorityNormal:
		return s.PriorityNormal
	default:
		return s.PriorityNormal
	}
}

// ToastStyle returns the style for a toast kind.
func (s Styles) ToastStyle(kind domain.ToastKind) lipgloss.Style {
	switch kind {
	case domain.ToastSuccess:
		return s.ToastSuccess
	case domain.ToastError:
		return s.ToastError
	case domain.ToastWarning:
		return s.ToastWarning
	case domain.ToastInfo:
		return s.ToastInfo
	default:
		return s.ToastInfo
	}
}

// ToastIcon returns an icon for a toast kind.
func ToastIcon(kind domain.ToastKind) string {
	switch kind {
	case domain.ToastSuccess:
		return "✓"
	case domain.ToastError:
		return "✗"
	case domain.ToastWarning:
		return "!"
	case domain.ToastInfo:
		return "i"
	default:
		return "?"
	}
}

// CompletedIcon returns the checkbox shown for a task's completion state.
func CompletedIcon(done bool) string {
	if done {
		return "✓"
	}
	return "○"
}
