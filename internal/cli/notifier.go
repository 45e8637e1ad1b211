package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/todolist/todo-client/internal/domain"
	"github.com/todolist/todo-client/internal/tui"
)

// Ensure cliNotifier implements domain.Notifier.
var _ domain.Notifier = (*cliNotifier)(nil)

// cliNotifier prints notifications as single lines.
// Colors are dropped automatically when w is not a terminal.
type cliNotifier struct {
	w      io.Writer
	styles map[domain.ToastKind]lipgloss.Style
	mu     sync.Mutex
}

func newCLINotifier(w io.Writer) *cliNotifier {
	r := lipgloss.NewRenderer(w)
	return &cliNotifier{
		w: w,
		styles: map[domain.ToastKind]lipgloss.Style{
			domain.ToastSuccess: r.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
			domain.ToastError:   r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
			domain.ToastWarning: r.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
			domain.ToastInfo:    r.NewStyle().Foreground(lipgloss.Color("#60A5FA")).Bold(true),
		},
	}
}

func (n *cliNotifier) Notify(message string, kind domain.ToastKind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.w, "%s %s\n", n.styles[kind].Render(tui.ToastIcon(kind)), message)
}
