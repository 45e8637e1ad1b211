package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeLogin:
		content = m.viewLogin()
	case ModeHelp:
		content = m.viewHelp()
	case ModeDetail:
		content = m.viewDetail()
	case ModeAdd, ModeEdit:
		content = m.viewTaskForm()
	case ModeConfirm:
		if m.prevMode == ModeDetail {
			content = m.viewDetail() + "\n" + m.viewConfirmDialog()
		} else {
			content = m.viewMain() + "\n" + m.viewConfirmDialog()
		}
	case ModeNormal, ModeSearch:
		content = m.viewMain()
	}

	return m.styles.App.Render(content + m.viewToasts() + "\n" + m.viewFooter())
}

// viewMain renders the task list with header, search and bulk bar.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	tasks := m.container.Tasks
	switch {
	case m.mode == ModeSearch:
		b.WriteString(m.styles.InputPrompt.Render("Search: "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	case tasks.Query() != "":
		b.WriteString(m.styles.Footer.Render(fmt.Sprintf("Results for %q (esc to clear)", tasks.Query())))
		b.WriteString("\n\n")
	}

	if n := len(tasks.Selected()); n > 0 {
		b.WriteString(m.styles.BulkBar.Render(fmt.Sprintf("%d tasks selected", n)))
		b.WriteString(m.styles.Footer.Render("  D delete  a toggle all  esc clear"))
		b.WriteString("\n\n")
	}

	switch {
	case tasks.Loading():
		b.WriteString(m.styles.FieldHint.Render("Loading tasks..."))
	case len(m.taskList.Items()) == 0 && tasks.Query() != "":
		b.WriteString(m.styles.FieldHint.Render("No tasks match your search."))
	case len(m.taskList.Items()) == 0:
		b.WriteString(m.styles.FieldHint.Render("No tasks yet. Press n to add one."))
	default:
		b.WriteString(m.taskList.View())
	}

	return b.String()
}

func (m *Model) viewHeader() string {
	total, completed := m.container.Tasks.Stats()
	title := m.styles.Header.Render("TodoList")
	user := m.styles.HeaderUser.Render("Welcome, " + m.container.Session.State().Username())

	filter := "all"
	if !m.container.Tasks.ShowCompleted() {
		filter = "active only"
	}
	stats := m.styles.Footer.Render(fmt.Sprintf("%d tasks, %d completed, showing %s", total, completed, filter))

	return title + "  " + user + "\n" + stats
}

func (m *Model) viewLogin() string {
	f := &m.authForm
	heading := "Login"
	submit := "Login"
	toggle := "Need an account? ctrl+r to register"
	if f.register {
		heading = "Register"
		submit = "Register"
		toggle = "Already have an account? ctrl+r to login"
	}

	var b strings.Builder
	b.WriteString(m.styles.FormTitle.Render(heading))
	b.WriteString("\n")

	labels := map[int]string{authUsername: "Username", authEmail: "Email", authPassword: "Password"}
	for _, field := range f.fields() {
		b.WriteString(m.fieldLabel(labels[field], f.focus == field))
		b.WriteString("\n")
		b.WriteString(f.inputs[field].View())
		b.WriteString("\n\n")
	}

	if m.busy {
		b.WriteString(m.styles.ButtonBusy.Render("Loading..."))
	} else {
		b.WriteString(m.styles.ButtonPrimary.Render("[ " + submit + " ]"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.FieldHint.Render(toggle))

	intro := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Header.Render("Task Management App"),
		"",
		"Organize your tasks from the terminal.",
		"",
		"  • Create and organize tasks",
		"  • Set priorities and due dates",
		"  • Track your progress",
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Form.Render(b.String()), "    ", intro)
}

func (m *Model) viewTaskForm() string {
	f := &m.taskForm
	heading := "Add Task"
	submit := "Add Task"
	busy := "Adding..."
	if m.mode == ModeEdit {
		heading = fmt.Sprintf("Edit Task #%d", m.detailTaskID)
		submit = "Save"
		busy = "Saving..."
	}

	var b strings.Builder
	b.WriteString(m.styles.FormTitle.Render(heading))
	b.WriteString("\n")

	b.WriteString(m.fieldLabel("Title", f.focus == taskTitle))
	b.WriteString("\n" + f.title.View() + "\n\n")

	b.WriteString(m.fieldLabel("Description", f.focus == taskDesc))
	b.WriteString("\n" + f.desc.View() + "\n\n")

	b.WriteString(m.fieldLabel("Due date", f.focus == taskDue))
	b.WriteString("\n" + f.due.View() + "\n\n")

	b.WriteString(m.fieldLabel("Priority", f.focus == taskPriority))
	b.WriteString("\n")
	for _, p := range []string{"low", "normal", "high"} {
		label := strings.ToUpper(p[:1]) + p[1:]
		if string(f.priority) == p {
			b.WriteString(m.styles.FieldFocused.Render("(•) " + label))
		} else {
			b.WriteString(m.styles.FieldLabel.Render("( ) " + label))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.styles.ButtonBusy.Render(busy))
	} else {
		b.WriteString(m.styles.ButtonPrimary.Render("[ " + submit + " ]"))
		b.WriteString(m.styles.FieldHint.Render("  ctrl+s  ·  esc cancel"))
	}

	return m.styles.Form.Render(b.String())
}

func (m *Model) fieldLabel(label string, focused bool) string {
	if focused {
		return m.styles.FieldFocused.Render("> " + label)
	}
	return m.styles.FieldLabel.Render("  " + label)
}

func (m *Model) viewDetail() string {
	return m.styles.Dialog.Render(m.detailViewport.View())
}

func (m *Model) viewConfirmDialog() string {
	content := m.styles.DialogTitle.Render("Confirm") + "\n\n" +
		m.confirmPrompt() + "\n\n" +
		m.styles.FooterKey.Render("y") + " yes  " + m.styles.FooterKey.Render("any key") + " no"
	return m.styles.Dialog.Render(content)
}

func (m *Model) viewHelp() string {
	m.help.ShowAll = true
	return m.styles.Help.Render(
		m.styles.DialogTitle.Render("Keyboard shortcuts") + "\n\n" + m.help.View(m.keys),
	)
}

// viewToasts renders the active notifications, oldest first.
func (m *Model) viewToasts() string {
	toasts := m.container.Toasts.List()
	if len(toasts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, t := range toasts {
		style := m.styles.ToastStyle(t.Kind)
		b.WriteString("\n")
		b.WriteString(style.Render(ToastIcon(t.Kind) + " " + t.Message))
	}
	return b.String()
}

func (m *Model) viewFooter() string {
	info := m.GetStatusInfo()
	return m.statusLine.Render(info)
}
