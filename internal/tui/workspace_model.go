package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"conbi/internal/auth"
	"conbi/internal/models"
	"conbi/internal/store"
)

// WorkspaceModel lists and manages the signed-in user's tasks. The in-memory
// collection is never patched locally: every successful mutation and every
// editor close triggers a full refetch, so the view always shows the store's
// last known-good snapshot.
type WorkspaceModel struct {
	user  auth.User
	store *store.Store
	auth  *auth.Service

	width  int
	height int

	tasks    []models.Task
	loading  bool
	selected int

	editor *EditorModel

	confirmDelete *uint // task id awaiting confirmation
	deleting      bool

	notice notice
}

type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

type taskDeletedMsg struct {
	err error
}

type signedOutMsg struct {
	err error
}

// statusCounts is the summary shown above the task list.
type statusCounts struct {
	total      int
	pending    int
	inProgress int
	completed  int
}

// countByStatus recomputes the summary from scratch; there are no incremental
// counters to drift.
func countByStatus(tasks []models.Task) statusCounts {
	c := statusCounts{total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusPending:
			c.pending++
		case models.StatusInProgress:
			c.inProgress++
		case models.StatusCompleted:
			c.completed++
		}
	}
	return c
}

// NewWorkspaceModel creates the workspace for an authenticated user.
func NewWorkspaceModel(user auth.User, st *store.Store, authSvc *auth.Service) WorkspaceModel {
	return WorkspaceModel{
		user:    user,
		store:   st,
		auth:    authSvc,
		loading: true,
	}
}

// Init fetches the task list.
func (m WorkspaceModel) Init() tea.Cmd {
	return m.fetchTasks
}

func (m WorkspaceModel) fetchTasks() tea.Msg {
	tasks, err := m.store.ListTasks(context.Background(), m.user.ID)
	return tasksLoadedMsg{tasks: tasks, err: err}
}

// Update handles messages.
func (m WorkspaceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// While the editor modal is open it owns the keyboard.
	if m.editor != nil {
		return m.updateEditor(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// Keep the previous collection: stale but available.
			return m, m.notice.show(noticeError, "Failed to fetch tasks. Please try again.")
		}
		m.tasks = msg.tasks
		if m.selected >= len(m.tasks) {
			m.selected = max(0, len(m.tasks)-1)
		}
		return m, nil

	case taskDeletedMsg:
		m.deleting = false
		m.confirmDelete = nil
		if msg.err != nil {
			return m, m.notice.show(noticeError, "Failed to delete task. Please try again.")
		}
		return m, tea.Batch(
			m.notice.show(noticeSuccess, "Task deleted successfully!"),
			m.fetchTasks,
		)

	case signedOutMsg:
		if msg.err != nil {
			return m, m.notice.show(noticeError, msg.err.Error())
		}
		// The gate's subscription swaps this view out.
		return m, nil

	case noticeExpiredMsg:
		m.notice.expire(msg)
		return m, nil

	case tea.KeyMsg:
		if m.confirmDelete != nil {
			return m.handleConfirmKeys(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m WorkspaceModel) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, func() tea.Msg { return quitRequestMsg{} }

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down", "j":
		if m.selected < len(m.tasks)-1 {
			m.selected++
		}
		return m, nil

	case "a":
		editor := NewEditorModel(m.user, m.store, nil)
		m.editor = &editor
		return m, editor.Init()

	case "e", "enter":
		if len(m.tasks) == 0 {
			return m, nil
		}
		task := m.tasks[m.selected]
		editor := NewEditorModel(m.user, m.store, &task)
		m.editor = &editor
		return m, editor.Init()

	case "d":
		if len(m.tasks) == 0 {
			return m, nil
		}
		id := m.tasks[m.selected].ID
		m.confirmDelete = &id
		return m, nil

	case "r":
		m.loading = true
		return m, m.fetchTasks

	case "o":
		return m, m.signOut
	}

	return m, nil
}

// handleConfirmKeys gates the delete request behind explicit confirmation.
// Declining issues no request and leaves the task untouched.
func (m WorkspaceModel) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if m.deleting {
			return m, nil
		}
		m.deleting = true
		return m, m.deleteTask(*m.confirmDelete)

	case "n", "N", "esc":
		if !m.deleting {
			m.confirmDelete = nil
		}
		return m, nil
	}
	return m, nil
}

func (m WorkspaceModel) deleteTask(taskID uint) tea.Cmd {
	st := m.store
	userID := m.user.ID
	return func() tea.Msg {
		return taskDeletedMsg{err: st.DeleteTask(context.Background(), taskID, userID)}
	}
}

func (m WorkspaceModel) signOut() tea.Msg {
	return signedOutMsg{err: m.auth.SignOut()}
}

// updateEditor forwards messages to the editor modal and handles its close.
func (m WorkspaceModel) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(editorDoneMsg); ok {
		m.editor = nil
		cmds := []tea.Cmd{m.fetchTasks} // always refetch, saved or not
		if done.deleted {
			cmds = append(cmds, m.notice.show(noticeSuccess, "Task deleted successfully!"))
		}
		return m, tea.Batch(cmds...)
	}

	// The workspace still tracks resizes under the modal.
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}

	editor, cmd := m.editor.Update(msg)
	m.editor = &editor
	return m, cmd
}

// View renders the TUI.
func (m WorkspaceModel) View() string {
	if m.editor != nil {
		return m.editor.View()
	}

	var b strings.Builder

	// Header
	logoStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain))
	emailStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText))
	b.WriteString(logoStyle.Render("ConBi"))
	b.WriteString("  ")
	b.WriteString(emailStyle.Render(m.user.Email))
	b.WriteString("\n\n")

	// Summary counts, recomputed on every render
	b.WriteString(m.renderCounts())
	b.WriteString("\n\n")

	// Task list
	b.WriteString(m.renderTasks())

	// Notice line
	if m.notice.visible {
		b.WriteString("\n")
		b.WriteString(m.notice.view())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	b.WriteString(helpStyle.Render("↑/↓ nav · a add · e edit · d delete · r refresh · o sign out · q quit"))

	content := b.String()
	if m.confirmDelete != nil {
		return m.renderDeleteModal(content)
	}
	return content
}

func (m WorkspaceModel) renderCounts() string {
	c := countByStatus(m.tasks)

	segment := func(label string, n int, color string) string {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(color)).
			Bold(true).
			Render(fmt.Sprintf("%d %s", n, label))
	}

	return strings.Join([]string{
		segment("total", c.total, ColorAccentBright),
		segment("pending", c.pending, ColorStatusPending),
		segment("in progress", c.inProgress, ColorStatusInProgress),
		segment("completed", c.completed, ColorStatusCompleted),
	}, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render("  ·  "))
}

func (m WorkspaceModel) renderTasks() string {
	if m.loading && len(m.tasks) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Render("Loading tasks...")
	}

	if len(m.tasks) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Render("No tasks yet. Press 'a' to create your first task!")
	}

	cardWidth := 60
	if m.width > 0 && m.width-4 < cardWidth {
		cardWidth = m.width - 4
	}

	var b strings.Builder
	for i, task := range m.tasks {
		b.WriteString(renderTaskCard(task, cardWidth, i == m.selected))
		b.WriteString("\n")
	}
	return b.String()
}

// renderDeleteModal overlays the delete confirmation.
func (m WorkspaceModel) renderDeleteModal(background string) string {
	var content strings.Builder
	content.WriteString("Delete this task?\n")
	content.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Render("This action cannot be undone."))
	content.WriteString("\n\n")
	if m.deleting {
		content.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Render("Deleting..."))
	} else {
		content.WriteString("y delete · n cancel")
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorError)).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(content.String())

	if m.width == 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
