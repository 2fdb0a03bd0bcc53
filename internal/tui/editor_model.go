package tui

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"conbi/internal/auth"
	"conbi/internal/models"
	"conbi/internal/parser"
	"conbi/internal/store"
)

// editorRow identifies the focused form row.
type editorRow int

const (
	rowTitle editorRow = iota
	rowDescription
	rowStatus
	rowPriority
	rowDue
	rowCategories
	rowSave
)

var (
	statusCycle   = []string{models.StatusPending, models.StatusInProgress, models.StatusCompleted}
	priorityCycle = []string{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}
)

// EditorModel is the modal form that creates or updates one task and
// reconciles its category associations. Field edits stay local until submit;
// only category creation writes immediately.
type EditorModel struct {
	user  auth.User
	store *store.Store
	task  *models.Task // nil means create

	width  int
	height int

	row    editorRow
	inputs map[editorRow]*textinput.Model

	status   string
	priority string

	categories []models.Category
	selected   map[uint]bool
	catCursor  int

	newCatActive bool
	newCatInput  textinput.Model

	errMsg string
	flash  string
	saving bool

	confirmDelete bool
	deleting      bool
}

type categoriesLoadedMsg struct {
	categories []models.Category
	err        error
}

type taskCategoryIDsMsg struct {
	ids []uint
	err error
}

type categoryCreatedMsg struct {
	category models.Category
	err      error
}

type taskSavedMsg struct {
	err error
}

type editorTaskDeletedMsg struct {
	err error
}

// editorDoneMsg tells the workspace the editor closed. The workspace refetches
// the list regardless of how it closed.
type editorDoneMsg struct {
	saved   bool
	deleted bool
}

// NewEditorModel creates the editor, pre-populated when editing.
func NewEditorModel(user auth.User, st *store.Store, task *models.Task) EditorModel {
	newInput := func(placeholder string, limit int) *textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Width = 50
		in.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		in.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		in.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
		return &in
	}

	inputs := map[editorRow]*textinput.Model{
		rowTitle:       newInput("Enter task title", 200),
		rowDescription: newInput("Enter task description", 500),
		rowDue:         newInput("yyyy-mm-dd (empty for none)", 30),
	}

	newCat := textinput.New()
	newCat.Placeholder = "Category name"
	newCat.CharLimit = 50
	newCat.Width = 30

	m := EditorModel{
		user:        user,
		store:       st,
		task:        task,
		inputs:      inputs,
		status:      models.StatusPending,
		priority:    models.PriorityMedium,
		selected:    make(map[uint]bool),
		newCatInput: newCat,
	}

	if task != nil {
		inputs[rowTitle].SetValue(task.Title)
		inputs[rowDescription].SetValue(task.Description)
		inputs[rowDue].SetValue(parser.FormatInputDate(task.DueDate))
		m.status = task.Status
		m.priority = task.Priority
	}

	inputs[rowTitle].Focus()
	return m
}

// Init loads the category set, plus the existing association ids when editing.
func (m EditorModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.loadCategories}
	if m.task != nil {
		cmds = append(cmds, m.loadTaskCategoryIDs)
	}
	return tea.Batch(cmds...)
}

func (m EditorModel) loadCategories() tea.Msg {
	categories, err := m.store.ListCategories(context.Background(), m.user.ID)
	return categoriesLoadedMsg{categories: categories, err: err}
}

func (m EditorModel) loadTaskCategoryIDs() tea.Msg {
	ids, err := m.store.TaskCategoryIDs(context.Background(), m.task.ID)
	return taskCategoryIDsMsg{ids: ids, err: err}
}

// Update handles messages.
func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case categoriesLoadedMsg:
		if msg.err != nil {
			m.flash = "Failed to fetch categories."
			return m, nil
		}
		m.categories = msg.categories
		return m, nil

	case taskCategoryIDsMsg:
		if msg.err != nil {
			m.flash = "Failed to fetch task categories."
			return m, nil
		}
		for _, id := range msg.ids {
			m.selected[id] = true
		}
		return m, nil

	case categoryCreatedMsg:
		if msg.err != nil {
			m.flash = "Failed to create category."
			return m, nil
		}
		m.categories = append(m.categories, msg.category)
		m.selected[msg.category.ID] = true
		m.newCatInput.SetValue("")
		m.newCatActive = false
		m.flash = "Category created successfully!"
		return m, nil

	case taskSavedMsg:
		m.saving = false
		if msg.err != nil {
			// Whatever partial remote state resulted stays; no compensation.
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return editorDoneMsg{saved: true} }

	case editorTaskDeletedMsg:
		m.deleting = false
		m.confirmDelete = false
		if msg.err != nil {
			m.flash = "Failed to delete task."
			return m, nil
		}
		return m, func() tea.Msg { return editorDoneMsg{deleted: true} }

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m EditorModel) handleKeys(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	if m.confirmDelete {
		switch msg.String() {
		case "y", "Y", "enter":
			if m.deleting {
				return m, nil
			}
			m.deleting = true
			return m, m.deleteTask
		case "n", "N", "esc":
			if !m.deleting {
				m.confirmDelete = false
			}
			return m, nil
		}
		return m, nil
	}

	if m.newCatActive {
		switch msg.String() {
		case "esc":
			m.newCatActive = false
			m.newCatInput.SetValue("")
			m.newCatInput.Blur()
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.newCatInput.Value())
			if name == "" {
				return m, nil // blank names are a no-op
			}
			return m, m.createCategory(name)
		}
		var cmd tea.Cmd
		m.newCatInput, cmd = m.newCatInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return editorDoneMsg{} }

	case "ctrl+s":
		return m.submit()

	case "ctrl+d":
		if m.task != nil {
			m.confirmDelete = true
		}
		return m, nil

	case "tab", "down":
		return m.moveRow(1), nil

	case "shift+tab", "up":
		return m.moveRow(-1), nil

	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch m.row {
		case rowStatus:
			m.status = cycle(statusCycle, m.status, delta)
		case rowPriority:
			m.priority = cycle(priorityCycle, m.priority, delta)
		case rowCategories:
			m.catCursor = clamp(m.catCursor+delta, 0, len(m.categories))
		}
		return m, nil

	case " ":
		if m.row == rowCategories {
			return m.toggleCategory(), nil
		}

	case "enter":
		switch m.row {
		case rowSave:
			return m.submit()
		case rowCategories:
			return m.toggleCategory(), nil
		default:
			return m.moveRow(1), nil
		}
	}

	return m.updateFocusedInput(msg)
}

func (m EditorModel) updateFocusedInput(msg tea.Msg) (EditorModel, tea.Cmd) {
	input, ok := m.inputs[m.row]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return m, cmd
}

func (m EditorModel) moveRow(delta int) EditorModel {
	if input, ok := m.inputs[m.row]; ok {
		input.Blur()
	}
	m.row = editorRow(clamp(int(m.row)+delta, int(rowTitle), int(rowSave)))
	if input, ok := m.inputs[m.row]; ok {
		input.Focus()
	}
	return m
}

// toggleCategory flips the selection under the cursor, or opens the
// new-category input when the cursor sits on the trailing "+ new" slot.
func (m EditorModel) toggleCategory() EditorModel {
	if m.catCursor >= len(m.categories) {
		m.newCatActive = true
		m.newCatInput.Focus()
		return m
	}
	id := m.categories[m.catCursor].ID
	if m.selected[id] {
		delete(m.selected, id)
	} else {
		m.selected[id] = true
	}
	return m
}

// createCategory writes the category immediately, with a color picked at
// random from the fixed palette.
func (m EditorModel) createCategory(name string) tea.Cmd {
	st := m.store
	category := models.Category{
		UserID: m.user.ID,
		Name:   name,
		Color:  CategoryPalette[rand.Intn(len(CategoryPalette))],
	}
	return func() tea.Msg {
		err := st.CreateCategory(context.Background(), &category)
		return categoryCreatedMsg{category: category, err: err}
	}
}

// submit runs the save protocol: validate locally, write the task row, then
// rewrite the association set, strictly in that order.
func (m EditorModel) submit() (EditorModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	m.errMsg = ""

	title := strings.TrimSpace(m.inputs[rowTitle].Value())
	if title == "" {
		m.errMsg = "Task title is required"
		return m, nil
	}

	// An empty due date field is persisted as NULL, never as an empty string.
	dueDate, err := parser.ParseDueDate(m.inputs[rowDue].Value())
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	task := models.Task{
		UserID:      m.user.ID,
		Title:       title,
		Description: m.inputs[rowDescription].Value(),
		Status:      m.status,
		Priority:    m.priority,
		DueDate:     dueDate,
	}
	if m.task != nil {
		task.ID = m.task.ID
	}

	m.saving = true
	return m, m.saveTask(task, m.selectedIDs())
}

func (m EditorModel) saveTask(task models.Task, categoryIDs []uint) tea.Cmd {
	st := m.store
	editing := m.task != nil
	return func() tea.Msg {
		ctx := context.Background()

		// The association rows need the task's identifier, so the task write
		// always completes first.
		if editing {
			if err := st.UpdateTask(ctx, &task); err != nil {
				return taskSavedMsg{err: err}
			}
		} else {
			if err := st.CreateTask(ctx, &task); err != nil {
				return taskSavedMsg{err: err}
			}
		}

		if err := st.ReplaceTaskCategories(ctx, task.ID, categoryIDs); err != nil {
			return taskSavedMsg{err: err}
		}
		return taskSavedMsg{}
	}
}

func (m EditorModel) deleteTask() tea.Msg {
	return editorTaskDeletedMsg{
		err: m.store.DeleteTask(context.Background(), m.task.ID, m.user.ID),
	}
}

// selectedIDs returns the current selection in stable order.
func (m EditorModel) selectedIDs() []uint {
	ids := make([]uint, 0, len(m.selected))
	for id := range m.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// View renders the TUI.
func (m EditorModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	heading := "New Task"
	if m.task != nil {
		heading = fmt.Sprintf("Edit Task #%d", m.task.ID)
	}
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n\n")

	b.WriteString(m.renderField(rowTitle, "Title", m.inputs[rowTitle].View()))
	b.WriteString(m.renderField(rowDescription, "Description", m.inputs[rowDescription].View()))
	b.WriteString(m.renderField(rowStatus, "Status", m.renderCycle(rowStatus, m.status, statusColor(m.status))))
	b.WriteString(m.renderField(rowPriority, "Priority", m.renderCycle(rowPriority, m.priority, priorityColor(m.priority))))
	b.WriteString(m.renderField(rowDue, "Due Date", m.inputs[rowDue].View()))
	b.WriteString(m.renderField(rowCategories, "Categories", m.renderCategories()))

	saveLabel := "Save"
	if m.saving {
		saveLabel = "Saving..."
	}
	saveStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Padding(0, 2)
	if m.row == rowSave {
		saveStyle = saveStyle.
			Background(lipgloss.Color(ColorAccentMain)).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Bold(true)
	}
	b.WriteString("\n")
	b.WriteString(saveStyle.Render(saveLabel))
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true).
			Render("✗ " + m.errMsg))
		b.WriteString("\n")
	}
	if m.flash != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Render(m.flash))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "tab/↑↓ fields · ←/→ change · space toggle category · ctrl+s save · esc close"
	if m.task != nil {
		help += " · ctrl+d delete"
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render(help))

	form := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Render(b.String())

	if m.confirmDelete {
		return m.renderDeleteModal()
	}
	if m.width > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}

func (m EditorModel) renderField(row editorRow, label, value string) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	if row == m.row {
		labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentBright)).
			Bold(true)
	}
	return labelStyle.Render(label) + "\n" + value + "\n\n"
}

func (m EditorModel) renderCycle(row editorRow, current, color string) string {
	value := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Render(strings.ReplaceAll(current, "_", " "))
	if m.row == row {
		return "◀ " + value + " ▶"
	}
	return value
}

// renderCategories draws the toggle chips plus the trailing "+ new" slot.
func (m EditorModel) renderCategories() string {
	var chips []string

	for i, category := range m.categories {
		style := lipgloss.NewStyle().Padding(0, 1)
		if m.selected[category.ID] {
			style = style.
				Background(lipgloss.Color(category.Color)).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)
		} else {
			style = style.Foreground(lipgloss.Color(ColorSecondaryText))
		}
		if m.row == rowCategories && i == m.catCursor {
			style = style.Underline(true)
		}
		chips = append(chips, style.Render(category.Name))
	}

	newStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color(ColorDisabledText))
	if m.row == rowCategories && m.catCursor >= len(m.categories) {
		newStyle = newStyle.Underline(true).Foreground(lipgloss.Color(ColorAccentBright))
	}
	if m.newCatActive {
		chips = append(chips, m.newCatInput.View())
	} else {
		chips = append(chips, newStyle.Render("+ new"))
	}

	return strings.Join(chips, " ")
}

func (m EditorModel) renderDeleteModal() string {
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

func cycle(options []string, current string, delta int) string {
	for i, option := range options {
		if option == current {
			return options[(i+delta+len(options))%len(options)]
		}
	}
	return options[0]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
