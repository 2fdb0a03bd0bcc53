package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"conbi/internal/auth"
	"conbi/internal/models"
)

func TestCycle(t *testing.T) {
	require.Equal(t, models.StatusInProgress, cycle(statusCycle, models.StatusPending, 1))
	require.Equal(t, models.StatusPending, cycle(statusCycle, models.StatusInProgress, -1))

	// Wraps around both ways.
	require.Equal(t, models.StatusPending, cycle(statusCycle, models.StatusCompleted, 1))
	require.Equal(t, models.StatusCompleted, cycle(statusCycle, models.StatusPending, -1))

	// Unknown values reset to the first option.
	require.Equal(t, models.StatusPending, cycle(statusCycle, "weird", 1))
}

func TestToggleCategory(t *testing.T) {
	m := NewEditorModel(auth.User{ID: "user-1"}, nil, nil)
	m.categories = []models.Category{
		{ID: 1, Name: "work"},
		{ID: 2, Name: "home"},
	}

	m.catCursor = 0
	m = m.toggleCategory()
	require.True(t, m.selected[1])

	m = m.toggleCategory()
	require.False(t, m.selected[1])

	// The trailing slot opens the new-category input instead of toggling.
	m.catCursor = 2
	m = m.toggleCategory()
	require.True(t, m.newCatActive)
}

func TestSelectedIDsStableOrder(t *testing.T) {
	m := NewEditorModel(auth.User{ID: "user-1"}, nil, nil)
	m.selected = map[uint]bool{3: true, 1: true, 2: true}

	require.Equal(t, []uint{1, 2, 3}, m.selectedIDs())
}

func TestEditorPrefillsFromTask(t *testing.T) {
	task := &models.Task{
		ID:          7,
		Title:       "Edit me",
		Description: "existing",
		Status:      models.StatusCompleted,
		Priority:    models.PriorityHigh,
	}
	m := NewEditorModel(auth.User{ID: "user-1"}, nil, task)

	require.Equal(t, "Edit me", m.inputs[rowTitle].Value())
	require.Equal(t, "existing", m.inputs[rowDescription].Value())
	require.Equal(t, "", m.inputs[rowDue].Value())
	require.Equal(t, models.StatusCompleted, m.status)
	require.Equal(t, models.PriorityHigh, m.priority)
}

func TestSubmitRequiresTitle(t *testing.T) {
	m := NewEditorModel(auth.User{ID: "user-1"}, nil, nil)
	m.inputs[rowTitle].SetValue("   ")

	m, cmd := m.submit()
	require.Nil(t, cmd)
	require.False(t, m.saving)
	require.Equal(t, "Task title is required", m.errMsg)
}

func TestBlankCategoryNameIsNoOp(t *testing.T) {
	for _, name := range []string{"", "   "} {
		m := NewEditorModel(auth.User{ID: "user-1"}, nil, nil)
		m.newCatActive = true
		m.newCatInput.SetValue(name)

		m, cmd := m.handleKeys(tea.KeyMsg{Type: tea.KeyEnter})

		require.Nil(t, cmd)
		require.True(t, m.newCatActive)
		require.Empty(t, m.categories)
	}
}

func TestSubmitRejectsBadDueDate(t *testing.T) {
	m := NewEditorModel(auth.User{ID: "user-1"}, nil, nil)
	m.inputs[rowTitle].SetValue("valid")
	m.inputs[rowDue].SetValue("not a date")

	m, cmd := m.submit()
	require.Nil(t, cmd)
	require.False(t, m.saving)
	require.NotEmpty(t, m.errMsg)
}
