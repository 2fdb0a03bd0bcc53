package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"conbi/internal/models"
)

func TestCountByStatus(t *testing.T) {
	tasks := []models.Task{
		{Status: models.StatusPending},
		{Status: models.StatusPending},
		{Status: models.StatusInProgress},
		{Status: models.StatusCompleted},
	}

	c := countByStatus(tasks)
	require.Equal(t, 4, c.total)
	require.Equal(t, 2, c.pending)
	require.Equal(t, 1, c.inProgress)
	require.Equal(t, 1, c.completed)

	// Buckets always sum to the total.
	require.Equal(t, c.total, c.pending+c.inProgress+c.completed)
}

func TestCountByStatusEmpty(t *testing.T) {
	c := countByStatus(nil)
	require.Equal(t, statusCounts{}, c)
}

func TestDeclinedDeleteIssuesNoRequest(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'n'}},
		{Type: tea.KeyEsc},
	} {
		m := WorkspaceModel{tasks: []models.Task{{ID: 1, Title: "keep me"}}}
		id := uint(1)
		m.confirmDelete = &id

		model, cmd := m.handleConfirmKeys(key)
		ws := model.(WorkspaceModel)

		require.Nil(t, cmd, key.String())
		require.Nil(t, ws.confirmDelete)
		require.Len(t, ws.tasks, 1)
	}
}

func TestDeclineIgnoredWhileDeleteInFlight(t *testing.T) {
	m := WorkspaceModel{}
	id := uint(1)
	m.confirmDelete = &id
	m.deleting = true

	model, cmd := m.handleConfirmKeys(tea.KeyMsg{Type: tea.KeyEsc})
	ws := model.(WorkspaceModel)

	require.Nil(t, cmd)
	require.NotNil(t, ws.confirmDelete)
}
