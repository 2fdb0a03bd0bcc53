package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"conbi/internal/auth"
	"conbi/internal/store"
)

// Run starts the full-screen application and blocks until it exits.
func Run(authSvc *auth.Service, st *store.Store) error {
	program := tea.NewProgram(NewGateModel(authSvc, st), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
