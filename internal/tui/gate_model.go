package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"conbi/internal/auth"
	"conbi/internal/store"
)

// GateModel owns the session lifecycle: it checks the stored session once on
// startup, then swaps between the auth view and the workspace whenever the
// auth service reports a session change.
type GateModel struct {
	auth  *auth.Service
	store *store.Store

	width  int
	height int

	checking    bool
	session     *auth.Session
	child       tea.Model
	changes     chan *auth.Session
	unsubscribe func()
}

// sessionCheckedMsg carries the result of the initial session fetch. A failed
// fetch is treated as "no session", so the message has no error field.
type sessionCheckedMsg struct {
	session *auth.Session
}

// sessionChangedMsg is delivered for every auth service notification.
type sessionChangedMsg struct {
	session *auth.Session
}

// quitRequestMsg is emitted by child models that want the program to exit, so
// the gate can tear down its subscription first.
type quitRequestMsg struct{}

// NewGateModel builds the root model and subscribes to session changes for
// its lifetime.
func NewGateModel(authSvc *auth.Service, st *store.Store) GateModel {
	changes := make(chan *auth.Session, 8)
	unsubscribe := authSvc.Subscribe(func(s *auth.Session) {
		changes <- s
	})

	return GateModel{
		auth:        authSvc,
		store:       st,
		checking:    true,
		changes:     changes,
		unsubscribe: unsubscribe,
	}
}

// Init kicks off the session check and starts listening for changes.
func (m GateModel) Init() tea.Cmd {
	return tea.Batch(m.checkSession, m.waitForChange)
}

func (m GateModel) checkSession() tea.Msg {
	session, err := m.auth.CurrentSession()
	if err != nil {
		// No retry: a failed check reads as signed out.
		return sessionCheckedMsg{session: nil}
	}
	return sessionCheckedMsg{session: session}
}

func (m GateModel) waitForChange() tea.Msg {
	return sessionChangedMsg{session: <-m.changes}
}

// Update handles messages.
func (m GateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.forward(msg)

	case sessionCheckedMsg:
		m.checking = false
		m.session = msg.session
		return m.swapChild()

	case sessionChangedMsg:
		m.session = msg.session
		model, cmd := m.swapChild()
		return model, tea.Batch(cmd, m.waitForChange)

	case quitRequestMsg:
		m.unsubscribe()
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.unsubscribe()
			return m, tea.Quit
		}
		return m.forward(msg)
	}

	return m.forward(msg)
}

// swapChild replaces the child view to match the current session. The auth
// view and the workspace are never mounted at the same time.
func (m GateModel) swapChild() (tea.Model, tea.Cmd) {
	if m.session == nil {
		m.child = NewAuthModel(m.auth, m.store)
	} else {
		m.child = NewWorkspaceModel(m.session.User, m.store, m.auth)
	}

	cmds := []tea.Cmd{m.child.Init()}
	if m.width > 0 {
		var cmd tea.Cmd
		m.child, cmd = m.child.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m GateModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.child == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.child, cmd = m.child.Update(msg)
	return m, cmd
}

// View renders a loading placeholder until the first session check resolves,
// then exactly one of the two child views.
func (m GateModel) View() string {
	if m.checking {
		loading := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Render("loading...")
		if m.width > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, loading)
		}
		return loading
	}
	if m.child == nil {
		return ""
	}
	return m.child.View()
}
