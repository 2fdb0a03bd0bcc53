package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"conbi/internal/auth"
	"conbi/internal/models"
	"conbi/internal/store"
)

type authMode int

const (
	modeSignIn authMode = iota
	modeSignUp
)

type authPhase int

const (
	phaseForm authPhase = iota
	phaseVerify
)

// Input field indexes
const (
	fieldFullName = iota
	fieldEmail
	fieldPassword
	fieldConfirm
)

// AuthModel is the sign-in / sign-up form. On successful sign-in it does not
// navigate anywhere itself; the gate's subscription picks up the new session.
type AuthModel struct {
	auth  *auth.Service
	store *store.Store

	mode  authMode
	phase authPhase

	inputs [4]textinput.Model
	focus  int

	errMsg     string
	warnMsg    string
	submitting bool

	verifyEmail string
	verifyCode  string

	width  int
	height int
}

type signInDoneMsg struct {
	err error
}

type signUpDoneMsg struct {
	result     *auth.SignUpResult
	profileErr error
	err        error
}

// NewAuthModel creates the authentication view in sign-in mode.
func NewAuthModel(authSvc *auth.Service, st *store.Store) AuthModel {
	var inputs [4]textinput.Model
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[fieldFullName].Placeholder = "Full name"
	inputs[fieldFullName].CharLimit = 100
	inputs[fieldEmail].Placeholder = "Email"
	inputs[fieldEmail].CharLimit = 200
	inputs[fieldPassword].Placeholder = "Password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldConfirm].Placeholder = "Confirm password"
	inputs[fieldConfirm].EchoMode = textinput.EchoPassword

	m := AuthModel{
		auth:   authSvc,
		store:  st,
		inputs: inputs,
	}
	m.focus = m.fields()[0]
	m.inputs[m.focus].Focus()
	return m
}

// fields returns the visible input indexes for the current mode, in order.
func (m AuthModel) fields() []int {
	if m.mode == modeSignUp {
		return []int{fieldFullName, fieldEmail, fieldPassword, fieldConfirm}
	}
	return []int{fieldEmail, fieldPassword}
}

// Init initializes the model.
func (m AuthModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m AuthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case signInDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		// On success the gate swaps this view out; nothing to do here.
		return m, nil

	case signUpDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		// Account created. A failed profile write is surfaced distinctly but
		// does not undo the registration.
		if msg.profileErr != nil {
			m.warnMsg = msg.profileErr.Error()
		}
		m.phase = phaseVerify
		m.verifyEmail = msg.result.User.Email
		m.verifyCode = msg.result.VerifyCode
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		return m, nil

	case tea.KeyMsg:
		if m.phase == phaseVerify {
			switch msg.String() {
			case "enter", "esc":
				m.phase = phaseForm
				m.mode = modeSignIn
				m.errMsg = ""
				m.warnMsg = ""
				return m.setFocus(m.fields()[0])
			case "q":
				return m, func() tea.Msg { return quitRequestMsg{} }
			}
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return quitRequestMsg{} }

		case "ctrl+t":
			// Toggle sign-in / sign-up. Errors reset, field values stay.
			if m.mode == modeSignIn {
				m.mode = modeSignUp
			} else {
				m.mode = modeSignIn
			}
			m.errMsg = ""
			return m.setFocus(m.fields()[0])

		case "tab", "down":
			return m.moveFocus(1)

		case "shift+tab", "up":
			return m.moveFocus(-1)

		case "enter":
			fields := m.fields()
			if m.focus == fields[len(fields)-1] {
				return m.submit()
			}
			return m.moveFocus(1)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m AuthModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	fields := m.fields()
	pos := 0
	for i, f := range fields {
		if f == m.focus {
			pos = i
			break
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	return m.setFocus(fields[pos])
}

func (m AuthModel) setFocus(field int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = field
	m.inputs[m.focus].Focus()
	return m, textinput.Blink
}

// submit validates locally, then issues the sign-in or sign-up request.
func (m AuthModel) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.errMsg = ""

	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	if m.mode == modeSignIn {
		if email == "" || password == "" {
			m.errMsg = "Email and password are required"
			return m, nil
		}
		m.submitting = true
		return m, m.signInCmd(email, password)
	}

	if password != m.inputs[fieldConfirm].Value() {
		// Local validation only; no request is issued.
		m.errMsg = "Passwords do not match"
		return m, nil
	}
	m.submitting = true
	return m, m.signUpCmd(email, password, strings.TrimSpace(m.inputs[fieldFullName].Value()))
}

func (m AuthModel) signInCmd(email, password string) tea.Cmd {
	authSvc := m.auth
	return func() tea.Msg {
		_, err := authSvc.SignIn(context.Background(), email, password)
		return signInDoneMsg{err: err}
	}
}

func (m AuthModel) signUpCmd(email, password, fullName string) tea.Cmd {
	authSvc := m.auth
	st := m.store
	return func() tea.Msg {
		result, err := authSvc.SignUp(context.Background(), auth.SignUpInput{
			Email:    email,
			Password: password,
			FullName: fullName,
		})
		if err != nil {
			return signUpDoneMsg{err: err}
		}

		profile := models.Profile{
			ID:       result.User.ID,
			Email:    result.User.Email,
			FullName: fullName,
		}
		if err := st.CreateProfile(context.Background(), &profile); err != nil {
			return signUpDoneMsg{
				result:     result,
				profileErr: fmt.Errorf("%w: %v", auth.ErrProfileWrite, err),
			}
		}
		return signUpDoneMsg{result: result}
	}
}

// View renders the TUI.
func (m AuthModel) View() string {
	if m.phase == phaseVerify {
		return m.renderVerify()
	}

	var b strings.Builder

	logoStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain))
	b.WriteString(logoStyle.Render("ConBi"))
	b.WriteString("\n\n")

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText))
	if m.mode == modeSignIn {
		b.WriteString(titleStyle.Render("Sign in to your workspace"))
	} else {
		b.WriteString(titleStyle.Render("Create your account"))
	}
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	focusedLabelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	labels := [4]string{"Full Name", "Email", "Password", "Confirm Password"}

	for _, f := range m.fields() {
		style := labelStyle
		if f == m.focus {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(labels[f]))
		b.WriteString("\n")
		b.WriteString(m.inputs[f].View())
		b.WriteString("\n\n")
	}

	if m.submitting {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Render("Submitting..."))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true)
		b.WriteString(errStyle.Render("✗ " + m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	toggle := "need an account? ctrl+t to sign up"
	if m.mode == modeSignUp {
		toggle = "have an account? ctrl+t to sign in"
	}
	b.WriteString(helpStyle.Render(toggle + " · enter submit · esc quit"))

	return m.center(b.String())
}

// renderVerify shows the verification-pending screen after registration.
func (m AuthModel) renderVerify() string {
	var b strings.Builder

	logoStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain))
	b.WriteString(logoStyle.Render("ConBi"))
	b.WriteString("\n\n")

	okStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorSuccess))
	b.WriteString(okStyle.Render("✓ Account created"))
	b.WriteString("\n\n")

	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	b.WriteString(textStyle.Render("Confirm your email before signing in:"))
	b.WriteString("\n\n")

	cmdStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true)
	b.WriteString(cmdStyle.Render(fmt.Sprintf("  conbi verify %s %s", m.verifyEmail, m.verifyCode)))
	b.WriteString("\n\n")

	if m.warnMsg != "" {
		warnStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true)
		b.WriteString(warnStyle.Render("⚠ " + m.warnMsg))
		b.WriteString("\n\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	b.WriteString(helpStyle.Render("enter back to sign in · q quit"))

	return m.center(b.String())
}

func (m AuthModel) center(content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 3).
		Render(content)
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
