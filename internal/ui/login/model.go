// Package login renders the credential form shown while no session exists.
package login

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hdops/turnos-admin/internal/auth"
	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/internal/theme"
)

const loginTimeout = 30 * time.Second

// LoggedInMsg signals a successful login to the root model.
type LoggedInMsg struct {
	User *model.User
}

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	user *model.User
	err  error
}

// Model is the login form view.
type Model struct {
	svc    *auth.Service
	form   *huh.Form
	email  string
	senha  string
	busy   bool
	errMsg string

	spinner spinner.Model
	width   int
	height  int
}

// New creates the login view bound to the auth service.
func New(svc *auth.Service, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		svc:     svc,
		spinner: sp,
		width:   width,
		height:  height,
	}
	m.form = m.buildForm()
	return m
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Placeholder("agente@example.com"),
			huh.NewInput().
				Key("senha").
				Title("Senha").
				EchoMode(huh.EchoModePassword),
		),
	)
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the login view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = loginErrorMessage(msg.err)
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		m.errMsg = ""
		return m, func() tea.Msg { return LoggedInMsg{User: msg.user} }

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		m.email = m.form.GetString("email")
		m.senha = m.form.GetString("senha")
		return m, tea.Batch(m.spinner.Tick, m.login(m.email, m.senha))
	}

	return m, cmd
}

func (m Model) login(email, senha string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()

		user, err := svc.Login(ctx, email, senha)
		return loginResultMsg{user: user, err: err}
	}
}

// View renders the login panel.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render("Entrar")}

	if m.busy {
		parts = append(parts, m.spinner.View()+" autenticando...")
	} else {
		parts = append(parts, m.form.View())
	}

	if m.errMsg != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errMsg))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func loginErrorMessage(err error) string {
	var loginErr *auth.LoginError
	if errors.As(err, &loginErr) {
		return loginErr.Message
	}
	return err.Error()
}
