// Package app holds the root Bubble Tea model: view routing, the header
// and status bar, and the glue between the session, the socket, and the
// notification store.
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hdops/turnos-admin/internal/api"
	"github.com/hdops/turnos-admin/internal/auth"
	"github.com/hdops/turnos-admin/internal/keys"
	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/internal/notify"
	"github.com/hdops/turnos-admin/internal/shell"
	"github.com/hdops/turnos-admin/internal/store"
	"github.com/hdops/turnos-admin/internal/theme"
	"github.com/hdops/turnos-admin/internal/ui"
	"github.com/hdops/turnos-admin/internal/ui/agentlist"
	"github.com/hdops/turnos-admin/internal/ui/command"
	"github.com/hdops/turnos-admin/internal/ui/dashboard"
	helpview "github.com/hdops/turnos-admin/internal/ui/help"
	loginview "github.com/hdops/turnos-admin/internal/ui/login"
	"github.com/hdops/turnos-admin/internal/ui/notiflist"
	"github.com/hdops/turnos-admin/internal/ui/pontoview"
	"github.com/hdops/turnos-admin/internal/ui/teamlist"
	"github.com/hdops/turnos-admin/internal/ws"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewDashboard
	ViewAgents
	ViewNotifications
	ViewPonto
	ViewTeams
	ViewHelp
	ViewCommand
)

// notifChangedMsg signals that the notification store mutated.
type notifChangedMsg struct{}

// connStateMsg carries a socket state transition to the header.
type connStateMsg struct {
	state ws.ConnectionState
}

// statusEventMsg carries a pushed presence change for the roster badges.
type statusEventMsg struct {
	event model.AgentStatusNotification
}

// userChangedMsg carries a session transition.
type userChangedMsg struct {
	user *model.User
}

// Services bundles everything the root model needs.
type Services struct {
	Auth      *auth.Service
	Transport *ws.Transport
	Notify    *notify.Store
	Shell     *shell.Orchestrator
	DB        store.Store

	Agents    *api.AgentsClient
	Teams     *api.TeamsClient
	Turnos    *api.TurnosClient
	Salario   *api.SalarioClient
	Ponto     *api.PontoClient
	Dashboard *api.DashboardClient

	Config     *model.AppConfig
	ConfigPath string

	Log zerolog.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	svc          Services

	loginView     loginview.Model
	dashboardView dashboard.Model
	agentView     agentlist.Model
	teamView      teamlist.Model
	notifView     notiflist.Model
	pontoView     pontoview.Model
	helpView      helpview.Model
	commandView   command.Model

	// re-armed subscriptions
	userCh     <-chan *model.User
	cancelUser func()
	stateCh    <-chan ws.ConnectionState
	cancelSt   func()
	eventCh    <-chan model.AgentStatusNotification
	cancelEv   func()

	user        *model.User
	connState   ws.ConnectionState
	unreadCount int
	statusMsg   string
	ready       bool
}

// New creates the root application model.
func New(svc Services) Model {
	k := keys.DefaultKeyMap()

	userCh, cancelUser := svc.Auth.Subscribe()
	stateCh, cancelSt := svc.Transport.SubscribeState()
	eventCh, cancelEv := svc.Transport.SubscribeNotifications()

	m := Model{
		currentView:   ViewLogin,
		keys:          k,
		svc:           svc,
		loginView:     loginview.New(svc.Auth, 80, 24),
		dashboardView: dashboard.New(svc.Dashboard, k, 80, 24),
		agentView:     agentlist.New(svc.Agents, k, 80, 24),
		teamView:      teamlist.New(svc.Teams, k, 80, 24),
		notifView:     notiflist.New(svc.Notify, k, 80, 24),
		pontoView:     pontoview.New(svc.Ponto, svc.DB, k, 80, 24),
		helpView:      helpview.New(k, 80, 24),
		commandView:   command.New(80, 24),
		userCh:        userCh,
		cancelUser:    cancelUser,
		stateCh:       stateCh,
		cancelSt:      cancelSt,
		eventCh:       eventCh,
		cancelEv:      cancelEv,
		unreadCount:   svc.Notify.UnreadCount(),
	}

	// The user stream replays the current value, so a stored session skips
	// the login screen on the first userChangedMsg.
	return m
}

// Init starts the background watchers and the login form.
func (m Model) Init() tea.Cmd {
	m.svc.Shell.Start()
	return tea.Batch(
		m.loginView.Init(),
		m.waitUser(),
		m.waitConnState(),
		m.waitStatusEvent(),
		m.waitNotifChanged(),
	)
}

// waitUser relays one session transition.
func (m Model) waitUser() tea.Cmd {
	ch := m.userCh
	return func() tea.Msg {
		user, ok := <-ch
		if !ok {
			return nil
		}
		return userChangedMsg{user: user}
	}
}

// waitConnState relays one socket state transition.
func (m Model) waitConnState() tea.Cmd {
	ch := m.stateCh
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return connStateMsg{state: state}
	}
}

// waitStatusEvent relays one pushed presence change.
func (m Model) waitStatusEvent() tea.Cmd {
	ch := m.eventCh
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return statusEventMsg{event: event}
	}
}

// waitNotifChanged relays one notification-store change signal.
func (m Model) waitNotifChanged() tea.Cmd {
	ch := m.svc.Notify.Changed()
	return func() tea.Msg {
		<-ch
		return notifChangedMsg{}
	}
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.dashboardView.SetSize(w, h)
		m.agentView.SetSize(w, h)
		m.teamView.SetSize(w, h)
		m.notifView.SetSize(w, h)
		m.pontoView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		return m.updateActiveView(msg)

	case userChangedMsg:
		return m.handleUserChange(msg.user)

	case connStateMsg:
		m.connState = msg.state
		return m, m.waitConnState()

	case statusEventMsg:
		m.agentView.ApplyStatus(msg.event.AgentID, msg.event.Status)
		return m, m.waitStatusEvent()

	case notifChangedMsg:
		m.unreadCount = m.svc.Notify.UnreadCount()
		m.notifView.Reload()
		return m, m.waitNotifChanged()

	case loginview.LoggedInMsg:
		// The session stream drives the actual transition.
		return m, nil

	case agentlist.SelectedAgentMsg:
		m.statusMsg = fmt.Sprintf("agente #%d", msg.AgentID)
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.svc.Log.Error().Err(msg.err).Msg("monthly export failed")
			m.statusMsg = "export falhou: " + msg.err.Error()
		} else {
			m.statusMsg = "exportado " + msg.path
		}
		return m, nil

	case adminDoneMsg:
		if msg.err != nil {
			m.svc.Log.Error().Err(msg.err).Msg("admin command failed")
			m.statusMsg = "falhou: " + adminErrorMessage(msg.err)
		} else {
			m.statusMsg = msg.text
		}
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		if mdl, cmd, handled := m.handleGlobalKey(msg); handled {
			return mdl, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleUserChange reroutes the UI when the session starts or ends.
func (m Model) handleUserChange(user *model.User) (tea.Model, tea.Cmd) {
	m.user = user

	if user == nil {
		m.currentView = ViewLogin
		m.loginView = loginview.New(m.svc.Auth, m.layout.ContentWidth(), m.layout.ContentHeight())
		return m, tea.Batch(m.loginView.Init(), m.waitUser())
	}

	m.pontoView.SetAgent(user.ID)

	cmds := []tea.Cmd{m.waitUser()}
	if user.IsAdministrator() {
		m.currentView = ViewDashboard
		cmds = append(cmds, m.dashboardView.Load(), m.agentView.Load())
	} else {
		// Agents only have the attendance screen.
		m.currentView = ViewPonto
	}
	cmds = append(cmds, m.pontoView.Load())
	return m, tea.Batch(cmds...)
}

// handleGlobalKey applies the keys that work on every authenticated view.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if m.currentView == ViewLogin || m.currentView == ViewCommand {
		// The forms own the keyboard; only ctrl+c breaks out.
		if msg.String() == "ctrl+c" {
			return m, m.quit(), true
		}
		if m.currentView == ViewCommand && msg.String() == "esc" {
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, nil, false
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, m.quit(), true

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
		} else {
			m.previousView = m.currentView
			m.currentView = ViewHelp
		}
		return m, nil, true

	case ":":
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus(), true

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}

	case "1":
		if m.canOpen(ViewDashboard) {
			m.currentView = ViewDashboard
			return m, m.dashboardView.Load(), true
		}

	case "2":
		if m.canOpen(ViewAgents) {
			m.currentView = ViewAgents
			return m, m.agentView.Load(), true
		}

	case "3":
		if m.canOpen(ViewNotifications) {
			m.currentView = ViewNotifications
			m.notifView.Reload()
			return m, nil, true
		}

	case "4":
		m.currentView = ViewPonto
		return m, m.pontoView.Load(), true

	case "5":
		if m.canOpen(ViewTeams) {
			m.currentView = ViewTeams
			return m, m.teamView.Load(), true
		}

	case "x":
		if auth.CanAccess(m.user, "/export") {
			return m, m.exportCurrentMonth(), true
		}

	case "L":
		m.svc.Auth.Logout()
		m.statusMsg = ""
		return m, nil, true
	}

	return m, nil, false
}

// canOpen gates views through the authorization table.
func (m Model) canOpen(view ViewState) bool {
	return auth.CanAccess(m.user, routeFor(view))
}

// routeFor maps a view to its entry in the authorization table.
func routeFor(view ViewState) string {
	switch view {
	case ViewDashboard:
		return "/"
	case ViewAgents:
		return "/agents"
	case ViewTeams:
		return "/teams"
	case ViewNotifications:
		return "/notifications"
	default:
		// Help, the palette and the attendance screen share the ponto gate:
		// any signed-in profile.
		return "/ponto"
	}
}

func (m Model) quit() tea.Cmd {
	m.svc.Shell.Stop()
	m.cancelUser()
	m.cancelSt()
	m.cancelEv()
	return tea.Quit
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewDashboard:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
	case ViewAgents:
		m.agentView, cmd = m.agentView.Update(msg)
	case ViewTeams:
		m.teamView, cmd = m.teamView.Update(msg)
	case ViewNotifications:
		m.notifView, cmd = m.notifView.Update(msg)
	case ViewPonto:
		m.pontoView, cmd = m.pontoView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Carregando..."
	}

	title := "Turnos Admin"
	if m.user != nil {
		title = fmt.Sprintf("Turnos Admin · %s", m.user.Name)
	}
	if m.unreadCount > 0 {
		title += " " + theme.UnreadBadgeStyle.Render(fmt.Sprintf("%d", m.unreadCount))
	}

	header := m.layout.RenderHeader(title, m.connStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewAgents:
		return m.agentView.View()
	case ViewTeams:
		return m.teamView.View()
	case ViewNotifications:
		return m.notifView.View()
	case ViewPonto:
		return m.pontoView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// connStatus renders the socket state for the header.
func (m Model) connStatus() string {
	if m.user == nil {
		return ""
	}
	state := m.connState.String()
	return theme.ConnectionStyle(state).
		Background(theme.HeaderStyle.GetBackground()).
		Render(state)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewLogin:
		return "enter entrar | ctrl+c sair"
	case ViewHelp:
		return "? fechar | esc voltar"
	case ViewCommand:
		return "enter executar | esc voltar"
	case ViewNotifications:
		return "enter marcar lida | M marcar todas | C limpar | esc voltar"
	case ViewPonto:
		return "e entrada | s saída | r atualizar | ? ajuda"
	case ViewAgents:
		return "enter abrir | / filtrar | x exportar | ? ajuda"
	case ViewTeams:
		return "t ativar/inativar | r atualizar | / filtrar | ? ajuda"
	default:
		return "q sair | ? ajuda | 1 dashboard | 2 agentes | 3 notificações | 4 ponto | 5 times"
	}
}
