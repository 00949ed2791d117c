// Package dashboard shows the live agent counters and the recent
// ONLINE/OFFLINE transition history.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hdops/turnos-admin/internal/api"
	"github.com/hdops/turnos-admin/internal/keys"
	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/internal/theme"
)

const (
	loadTimeout = 15 * time.Second
	historySize = 20
)

// dataLoadedMsg carries the dashboard counters and history page.
type dataLoadedMsg struct {
	count   *model.OnlineAgentsCount
	history []model.AgentStatusHistoryItem
	err     error
}

// Model is the dashboard view.
type Model struct {
	client *api.DashboardClient
	keys   *keys.KeyMap

	count   *model.OnlineAgentsCount
	history []model.AgentStatusHistoryItem
	loading bool
	errMsg  string

	width  int
	height int
}

// New creates the dashboard view.
func New(client *api.DashboardClient, k *keys.KeyMap, width, height int) Model {
	return Model{
		client: client,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init triggers the first load.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load returns a command that fetches counters and history.
func (m Model) Load() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		count, err := client.OnlineCount(ctx)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		page, err := client.StatusHistory(ctx, model.StatusHistoryFilter{Size: historySize})
		if err != nil {
			return dataLoadedMsg{count: count, err: err}
		}
		return dataLoadedMsg{count: count, history: page.Content}
	}
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
		} else {
			m.errMsg = ""
		}
		if msg.count != nil {
			m.count = msg.count
		}
		if msg.history != nil {
			m.history = msg.history
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.Load()
		}
	}
	return m, nil
}

// View renders the counters and the history table.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render("Dashboard")}

	if m.loading {
		parts = append(parts, theme.HelpStyle.Render("carregando..."))
	}
	if m.errMsg != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errMsg))
	}

	if m.count != nil {
		online := theme.AgentStatusStyle("ONLINE").Render(fmt.Sprintf("online %d", m.count.OnlineCount))
		offline := theme.AgentStatusStyle("OFFLINE").Render(fmt.Sprintf("offline %d", m.count.OfflineCount))
		total := fmt.Sprintf("total %d", m.count.TotalAgents)
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, online, "  ", offline, "  ", total))
	}

	if len(m.history) > 0 {
		parts = append(parts, "", titleStyle.Render("Histórico de status"))
		for _, item := range m.history {
			line := fmt.Sprintf("%s %s %s",
				item.Timestamp,
				theme.AgentStatusStyle(string(item.Status)).Render(string(item.Status)),
				item.AgentName,
			)
			parts = append(parts, theme.ListItemStyle.Render(line))
		}
	} else if m.count != nil {
		parts = append(parts, "", theme.HelpStyle.Render("sem transições registradas"))
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

func userMessage(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.UserMessage()
	}
	return err.Error()
}
