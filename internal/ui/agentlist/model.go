// Package agentlist shows the agent roster with live presence badges.
package agentlist

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hdops/turnos-admin/internal/api"
	"github.com/hdops/turnos-admin/internal/keys"
	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/internal/theme"
)

const loadTimeout = 15 * time.Second

// AgentsLoadedMsg is sent when the roster has been fetched.
type AgentsLoadedMsg struct {
	Agents []model.Agent
	Err    error
}

// SelectedAgentMsg is sent when the user opens an agent's detail.
type SelectedAgentMsg struct {
	AgentID int
}

// Model is the agent roster view.
type Model struct {
	list   list.Model
	client *api.AgentsClient
	keys   *keys.KeyMap
	live   map[int]model.AgentStatus
	errMsg string
	width  int
	height int
}

// New creates the agent list view.
func New(client *api.AgentsClient, k *keys.KeyMap, width, height int) Model {
	live := make(map[int]model.AgentStatus)

	l := list.New([]list.Item{}, ItemDelegate{live: live}, width, height-2)
	l.Title = "Agentes"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		client: client,
		keys:   k,
		live:   live,
		width:  width,
		height: height,
	}
}

// Init loads the roster.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load returns a command that fetches the roster.
func (m Model) Load() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		agents, err := client.List(ctx)
		return AgentsLoadedMsg{Agents: agents, Err: err}
	}
}

// ApplyStatus records a pushed presence change so the roster reflects it
// without a refetch.
func (m *Model) ApplyStatus(agentID int, status model.AgentStatus) {
	m.live[agentID] = status
}

// Agents returns the currently loaded roster.
func (m Model) Agents() []model.Agent {
	items := m.list.Items()
	agents := make([]model.Agent, 0, len(items))
	for _, item := range items {
		if ai, ok := item.(AgentItem); ok {
			agents = append(agents, ai.Agent)
		}
	}
	return agents
}

// Update handles messages for the agent list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AgentsLoadedMsg:
		if msg.Err != nil {
			m.errMsg = listErrorMessage(msg.Err)
			return m, nil
		}
		m.errMsg = ""
		items := make([]list.Item, 0, len(msg.Agents))
		for _, a := range msg.Agents {
			items = append(items, AgentItem{Agent: a})
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "r":
			return m, m.Load()
		case "enter":
			if ai, ok := m.list.SelectedItem().(AgentItem); ok {
				agentID := ai.Agent.ID
				return m, func() tea.Msg {
					return SelectedAgentMsg{AgentID: agentID}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the roster.
func (m Model) View() string {
	if m.errMsg != "" {
		return theme.ErrorStyle.Render(m.errMsg) + "\n" + m.list.View()
	}
	return m.list.View()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

func listErrorMessage(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.UserMessage()
	}
	return err.Error()
}
