// Package pontoview is the attendance screen: punch in/out, current state,
// and the recent punch history with an offline cache fallback.
package pontoview

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
	"github.com/hdops/turnos-admin/internal/store"
	"github.com/hdops/turnos-admin/internal/theme"
)

const (
	loadTimeout = 15 * time.Second
	historySize = 20
	cacheLimit  = 20
)

// stateLoadedMsg carries the current clock state.
type stateLoadedMsg struct {
	state *model.PontoState
	err   error
}

// historyLoadedMsg carries the punch history. cached is true when the
// entries came from the local cache because the backend was unreachable.
type historyLoadedMsg struct {
	items  []model.PunchItem
	cached bool
	err    error
}

// punchDoneMsg carries the outcome of a punch.
type punchDoneMsg struct {
	resp *model.PunchResponse
	err  error
}

// Model is the attendance view.
type Model struct {
	client *api.PontoClient
	cache  store.Store
	keys   *keys.KeyMap

	agentID   int
	state     *model.PontoState
	history   []model.PunchItem
	cached    bool
	busy      bool
	statusMsg string
	errMsg    string

	width  int
	height int
}

// New creates the attendance view. cache may be nil, disabling the offline
// history fallback.
func New(client *api.PontoClient, cache store.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		client: client,
		cache:  cache,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetAgent points the view at the session's agent, used as the cache key.
func (m *Model) SetAgent(agentID int) {
	m.agentID = agentID
}

// Init loads state and history.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load refetches the clock state and history.
func (m Model) Load() tea.Cmd {
	return tea.Batch(m.loadState(), m.loadHistory())
}

func (m Model) loadState() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		state, err := client.State(ctx, nil)
		return stateLoadedMsg{state: state, err: err}
	}
}

// loadHistory fetches the recent punches and refreshes the local cache.
// When the backend is unreachable the cached entries are shown instead.
func (m Model) loadHistory() tea.Cmd {
	client := m.client
	cache := m.cache
	agentID := m.agentID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		history, err := client.History(ctx, api.HistoryParams{Size: historySize})
		if err == nil {
			if cache != nil && agentID != 0 {
				// Best effort; stale cache is better than no cache.
				_ = cache.UpsertPunches(ctx, agentID, history.Items)
			}
			return historyLoadedMsg{items: history.Items}
		}

		if cache != nil && agentID != 0 {
			items, cacheErr := cache.GetPunches(ctx, agentID, cacheLimit)
			if cacheErr == nil && len(items) > 0 {
				return historyLoadedMsg{items: items, cached: true, err: err}
			}
		}
		return historyLoadedMsg{err: err}
	}
}

func (m Model) punch(action model.PunchType) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		resp, err := client.Punch(ctx, model.PunchRequest{
			Action:          action,
			ClientTimestamp: time.Now().UTC().Format(time.RFC3339),
			ClientTimezone:  time.Now().Format("-07:00"),
			Source:          "terminal",
		}, "")
		return punchDoneMsg{resp: resp, err: err}
	}
}

// Update handles messages for the attendance view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateLoadedMsg:
		if msg.err != nil {
			m.errMsg = pontoErrorMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.state = msg.state
		return m, nil

	case historyLoadedMsg:
		m.cached = msg.cached
		if msg.items != nil {
			m.history = msg.items
		}
		if msg.err != nil && msg.items == nil {
			m.errMsg = pontoErrorMessage(msg.err)
		}
		return m, nil

	case punchDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = pontoErrorMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		if msg.resp.Type == model.PunchIn {
			m.statusMsg = "entrada registrada"
		} else {
			m.statusMsg = "saída registrada"
		}
		return m, m.Load()

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "e":
			m.busy = true
			m.statusMsg = ""
			return m, m.punch(model.PunchIn)
		case "s":
			m.busy = true
			m.statusMsg = ""
			return m, m.punch(model.PunchOut)
		case "r":
			return m, m.Load()
		}
	}
	return m, nil
}

// View renders the clock state and history.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render("Ponto")}

	if m.state != nil {
		if m.state.ClockedIn() {
			line := theme.PunchStyle("ENTRADA").Render("EM SERVIÇO")
			if s := m.state.ActiveSession; s != nil {
				line += theme.HelpStyle.Render(fmt.Sprintf("  desde %s", s.EntryTimestamp))
			}
			parts = append(parts, line)
		} else {
			parts = append(parts, theme.PunchStyle("SAIDA").Render("FORA DE SERVIÇO"))
		}
	}

	if m.busy {
		parts = append(parts, theme.HelpStyle.Render("registrando..."))
	}
	if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	}
	if m.errMsg != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errMsg))
	}

	historyTitle := "Histórico"
	if m.cached {
		historyTitle = "Histórico (cache local, servidor indisponível)"
	}
	parts = append(parts, "", titleStyle.Render(historyTitle))

	if len(m.history) == 0 {
		parts = append(parts, theme.HelpStyle.Render("sem registros"))
	}
	for _, item := range m.history {
		badge := theme.PunchStyle(string(item.Type)).Render(string(item.Type))
		line := fmt.Sprintf("%s %s", item.Timestamp, badge)
		if item.Notes != "" {
			line += "  " + theme.HelpStyle.Render(item.Notes)
		}
		parts = append(parts, theme.ListItemStyle.Render(line))
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

func pontoErrorMessage(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.UserMessage()
	}
	return err.Error()
}
