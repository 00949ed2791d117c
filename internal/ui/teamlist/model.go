// Package teamlist shows the teams with their working windows and lets
// administrators flip a team between active and inactive.
package teamlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hdops/turnos-admin/internal/api"
	"github.com/hdops/turnos-admin/internal/keys"
	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/internal/theme"
)

const (
	loadTimeout = 15 * time.Second
	pageSize    = 50
)

// TeamsLoadedMsg is sent when the team page and statistics have been fetched.
type TeamsLoadedMsg struct {
	Teams []model.Team
	Stats *model.TeamStatistics
	Err   error
}

// StatusToggledMsg is sent after a team status flip round-trips.
type StatusToggledMsg struct {
	TeamID int
	Err    error
}

// Model is the teams view.
type Model struct {
	list   list.Model
	client *api.TeamsClient
	keys   *keys.KeyMap
	stats  *model.TeamStatistics
	errMsg string
	width  int
	height int
}

// New creates the teams view.
func New(client *api.TeamsClient, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-3)
	l.Title = "Times"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		client: client,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init loads the team list.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load returns a command that fetches the first team page plus the
// aggregate counters.
func (m Model) Load() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		size := pageSize
		page, err := client.List(ctx, api.TeamListParams{Size: &size, Sort: "name"})
		if err != nil {
			return TeamsLoadedMsg{Err: err}
		}

		// Statistics are decoration; the list is still useful without them.
		stats, err := client.Statistics(ctx)
		if err != nil {
			stats = nil
		}
		return TeamsLoadedMsg{Teams: page.Content, Stats: stats}
	}
}

// toggleStatus flips the selected team and reports back.
func (m Model) toggleStatus(team model.Team) tea.Cmd {
	client := m.client
	next := model.TeamActive
	if team.Status == model.TeamActive {
		next = model.TeamInactive
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		err := client.UpdateStatus(ctx, team.ID, next)
		return StatusToggledMsg{TeamID: team.ID, Err: err}
	}
}

// Update handles messages for the teams view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TeamsLoadedMsg:
		if msg.Err != nil {
			m.errMsg = teamsErrorMessage(msg.Err)
			return m, nil
		}
		m.errMsg = ""
		m.stats = msg.Stats
		items := make([]list.Item, 0, len(msg.Teams))
		for _, team := range msg.Teams {
			items = append(items, TeamItem{Team: team})
		}
		return m, m.list.SetItems(items)

	case StatusToggledMsg:
		if msg.Err != nil {
			m.errMsg = teamsErrorMessage(msg.Err)
			return m, nil
		}
		return m, m.Load()

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "r":
			return m, m.Load()
		case "t":
			if ti, ok := m.list.SelectedItem().(TeamItem); ok {
				return m, m.toggleStatus(ti.Team)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the team list with the aggregate counter line on top.
func (m Model) View() string {
	out := m.statsLine() + "\n" + m.list.View()
	if m.errMsg != "" {
		out = theme.ErrorStyle.Render(m.errMsg) + "\n" + out
	}
	return out
}

func (m Model) statsLine() string {
	if m.stats == nil {
		return ""
	}
	return theme.HelpStyle.Render(fmt.Sprintf(
		"%d times · %d ativos · %d inativos · %d agentes",
		m.stats.TotalTeams, m.stats.ActiveTeams, m.stats.InactiveTeams, m.stats.TotalAgents,
	))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
}

func teamsErrorMessage(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.UserMessage()
	}
	return err.Error()
}
