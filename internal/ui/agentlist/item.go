package agentlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/internal/theme"
)

// AgentItem wraps a model.Agent so it can be used in a bubbles/list.
type AgentItem struct {
	Agent model.Agent
}

// FilterValue returns the string used for fuzzy filtering.
func (i AgentItem) FilterValue() string { return i.Agent.Name }

// ItemDelegate renders one agent per line.
type ItemDelegate struct {
	// live maps agent IDs to their last pushed presence status, shared by
	// reference with the agentlist Model.
	live map[int]model.AgentStatus
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single agent line. Live presence pushed over the socket
// overrides the status the REST listing returned.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ai, ok := item.(AgentItem)
	if !ok {
		return
	}

	status := ai.Agent.Status
	if live, ok := d.live[ai.Agent.ID]; ok {
		status = string(live)
	}

	badge := theme.AgentStatusStyle(status).Render(status)
	line := fmt.Sprintf("%s %s  %s", badge, ai.Agent.Name, theme.HelpStyle.Render(ai.Agent.Email))

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
