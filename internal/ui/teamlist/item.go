package teamlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/internal/theme"
)

// TeamItem wraps a model.Team so it can be used in a bubbles/list.
type TeamItem struct {
	Team model.Team
}

// FilterValue returns the string used for fuzzy filtering.
func (i TeamItem) FilterValue() string { return i.Team.Name }

// ItemDelegate renders one team per line.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single team line with its working window and headcount.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TeamItem)
	if !ok {
		return
	}

	status := string(ti.Team.Status)
	badge := theme.TeamStatusStyle(status).Render(status)
	window := fmt.Sprintf("%s-%s", ti.Team.WorkStartTime, ti.Team.WorkEndTime)
	line := fmt.Sprintf("%s %s  %s", badge, ti.Team.Name,
		theme.HelpStyle.Render(fmt.Sprintf("%s · %d agentes", window, ti.Team.AgentsCount)))

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
