// Package notiflist is the notification panel: the bounded list of status
// events with read/unread handling.
package notiflist

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hdops/turnos-admin/internal/keys"
	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/internal/notify"
	"github.com/hdops/turnos-admin/internal/theme"
)

// Model is the notification panel view.
type Model struct {
	store *notify.Store
	keys  *keys.KeyMap

	items    []model.Notification
	selected int
	width    int
	height   int
}

// New creates the panel bound to the notification store.
func New(s *notify.Store, k *keys.KeyMap, width, height int) Model {
	m := Model{
		store:  s,
		keys:   k,
		width:  width,
		height: height,
	}
	m.Reload()
	return m
}

// Init is a no-op; the panel reads the store synchronously.
func (m Model) Init() tea.Cmd {
	return nil
}

// Reload refetches the list from the store, clamping the cursor.
func (m *Model) Reload() {
	m.items = m.store.List()
	if m.selected >= len(m.items) {
		m.selected = len(m.items) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Update handles messages for the panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		if m.selected < len(m.items)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "enter":
		if m.selected < len(m.items) {
			m.store.MarkRead(m.items[m.selected].ID)
			m.Reload()
		}
	case "M":
		m.store.MarkAllRead()
		m.Reload()
	case "C":
		m.store.ClearAll()
		m.Reload()
	}

	return m, nil
}

// View renders the notification list, newest first.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := fmt.Sprintf("Notificações (%d não lidas)", m.store.UnreadCount())
	parts := []string{titleStyle.Render(title)}

	if len(m.items) == 0 {
		parts = append(parts, theme.HelpStyle.Render("nenhuma notificação"))
	}

	visible := m.height - 4
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}

	for i := start; i < len(m.items) && i < start+visible; i++ {
		n := m.items[i]

		marker := "●"
		if n.Read {
			marker = " "
		}
		badge := theme.AgentStatusStyle(string(n.Status)).Render(string(n.Status))
		line := fmt.Sprintf("%s %s %s %s", marker, n.Timestamp, badge, n.Message)
		if n.Message == "" {
			line = fmt.Sprintf("%s %s %s %s", marker, n.Timestamp, badge, n.AgentName)
		}

		if i == m.selected {
			line = theme.SelectedItemStyle.Render(line)
		} else if n.Read {
			line = theme.ListItemStyle.Foreground(theme.ColorGray).Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		parts = append(parts, line)
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
