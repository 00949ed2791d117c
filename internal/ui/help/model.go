// Package help renders the full keybinding reference.
package help

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hdops/turnos-admin/internal/keys"
	"github.com/hdops/turnos-admin/internal/theme"
)

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates the help view.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init is a no-op.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update ignores everything; the root model handles closing.
func (m Model) Update(_ tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the grouped keybinding reference.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue)

	parts := []string{titleStyle.Render("Atalhos")}

	sections := []struct {
		name     string
		bindings []key.Binding
	}{
		{"Navegação", []key.Binding{m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Back}},
		{"Telas", []key.Binding{m.keys.Dashboard, m.keys.Agents, m.keys.Notifications, m.keys.Ponto, m.keys.Teams}},
		{"Notificações", []key.Binding{m.keys.MarkAllRead, m.keys.ClearAll}},
		{"Ponto", []key.Binding{m.keys.PunchIn, m.keys.PunchOut}},
		{"Geral", []key.Binding{m.keys.Refresh, m.keys.Export, m.keys.Command, m.keys.Logout, m.keys.Help, m.keys.Quit}},
	}

	for _, section := range sections {
		parts = append(parts, "", sectionStyle.Render(section.name))
		for _, b := range section.bindings {
			h := b.Help()
			parts = append(parts, theme.ListItemStyle.Render(
				fmt.Sprintf("%-8s %s", h.Key, theme.HelpStyle.Render(h.Desc)),
			))
		}
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
