package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hdops/turnos-admin/internal/auth"
	"github.com/hdops/turnos-admin/internal/export"
)

const exportTimeout = 30 * time.Second

// exportDoneMsg carries the result of a monthly export.
type exportDoneMsg struct {
	path string
	err  error
}

// exportCurrentMonth exports the grid for the month in progress.
func (m Model) exportCurrentMonth() tea.Cmd {
	now := time.Now()
	return m.exportMonth(now.Year(), now.Month())
}

// exportMonth fetches the roster and the shift list, builds the monthly
// grid, and writes both the CSV and the spreadsheet next to the binary.
func (m Model) exportMonth(year int, month time.Month) tea.Cmd {
	agentsClient := m.svc.Agents
	turnosClient := m.svc.Turnos
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		agents, err := agentsClient.List(ctx)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		turnos, err := turnosClient.List(ctx)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		grid := export.BuildTurnoGrid(year, month, agents, turnos)
		base := grid.Filename()

		if err := export.WriteCSVFile(base+".csv", grid.Header, grid.Rows); err != nil {
			return exportDoneMsg{err: err}
		}
		if err := export.WriteXLSX(base+".xlsx", grid, export.AgentRows(agents)); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: base + ".xlsx"}
	}
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return m, nil
	}

	switch fields[0] {
	case "quit", "q":
		return m, m.quit()

	case "refresh", "r":
		return m.updateActiveView(refreshRequested())

	case "logout":
		m.svc.Auth.Logout()
		return m, nil

	case "export":
		if !auth.CanAccess(m.user, "/export") {
			m.statusMsg = "apenas administradores exportam a tabela"
			return m, nil
		}
		if len(fields) == 1 {
			return m, m.exportCurrentMonth()
		}
		t, err := time.Parse("2006-01", fields[1])
		if err != nil {
			m.statusMsg = fmt.Sprintf("mês inválido %q, use AAAA-MM", fields[1])
			return m, nil
		}
		return m, m.exportMonth(t.Year(), t.Month())

	case "dashboard":
		if m.canOpen(ViewDashboard) {
			m.currentView = ViewDashboard
			return m, m.dashboardView.Load()
		}
	case "agents", "agentes":
		if m.canOpen(ViewAgents) {
			m.currentView = ViewAgents
			return m, m.agentView.Load()
		}
	case "ponto":
		m.currentView = ViewPonto
		return m, m.pontoView.Load()

	case "config":
		if len(fields) == 2 && fields[1] == "save" {
			return m, saveConfigCmd(m.svc.ConfigPath, m.svc.Config)
		}
		m.statusMsg = "uso: config save"
		return m, nil
	}

	if mdl, c, handled := m.executeAdminCommand(fields); handled {
		return mdl, c
	}

	m.statusMsg = fmt.Sprintf("comando desconhecido %q", cmd)
	return m, nil
}

// refreshRequested synthesizes the refresh keystroke for the active view.
func refreshRequested() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
}
