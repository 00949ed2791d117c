// Package export generates CSV and spreadsheet files from in-memory
// tabular data: the monthly shift grid and agent listings.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hdops/turnos-admin/internal/model"
)

// TurnoGrid is the agents-by-days table for one month.
type TurnoGrid struct {
	Year  int
	Month time.Month
	// Header is "Agente" followed by one column per day of the month.
	Header []string
	// Rows holds one line per agent: name, then the shift code (or empty)
	// for each day.
	Rows [][]string
}

// Filename returns the canonical export name, e.g. tabela_turnos_2024_01.
func (g TurnoGrid) Filename() string {
	return fmt.Sprintf("tabela_turnos_%d_%02d", g.Year, int(g.Month))
}

// BuildTurnoGrid assembles the monthly grid from the raw shift list. Dates
// outside the requested month are ignored. Agents with no shifts still get
// a row so the grid shows the whole roster.
func BuildTurnoGrid(year int, month time.Month, agents []model.Agent, turnos []model.Turno) TurnoGrid {
	days := daysInMonth(year, month)

	header := make([]string, 0, days+1)
	header = append(header, "Agente")
	for d := 1; d <= days; d++ {
		header = append(header, strconv.Itoa(d))
	}

	// day -> code, keyed by agent.
	byAgent := make(map[int]map[int]string)
	prefix := fmt.Sprintf("%d-%02d-", year, int(month))
	for _, t := range turnos {
		if len(t.DataTurno) != len(prefix)+2 || t.DataTurno[:len(prefix)] != prefix {
			continue
		}
		day, err := strconv.Atoi(t.DataTurno[len(prefix):])
		if err != nil || day < 1 || day > days {
			continue
		}
		if byAgent[t.AgentID] == nil {
			byAgent[t.AgentID] = make(map[int]string)
		}
		byAgent[t.AgentID][day] = t.TipoTurno.Descricao
	}

	rows := make([][]string, 0, len(agents))
	for _, a := range agents {
		row := make([]string, days+1)
		row[0] = a.Name
		for d := 1; d <= days; d++ {
			row[d] = byAgent[a.ID][d]
		}
		rows = append(rows, row)
	}

	return TurnoGrid{Year: year, Month: month, Header: header, Rows: rows}
}

// GridStatistics summarises a grid for the statistics sheet.
type GridStatistics struct {
	TotalAgents     int
	TotalTurnos     int
	DaysInMonth     int
	AgentsWithShift int
}

// Statistics computes summary counters over the grid.
func (g TurnoGrid) Statistics() GridStatistics {
	stats := GridStatistics{
		TotalAgents: len(g.Rows),
		DaysInMonth: len(g.Header) - 1,
	}
	for _, row := range g.Rows {
		hasShift := false
		for _, cell := range row[1:] {
			if cell != "" {
				stats.TotalTurnos++
				hasShift = true
			}
		}
		if hasShift {
			stats.AgentsWithShift++
		}
	}
	return stats
}

// AgentRows renders an agent list as header + data rows for export.
func AgentRows(agents []model.Agent) [][]string {
	rows := make([][]string, 0, len(agents)+1)
	rows = append(rows, []string{"ID", "Nome", "Email", "Status"})
	for _, a := range agents {
		rows = append(rows, []string{strconv.Itoa(a.ID), a.Name, a.Email, a.Status})
	}
	return rows
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
