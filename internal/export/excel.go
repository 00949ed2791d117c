package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names mirror the spreadsheet the admin UI always produced.
const (
	sheetGrid       = "Tabela de Turnos"
	sheetStatistics = "Estatísticas"
	sheetAgents     = "Detalhes Agentes"
)

// WriteXLSX writes the monthly grid workbook: the shift table, a
// statistics sheet, and an agent-detail sheet.
func WriteXLSX(path string, grid TurnoGrid, agentRows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetGrid); err != nil {
		return fmt.Errorf("renaming grid sheet: %w", err)
	}

	if err := writeRows(f, sheetGrid, append([][]string{grid.Header}, grid.Rows...)); err != nil {
		return err
	}

	stats := grid.Statistics()
	if _, err := f.NewSheet(sheetStatistics); err != nil {
		return fmt.Errorf("creating statistics sheet: %w", err)
	}
	statRows := [][]string{
		{"Métrica", "Valor"},
		{"Total de agentes", fmt.Sprintf("%d", stats.TotalAgents)},
		{"Agentes com turno", fmt.Sprintf("%d", stats.AgentsWithShift)},
		{"Total de turnos", fmt.Sprintf("%d", stats.TotalTurnos)},
		{"Dias no mês", fmt.Sprintf("%d", stats.DaysInMonth)},
	}
	if err := writeRows(f, sheetStatistics, statRows); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetAgents); err != nil {
		return fmt.Errorf("creating agents sheet: %w", err)
	}
	if err := writeRows(f, sheetAgents, agentRows); err != nil {
		return err
	}

	// Bold header row on the grid sheet.
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		end, cerr := excelize.CoordinatesToCellName(len(grid.Header), 1)
		if cerr == nil {
			f.SetCellStyle(sheetGrid, "A1", end, style)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("addressing cell %d,%d: %w", c+1, r+1, err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("writing cell %s on %s: %w", cell, sheet, err)
			}
		}
	}
	return nil
}
