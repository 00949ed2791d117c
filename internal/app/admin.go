package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hdops/turnos-admin/internal/api"
	"github.com/hdops/turnos-admin/internal/auth"
	"github.com/hdops/turnos-admin/internal/export"
	"github.com/hdops/turnos-admin/internal/model"
)

const adminTimeout = 15 * time.Second

// adminDoneMsg carries the outcome of a palette-driven admin operation.
type adminDoneMsg struct {
	text string
	err  error
}

// adminCommandRoutes maps each admin palette command to the route that
// gates it in the authorization table.
var adminCommandRoutes = map[string]string{
	"teams":       "/teams",
	"times":       "/teams",
	"turno":       "/turnos",
	"turno-lote":  "/turnos",
	"tipos-turno": "/turnos",
	"tipo-turno":  "/turnos",
	"tipo-adicao": "/salario",
	"adicao":      "/salario",
	"adicoes":     "/salario",
	"salario":     "/salario",
}

// executeAdminCommand dispatches the management commands of the palette.
// Returns false when the command is not an admin command at all.
func (m Model) executeAdminCommand(fields []string) (Model, tea.Cmd, bool) {
	route, ok := adminCommandRoutes[fields[0]]
	if !ok {
		return m, nil, false
	}
	if !auth.CanAccess(m.user, route) {
		m.statusMsg = "acesso negado"
		return m, nil, true
	}

	switch fields[0] {
	case "teams", "times":
		m.currentView = ViewTeams
		return m, m.teamView.Load(), true

	case "turno":
		// turno <agenteId> <tipoTurnoId> <AAAA-MM-DD>...
		if len(fields) < 4 {
			m.statusMsg = "uso: turno <agente> <tipo> <data>..."
			return m, nil, true
		}
		agentID, err := strconv.Atoi(fields[1])
		if err != nil {
			m.statusMsg = fmt.Sprintf("agente inválido %q", fields[1])
			return m, nil, true
		}
		return m, createTurnoCmd(m.svc.Turnos, agentID, fields[2], fields[3:]), true

	case "turno-lote":
		// turno-lote <tipoTurnoId> <AAAA-MM-DD> <agenteId>...
		if len(fields) < 4 {
			m.statusMsg = "uso: turno-lote <tipo> <data> <agente>..."
			return m, nil, true
		}
		agentIDs, err := parseIDs(fields[3:])
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil, true
		}
		return m, createTurnoBatchCmd(m.svc.Turnos, fields[1], fields[2], agentIDs), true

	case "tipos-turno":
		return m, listTipoTurnosCmd(m.svc.Turnos), true

	case "tipo-turno":
		return m.executeTipoTurnoCommand(fields[1:])

	case "tipo-adicao":
		return m.executeTipoAdicaoCommand(fields[1:])

	case "adicao":
		// adicao <agenteId> <tipoAdicaoId> <qty> <AAAA-MM> | adicao rm <id>
		if len(fields) >= 3 && fields[1] == "rm" {
			id, err := strconv.Atoi(fields[2])
			if err != nil {
				m.statusMsg = fmt.Sprintf("adição inválida %q", fields[2])
				return m, nil, true
			}
			return m, removeAdicaoCmd(m.svc.Salario, id), true
		}
		if len(fields) != 5 {
			m.statusMsg = "uso: adicao <agente> <tipo> <qtd> <AAAA-MM> | adicao rm <id>"
			return m, nil, true
		}
		agentID, errA := strconv.Atoi(fields[1])
		tipoID, errT := strconv.Atoi(fields[2])
		qty, errQ := strconv.ParseFloat(fields[3], 64)
		if errA != nil || errT != nil || errQ != nil {
			m.statusMsg = "uso: adicao <agente> <tipo> <qtd> <AAAA-MM>"
			return m, nil, true
		}
		return m, createAdicaoCmd(m.svc.Salario, agentID, tipoID, qty, fields[4]), true

	case "adicoes":
		// adicoes <agenteId>
		if len(fields) != 2 {
			m.statusMsg = "uso: adicoes <agente>"
			return m, nil, true
		}
		agentID, err := strconv.Atoi(fields[1])
		if err != nil {
			m.statusMsg = fmt.Sprintf("agente inválido %q", fields[1])
			return m, nil, true
		}
		return m, listAdicoesCmd(m.svc.Salario, agentID), true

	case "salario":
		// salario <AAAA-MM>: export the computed salary lines as CSV.
		if len(fields) != 2 {
			m.statusMsg = "uso: salario <AAAA-MM>"
			return m, nil, true
		}
		if _, err := time.Parse("2006-01", fields[1]); err != nil {
			m.statusMsg = fmt.Sprintf("mês inválido %q, use AAAA-MM", fields[1])
			return m, nil, true
		}
		return m, exportSalariosCmd(m.svc.Agents, fields[1]), true
	}

	return m, nil, false
}

func (m Model) executeTipoTurnoCommand(args []string) (Model, tea.Cmd, bool) {
	usage := "uso: tipo-turno add <cod> <desc> <valorJr> <valorSr> | set <id> ... | rm <id>"
	if len(args) == 0 {
		m.statusMsg = usage
		return m, nil, true
	}

	switch args[0] {
	case "add":
		if len(args) != 5 {
			m.statusMsg = usage
			return m, nil, true
		}
		jr, errJ := strconv.ParseFloat(args[3], 64)
		sr, errS := strconv.ParseFloat(args[4], 64)
		if errJ != nil || errS != nil {
			m.statusMsg = usage
			return m, nil, true
		}
		tipo := model.TipoTurno{Cod: args[1], Descricao: args[2], ValorJunior: jr, ValorSenior: sr}
		return m, addTipoTurnoCmd(m.svc.Turnos, tipo), true

	case "set":
		if len(args) != 6 {
			m.statusMsg = usage
			return m, nil, true
		}
		id, errI := strconv.Atoi(args[1])
		jr, errJ := strconv.ParseFloat(args[4], 64)
		sr, errS := strconv.ParseFloat(args[5], 64)
		if errI != nil || errJ != nil || errS != nil {
			m.statusMsg = usage
			return m, nil, true
		}
		tipo := model.TipoTurno{ID: id, Cod: args[2], Descricao: args[3], ValorJunior: jr, ValorSenior: sr}
		return m, updateTipoTurnoCmd(m.svc.Turnos, tipo), true

	case "rm":
		if len(args) != 2 {
			m.statusMsg = usage
			return m, nil, true
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			m.statusMsg = usage
			return m, nil, true
		}
		return m, removeTipoTurnoCmd(m.svc.Turnos, id), true
	}

	m.statusMsg = usage
	return m, nil, true
}

func (m Model) executeTipoAdicaoCommand(args []string) (Model, tea.Cmd, bool) {
	usage := "uso: tipo-adicao [add <desc> | set <id> <desc> | rm <id>]"
	if len(args) == 0 {
		return m, listTipoAdicoesCmd(m.svc.Salario), true
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			m.statusMsg = usage
			return m, nil, true
		}
		desc := strings.Join(args[1:], " ")
		return m, addTipoAdicaoCmd(m.svc.Salario, desc), true

	case "set":
		if len(args) < 3 {
			m.statusMsg = usage
			return m, nil, true
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			m.statusMsg = usage
			return m, nil, true
		}
		desc := strings.Join(args[2:], " ")
		return m, updateTipoAdicaoCmd(m.svc.Salario, id, desc), true

	case "rm":
		if len(args) != 2 {
			m.statusMsg = usage
			return m, nil, true
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			m.statusMsg = usage
			return m, nil, true
		}
		return m, removeTipoAdicaoCmd(m.svc.Salario, id), true
	}

	m.statusMsg = usage
	return m, nil, true
}

func createTurnoCmd(client *api.TurnosClient, agentID int, tipoID string, dates []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		req := model.CreateTurnoRequest{TipoTurnoID: tipoID, AgentID: agentID, DataTurno: dates}
		if err := client.Create(ctx, req); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{text: fmt.Sprintf("turno registrado: agente %d, %d dia(s)", agentID, len(dates))}
	}
}

func createTurnoBatchCmd(client *api.TurnosClient, tipoID, date string, agentIDs []int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		batch := make([]model.CreateTurnoRequest, 0, len(agentIDs))
		for _, id := range agentIDs {
			batch = append(batch, model.CreateTurnoRequest{
				TipoTurnoID: tipoID,
				AgentID:     id,
				DataTurno:   []string{date},
			})
		}
		if err := client.CreateBatch(ctx, batch); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{text: fmt.Sprintf("lote registrado: %d turnos em %s", len(batch), date)}
	}
}

func listTipoTurnosCmd(client *api.TurnosClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		tipos, err := client.TipoTurnos(ctx)
		if err != nil {
			return adminDoneMsg{err: err}
		}
		parts := make([]string, 0, len(tipos))
		for _, tipo := range tipos {
			parts = append(parts, fmt.Sprintf("%d:%s %s", tipo.ID, tipo.Cod, tipo.Descricao))
		}
		return adminDoneMsg{text: "tipos de turno: " + strings.Join(parts, " | ")}
	}
}

func addTipoTurnoCmd(client *api.TurnosClient, tipo model.TipoTurno) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		created, err := client.CreateTipoTurno(ctx, tipo)
		if err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{text: fmt.Sprintf("tipo de turno %d (%s) criado", created.ID, created.Cod)}
	}
}

func updateTipoTurnoCmd(client *api.TurnosClient, tipo model.TipoTurno) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		updated, err := client.UpdateTipoTurno(ctx, tipo)
		if err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{text: fmt.Sprintf("tipo de turno %d atualizado", updated.ID)}
	}
}

func removeTipoTurnoCmd(client *api.TurnosClient, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		if err := client.DeleteTipoTurno(ctx, id); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{text: fmt.Sprintf("tipo de turno %d removido", id)}
	}
}

func listTipoAdicoesCmd(client *api.SalarioClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		tipos, err := client.TipoAdicoes(ctx)
		if err != nil {
			return adminDoneMsg{err: err}
		}
		parts := make([]string, 0, len(tipos))
		for _, tipo := range tipos {
			parts = append(parts, fmt.Sprintf("%d:%s", tipo.ID, tipo.DesTipoAdicao))
		}
		return adminDoneMsg{text: "tipos de adição: " + strings.Join(parts, " | ")}
	}
}

func addTipoAdicaoCmd(client *api.SalarioClient, desc string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		created, err := client.CreateTipoAdicao(ctx, model.TipoAdicaoRequest{DesTipoAdicao: desc})
		if err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{text: fmt.Sprintf("tipo de adição %d criado", created.ID)}
	}
}

func updateTipoAdicaoCmd(client *api.SalarioClient, id int, desc string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		updated, err := client.UpdateTipoAdicao(ctx, id, model.TipoAdicaoRequest{DesTipoAdicao: desc})
		if err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{text: fmt.Sprintf("tipo de adição %d atualizado", updated.ID)}
	}
}

func removeTipoAdicaoCmd(client *api.SalarioClient, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		if err := client.DeleteTipoAdicao(ctx, id); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{text: fmt.Sprintf("tipo de adição %d removido", id)}
	}
}

func createAdicaoCmd(client *api.SalarioClient, agentID, tipoID int, qty float64, mes string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		created, err := client.CreateAdicao(ctx, model.CreateAdicaoRequest{
			TipoAdicaoID: tipoID,
			QtyAdicao:    qty,
			MesAdicao:    mes,
			AgentID:      agentID,
		})
		if err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{text: fmt.Sprintf("adição %d registrada para agente %d em %s", created.ID, agentID, mes)}
	}
}

func removeAdicaoCmd(client *api.SalarioClient, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		if err := client.DeleteAdicao(ctx, id); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{text: fmt.Sprintf("adição %d removida", id)}
	}
}

func listAdicoesCmd(client *api.SalarioClient, agentID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		adicoes, err := client.AdicoesByEmployee(ctx, agentID)
		if err != nil {
			return adminDoneMsg{err: err}
		}
		var total float64
		for _, a := range adicoes {
			total += a.QtyAdicao
		}
		return adminDoneMsg{text: fmt.Sprintf("agente %d: %d adições, total %.2f", agentID, len(adicoes), total)}
	}
}

// exportSalariosCmd writes the computed salary lines of a month to a CSV
// file next to the binary.
func exportSalariosCmd(client *api.AgentsClient, mes string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
		defer cancel()

		rows, err := client.SalariosMes(ctx, mes)
		if err != nil {
			return adminDoneMsg{err: err}
		}

		header := []string{"Agente", "Mês", "Turnos", "Total"}
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{
				row.NomeAgente,
				row.Mes,
				strconv.Itoa(row.TotalTurnos),
				strconv.FormatFloat(row.ValorTotal, 'f', 2, 64),
			})
		}

		path := "salarios_" + strings.ReplaceAll(mes, "-", "_") + ".csv"
		if err := export.WriteCSVFile(path, header, records); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{text: "exportado " + path}
	}
}

func saveConfigCmd(path string, cfg *model.AppConfig) tea.Cmd {
	return func() tea.Msg {
		if err := model.SaveConfig(path, cfg); err != nil {
			return adminDoneMsg{err: err}
		}
		return adminDoneMsg{text: "configuração gravada em " + path}
	}
}

func parseIDs(fields []string) ([]int, error) {
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("agente inválido %q", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func adminErrorMessage(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.UserMessage()
	}
	return err.Error()
}
