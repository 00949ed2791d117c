package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdops/turnos-admin/internal/api"
	"github.com/hdops/turnos-admin/internal/model"
)

func newAPIClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, func() string { return "tok" }, zerolog.Nop())
}

func adminUser() *model.User {
	return &model.User{ID: 1, Name: "Ana", Profile: model.Profile{Name: model.ProfileAdministrator}}
}

func agentUser() *model.User {
	return &model.User{ID: 2, Name: "Bruno", Profile: model.Profile{Name: model.ProfileAgent}}
}

func TestAdminCommandsDeniedForAgents(t *testing.T) {
	m := Model{user: agentUser()}

	for _, cmd := range [][]string{
		{"teams"},
		{"turno", "7", "1", "2026-08-30"},
		{"tipo-adicao", "add", "Hora extra"},
		{"salario", "2026-08"},
	} {
		got, teaCmd, handled := m.executeAdminCommand(cmd)
		assert.True(t, handled, "command %v", cmd)
		assert.Nil(t, teaCmd, "command %v", cmd)
		assert.Equal(t, "acesso negado", got.statusMsg, "command %v", cmd)
	}
}

func TestNonAdminCommandsAreNotDispatchedHere(t *testing.T) {
	m := Model{user: adminUser()}

	_, _, handled := m.executeAdminCommand([]string{"refresh"})
	assert.False(t, handled)
}

func TestCreateTurnoCmdPostsAllDates(t *testing.T) {
	var gotPath string
	var gotBody model.CreateTurnoRequest
	client := newAPIClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))

	msg := createTurnoCmd(api.NewTurnosClient(client), 7, "2", []string{"2026-08-30", "2026-08-31"})()
	done, ok := msg.(adminDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	assert.Equal(t, "/turno", gotPath)
	assert.Equal(t, 7, gotBody.AgentID)
	assert.Equal(t, "2", gotBody.TipoTurnoID)
	assert.Equal(t, []string{"2026-08-30", "2026-08-31"}, gotBody.DataTurno)
}

func TestCreateTurnoBatchCmdPostsOneRequestPerAgent(t *testing.T) {
	var gotPath string
	var gotBatch []model.CreateTurnoRequest
	client := newAPIClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBatch)
		w.WriteHeader(http.StatusCreated)
	}))

	msg := createTurnoBatchCmd(api.NewTurnosClient(client), "1", "2026-08-30", []int{3, 5})()
	done, ok := msg.(adminDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	assert.Equal(t, "/turno/inLote", gotPath)
	require.Len(t, gotBatch, 2)
	assert.Equal(t, 3, gotBatch[0].AgentID)
	assert.Equal(t, 5, gotBatch[1].AgentID)
	assert.Equal(t, []string{"2026-08-30"}, gotBatch[1].DataTurno)
}

func TestTipoAdicaoCommandsRoundTrip(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var calls []call
	client := newAPIClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			json.NewEncoder(w).Encode(model.TipoAdicao{ID: 4, DesTipoAdicao: "Sobreaviso"})
		}
	}))
	salarios := api.NewSalarioClient(client)

	msg := addTipoAdicaoCmd(salarios, "Sobreaviso")()
	require.NoError(t, msg.(adminDoneMsg).err)

	msg = updateTipoAdicaoCmd(salarios, 4, "Sobreaviso noturno")()
	require.NoError(t, msg.(adminDoneMsg).err)

	msg = removeTipoAdicaoCmd(salarios, 4)()
	require.NoError(t, msg.(adminDoneMsg).err)

	require.Len(t, calls, 3)
	assert.Equal(t, call{http.MethodPost, "/tipo-adicao"}, calls[0])
	assert.Equal(t, call{http.MethodPut, "/tipo-adicao/4"}, calls[1])
	assert.Equal(t, call{http.MethodDelete, "/tipo-adicao/4"}, calls[2])
}

func TestListAdicoesCmdSummarises(t *testing.T) {
	client := newAPIClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/add-salario/employee/7", r.URL.Path)
		json.NewEncoder(w).Encode([]model.AdicaoSalario{
			{ID: 1, AgenteID: 7, QtyAdicao: 1.5},
			{ID: 2, AgenteID: 7, QtyAdicao: 2},
		})
	}))

	msg := listAdicoesCmd(api.NewSalarioClient(client), 7)()
	done := msg.(adminDoneMsg)
	require.NoError(t, done.err)
	assert.Contains(t, done.text, "2 adições")
	assert.Contains(t, done.text, "3.50")
}

func TestExportSalariosCmdWritesCSV(t *testing.T) {
	t.Chdir(t.TempDir())

	var gotReq model.SalarioMesRequest
	client := newAPIClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/salarios/mes", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode([]model.SalarioMes{
			{AgentID: 1, NomeAgente: "Ana", Mes: "2026-08", TotalTurnos: 12, ValorTotal: 2400.5},
		})
	}))

	msg := exportSalariosCmd(api.NewAgentsClient(client), "2026-08")()
	done := msg.(adminDoneMsg)
	require.NoError(t, done.err)
	assert.Equal(t, "2026-08", gotReq.Mes)

	data, err := os.ReadFile("salarios_2026_08.csv")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Agente,Mês,Turnos,Total")
	assert.Contains(t, string(data), "Ana,2026-08,12,2400.50")
}

func TestSaveConfigCmdWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := model.LoadConfig(path)
	require.NoError(t, err)

	msg := saveConfigCmd(path, cfg)()
	done := msg.(adminDoneMsg)
	require.NoError(t, done.err)
	assert.Contains(t, done.text, path)

	_, err = os.Stat(path)
	require.NoError(t, err)
}
