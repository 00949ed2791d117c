package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdops/turnos-admin/internal/model"
)

func TestCreateAdicaoPostsPayload(t *testing.T) {
	var gotPath string
	var gotBody model.CreateAdicaoRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(model.AdicaoSalario{
			ID:         9,
			TipoAdicao: model.TipoAdicao{ID: 2, DesTipoAdicao: "Hora extra"},
			QtyAdicao:  1.5,
			MesAdicao:  "2026-08",
			AgenteID:   7,
		})
	}))
	defer srv.Close()

	salarios := NewSalarioClient(NewClient(srv.URL, staticToken("tok"), zerolog.Nop()))

	created, err := salarios.CreateAdicao(context.Background(), model.CreateAdicaoRequest{
		TipoAdicaoID: 2,
		QtyAdicao:    1.5,
		MesAdicao:    "2026-08",
		AgentID:      7,
	})
	require.NoError(t, err)

	assert.Equal(t, "/add-salario", gotPath)
	assert.Equal(t, 2, gotBody.TipoAdicaoID)
	assert.Equal(t, "2026-08", gotBody.MesAdicao)
	assert.Equal(t, 9, created.ID)
	assert.Equal(t, "Hora extra", created.TipoAdicao.DesTipoAdicao)
}

func TestAdicoesByEmployee(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/add-salario/employee/7", r.URL.Path)
		json.NewEncoder(w).Encode([]model.AdicaoSalario{
			{ID: 1, AgenteID: 7, MesAdicao: "2026-07"},
			{ID: 2, AgenteID: 7, MesAdicao: "2026-08"},
		})
	}))
	defer srv.Close()

	salarios := NewSalarioClient(NewClient(srv.URL, staticToken("tok"), zerolog.Nop()))

	adicoes, err := salarios.AdicoesByEmployee(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, adicoes, 2)
	assert.Equal(t, "2026-08", adicoes[1].MesAdicao)
}

func TestTipoAdicaoCRUDPaths(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			json.NewEncoder(w).Encode(model.TipoAdicao{ID: 3, DesTipoAdicao: "Sobreaviso"})
		}
	}))
	defer srv.Close()

	salarios := NewSalarioClient(NewClient(srv.URL, staticToken("tok"), zerolog.Nop()))
	ctx := context.Background()

	_, err := salarios.CreateTipoAdicao(ctx, model.TipoAdicaoRequest{DesTipoAdicao: "Sobreaviso"})
	require.NoError(t, err)
	_, err = salarios.UpdateTipoAdicao(ctx, 3, model.TipoAdicaoRequest{DesTipoAdicao: "Sobreaviso"})
	require.NoError(t, err)
	require.NoError(t, salarios.DeleteTipoAdicao(ctx, 3))

	require.Len(t, calls, 3)
	assert.Equal(t, call{http.MethodPost, "/tipo-adicao"}, calls[0])
	assert.Equal(t, call{http.MethodPut, "/tipo-adicao/3"}, calls[1])
	assert.Equal(t, call{http.MethodDelete, "/tipo-adicao/3"}, calls[2])
}
