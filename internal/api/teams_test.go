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

func TestTeamsListSendsFilterParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/teams", r.URL.Path)
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(Page[model.Team]{
			Content:       []model.Team{{ID: 1, Name: "Plantão Noturno", Status: model.TeamActive}},
			TotalElements: 1,
		})
	}))
	defer srv.Close()

	teams := NewTeamsClient(NewClient(srv.URL, staticToken("tok"), zerolog.Nop()))

	page, size := 0, 10
	got, err := teams.List(context.Background(), TeamListParams{
		Search: "noturno",
		Status: "ACTIVE",
		Page:   &page,
		Size:   &size,
		Sort:   "name",
	})
	require.NoError(t, err)

	require.Len(t, got.Content, 1)
	assert.Equal(t, "Plantão Noturno", got.Content[0].Name)
	assert.Contains(t, gotQuery, "search=noturno")
	assert.Contains(t, gotQuery, "status=ACTIVE")
	assert.Contains(t, gotQuery, "page=0")
	assert.Contains(t, gotQuery, "size=10")
	assert.Contains(t, gotQuery, "sort=name")
}

func TestTeamsUpdateStatusPatches(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]model.TeamStatus
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	teams := NewTeamsClient(NewClient(srv.URL, staticToken("tok"), zerolog.Nop()))
	require.NoError(t, teams.UpdateStatus(context.Background(), 7, model.TeamInactive))

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/teams/7/status", gotPath)
	assert.Equal(t, model.TeamInactive, gotBody["status"])
}

func TestTeamsStatistics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/teams/statistics", r.URL.Path)
		json.NewEncoder(w).Encode(model.TeamStatistics{
			TotalTeams:           4,
			ActiveTeams:          3,
			InactiveTeams:        1,
			TotalAgents:          12,
			AverageAgentsPerTeam: 3,
		})
	}))
	defer srv.Close()

	teams := NewTeamsClient(NewClient(srv.URL, staticToken("tok"), zerolog.Nop()))

	stats, err := teams.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalTeams)
	assert.Equal(t, 3, stats.ActiveTeams)
	assert.InDelta(t, 3.0, stats.AverageAgentsPerTeam, 0.001)
}
