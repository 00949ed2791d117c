package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hdops/turnos-admin/internal/model"
)

// TeamListParams narrows and pages the team listing.
type TeamListParams struct {
	Search    string
	Status    string
	Page      *int
	Size      *int
	Sort      string
	Direction string
}

// TeamsClient exposes the /teams endpoints.
type TeamsClient struct {
	c *Client
}

// NewTeamsClient wraps the core client.
func NewTeamsClient(c *Client) *TeamsClient {
	return &TeamsClient{c: c}
}

// List returns a page of teams matching the params.
func (t *TeamsClient) List(ctx context.Context, params TeamListParams) (*Page[model.Team], error) {
	query := url.Values{}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Page != nil {
		query.Set("page", strconv.Itoa(*params.Page))
	}
	if params.Size != nil {
		query.Set("size", strconv.Itoa(*params.Size))
	}
	if params.Sort != "" {
		query.Set("sort", params.Sort)
	}
	if params.Direction != "" {
		query.Set("direction", params.Direction)
	}

	var page Page[model.Team]
	if err := t.c.Get(ctx, "/teams", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns a single team by id.
func (t *TeamsClient) Get(ctx context.Context, id int) (*model.Team, error) {
	var team model.Team
	if err := t.c.Get(ctx, fmt.Sprintf("/teams/%d", id), nil, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// Create registers a new team.
func (t *TeamsClient) Create(ctx context.Context, req model.CreateTeamRequest) (*model.Team, error) {
	var team model.Team
	if err := t.c.Post(ctx, "/teams", req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// Update replaces an existing team.
func (t *TeamsClient) Update(ctx context.Context, req model.UpdateTeamRequest) (*model.Team, error) {
	var team model.Team
	if err := t.c.Put(ctx, fmt.Sprintf("/teams/%d", req.ID), req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// UpdateStatus flips a team between ACTIVE and INACTIVE.
func (t *TeamsClient) UpdateStatus(ctx context.Context, id int, status model.TeamStatus) error {
	body := map[string]model.TeamStatus{"status": status}
	return t.c.Patch(ctx, fmt.Sprintf("/teams/%d/status", id), body, nil)
}

// Delete removes a team.
func (t *TeamsClient) Delete(ctx context.Context, id int) error {
	return t.c.Delete(ctx, fmt.Sprintf("/teams/%d", id))
}

// Statistics returns aggregate team counters.
func (t *TeamsClient) Statistics(ctx context.Context) (*model.TeamStatistics, error) {
	var stats model.TeamStatistics
	if err := t.c.Get(ctx, "/teams/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
