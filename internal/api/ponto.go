package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/hdops/turnos-admin/internal/model"
)

// HistoryParams narrows and pages the punch history query.
type HistoryParams struct {
	AgentID *int
	From    string
	To      string
	Page    int
	Size    int
	Sort    string
}

// PontoClient exposes the /ponto attendance endpoints.
type PontoClient struct {
	c *Client
}

// NewPontoClient wraps the core client.
func NewPontoClient(c *Client) *PontoClient {
	return &PontoClient{c: c}
}

// Punch records a clock-in or clock-out. When idempotencyKey is empty a
// fresh one is generated, so an automatic retry of the same call cannot
// double-punch.
func (p *PontoClient) Punch(ctx context.Context, req model.PunchRequest, idempotencyKey string) (*model.PunchResponse, error) {
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}
	headers := map[string]string{"Idempotency-Key": idempotencyKey}

	var resp model.PunchResponse
	if err := p.c.PostWithHeaders(ctx, "/ponto/punch", headers, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// State returns the current clocked-in/out state. agentID is only honoured
// for administrators.
func (p *PontoClient) State(ctx context.Context, agentID *int) (*model.PontoState, error) {
	query := url.Values{}
	if agentID != nil {
		query.Set("agentId", strconv.Itoa(*agentID))
	}

	var state model.PontoState
	if err := p.c.Get(ctx, "/ponto/state", query, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// History returns a page of punches.
func (p *PontoClient) History(ctx context.Context, params HistoryParams) (*model.PunchHistory, error) {
	query := url.Values{}
	if params.AgentID != nil {
		query.Set("agentId", strconv.Itoa(*params.AgentID))
	}
	if params.From != "" {
		query.Set("from", params.From)
	}
	if params.To != "" {
		query.Set("to", params.To)
	}
	query.Set("page", strconv.Itoa(params.Page))
	size := params.Size
	if size == 0 {
		size = 20
	}
	query.Set("size", strconv.Itoa(size))
	sort := params.Sort
	if sort == "" {
		sort = "timestampServer,desc"
	}
	query.Set("sort", sort)

	var history model.PunchHistory
	if err := p.c.Get(ctx, "/ponto/history", query, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// LastStatus returns the direction of the most recent punch.
func (p *PontoClient) LastStatus(ctx context.Context, agentID *int) (*model.LastStatus, error) {
	query := url.Values{}
	if agentID != nil {
		query.Set("agentId", strconv.Itoa(*agentID))
	}

	var last model.LastStatus
	if err := p.c.Get(ctx, "/ponto/last-status", query, &last); err != nil {
		return nil, err
	}
	return &last, nil
}
