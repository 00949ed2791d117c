package api

import (
	"context"
	"fmt"

	"github.com/hdops/turnos-admin/internal/model"
)

// AgentsClient exposes the /agents endpoints.
type AgentsClient struct {
	c *Client
}

// NewAgentsClient wraps the core client.
func NewAgentsClient(c *Client) *AgentsClient {
	return &AgentsClient{c: c}
}

// List returns every registered agent.
func (a *AgentsClient) List(ctx context.Context) ([]model.Agent, error) {
	var agents []model.Agent
	if err := a.c.Get(ctx, "/agents", nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// Get returns a single agent by id.
func (a *AgentsClient) Get(ctx context.Context, id int) (*model.AgentDetails, error) {
	var agent model.AgentDetails
	if err := a.c.Get(ctx, fmt.Sprintf("/agents/%d", id), nil, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

// Create registers a new agent.
func (a *AgentsClient) Create(ctx context.Context, req model.CreateAgentRequest) error {
	return a.c.Post(ctx, "/agents", req, nil)
}

// Update replaces an existing agent.
func (a *AgentsClient) Update(ctx context.Context, agent model.AgentDetails) error {
	return a.c.Put(ctx, fmt.Sprintf("/agents/%d", agent.ID), agent, nil)
}

// Profile returns the aggregate profile of an agent.
func (a *AgentsClient) Profile(ctx context.Context, id int) (*model.AgentProfile, error) {
	var profile model.AgentProfile
	if err := a.c.Get(ctx, fmt.Sprintf("/agents/%d/profile", id), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SalariosMes returns the computed salary lines for a month (YYYY-MM).
func (a *AgentsClient) SalariosMes(ctx context.Context, mes string) ([]model.SalarioMes, error) {
	var rows []model.SalarioMes
	if err := a.c.Post(ctx, "/salarios/mes", model.SalarioMesRequest{Mes: mes}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
