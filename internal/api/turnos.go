package api

import (
	"context"
	"fmt"

	"github.com/hdops/turnos-admin/internal/model"
)

// TurnosClient exposes the /turno and /tiposTurno endpoints.
type TurnosClient struct {
	c *Client
}

// NewTurnosClient wraps the core client.
func NewTurnosClient(c *Client) *TurnosClient {
	return &TurnosClient{c: c}
}

// Create records a shift assignment (possibly spanning several dates).
func (t *TurnosClient) Create(ctx context.Context, req model.CreateTurnoRequest) error {
	return t.c.Post(ctx, "/turno", req, nil)
}

// CreateBatch records several shift assignments in one call.
func (t *TurnosClient) CreateBatch(ctx context.Context, batch []model.CreateTurnoRequest) error {
	return t.c.Post(ctx, "/turno/inLote", batch, nil)
}

// List returns every shift assignment.
func (t *TurnosClient) List(ctx context.Context) ([]model.Turno, error) {
	var turnos []model.Turno
	if err := t.c.Get(ctx, "/turno", nil, &turnos); err != nil {
		return nil, err
	}
	return turnos, nil
}

// ListByAgent returns the shift assignments of one agent.
func (t *TurnosClient) ListByAgent(ctx context.Context, agentID int) ([]model.Turno, error) {
	var turnos []model.Turno
	if err := t.c.Get(ctx, fmt.Sprintf("/turno/agente/%d", agentID), nil, &turnos); err != nil {
		return nil, err
	}
	return turnos, nil
}

// TipoTurnos returns every shift type.
func (t *TurnosClient) TipoTurnos(ctx context.Context) ([]model.TipoTurno, error) {
	var tipos []model.TipoTurno
	if err := t.c.Get(ctx, "/tiposTurno", nil, &tipos); err != nil {
		return nil, err
	}
	return tipos, nil
}

// TipoTurno returns one shift type by id.
func (t *TurnosClient) TipoTurno(ctx context.Context, id int) (*model.TipoTurno, error) {
	var tipo model.TipoTurno
	if err := t.c.Get(ctx, fmt.Sprintf("/tiposTurno/%d", id), nil, &tipo); err != nil {
		return nil, err
	}
	return &tipo, nil
}

// CreateTipoTurno registers a new shift type.
func (t *TurnosClient) CreateTipoTurno(ctx context.Context, tipo model.TipoTurno) (*model.TipoTurno, error) {
	var created model.TipoTurno
	if err := t.c.Post(ctx, "/tiposTurno", tipo, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTipoTurno replaces an existing shift type.
func (t *TurnosClient) UpdateTipoTurno(ctx context.Context, tipo model.TipoTurno) (*model.TipoTurno, error) {
	var updated model.TipoTurno
	if err := t.c.Put(ctx, fmt.Sprintf("/tiposTurno/%d", tipo.ID), tipo, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTipoTurno removes a shift type.
func (t *TurnosClient) DeleteTipoTurno(ctx context.Context, id int) error {
	return t.c.Delete(ctx, fmt.Sprintf("/tiposTurno/%d", id))
}
