package api

import (
	"context"
	"fmt"

	"github.com/hdops/turnos-admin/internal/model"
)

// SalarioClient exposes the /tipo-adicao and /add-salario endpoints.
type SalarioClient struct {
	c *Client
}

// NewSalarioClient wraps the core client.
func NewSalarioClient(c *Client) *SalarioClient {
	return &SalarioClient{c: c}
}

// TipoAdicoes returns every addition type.
func (s *SalarioClient) TipoAdicoes(ctx context.Context) ([]model.TipoAdicao, error) {
	var tipos []model.TipoAdicao
	if err := s.c.Get(ctx, "/tipo-adicao", nil, &tipos); err != nil {
		return nil, err
	}
	return tipos, nil
}

// TipoAdicao returns one addition type by id.
func (s *SalarioClient) TipoAdicao(ctx context.Context, id int) (*model.TipoAdicao, error) {
	var tipo model.TipoAdicao
	if err := s.c.Get(ctx, fmt.Sprintf("/tipo-adicao/%d", id), nil, &tipo); err != nil {
		return nil, err
	}
	return &tipo, nil
}

// CreateTipoAdicao registers a new addition type.
func (s *SalarioClient) CreateTipoAdicao(ctx context.Context, req model.TipoAdicaoRequest) (*model.TipoAdicao, error) {
	var created model.TipoAdicao
	if err := s.c.Post(ctx, "/tipo-adicao", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTipoAdicao replaces an existing addition type.
func (s *SalarioClient) UpdateTipoAdicao(ctx context.Context, id int, req model.TipoAdicaoRequest) (*model.TipoAdicao, error) {
	var updated model.TipoAdicao
	if err := s.c.Put(ctx, fmt.Sprintf("/tipo-adicao/%d", id), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTipoAdicao removes an addition type.
func (s *SalarioClient) DeleteTipoAdicao(ctx context.Context, id int) error {
	return s.c.Delete(ctx, fmt.Sprintf("/tipo-adicao/%d", id))
}

// Adicoes returns every salary addition.
func (s *SalarioClient) Adicoes(ctx context.Context) ([]model.AdicaoSalario, error) {
	var adicoes []model.AdicaoSalario
	if err := s.c.Get(ctx, "/add-salario", nil, &adicoes); err != nil {
		return nil, err
	}
	return adicoes, nil
}

// Adicao returns one salary addition by id.
func (s *SalarioClient) Adicao(ctx context.Context, id int) (*model.AdicaoSalario, error) {
	var adicao model.AdicaoSalario
	if err := s.c.Get(ctx, fmt.Sprintf("/add-salario/%d", id), nil, &adicao); err != nil {
		return nil, err
	}
	return &adicao, nil
}

// AdicoesByEmployee returns the salary additions of one agent.
func (s *SalarioClient) AdicoesByEmployee(ctx context.Context, employeeID int) ([]model.AdicaoSalario, error) {
	var adicoes []model.AdicaoSalario
	if err := s.c.Get(ctx, fmt.Sprintf("/add-salario/employee/%d", employeeID), nil, &adicoes); err != nil {
		return nil, err
	}
	return adicoes, nil
}

// CreateAdicao grants a salary addition.
func (s *SalarioClient) CreateAdicao(ctx context.Context, req model.CreateAdicaoRequest) (*model.AdicaoSalario, error) {
	var created model.AdicaoSalario
	if err := s.c.Post(ctx, "/add-salario", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAdicao partially updates a salary addition.
func (s *SalarioClient) UpdateAdicao(ctx context.Context, id int, req model.UpdateAdicaoRequest) (*model.AdicaoSalario, error) {
	var updated model.AdicaoSalario
	if err := s.c.Put(ctx, fmt.Sprintf("/add-salario/%d", id), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAdicao removes a salary addition.
func (s *SalarioClient) DeleteAdicao(ctx context.Context, id int) error {
	return s.c.Delete(ctx, fmt.Sprintf("/add-salario/%d", id))
}
