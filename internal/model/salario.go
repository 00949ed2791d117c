package model

// TipoAdicao is a salary-addition type (overtime, bonus, on-call and so on).
type TipoAdicao struct {
	ID            int    `json:"id"`
	DesTipoAdicao string `json:"desTipoAdicao"`
}

// TipoAdicaoRequest is the create/update payload for an addition type.
type TipoAdicaoRequest struct {
	ID            *int   `json:"id,omitempty"`
	DesTipoAdicao string `json:"desTipoAdicao"`
}

// AdicaoSalario is a salary addition granted to an agent for a month.
type AdicaoSalario struct {
	ID         int        `json:"id"`
	TipoAdicao TipoAdicao `json:"tipoAdicao"`
	QtyAdicao  float64    `json:"qtyAdicao"`
	MesAdicao  string     `json:"mesAdicao"` // YYYY-MM
	AgenteID   int        `json:"agenteId"`
	NomeAgente string     `json:"nomeAgente"`
}

// CreateAdicaoRequest is the payload for granting a salary addition.
type CreateAdicaoRequest struct {
	TipoAdicaoID int     `json:"tipoAdicaoId"`
	QtyAdicao    float64 `json:"qtyAdicao"`
	MesAdicao    string  `json:"mesAdicao"`
	AgentID      int     `json:"agentId"`
}

// UpdateAdicaoRequest is the partial-update payload for a salary addition.
type UpdateAdicaoRequest struct {
	TipoAdicaoID *int     `json:"tipoAdicaoId,omitempty"`
	QtyAdicao    *float64 `json:"qtyAdicao,omitempty"`
	MesAdicao    *string  `json:"mesAdicao,omitempty"`
}

// SalarioMesRequest asks for the computed salaries of a month.
type SalarioMesRequest struct {
	Mes string `json:"mes"` // YYYY-MM
}

// SalarioMes is one agent's computed salary line for a month.
type SalarioMes struct {
	AgentID     int     `json:"agentId"`
	NomeAgente  string  `json:"nomeAgente"`
	Mes         string  `json:"mes"`
	TotalTurnos int     `json:"totalTurnos"`
	ValorTotal  float64 `json:"valorTotal"`
}
