package model

// TipoTurno is a shift type with its per-seniority day rates.
type TipoTurno struct {
	ID          int     `json:"id"`
	Descricao   string  `json:"descricao"`
	Cod         string  `json:"cod"`
	ValorJunior float64 `json:"valorJunior"`
	ValorSenior float64 `json:"valorSenior"`
}

// TipoTurnoRef is the abbreviated shift-type reference embedded in a Turno.
type TipoTurnoRef struct {
	ID        string `json:"id"`
	Descricao string `json:"descricao"`
}

// Turno is a scheduled shift assignment for an agent on a given date.
type Turno struct {
	ID         int          `json:"id"`
	TipoTurno  TipoTurnoRef `json:"tipoTurno"`
	NomeAgente string       `json:"nomeAgente"`
	DataTurno  string       `json:"dataTurno"` // YYYY-MM-DD
	AgentID    int          `json:"agentId"`
}

// CreateTurnoRequest creates one or more shift assignments for a single
// agent; DataTurno carries every date the shift applies to.
type CreateTurnoRequest struct {
	TipoTurnoID string   `json:"tipoTurnoId"`
	NomeAgente  string   `json:"nomeAgente"`
	DataTurno   []string `json:"dataTurno"` // YYYY-MM-DD each
	AgentID     int      `json:"agentId"`
}
