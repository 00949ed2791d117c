package model

// Agent is a help-desk agent as returned by list endpoints.
type Agent struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// AgentDetails extends Agent with the fields only present on the
// single-agent endpoints.
type AgentDetails struct {
	Agent
	PhoneNumber   string `json:"phoneNumber"`
	AdmissionDate string `json:"admissionDate"`
	DesInfo       string `json:"desInfo"`
}

// CreateAgentRequest is the payload for registering a new agent.
type CreateAgentRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	AdmissionDate string `json:"admissionDate"`
	DesInfo       string `json:"desInfo"`
	Status        string `json:"status"`
}

// AgentProfile is the aggregate view served by /agents/{id}/profile:
// the agent plus their shift assignments and salary additions.
type AgentProfile struct {
	Agent    AgentDetails    `json:"agent"`
	Turnos   []Turno         `json:"turnos"`
	Adicoes  []AdicaoSalario `json:"adicoes"`
	TeamName string          `json:"teamName"`
}
