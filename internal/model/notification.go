package model

import "time"

// AgentStatus is the presence state carried by status-change events.
type AgentStatus string

const (
	StatusOnline  AgentStatus = "ONLINE"
	StatusOffline AgentStatus = "OFFLINE"
)

// AgentStatusNotification is the payload pushed by the backend on the
// status topic whenever an agent punches in or out.
type AgentStatusNotification struct {
	// AgentID identifies the agent that punched.
	AgentID int `json:"agentId"`

	// AgentName is resolved by the backend for display.
	AgentName string `json:"agentName"`

	// Status is ONLINE after an ENTRADA punch, OFFLINE after a SAIDA.
	Status AgentStatus `json:"status"`

	// Timestamp is the moment of emission in ISO 8601.
	Timestamp string `json:"timestamp"`

	// Message is the pre-formatted human-readable text.
	Message string `json:"message"`
}

// Notification is a received status event with local read bookkeeping.
type Notification struct {
	ID        string      `json:"id" db:"id"`
	AgentID   int         `json:"agent_id" db:"agent_id"`
	AgentName string      `json:"agent_name" db:"agent_name"`
	Status    AgentStatus `json:"status" db:"status"`
	Timestamp string      `json:"timestamp" db:"timestamp"`
	Message   string      `json:"message" db:"message"`
	Read      bool        `json:"read" db:"read"`
	ReadAt    *time.Time  `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
