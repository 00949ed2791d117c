package model

// OnlineAgentsCount is the live agent counter shown on the dashboard.
type OnlineAgentsCount struct {
	OnlineCount  int    `json:"onlineCount"`
	TotalAgents  int    `json:"totalAgents"`
	OfflineCount int    `json:"offlineCount"`
	LastUpdated  string `json:"lastUpdated"` // ISO 8601
}

// AgentStatusHistoryItem is one ONLINE/OFFLINE transition in the dashboard
// status history.
type AgentStatusHistoryItem struct {
	ID         string      `json:"id"`
	AgentID    int         `json:"agentId"`
	AgentName  string      `json:"agentName"`
	Status     AgentStatus `json:"status"`
	StatusDate string      `json:"statusDate"`
	Timestamp  string      `json:"timestamp"`
}

// StatusHistoryFilter narrows the dashboard status-history query.
type StatusHistoryFilter struct {
	Page      int
	Size      int
	Status    AgentStatus
	AgentID   *int
	StartDate string
	EndDate   string
}
