package model

// TeamStatus enumerates the lifecycle states of a team.
type TeamStatus string

const (
	TeamActive   TeamStatus = "ACTIVE"
	TeamInactive TeamStatus = "INACTIVE"
)

// Team is a group of agents sharing a working window.
type Team struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	WorkStartTime string     `json:"workStartTime"` // HH:mm
	WorkEndTime   string     `json:"workEndTime"`   // HH:mm
	Status        TeamStatus `json:"status"`
	Agents        []Agent    `json:"agents"`
	CreatedAt     string     `json:"createdAt"`
	UpdatedAt     string     `json:"updatedAt"`

	// Derived fields the backend computes for display.
	WorkTimeFormatted string  `json:"workTimeFormatted"`
	DurationHours     float64 `json:"durationHours"`
	AgentsCount       int     `json:"agentsCount"`
}

// CreateTeamRequest is the payload for creating a team.
type CreateTeamRequest struct {
	Name          string `json:"name"`
	WorkStartTime string `json:"workStartTime"`
	WorkEndTime   string `json:"workEndTime"`
	AgentIDs      []int  `json:"agentIds"`
}

// UpdateTeamRequest is the payload for updating a team.
type UpdateTeamRequest struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	WorkStartTime string     `json:"workStartTime"`
	WorkEndTime   string     `json:"workEndTime"`
	AgentIDs      []int      `json:"agentIds"`
	Status        TeamStatus `json:"status"`
}

// TeamStatistics is the aggregate served by /teams/statistics.
type TeamStatistics struct {
	TotalTeams           int     `json:"totalTeams"`
	ActiveTeams          int     `json:"activeTeams"`
	InactiveTeams        int     `json:"inactiveTeams"`
	TotalAgents          int     `json:"totalAgents"`
	AverageAgentsPerTeam float64 `json:"averageAgentsPerTeam"`
}
