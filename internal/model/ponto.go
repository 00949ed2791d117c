package model

// PunchType is the direction of an attendance punch.
type PunchType string

const (
	PunchIn  PunchType = "ENTRADA"
	PunchOut PunchType = "SAIDA"
)

// Location is an optional geographic position attached to a punch.
type Location struct {
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

// PunchRequest records a clock-in or clock-out. AgentID may only be set by
// administrators punching on behalf of an agent.
type PunchRequest struct {
	Action          PunchType `json:"action"`
	ClientTimestamp string    `json:"clientTimestamp,omitempty"`
	ClientTimezone  string    `json:"clientTimezone,omitempty"`
	AgentID         *int      `json:"agentId,omitempty"`
	Source          string    `json:"source,omitempty"`
	DeviceID        string    `json:"deviceId,omitempty"`
	Location        *Location `json:"location,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

// PunchSession describes the open work session started by the last ENTRADA.
type PunchSession struct {
	EntryID         string `json:"entryId"`
	EntryTimestamp  string `json:"entryTimestamp"` // ISO UTC
	DurationSeconds int64  `json:"durationSeconds"`
}

// PunchResponse is the backend's acknowledgement of a punch.
type PunchResponse struct {
	ID                 string        `json:"id"`
	AgentID            int           `json:"agentId"`
	Type               PunchType     `json:"type"`
	TimestampServer    string        `json:"timestampServer"`
	TimestampEffective string        `json:"timestampEffective"`
	Status             string        `json:"status"`
	IsClockedIn        bool          `json:"isClockedIn"`
	Session            *PunchSession `json:"session,omitempty"`
	ServerTime         string        `json:"serverTime"`
}

// PunchItem is one history entry.
type PunchItem struct {
	ID        string    `json:"id"`
	Type      PunchType `json:"type"`
	Timestamp string    `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// PontoState is the current clocked-in/out state of an agent. Some backend
// versions name the flag clockedIn instead of isClockedIn, so both are
// decoded and ClockedIn() reconciles them.
type PontoState struct {
	AgentID       int           `json:"agentId"`
	ClockedInAlt  *bool         `json:"clockedIn,omitempty"`
	IsClockedIn   *bool         `json:"isClockedIn,omitempty"`
	LastPunch     *PunchItem    `json:"lastPunch,omitempty"`
	ActiveSession *PunchSession `json:"activeSession,omitempty"`
	ServerTime    string        `json:"serverTime"`
}

// ClockedIn reports whether the agent is currently clocked in, whichever
// field the backend populated.
func (s PontoState) ClockedIn() bool {
	if s.IsClockedIn != nil {
		return *s.IsClockedIn
	}
	if s.ClockedInAlt != nil {
		return *s.ClockedInAlt
	}
	return false
}

// PunchHistory is a page of punch entries.
type PunchHistory struct {
	Items   []PunchItem `json:"items"`
	Page    int         `json:"page"`
	Size    int         `json:"size"`
	Total   int         `json:"total"`
	HasNext bool        `json:"hasNext"`
}

// LastStatus is the most recent punch direction of an agent.
type LastStatus struct {
	AgentID    int        `json:"agentId"`
	LastType   *PunchType `json:"lastType"`
	ServerTime string     `json:"serverTime"`
}
