package models

import "time"

// Agent is one registered worker process. TasksCurrent is maintained by
// the task operations as a side effect of assignment and completion; it
// is never set directly.
type Agent struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Capabilities   []string  `json:"capabilities,omitempty"`
	Status         string    `json:"status"`
	LastActive     time.Time `json:"last_active"`
	CreatedAt      time.Time `json:"created_at"`
	TasksCompleted int       `json:"tasks_completed"`
	TasksCurrent   []string  `json:"tasks_current"`
}

// Agent status constants
const (
	AgentStatusActive   = "active"
	AgentStatusInactive = "inactive"
	AgentStatusError    = "error"
)

// HasCapability reports whether the agent advertises the capability.
func (a *Agent) HasCapability(capability string) bool {
	for _, c := range a.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the agent.
func (a *Agent) Clone() *Agent {
	c := *a
	c.Capabilities = append([]string(nil), a.Capabilities...)
	c.TasksCurrent = append([]string(nil), a.TasksCurrent...)
	return &c
}
