package models

import "time"

// Task represents one unit of work inside a branch bucket. The owning
// branch is the bucket key, not a stored field; query results carry it in
// the Branch field which is synthesized at read time.
type Task struct {
	ID                   string          `json:"id"`
	Description          string          `json:"description"`
	AssignedTo           string          `json:"assigned_to,omitempty"`
	Status               string          `json:"status"`
	Priority             string          `json:"priority"`
	RequiredCapabilities []string        `json:"required_capabilities,omitempty"`
	ParentID             string          `json:"parent_id,omitempty"`
	Subtasks             []string        `json:"subtasks,omitempty"`
	StatusHistory        []*StatusUpdate `json:"status_history,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	// Branch is filled on detached copies returned by queries.
	// It is never persisted; the bucket key is authoritative.
	Branch string `json:"branch,omitempty"`
}

// StatusUpdate is one append-only entry in a task's status history.
type StatusUpdate struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Task status constants
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusBlocked    = "blocked"
	TaskStatusCompleted  = "completed"
	TaskStatusFailed     = "failed"
)

// Task priority constants
const (
	TaskPriorityLow      = "low"
	TaskPriorityMedium   = "medium"
	TaskPriorityHigh     = "high"
	TaskPriorityCritical = "critical"
)

// TaskStatuses lists the valid task statuses in display order.
var TaskStatuses = []string{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusBlocked,
	TaskStatusCompleted,
	TaskStatusFailed,
}

// TaskPriorities lists the valid task priorities in ascending order.
var TaskPriorities = []string{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
	TaskPriorityCritical,
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.RequiredCapabilities = append([]string(nil), t.RequiredCapabilities...)
	c.Subtasks = append([]string(nil), t.Subtasks...)
	if t.StatusHistory != nil {
		c.StatusHistory = make([]*StatusUpdate, len(t.StatusHistory))
		for i, h := range t.StatusHistory {
			hc := *h
			c.StatusHistory[i] = &hc
		}
	}
	return &c
}
