package models

import "time"

// ReasoningLog is one immutable audit-trail entry recording why an agent
// did what it did. TaskID is a weak reference and is not validated
// against existing tasks.
type ReasoningLog struct {
	ID        string    `json:"id"`
	Agent     string    `json:"agent"`
	TaskID    string    `json:"task_id"`
	Reasoning string    `json:"reasoning"`
	Tags      []string  `json:"tags,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HasAnyTag reports whether the log carries at least one of the tags.
func (l *ReasoningLog) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range l.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the log entry.
func (l *ReasoningLog) Clone() *ReasoningLog {
	c := *l
	c.Tags = append([]string(nil), l.Tags...)
	return &c
}
