// Package models contains the domain types for the team-claude shared
// state document. The Document is the single persisted aggregate; all
// persistence and locking lives in internal/state.
package models

import "fmt"

// SchemaVersion is the current document schema version. Documents written
// by this code carry this version; documents from newer code are rejected.
const SchemaVersion = 1

// Document is the root aggregate persisted as one JSON file. It owns every
// entity collection; callers only ever see detached copies produced inside
// a transaction.
type Document struct {
	Version       int                     `json:"version"`
	Tasks         map[string][]*Task      `json:"tasks"`
	Agents        map[string]*Agent       `json:"agents"`
	Messages      []*Message              `json:"messages"`
	Branches      map[string]*Branch      `json:"branches"`
	PullRequests  map[string]*PullRequest `json:"pull_requests"`
	ReasoningLogs map[string]*ReasoningLog `json:"reasoning_logs"`
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
	return &Document{
		Version:       SchemaVersion,
		Tasks:         make(map[string][]*Task),
		Agents:        make(map[string]*Agent),
		Messages:      []*Message{},
		Branches:      make(map[string]*Branch),
		PullRequests:  make(map[string]*PullRequest),
		ReasoningLogs: make(map[string]*ReasoningLog),
	}
}

// Migrate upgrades a freshly decoded document to the current schema
// version. Version 0 is the legacy shape with possibly absent collections;
// it is upgraded in place. Documents from a newer schema are rejected.
func (d *Document) Migrate() error {
	if d.Version > SchemaVersion {
		return fmt.Errorf("document schema version %d is newer than supported version %d", d.Version, SchemaVersion)
	}
	if d.Tasks == nil {
		d.Tasks = make(map[string][]*Task)
	}
	if d.Agents == nil {
		d.Agents = make(map[string]*Agent)
	}
	if d.Messages == nil {
		d.Messages = []*Message{}
	}
	if d.Branches == nil {
		d.Branches = make(map[string]*Branch)
	}
	if d.PullRequests == nil {
		d.PullRequests = make(map[string]*PullRequest)
	}
	if d.ReasoningLogs == nil {
		d.ReasoningLogs = make(map[string]*ReasoningLog)
	}
	d.Version = SchemaVersion
	return nil
}

// Clone returns a deep copy of the document. Used for the pre-transaction
// rollback snapshot and for handing full state to read-only callers.
func (d *Document) Clone() *Document {
	c := &Document{
		Version:       d.Version,
		Tasks:         make(map[string][]*Task, len(d.Tasks)),
		Agents:        make(map[string]*Agent, len(d.Agents)),
		Messages:      make([]*Message, len(d.Messages)),
		Branches:      make(map[string]*Branch, len(d.Branches)),
		PullRequests:  make(map[string]*PullRequest, len(d.PullRequests)),
		ReasoningLogs: make(map[string]*ReasoningLog, len(d.ReasoningLogs)),
	}
	for branch, tasks := range d.Tasks {
		bucket := make([]*Task, len(tasks))
		for i, t := range tasks {
			bucket[i] = t.Clone()
		}
		c.Tasks[branch] = bucket
	}
	for id, a := range d.Agents {
		c.Agents[id] = a.Clone()
	}
	for i, m := range d.Messages {
		c.Messages[i] = m.Clone()
	}
	for name, b := range d.Branches {
		c.Branches[name] = b.Clone()
	}
	for id, pr := range d.PullRequests {
		c.PullRequests[id] = pr.Clone()
	}
	for id, l := range d.ReasoningLogs {
		c.ReasoningLogs[id] = l.Clone()
	}
	return c
}

// FindTask locates a task by ID across all branch buckets and returns the
// task together with the branch holding it. Returns nil, "" if absent.
func (d *Document) FindTask(taskID string) (*Task, string) {
	for branch, tasks := range d.Tasks {
		for _, t := range tasks {
			if t.ID == taskID {
				return t, branch
			}
		}
	}
	return nil, ""
}
