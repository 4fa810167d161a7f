package state

import (
	"time"

	"github.com/noahlilabs/team-claude/internal/core/schedule"
	"github.com/noahlilabs/team-claude/internal/models"
)

// RegisterAgent registers a new agent with its capability set. Returns
// false when the configured agent limit is reached or when an agent with
// the same ID already exists.
func (s *Store) RegisterAgent(id, agentType string, capabilities []string) (bool, error) {
	registered := false
	err := s.run(func(doc *models.Document) error {
		if len(doc.Agents) >= s.opts.MaxAgents {
			s.log.Warn("maximum number of agents reached", "max", s.opts.MaxAgents)
			return nil
		}
		if _, exists := doc.Agents[id]; exists {
			s.log.Warn("agent already registered", "agent", id)
			return nil
		}
		now := time.Now()
		doc.Agents[id] = &models.Agent{
			ID:           id,
			Type:         agentType,
			Capabilities: append([]string(nil), capabilities...),
			Status:       models.AgentStatusActive,
			LastActive:   now,
			CreatedAt:    now,
			TasksCurrent: []string{},
		}
		registered = true
		return nil
	})
	return registered, err
}

// UpdateAgentStatus sets an agent's status and refreshes its last-active
// timestamp. Returns false when the agent is unknown.
func (s *Store) UpdateAgentStatus(id, status string) (bool, error) {
	updated := false
	err := s.run(func(doc *models.Document) error {
		agent, ok := doc.Agents[id]
		if !ok {
			return nil
		}
		agent.Status = status
		agent.LastActive = time.Now()
		updated = true
		return nil
	})
	return updated, err
}

// AgentFilters narrows GetAgents results. Empty fields match everything;
// set fields combine with AND semantics.
type AgentFilters struct {
	Status string
	Type   string
}

// GetAgents returns detached copies of all agents matching the filters,
// sorted by agent ID.
func (s *Store) GetAgents(filters AgentFilters) ([]*models.Agent, error) {
	var result []*models.Agent
	err := s.run(func(doc *models.Document) error {
		for _, id := range sortedKeys(doc.Agents) {
			agent := doc.Agents[id]
			if filters.Status != "" && agent.Status != filters.Status {
				continue
			}
			if filters.Type != "" && agent.Type != filters.Type {
				continue
			}
			result = append(result, agent.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindBestAgentForTask scores every active agent against the required
// capabilities and current workload and returns the winner's ID, or ""
// when no active agent exists. Ties resolve to the lexicographically
// smallest agent ID.
func (s *Store) FindBestAgentForTask(requiredCapabilities []string) (string, error) {
	best := ""
	err := s.run(func(doc *models.Document) error {
		candidates := make([]schedule.Candidate, 0, len(doc.Agents))
		for id, agent := range doc.Agents {
			if agent.Status != models.AgentStatusActive {
				continue
			}
			candidates = append(candidates, schedule.Candidate{
				ID:           id,
				Capabilities: agent.Capabilities,
				CurrentTasks: len(agent.TasksCurrent),
			})
		}
		best = schedule.Pick(candidates, requiredCapabilities)
		return nil
	})
	return best, err
}
