package state

import (
	"sort"
	"strings"
	"time"

	"github.com/noahlilabs/team-claude/internal/core/ident"
	"github.com/noahlilabs/team-claude/internal/models"
)

// LogReasoning appends an immutable reasoning-trail entry and returns its
// ID. Tags arrive as a comma-delimited string and are stored as a set.
func (s *Store) LogReasoning(agent, taskID, reasoning, tags string) (string, error) {
	var logID string
	err := s.run(func(doc *models.Document) error {
		logID = ident.New(ident.PrefixLog)
		doc.ReasoningLogs[logID] = &models.ReasoningLog{
			ID:        logID,
			Agent:     agent,
			TaskID:    taskID,
			Reasoning: reasoning,
			Tags:      SplitTags(tags),
			Timestamp: time.Now(),
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return logID, nil
}

// ReasoningFilters narrows GetReasoningLogs results. Tags match when the
// log carries any of the requested tags; other fields are equality
// predicates with AND semantics.
type ReasoningFilters struct {
	Agent  string
	TaskID string
	Tags   []string
	Limit  int
}

// DefaultReasoningLimit bounds GetReasoningLogs when no limit is given.
const DefaultReasoningLimit = 10

// GetReasoningLogs returns detached copies of matching logs, newest
// first, truncated to the limit.
func (s *Store) GetReasoningLogs(filters ReasoningFilters) ([]*models.ReasoningLog, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultReasoningLimit
	}

	var result []*models.ReasoningLog
	err := s.run(func(doc *models.Document) error {
		for _, id := range sortedKeys(doc.ReasoningLogs) {
			log := doc.ReasoningLogs[id]
			if filters.Agent != "" && log.Agent != filters.Agent {
				continue
			}
			if filters.TaskID != "" && log.TaskID != filters.TaskID {
				continue
			}
			if len(filters.Tags) > 0 && !log.HasAnyTag(filters.Tags) {
				continue
			}
			result = append(result, log.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// SplitTags parses a comma-delimited tag string, trimming whitespace and
// dropping empty entries.
func SplitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
