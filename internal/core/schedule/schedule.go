// Package schedule contains the pure scoring logic for matching agents
// to tasks. This is part of the functional core - no I/O, only pure
// functions over candidate snapshots.
package schedule

import "sort"

// Weights for the combined score: capability match dominates, current
// workload breaks ties between equally capable agents.
const (
	matchWeight    = 0.7
	workloadWeight = 0.3
)

// Candidate is a scheduler's view of one active agent.
type Candidate struct {
	ID           string
	Capabilities []string
	CurrentTasks int
}

// MatchScore returns the fraction of required capabilities the candidate
// holds. An empty requirement list matches every agent with score 1.
func MatchScore(capabilities, required []string) float64 {
	if len(required) == 0 {
		return 1
	}
	have := make(map[string]bool, len(capabilities))
	for _, c := range capabilities {
		have[c] = true
	}
	matches := 0
	for _, r := range required {
		if have[r] {
			matches++
		}
	}
	return float64(matches) / float64(len(required))
}

// WorkloadScore returns 1/(1+n) for an agent with n current tasks, so an
// idle agent scores 1 and the score decays with load.
func WorkloadScore(currentTasks int) float64 {
	return 1 / float64(1+currentTasks)
}

// Score combines capability match and workload for one candidate.
func Score(c Candidate, required []string) float64 {
	return matchWeight*MatchScore(c.Capabilities, required) + workloadWeight*WorkloadScore(c.CurrentTasks)
}

// Pick selects the candidate with the strictly greatest combined score.
// Candidates are evaluated in ascending ID order, and only a strictly
// greater score displaces the current best, so ties resolve to the
// lexicographically smallest agent ID. Returns "" when no candidates.
func Pick(candidates []Candidate, required []string) string {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	best := ""
	bestScore := -1.0
	for _, c := range ordered {
		if s := Score(c, required); s > bestScore {
			bestScore = s
			best = c.ID
		}
	}
	return best
}
