package state

import (
	"fmt"
	"testing"

	"github.com/noahlilabs/team-claude/internal/models"
)

func TestRegisterAgent(t *testing.T) {
	s := newTestStore(t)

	ok, err := s.RegisterAgent("a1", "backend", []string{"python", "api"})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("RegisterAgent() = false, want true")
	}

	agents, err := s.GetAgents(AgentFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if len(agents) != 1 {
		t.Fatalf("got %d agents, want 1", len(agents))
	}
	a := agents[0]
	if a.Status != models.AgentStatusActive {
		t.Errorf("status = %q, want active", a.Status)
	}
	if a.TasksCompleted != 0 || len(a.TasksCurrent) != 0 {
		t.Errorf("new agent has task state: completed=%d current=%v", a.TasksCompleted, a.TasksCurrent)
	}
}

func TestRegisterAgentDuplicateRejected(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.RegisterAgent("a1", "backend", []string{"python"}); err != nil {
		t.Fatal(err)
	}

	ok, err := s.RegisterAgent("a1", "frontend", []string{"css"})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("duplicate registration succeeded, want conflict")
	}

	// The original registration is untouched.
	agents, err := s.GetAgents(AgentFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if agents[0].Type != "backend" {
		t.Errorf("type = %q, want backend (no overwrite)", agents[0].Type)
	}
}

func TestRegisterAgentMaxLimit(t *testing.T) {
	path := newTestStore(t).Path()
	s, err := New(path, Options{MaxAgents: 2})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		ok, err := s.RegisterAgent(fmt.Sprintf("a%d", i), "backend", nil)
		if err != nil || !ok {
			t.Fatalf("registration %d failed: ok=%v err=%v", i, ok, err)
		}
	}
	ok, err := s.RegisterAgent("overflow", "backend", nil)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("registration beyond MaxAgents succeeded")
	}
}

func TestUpdateAgentStatus(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.RegisterAgent("a1", "backend", nil); err != nil {
		t.Fatal(err)
	}

	ok, err := s.UpdateAgentStatus("a1", models.AgentStatusInactive)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("UpdateAgentStatus() = false for known agent")
	}

	ok, err = s.UpdateAgentStatus("ghost", models.AgentStatusActive)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("UpdateAgentStatus() = true for unknown agent")
	}
}

func TestGetAgentsFilters(t *testing.T) {
	s := newTestStore(t)
	mustRegister(t, s, "a1", "backend", []string{"python"})
	mustRegister(t, s, "a2", "frontend", []string{"css"})
	mustRegister(t, s, "a3", "backend", []string{"api"})
	if _, err := s.UpdateAgentStatus("a3", models.AgentStatusInactive); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		filters AgentFilters
		wantIDs []string
	}{
		{"no filters", AgentFilters{}, []string{"a1", "a2", "a3"}},
		{"by type", AgentFilters{Type: "backend"}, []string{"a1", "a3"}},
		{"by status", AgentFilters{Status: models.AgentStatusActive}, []string{"a1", "a2"}},
		{"type and status", AgentFilters{Type: "backend", Status: models.AgentStatusActive}, []string{"a1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agents, err := s.GetAgents(tt.filters)
			if err != nil {
				t.Fatal(err)
			}
			var ids []string
			for _, a := range agents {
				ids = append(ids, a.ID)
			}
			if fmt.Sprint(ids) != fmt.Sprint(tt.wantIDs) {
				t.Errorf("got %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestFindBestAgentForTask(t *testing.T) {
	s := newTestStore(t)
	mustRegister(t, s, "a1", "backend", []string{"python", "api"})
	mustRegister(t, s, "a2", "frontend", []string{"css"})

	best, err := s.FindBestAgentForTask([]string{"python"})
	if err != nil {
		t.Fatal(err)
	}
	if best != "a1" {
		t.Errorf("best = %q, want a1", best)
	}
}

func TestFindBestAgentSkipsInactive(t *testing.T) {
	s := newTestStore(t)
	mustRegister(t, s, "a1", "backend", []string{"python"})
	if _, err := s.UpdateAgentStatus("a1", models.AgentStatusError); err != nil {
		t.Fatal(err)
	}

	best, err := s.FindBestAgentForTask([]string{"python"})
	if err != nil {
		t.Fatal(err)
	}
	if best != "" {
		t.Errorf("best = %q, want none with no active agents", best)
	}
}

func TestFindBestAgentDeterministic(t *testing.T) {
	s := newTestStore(t)
	mustRegister(t, s, "a2", "backend", []string{"python"})
	mustRegister(t, s, "a1", "backend", []string{"python"})

	first, err := s.FindBestAgentForTask([]string{"python"})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		got, err := s.FindBestAgentForTask([]string{"python"})
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Fatalf("run %d picked %q, first run picked %q", i, got, first)
		}
	}
	if first != "a1" {
		t.Errorf("tie-break picked %q, want a1", first)
	}
}

func mustRegister(t *testing.T, s *Store, id, agentType string, capabilities []string) {
	t.Helper()
	ok, err := s.RegisterAgent(id, agentType, capabilities)
	if err != nil || !ok {
		t.Fatalf("failed to register %s: ok=%v err=%v", id, ok, err)
	}
}
