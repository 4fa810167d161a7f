package state

import (
	"testing"

	"github.com/noahlilabs/team-claude/internal/models"
)

func TestRegisterBranch(t *testing.T) {
	s := newTestStore(t)

	ok, err := s.RegisterBranch("feature-login", "login work", "agent1")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("RegisterBranch() = false")
	}

	branches, err := s.GetBranches()
	if err != nil {
		t.Fatal(err)
	}
	if len(branches) != 1 {
		t.Fatalf("got %d branches, want 1", len(branches))
	}
	b := branches[0]
	if b.Name != "feature-login" || b.Owner != "agent1" || b.Status != models.BranchStatusActive {
		t.Errorf("branch = %+v", b)
	}
}

func TestRegisterBranchDuplicate(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.RegisterBranch("main", "mainline", "team_lead"); err != nil {
		t.Fatal(err)
	}

	ok, err := s.RegisterBranch("main", "other", "agent1")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("duplicate branch registration succeeded")
	}

	branches, _ := s.GetBranches()
	if branches[0].Owner != "team_lead" {
		t.Error("duplicate registration overwrote the original branch")
	}
}
