package state

import (
	"testing"

	"github.com/noahlilabs/team-claude/internal/models"
)

func mustCreatePR(t *testing.T, s *Store, id string) {
	t.Helper()
	ok, err := s.CreatePullRequest(id, "add login", "implements login flow", "feature-login", "master", "agent1")
	if err != nil || !ok {
		t.Fatalf("CreatePullRequest(%s): ok=%v err=%v", id, ok, err)
	}
}

func TestCreatePullRequest(t *testing.T) {
	s := newTestStore(t)
	mustCreatePR(t, s, "pr-1")

	prs, err := s.GetPullRequests("")
	if err != nil {
		t.Fatal(err)
	}
	if len(prs) != 1 {
		t.Fatalf("got %d PRs, want 1", len(prs))
	}
	pr := prs[0]
	if pr.Status != models.PRStatusOpen {
		t.Errorf("status = %q, want open", pr.Status)
	}
	if len(pr.Comments) != 0 || len(pr.Approvals) != 0 {
		t.Error("new PR has non-empty comments or approvals")
	}
}

func TestCreatePullRequestDuplicate(t *testing.T) {
	s := newTestStore(t)
	mustCreatePR(t, s, "pr-1")

	ok, err := s.CreatePullRequest("pr-1", "other", "", "a", "b", "agent2")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("duplicate PR creation succeeded")
	}
}

func TestUpdatePullRequest(t *testing.T) {
	s := newTestStore(t)
	mustCreatePR(t, s, "pr-1")

	ok, err := s.UpdatePullRequest("pr-1", PRUpdate{
		Status:         models.PRStatusMerged,
		CommentAuthor:  "agent2",
		CommentContent: "looks good",
		ApprovalAuthor: "agent2",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("UpdatePullRequest() = false")
	}

	prs, _ := s.GetPullRequests("")
	pr := prs[0]
	if pr.Status != models.PRStatusMerged {
		t.Errorf("status = %q, want merged", pr.Status)
	}
	if len(pr.Comments) != 1 || pr.Comments[0].Content != "looks good" {
		t.Errorf("comments = %+v", pr.Comments)
	}
	if len(pr.Approvals) != 1 || pr.Approvals[0].Author != "agent2" {
		t.Errorf("approvals = %+v", pr.Approvals)
	}
}

func TestUpdatePullRequestApprovalDedup(t *testing.T) {
	s := newTestStore(t)
	mustCreatePR(t, s, "pr-1")

	for i := 0; i < 2; i++ {
		if _, err := s.UpdatePullRequest("pr-1", PRUpdate{ApprovalAuthor: "agent2"}); err != nil {
			t.Fatal(err)
		}
	}

	prs, _ := s.GetPullRequests("")
	if len(prs[0].Approvals) != 1 {
		t.Errorf("approvals = %d, want 1 after duplicate approval", len(prs[0].Approvals))
	}
}

func TestUpdatePullRequestUnknown(t *testing.T) {
	s := newTestStore(t)

	ok, err := s.UpdatePullRequest("pr-missing", PRUpdate{Status: models.PRStatusClosed})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("UpdatePullRequest() = true for unknown PR")
	}
}

func TestGetPullRequestsByStatus(t *testing.T) {
	s := newTestStore(t)
	mustCreatePR(t, s, "pr-1")
	mustCreatePR(t, s, "pr-2")
	if _, err := s.UpdatePullRequest("pr-2", PRUpdate{Status: models.PRStatusClosed}); err != nil {
		t.Fatal(err)
	}

	open, err := s.GetPullRequests(models.PRStatusOpen)
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 1 || open[0].ID != "pr-1" {
		t.Errorf("open PRs = %v", open)
	}
}
