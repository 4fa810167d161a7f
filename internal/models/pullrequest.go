package models

import "time"

// PullRequest is a review request between two branches. Comments and
// approvals are append-only; approvals are deduplicated by author.
type PullRequest struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	SourceBranch string        `json:"source_branch"`
	TargetBranch string        `json:"target_branch"`
	Author       string        `json:"author"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Comments     []*PRComment  `json:"comments"`
	Approvals    []*PRApproval `json:"approvals"`
}

// PRComment is one review comment on a pull request.
type PRComment struct {
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// PRApproval records one agent's approval of a pull request.
type PRApproval struct {
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// Pull request status constants
const (
	PRStatusOpen   = "open"
	PRStatusClosed = "closed"
	PRStatusMerged = "merged"
)

// PRStatuses lists the valid pull request statuses.
var PRStatuses = []string{PRStatusOpen, PRStatusClosed, PRStatusMerged}

// ApprovedBy reports whether the author has already approved the PR.
func (pr *PullRequest) ApprovedBy(author string) bool {
	for _, a := range pr.Approvals {
		if a.Author == author {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the pull request.
func (pr *PullRequest) Clone() *PullRequest {
	c := *pr
	c.Comments = make([]*PRComment, len(pr.Comments))
	for i, cm := range pr.Comments {
		cc := *cm
		c.Comments[i] = &cc
	}
	c.Approvals = make([]*PRApproval, len(pr.Approvals))
	for i, a := range pr.Approvals {
		ac := *a
		c.Approvals[i] = &ac
	}
	return &c
}
