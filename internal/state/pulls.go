package state

import (
	"time"

	"github.com/noahlilabs/team-claude/internal/models"
)

// CreatePullRequest records a new pull request with empty comments and
// approvals. Returns false when the ID already exists.
func (s *Store) CreatePullRequest(id, title, description, sourceBranch, targetBranch, author string) (bool, error) {
	created := false
	err := s.run(func(doc *models.Document) error {
		if _, exists := doc.PullRequests[id]; exists {
			s.log.Warn("pull request already exists", "pr", id)
			return nil
		}
		now := time.Now()
		doc.PullRequests[id] = &models.PullRequest{
			ID:           id,
			Title:        title,
			Description:  description,
			SourceBranch: sourceBranch,
			TargetBranch: targetBranch,
			Author:       author,
			Status:       models.PRStatusOpen,
			CreatedAt:    now,
			UpdatedAt:    now,
			Comments:     []*models.PRComment{},
			Approvals:    []*models.PRApproval{},
		}
		created = true
		return nil
	})
	return created, err
}

// PRUpdate carries the optional mutations for UpdatePullRequest. Zero
// fields are skipped; a second approval by the same author is a no-op.
type PRUpdate struct {
	Status         string
	CommentAuthor  string
	CommentContent string
	ApprovalAuthor string
}

// UpdatePullRequest applies a status change, comment append, or approval
// to an existing pull request. Returns false when the ID is unknown.
func (s *Store) UpdatePullRequest(id string, update PRUpdate) (bool, error) {
	updated := false
	err := s.run(func(doc *models.Document) error {
		pr, ok := doc.PullRequests[id]
		if !ok {
			s.log.Warn("pull request not found", "pr", id)
			return nil
		}
		pr.UpdatedAt = time.Now()
		if update.Status != "" {
			pr.Status = update.Status
		}
		if update.CommentAuthor != "" && update.CommentContent != "" {
			pr.Comments = append(pr.Comments, &models.PRComment{
				Author:    update.CommentAuthor,
				Content:   update.CommentContent,
				Timestamp: time.Now(),
			})
		}
		if update.ApprovalAuthor != "" && !pr.ApprovedBy(update.ApprovalAuthor) {
			pr.Approvals = append(pr.Approvals, &models.PRApproval{
				Author:    update.ApprovalAuthor,
				Timestamp: time.Now(),
			})
		}
		updated = true
		return nil
	})
	return updated, err
}

// GetPullRequests returns detached copies of pull requests, optionally
// filtered by status, sorted by ID.
func (s *Store) GetPullRequests(status string) ([]*models.PullRequest, error) {
	var result []*models.PullRequest
	err := s.run(func(doc *models.Document) error {
		for _, id := range sortedKeys(doc.PullRequests) {
			pr := doc.PullRequests[id]
			if status != "" && pr.Status != status {
				continue
			}
			result = append(result, pr.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
