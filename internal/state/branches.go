package state

import (
	"time"

	"github.com/noahlilabs/team-claude/internal/models"
)

// RegisterBranch records a new branch. Returns false when the name is
// already registered; branches are never updated or deleted.
func (s *Store) RegisterBranch(name, description, owner string) (bool, error) {
	registered := false
	err := s.run(func(doc *models.Document) error {
		if _, exists := doc.Branches[name]; exists {
			return nil
		}
		doc.Branches[name] = &models.Branch{
			Name:        name,
			Description: description,
			Owner:       owner,
			CreatedAt:   time.Now(),
			Status:      models.BranchStatusActive,
		}
		registered = true
		return nil
	})
	return registered, err
}

// GetBranches returns detached copies of all branches, sorted by name.
func (s *Store) GetBranches() ([]*models.Branch, error) {
	var result []*models.Branch
	err := s.run(func(doc *models.Document) error {
		for _, name := range sortedKeys(doc.Branches) {
			result = append(result, doc.Branches[name].Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
