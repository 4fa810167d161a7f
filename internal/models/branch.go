package models

import "time"

// Branch is a named unit of work ownership. Registration is one-shot;
// there are no update or delete operations.
type Branch struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
}

// BranchStatusActive is the status stamped on newly registered branches.
const BranchStatusActive = "active"

// Clone returns a copy of the branch.
func (b *Branch) Clone() *Branch {
	c := *b
	return &c
}
