package models

import "time"

// Edit proposal states.
const (
	EditPending  = "pending"
	EditApproved = "approved"
	EditRejected = "rejected"
)

// EditProposal is a suggested change to a vault item. Fields maps column
// names to new values; tags are comma separated.
type EditProposal struct {
	ID         string
	ItemID     string
	ProposerID string
	Fields     map[string]string
	Comment    string
	Status     string
	ReviewerID string
	CreatedAt  time.Time
	ReviewedAt *time.Time
}
