package models

import "time"

// Profile is the public face of a user: karma score and privileges.
// TierOverride is empty unless staff pinned the user to a tier.
type Profile struct {
	UserID       string
	UserName     string
	Karma        int
	TierOverride string
	IsAdmin      bool
	CreatedAt    time.Time
}

// KarmaEvent is one entry of the karma ledger.
type KarmaEvent struct {
	ID        string
	UserID    string
	Delta     int
	Reason    string
	RefType   string
	RefID     string
	CreatedAt time.Time
}
