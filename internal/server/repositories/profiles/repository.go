// Package profiles persists user profiles and the karma ledger.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/ragvault/internal/server/models"
)

// Repository reads profiles and records karma changes. AddKarma writes two
// statements and should run inside a transaction.
type Repository interface {
	Create(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) (*models.Profile, error)
	AddKarma(ctx context.Context, ev models.KarmaEvent) (int, error)
	ListEvents(ctx context.Context, userID string, limit int) ([]models.KarmaEvent, error)
}
