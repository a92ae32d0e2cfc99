// Package vaultitems stores vault items in PostgreSQL and runs vault queries
// against them.
package vaultitems

import (
	"context"

	"github.com/dmitrijs2005/ragvault/internal/vault"
)

// Repository is a vault.Source plus the write paths used by contributions,
// verification and edits.
type Repository interface {
	vault.Source

	GetByID(ctx context.Context, id string) (*vault.Item, error)
	Create(ctx context.Context, item *vault.Item) (*vault.Item, error)
	Update(ctx context.Context, item *vault.Item) error
	IncrementVerification(ctx context.Context, id string) (int, error)
	AdjustScore(ctx context.Context, id string, delta int) error
	SetPendingImage(ctx context.Context, id, key string) error
	PublishImage(ctx context.Context, id string) (string, error)
}
