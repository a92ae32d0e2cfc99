// Package refreshtokens declares the server-side repository contract for
// opaque refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/ragvault/internal/server/models"
)

// Repository issues, looks up and revokes refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID valid until expiresAt.
	Create(ctx context.Context, userID string, token string, expiresAt time.Time) error

	// Find returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete revokes a token. It returns common.ErrorNotFound when nothing was
	// deleted, so concurrent rotations of the same token cannot both succeed.
	Delete(ctx context.Context, token string) error
}
