// Package verifications records who vouched for which vault item. Each user
// may verify an item once.
package verifications

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/dbx"
)

type Repository interface {
	Create(ctx context.Context, userID, itemID string) error
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create stores the vote. A repeated vote yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, userID, itemID string) error {
	query := `INSERT INTO verifications (user_id, item_id) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, userID, itemID); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
