// Package collections persists each user's personal shirt collection.
package collections

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ragvault/internal/dbx"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/vaultitems"
	"github.com/dmitrijs2005/ragvault/internal/vault"
)

type Repository interface {
	// Add reports whether the item was newly added.
	Add(ctx context.Context, userID, itemID string) (bool, error)
	// Remove reports whether the item was in the collection.
	Remove(ctx context.Context, userID, itemID string) (bool, error)
	List(ctx context.Context, userID string) ([]vault.Item, error)
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, userID, itemID string) (bool, error) {
	query := `
		INSERT INTO collections (user_id, item_id) VALUES ($1, $2)
		ON CONFLICT (user_id, item_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, userID, itemID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, itemID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE user_id = $1 AND item_id = $2`, userID, itemID)
	if err != nil {
		if dbx.IsInvalidTextRepresentation(err) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

// List returns the collection, most recently added first.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]vault.Item, error) {
	query := "SELECT " + vaultitems.Columns("v") + `
		FROM collections c
		JOIN vault_items v ON v.id = c.item_id
		WHERE c.user_id = $1
		ORDER BY c.added_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := []vault.Item{}
	for rows.Next() {
		it, err := vaultitems.ScanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}
