package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/dbx"
	"github.com/dmitrijs2005/ragvault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string) error {
	query := `INSERT INTO profiles (user_id) VALUES ($1)`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT p.user_id, u.username, p.karma, COALESCE(p.tier_override, ''), u.is_admin, p.created_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`
	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&p.UserID, &p.UserName, &p.Karma, &p.TierOverride, &p.IsAdmin, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// AddKarma appends ev to the ledger and returns the new karma score.
func (r *PostgresRepository) AddKarma(ctx context.Context, ev models.KarmaEvent) (int, error) {
	insert := `
		INSERT INTO karma_events (user_id, delta, reason, ref_type, ref_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, insert, ev.UserID, ev.Delta, ev.Reason, ev.RefType, ev.RefID); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	update := `
		UPDATE profiles SET karma = karma + $2
		WHERE user_id = $1
		RETURNING karma
	`
	var karma int
	if err := r.db.QueryRowContext(ctx, update, ev.UserID, ev.Delta).Scan(&karma); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return karma, nil
}

// ListEvents returns the newest ledger entries first.
func (r *PostgresRepository) ListEvents(ctx context.Context, userID string, limit int) ([]models.KarmaEvent, error) {
	query := `
		SELECT id, user_id, delta, reason, ref_type, ref_id, created_at
		FROM karma_events
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	events := []models.KarmaEvent{}
	for rows.Next() {
		var ev models.KarmaEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Delta, &ev.Reason, &ev.RefType, &ev.RefID, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return events, nil
}
