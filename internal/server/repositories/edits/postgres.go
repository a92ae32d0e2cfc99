// Package edits persists edit proposals for vault items.
package edits

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/dbx"
	"github.com/dmitrijs2005/ragvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.EditProposal) (*models.EditProposal, error)
	GetByID(ctx context.Context, id string) (*models.EditProposal, error)
	ListPending(ctx context.Context, itemID string) ([]models.EditProposal, error)
	SetStatus(ctx context.Context, id, status, reviewerID string) error
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, item_id, proposer_id, fields, comment, status, COALESCE(reviewer_id::text, ''), created_at, reviewed_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProposal(row scanner) (models.EditProposal, error) {
	var (
		p        models.EditProposal
		fields   []byte
		reviewed sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.ItemID, &p.ProposerID, &fields, &p.Comment, &p.Status, &p.ReviewerID, &p.CreatedAt, &reviewed); err != nil {
		return p, err
	}
	if err := json.Unmarshal(fields, &p.Fields); err != nil {
		return p, fmt.Errorf("decode fields: %w", err)
	}
	if reviewed.Valid {
		p.ReviewedAt = &reviewed.Time
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.EditProposal) (*models.EditProposal, error) {
	fields, err := json.Marshal(p.Fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}

	query := `
		INSERT INTO edit_proposals (item_id, proposer_id, fields, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, p.ItemID, p.ProposerID, fields, p.Comment).
		Scan(&p.ID, &p.Status, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.EditProposal, error) {
	query := "SELECT " + selectColumns + " FROM edit_proposals WHERE id = $1"
	p, err := scanProposal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &p, nil
}

// ListPending returns open proposals, oldest first. An empty itemID lists
// them across the whole vault.
func (r *PostgresRepository) ListPending(ctx context.Context, itemID string) ([]models.EditProposal, error) {
	query := "SELECT " + selectColumns + ` FROM edit_proposals
		WHERE status = 'pending' AND ($1 = '' OR item_id::text = $1)
		ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.EditProposal{}
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// SetStatus closes a pending proposal. It returns common.ErrVersionConflict
// when the proposal was already reviewed.
func (r *PostgresRepository) SetStatus(ctx context.Context, id, status, reviewerID string) error {
	query := `
		UPDATE edit_proposals
		SET status = $2, reviewer_id = $3, reviewed_at = now()
		WHERE id = $1 AND status = 'pending'
	`
	res, err := r.db.ExecContext(ctx, query, id, status, reviewerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrVersionConflict
	}
	return nil
}
