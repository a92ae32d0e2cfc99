package vaultitems

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/dbx"
	"github.com/dmitrijs2005/ragvault/internal/vault"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanItem reads one row selected with Columns.
func ScanItem(row Scanner) (vault.Item, error) {
	var (
		it       vault.Item
		tags     string
		imageKey sql.NullString
	)
	err := row.Scan(&it.ID, &it.Subject, &it.Brand, &it.Title, &it.Slug, &it.Category, &it.Year, &tags,
		&it.StitchType, &it.Origin, &imageKey, &it.VerificationCount, &it.Score, &it.ContributorID, &it.CreatedAt)
	if err != nil {
		return vault.Item{}, err
	}
	it.Tags = splitTags(tags)
	if imageKey.Valid {
		it.ImageKey = &imageKey.String
	}
	return it, nil
}

// Select runs q as a count query followed by a page query.
func (r *PostgresRepository) Select(ctx context.Context, q vault.Query) ([]vault.Item, int, error) {
	where, args, err := buildWhere(q.Conditions)
	if err != nil {
		return nil, 0, err
	}
	order, err := buildOrder(q.Order)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM vault_items"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	limit := q.To - q.From + 1
	if limit <= 0 || q.From >= total {
		return []vault.Item{}, total, nil
	}

	n := len(args)
	query := "SELECT " + selectColumns + " FROM vault_items" + where + order +
		" LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, q.From)...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]vault.Item, 0, limit)
	for rows.Next() {
		it, err := ScanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return items, total, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*vault.Item, error) {
	query := "SELECT " + selectColumns + " FROM vault_items WHERE id = $1"
	it, err := ScanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &it, nil
}

// Create inserts item and fills in ID and CreatedAt. A duplicate slug yields
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, item *vault.Item) (*vault.Item, error) {
	query := `
		INSERT INTO vault_items (subject, brand, title, slug, category, year, tags, stitch_type, origin, search_text, contributor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		item.Subject, item.Brand, item.Title, item.Slug, item.Category, item.Year, joinTags(item.Tags),
		item.StitchType, item.Origin, vault.ItemSearchText(*item), item.ContributorID,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// Update rewrites the editable columns and the search text.
func (r *PostgresRepository) Update(ctx context.Context, item *vault.Item) error {
	query := `
		UPDATE vault_items
		SET subject = $2, brand = $3, title = $4, slug = $5, category = $6, year = $7, tags = $8,
		    stitch_type = $9, origin = $10, search_text = $11, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, item.ID,
		item.Subject, item.Brand, item.Title, item.Slug, item.Category, item.Year, joinTags(item.Tags),
		item.StitchType, item.Origin, vault.ItemSearchText(*item))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

// IncrementVerification records one more verification and returns the new
// count.
func (r *PostgresRepository) IncrementVerification(ctx context.Context, id string) (int, error) {
	query := `
		UPDATE vault_items
		SET verification_count = verification_count + 1, score = score + 1
		WHERE id = $1
		RETURNING verification_count
	`
	var count int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) AdjustScore(ctx context.Context, id string, delta int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vault_items SET score = score + $2 WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) SetPendingImage(ctx context.Context, id, key string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vault_items SET pending_image_key = $2 WHERE id = $1`, id, key)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

// PublishImage promotes the pending image key to image_key. It returns
// common.ErrorNotFound when the item has no pending upload.
func (r *PostgresRepository) PublishImage(ctx context.Context, id string) (string, error) {
	query := `
		UPDATE vault_items
		SET image_key = pending_image_key, pending_image_key = NULL, updated_at = now()
		WHERE id = $1 AND pending_image_key IS NOT NULL
		RETURNING image_key
	`
	var key string
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return key, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
