// Package searches stores named browse filters in the CLI's local
// database so a user can rerun a query by name.
package searches

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/dbx"
	"github.com/dmitrijs2005/ragvault/internal/vault"
)

// Saved is a named set of filters.
type Saved struct {
	Name      string
	Filters   vault.Filters
	CreatedAt time.Time
}

type Repository interface {
	// Save creates or replaces the search called s.Name.
	Save(ctx context.Context, s Saved) error
	Get(ctx context.Context, name string) (*Saved, error)
	List(ctx context.Context) ([]Saved, error)
	Delete(ctx context.Context, name string) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, s Saved) error {
	raw, err := json.Marshal(s.Filters)
	if err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO saved_searches (name, filters, created_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET filters = excluded.filters
	`, s.Name, string(raw), s.CreatedAt)
	if err != nil {
		return fmt.Errorf("save search %q: %w", s.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (*Saved, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT name, filters, created_at FROM saved_searches WHERE name = ?`, name)
	s, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get search %q: %w", name, err)
	}
	return s, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Saved, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, filters, created_at FROM saved_searches ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	defer rows.Close()

	out := []Saved{}
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate searches: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_searches WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete search %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*Saved, error) {
	var (
		out Saved
		raw string
	)
	if err := s.Scan(&out.Name, &raw, &out.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(raw), &out.Filters); err != nil {
		return nil, fmt.Errorf("decode filters: %w", err)
	}
	return &out, nil
}
