package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/dbx"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ragvault/internal/vault"
)

// CollectionService manages personal collections. Collecting an item bumps
// its popularity score.
type CollectionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCollectionService(db *sql.DB, m repomanager.RepositoryManager) *CollectionService {
	return &CollectionService{db: db, repomanager: m}
}

func (s *CollectionService) Add(ctx context.Context, userID, itemID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		items := s.repomanager.VaultItems(tx)
		if _, err := items.GetByID(ctx, itemID); err != nil {
			return err
		}
		added, err := s.repomanager.Collections(tx).Add(ctx, userID, itemID)
		if err != nil || !added {
			return err
		}
		return items.AdjustScore(ctx, itemID, 1)
	})
}

func (s *CollectionService) Remove(ctx context.Context, userID, itemID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		removed, err := s.repomanager.Collections(tx).Remove(ctx, userID, itemID)
		if err != nil {
			return err
		}
		if !removed {
			return common.ErrorNotFound
		}
		return s.repomanager.VaultItems(tx).AdjustScore(ctx, itemID, -1)
	})
}

func (s *CollectionService) List(ctx context.Context, userID string) ([]vault.Item, error) {
	return s.repomanager.Collections(s.db).List(ctx, userID)
}
