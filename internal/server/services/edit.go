package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/dbx"
	"github.com/dmitrijs2005/ragvault/internal/karma"
	"github.com/dmitrijs2005/ragvault/internal/server/models"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/repomanager"
)

// EditService runs the propose/review cycle for item corrections.
type EditService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewEditService(db *sql.DB, m repomanager.RepositoryManager) *EditService {
	return &EditService{db: db, repomanager: m}
}

// Propose files a correction for itemID. Touching anything beyond the basic
// fields requires edit_all_fields. The fields are validated against a copy
// of the item up front so reviewers only see applicable proposals.
func (s *EditService) Propose(ctx context.Context, userID, itemID string, fields map[string]string, comment string) (*models.EditProposal, error) {
	var proposal *models.EditProposal
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		who, err := loadActor(ctx, s.repomanager, tx, userID)
		if err != nil {
			return err
		}
		if err := who.require(karma.PermProposeEdits); err != nil {
			return err
		}
		if !onlyBasic(fields) {
			if err := who.require(karma.PermEditAllFields); err != nil {
				return err
			}
		}

		item, err := s.repomanager.VaultItems(tx).GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		preview := *item
		if err := applyFields(&preview, fields); err != nil {
			return err
		}

		proposal, err = s.repomanager.Edits(tx).Create(ctx, &models.EditProposal{
			ItemID:     itemID,
			ProposerID: userID,
			Fields:     fields,
			Comment:    strings.TrimSpace(comment),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// Review approves or rejects a pending proposal. Approval applies the
// fields to the item and awards the proposer. Nobody reviews their own
// proposal unless they are an admin.
func (s *EditService) Review(ctx context.Context, reviewerID, editID string, approve bool) (*models.EditProposal, error) {
	var proposal *models.EditProposal
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		who, err := loadActor(ctx, s.repomanager, tx, reviewerID)
		if err != nil {
			return err
		}
		if err := who.require(karma.PermApproveEdits); err != nil {
			return err
		}

		edits := s.repomanager.Edits(tx)
		proposal, err = edits.GetByID(ctx, editID)
		if err != nil {
			return err
		}
		if proposal.Status != models.EditPending {
			return common.ErrVersionConflict
		}
		if proposal.ProposerID == reviewerID && !who.IsAdmin {
			return common.ErrPermissionDenied
		}

		status := models.EditRejected
		if approve {
			status = models.EditApproved
			if err := s.apply(ctx, tx, proposal); err != nil {
				return err
			}
		}
		if err := edits.SetStatus(ctx, editID, status, reviewerID); err != nil {
			return err
		}
		proposal.Status = status
		proposal.ReviewerID = reviewerID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

func (s *EditService) apply(ctx context.Context, tx dbx.DBTX, p *models.EditProposal) error {
	items := s.repomanager.VaultItems(tx)
	item, err := items.GetByID(ctx, p.ItemID)
	if err != nil {
		return err
	}
	if err := applyFields(item, p.Fields); err != nil {
		return err
	}
	if err := items.Update(ctx, item); err != nil {
		return err
	}
	return award(ctx, s.repomanager, tx, p.ProposerID, karma.AwardEditApproved, karma.ReasonEditApproved, "edit", p.ID)
}

// ListPending returns the review queue, optionally narrowed to one item.
func (s *EditService) ListPending(ctx context.Context, userID, itemID string) ([]models.EditProposal, error) {
	who, err := loadActor(ctx, s.repomanager, s.db, userID)
	if err != nil {
		return nil, err
	}
	if err := who.require(karma.PermApproveEdits); err != nil {
		return nil, err
	}
	return s.repomanager.Edits(s.db).ListPending(ctx, itemID)
}
