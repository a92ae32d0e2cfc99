package services

import (
	"context"

	"github.com/dmitrijs2005/ragvault/internal/dbx"
	"github.com/dmitrijs2005/ragvault/internal/karma"
	"github.com/dmitrijs2005/ragvault/internal/server/models"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/repomanager"
)

// actor is the authenticated caller as the permission checks see it.
type actor struct {
	UserID  string
	Tier    karma.Tier
	IsAdmin bool
}

func (a *actor) require(p karma.Permission) error {
	return karma.Require(a.Tier, p, a.IsAdmin)
}

func (a *actor) can(p karma.Permission) bool {
	ok, _ := karma.HasPermission(a.Tier, p, a.IsAdmin)
	return ok
}

func standingOf(p *models.Profile) karma.Standing {
	return karma.Progress(p.Karma, karma.Tier(p.TierOverride))
}

func loadActor(ctx context.Context, rm repomanager.RepositoryManager, db dbx.DBTX, userID string) (*actor, error) {
	p, err := rm.Profiles(db).Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &actor{UserID: userID, Tier: standingOf(p).Tier, IsAdmin: p.IsAdmin}, nil
}

// award appends a karma event for userID.
func award(ctx context.Context, rm repomanager.RepositoryManager, tx dbx.DBTX, userID string, delta int, reason, refType, refID string) error {
	_, err := rm.Profiles(tx).AddKarma(ctx, models.KarmaEvent{
		UserID:  userID,
		Delta:   delta,
		Reason:  reason,
		RefType: refType,
		RefID:   refID,
	})
	return err
}
