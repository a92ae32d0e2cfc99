package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/dbx"
	"github.com/dmitrijs2005/ragvault/internal/karma"
	"github.com/dmitrijs2005/ragvault/internal/server/models"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/vaultitems"
	"github.com/dmitrijs2005/ragvault/internal/vault"
)

// SubmitInput describes a new vault item. ImageContentType is empty when the
// contributor has no photo to upload.
type SubmitInput struct {
	Subject          string
	Brand            string
	Title            string
	Category         string
	Year             string
	Tags             []string
	StitchType       string
	Origin           string
	ImageContentType string
}

// VerifyResult is the item's state after a verification vote.
type VerifyResult struct {
	VerificationCount int
	Verified          bool
}

// VaultService serves the vault listing and item contributions.
type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImageStore
	now         func() time.Time
}

func NewVaultService(db *sql.DB, m repomanager.RepositoryManager, images ImageStore) *VaultService {
	return &VaultService{db: db, repomanager: m, images: images, now: time.Now}
}

// Browse returns one vault page plus presigned display URLs keyed by item ID.
func (s *VaultService) Browse(ctx context.Context, offset int, filters vault.Filters) (*vault.Page, map[string]string, error) {
	fetcher := vault.NewFetcher(s.repomanager.VaultItems(s.db), vault.WithClock(s.now))

	page, err := fetcher.FetchPage(ctx, offset, filters)
	if err != nil {
		return nil, nil, err
	}

	urls, err := s.imageURLs(ctx, page.Items)
	if err != nil {
		return nil, nil, err
	}
	return page, urls, nil
}

// GetItem returns the item and its image URL, if it has one.
func (s *VaultService) GetItem(ctx context.Context, id string) (*vault.Item, string, error) {
	item, err := s.repomanager.VaultItems(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	urls, err := s.imageURLs(ctx, []vault.Item{*item})
	if err != nil {
		return nil, "", err
	}
	return item, urls[item.ID], nil
}

func (s *VaultService) imageURLs(ctx context.Context, items []vault.Item) (map[string]string, error) {
	urls := make(map[string]string)
	for _, it := range items {
		if !it.HasImage() {
			continue
		}
		u, err := s.images.PresignGet(ctx, *it.ImageKey)
		if err != nil {
			return nil, err
		}
		urls[it.ID] = u
	}
	return urls, nil
}

func (in *SubmitInput) validate() error {
	in.Subject = strings.TrimSpace(in.Subject)
	if in.Subject == "" {
		return invalid("subject must not be empty")
	}
	if err := validateCategory(in.Category); err != nil {
		return err
	}
	return validateYear(strings.TrimSpace(in.Year))
}

// Submit adds a new item on behalf of userID and awards submission karma.
// When an image is announced, the item gets a pending image key and the
// caller receives a presigned upload task; the image is published by
// MarkImageUploaded.
func (s *VaultService) Submit(ctx context.Context, userID string, in SubmitInput) (*vault.Item, *models.ImageUploadTask, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}

	var (
		item *vault.Item
		task *models.ImageUploadTask
	)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		who, err := loadActor(ctx, s.repomanager, tx, userID)
		if err != nil {
			return err
		}
		if err := who.require(karma.PermSubmitItems); err != nil {
			return err
		}
		if in.ImageContentType != "" {
			if err := who.require(karma.PermUploadImages); err != nil {
				return err
			}
		}

		items := s.repomanager.VaultItems(tx)
		year := strings.TrimSpace(in.Year)
		item, err = items.Create(ctx, &vault.Item{
			Subject:       in.Subject,
			Brand:         strings.TrimSpace(in.Brand),
			Title:         strings.TrimSpace(in.Title),
			Slug:          newSlug(in.Subject, year),
			Category:      in.Category,
			Year:          year,
			Tags:          splitTagList(strings.Join(in.Tags, ",")),
			StitchType:    strings.TrimSpace(in.StitchType),
			Origin:        strings.TrimSpace(in.Origin),
			ContributorID: userID,
		})
		if err != nil {
			return err
		}

		if err := award(ctx, s.repomanager, tx, userID, karma.AwardItemSubmitted, karma.ReasonItemSubmitted, "item", item.ID); err != nil {
			return err
		}

		if in.ImageContentType == "" {
			return nil
		}
		task, err = s.stageImage(ctx, items, item.ID, in.ImageContentType)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return item, task, nil
}

// stageImage records a fresh pending key for itemID and presigns the PUT the
// client uploads to.
func (s *VaultService) stageImage(ctx context.Context, items vaultitems.Repository, itemID, contentType string) (*models.ImageUploadTask, error) {
	key, err := NewImageKey(itemID, contentType)
	if err != nil {
		return nil, invalid("%s", err.Error())
	}
	if err := items.SetPendingImage(ctx, itemID, key); err != nil {
		return nil, err
	}
	url, expiresAt, err := s.images.PresignPut(ctx, key, contentType)
	if err != nil {
		return nil, err
	}
	return &models.ImageUploadTask{
		ItemID:      itemID,
		StorageKey:  key,
		URL:         url,
		ContentType: contentType,
		ExpiresAt:   expiresAt,
	}, nil
}

// RequestImageUpload presigns a new upload for an existing item. It serves
// uploads that failed or expired after Submit as well as photo
// replacements; the new key supersedes any earlier pending one. Only the
// contributor or an admin may do so.
func (s *VaultService) RequestImageUpload(ctx context.Context, userID, itemID, contentType string) (*models.ImageUploadTask, error) {
	var task *models.ImageUploadTask
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		who, err := loadActor(ctx, s.repomanager, tx, userID)
		if err != nil {
			return err
		}
		if err := who.require(karma.PermUploadImages); err != nil {
			return err
		}
		items := s.repomanager.VaultItems(tx)
		item, err := items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item.ContributorID != userID && !who.IsAdmin {
			return common.ErrPermissionDenied
		}
		task, err = s.stageImage(ctx, items, item.ID, contentType)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// MarkImageUploaded publishes the pending image of an item. Only the
// contributor or an admin may do so.
func (s *VaultService) MarkImageUploaded(ctx context.Context, userID, itemID string) (*vault.Item, error) {
	var item *vault.Item
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		who, err := loadActor(ctx, s.repomanager, tx, userID)
		if err != nil {
			return err
		}
		items := s.repomanager.VaultItems(tx)
		item, err = items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item.ContributorID != userID && !who.IsAdmin {
			return common.ErrPermissionDenied
		}
		key, err := items.PublishImage(ctx, itemID)
		if err != nil {
			return err
		}
		item.ImageKey = &key
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Verify records userID vouching for itemID. The voter earns karma for each
// vote; the contributor earns the verification bonus once, when the item
// reaches the verified threshold.
func (s *VaultService) Verify(ctx context.Context, userID, itemID string) (*VerifyResult, error) {
	var res VerifyResult
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		who, err := loadActor(ctx, s.repomanager, tx, userID)
		if err != nil {
			return err
		}
		if err := who.require(karma.PermVerifyItems); err != nil {
			return err
		}

		items := s.repomanager.VaultItems(tx)
		item, err := items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item.ContributorID == userID {
			return invalid("contributors cannot verify their own items")
		}

		if err := s.repomanager.Verifications(tx).Create(ctx, userID, itemID); err != nil {
			return err
		}
		count, err := items.IncrementVerification(ctx, itemID)
		if err != nil {
			return err
		}
		if err := award(ctx, s.repomanager, tx, userID, karma.AwardVerification, karma.ReasonVerification, "item", itemID); err != nil {
			return err
		}
		if count == vault.VerifiedCount {
			if err := award(ctx, s.repomanager, tx, item.ContributorID, karma.AwardItemVerified, karma.ReasonItemVerified, "item", itemID); err != nil {
				return err
			}
		}

		res = VerifyResult{VerificationCount: count, Verified: count >= vault.VerifiedCount}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
