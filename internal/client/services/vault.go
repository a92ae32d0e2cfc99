package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/ragvault/internal/api"
	"github.com/dmitrijs2005/ragvault/internal/client/client"
	"github.com/dmitrijs2005/ragvault/internal/client/repositories/searches"
	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/filex"
	"github.com/dmitrijs2005/ragvault/internal/netx"
	"github.com/dmitrijs2005/ragvault/internal/vault"
)

// Seams for tests.
var (
	readImage   = filex.ReadImage
	uploadImage = netx.UploadToPresignedURL
)

// MaxBrowseAllPages caps BrowseAll so a runaway listing stops eventually.
const MaxBrowseAllPages = 50

// SubmitInput is a new item plus an optional local image path.
type SubmitInput struct {
	Item      api.SubmitItemRequest
	ImagePath string
}

// VaultService exposes catalog operations to the CLI.
type VaultService interface {
	Browse(ctx context.Context, offset int, filters vault.Filters) (*api.BrowseVaultResponse, error)
	BrowseAll(ctx context.Context, filters vault.Filters) ([]vault.Item, error)
	Show(ctx context.Context, id string) (*api.ItemView, error)
	Submit(ctx context.Context, in SubmitInput) (*api.ItemView, error)
	UploadImage(ctx context.Context, itemID, imagePath string) (*api.ItemView, error)
	Verify(ctx context.Context, itemID string) (*api.VerifyItemResponse, error)

	ProposeEdit(ctx context.Context, itemID string, fields map[string]string, comment string) (*api.EditProposal, error)
	ReviewEdit(ctx context.Context, editID string, approve bool) (*api.EditProposal, error)
	PendingEdits(ctx context.Context, itemID string) ([]api.EditProposal, error)

	AddToCollection(ctx context.Context, itemID string) error
	RemoveFromCollection(ctx context.Context, itemID string) error
	Collection(ctx context.Context) ([]api.ItemView, error)

	SaveSearch(ctx context.Context, name string, filters vault.Filters) error
	SavedSearches(ctx context.Context) ([]searches.Saved, error)
	RunSearch(ctx context.Context, name string, offset int) (*api.BrowseVaultResponse, error)
	DeleteSearch(ctx context.Context, name string) error
}

type vaultService struct {
	client client.Client
	db     *sql.DB

	requestTimeout time.Duration
	uploadTimeout  time.Duration
}

// VaultOption configures a VaultService.
type VaultOption func(*vaultService)

// WithRequestTimeout bounds every server call an operation makes. Multi-step
// operations get a fresh budget per call.
func WithRequestTimeout(d time.Duration) VaultOption {
	return func(s *vaultService) { s.requestTimeout = d }
}

// WithUploadTimeout bounds the PUT of an image to object storage.
func WithUploadTimeout(d time.Duration) VaultOption {
	return func(s *vaultService) { s.uploadTimeout = d }
}

func NewVaultService(c client.Client, db *sql.DB, opts ...VaultOption) VaultService {
	s := &vaultService{client: c, db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func bounded(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func (s *vaultService) browse(ctx context.Context, offset int, filters vault.Filters) (*api.BrowseVaultResponse, error) {
	ctx, cancel := bounded(ctx, s.requestTimeout)
	defer cancel()
	return s.client.Browse(ctx, offset, filters)
}

func (s *vaultService) searches() searches.Repository {
	return searches.NewSQLiteRepository(s.db)
}

func (s *vaultService) Browse(ctx context.Context, offset int, filters vault.Filters) (*api.BrowseVaultResponse, error) {
	return s.browse(ctx, offset, filters)
}

// BrowseAll walks every page of a listing and returns the items in order.
func (s *vaultService) BrowseAll(ctx context.Context, filters vault.Filters) ([]vault.Item, error) {
	var pages []*vault.Page
	offset := 0
	for i := 0; i < MaxBrowseAllPages; i++ {
		resp, err := s.browse(ctx, offset, filters)
		if err != nil {
			return nil, err
		}
		page := &vault.Page{
			Items:      make([]vault.Item, 0, len(resp.Items)),
			TotalCount: resp.TotalCount,
			HasMore:    resp.HasMore,
			NextOffset: resp.NextOffset,
		}
		for _, v := range resp.Items {
			page.Items = append(page.Items, v.Item)
		}
		pages = append(pages, page)

		if !resp.HasMore || resp.NextOffset <= offset {
			break
		}
		offset = resp.NextOffset
	}
	return vault.FlattenPages(pages), nil
}

func (s *vaultService) Show(ctx context.Context, id string) (*api.ItemView, error) {
	return s.client.GetItem(ctx, id)
}

// Submit creates the item and, when an image path is given, uploads the
// image to the presigned URL the server hands back and publishes it. When
// the upload fails the created item is returned with the error; UploadImage
// retries it later.
func (s *vaultService) Submit(ctx context.Context, in SubmitInput) (*api.ItemView, error) {
	var image []byte
	req := in.Item
	if in.ImagePath != "" {
		data, ct, err := readImage(in.ImagePath)
		if err != nil {
			return nil, err
		}
		image = data
		req.ImageContentType = ct
	}

	callCtx, cancel := bounded(ctx, s.requestTimeout)
	resp, err := s.client.Submit(callCtx, &req)
	cancel()
	if err != nil {
		return nil, err
	}
	if resp.Upload == nil {
		return &resp.Item, nil
	}

	published, err := s.publish(ctx, resp.Upload, image)
	if err != nil {
		return &resp.Item, fmt.Errorf("item %s created but image upload failed: %w", resp.Item.Item.ID, err)
	}
	return published, nil
}

// UploadImage attaches a photo to an existing item: the server presigns a
// fresh upload, which replaces any upload left unfinished.
func (s *vaultService) UploadImage(ctx context.Context, itemID, imagePath string) (*api.ItemView, error) {
	image, ct, err := readImage(imagePath)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := bounded(ctx, s.requestTimeout)
	upload, err := s.client.RequestImageUpload(callCtx, itemID, ct)
	cancel()
	if err != nil {
		return nil, err
	}
	if upload.ContentType == "" {
		upload.ContentType = ct
	}
	return s.publish(ctx, upload, image)
}

// publish PUTs image to the presigned URL and confirms the upload. Each step
// has its own deadline.
func (s *vaultService) publish(ctx context.Context, upload *api.ImageUpload, image []byte) (*api.ItemView, error) {
	putCtx, cancel := bounded(ctx, s.uploadTimeout)
	err := uploadImage(putCtx, upload.URL, upload.ContentType, image)
	cancel()
	if err != nil {
		return nil, err
	}

	markCtx, cancel := bounded(ctx, s.requestTimeout)
	defer cancel()
	return s.client.MarkImageUploaded(markCtx, upload.ItemID)
}

func (s *vaultService) Verify(ctx context.Context, itemID string) (*api.VerifyItemResponse, error) {
	return s.client.Verify(ctx, itemID)
}

func (s *vaultService) ProposeEdit(ctx context.Context, itemID string, fields map[string]string, comment string) (*api.EditProposal, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to change", common.ErrorValidation)
	}
	return s.client.ProposeEdit(ctx, itemID, fields, comment)
}

func (s *vaultService) ReviewEdit(ctx context.Context, editID string, approve bool) (*api.EditProposal, error) {
	return s.client.ReviewEdit(ctx, editID, approve)
}

func (s *vaultService) PendingEdits(ctx context.Context, itemID string) ([]api.EditProposal, error) {
	return s.client.PendingEdits(ctx, itemID)
}

func (s *vaultService) AddToCollection(ctx context.Context, itemID string) error {
	return s.client.AddToCollection(ctx, itemID)
}

func (s *vaultService) RemoveFromCollection(ctx context.Context, itemID string) error {
	return s.client.RemoveFromCollection(ctx, itemID)
}

func (s *vaultService) Collection(ctx context.Context) ([]api.ItemView, error) {
	return s.client.Collection(ctx)
}

func (s *vaultService) SaveSearch(ctx context.Context, name string, filters vault.Filters) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: search name must not be empty", common.ErrorValidation)
	}
	return s.searches().Save(ctx, searches.Saved{Name: name, Filters: filters})
}

func (s *vaultService) SavedSearches(ctx context.Context) ([]searches.Saved, error) {
	return s.searches().List(ctx)
}

func (s *vaultService) RunSearch(ctx context.Context, name string, offset int) (*api.BrowseVaultResponse, error) {
	saved, err := s.searches().Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", name, err)
	}
	return s.browse(ctx, offset, saved.Filters)
}

func (s *vaultService) DeleteSearch(ctx context.Context, name string) error {
	return s.searches().Delete(ctx, name)
}
