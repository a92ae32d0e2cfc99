package client

import (
	"context"

	"github.com/dmitrijs2005/ragvault/internal/api"
	"github.com/dmitrijs2005/ragvault/internal/vault"
)

// Tokens is the session held by the client.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Client is the CLI's view of the RagVault server.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (Tokens, error)
	SetTokens(t Tokens)
	OnTokensRefreshed(fn func(Tokens))

	Profile(ctx context.Context) (*api.ProfileResponse, error)
	Browse(ctx context.Context, offset int, filters vault.Filters) (*api.BrowseVaultResponse, error)
	GetItem(ctx context.Context, id string) (*api.ItemView, error)
	Submit(ctx context.Context, req *api.SubmitItemRequest) (*api.SubmitItemResponse, error)
	MarkImageUploaded(ctx context.Context, itemID string) (*api.ItemView, error)
	RequestImageUpload(ctx context.Context, itemID, contentType string) (*api.ImageUpload, error)
	Verify(ctx context.Context, itemID string) (*api.VerifyItemResponse, error)

	ProposeEdit(ctx context.Context, itemID string, fields map[string]string, comment string) (*api.EditProposal, error)
	ReviewEdit(ctx context.Context, editID string, approve bool) (*api.EditProposal, error)
	PendingEdits(ctx context.Context, itemID string) ([]api.EditProposal, error)

	AddToCollection(ctx context.Context, itemID string) error
	RemoveFromCollection(ctx context.Context, itemID string) error
	Collection(ctx context.Context) ([]api.ItemView, error)
}
