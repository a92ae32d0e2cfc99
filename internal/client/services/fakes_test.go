package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/ragvault/internal/api"
	"github.com/dmitrijs2005/ragvault/internal/client/client"
	"github.com/dmitrijs2005/ragvault/internal/vault"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "ragvault.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	tokens    client.Tokens
	onRefresh func(client.Tokens)
	closed    bool

	loginTokens client.Tokens
	loginErr    error
	registerErr error
	pingErr     error
	profile     *api.ProfileResponse

	pages       []*api.BrowseVaultResponse
	browseErr   error
	browseCalls []int
	browseDelay time.Duration
	lastFilters vault.Filters

	submitResp   *api.SubmitItemResponse
	submitErr    error
	lastSubmit   *api.SubmitItemRequest
	markedItemID string
	markCtxErr   error

	uploadReqs    []string
	uploadReqErr  error
	submitCtxLeft time.Duration

	lastFields map[string]string
	lastItemID string
	err        error
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) Register(_ context.Context, username, _ string) (string, error) {
	if f.registerErr != nil {
		return "", f.registerErr
	}
	return "id-" + username, nil
}

func (f *fakeClient) Login(context.Context, string, string) (client.Tokens, error) {
	if f.loginErr != nil {
		return client.Tokens{}, f.loginErr
	}
	f.tokens = f.loginTokens
	return f.loginTokens, nil
}

func (f *fakeClient) SetTokens(t client.Tokens) { f.tokens = t }

func (f *fakeClient) OnTokensRefreshed(fn func(client.Tokens)) { f.onRefresh = fn }

func (f *fakeClient) Profile(context.Context) (*api.ProfileResponse, error) {
	return f.profile, f.err
}

func (f *fakeClient) Browse(ctx context.Context, offset int, filters vault.Filters) (*api.BrowseVaultResponse, error) {
	f.browseCalls = append(f.browseCalls, offset)
	f.lastFilters = filters
	if f.browseDelay > 0 {
		select {
		case <-time.After(f.browseDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.browseErr != nil {
		return nil, f.browseErr
	}
	if len(f.pages) == 0 {
		return &api.BrowseVaultResponse{Items: []api.ItemView{}, NextOffset: offset}, nil
	}
	p := f.pages[0]
	f.pages = f.pages[1:]
	return p, nil
}

func (f *fakeClient) GetItem(_ context.Context, id string) (*api.ItemView, error) {
	f.lastItemID = id
	return &api.ItemView{Item: vault.Item{ID: id}}, f.err
}

func (f *fakeClient) Submit(ctx context.Context, req *api.SubmitItemRequest) (*api.SubmitItemResponse, error) {
	f.lastSubmit = req
	if d, ok := ctx.Deadline(); ok {
		f.submitCtxLeft = time.Until(d)
	}
	return f.submitResp, f.submitErr
}

func (f *fakeClient) MarkImageUploaded(ctx context.Context, itemID string) (*api.ItemView, error) {
	f.markedItemID = itemID
	f.markCtxErr = ctx.Err()
	key := "items/" + itemID + "/a.png"
	return &api.ItemView{Item: vault.Item{ID: itemID, ImageKey: &key}, ImageURL: "https://img/" + key}, f.err
}

func (f *fakeClient) RequestImageUpload(_ context.Context, itemID, contentType string) (*api.ImageUpload, error) {
	f.uploadReqs = append(f.uploadReqs, itemID+" "+contentType)
	if f.uploadReqErr != nil {
		return nil, f.uploadReqErr
	}
	return &api.ImageUpload{
		ItemID:      itemID,
		StorageKey:  "items/" + itemID + "/retry.png",
		URL:         "https://s3.test/put/items/" + itemID + "/retry.png",
		ContentType: contentType,
	}, nil
}

func (f *fakeClient) Verify(_ context.Context, itemID string) (*api.VerifyItemResponse, error) {
	f.lastItemID = itemID
	return &api.VerifyItemResponse{VerificationCount: 1}, f.err
}

func (f *fakeClient) ProposeEdit(_ context.Context, itemID string, fields map[string]string, comment string) (*api.EditProposal, error) {
	f.lastItemID = itemID
	f.lastFields = fields
	return &api.EditProposal{ID: "e-1", ItemID: itemID, Fields: fields, Comment: comment, Status: "pending"}, f.err
}

func (f *fakeClient) ReviewEdit(_ context.Context, editID string, approve bool) (*api.EditProposal, error) {
	status := "rejected"
	if approve {
		status = "approved"
	}
	return &api.EditProposal{ID: editID, Status: status}, f.err
}

func (f *fakeClient) PendingEdits(_ context.Context, itemID string) ([]api.EditProposal, error) {
	f.lastItemID = itemID
	return []api.EditProposal{{ID: "e-1", ItemID: itemID}}, f.err
}

func (f *fakeClient) AddToCollection(_ context.Context, itemID string) error {
	f.lastItemID = itemID
	return f.err
}

func (f *fakeClient) RemoveFromCollection(_ context.Context, itemID string) error {
	f.lastItemID = itemID
	return f.err
}

func (f *fakeClient) Collection(context.Context) ([]api.ItemView, error) {
	return []api.ItemView{{Item: vault.Item{ID: "item-1"}}}, f.err
}
