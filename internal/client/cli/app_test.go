package cli

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/ragvault/internal/api"
	"github.com/dmitrijs2005/ragvault/internal/client/client"
	"github.com/dmitrijs2005/ragvault/internal/client/config"
	"github.com/dmitrijs2005/ragvault/internal/client/repositories/searches"
	"github.com/dmitrijs2005/ragvault/internal/client/services"
	"github.com/dmitrijs2005/ragvault/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	user       string
	restoreErr error
	loginErr   error
	pingErr    error
	closeErr   error
	profile    *api.ProfileResponse

	registered string
	loggedIn   string
	password   string
	loggedOut  bool
	closed     bool
	deadline   bool
}

func (f *fakeAuth) Register(_ context.Context, username string, password []byte) (string, error) {
	f.registered = username
	return "u-1", nil
}

func (f *fakeAuth) Login(ctx context.Context, username string, password []byte) error {
	_, f.deadline = ctx.Deadline()
	f.loggedIn = username
	f.password = string(password)
	return f.loginErr
}

func (f *fakeAuth) Logout(context.Context) error { f.loggedOut = true; return nil }

func (f *fakeAuth) RestoreSession(context.Context) (string, error) {
	if f.restoreErr != nil {
		return "", f.restoreErr
	}
	return f.user, nil
}

func (f *fakeAuth) Profile(context.Context) (*api.ProfileResponse, error) { return f.profile, nil }

func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }

func (f *fakeAuth) Close(context.Context) error { f.closed = true; return f.closeErr }

type fakeVault struct {
	services.VaultService

	page        *api.BrowseVaultResponse
	all         []vault.Item
	offset      int
	filters     vault.Filters
	item        *api.ItemView
	submitted   services.SubmitInput
	submitErr   error
	partial     bool
	bounded     bool
	imagePath   string
	verify      *api.VerifyItemResponse
	itemID      string
	fields      map[string]string
	comment     string
	approved    *bool
	edits       []api.EditProposal
	collection  []api.ItemView
	saved       []searches.Saved
	savedName   string
	deletedName string
	err         error
}

func (f *fakeVault) Browse(_ context.Context, offset int, filters vault.Filters) (*api.BrowseVaultResponse, error) {
	f.offset, f.filters = offset, filters
	return f.page, f.err
}

func (f *fakeVault) BrowseAll(_ context.Context, filters vault.Filters) ([]vault.Item, error) {
	f.filters = filters
	return f.all, f.err
}

func (f *fakeVault) Show(_ context.Context, id string) (*api.ItemView, error) {
	f.itemID = id
	return f.item, f.err
}

func (f *fakeVault) Submit(ctx context.Context, in services.SubmitInput) (*api.ItemView, error) {
	f.submitted = in
	_, f.bounded = ctx.Deadline()
	item := &api.ItemView{Item: vault.Item{ID: "item-new", Subject: in.Item.Subject, Category: in.Item.Category}}
	if f.submitErr != nil {
		if f.partial {
			return item, f.submitErr
		}
		return nil, f.submitErr
	}
	return item, nil
}

func (f *fakeVault) UploadImage(ctx context.Context, itemID, imagePath string) (*api.ItemView, error) {
	f.itemID, f.imagePath = itemID, imagePath
	_, f.bounded = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	key := "items/" + itemID + "/a.jpg"
	return &api.ItemView{Item: vault.Item{ID: itemID, ImageKey: &key}}, nil
}

func (f *fakeVault) Verify(_ context.Context, itemID string) (*api.VerifyItemResponse, error) {
	f.itemID = itemID
	return f.verify, f.err
}

func (f *fakeVault) ProposeEdit(_ context.Context, itemID string, fields map[string]string, comment string) (*api.EditProposal, error) {
	f.itemID, f.fields, f.comment = itemID, fields, comment
	return &api.EditProposal{ID: "e-1"}, f.err
}

func (f *fakeVault) ReviewEdit(_ context.Context, editID string, approve bool) (*api.EditProposal, error) {
	f.approved = &approve
	status := "rejected"
	if approve {
		status = "approved"
	}
	return &api.EditProposal{ID: editID, Status: status}, f.err
}

func (f *fakeVault) PendingEdits(_ context.Context, itemID string) ([]api.EditProposal, error) {
	f.itemID = itemID
	return f.edits, f.err
}

func (f *fakeVault) AddToCollection(_ context.Context, itemID string) error {
	f.itemID = itemID
	return f.err
}

func (f *fakeVault) RemoveFromCollection(_ context.Context, itemID string) error {
	f.itemID = itemID
	return f.err
}

func (f *fakeVault) Collection(context.Context) ([]api.ItemView, error) { return f.collection, f.err }

func (f *fakeVault) SaveSearch(_ context.Context, name string, filters vault.Filters) error {
	f.savedName, f.filters = name, filters
	return f.err
}

func (f *fakeVault) SavedSearches(context.Context) ([]searches.Saved, error) { return f.saved, f.err }

func (f *fakeVault) RunSearch(_ context.Context, name string, offset int) (*api.BrowseVaultResponse, error) {
	f.savedName, f.offset = name, offset
	return f.page, f.err
}

func (f *fakeVault) DeleteSearch(_ context.Context, name string) error {
	f.deletedName = name
	return f.err
}

type testApp struct {
	*App
	auth  *fakeAuth
	vault *fakeVault
	out   *bytes.Buffer
}

func newTestApp(t *testing.T, stdin string) *testApp {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	fa := &fakeAuth{user: "kurt"}
	fv := &fakeVault{}
	out := &bytes.Buffer{}
	app := &App{
		config: cfg,
		auth:   fa,
		vault:  fv,
		reader: bufio.NewReader(strings.NewReader(stdin)),
		out:    out,
	}
	return &testApp{App: app, auth: fa, vault: fv, out: out}
}

func (ta *testApp) run(args ...string) error {
	return ta.Execute(context.Background(), args)
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = old })
}

func TestConnect_OpensDatabaseAndClient(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "ragvault.db")
	cfg.ServerEndpointAddr = "127.0.0.1:1"

	app := NewApp(cfg)
	require.NoError(t, app.connect(context.Background()))
	assert.NotNil(t, app.auth)
	assert.NotNil(t, app.vault)
	assert.NotNil(t, app.db)
	app.close(context.Background())
}

func TestConnect_DatabaseError(t *testing.T) {
	old := initDatabase
	initDatabase = func(context.Context, string) (*sql.DB, error) { return nil, errors.New("disk full") }
	t.Cleanup(func() { initDatabase = old })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	err := NewApp(cfg).connect(context.Background())
	assert.ErrorContains(t, err, "disk full")
}

func TestLoginRequiredCommandsFailWithoutSession(t *testing.T) {
	for _, args := range [][]string{
		{"whoami"},
		{"verify", "item-1"},
		{"submit", "--subject", "x", "--category", "Band"},
		{"collection", "list"},
		{"pending-edits"},
	} {
		ta := newTestApp(t, "")
		ta.auth.restoreErr = client.ErrNotLoggedIn
		err := ta.run(args...)
		assert.ErrorIs(t, err, client.ErrNotLoggedIn, args)
		assert.True(t, ta.auth.closed)
	}
}

func TestPublicCommandsWorkWithoutSession(t *testing.T) {
	ta := newTestApp(t, "")
	ta.auth.restoreErr = client.ErrNotLoggedIn
	ta.vault.page = &api.BrowseVaultResponse{Items: []api.ItemView{}}

	require.NoError(t, ta.run("browse"))
	assert.Empty(t, ta.userName)
}

func TestSessionSaveFailureIsReported(t *testing.T) {
	ta := newTestApp(t, "")
	ta.auth.user = "kurt"
	ta.auth.closeErr = services.ErrSessionNotSaved
	ta.vault.page = &api.BrowseVaultResponse{Items: []api.ItemView{}}

	err := ta.run("browse")
	assert.ErrorIs(t, err, services.ErrSessionNotSaved)
	assert.True(t, ta.auth.closed)
}

func TestRestoreSessionFailureIsReturned(t *testing.T) {
	ta := newTestApp(t, "")
	ta.auth.restoreErr = errors.New("database is locked")
	assert.ErrorContains(t, ta.run("browse"), "database is locked")
}

func TestRequestContextHasTimeout(t *testing.T) {
	ta := newTestApp(t, "")
	ta.config.RequestTimeout = time.Minute
	stubPassword(t, "pw")

	require.NoError(t, ta.run("login", "-u", "kurt"))
	assert.True(t, ta.auth.deadline)
}
