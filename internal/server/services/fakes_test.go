package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/dbx"
	"github.com/dmitrijs2005/ragvault/internal/server/models"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/collections"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/edits"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/users"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/vaultitems"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/verifications"
	"github.com/dmitrijs2005/ragvault/internal/vault"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectCommit(m sqlmock.Sqlmock)   { m.ExpectBegin(); m.ExpectCommit() }
func expectRollback(m sqlmock.Sqlmock) { m.ExpectBegin(); m.ExpectRollback() }

// fakeStore is an in-memory RepositoryManager. Every repo it vends shares
// the same state, whichever DBTX it is bound to. Rolled back transactions
// are not undone. errs injects a failure per "repo.Method" name.
type fakeStore struct {
	users       map[string]*models.User
	tokens      map[string]*models.RefreshToken
	profiles    map[string]*models.Profile
	events      []models.KarmaEvent
	items       map[string]*vault.Item
	itemOrder   []string
	pending     map[string]string
	votes       map[[2]string]bool
	edits       map[string]*models.EditProposal
	collections map[string][]string
	errs        map[string]error
	seq         int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       map[string]*models.User{},
		tokens:      map[string]*models.RefreshToken{},
		profiles:    map[string]*models.Profile{},
		items:       map[string]*vault.Item{},
		pending:     map[string]string{},
		votes:       map[[2]string]bool{},
		edits:       map[string]*models.EditProposal{},
		collections: map[string][]string{},
		errs:        map[string]error{},
	}
}

func (f *fakeStore) next(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) fail(name string) error { return f.errs[name] }

// addUser seeds a user with a profile at the given karma.
func (f *fakeStore) addUser(id string, karmaScore int, admin bool) {
	f.users[id] = &models.User{ID: id, UserName: "user-" + id, IsAdmin: admin}
	f.profiles[id] = &models.Profile{UserID: id, UserName: "user-" + id, Karma: karmaScore, IsAdmin: admin}
}

func (f *fakeStore) addItem(it vault.Item) {
	cp := it
	f.items[it.ID] = &cp
	f.itemOrder = append(f.itemOrder, it.ID)
}

func (f *fakeStore) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (f *fakeStore) Users(dbx.DBTX) users.Repository                 { return fakeUsers{f} }
func (f *fakeStore) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return fakeTokens{f} }
func (f *fakeStore) Profiles(dbx.DBTX) profiles.Repository           { return fakeProfiles{f} }
func (f *fakeStore) VaultItems(dbx.DBTX) vaultitems.Repository       { return fakeItems{f} }
func (f *fakeStore) Verifications(dbx.DBTX) verifications.Repository { return fakeVotes{f} }
func (f *fakeStore) Edits(dbx.DBTX) edits.Repository                 { return fakeEdits{f} }
func (f *fakeStore) Collections(dbx.DBTX) collections.Repository     { return fakeCollections{f} }

type fakeUsers struct{ *fakeStore }

func (f fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if err := f.fail("users.Create"); err != nil {
		return nil, err
	}
	for _, existing := range f.users {
		if existing.UserName == u.UserName {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = f.next("user")
	cp := *u
	f.users[u.ID] = &cp
	return u, nil
}

func (f fakeUsers) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	if err := f.fail("users.GetUserByLogin"); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.UserName == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeTokens struct{ *fakeStore }

func (f fakeTokens) Create(_ context.Context, userID, token string, expiresAt time.Time) error {
	if err := f.fail("tokens.Create"); err != nil {
		return err
	}
	f.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: expiresAt}
	return nil
}

func (f fakeTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	if err := f.fail("tokens.Find"); err != nil {
		return nil, err
	}
	rt, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *rt
	return &cp, nil
}

func (f fakeTokens) Delete(_ context.Context, token string) error {
	if _, ok := f.tokens[token]; !ok {
		return common.ErrorNotFound
	}
	delete(f.tokens, token)
	return nil
}

type fakeProfiles struct{ *fakeStore }

func (f fakeProfiles) Create(_ context.Context, userID string) error {
	if err := f.fail("profiles.Create"); err != nil {
		return err
	}
	name := ""
	if u, ok := f.users[userID]; ok {
		name = u.UserName
	}
	f.profiles[userID] = &models.Profile{UserID: userID, UserName: name}
	return nil
}

func (f fakeProfiles) Get(_ context.Context, userID string) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f fakeProfiles) AddKarma(_ context.Context, ev models.KarmaEvent) (int, error) {
	if err := f.fail("profiles.AddKarma"); err != nil {
		return 0, err
	}
	p, ok := f.profiles[ev.UserID]
	if !ok {
		return 0, common.ErrorNotFound
	}
	ev.ID = f.next("ev")
	f.events = append(f.events, ev)
	p.Karma += ev.Delta
	return p.Karma, nil
}

func (f fakeProfiles) ListEvents(_ context.Context, userID string, limit int) ([]models.KarmaEvent, error) {
	out := []models.KarmaEvent{}
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		if f.events[i].UserID == userID {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

// karmaFor sums ledger entries for userID with the given reason.
func (f *fakeStore) karmaFor(userID, reason string) int {
	total := 0
	for _, ev := range f.events {
		if ev.UserID == userID && ev.Reason == reason {
			total += ev.Delta
		}
	}
	return total
}

type fakeItems struct{ *fakeStore }

func (f fakeItems) Select(ctx context.Context, q vault.Query) ([]vault.Item, int, error) {
	if err := f.fail("items.Select"); err != nil {
		return nil, 0, err
	}
	src := vault.NewMemorySource()
	for _, id := range f.itemOrder {
		src.Add(*f.items[id])
	}
	return src.Select(ctx, q)
}

func (f fakeItems) GetByID(_ context.Context, id string) (*vault.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *it
	cp.Tags = slices.Clone(it.Tags)
	return &cp, nil
}

func (f fakeItems) Create(_ context.Context, it *vault.Item) (*vault.Item, error) {
	if err := f.fail("items.Create"); err != nil {
		return nil, err
	}
	it.ID = f.next("item")
	it.CreatedAt = testNow
	f.addItem(*it)
	return it, nil
}

func (f fakeItems) Update(_ context.Context, it *vault.Item) error {
	if _, ok := f.items[it.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *it
	f.items[it.ID] = &cp
	return nil
}

func (f fakeItems) IncrementVerification(_ context.Context, id string) (int, error) {
	it, ok := f.items[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	it.VerificationCount++
	it.Score++
	return it.VerificationCount, nil
}

func (f fakeItems) AdjustScore(_ context.Context, id string, delta int) error {
	it, ok := f.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	it.Score += delta
	return nil
}

func (f fakeItems) SetPendingImage(_ context.Context, id, key string) error {
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	f.pending[id] = key
	return nil
}

func (f fakeItems) PublishImage(_ context.Context, id string) (string, error) {
	key, ok := f.pending[id]
	if !ok {
		return "", common.ErrorNotFound
	}
	delete(f.pending, id)
	f.items[id].ImageKey = &key
	return key, nil
}

type fakeVotes struct{ *fakeStore }

func (f fakeVotes) Create(_ context.Context, userID, itemID string) error {
	k := [2]string{userID, itemID}
	if f.votes[k] {
		return common.ErrorAlreadyExists
	}
	f.votes[k] = true
	return nil
}

type fakeEdits struct{ *fakeStore }

func (f fakeEdits) Create(_ context.Context, p *models.EditProposal) (*models.EditProposal, error) {
	p.ID = f.next("edit")
	p.Status = models.EditPending
	p.CreatedAt = testNow
	cp := *p
	f.edits[p.ID] = &cp
	return p, nil
}

func (f fakeEdits) GetByID(_ context.Context, id string) (*models.EditProposal, error) {
	p, ok := f.edits[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f fakeEdits) ListPending(_ context.Context, itemID string) ([]models.EditProposal, error) {
	out := []models.EditProposal{}
	for _, p := range f.edits {
		if p.Status == models.EditPending && (itemID == "" || p.ItemID == itemID) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeEdits) SetStatus(_ context.Context, id, status, reviewerID string) error {
	p, ok := f.edits[id]
	if !ok || p.Status != models.EditPending {
		return common.ErrVersionConflict
	}
	p.Status = status
	p.ReviewerID = reviewerID
	return nil
}

type fakeCollections struct{ *fakeStore }

func (f fakeCollections) Add(_ context.Context, userID, itemID string) (bool, error) {
	if slices.Contains(f.collections[userID], itemID) {
		return false, nil
	}
	f.collections[userID] = append(f.collections[userID], itemID)
	return true, nil
}

func (f fakeCollections) Remove(_ context.Context, userID, itemID string) (bool, error) {
	i := slices.Index(f.collections[userID], itemID)
	if i < 0 {
		return false, nil
	}
	f.collections[userID] = slices.Delete(f.collections[userID], i, i+1)
	return true, nil
}

func (f fakeCollections) List(_ context.Context, userID string) ([]vault.Item, error) {
	out := []vault.Item{}
	for _, id := range f.collections[userID] {
		out = append(out, *f.items[id])
	}
	return out, nil
}

type fakeImages struct {
	putErr error
	getErr error
}

func (f *fakeImages) PresignPut(_ context.Context, key, _ string) (string, time.Time, error) {
	if f.putErr != nil {
		return "", time.Time{}, f.putErr
	}
	return "https://s3.test/put/" + key, testNow.Add(15 * time.Minute), nil
}

func (f *fakeImages) PresignGet(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return "https://s3.test/get/" + key, nil
}
