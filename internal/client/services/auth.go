// Package services contains the CLI's application services: session
// handling on top of the local metadata store, and the vault operations
// that combine server calls with image uploads and saved searches.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/ragvault/internal/api"
	"github.com/dmitrijs2005/ragvault/internal/client/client"
	"github.com/dmitrijs2005/ragvault/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ragvault/internal/dbx"
)

// ErrSessionNotSaved reports that tokens rotated during the run could not be
// stored. The server has already retired the old refresh token, so the next
// run needs a fresh login.
var ErrSessionNotSaved = errors.New("refreshed session could not be saved")

// AuthService manages the user's session.
//
// Login stores the issued tokens locally so later invocations can resume
// with RestoreSession; rotated tokens are written back automatically, and a
// failure to do so is returned by Close.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) (string, error)
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	RestoreSession(ctx context.Context) (string, error)
	Profile(ctx context.Context) (*api.ProfileResponse, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB

	mu         sync.Mutex
	persistErr error
}

func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{client: c, db: db}
}

func (a *authService) Register(ctx context.Context, username string, password []byte) (string, error) {
	return a.client.Register(ctx, username, string(password))
}

func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	tokens, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyUsername, []byte(username)); err != nil {
			return err
		}
		return saveTokens(ctx, repo, tokens)
	})
	if err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	a.watchRefresh()
	return nil
}

func saveTokens(ctx context.Context, repo metadata.Repository, t client.Tokens) error {
	if err := repo.Set(ctx, metadata.KeyAccessToken, []byte(t.AccessToken)); err != nil {
		return err
	}
	return repo.Set(ctx, metadata.KeyRefreshToken, []byte(t.RefreshToken))
}

// watchRefresh persists tokens the transport rotates on our behalf.
func (a *authService) watchRefresh() {
	a.client.OnTokensRefreshed(func(t client.Tokens) {
		err := dbx.WithTx(context.Background(), a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return saveTokens(ctx, metadata.NewSQLiteRepository(tx), t)
		})
		if err != nil {
			a.mu.Lock()
			a.persistErr = fmt.Errorf("%w: %w", ErrSessionNotSaved, err)
			a.mu.Unlock()
		}
	})
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetTokens(client.Tokens{})
	return metadata.NewSQLiteRepository(a.db).Clear(ctx)
}

// RestoreSession loads the stored session into the client and returns the
// username it belongs to, or client.ErrNotLoggedIn.
func (a *authService) RestoreSession(ctx context.Context) (string, error) {
	repo := metadata.NewSQLiteRepository(a.db)

	username, err := repo.Get(ctx, metadata.KeyUsername)
	if err != nil {
		return "", err
	}
	access, err := repo.Get(ctx, metadata.KeyAccessToken)
	if err != nil {
		return "", err
	}
	refresh, err := repo.Get(ctx, metadata.KeyRefreshToken)
	if err != nil {
		return "", err
	}
	if len(username) == 0 || (len(access) == 0 && len(refresh) == 0) {
		return "", client.ErrNotLoggedIn
	}

	a.client.SetTokens(client.Tokens{AccessToken: string(access), RefreshToken: string(refresh)})
	a.watchRefresh()
	return string(username), nil
}

func (a *authService) Profile(ctx context.Context) (*api.ProfileResponse, error) {
	p, err := a.client.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if p.Permissions == nil {
		p.Permissions = []string{}
	}
	return p, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	a.mu.Lock()
	persistErr := a.persistErr
	a.mu.Unlock()
	return errors.Join(persistErr, a.client.Close())
}
