package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/ragvault/internal/client/client"
	"github.com/dmitrijs2005/ragvault/internal/client/config"
	"github.com/dmitrijs2005/ragvault/internal/client/services"
	"github.com/spf13/cobra"
)

// Construction seams, replaced in tests.
var (
	initDatabase = client.InitDatabase
	newAPIClient = func(addr string) (client.Client, error) {
		return client.NewRagVaultClient(addr)
	}
)

type App struct {
	config *config.Config
	auth   services.AuthService
	vault  services.VaultService
	db     *sql.DB

	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{config: c, reader: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// connect opens the local database and the server connection once.
func (a *App) connect(ctx context.Context) error {
	if a.auth != nil {
		return nil
	}

	db, err := initDatabase(ctx, a.config.DatabasePath)
	if err != nil {
		return fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := newAPIClient(a.config.ServerEndpointAddr)
	if err != nil {
		db.Close()
		return err
	}

	a.db = db
	a.auth = services.NewAuthService(apiClient, db)
	a.vault = services.NewVaultService(apiClient, db,
		services.WithRequestTimeout(a.config.RequestTimeout),
		services.WithUploadTimeout(a.config.UploadTimeout),
	)
	return nil
}

// close releases the connection and the database. Its error tells the user
// when a session refreshed during the run could not be kept.
func (a *App) close(ctx context.Context) error {
	var err error
	if a.auth != nil {
		err = a.auth.Close(ctx)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	return err
}

// restoreSession loads stored tokens. Commands annotated with
// needsLogin fail when there are none.
func (a *App) restoreSession(cmd *cobra.Command) error {
	user, err := a.auth.RestoreSession(cmd.Context())
	switch {
	case err == nil:
		a.userName = user
		return nil
	case errors.Is(err, client.ErrNotLoggedIn):
		if cmd.Annotations[annotationAuth] == needsLogin {
			return fmt.Errorf("%w: run 'ragvault login' first", err)
		}
		return nil
	default:
		return err
	}
}

// commandContext is the unbounded context of cmd. Vault operations that
// make several round trips take it and bound each call themselves.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// requestContext bounds one server round trip by the configured timeout.
func (a *App) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := commandContext(cmd)
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// Execute runs the command line in args and releases resources afterwards.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.RootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.out)
	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close(ctx))
}
