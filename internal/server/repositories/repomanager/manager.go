package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/ragvault/internal/dbx"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/collections"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/edits"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/users"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/vaultitems"
	"github.com/dmitrijs2005/ragvault/internal/server/repositories/verifications"
)

// RepositoryManager vends repositories bound to a DBTX so services can run
// the same repos against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	VaultItems(db dbx.DBTX) vaultitems.Repository
	Verifications(db dbx.DBTX) verifications.Repository
	Edits(db dbx.DBTX) edits.Repository
	Collections(db dbx.DBTX) collections.Repository
}
