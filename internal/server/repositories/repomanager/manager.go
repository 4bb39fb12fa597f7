package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fitcal/internal/dbx"
	"github.com/dmitrijs2005/fitcal/internal/server/repositories/backups"
	"github.com/dmitrijs2005/fitcal/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/fitcal/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// service code runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Backups(db dbx.DBTX) backups.Repository
}
