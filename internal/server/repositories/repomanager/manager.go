package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/geotracker/internal/dbx"
	"github.com/dmitrijs2005/geotracker/internal/server/repositories/history"
	"github.com/dmitrijs2005/geotracker/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a *sql.DB or *sql.Tx, so
// services can run several of them inside one dbx.WithTx call.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	History(db dbx.DBTX) history.Repository
}
