package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/geotracker/internal/client/migrations"
	"github.com/dmitrijs2005/geotracker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/geotracker/internal/filex"

	_ "modernc.org/sqlite"
)

// LocalStore bundles the CLI's on-disk state.
type LocalStore struct {
	DB       *sql.DB
	Metadata metadata.Repository
}

func (s *LocalStore) Close() error {
	return s.DB.Close()
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate local db: %w", err)
	}
	return nil
}

// OpenLocalStore opens (creating if needed) the SQLite database at dsn and
// brings its schema up to date.
func OpenLocalStore(ctx context.Context, dsn string) (*LocalStore, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &LocalStore{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
	}, nil
}
