package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate brings the schema up to date for the gateway's dialect.
// The migrate instance is intentionally left open: closing it closes the pool.
func (g *Gateway) Migrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := iofs.New(migrationsFS, "migrations/"+string(g.dialect))
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	var driver database.Driver
	switch g.dialect {
	case DialectPostgres:
		driver, err = migratepg.WithInstance(g.db.DB, &migratepg.Config{})
	case DialectSQLite:
		driver, err = migratesqlite.WithInstance(g.db.DB, &migratesqlite.Config{})
	default:
		err = fmt.Errorf("unsupported dialect %q", g.dialect)
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, string(g.dialect), driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Str("driver", string(g.dialect)).Msg("storage: schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.Info().Str("driver", string(g.dialect)).Uint("version", version).Msg("storage: migrations applied")
	return nil
}
