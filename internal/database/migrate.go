package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the embedded versioned migration files as a
// golang-migrate source.
func Migrations() (source.Driver, error) {
	return iofs.New(migrationsFS, "migrations")
}

// MigrationDSN enables multiStatements on dsn; golang-migrate sends each
// migration file as a single Exec.
func MigrationDSN(dsn string) string {
	if strings.Contains(dsn, "multiStatements=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&multiStatements=true"
	}
	return dsn + "?multiStatements=true"
}

// Migrate brings the schema at dsn up to the latest embedded version on a
// dedicated connection pool. Running it against an up-to-date database is a
// no-op.
func Migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("mysql", MigrationDSN(dsn))
	if err != nil {
		return fmt.Errorf("migration pool: %w", err)
	}
	return migrateUp(ctx, db)
}

// migrateUp owns db and closes it before returning.
func migrateUp(ctx context.Context, db *sql.DB) error {
	defer db.Close()

	src, err := Migrations()
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	drv, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		src.Close()
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "mysql", drv)
	if err != nil {
		src.Close()
		drv.Close()
		return fmt.Errorf("migrator: %w", err)
	}
	defer m.Close()

	done := make(chan error, 1)
	go func() { done <- m.Up() }()

	select {
	case err = <-done:
	case <-ctx.Done():
		m.GracefulStop <- true
		err = <-done
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
