package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

var dialects = map[string]goose.Dialect{
	DriverSQLite:   goose.DialectSQLite3,
	DriverPostgres: goose.DialectPostgres,
}

func getDialect(driver string) (goose.Dialect, error) {
	dialect, ok := dialects[driver]
	if !ok {
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
	return dialect, nil
}

// newProvider binds one migration set (ServerMigrations or ClientMigrations)
// to db. Providers hold no global state, so both sets can run in one process.
func newProvider(db *sql.DB, driver, dir string) (*goose.Provider, error) {
	dialect, err := getDialect(driver)
	if err != nil {
		return nil, err
	}

	set, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration set %s: %w", dir, err)
	}

	provider, err := goose.NewProvider(dialect, db, set)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// RunMigrations applies every pending migration of the set in dir
func RunMigrations(db *sql.DB, driver, dir string) error {
	provider, err := newProvider(db, driver, dir)
	if err != nil {
		return err
	}

	results, err := provider.Up(context.Background())
	if err != nil {
		return fmt.Errorf("failed to run %s migrations: %w", dir, err)
	}

	if len(results) > 0 {
		slog.Info("migrations applied", "set", dir, "count", len(results))
	}
	return nil
}

// MigrateDown rolls back the most recent migration of the set in dir
func MigrateDown(db *sql.DB, driver, dir string) error {
	provider, err := newProvider(db, driver, dir)
	if err != nil {
		return err
	}

	result, err := provider.Down(context.Background())
	if err != nil {
		return fmt.Errorf("failed to roll back %s migration: %w", dir, err)
	}

	slog.Info("migration rolled back", "set", dir, "version", result.Source.Version)
	return nil
}
