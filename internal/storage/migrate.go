package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the database file to the current schema. Each migration file
// carries IF NOT EXISTS guards, and the runner records applied versions in
// schema_migrations, so re-running on an initialized database is a no-op.
// Any DDL failure aborts and surfaces as ErrSchema; the file may be left with
// a partially applied version (no transactional DDL), which is a documented
// gap rather than something recovered here.
func Migrate(dbPath string) error {
	m, cleanup, err := newMigrator(dbPath)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w: %w", ErrSchema, err)
	}
	return nil
}

// Rollback steps the schema one version back. Development flow only.
func Rollback(dbPath string) error {
	m, cleanup, err := newMigrator(dbPath)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback migration: %w: %w", ErrSchema, err)
	}
	return nil
}

// SchemaVersion reports the applied migration version; 0 means uninitialized.
func SchemaVersion(dbPath string) (uint, bool, error) {
	m, cleanup, err := newMigrator(dbPath)
	if err != nil {
		return 0, false, err
	}
	defer cleanup()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// newMigrator opens a separate connection for the runner so it never
// interferes with the Store's single serialized handle.
func newMigrator(dbPath string) (*migrate.Migrate, func(), error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, nil, fmt.Errorf("open migration database: %w: %w", ErrConnection, err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create sqlite driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create migrate instance: %w", err)
	}

	cleanup := func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			slog.Warn("Closing migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}
	return m, cleanup, nil
}

// DropAllTables removes every managed table. Development reset flow;
// IF EXISTS guards make it safe against a half-built schema.
func (s *Store) DropAllTables(ctx context.Context) error {
	for _, name := range schemaTables {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
			return fmt.Errorf("drop table %s: %w", name, err)
		}
	}
	return nil
}

// DropAllIndexes removes every managed index by name.
func (s *Store) DropAllIndexes(ctx context.Context) error {
	for _, name := range schemaIndexes {
		if _, err := s.db.ExecContext(ctx, "DROP INDEX IF EXISTS "+name); err != nil {
			return fmt.Errorf("drop index %s: %w", name, err)
		}
	}
	return nil
}

// DropAllTriggers removes every managed trigger by name.
func (s *Store) DropAllTriggers(ctx context.Context) error {
	for _, name := range schemaTriggers {
		if _, err := s.db.ExecContext(ctx, "DROP TRIGGER IF EXISTS "+name); err != nil {
			return fmt.Errorf("drop trigger %s: %w", name, err)
		}
	}
	return nil
}

// Reset drops the whole schema including the migration bookkeeping, leaving
// the file as if never initialized.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.DropAllTriggers(ctx); err != nil {
		return err
	}
	if err := s.DropAllIndexes(ctx); err != nil {
		return err
	}
	if err := s.DropAllTables(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS schema_migrations"); err != nil {
		return fmt.Errorf("drop schema_migrations: %w", err)
	}
	slog.InfoContext(ctx, "Database schema dropped", "path", s.path)
	return nil
}
