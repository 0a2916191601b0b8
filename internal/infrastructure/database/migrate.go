package database

import (
	"database/sql"
	"errors"
	"fmt"

	"catalog-backend/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// Migrator applies the SQL files under a file:// source to the database.
// It opens its own lib/pq connection since golang-migrate works on database/sql.
type Migrator struct {
	db *sql.DB
	m  *migrate.Migrate
}

func NewMigrator(databaseURL, sourceURL string) (*Migrator, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}

	return &Migrator{db: db, m: m}, nil
}

// Up applies all pending migrations. An already current schema is not an error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	mg.logVersion("up")
	return nil
}

// Down rolls back the given number of migrations.
func (mg *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive (got %d)", steps)
	}
	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback migrations: %w", err)
	}
	mg.logVersion("down")
	return nil
}

// Version returns the applied version and whether the last run left it dirty.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

func (mg *Migrator) logVersion(direction string) {
	v, dirty, err := mg.Version()
	if err != nil {
		logger.Error("[MIGRATE] read version", err)
		return
	}
	logger.Info("[MIGRATE] schema migrated", map[string]interface{}{
		"direction": direction,
		"version":   v,
		"dirty":     dirty,
	})
}

// RunMigrations is the one-shot helper used on startup and in tests.
func RunMigrations(databaseURL, sourceURL string) error {
	mg, err := NewMigrator(databaseURL, sourceURL)
	if err != nil {
		return err
	}
	defer mg.Close()

	return mg.Up()
}
