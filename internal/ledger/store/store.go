package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/nearfin/near/internal/ledger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store persists the full serialized state in a single-row table, the
// durable key-value slot. There is exactly one entry; every save overwrites
// it wholesale.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) (*Store, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Read returns the persisted payload, or ledger.ErrEmptySlot when nothing
// has been saved yet.
func (s *Store) Read(ctx context.Context) ([]byte, error) {
	var payload []byte

	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE id = 1`).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrEmptySlot
		}

		return nil, fmt.Errorf("reading state slot: %w", err)
	}

	return payload, nil
}

// Write overwrites the slot with the given payload.
func (s *Store) Write(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO state (id, payload, updated_at)
		VALUES (1, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, data); err != nil {
		return fmt.Errorf("writing state slot: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating sqlite driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
