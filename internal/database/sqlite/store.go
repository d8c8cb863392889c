// Package sqlite persists the in-memory store to a single SQLite row.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/vistalabs/vista/internal/database/memory"
	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/snapshot"
)

const (
	stateKey = "snapshot"

	createStateTable = `CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	selectState = `SELECT payload FROM state WHERE key = ?`
	upsertState = `INSERT INTO state(key, payload, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
)

// Store is a memory.Store that writes a msgpack snapshot to SQLite before
// every change becomes visible.
type Store struct {
	*memory.Store
	db *sql.DB
}

// NewStore opens (or creates) the database at path and loads the last snapshot
func NewStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps :memory: databases alive and serializes writes
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createStateTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}

	initial, err := load(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db}
	s.Store = memory.NewStore(memory.WithInitialState(initial), memory.WithPersister(s.save))
	return s, nil
}

func load(ctx context.Context, db *sql.DB) (domain.Snapshot, error) {
	var payload []byte
	err := db.QueryRowContext(ctx, selectState, stateKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewSnapshot(), nil
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("select state: %w", err)
	}
	return snapshot.Decode(payload)
}

func (s *Store) save(ctx context.Context, next domain.Snapshot) error {
	data, err := snapshot.Encode(next)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, upsertState, stateKey, data); err != nil {
		return fmt.Errorf("%s: %w", domain.ErrMsgDatabaseError, err)
	}
	return nil
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
