// Package sqlite persists the record store in a single SQLite file, one JSON
// document per collection.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"rentease-backend/internal/logger"
	"rentease-backend/internal/repository"
)

var _ repository.Store = (*Store)(nil)

type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (creating if needed) the database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "rentease.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps every statement on the same SQLite lock state.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS record_collections (
		collection TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_on TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create collections table: %w", err)
	}
	logger.Info("SQLite record store opened", "path", path)
	return &Store{db: db, path: path}, nil
}

func (s *Store) View(ctx context.Context, fn func(r repository.Reader) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin view: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(&txn{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Update(ctx context.Context, fn func(w repository.Writer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	if err := fn(&txn{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}
	return nil
}

func (s *Store) GenerateID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

type txn struct {
	tx *sql.Tx
}

func (t *txn) Read(ctx context.Context, c repository.Collection) (json.RawMessage, error) {
	var payload string
	err := t.tx.QueryRowContext(ctx, `SELECT payload FROM record_collections WHERE collection = ?`, string(c)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return json.RawMessage("[]"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", c, err)
	}
	return json.RawMessage(payload), nil
}

func (t *txn) Write(ctx context.Context, c repository.Collection, data json.RawMessage) error {
	_, err := t.tx.ExecContext(ctx, `INSERT INTO record_collections (collection, payload, updated_on)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(collection) DO UPDATE SET payload = excluded.payload, updated_on = CURRENT_TIMESTAMP`,
		string(c), string(data))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", c, err)
	}
	return nil
}
