package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"rentease-backend/internal/logger"
	"rentease-backend/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// advisoryLockKey identifies the single-writer lock shared by every process
// that writes to the same database.
const advisoryLockKey int64 = 0x72656e7465617365

const schema = `CREATE TABLE IF NOT EXISTS record_collections (
	collection TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const (
	selectQuery = `SELECT payload FROM record_collections WHERE collection = $1`
	upsertQuery = `INSERT INTO record_collections (collection, payload, updated_on) VALUES ($1, $2, NOW())
	          ON CONFLICT (collection) DO UPDATE SET payload = EXCLUDED.payload, updated_on = NOW()`
	lockQuery = `SELECT pg_advisory_xact_lock($1)`
)

// Store keeps each collection as one JSONB document.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the collections table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	logger.DatabaseCall("migrate", schema)
	_, err := s.db.ExecContext(ctx, schema)
	logger.DatabaseResult("migrate", 0, err)
	return err
}

func (s *Store) View(ctx context.Context, fn func(r repository.Reader) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
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
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, lockQuery, advisoryLockKey); err != nil {
		return fmt.Errorf("acquire writer lock: %w", err)
	}
	if err := fn(&txn{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}
	committed = true
	return nil
}

func (s *Store) GenerateID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

func (s *Store) Close() error {
	return s.db.Close()
}

type txn struct {
	tx *sql.Tx
}

func (t *txn) Read(ctx context.Context, c repository.Collection) (json.RawMessage, error) {
	logger.DatabaseCall("read", selectQuery, "collection", c)
	var payload []byte
	err := t.tx.QueryRowContext(ctx, selectQuery, string(c)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("read", 0, nil, "collection", c)
		return json.RawMessage("[]"), nil
	}
	if err != nil {
		logger.DatabaseResult("read", 0, err, "collection", c)
		return nil, err
	}
	logger.DatabaseResult("read", 1, nil, "collection", c)
	return json.RawMessage(payload), nil
}

func (t *txn) Write(ctx context.Context, c repository.Collection, data json.RawMessage) error {
	logger.DatabaseCall("write", upsertQuery, "collection", c, "bytes", len(data))
	res, err := t.tx.ExecContext(ctx, upsertQuery, string(c), string(data))
	if err != nil {
		logger.DatabaseResult("write", 0, err, "collection", c)
		return err
	}
	rows, _ := res.RowsAffected()
	logger.DatabaseResult("write", rows, nil, "collection", c)
	return nil
}
