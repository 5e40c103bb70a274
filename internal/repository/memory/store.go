// Package memory provides an in-memory record store used for tests and
// single-process development.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"rentease-backend/internal/repository"
)

var _ repository.Store = (*Store)(nil)

type Store struct {
	writeMu sync.Mutex   // serializes Update calls
	mu      sync.RWMutex // guards data
	data    map[repository.Collection]json.RawMessage
}

func NewStore() *Store {
	return &Store{data: make(map[repository.Collection]json.RawMessage)}
}

func (s *Store) View(ctx context.Context, fn func(r repository.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(committedReader{s})
}

func (s *Store) Update(ctx context.Context, fn func(w repository.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx := &txn{store: s, staged: make(map[repository.Collection]json.RawMessage)}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("update aborted: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c, raw := range tx.staged {
		s.data[c] = raw
	}
	return nil
}

func (s *Store) GenerateID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

func (s *Store) Close() error { return nil }

// Seed replaces a collection outside of a transaction. Intended for tests.
func (s *Store) Seed(c repository.Collection, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[c] = raw
	return nil
}

func (s *Store) read(c repository.Collection) json.RawMessage {
	raw, ok := s.data[c]
	if !ok {
		return json.RawMessage("[]")
	}
	return append(json.RawMessage(nil), raw...)
}

type committedReader struct{ s *Store }

func (r committedReader) Read(_ context.Context, c repository.Collection) (json.RawMessage, error) {
	return r.s.read(c), nil
}

// txn reads its own staged writes before falling back to committed state.
// Only the goroutine holding writeMu mutates data, so committed reads need
// just the shared lock.
type txn struct {
	store  *Store
	staged map[repository.Collection]json.RawMessage
}

func (t *txn) Read(_ context.Context, c repository.Collection) (json.RawMessage, error) {
	if raw, ok := t.staged[c]; ok {
		return append(json.RawMessage(nil), raw...), nil
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return t.store.read(c), nil
}

func (t *txn) Write(_ context.Context, c repository.Collection, data json.RawMessage) error {
	t.staged[c] = append(json.RawMessage(nil), data...)
	return nil
}
