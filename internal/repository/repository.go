// Package repository defines the record store the rental engine runs on: keyed
// collections that are read whole and replaced whole inside a single-writer
// transaction.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

type Collection string

const (
	CollectionUsers        Collection = "users"
	CollectionProperties   Collection = "properties"
	CollectionRentals      Collection = "rentals"
	CollectionPayments     Collection = "payments"
	CollectionTerminations Collection = "terminations"
	CollectionRenewals     Collection = "renewals"
)

// Collections lists every collection the platform stores.
var Collections = []Collection{
	CollectionUsers,
	CollectionProperties,
	CollectionRentals,
	CollectionPayments,
	CollectionTerminations,
	CollectionRenewals,
}

var ErrNotFound = errors.New("record not found")

// Reader returns the raw JSON array stored for a collection. A collection that
// was never written reads as an empty array.
type Reader interface {
	Read(ctx context.Context, c Collection) (json.RawMessage, error)
}

// Writer replaces a collection. Writes become visible to other callers only
// when the enclosing Update returns nil.
type Writer interface {
	Reader
	Write(ctx context.Context, c Collection, data json.RawMessage) error
}

// Store is the record store contract.
//
// Update runs fn with exclusive write access; at most one Update is in flight
// per store. If fn returns an error nothing it wrote is committed.
// View runs fn against a consistent snapshot and may run concurrently with
// other Views.
type Store interface {
	View(ctx context.Context, fn func(r Reader) error) error
	Update(ctx context.Context, fn func(w Writer) error) error
	GenerateID(prefix string) string
	Close() error
}

// Entity is implemented by every stored record.
type Entity interface {
	GetID() string
}

// ReadAll decodes a whole collection.
func ReadAll[T any](ctx context.Context, r Reader, c Collection) ([]T, error) {
	raw, err := r.Read(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c, err)
	}
	items := []T{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c, err)
	}
	return items, nil
}

// WriteAll replaces a whole collection with items.
func WriteAll[T any](ctx context.Context, w Writer, c Collection, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	if err := w.Write(ctx, c, raw); err != nil {
		return fmt.Errorf("write %s: %w", c, err)
	}
	return nil
}

// FindByID returns the index of the record with the given id.
func FindByID[T Entity](items []T, id string) (int, bool) {
	for i := range items {
		if items[i].GetID() == id {
			return i, true
		}
	}
	return -1, false
}

// Lookup returns a copy of the record with the given id or ErrNotFound.
func Lookup[T Entity](items []T, id string) (T, error) {
	if i, ok := FindByID(items, id); ok {
		return items[i], nil
	}
	var zero T
	return zero, ErrNotFound
}
