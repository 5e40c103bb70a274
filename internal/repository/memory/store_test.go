package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentease-backend/internal/domain"
	"rentease-backend/internal/repository"
)

func TestStore_UpdateCommitsOnSuccess(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.Update(ctx, func(w repository.Writer) error {
		return repository.WriteAll(ctx, w, repository.CollectionProperties, []domain.Property{{ID: "prop_1", RentCents: 1000}})
	})
	require.NoError(t, err)

	var got []domain.Property
	err = store.View(ctx, func(r repository.Reader) error {
		var err error
		got, err = repository.ReadAll[domain.Property](ctx, r, repository.CollectionProperties)
		return err
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "prop_1", got[0].ID)
}

func TestStore_UpdateDiscardsOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.Seed(repository.CollectionRentals, []domain.Rental{{ID: "rent_1", Status: domain.RentalStatusPending}}))

	boom := errors.New("boom")
	err := store.Update(ctx, func(w repository.Writer) error {
		rentals, err := repository.ReadAll[domain.Rental](ctx, w, repository.CollectionRentals)
		if err != nil {
			return err
		}
		rentals[0].Status = domain.RentalStatusActive
		if err := repository.WriteAll(ctx, w, repository.CollectionRentals, rentals); err != nil {
			return err
		}
		// The transaction sees its own write.
		again, err := repository.ReadAll[domain.Rental](ctx, w, repository.CollectionRentals)
		if err != nil {
			return err
		}
		assert.Equal(t, domain.RentalStatusActive, again[0].Status)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_ = store.View(ctx, func(r repository.Reader) error {
		rentals, err := repository.ReadAll[domain.Rental](ctx, r, repository.CollectionRentals)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusPending, rentals[0].Status)
		return nil
	})
}

func TestStore_EmptyCollectionReadsEmpty(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	_ = store.View(ctx, func(r repository.Reader) error {
		payments, err := repository.ReadAll[domain.Payment](ctx, r, repository.CollectionPayments)
		require.NoError(t, err)
		assert.Empty(t, payments)
		return nil
	})
}

func TestStore_UpdatesAreSerialized(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.Seed(repository.CollectionPayments, []domain.Payment{}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, func(w repository.Writer) error {
				payments, err := repository.ReadAll[domain.Payment](ctx, w, repository.CollectionPayments)
				if err != nil {
					return err
				}
				payments = append(payments, domain.Payment{ID: store.GenerateID("pay")})
				return repository.WriteAll(ctx, w, repository.CollectionPayments, payments)
			})
		}()
	}
	wg.Wait()

	_ = store.View(ctx, func(r repository.Reader) error {
		payments, err := repository.ReadAll[domain.Payment](ctx, r, repository.CollectionPayments)
		require.NoError(t, err)
		assert.Len(t, payments, 50)
		return nil
	})
}

func TestStore_GenerateID(t *testing.T) {
	store := NewStore()
	a, b := store.GenerateID("rental"), store.GenerateID("rental")
	assert.True(t, strings.HasPrefix(a, "rental_"))
	assert.NotEqual(t, a, b)
}

func TestStore_CancelledContext(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := store.Update(ctx, func(w repository.Writer) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
