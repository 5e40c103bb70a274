package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentease-backend/internal/domain"
	"rentease-backend/internal/repository"
)

func TestFindByID(t *testing.T) {
	rentals := []domain.Rental{{ID: "a"}, {ID: "b"}}

	i, ok := repository.FindByID(rentals, "b")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = repository.FindByID(rentals, "c")
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	users := []domain.User{{ID: "u1", Name: "Ana"}}

	u, err := repository.Lookup(users, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)

	_, err = repository.Lookup(users, "u2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSnapshotFilters(t *testing.T) {
	s := &repository.Snapshot{
		Rentals:  []domain.Rental{{ID: "r1", PropertyID: "p1"}, {ID: "r2", PropertyID: "p2"}, {ID: "r3", PropertyID: "p1"}},
		Payments: []domain.Payment{{ID: "x", RentalID: "r1"}, {ID: "y", RentalID: "r2"}},
	}
	assert.Len(t, s.RentalsForProperty("p1"), 2)
	assert.Len(t, s.PaymentsForRental("r2"), 1)
	assert.Empty(t, s.PaymentsForRental("r3"))
}
