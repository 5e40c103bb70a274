package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentease-backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBlockingRental(t *testing.T) {
	now := day("2025-01-02").Add(9 * time.Hour)

	tests := []struct {
		name    string
		rentals []domain.Rental
		wantID  string
	}{
		{
			name:    "no rentals",
			rentals: nil,
		},
		{
			name: "open ended active rental blocks",
			rentals: []domain.Rental{
				{ID: "r1", PropertyID: "p1", Status: domain.RentalStatusActive},
			},
			wantID: "r1",
		},
		{
			name: "ended active rental does not block",
			rentals: []domain.Rental{
				{ID: "r1", PropertyID: "p1", Status: domain.RentalStatusActive, EndDate: strPtr("2025-01-01")},
			},
		},
		{
			name: "rental ending today does not block",
			rentals: []domain.Rental{
				{ID: "r1", PropertyID: "p1", Status: domain.RentalStatusActive, EndDate: strPtr("2025-01-02")},
			},
		},
		{
			name: "terminating rental with future end blocks",
			rentals: []domain.Rental{
				{ID: "r1", PropertyID: "p1", Status: domain.RentalStatusTerminating, EndDate: strPtr("2025-03-01")},
			},
			wantID: "r1",
		},
		{
			name: "renewal pending blocks",
			rentals: []domain.Rental{
				{ID: "r1", PropertyID: "p1", Status: domain.RentalStatusRenewalPending, EndDate: strPtr("2025-06-01")},
			},
			wantID: "r1",
		},
		{
			name: "pending completed and cancelled never block",
			rentals: []domain.Rental{
				{ID: "r1", PropertyID: "p1", Status: domain.RentalStatusPending},
				{ID: "r2", PropertyID: "p1", Status: domain.RentalStatusCompleted},
				{ID: "r3", PropertyID: "p1", Status: domain.RentalStatusCancelled},
			},
		},
		{
			name: "other property ignored",
			rentals: []domain.Rental{
				{ID: "r1", PropertyID: "p2", Status: domain.RentalStatusActive},
			},
		},
		{
			name: "multiple blockers pick soonest end",
			rentals: []domain.Rental{
				{ID: "r1", PropertyID: "p1", Status: domain.RentalStatusActive},
				{ID: "r2", PropertyID: "p1", Status: domain.RentalStatusActive, EndDate: strPtr("2026-01-01")},
				{ID: "r3", PropertyID: "p1", Status: domain.RentalStatusActive, EndDate: strPtr("2025-06-01")},
			},
			wantID: "r3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlockingRental("p1", tt.rentals, now)
			if tt.wantID == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestBlockingRentals_OrderIsDeterministic(t *testing.T) {
	rentals := []domain.Rental{
		{ID: "b", PropertyID: "p1", Status: domain.RentalStatusActive},
		{ID: "a", PropertyID: "p1", Status: domain.RentalStatusActive},
		{ID: "c", PropertyID: "p1", Status: domain.RentalStatusActive, EndDate: strPtr("2030-01-01")},
	}
	got := BlockingRentals("p1", rentals, day("2025-01-01"))
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestBlocks_MalformedEndDate(t *testing.T) {
	r := domain.Rental{ID: "r1", Status: domain.RentalStatusActive, EndDate: strPtr("soon")}
	assert.True(t, Blocks(r, day("2025-01-01")))
}
