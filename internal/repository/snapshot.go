package repository

import (
	"context"

	"rentease-backend/internal/domain"
)

// Snapshot holds every collection as read inside one View or Update.
type Snapshot struct {
	Users        []domain.User
	Properties   []domain.Property
	Rentals      []domain.Rental
	Payments     []domain.Payment
	Terminations []domain.RentalTermination
	Renewals     []domain.RentalRenewal
}

// LoadSnapshot reads all collections once.
func LoadSnapshot(ctx context.Context, r Reader) (*Snapshot, error) {
	var (
		s   Snapshot
		err error
	)
	if s.Users, err = ReadAll[domain.User](ctx, r, CollectionUsers); err != nil {
		return nil, err
	}
	if s.Properties, err = ReadAll[domain.Property](ctx, r, CollectionProperties); err != nil {
		return nil, err
	}
	if s.Rentals, err = ReadAll[domain.Rental](ctx, r, CollectionRentals); err != nil {
		return nil, err
	}
	if s.Payments, err = ReadAll[domain.Payment](ctx, r, CollectionPayments); err != nil {
		return nil, err
	}
	if s.Terminations, err = ReadAll[domain.RentalTermination](ctx, r, CollectionTerminations); err != nil {
		return nil, err
	}
	if s.Renewals, err = ReadAll[domain.RentalRenewal](ctx, r, CollectionRenewals); err != nil {
		return nil, err
	}
	return &s, nil
}

// RentalsForProperty returns the rentals referencing propertyID.
func (s *Snapshot) RentalsForProperty(propertyID string) []domain.Rental {
	var out []domain.Rental
	for _, r := range s.Rentals {
		if r.PropertyID == propertyID {
			out = append(out, r)
		}
	}
	return out
}

// PaymentsForRental returns the payments recorded against rentalID.
func (s *Snapshot) PaymentsForRental(rentalID string) []domain.Payment {
	var out []domain.Payment
	for _, p := range s.Payments {
		if p.RentalID == rentalID {
			out = append(out, p)
		}
	}
	return out
}
