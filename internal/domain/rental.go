package domain

import (
	"fmt"
	"time"
)

type RentalStatus string

const (
	RentalStatusPending        RentalStatus = "pending"
	RentalStatusActive         RentalStatus = "active"
	RentalStatusRenewalPending RentalStatus = "renewal_pending"
	RentalStatusTerminating    RentalStatus = "terminating"
	RentalStatusCompleted      RentalStatus = "completed"
	RentalStatusCancelled      RentalStatus = "cancelled"
)

// rentalTransitions is the complete edge set of the rental lifecycle.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusPending:        {RentalStatusActive, RentalStatusCancelled},
	RentalStatusActive:         {RentalStatusTerminating, RentalStatusRenewalPending},
	RentalStatusTerminating:    {RentalStatusCompleted, RentalStatusActive},
	RentalStatusRenewalPending: {RentalStatusActive},
}

// Valid reports whether s is one of the known statuses.
func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusPending, RentalStatusActive, RentalStatusRenewalPending,
		RentalStatusTerminating, RentalStatusCompleted, RentalStatusCancelled:
		return true
	}
	return false
}

// IsLive reports whether the status occupies the property.
func (s RentalStatus) IsLive() bool {
	switch s {
	case RentalStatusActive, RentalStatusRenewalPending, RentalStatusTerminating:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s RentalStatus) IsTerminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusCancelled
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	for _, candidate := range rentalTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// TransitionError is returned when a status change is not an edge of the lifecycle.
type TransitionError struct {
	From RentalStatus
	To   RentalStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("rental cannot move from %s to %s", e.From, e.To)
}

type Rental struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenant_id"`
	LandlordID string `json:"landlord_id"`
	PropertyID string `json:"property_id"`
	StartDate  string `json:"start_date"`
	// EndDate is nil for open-ended occupancy.
	EndDate *string      `json:"end_date,omitempty"`
	Status  RentalStatus `json:"status"`
	// MonthlyRentCents is captured from the property at request time and never changes.
	MonthlyRentCents int64     `json:"monthly_rent_cents"`
	CreatedOn        time.Time `json:"created_on"`
	UpdatedOn        time.Time `json:"updated_on"`
}

func (r Rental) GetID() string { return r.ID }

// TransitionTo moves the rental to next if the lifecycle allows it.
func (r *Rental) TransitionTo(next RentalStatus, at time.Time) error {
	if !r.Status.CanTransitionTo(next) {
		return &TransitionError{From: r.Status, To: next}
	}
	r.Status = next
	r.UpdatedOn = at
	return nil
}
