package domain

import "time"

// Property is a rentable unit owned by exactly one landlord.
//
// Available is a cached hint; whether the property can actually be rented is
// decided from its rentals by the availability resolver.
type Property struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Address     string `json:"address"`
	RentCents   int64  `json:"rent_cents"`
	Available   bool   `json:"available"`
	Description string `json:"description,omitempty"`
	// StartDate and EndDate bound the rental window offered by the landlord.
	StartDate               *string   `json:"start_date,omitempty"`
	EndDate                 *string   `json:"end_date,omitempty"`
	MostRecentRentalEndDate *string   `json:"most_recent_rental_end_date,omitempty"`
	CreatedOn               time.Time `json:"created_on"`
	UpdatedOn               time.Time `json:"updated_on"`
}

func (p Property) GetID() string { return p.ID }

// HasWindow reports whether the landlord has set an offer window.
func (p Property) HasWindow() bool {
	return p.StartDate != nil && p.EndDate != nil
}
