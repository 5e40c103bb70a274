package domain

import "time"

// RequestStatus is the state of a termination or renewal request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

type RentalTermination struct {
	ID               string `json:"id"`
	RentalID         string `json:"rental_id"`
	TenantID         string `json:"tenant_id"`
	LandlordID       string `json:"landlord_id"`
	RequestedEndDate string `json:"requested_end_date"`
	// PreviousEndDate is the rental's end date before the request overwrote it.
	PreviousEndDate *string       `json:"previous_end_date,omitempty"`
	Reason          string        `json:"reason,omitempty"`
	Status          RequestStatus `json:"status"`
	CreatedOn       time.Time     `json:"created_on"`
	UpdatedOn       time.Time     `json:"updated_on"`
	DecidedOn       *time.Time    `json:"decided_on,omitempty"`
}

func (t RentalTermination) GetID() string { return t.ID }

type RentalRenewal struct {
	ID                 string        `json:"id"`
	RentalID           string        `json:"rental_id"`
	TenantID           string        `json:"tenant_id"`
	LandlordID         string        `json:"landlord_id"`
	DurationMonths     int           `json:"renewal_duration"`
	RequestedStartDate string        `json:"requested_start_date"`
	Status             RequestStatus `json:"status"`
	CreatedOn          time.Time     `json:"created_on"`
	UpdatedOn          time.Time     `json:"updated_on"`
	DecidedOn          *time.Time    `json:"decided_on,omitempty"`
}

func (r RentalRenewal) GetID() string { return r.ID }
