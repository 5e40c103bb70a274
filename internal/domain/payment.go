package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
	PaymentStatusFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusOverdue, PaymentStatusFailed:
		return true
	}
	return false
}

// Payment is a tenant-declared rent record. At most one exists per rental and month.
type Payment struct {
	ID          string        `json:"id"`
	RentalID    string        `json:"rental_id"`
	AmountCents int64         `json:"amount_cents"`
	Month       string        `json:"month"` // YYYY-MM
	Status      PaymentStatus `json:"status"`
	Method      string        `json:"method,omitempty"`
	PaidOn      time.Time     `json:"paid_on"`
	CreatedOn   time.Time     `json:"created_on"`
}

func (p Payment) GetID() string { return p.ID }
