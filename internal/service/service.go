package service

import (
	"context"

	"rentease-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type PropertyService interface {
	CreateProperty(ctx context.Context, ownerID string, in PropertyInput) (*domain.Property, error)
	UpdateProperty(ctx context.Context, ownerID, propertyID string, patch PropertyPatch) (*domain.Property, error)
	SetAvailability(ctx context.Context, ownerID, propertyID string, available bool) (*domain.Property, error)
	GetProperty(ctx context.Context, propertyID string) (*domain.Property, error)
	ListMyProperties(ctx context.Context, ownerID string) ([]domain.Property, error)
	ListAvailableProperties(ctx context.Context) ([]domain.Property, error)
}

// RentalService is the rental lifecycle engine. Every mutating call runs as
// one record-store update: it either commits all of its writes or none.
type RentalService interface {
	RequestRental(ctx context.Context, tenantID, propertyID string, durationMonths *int) (*domain.Rental, error)
	ApproveRental(ctx context.Context, landlordID, rentalID string) (*domain.Rental, error)
	DeclineRental(ctx context.Context, landlordID, rentalID string) (*domain.Rental, error)

	RequestTermination(ctx context.Context, tenantID, rentalID, requestedEndDate, reason string) (*domain.RentalTermination, error)
	ApproveTermination(ctx context.Context, landlordID, terminationID string) (*domain.RentalTermination, error)
	RejectTermination(ctx context.Context, landlordID, terminationID string) (*domain.RentalTermination, error)

	RequestRenewal(ctx context.Context, tenantID, rentalID string, durationMonths int) (*domain.RentalRenewal, error)
	ApproveRenewal(ctx context.Context, landlordID, renewalID string) (*domain.RentalRenewal, error)
	RejectRenewal(ctx context.Context, landlordID, renewalID string) (*domain.RentalRenewal, error)

	ListPropertyAgain(ctx context.Context, landlordID, propertyID string, startOverride *string) (*domain.Property, error)

	GetRental(ctx context.Context, userID string, role domain.Role, rentalID string) (*domain.Rental, error)
	ListRentals(ctx context.Context, userID string, role domain.Role, status string) ([]domain.Rental, error)
	ListPendingTerminations(ctx context.Context, landlordID string) ([]domain.RentalTermination, error)
	ListPendingRenewals(ctx context.Context, landlordID string) ([]domain.RentalRenewal, error)
}

type PaymentService interface {
	CreatePayment(ctx context.Context, tenantID, rentalID string, in PaymentInput) (*domain.Payment, error)
	ListPayments(ctx context.Context, userID string, role domain.Role, rentalID string) ([]domain.Payment, error)
}

// DashboardService computes the read-only role views. It never writes.
type DashboardService interface {
	RentDue(ctx context.Context, landlordID string) ([]RentDueItem, error)
	CreditScore(ctx context.Context, tenantID string) (*CreditScore, error)
	ComplianceRate(ctx context.Context) (*ComplianceReport, error)
}

type PropertyInput struct {
	Address     string  `json:"address"`
	RentCents   int64   `json:"rent_cents"`
	Description string  `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

// PropertyPatch carries the fields to change; nil fields are left alone.
type PropertyPatch struct {
	Address     *string `json:"address,omitempty"`
	RentCents   *int64  `json:"rent_cents,omitempty"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

type PaymentInput struct {
	AmountCents int64  `json:"amount_cents"`
	Month       string `json:"month"`
	Status      string `json:"status,omitempty"`
	Method      string `json:"method,omitempty"`
}

type RentDueItem struct {
	RentalID         string `json:"rental_id"`
	PropertyID       string `json:"property_id"`
	Address          string `json:"address"`
	TenantID         string `json:"tenant_id"`
	MonthlyRentCents int64  `json:"monthly_rent_cents"`
	Month            string `json:"month"`
	DaysOverdue      int    `json:"days_overdue"`
}

type CreditScore struct {
	TenantID           string  `json:"tenant_id"`
	Score              int     `json:"score"`
	OnTimeRate         float64 `json:"on_time_rate"`
	MonthsOfTenancy    int     `json:"months_of_tenancy"`
	TotalPayments      int     `json:"total_payments"`
	OnTimePayments     int     `json:"on_time_payments"`
	LongPaymentHistory bool    `json:"long_payment_history"`
}

type ComplianceReport struct {
	Month       string  `json:"month"`
	LiveRentals int     `json:"live_rentals"`
	Compliant   int     `json:"compliant"`
	Rate        float64 `json:"rate"`
}
