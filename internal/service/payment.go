package service

import (
	"context"
	"sort"

	"rentease-backend/internal/apperror"
	"rentease-backend/internal/clock"
	"rentease-backend/internal/domain"
	"rentease-backend/internal/logger"
	"rentease-backend/internal/metrics"
	"rentease-backend/internal/repository"
	"rentease-backend/internal/utils"
)

const prefixPayment = "pay"

type paymentService struct {
	store   repository.Store
	clock   clock.Clock
	metrics *metrics.Metrics
}

func NewPaymentService(store repository.Store, clk clock.Clock, m *metrics.Metrics) PaymentService {
	return &paymentService{store: store, clock: clk, metrics: m}
}

// CreatePayment records a tenant-declared payment. There is at most one
// payment per rental and month.
func (s *paymentService) CreatePayment(ctx context.Context, tenantID, rentalID string, in PaymentInput) (*domain.Payment, error) {
	logger.EnterMethod("paymentService.CreatePayment", "tenantID", tenantID, "rentalID", rentalID, "month", in.Month)
	now := s.clock.Now()

	month, err := utils.ParseMonth(in.Month)
	if err != nil {
		return nil, finish("create_payment", s.metrics, apperror.Validation("%s", err.Error()))
	}
	if in.AmountCents <= 0 {
		return nil, finish("create_payment", s.metrics, apperror.Validation("amount must be positive"))
	}
	status := domain.PaymentStatusPaid
	if in.Status != "" {
		status = domain.PaymentStatus(in.Status)
		if !status.Valid() {
			return nil, finish("create_payment", s.metrics, apperror.Validation("unknown payment status %q", in.Status))
		}
	}

	var created domain.Payment
	err = update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		rental, err := repository.Lookup(tx.Rentals, rentalID)
		if err != nil {
			return apperror.NotFound("rental %s not found", rentalID)
		}
		if rental.TenantID != tenantID {
			return apperror.Forbidden("you are not the tenant of this rental")
		}
		if rental.Status == domain.RentalStatusPending || rental.Status == domain.RentalStatusCancelled {
			return apperror.Conflict("rental is %s, payments need an approved rental", rental.Status)
		}
		key := utils.FormatMonth(month)
		for _, p := range tx.Payments {
			if p.RentalID == rentalID && p.Month == key {
				return apperror.Conflict("a payment for %s already exists", key)
			}
		}

		created = domain.Payment{
			ID:          s.store.GenerateID(prefixPayment),
			RentalID:    rentalID,
			AmountCents: in.AmountCents,
			Month:       key,
			Status:      status,
			Method:      in.Method,
			PaidOn:      now,
			CreatedOn:   now,
		}
		tx.Payments = append(tx.Payments, created)
		tx.touch(repository.CollectionPayments)
		return nil
	})
	if err != nil {
		return nil, finish("create_payment", s.metrics, err)
	}

	logger.Info("Payment recorded", "payment_id", created.ID, "rental_id", rentalID, "month", created.Month, "status", created.Status)
	logger.ExitMethod("paymentService.CreatePayment", "paymentID", created.ID)
	return &created, nil
}

// ListPayments returns a rental's payments ordered by month. Tenants and the
// owning landlord see their rentals; banks and the ministry see any.
func (s *paymentService) ListPayments(ctx context.Context, userID string, role domain.Role, rentalID string) ([]domain.Payment, error) {
	out := []domain.Payment{}
	err := view(ctx, s.store, func(snap *repository.Snapshot) error {
		rental, err := repository.Lookup(snap.Rentals, rentalID)
		if err != nil {
			return apperror.NotFound("rental %s not found", rentalID)
		}
		if role != domain.RoleBank && role != domain.RoleMinistry && !canSeeRental(snap, userID, role, rental) {
			return apperror.Forbidden("you are not a party to this rental")
		}
		out = append(out, snap.PaymentsForRental(rentalID)...)
		return nil
	})
	if err != nil {
		return nil, finish("list_payments", s.metrics, err)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}
