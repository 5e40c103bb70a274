package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentease-backend/internal/apperror"
	"rentease-backend/internal/domain"
)

func TestCreatePayment_OnePerMonth(t *testing.T) {
	f := newFixture(t, day("2025-02-03"))
	ctx := context.Background()
	r := f.activeRental(t, tenantID)

	p, err := f.paymentSvc.CreatePayment(ctx, tenantID, r.ID, PaymentInput{AmountCents: 150000, Month: "2025-02", Method: "transfer"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, p.Status)
	assert.Equal(t, "2025-02", p.Month)

	_, err = f.paymentSvc.CreatePayment(ctx, tenantID, r.ID, PaymentInput{AmountCents: 150000, Month: "2025-02"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = f.paymentSvc.CreatePayment(ctx, tenantID, r.ID, PaymentInput{AmountCents: 150000, Month: "2025-03", Status: "pending"})
	require.NoError(t, err)

	payments, err := f.paymentSvc.ListPayments(ctx, tenantID, domain.RoleTenant, r.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "2025-02", payments[0].Month)
	assert.Equal(t, "2025-03", payments[1].Month)
}

func TestCreatePayment_Rejections(t *testing.T) {
	f := newFixture(t, day("2025-02-03"))
	ctx := context.Background()
	r := f.activeRental(t, tenantID)

	tests := []struct {
		name     string
		tenant   string
		rentalID string
		in       PaymentInput
		kind     apperror.Kind
	}{
		{"bad month", tenantID, r.ID, PaymentInput{AmountCents: 1, Month: "Feb 2025"}, apperror.KindValidation},
		{"zero amount", tenantID, r.ID, PaymentInput{AmountCents: 0, Month: "2025-02"}, apperror.KindValidation},
		{"unknown status", tenantID, r.ID, PaymentInput{AmountCents: 1, Month: "2025-02", Status: "refunded"}, apperror.KindValidation},
		{"other tenant", "user_other", r.ID, PaymentInput{AmountCents: 1, Month: "2025-02"}, apperror.KindForbidden},
		{"missing rental", tenantID, "rental_missing", PaymentInput{AmountCents: 1, Month: "2025-02"}, apperror.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.paymentSvc.CreatePayment(ctx, tt.tenant, tt.rentalID, tt.in)
			assert.True(t, apperror.Is(err, tt.kind), "got %v", err)
		})
	}

	p := f.createProperty(t, nil, nil)
	pending, err := f.rentalSvc.RequestRental(ctx, tenantID, p.ID, nil)
	require.NoError(t, err)
	_, err = f.paymentSvc.CreatePayment(ctx, tenantID, pending.ID, PaymentInput{AmountCents: 1, Month: "2025-02"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestListPayments_Access(t *testing.T) {
	f := newFixture(t, day("2025-02-03"))
	ctx := context.Background()
	r := f.activeRental(t, tenantID)

	_, err := f.paymentSvc.ListPayments(ctx, landlordID, domain.RoleLandlord, r.ID)
	assert.NoError(t, err)
	_, err = f.paymentSvc.ListPayments(ctx, "user_bank", domain.RoleBank, r.ID)
	assert.NoError(t, err)
	_, err = f.paymentSvc.ListPayments(ctx, "user_other", domain.RoleTenant, r.ID)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
}
