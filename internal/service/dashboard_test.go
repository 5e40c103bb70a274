package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentease-backend/internal/apperror"
	"rentease-backend/internal/domain"
	"rentease-backend/internal/repository"
)

func seedDashboard(t *testing.T, f *fixture) {
	t.Helper()
	require.NoError(t, f.store.Seed(repository.CollectionUsers, []domain.User{
		{ID: "user_t1", Role: domain.RoleTenant},
		{ID: "user_t2", Role: domain.RoleTenant},
		{ID: landlordID, Role: domain.RoleLandlord},
	}))
	require.NoError(t, f.store.Seed(repository.CollectionProperties, []domain.Property{
		{ID: "prop_1", OwnerID: landlordID, Address: "1 A St", RentCents: 100},
		{ID: "prop_2", OwnerID: landlordID, Address: "2 B St", RentCents: 100},
		{ID: "prop_3", OwnerID: "user_other_landlord", Address: "3 C St", RentCents: 100},
		{ID: "prop_4", OwnerID: landlordID, Address: "4 D St", RentCents: 100},
	}))
	require.NoError(t, f.store.Seed(repository.CollectionRentals, []domain.Rental{
		{ID: "rental_1", TenantID: "user_t1", PropertyID: "prop_1", StartDate: "2024-02-10", EndDate: strPtr("2026-02-10"), Status: domain.RentalStatusActive, MonthlyRentCents: 1000},
		{ID: "rental_2", TenantID: "user_t2", PropertyID: "prop_2", StartDate: "2024-11-10", EndDate: strPtr("2025-11-10"), Status: domain.RentalStatusTerminating, MonthlyRentCents: 2000},
		{ID: "rental_3", TenantID: "user_t2", PropertyID: "prop_3", StartDate: "2024-12-01", EndDate: strPtr("2025-12-01"), Status: domain.RentalStatusRenewalPending, MonthlyRentCents: 3000},
		{ID: "rental_4", TenantID: "user_t1", PropertyID: "prop_4", StartDate: "2023-01-01", EndDate: strPtr("2024-01-01"), Status: domain.RentalStatusCompleted, MonthlyRentCents: 4000},
	}))

	paidIn := func(month string, day int) time.Time {
		m, err := time.Parse("2006-01", month)
		require.NoError(t, err)
		return m.AddDate(0, 0, day-1)
	}
	payments := []domain.Payment{
		{ID: "pay_1", RentalID: "rental_1", Month: "2025-02", Status: domain.PaymentStatusPaid, PaidOn: paidIn("2025-02", 3)},
		{ID: "pay_2", RentalID: "rental_3", Month: "2025-02", Status: domain.PaymentStatusPending, PaidOn: paidIn("2025-02", 3)},
	}
	for i, month := range []string{"2024-08", "2024-09", "2024-10", "2024-11", "2024-12"} {
		payments = append(payments, domain.Payment{
			ID: "pay_t1_" + month, RentalID: "rental_1", Month: month, Status: domain.PaymentStatusPaid, PaidOn: paidIn(month, 1+i),
		})
	}
	// user_t2: two on time, two paid the following month
	payments = append(payments,
		domain.Payment{ID: "pay_t2_a", RentalID: "rental_2", Month: "2024-11", Status: domain.PaymentStatusPaid, PaidOn: paidIn("2024-11", 15)},
		domain.Payment{ID: "pay_t2_b", RentalID: "rental_2", Month: "2024-12", Status: domain.PaymentStatusPaid, PaidOn: paidIn("2025-01", 5)},
		domain.Payment{ID: "pay_t2_c", RentalID: "rental_3", Month: "2024-12", Status: domain.PaymentStatusPaid, PaidOn: paidIn("2024-12", 2)},
		domain.Payment{ID: "pay_t2_d", RentalID: "rental_3", Month: "2025-01", Status: domain.PaymentStatusPaid, PaidOn: paidIn("2025-02", 1)},
	)
	require.NoError(t, f.store.Seed(repository.CollectionPayments, payments))
}

func TestRentDue(t *testing.T) {
	f := newFixture(t, day("2025-02-10").Add(15*time.Hour))
	seedDashboard(t, f)
	ctx := context.Background()

	due, err := f.dashboardSvc.RentDue(ctx, landlordID)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "rental_2", due[0].RentalID)
	assert.Equal(t, "2 B St", due[0].Address)
	assert.Equal(t, 9, due[0].DaysOverdue)
	assert.Equal(t, "2025-02", due[0].Month)
	assert.Equal(t, int64(2000), due[0].MonthlyRentCents)

	f.clock.Set(day("2025-02-01").Add(20 * time.Hour))
	due, err = f.dashboardSvc.RentDue(ctx, landlordID)
	require.NoError(t, err)
	assert.Empty(t, due, "nothing is overdue on the first of the month")
}

func TestCreditScore(t *testing.T) {
	f := newFixture(t, day("2025-02-10").Add(15*time.Hour))
	seedDashboard(t, f)
	ctx := context.Background()

	t.Run("capped at maximum", func(t *testing.T) {
		score, err := f.dashboardSvc.CreditScore(ctx, "user_t1")
		require.NoError(t, err)
		assert.Equal(t, 6, score.TotalPayments)
		assert.Equal(t, 6, score.OnTimePayments)
		assert.Equal(t, 12, score.MonthsOfTenancy)
		assert.True(t, score.LongPaymentHistory)
		assert.Equal(t, 1000, score.Score)
	})

	t.Run("partial punctuality", func(t *testing.T) {
		score, err := f.dashboardSvc.CreditScore(ctx, "user_t2")
		require.NoError(t, err)
		assert.Equal(t, 5, score.TotalPayments)
		assert.Equal(t, 2, score.OnTimePayments)
		assert.InDelta(t, 0.4, score.OnTimeRate, 1e-9)
		assert.Equal(t, 3, score.MonthsOfTenancy)
		assert.False(t, score.LongPaymentHistory)
		// 500 + 40*7 + 3*10
		assert.Equal(t, 810, score.Score)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		_, err := f.dashboardSvc.CreditScore(ctx, "user_missing")
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
		_, err = f.dashboardSvc.CreditScore(ctx, landlordID)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

func TestComplianceRate(t *testing.T) {
	f := newFixture(t, day("2025-02-10"))
	seedDashboard(t, f)

	report, err := f.dashboardSvc.ComplianceRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-02", report.Month)
	assert.Equal(t, 3, report.LiveRentals)
	assert.Equal(t, 1, report.Compliant)
	assert.InDelta(t, 1.0/3.0, report.Rate, 1e-9)

	empty := Compliance(&repository.Snapshot{}, day("2025-02-10"))
	assert.Zero(t, empty.Rate)
}

func TestDashboardDoesNotMutate(t *testing.T) {
	f := newFixture(t, day("2025-02-10"))
	seedDashboard(t, f)
	ctx := context.Background()
	before := f.snapshot(t)

	_, err := f.dashboardSvc.RentDue(ctx, landlordID)
	require.NoError(t, err)
	_, err = f.dashboardSvc.CreditScore(ctx, "user_t1")
	require.NoError(t, err)
	_, err = f.dashboardSvc.ComplianceRate(ctx)
	require.NoError(t, err)

	assert.Equal(t, before, f.snapshot(t))
}
