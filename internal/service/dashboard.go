package service

import (
	"context"
	"math"
	"time"

	"rentease-backend/internal/apperror"
	"rentease-backend/internal/clock"
	"rentease-backend/internal/domain"
	"rentease-backend/internal/metrics"
	"rentease-backend/internal/repository"
	"rentease-backend/internal/utils"
)

const (
	creditScoreBase           = 500
	creditScoreOnTimeWeight   = 7 // per percentage point of on-time payments
	creditScorePerMonth       = 10
	creditScoreTenancyCap     = 200
	creditScoreHistoryBonus   = 100
	creditScoreHistoryMinimum = 6
	creditScoreMax            = 1000
)

type dashboardService struct {
	store   repository.Store
	clock   clock.Clock
	metrics *metrics.Metrics
}

func NewDashboardService(store repository.Store, clk clock.Clock, m *metrics.Metrics) DashboardService {
	return &dashboardService{store: store, clock: clk, metrics: m}
}

// RentDue lists the landlord's occupying rentals with no payment recorded for
// the current month, once the month is at least one day old.
func (s *dashboardService) RentDue(ctx context.Context, landlordID string) ([]RentDueItem, error) {
	now := s.clock.Now()
	month := utils.FormatMonth(now)
	overdue := utils.DaysBetween(utils.FirstOfMonth(now), now)

	out := []RentDueItem{}
	err := view(ctx, s.store, func(snap *repository.Snapshot) error {
		out = rentDue(snap, landlordID, now, month, overdue)
		return nil
	})
	if err != nil {
		return nil, finish("rent_due", s.metrics, err)
	}
	return out, nil
}

func rentDue(snap *repository.Snapshot, landlordID string, now time.Time, month string, daysOverdue int) []RentDueItem {
	out := []RentDueItem{}
	if daysOverdue <= 0 {
		return out
	}
	for _, r := range snap.Rentals {
		if !Blocks(r, now) {
			continue
		}
		prop, err := repository.Lookup(snap.Properties, r.PropertyID)
		if err != nil || prop.OwnerID != landlordID {
			continue
		}
		if hasPaymentFor(snap.Payments, r.ID, month, false) {
			continue
		}
		out = append(out, RentDueItem{
			RentalID:         r.ID,
			PropertyID:       r.PropertyID,
			Address:          prop.Address,
			TenantID:         r.TenantID,
			MonthlyRentCents: r.MonthlyRentCents,
			Month:            month,
			DaysOverdue:      daysOverdue,
		})
	}
	return out
}

// CreditScore scores a tenant from payment punctuality and tenancy length.
func (s *dashboardService) CreditScore(ctx context.Context, tenantID string) (*CreditScore, error) {
	now := s.clock.Now()

	var score CreditScore
	err := view(ctx, s.store, func(snap *repository.Snapshot) error {
		if i, ok := repository.FindByID(snap.Users, tenantID); !ok || snap.Users[i].Role != domain.RoleTenant {
			return apperror.NotFound("tenant %s not found", tenantID)
		}
		score = creditScore(snap, tenantID, now)
		return nil
	})
	if err != nil {
		return nil, finish("credit_score", s.metrics, err)
	}
	return &score, nil
}

func creditScore(snap *repository.Snapshot, tenantID string, now time.Time) CreditScore {
	cs := CreditScore{TenantID: tenantID}

	var oldest *time.Time
	for _, r := range snap.Rentals {
		if r.TenantID != tenantID {
			continue
		}
		for _, p := range snap.PaymentsForRental(r.ID) {
			cs.TotalPayments++
			if onTime(p) {
				cs.OnTimePayments++
			}
		}
		if !Blocks(r, now) {
			continue
		}
		if start, ok := tenancyStart(snap, r); ok && (oldest == nil || start.Before(*oldest)) {
			oldest = &start
		}
	}

	if cs.TotalPayments > 0 {
		cs.OnTimeRate = float64(cs.OnTimePayments) / float64(cs.TotalPayments)
	}
	if oldest != nil {
		cs.MonthsOfTenancy = utils.MonthsBetween(*oldest, now)
	}
	cs.LongPaymentHistory = cs.TotalPayments >= creditScoreHistoryMinimum

	score := float64(creditScoreBase)
	score += cs.OnTimeRate * 100 * creditScoreOnTimeWeight
	score += math.Min(float64(cs.MonthsOfTenancy*creditScorePerMonth), creditScoreTenancyCap)
	if cs.LongPaymentHistory {
		score += creditScoreHistoryBonus
	}
	cs.Score = int(math.Min(math.Round(score), creditScoreMax))
	return cs
}

// onTime reports whether p was paid no later than the month it covers.
func onTime(p domain.Payment) bool {
	return p.Status == domain.PaymentStatusPaid && utils.FormatMonth(p.PaidOn) <= p.Month
}

// ComplianceRate is the share of live rentals with a paid payment for the
// current month.
func (s *dashboardService) ComplianceRate(ctx context.Context) (*ComplianceReport, error) {
	now := s.clock.Now()

	var report ComplianceReport
	err := view(ctx, s.store, func(snap *repository.Snapshot) error {
		report = Compliance(snap, now)
		return nil
	})
	if err != nil {
		return nil, finish("compliance_rate", s.metrics, err)
	}
	return &report, nil
}

// Compliance computes the compliance report for the month containing now.
// Only rentals that still occupy their property are counted.
func Compliance(snap *repository.Snapshot, now time.Time) ComplianceReport {
	month := utils.FormatMonth(now)
	report := ComplianceReport{Month: month}
	for _, r := range snap.Rentals {
		if !Blocks(r, now) {
			continue
		}
		report.LiveRentals++
		if hasPaymentFor(snap.Payments, r.ID, month, true) {
			report.Compliant++
		}
	}
	if report.LiveRentals > 0 {
		report.Rate = float64(report.Compliant) / float64(report.LiveRentals)
	}
	return report
}

// tenancyStart is when r's tenancy began. An approved renewal moves the start
// date forward, so a renewed rental counts from the day it was created.
func tenancyStart(snap *repository.Snapshot, r domain.Rental) (time.Time, bool) {
	start, err := utils.ParseDate(r.StartDate)
	if err != nil {
		return time.Time{}, false
	}
	if r.CreatedOn.IsZero() {
		return start, true
	}
	for _, n := range snap.Renewals {
		if n.RentalID == r.ID && n.Status == domain.RequestStatusApproved {
			if created := utils.Today(r.CreatedOn); created.Before(start) {
				return created, true
			}
			break
		}
	}
	return start, true
}

func hasPaymentFor(payments []domain.Payment, rentalID, month string, paidOnly bool) bool {
	for _, p := range payments {
		if p.RentalID == rentalID && p.Month == month && (!paidOnly || p.Status == domain.PaymentStatusPaid) {
			return true
		}
	}
	return false
}
