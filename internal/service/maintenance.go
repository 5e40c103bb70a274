package service

import (
	"context"
	"fmt"
	"time"

	"rentease-backend/internal/clock"
	"rentease-backend/internal/domain"
	"rentease-backend/internal/logger"
	"rentease-backend/internal/metrics"
	"rentease-backend/internal/repository"
)

const (
	InvariantSingleLiveRental = "single_live_rental"
	InvariantSubRequestStatus = "sub_request_status"
)

// MaintenanceService backs the scheduled jobs.
type MaintenanceService interface {
	// ReconcileAvailability clears the available flag on properties a live
	// rental blocks and returns how many were changed. It never sets the flag.
	ReconcileAvailability(ctx context.Context) (int, error)
	CheckIntegrity(ctx context.Context) (*IntegrityReport, error)
}

type Violation struct {
	Invariant  string `json:"invariant"`
	PropertyID string `json:"property_id,omitempty"`
	RentalID   string `json:"rental_id,omitempty"`
	Detail     string `json:"detail"`
}

type IntegrityReport struct {
	CheckedAt  time.Time   `json:"checked_at"`
	Violations []Violation `json:"violations"`
}

// Count returns the number of violations of one invariant.
func (r IntegrityReport) Count(invariant string) int {
	n := 0
	for _, v := range r.Violations {
		if v.Invariant == invariant {
			n++
		}
	}
	return n
}

type maintenanceService struct {
	store   repository.Store
	clock   clock.Clock
	metrics *metrics.Metrics
}

func NewMaintenanceService(store repository.Store, clk clock.Clock, m *metrics.Metrics) MaintenanceService {
	return &maintenanceService{store: store, clock: clk, metrics: m}
}

func (s *maintenanceService) ReconcileAvailability(ctx context.Context) (int, error) {
	now := s.clock.Now()
	changed := 0
	err := update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		for i := range tx.Properties {
			p := &tx.Properties[i]
			if !p.Available {
				continue
			}
			if blocker := BlockingRental(p.ID, tx.Rentals, now); blocker != nil {
				logger.Info("Clearing stale availability", "property_id", p.ID, "rental_id", blocker.ID)
				p.Available = false
				p.UpdatedOn = now
				changed++
			}
		}
		if changed > 0 {
			tx.touch(repository.CollectionProperties)
		}
		return nil
	})
	if err != nil {
		return 0, finish("reconcile_availability", s.metrics, err)
	}
	s.metrics.AddAvailabilityCorrections(changed)
	return changed, nil
}

func (s *maintenanceService) CheckIntegrity(ctx context.Context) (*IntegrityReport, error) {
	now := s.clock.Now()
	report := &IntegrityReport{CheckedAt: now}
	err := view(ctx, s.store, func(snap *repository.Snapshot) error {
		report.Violations = FindViolations(snap, now)
		return nil
	})
	if err != nil {
		return nil, finish("check_integrity", s.metrics, err)
	}
	for _, v := range report.Violations {
		logger.Warn("Integrity violation", "invariant", v.Invariant, "property_id", v.PropertyID, "rental_id", v.RentalID, "detail", v.Detail)
	}
	s.metrics.SetIntegrityViolations(InvariantSingleLiveRental, report.Count(InvariantSingleLiveRental))
	s.metrics.SetIntegrityViolations(InvariantSubRequestStatus, report.Count(InvariantSubRequestStatus))
	return report, nil
}

// FindViolations checks that no property has more than one blocking rental
// and that a rental is terminating or renewal_pending exactly when it has
// one pending termination or renewal.
func FindViolations(snap *repository.Snapshot, now time.Time) []Violation {
	var out []Violation

	seen := make(map[string]bool)
	for _, r := range snap.Rentals {
		if seen[r.PropertyID] {
			continue
		}
		seen[r.PropertyID] = true
		if blockers := BlockingRentals(r.PropertyID, snap.Rentals, now); len(blockers) > 1 {
			ids := make([]string, len(blockers))
			for i, b := range blockers {
				ids[i] = b.ID
			}
			out = append(out, Violation{
				Invariant:  InvariantSingleLiveRental,
				PropertyID: r.PropertyID,
				Detail:     fmt.Sprintf("%d live rentals: %v", len(blockers), ids),
			})
		}
	}

	pendingTerms := make(map[string]int)
	for _, t := range snap.Terminations {
		if t.Status == domain.RequestStatusPending {
			pendingTerms[t.RentalID]++
		}
	}
	pendingRenewals := make(map[string]int)
	for _, r := range snap.Renewals {
		if r.Status == domain.RequestStatusPending {
			pendingRenewals[r.RentalID]++
		}
	}

	known := make(map[string]bool, len(snap.Rentals))
	for _, r := range snap.Rentals {
		known[r.ID] = true
		terminating := r.Status == domain.RentalStatusTerminating
		if terminating != (pendingTerms[r.ID] == 1) || pendingTerms[r.ID] > 1 {
			out = append(out, Violation{
				Invariant:  InvariantSubRequestStatus,
				PropertyID: r.PropertyID,
				RentalID:   r.ID,
				Detail:     fmt.Sprintf("status %s with %d pending terminations", r.Status, pendingTerms[r.ID]),
			})
		}
		renewing := r.Status == domain.RentalStatusRenewalPending
		if renewing != (pendingRenewals[r.ID] == 1) || pendingRenewals[r.ID] > 1 {
			out = append(out, Violation{
				Invariant:  InvariantSubRequestStatus,
				PropertyID: r.PropertyID,
				RentalID:   r.ID,
				Detail:     fmt.Sprintf("status %s with %d pending renewals", r.Status, pendingRenewals[r.ID]),
			})
		}
	}
	for id, n := range pendingTerms {
		if !known[id] {
			out = append(out, Violation{Invariant: InvariantSubRequestStatus, RentalID: id, Detail: fmt.Sprintf("%d pending terminations for missing rental", n)})
		}
	}
	for id, n := range pendingRenewals {
		if !known[id] {
			out = append(out, Violation{Invariant: InvariantSubRequestStatus, RentalID: id, Detail: fmt.Sprintf("%d pending renewals for missing rental", n)})
		}
	}
	return out
}
