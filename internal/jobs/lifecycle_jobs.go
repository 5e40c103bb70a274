package jobs

import (
	"context"

	"rentease-backend/internal/logger"
)

// The exported jobs are cron entry points. runWithRecovery has already logged
// and counted any failure, so the error is dropped here.

// ReconcileAvailability clears the available flag on properties that still
// have a blocking rental.
func (jr *JobRunner) ReconcileAvailability() {
	_ = jr.runReconcileAvailability()
}

// CheckIntegrity reports properties with more than one blocking rental and
// rentals whose status disagrees with their pending requests.
func (jr *JobRunner) CheckIntegrity() {
	_ = jr.runCheckIntegrity()
}

// SnapshotCompliance publishes this month's payment compliance rate.
func (jr *JobRunner) SnapshotCompliance() {
	_ = jr.runSnapshotCompliance()
}

func (jr *JobRunner) runReconcileAvailability() error {
	return jr.runWithRecovery(JobReconcileAvailability, func(ctx context.Context) error {
		changed, err := jr.services.Maintenance.ReconcileAvailability(ctx)
		if err != nil {
			return err
		}
		logger.Info("Reconciled property availability", "corrected", changed)
		return nil
	})
}

func (jr *JobRunner) runCheckIntegrity() error {
	return jr.runWithRecovery(JobCheckIntegrity, func(ctx context.Context) error {
		report, err := jr.services.Maintenance.CheckIntegrity(ctx)
		if err != nil {
			return err
		}
		if len(report.Violations) > 0 {
			logger.Warn("Integrity check found violations", "count", len(report.Violations))
		} else {
			logger.Info("Integrity check passed")
		}
		return nil
	})
}

func (jr *JobRunner) runSnapshotCompliance() error {
	return jr.runWithRecovery(JobSnapshotCompliance, func(ctx context.Context) error {
		report, err := jr.services.Dashboard.ComplianceRate(ctx)
		if err != nil {
			return err
		}
		jr.metrics.SetComplianceRate(report.Rate)
		logger.Info("Compliance snapshot taken",
			"month", report.Month,
			"live_rentals", report.LiveRentals,
			"compliant", report.Compliant,
			"rate", report.Rate,
		)
		return nil
	})
}
