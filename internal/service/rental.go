package service

import (
	"context"
	"time"

	"rentease-backend/internal/apperror"
	"rentease-backend/internal/clock"
	"rentease-backend/internal/config"
	"rentease-backend/internal/domain"
	"rentease-backend/internal/logger"
	"rentease-backend/internal/metrics"
	"rentease-backend/internal/repository"
	"rentease-backend/internal/utils"
)

const (
	prefixRental      = "rental"
	prefixTermination = "term"
	prefixRenewal     = "renew"
)

type rentalService struct {
	store   repository.Store
	clock   clock.Clock
	cfg     config.LifecycleConfig
	metrics *metrics.Metrics
}

func NewRentalService(store repository.Store, clk clock.Clock, cfg config.LifecycleConfig, m *metrics.Metrics) RentalService {
	return &rentalService{
		store:   store,
		clock:   clk,
		cfg:     cfg,
		metrics: m,
	}
}

func (s *rentalService) RequestRental(ctx context.Context, tenantID, propertyID string, durationMonths *int) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.RequestRental", "tenantID", tenantID, "propertyID", propertyID)
	now := s.clock.Now()
	today := utils.Today(now)

	var created domain.Rental
	err := update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		prop, err := repository.Lookup(tx.Properties, propertyID)
		if err != nil {
			return apperror.NotFound("property %s not found", propertyID)
		}
		if blocker := BlockingRental(propertyID, tx.Rentals, now); blocker != nil {
			return apperror.Conflict("property is currently rented")
		}

		open := 0
		for _, r := range tx.Rentals {
			if r.TenantID != tenantID {
				continue
			}
			if r.PropertyID == propertyID && r.Status == domain.RentalStatusPending {
				return apperror.Conflict("a pending request for this property already exists")
			}
			if r.Status == domain.RentalStatusPending || Blocks(r, now) {
				open++
			}
		}
		if open >= s.cfg.MaxOpenRentals {
			return apperror.Conflict("tenant already has the maximum of %d open rentals", s.cfg.MaxOpenRentals)
		}

		months, err := s.rentalDuration(prop, durationMonths)
		if err != nil {
			return err
		}

		start := today
		if prop.StartDate != nil {
			offered, err := utils.ParseDate(*prop.StartDate)
			if err != nil {
				return apperror.Internal(err, "property has a malformed start date")
			}
			if !offered.Before(today) {
				start = offered
			}
		}
		end := utils.FormatDate(utils.AddMonths(start, months))

		created = domain.Rental{
			ID:               s.store.GenerateID(prefixRental),
			TenantID:         tenantID,
			LandlordID:       prop.OwnerID,
			PropertyID:       prop.ID,
			StartDate:        utils.FormatDate(start),
			EndDate:          &end,
			Status:           domain.RentalStatusPending,
			MonthlyRentCents: prop.RentCents,
			CreatedOn:        now,
			UpdatedOn:        now,
		}
		tx.Rentals = append(tx.Rentals, created)
		tx.touch(repository.CollectionRentals)
		return nil
	})
	if err != nil {
		return nil, finish("request_rental", s.metrics, err)
	}

	logger.Info("Rental requested", "rental_id", created.ID, "property_id", propertyID, "tenant_id", tenantID, "end_date", *created.EndDate)
	logger.ExitMethod("rentalService.RequestRental", "rentalID", created.ID)
	return &created, nil
}

// rentalDuration resolves the requested duration in months. A property with
// an offer window sets the minimum; the ceiling applies either way.
func (s *rentalService) rentalDuration(prop domain.Property, requested *int) (int, error) {
	minimum := 1
	months := s.cfg.DefaultDurationMonths
	if prop.HasWindow() {
		start, err := utils.ParseDate(*prop.StartDate)
		if err != nil {
			return 0, apperror.Internal(err, "property has a malformed start date")
		}
		end, err := utils.ParseDate(*prop.EndDate)
		if err != nil {
			return 0, apperror.Internal(err, "property has a malformed end date")
		}
		minimum = utils.MonthsBetween(start, end)
		if minimum < 1 {
			minimum = 1
		}
		months = minimum
	}
	if requested != nil {
		months = *requested
	}

	if months < 1 {
		return 0, apperror.Validation("rental duration must be at least 1 month")
	}
	if months < minimum {
		return 0, apperror.Validation("rental duration cannot be less than %d months", minimum)
	}
	if months > s.cfg.MaxDurationMonths {
		return 0, apperror.Validation("rental duration cannot exceed %d months", s.cfg.MaxDurationMonths)
	}
	return months, nil
}

func (s *rentalService) ApproveRental(ctx context.Context, landlordID, rentalID string) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.ApproveRental", "landlordID", landlordID, "rentalID", rentalID)
	now := s.clock.Now()

	var approved domain.Rental
	err := update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		ri, pi, err := s.ownedRental(tx, landlordID, rentalID)
		if err != nil {
			return err
		}
		rental := &tx.Rentals[ri]
		if rental.Status != domain.RentalStatusPending {
			return apperror.Conflict("rental is %s, only pending rentals can be approved", rental.Status)
		}

		// Check-and-set: inside the update no other writer can approve a
		// competing request for the same property.
		if other := otherBlocker(tx.Rentals, *rental, now); other != nil {
			return apperror.Conflict("property already has a live rental %s", other.ID)
		}

		if rental.EndDate == nil {
			start, err := utils.ParseDate(rental.StartDate)
			if err != nil {
				return apperror.Internal(err, "rental has a malformed start date")
			}
			end := utils.FormatDate(utils.AddMonths(start, s.cfg.DefaultApprovalMonths))
			rental.EndDate = &end
		}
		prop := &tx.Properties[pi]
		rental.LandlordID = prop.OwnerID
		if err := tx.move(ri, domain.RentalStatusActive, now); err != nil {
			return err
		}

		prop.Available = false
		prop.UpdatedOn = now
		tx.touch(repository.CollectionProperties)

		approved = tx.Rentals[ri]
		return nil
	})
	if err != nil {
		return nil, finish("approve_rental", s.metrics, err)
	}

	logger.ExitMethod("rentalService.ApproveRental", "rentalID", rentalID)
	return &approved, nil
}

func (s *rentalService) DeclineRental(ctx context.Context, landlordID, rentalID string) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.DeclineRental", "landlordID", landlordID, "rentalID", rentalID)
	now := s.clock.Now()

	var declined domain.Rental
	err := update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		ri, pi, err := s.ownedRental(tx, landlordID, rentalID)
		if err != nil {
			return err
		}
		if status := tx.Rentals[ri].Status; status != domain.RentalStatusPending {
			return apperror.Conflict("rental is %s, only pending rentals can be declined", status)
		}
		tx.Rentals[ri].LandlordID = tx.Properties[pi].OwnerID
		if err := tx.move(ri, domain.RentalStatusCancelled, now); err != nil {
			return err
		}
		declined = tx.Rentals[ri]
		return nil
	})
	if err != nil {
		return nil, finish("decline_rental", s.metrics, err)
	}

	logger.ExitMethod("rentalService.DeclineRental", "rentalID", rentalID)
	return &declined, nil
}

func (s *rentalService) RequestTermination(ctx context.Context, tenantID, rentalID, requestedEndDate, reason string) (*domain.RentalTermination, error) {
	logger.EnterMethod("rentalService.RequestTermination", "tenantID", tenantID, "rentalID", rentalID)
	now := s.clock.Now()

	var created domain.RentalTermination
	err := update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		requested, err := utils.ParseDate(requestedEndDate)
		if err != nil {
			return apperror.Validation("%s", err.Error())
		}
		ri, err := s.tenantRental(tx, tenantID, rentalID)
		if err != nil {
			return err
		}
		rental := &tx.Rentals[ri]
		if rental.Status != domain.RentalStatusActive {
			return apperror.Conflict("rental is %s, only active rentals can be terminated", rental.Status)
		}
		if !Blocks(*rental, now) {
			return apperror.Conflict("rental ended on %s, the tenancy is already over", *rental.EndDate)
		}
		earliest := utils.AddMonths(utils.Today(now), s.cfg.MinNoticeMonths)
		if requested.Before(earliest) {
			return apperror.Validation("termination requires at least %d months notice, earliest end date is %s",
				s.cfg.MinNoticeMonths, utils.FormatDate(earliest))
		}
		for _, t := range tx.Terminations {
			if t.RentalID == rentalID && t.Status == domain.RequestStatusPending {
				return apperror.Conflict("a termination request is already pending for this rental")
			}
		}

		created = domain.RentalTermination{
			ID:               s.store.GenerateID(prefixTermination),
			RentalID:         rental.ID,
			TenantID:         rental.TenantID,
			LandlordID:       s.ownerOf(tx, *rental),
			RequestedEndDate: utils.FormatDate(requested),
			PreviousEndDate:  copyString(rental.EndDate),
			Reason:           reason,
			Status:           domain.RequestStatusPending,
			CreatedOn:        now,
			UpdatedOn:        now,
		}
		tx.Terminations = append(tx.Terminations, created)
		tx.touch(repository.CollectionTerminations)

		// Readers see the requested end date before the landlord decides.
		end := created.RequestedEndDate
		rental.EndDate = &end
		if other := otherBlocker(tx.Rentals, *rental, now); other != nil {
			return apperror.Conflict("property already has a live rental %s", other.ID)
		}
		return tx.move(ri, domain.RentalStatusTerminating, now)
	})
	if err != nil {
		return nil, finish("request_termination", s.metrics, err)
	}

	logger.ExitMethod("rentalService.RequestTermination", "terminationID", created.ID)
	return &created, nil
}

func (s *rentalService) ApproveTermination(ctx context.Context, landlordID, terminationID string) (*domain.RentalTermination, error) {
	return s.decideTermination(ctx, landlordID, terminationID, true)
}

func (s *rentalService) RejectTermination(ctx context.Context, landlordID, terminationID string) (*domain.RentalTermination, error) {
	return s.decideTermination(ctx, landlordID, terminationID, false)
}

func (s *rentalService) decideTermination(ctx context.Context, landlordID, terminationID string, approve bool) (*domain.RentalTermination, error) {
	op := "reject_termination"
	if approve {
		op = "approve_termination"
	}
	logger.EnterMethod("rentalService."+op, "landlordID", landlordID, "terminationID", terminationID)
	now := s.clock.Now()

	var decided domain.RentalTermination
	err := update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		ti, ok := repository.FindByID(tx.Terminations, terminationID)
		if !ok {
			return apperror.NotFound("termination %s not found", terminationID)
		}
		term := &tx.Terminations[ti]
		ri, pi, err := s.ownedRental(tx, landlordID, term.RentalID)
		if err != nil {
			return err
		}
		if term.Status != domain.RequestStatusPending {
			return apperror.Conflict("termination is already %s", term.Status)
		}
		rental := &tx.Rentals[ri]
		if rental.Status != domain.RentalStatusTerminating {
			return apperror.Conflict("rental is %s, expected terminating", rental.Status)
		}

		prop := &tx.Properties[pi]
		term.LandlordID = prop.OwnerID
		rental.LandlordID = prop.OwnerID
		term.UpdatedOn = now
		term.DecidedOn = &now
		tx.touch(repository.CollectionTerminations)

		if approve {
			term.Status = domain.RequestStatusApproved
			if err := tx.move(ri, domain.RentalStatusCompleted, now); err != nil {
				return err
			}
			// The property stays unavailable until the landlord re-lists it.
			prop.MostRecentRentalEndDate = copyString(rental.EndDate)
			prop.UpdatedOn = now
			tx.touch(repository.CollectionProperties)
		} else {
			term.Status = domain.RequestStatusRejected
			if s.cfg.RestoreEndDateOnTerminationReject {
				rental.EndDate = copyString(term.PreviousEndDate)
			}
			if err := tx.move(ri, domain.RentalStatusActive, now); err != nil {
				return err
			}
		}
		decided = *term
		return nil
	})
	if err != nil {
		return nil, finish(op, s.metrics, err)
	}

	logger.ExitMethod("rentalService."+op, "terminationID", terminationID, "status", decided.Status)
	return &decided, nil
}

func (s *rentalService) RequestRenewal(ctx context.Context, tenantID, rentalID string, durationMonths int) (*domain.RentalRenewal, error) {
	logger.EnterMethod("rentalService.RequestRenewal", "tenantID", tenantID, "rentalID", rentalID, "months", durationMonths)
	now := s.clock.Now()

	var created domain.RentalRenewal
	err := update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		if durationMonths < 1 || durationMonths > s.cfg.MaxDurationMonths {
			return apperror.Validation("renewal duration must be between 1 and %d months", s.cfg.MaxDurationMonths)
		}
		ri, err := s.tenantRental(tx, tenantID, rentalID)
		if err != nil {
			return err
		}
		rental := &tx.Rentals[ri]
		if rental.Status != domain.RentalStatusActive {
			return apperror.Conflict("rental is %s, only active rentals can be renewed", rental.Status)
		}
		if !Blocks(*rental, now) {
			return apperror.Conflict("rental ended on %s, the tenancy is already over", *rental.EndDate)
		}
		for _, r := range tx.Renewals {
			if r.RentalID == rentalID && r.Status == domain.RequestStatusPending {
				return apperror.Conflict("a renewal request is already pending for this rental")
			}
		}

		anchor := rental.StartDate
		if rental.EndDate != nil {
			anchor = *rental.EndDate
		}
		from, err := utils.ParseDate(anchor)
		if err != nil {
			return apperror.Internal(err, "rental has a malformed date")
		}

		created = domain.RentalRenewal{
			ID:                 s.store.GenerateID(prefixRenewal),
			RentalID:           rental.ID,
			TenantID:           rental.TenantID,
			LandlordID:         s.ownerOf(tx, *rental),
			DurationMonths:     durationMonths,
			RequestedStartDate: utils.FormatDate(from.AddDate(0, 0, 1)),
			Status:             domain.RequestStatusPending,
			CreatedOn:          now,
			UpdatedOn:          now,
		}
		tx.Renewals = append(tx.Renewals, created)
		tx.touch(repository.CollectionRenewals)
		return tx.move(ri, domain.RentalStatusRenewalPending, now)
	})
	if err != nil {
		return nil, finish("request_renewal", s.metrics, err)
	}

	logger.ExitMethod("rentalService.RequestRenewal", "renewalID", created.ID)
	return &created, nil
}

func (s *rentalService) ApproveRenewal(ctx context.Context, landlordID, renewalID string) (*domain.RentalRenewal, error) {
	return s.decideRenewal(ctx, landlordID, renewalID, true)
}

func (s *rentalService) RejectRenewal(ctx context.Context, landlordID, renewalID string) (*domain.RentalRenewal, error) {
	return s.decideRenewal(ctx, landlordID, renewalID, false)
}

func (s *rentalService) decideRenewal(ctx context.Context, landlordID, renewalID string, approve bool) (*domain.RentalRenewal, error) {
	op := "reject_renewal"
	if approve {
		op = "approve_renewal"
	}
	logger.EnterMethod("rentalService."+op, "landlordID", landlordID, "renewalID", renewalID)
	now := s.clock.Now()

	var decided domain.RentalRenewal
	err := update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		ni, ok := repository.FindByID(tx.Renewals, renewalID)
		if !ok {
			return apperror.NotFound("renewal %s not found", renewalID)
		}
		renewal := &tx.Renewals[ni]
		ri, pi, err := s.ownedRental(tx, landlordID, renewal.RentalID)
		if err != nil {
			return err
		}
		if renewal.Status != domain.RequestStatusPending {
			return apperror.Conflict("renewal is already %s", renewal.Status)
		}
		rental := &tx.Rentals[ri]
		if rental.Status != domain.RentalStatusRenewalPending {
			return apperror.Conflict("rental is %s, expected renewal_pending", rental.Status)
		}

		owner := tx.Properties[pi].OwnerID
		renewal.LandlordID = owner
		rental.LandlordID = owner
		renewal.UpdatedOn = now
		renewal.DecidedOn = &now
		tx.touch(repository.CollectionRenewals)

		if approve {
			start, err := utils.ParseDate(renewal.RequestedStartDate)
			if err != nil {
				return apperror.Internal(err, "renewal has a malformed start date")
			}
			end := utils.FormatDate(utils.AddMonths(start, renewal.DurationMonths))
			renewal.Status = domain.RequestStatusApproved
			rental.StartDate = renewal.RequestedStartDate
			rental.EndDate = &end
			// The lease may have run out while the request waited and the
			// property been let again since.
			if other := otherBlocker(tx.Rentals, *rental, now); other != nil {
				return apperror.Conflict("property already has a live rental %s", other.ID)
			}
			prop := &tx.Properties[pi]
			if prop.Available {
				prop.Available = false
				prop.UpdatedOn = now
				tx.touch(repository.CollectionProperties)
			}
		} else {
			renewal.Status = domain.RequestStatusRejected
		}
		if err := tx.move(ri, domain.RentalStatusActive, now); err != nil {
			return err
		}
		decided = *renewal
		return nil
	})
	if err != nil {
		return nil, finish(op, s.metrics, err)
	}

	logger.ExitMethod("rentalService."+op, "renewalID", renewalID, "status", decided.Status)
	return &decided, nil
}

func (s *rentalService) ListPropertyAgain(ctx context.Context, landlordID, propertyID string, startOverride *string) (*domain.Property, error) {
	logger.EnterMethod("rentalService.ListPropertyAgain", "landlordID", landlordID, "propertyID", propertyID)
	now := s.clock.Now()

	var listed domain.Property
	err := update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		pi, ok := repository.FindByID(tx.Properties, propertyID)
		if !ok {
			return apperror.NotFound("property %s not found", propertyID)
		}
		prop := &tx.Properties[pi]
		if prop.OwnerID != landlordID {
			return apperror.Forbidden("you do not own this property")
		}
		if blocker := BlockingRental(propertyID, tx.Rentals, now); blocker != nil {
			return apperror.Conflict("property is still occupied by rental %s", blocker.ID)
		}

		last := lastOccupancy(tx.Rentals, propertyID)
		var start time.Time
		switch {
		case startOverride != nil && *startOverride != "":
			t, err := utils.ParseDate(*startOverride)
			if err != nil {
				return apperror.Validation("%s", err.Error())
			}
			start = t
		case last != nil && last.EndDate != nil:
			t, err := utils.ParseDate(*last.EndDate)
			if err != nil {
				return apperror.Internal(err, "rental has a malformed end date")
			}
			start = t
		case last != nil:
			t, err := utils.ParseDate(last.StartDate)
			if err != nil {
				return apperror.Internal(err, "rental has a malformed start date")
			}
			start = utils.AddMonths(t, 12)
		default:
			start = utils.Today(now)
		}

		startStr := utils.FormatDate(start)
		endStr := utils.FormatDate(utils.AddMonths(start, s.cfg.RelistWindowMonths))
		prop.Available = true
		prop.StartDate = &startStr
		prop.EndDate = &endStr
		if last != nil && last.EndDate != nil {
			prop.MostRecentRentalEndDate = copyString(last.EndDate)
		}
		prop.UpdatedOn = now
		tx.touch(repository.CollectionProperties)
		listed = *prop
		return nil
	})
	if err != nil {
		return nil, finish("list_property_again", s.metrics, err)
	}

	logger.Info("Property listed again", "property_id", propertyID, "start_date", *listed.StartDate, "end_date", *listed.EndDate)
	logger.ExitMethod("rentalService.ListPropertyAgain", "propertyID", propertyID)
	return &listed, nil
}

// lastOccupancy returns the rental that most recently occupied propertyID:
// the latest end date, or the latest start among open-ended rentals when none
// has ended. Rentals that never became active are ignored.
func lastOccupancy(rentals []domain.Rental, propertyID string) *domain.Rental {
	var best *domain.Rental
	for i := range rentals {
		r := &rentals[i]
		if r.PropertyID != propertyID || r.Status == domain.RentalStatusPending || r.Status == domain.RentalStatusCancelled {
			continue
		}
		if best == nil || laterOccupancy(*r, *best) {
			best = r
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

func laterOccupancy(a, b domain.Rental) bool {
	switch {
	case a.EndDate != nil && b.EndDate == nil:
		return true
	case a.EndDate == nil && b.EndDate != nil:
		return false
	case a.EndDate != nil && b.EndDate != nil && *a.EndDate != *b.EndDate:
		return *a.EndDate > *b.EndDate
	}
	return a.StartDate > b.StartDate
}

func (s *rentalService) GetRental(ctx context.Context, userID string, role domain.Role, rentalID string) (*domain.Rental, error) {
	var found domain.Rental
	err := view(ctx, s.store, func(snap *repository.Snapshot) error {
		rental, err := repository.Lookup(snap.Rentals, rentalID)
		if err != nil {
			return apperror.NotFound("rental %s not found", rentalID)
		}
		if !canSeeRental(snap, userID, role, rental) {
			return apperror.Forbidden("you are not a party to this rental")
		}
		found = rental
		return nil
	})
	if err != nil {
		return nil, finish("get_rental", s.metrics, err)
	}
	return &found, nil
}

func (s *rentalService) ListRentals(ctx context.Context, userID string, role domain.Role, status string) ([]domain.Rental, error) {
	filter := domain.RentalStatus(status)
	if status != "" && !filter.Valid() {
		return nil, finish("list_rentals", s.metrics, apperror.Validation("unknown rental status %q", status))
	}
	if role != domain.RoleTenant && role != domain.RoleLandlord {
		return nil, finish("list_rentals", s.metrics, apperror.Forbidden("only tenants and landlords have rentals"))
	}

	out := []domain.Rental{}
	err := view(ctx, s.store, func(snap *repository.Snapshot) error {
		for _, r := range snap.Rentals {
			if status != "" && r.Status != filter {
				continue
			}
			if canSeeRental(snap, userID, role, r) {
				out = append(out, r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, finish("list_rentals", s.metrics, err)
	}
	return out, nil
}

func (s *rentalService) ListPendingTerminations(ctx context.Context, landlordID string) ([]domain.RentalTermination, error) {
	out := []domain.RentalTermination{}
	err := view(ctx, s.store, func(snap *repository.Snapshot) error {
		for _, t := range snap.Terminations {
			if t.Status != domain.RequestStatusPending {
				continue
			}
			if owner, ok := rentalOwner(snap.Rentals, snap.Properties, t.RentalID); ok && owner == landlordID {
				t.LandlordID = owner
				out = append(out, t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, finish("list_pending_terminations", s.metrics, err)
	}
	return out, nil
}

func (s *rentalService) ListPendingRenewals(ctx context.Context, landlordID string) ([]domain.RentalRenewal, error) {
	out := []domain.RentalRenewal{}
	err := view(ctx, s.store, func(snap *repository.Snapshot) error {
		for _, r := range snap.Renewals {
			if r.Status != domain.RequestStatusPending {
				continue
			}
			if owner, ok := rentalOwner(snap.Rentals, snap.Properties, r.RentalID); ok && owner == landlordID {
				r.LandlordID = owner
				out = append(out, r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, finish("list_pending_renewals", s.metrics, err)
	}
	return out, nil
}

// ownedRental resolves a rental and its property and checks that landlordID
// owns the property. Ownership always comes from the property record.
func (s *rentalService) ownedRental(tx *recordTx, landlordID, rentalID string) (int, int, error) {
	ri, ok := repository.FindByID(tx.Rentals, rentalID)
	if !ok {
		return 0, 0, apperror.NotFound("rental %s not found", rentalID)
	}
	pi, ok := repository.FindByID(tx.Properties, tx.Rentals[ri].PropertyID)
	if !ok {
		return 0, 0, apperror.NotFound("property %s not found", tx.Rentals[ri].PropertyID)
	}
	if tx.Properties[pi].OwnerID != landlordID {
		return 0, 0, apperror.Forbidden("you do not own this property")
	}
	return ri, pi, nil
}

func (s *rentalService) tenantRental(tx *recordTx, tenantID, rentalID string) (int, error) {
	ri, ok := repository.FindByID(tx.Rentals, rentalID)
	if !ok {
		return 0, apperror.NotFound("rental %s not found", rentalID)
	}
	if tx.Rentals[ri].TenantID != tenantID {
		return 0, apperror.Forbidden("you are not the tenant of this rental")
	}
	return ri, nil
}

func (s *rentalService) ownerOf(tx *recordTx, r domain.Rental) string {
	if owner, ok := rentalOwner(tx.Rentals, tx.Properties, r.ID); ok {
		return owner
	}
	return r.LandlordID
}

func rentalOwner(rentals []domain.Rental, properties []domain.Property, rentalID string) (string, bool) {
	rental, err := repository.Lookup(rentals, rentalID)
	if err != nil {
		return "", false
	}
	prop, err := repository.Lookup(properties, rental.PropertyID)
	if err != nil {
		return "", false
	}
	return prop.OwnerID, true
}

func canSeeRental(snap *repository.Snapshot, userID string, role domain.Role, r domain.Rental) bool {
	switch role {
	case domain.RoleTenant:
		return r.TenantID == userID
	case domain.RoleLandlord:
		owner, ok := rentalOwner(snap.Rentals, snap.Properties, r.ID)
		return ok && owner == userID
	}
	return false
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
