package service

import (
	"sort"
	"time"

	"rentease-backend/internal/domain"
	"rentease-backend/internal/logger"
	"rentease-backend/internal/utils"
)

// BlockingRental returns the rental that keeps propertyID occupied at now, or
// nil if the property may be rented or re-listed.
//
// A rental blocks when its status is live and its end date is unset or
// strictly after now. More than one blocker means the single-live-rental rule
// was broken; the one ending soonest is returned and a warning is logged.
func BlockingRental(propertyID string, rentals []domain.Rental, now time.Time) *domain.Rental {
	blockers := BlockingRentals(propertyID, rentals, now)
	if len(blockers) == 0 {
		return nil
	}
	if len(blockers) > 1 {
		ids := make([]string, len(blockers))
		for i, r := range blockers {
			ids[i] = r.ID
		}
		logger.Warn("Multiple live rentals block one property", "property_id", propertyID, "rental_ids", ids)
	}
	r := blockers[0]
	return &r
}

// BlockingRentals returns every blocking rental on propertyID, soonest end
// first, open-ended last, ties broken by id.
func BlockingRentals(propertyID string, rentals []domain.Rental, now time.Time) []domain.Rental {
	var out []domain.Rental
	for _, r := range rentals {
		if r.PropertyID == propertyID && Blocks(r, now) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].EndDate, out[j].EndDate
		switch {
		case a == nil && b == nil:
			return out[i].ID < out[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a < *b
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Blocks reports whether r occupies its property at now.
func Blocks(r domain.Rental, now time.Time) bool {
	if !r.Status.IsLive() {
		return false
	}
	if r.EndDate == nil {
		return true
	}
	end, err := utils.ParseDate(*r.EndDate)
	if err != nil {
		// An unreadable end date cannot prove the occupancy is over.
		logger.Warn("Rental has malformed end date", "rental_id", r.ID, "end_date", *r.EndDate)
		return true
	}
	return end.After(now)
}

// otherBlocker returns a rental other than r that occupies r's property at
// now, or nil.
func otherBlocker(rentals []domain.Rental, r domain.Rental, now time.Time) *domain.Rental {
	for i := range rentals {
		if rentals[i].ID != r.ID && rentals[i].PropertyID == r.PropertyID && Blocks(rentals[i], now) {
			return &rentals[i]
		}
	}
	return nil
}
