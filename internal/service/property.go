package service

import (
	"context"
	"strings"

	"rentease-backend/internal/apperror"
	"rentease-backend/internal/clock"
	"rentease-backend/internal/domain"
	"rentease-backend/internal/logger"
	"rentease-backend/internal/metrics"
	"rentease-backend/internal/repository"
	"rentease-backend/internal/utils"
)

const (
	prefixProperty = "prop"

	// minOfferWindowMonths is the shortest rental window a landlord may offer.
	minOfferWindowMonths = 2
)

type propertyService struct {
	store   repository.Store
	clock   clock.Clock
	metrics *metrics.Metrics
}

func NewPropertyService(store repository.Store, clk clock.Clock, m *metrics.Metrics) PropertyService {
	return &propertyService{store: store, clock: clk, metrics: m}
}

func (s *propertyService) CreateProperty(ctx context.Context, ownerID string, in PropertyInput) (*domain.Property, error) {
	logger.EnterMethod("propertyService.CreateProperty", "ownerID", ownerID)
	now := s.clock.Now()

	prop := domain.Property{
		OwnerID:     ownerID,
		Address:     strings.TrimSpace(in.Address),
		RentCents:   in.RentCents,
		Available:   true,
		Description: in.Description,
		StartDate:   copyString(in.StartDate),
		EndDate:     copyString(in.EndDate),
		CreatedOn:   now,
		UpdatedOn:   now,
	}
	if err := validateProperty(prop); err != nil {
		return nil, finish("create_property", s.metrics, err)
	}

	err := update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		prop.ID = s.store.GenerateID(prefixProperty)
		tx.Properties = append(tx.Properties, prop)
		tx.touch(repository.CollectionProperties)
		return nil
	})
	if err != nil {
		return nil, finish("create_property", s.metrics, err)
	}

	logger.Info("Property created", "property_id", prop.ID, "owner_id", ownerID)
	logger.ExitMethod("propertyService.CreateProperty", "propertyID", prop.ID)
	return &prop, nil
}

// UpdateProperty edits the listing. Existing rentals keep the rent they were
// created with.
func (s *propertyService) UpdateProperty(ctx context.Context, ownerID, propertyID string, patch PropertyPatch) (*domain.Property, error) {
	logger.EnterMethod("propertyService.UpdateProperty", "ownerID", ownerID, "propertyID", propertyID)
	now := s.clock.Now()

	var updated domain.Property
	err := update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		pi, err := ownedProperty(tx.Properties, ownerID, propertyID)
		if err != nil {
			return err
		}
		prop := tx.Properties[pi]
		if patch.Address != nil {
			prop.Address = strings.TrimSpace(*patch.Address)
		}
		if patch.RentCents != nil {
			prop.RentCents = *patch.RentCents
		}
		if patch.Description != nil {
			prop.Description = *patch.Description
		}
		if patch.StartDate != nil {
			prop.StartDate = emptyToNil(*patch.StartDate)
		}
		if patch.EndDate != nil {
			prop.EndDate = emptyToNil(*patch.EndDate)
		}
		if err := validateProperty(prop); err != nil {
			return err
		}
		prop.UpdatedOn = now
		tx.Properties[pi] = prop
		tx.touch(repository.CollectionProperties)
		updated = prop
		return nil
	})
	if err != nil {
		return nil, finish("update_property", s.metrics, err)
	}

	logger.ExitMethod("propertyService.UpdateProperty", "propertyID", propertyID)
	return &updated, nil
}

func (s *propertyService) SetAvailability(ctx context.Context, ownerID, propertyID string, available bool) (*domain.Property, error) {
	logger.EnterMethod("propertyService.SetAvailability", "ownerID", ownerID, "propertyID", propertyID, "available", available)
	now := s.clock.Now()

	var updated domain.Property
	err := update(ctx, s.store, s.metrics, func(tx *recordTx) error {
		pi, err := ownedProperty(tx.Properties, ownerID, propertyID)
		if err != nil {
			return err
		}
		if available {
			if blocker := BlockingRental(propertyID, tx.Rentals, now); blocker != nil {
				return apperror.Conflict("property is occupied by rental %s", blocker.ID)
			}
		}
		tx.Properties[pi].Available = available
		tx.Properties[pi].UpdatedOn = now
		tx.touch(repository.CollectionProperties)
		updated = tx.Properties[pi]
		return nil
	})
	if err != nil {
		return nil, finish("set_availability", s.metrics, err)
	}

	logger.ExitMethod("propertyService.SetAvailability", "propertyID", propertyID)
	return &updated, nil
}

func (s *propertyService) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	var found domain.Property
	err := view(ctx, s.store, func(snap *repository.Snapshot) error {
		prop, err := repository.Lookup(snap.Properties, propertyID)
		if err != nil {
			return apperror.NotFound("property %s not found", propertyID)
		}
		found = prop
		return nil
	})
	if err != nil {
		return nil, finish("get_property", s.metrics, err)
	}
	return &found, nil
}

func (s *propertyService) ListMyProperties(ctx context.Context, ownerID string) ([]domain.Property, error) {
	out := []domain.Property{}
	err := view(ctx, s.store, func(snap *repository.Snapshot) error {
		for _, p := range snap.Properties {
			if p.OwnerID == ownerID {
				out = append(out, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, finish("list_my_properties", s.metrics, err)
	}
	return out, nil
}

// ListAvailableProperties returns properties that are flagged available and
// not blocked by a live rental. The flag alone can be stale.
func (s *propertyService) ListAvailableProperties(ctx context.Context) ([]domain.Property, error) {
	now := s.clock.Now()
	out := []domain.Property{}
	err := view(ctx, s.store, func(snap *repository.Snapshot) error {
		for _, p := range snap.Properties {
			if p.Available && BlockingRental(p.ID, snap.Rentals, now) == nil {
				out = append(out, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, finish("list_available_properties", s.metrics, err)
	}
	return out, nil
}

func validateProperty(p domain.Property) error {
	if p.Address == "" {
		return apperror.Validation("address is required")
	}
	if p.RentCents <= 0 {
		return apperror.Validation("rent must be positive")
	}
	if (p.StartDate == nil) != (p.EndDate == nil) {
		return apperror.Validation("start date and end date must be set together")
	}
	if !p.HasWindow() {
		return nil
	}
	start, err := utils.ParseDate(*p.StartDate)
	if err != nil {
		return apperror.Validation("%s", err.Error())
	}
	end, err := utils.ParseDate(*p.EndDate)
	if err != nil {
		return apperror.Validation("%s", err.Error())
	}
	if utils.MonthsBetween(start, end) < minOfferWindowMonths {
		return apperror.Validation("rental window must span at least %d months", minOfferWindowMonths)
	}
	return nil
}

func ownedProperty(properties []domain.Property, ownerID, propertyID string) (int, error) {
	pi, ok := repository.FindByID(properties, propertyID)
	if !ok {
		return 0, apperror.NotFound("property %s not found", propertyID)
	}
	if properties[pi].OwnerID != ownerID {
		return 0, apperror.Forbidden("you do not own this property")
	}
	return pi, nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
