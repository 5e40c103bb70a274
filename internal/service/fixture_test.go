package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rentease-backend/internal/clock"
	"rentease-backend/internal/config"
	"rentease-backend/internal/domain"
	"rentease-backend/internal/repository"
	"rentease-backend/internal/repository/memory"
)

const (
	landlordID = "user_landlord"
	tenantID   = "user_tenant"
)

type fixture struct {
	store *memory.Store
	clock *clock.Fake
	cfg   config.LifecycleConfig

	rentalSvc      RentalService
	propertySvc    PropertyService
	paymentSvc     PaymentService
	dashboardSvc   DashboardService
	maintenanceSvc MaintenanceService
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(),
		clock: clock.NewFake(now),
		cfg:   config.DefaultLifecycle(),
	}
	f.build()
	return f
}

// build wires the services; call again after changing cfg.
func (f *fixture) build() {
	f.rentalSvc = NewRentalService(f.store, f.clock, f.cfg, nil)
	f.propertySvc = NewPropertyService(f.store, f.clock, nil)
	f.paymentSvc = NewPaymentService(f.store, f.clock, nil)
	f.dashboardSvc = NewDashboardService(f.store, f.clock, nil)
	f.maintenanceSvc = NewMaintenanceService(f.store, f.clock, nil)
}

func (f *fixture) createProperty(t *testing.T, start, end *string) *domain.Property {
	t.Helper()
	p, err := f.propertySvc.CreateProperty(context.Background(), landlordID, PropertyInput{
		Address:   "12 Harbour Road",
		RentCents: 150000,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	return p
}

// activeRental creates a property and an approved rental on it.
func (f *fixture) activeRental(t *testing.T, tenant string) *domain.Rental {
	t.Helper()
	ctx := context.Background()
	p := f.createProperty(t, nil, nil)
	r, err := f.rentalSvc.RequestRental(ctx, tenant, p.ID, nil)
	require.NoError(t, err)
	r, err = f.rentalSvc.ApproveRental(ctx, landlordID, r.ID)
	require.NoError(t, err)
	return r
}

func (f *fixture) snapshot(t *testing.T) *repository.Snapshot {
	t.Helper()
	var snap *repository.Snapshot
	err := f.store.View(context.Background(), func(r repository.Reader) error {
		var err error
		snap, err = repository.LoadSnapshot(context.Background(), r)
		return err
	})
	require.NoError(t, err)
	return snap
}

func (f *fixture) rental(t *testing.T, id string) domain.Rental {
	t.Helper()
	r, err := repository.Lookup(f.snapshot(t).Rentals, id)
	require.NoError(t, err)
	return r
}

func (f *fixture) property(t *testing.T, id string) domain.Property {
	t.Helper()
	p, err := repository.Lookup(f.snapshot(t).Properties, id)
	require.NoError(t, err)
	return p
}

func intPtr(n int) *int { return &n }
