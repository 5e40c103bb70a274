package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentease-backend/internal/domain"
	"rentease-backend/internal/service"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, string, error) {
	args := m.Called(ctx, name, email, password, role)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

// MockPropertyService
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) CreateProperty(ctx context.Context, ownerID string, in service.PropertyInput) (*domain.Property, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyService) UpdateProperty(ctx context.Context, ownerID, propertyID string, patch service.PropertyPatch) (*domain.Property, error) {
	args := m.Called(ctx, ownerID, propertyID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyService) SetAvailability(ctx context.Context, ownerID, propertyID string, available bool) (*domain.Property, error) {
	args := m.Called(ctx, ownerID, propertyID, available)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyService) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyService) ListMyProperties(ctx context.Context, ownerID string) ([]domain.Property, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyService) ListAvailableProperties(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Property), args.Error(1)
}

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) RequestRental(ctx context.Context, tenantID, propertyID string, durationMonths *int) (*domain.Rental, error) {
	args := m.Called(ctx, tenantID, propertyID, durationMonths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ApproveRental(ctx context.Context, landlordID, rentalID string) (*domain.Rental, error) {
	args := m.Called(ctx, landlordID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) DeclineRental(ctx context.Context, landlordID, rentalID string) (*domain.Rental, error) {
	args := m.Called(ctx, landlordID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) RequestTermination(ctx context.Context, tenantID, rentalID, requestedEndDate, reason string) (*domain.RentalTermination, error) {
	args := m.Called(ctx, tenantID, rentalID, requestedEndDate, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTermination), args.Error(1)
}
func (m *MockRentalService) ApproveTermination(ctx context.Context, landlordID, terminationID string) (*domain.RentalTermination, error) {
	args := m.Called(ctx, landlordID, terminationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTermination), args.Error(1)
}
func (m *MockRentalService) RejectTermination(ctx context.Context, landlordID, terminationID string) (*domain.RentalTermination, error) {
	args := m.Called(ctx, landlordID, terminationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTermination), args.Error(1)
}
func (m *MockRentalService) RequestRenewal(ctx context.Context, tenantID, rentalID string, durationMonths int) (*domain.RentalRenewal, error) {
	args := m.Called(ctx, tenantID, rentalID, durationMonths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRenewal), args.Error(1)
}
func (m *MockRentalService) ApproveRenewal(ctx context.Context, landlordID, renewalID string) (*domain.RentalRenewal, error) {
	args := m.Called(ctx, landlordID, renewalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRenewal), args.Error(1)
}
func (m *MockRentalService) RejectRenewal(ctx context.Context, landlordID, renewalID string) (*domain.RentalRenewal, error) {
	args := m.Called(ctx, landlordID, renewalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRenewal), args.Error(1)
}
func (m *MockRentalService) ListPropertyAgain(ctx context.Context, landlordID, propertyID string, startOverride *string) (*domain.Property, error) {
	args := m.Called(ctx, landlordID, propertyID, startOverride)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, userID string, role domain.Role, rentalID string) (*domain.Rental, error) {
	args := m.Called(ctx, userID, role, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListRentals(ctx context.Context, userID string, role domain.Role, status string) ([]domain.Rental, error) {
	args := m.Called(ctx, userID, role, status)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListPendingTerminations(ctx context.Context, landlordID string) ([]domain.RentalTermination, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).([]domain.RentalTermination), args.Error(1)
}
func (m *MockRentalService) ListPendingRenewals(ctx context.Context, landlordID string) ([]domain.RentalRenewal, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).([]domain.RentalRenewal), args.Error(1)
}

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreatePayment(ctx context.Context, tenantID, rentalID string, in service.PaymentInput) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, rentalID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) ListPayments(ctx context.Context, userID string, role domain.Role, rentalID string) ([]domain.Payment, error) {
	args := m.Called(ctx, userID, role, rentalID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockDashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) RentDue(ctx context.Context, landlordID string) ([]service.RentDueItem, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).([]service.RentDueItem), args.Error(1)
}
func (m *MockDashboardService) CreditScore(ctx context.Context, tenantID string) (*service.CreditScore, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreditScore), args.Error(1)
}
func (m *MockDashboardService) ComplianceRate(ctx context.Context) (*service.ComplianceReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ComplianceReport), args.Error(1)
}
