package http

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"

	"surfboard-marketplace-backend/internal/domain"
	"surfboard-marketplace-backend/internal/service"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, actor domain.Principal) (*domain.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockSurfboardService struct{ mock.Mock }

func (m *MockSurfboardService) ListSurfboards(ctx context.Context, filter domain.SurfboardFilter) ([]domain.Surfboard, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Surfboard), args.Error(1)
}

func (m *MockSurfboardService) ListMySurfboards(ctx context.Context, actor domain.Principal) ([]domain.Surfboard, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]domain.Surfboard), args.Error(1)
}

func (m *MockSurfboardService) GetSurfboard(ctx context.Context, id int32) (*domain.Surfboard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Surfboard), args.Error(1)
}

func (m *MockSurfboardService) CreateSurfboard(ctx context.Context, actor domain.Principal, in service.CreateSurfboardInput) (*domain.Surfboard, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Surfboard), args.Error(1)
}

func (m *MockSurfboardService) UpdateSurfboard(ctx context.Context, actor domain.Principal, id int32, patch domain.SurfboardPatch) (*domain.Surfboard, error) {
	args := m.Called(ctx, actor, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Surfboard), args.Error(1)
}

func (m *MockSurfboardService) DeleteSurfboard(ctx context.Context, actor domain.Principal, id int32) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

type MockRentalService struct{ mock.Mock }

func (m *MockRentalService) CreateRental(ctx context.Context, actor domain.Principal, in service.CreateRentalInput) (*domain.Rental, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) TransitionRental(ctx context.Context, actor domain.Principal, rentalID int32, next domain.RentalStatus) (*domain.Rental, error) {
	args := m.Called(ctx, actor, rentalID, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) ListRentals(ctx context.Context, actor domain.Principal, role, status string) ([]domain.RentalDetails, error) {
	args := m.Called(ctx, actor, role, status)
	return args.Get(0).([]domain.RentalDetails), args.Error(1)
}

func (m *MockRentalService) GetRental(ctx context.Context, actor domain.Principal, rentalID int32) (*domain.RentalDetails, error) {
	args := m.Called(ctx, actor, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalDetails), args.Error(1)
}

func (m *MockRentalService) ExpireStalePending(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

type MockStorageService struct{ mock.Mock }

func (m *MockStorageService) RequestStorage(ctx context.Context, actor domain.Principal, surfboardID, partnerID int32) (*domain.StorageAgreement, error) {
	args := m.Called(ctx, actor, surfboardID, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StorageAgreement), args.Error(1)
}

func (m *MockStorageService) DecideRequest(ctx context.Context, actor domain.Principal, requestID int32, decision domain.StorageDecision) (*domain.StorageAgreement, error) {
	args := m.Called(ctx, actor, requestID, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StorageAgreement), args.Error(1)
}

func (m *MockStorageService) ReleaseStorage(ctx context.Context, actor domain.Principal, surfboardID int32) (*domain.StorageAgreement, error) {
	args := m.Called(ctx, actor, surfboardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StorageAgreement), args.Error(1)
}

func (m *MockStorageService) ListRequests(ctx context.Context, actor domain.Principal, status string) ([]domain.StorageAgreement, error) {
	args := m.Called(ctx, actor, status)
	return args.Get(0).([]domain.StorageAgreement), args.Error(1)
}

func (m *MockStorageService) ListStoredSurfboards(ctx context.Context, actor domain.Principal, partnerID int32) ([]domain.StoredSurfboard, error) {
	args := m.Called(ctx, actor, partnerID)
	return args.Get(0).([]domain.StoredSurfboard), args.Error(1)
}

func (m *MockStorageService) ReconcileStorageFlags(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockPartnerService struct{ mock.Mock }

func (m *MockPartnerService) RegisterPartner(ctx context.Context, actor domain.Principal, in service.RegisterPartnerInput) (*domain.StoragePartner, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoragePartner), args.Error(1)
}

func (m *MockPartnerService) ListPartners(ctx context.Context) ([]domain.StoragePartner, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StoragePartner), args.Error(1)
}

func (m *MockPartnerService) GetPartner(ctx context.Context, id int32) (*domain.StoragePartner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoragePartner), args.Error(1)
}

func (m *MockPartnerService) UpdatePartner(ctx context.Context, actor domain.Principal, id int32, patch domain.StoragePartnerPatch) (*domain.StoragePartner, error) {
	args := m.Called(ctx, actor, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoragePartner), args.Error(1)
}

func (m *MockPartnerService) VerifyPartner(ctx context.Context, actor domain.Principal, id int32) (*domain.StoragePartner, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoragePartner), args.Error(1)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

var errDatabaseDown = errors.New("connection refused")
