package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"surfboard-marketplace-backend/internal/domain"
	"surfboard-marketplace-backend/internal/repository"
	"surfboard-marketplace-backend/internal/security"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockSurfboardRepo struct{ mock.Mock }

func (m *MockSurfboardRepo) Create(ctx context.Context, s *domain.Surfboard) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSurfboardRepo) GetByID(ctx context.Context, id int32) (*domain.Surfboard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Surfboard), args.Error(1)
}

func (m *MockSurfboardRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Surfboard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Surfboard), args.Error(1)
}

func (m *MockSurfboardRepo) Update(ctx context.Context, id int32, patch domain.SurfboardPatch) (*domain.Surfboard, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Surfboard), args.Error(1)
}

func (m *MockSurfboardRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSurfboardRepo) List(ctx context.Context, f domain.SurfboardFilter) ([]domain.Surfboard, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Surfboard), args.Error(1)
}

func (m *MockSurfboardRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Surfboard, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Surfboard), args.Error(1)
}

func (m *MockSurfboardRepo) ListStoredByPartner(ctx context.Context, partnerID int32) ([]domain.StoredSurfboard, error) {
	args := m.Called(ctx, partnerID)
	return args.Get(0).([]domain.StoredSurfboard), args.Error(1)
}

func (m *MockSurfboardRepo) SetStorage(ctx context.Context, id int32, st domain.SurfboardStorage) error {
	args := m.Called(ctx, id, st)
	return args.Error(0)
}

func (m *MockSurfboardRepo) ReconcileStorageFlags(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockRentalRepo struct{ mock.Mock }

func (m *MockRentalRepo) Create(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}

func (m *MockRentalRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) GetDetails(ctx context.Context, id int32) (*domain.RentalDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalDetails), args.Error(1)
}

func (m *MockRentalRepo) UpdateStatus(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}

func (m *MockRentalRepo) CountOverlapping(ctx context.Context, surfboardID int32, start, end time.Time) (int, error) {
	args := m.Called(ctx, surfboardID, start, end)
	return args.Int(0), args.Error(1)
}

func (m *MockRentalRepo) CountBySurfboard(ctx context.Context, surfboardID int32, statuses []domain.RentalStatus) (int, error) {
	args := m.Called(ctx, surfboardID, statuses)
	return args.Int(0), args.Error(1)
}

func (m *MockRentalRepo) List(ctx context.Context, f domain.RentalFilter) ([]domain.RentalDetails, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.RentalDetails), args.Error(1)
}

func (m *MockRentalRepo) CancelStalePending(ctx context.Context, before time.Time) ([]int32, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}

type MockTransactionRepo struct{ mock.Mock }

func (m *MockTransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransactionRepo) ListByRental(ctx context.Context, rentalID int32) ([]domain.Transaction, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

type MockPartnerRepo struct{ mock.Mock }

func (m *MockPartnerRepo) Create(ctx context.Context, p *domain.StoragePartner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepo) GetByID(ctx context.Context, id int32) (*domain.StoragePartner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoragePartner), args.Error(1)
}

func (m *MockPartnerRepo) GetByUserID(ctx context.Context, userID int32) (*domain.StoragePartner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoragePartner), args.Error(1)
}

func (m *MockPartnerRepo) Update(ctx context.Context, id int32, patch domain.StoragePartnerPatch) (*domain.StoragePartner, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoragePartner), args.Error(1)
}

func (m *MockPartnerRepo) SetVerified(ctx context.Context, id int32, verified bool) (*domain.StoragePartner, error) {
	args := m.Called(ctx, id, verified)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoragePartner), args.Error(1)
}

func (m *MockPartnerRepo) ListVerified(ctx context.Context) ([]domain.StoragePartner, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StoragePartner), args.Error(1)
}

type MockAgreementRepo struct{ mock.Mock }

func (m *MockAgreementRepo) Create(ctx context.Context, a *domain.StorageAgreement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgreementRepo) GetByID(ctx context.Context, id int32) (*domain.StorageAgreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StorageAgreement), args.Error(1)
}

func (m *MockAgreementRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.StorageAgreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StorageAgreement), args.Error(1)
}

func (m *MockAgreementRepo) FindOpenBySurfboard(ctx context.Context, surfboardID int32) (*domain.StorageAgreement, error) {
	args := m.Called(ctx, surfboardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StorageAgreement), args.Error(1)
}

func (m *MockAgreementRepo) UpdateStatus(ctx context.Context, a *domain.StorageAgreement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgreementRepo) CountHeldByPartner(ctx context.Context, partnerID int32) (int, error) {
	args := m.Called(ctx, partnerID)
	return args.Int(0), args.Error(1)
}

func (m *MockAgreementRepo) ListByPartner(ctx context.Context, partnerID int32, status domain.AgreementStatus) ([]domain.StorageAgreement, error) {
	args := m.Called(ctx, partnerID, status)
	return args.Get(0).([]domain.StorageAgreement), args.Error(1)
}

// mockRepos bundles one mock per repository.
type mockRepos struct {
	users        *MockUserRepo
	surfboards   *MockSurfboardRepo
	rentals      *MockRentalRepo
	transactions *MockTransactionRepo
	partners     *MockPartnerRepo
	agreements   *MockAgreementRepo
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		users:        new(MockUserRepo),
		surfboards:   new(MockSurfboardRepo),
		rentals:      new(MockRentalRepo),
		transactions: new(MockTransactionRepo),
		partners:     new(MockPartnerRepo),
		agreements:   new(MockAgreementRepo),
	}
}

func (m *mockRepos) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:        m.users,
		Surfboards:   m.surfboards,
		Rentals:      m.rentals,
		Transactions: m.transactions,
		Partners:     m.partners,
		Agreements:   m.agreements,
	}
}

// fakeTx runs the unit of work directly against the mocks and counts calls.
type fakeTx struct {
	repos repository.Repositories
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	f.calls++
	return fn(ctx, f.repos)
}

type MockTokenManager struct{ mock.Mock }

func (m *MockTokenManager) GenerateAccessToken(p domain.Principal) (string, time.Time, error) {
	args := m.Called(p)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenManager) ValidateToken(token string) (*security.UserClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}
