package repository

import (
	"context"
	"time"

	"surfboard-marketplace-backend/internal/domain"
)

// Reads that find no row return an error wrapping domain.ErrNotFound.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type SurfboardRepository interface {
	Create(ctx context.Context, board *domain.Surfboard) error
	GetByID(ctx context.Context, id int32) (*domain.Surfboard, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Surfboard, error)
	Update(ctx context.Context, id int32, patch domain.SurfboardPatch) (*domain.Surfboard, error)
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.SurfboardFilter) ([]domain.Surfboard, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Surfboard, error)
	ListStoredByPartner(ctx context.Context, partnerID int32) ([]domain.StoredSurfboard, error)
	SetStorage(ctx context.Context, id int32, storage domain.SurfboardStorage) error
	ReconcileStorageFlags(ctx context.Context) (int64, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error)
	GetDetails(ctx context.Context, id int32) (*domain.RentalDetails, error)
	UpdateStatus(ctx context.Context, rental *domain.Rental) error
	CountOverlapping(ctx context.Context, surfboardID int32, start, end time.Time) (int, error)
	CountBySurfboard(ctx context.Context, surfboardID int32, statuses []domain.RentalStatus) (int, error)
	List(ctx context.Context, filter domain.RentalFilter) ([]domain.RentalDetails, error)
	CancelStalePending(ctx context.Context, startedBefore time.Time) ([]int32, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	ListByRental(ctx context.Context, rentalID int32) ([]domain.Transaction, error)
}

type StoragePartnerRepository interface {
	Create(ctx context.Context, partner *domain.StoragePartner) error
	GetByID(ctx context.Context, id int32) (*domain.StoragePartner, error)
	GetByUserID(ctx context.Context, userID int32) (*domain.StoragePartner, error)
	Update(ctx context.Context, id int32, patch domain.StoragePartnerPatch) (*domain.StoragePartner, error)
	SetVerified(ctx context.Context, id int32, verified bool) (*domain.StoragePartner, error)
	ListVerified(ctx context.Context) ([]domain.StoragePartner, error)
}

type StorageAgreementRepository interface {
	Create(ctx context.Context, agreement *domain.StorageAgreement) error
	// GetByID and GetByIDForUpdate also fill PartnerUserID.
	GetByID(ctx context.Context, id int32) (*domain.StorageAgreement, error)
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.StorageAgreement, error)
	// FindOpenBySurfboard does not lock; callers hold the surfboard row lock.
	FindOpenBySurfboard(ctx context.Context, surfboardID int32) (*domain.StorageAgreement, error)
	UpdateStatus(ctx context.Context, agreement *domain.StorageAgreement) error
	CountHeldByPartner(ctx context.Context, partnerID int32) (int, error)
	ListByPartner(ctx context.Context, partnerID int32, status domain.AgreementStatus) ([]domain.StorageAgreement, error)
}

// Repositories is one consistent view of the store, either pooled or bound to
// a single transaction.
type Repositories struct {
	Users        UserRepository
	Surfboards   SurfboardRepository
	Rentals      RentalRepository
	Transactions TransactionRepository
	Partners     StoragePartnerRepository
	Agreements   StorageAgreementRepository
}

// TxManager runs fn inside one database transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
