package service

import (
	"context"
	"errors"
	"time"

	"surfboard-marketplace-backend/internal/domain"
	"surfboard-marketplace-backend/internal/logger"
)

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Me(ctx context.Context, actor domain.Principal) (*domain.User, error)
}

type SurfboardService interface {
	ListSurfboards(ctx context.Context, filter domain.SurfboardFilter) ([]domain.Surfboard, error)
	ListMySurfboards(ctx context.Context, actor domain.Principal) ([]domain.Surfboard, error)
	GetSurfboard(ctx context.Context, id int32) (*domain.Surfboard, error)
	CreateSurfboard(ctx context.Context, actor domain.Principal, in CreateSurfboardInput) (*domain.Surfboard, error)
	UpdateSurfboard(ctx context.Context, actor domain.Principal, id int32, patch domain.SurfboardPatch) (*domain.Surfboard, error)
	DeleteSurfboard(ctx context.Context, actor domain.Principal, id int32) error
}

type RentalService interface {
	CreateRental(ctx context.Context, actor domain.Principal, in CreateRentalInput) (*domain.Rental, error)
	TransitionRental(ctx context.Context, actor domain.Principal, rentalID int32, next domain.RentalStatus) (*domain.Rental, error)
	ListRentals(ctx context.Context, actor domain.Principal, role, status string) ([]domain.RentalDetails, error)
	GetRental(ctx context.Context, actor domain.Principal, rentalID int32) (*domain.RentalDetails, error)
	ExpireStalePending(ctx context.Context, now time.Time) (int, error)
}

type StorageService interface {
	RequestStorage(ctx context.Context, actor domain.Principal, surfboardID, partnerID int32) (*domain.StorageAgreement, error)
	DecideRequest(ctx context.Context, actor domain.Principal, requestID int32, decision domain.StorageDecision) (*domain.StorageAgreement, error)
	ReleaseStorage(ctx context.Context, actor domain.Principal, surfboardID int32) (*domain.StorageAgreement, error)
	ListRequests(ctx context.Context, actor domain.Principal, status string) ([]domain.StorageAgreement, error)
	ListStoredSurfboards(ctx context.Context, actor domain.Principal, partnerID int32) ([]domain.StoredSurfboard, error)
	ReconcileStorageFlags(ctx context.Context) (int64, error)
}

type PartnerService interface {
	RegisterPartner(ctx context.Context, actor domain.Principal, in RegisterPartnerInput) (*domain.StoragePartner, error)
	ListPartners(ctx context.Context) ([]domain.StoragePartner, error)
	GetPartner(ctx context.Context, id int32) (*domain.StoragePartner, error)
	UpdatePartner(ctx context.Context, actor domain.Principal, id int32, patch domain.StoragePartnerPatch) (*domain.StoragePartner, error)
	VerifyPartner(ctx context.Context, actor domain.Principal, id int32) (*domain.StoragePartner, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.UserRole
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type CreateSurfboardInput struct {
	Title            string
	Description      string
	Condition        domain.SurfboardCondition
	SalePriceCents   *domain.Cents
	PricePerDayCents *domain.Cents
	ImageURL         *string
	Dimensions       *string
	Location         *string
	ForRent          bool
	ForSale          bool
}

type CreateRentalInput struct {
	SurfboardID int32
	StartDate   string
	EndDate     string
}

type RegisterPartnerInput struct {
	Name           string
	Description    *string
	Location       string
	Address        string
	ContactEmail   string
	ContactPhone   *string
	CommissionRate float64
	MaxCapacity    *int32
}

// exitMethod logs the outcome of a service call. Refusals that map to a
// client error are logged at warn; anything else is an error.
func exitMethod(ctx context.Context, method string, err error, args ...any) {
	switch {
	case err == nil:
		logger.ExitMethod(ctx, method, args...)
	case isClientError(err):
		logger.WarnContext(ctx, "request refused", append([]any{"method", method, "error", err}, args...)...)
	default:
		logger.ExitMethodWithError(ctx, method, err, args...)
	}
}

func isClientError(err error) bool {
	for _, kind := range []error{domain.ErrNotFound, domain.ErrForbidden, domain.ErrInvalidOperation,
		domain.ErrConflict, domain.ErrUnauthenticated} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
