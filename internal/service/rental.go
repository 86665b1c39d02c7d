package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"surfboard-marketplace-backend/internal/domain"
	"surfboard-marketplace-backend/internal/logger"
	"surfboard-marketplace-backend/internal/metrics"
	"surfboard-marketplace-backend/internal/repository"
	"surfboard-marketplace-backend/internal/utils"
)

type rentalService struct {
	tx           repository.TxManager
	rentals      repository.RentalRepository
	transactions repository.TransactionRepository
}

func NewRentalService(tx repository.TxManager, rentals repository.RentalRepository, transactions repository.TransactionRepository) RentalService {
	return &rentalService{
		tx:           tx,
		rentals:      rentals,
		transactions: transactions,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, actor domain.Principal, in CreateRentalInput) (rental *domain.Rental, err error) {
	const method = "rentalService.CreateRental"
	logger.EnterMethod(ctx, method, "surfboard_id", in.SurfboardID, "renter_id", actor.ID)
	defer func() { exitMethod(ctx, method, err) }()

	start, err := utils.ParseRentalDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date: %v", domain.ErrInvalidOperation, err)
	}
	end, err := utils.ParseRentalDate(in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date: %v", domain.ErrInvalidOperation, err)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end_date must be after start_date", domain.ErrInvalidOperation)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		board, err := repos.Surfboards.GetByIDForUpdate(ctx, in.SurfboardID)
		if err != nil {
			return err
		}
		if !board.ForRent {
			return fmt.Errorf("%w: surfboard %d is not available for rent", domain.ErrNotFound, board.ID)
		}
		if board.OwnerID == actor.ID {
			return fmt.Errorf("%w: cannot rent your own surfboard", domain.ErrInvalidOperation)
		}
		price, ok := board.DailyPrice()
		if !ok {
			return fmt.Errorf("%w: surfboard %d has no daily price", domain.ErrInvalidOperation, board.ID)
		}

		overlapping, err := repos.Rentals.CountOverlapping(ctx, board.ID, start, end)
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return fmt.Errorf("%w: surfboard is already booked for these dates", domain.ErrConflict)
		}

		rental = &domain.Rental{
			SurfboardID:      board.ID,
			RenterID:         actor.ID,
			OwnerID:          board.OwnerID,
			StartDate:        start,
			EndDate:          end,
			TotalAmountCents: domain.Cents(utils.RentalTotalCents(start, end, int64(price))),
			Status:           domain.RentalStatusPending,
		}
		return repos.Rentals.Create(ctx, rental)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.RecordBookingConflict()
		}
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) TransitionRental(ctx context.Context, actor domain.Principal, rentalID int32, next domain.RentalStatus) (rental *domain.Rental, err error) {
	const method = "rentalService.TransitionRental"
	logger.EnterMethod(ctx, method, "rental_id", rentalID, "status", next, "actor_id", actor.ID)
	defer func() { exitMethod(ctx, method, err) }()

	rule, ok := domain.TransitionRuleFor(next)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a valid target status", domain.ErrInvalidOperation, next)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		rt, err := repos.Rentals.GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if !rule.Permits(rt.PartyOf(actor.ID)) {
			return fmt.Errorf("%w: you may not mark rental %d %s", domain.ErrForbidden, rt.ID, next)
		}
		if rt.Status.IsTerminal() {
			return fmt.Errorf("%w: rental %d is already %s", domain.ErrInvalidOperation, rt.ID, rt.Status)
		}
		if !domain.CanTransition(rt.Status, next) {
			return fmt.Errorf("%w: cannot move rental from %s to %s", domain.ErrInvalidOperation, rt.Status, next)
		}

		rt.Status = next
		if err := repos.Rentals.UpdateStatus(ctx, rt); err != nil {
			return err
		}
		if next == domain.RentalStatusApproved {
			txn := &domain.Transaction{
				RentalID:        rt.ID,
				AmountCents:     rt.TotalAmountCents,
				Status:          domain.TransactionStatusPending,
				TransactionType: domain.TransactionTypeRental,
			}
			if err := repos.Transactions.Create(ctx, txn); err != nil {
				return err
			}
		}
		rental = rt
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordRentalTransition(string(next))
	return rental, nil
}

func (s *rentalService) ListRentals(ctx context.Context, actor domain.Principal, role, status string) ([]domain.RentalDetails, error) {
	filter := domain.RentalFilter{UserID: actor.ID, Role: domain.RentalRoleAll}
	switch r := domain.RentalRole(role); r {
	case domain.RentalRoleOwner, domain.RentalRoleRenter:
		filter.Role = r
	}
	if status != "" {
		filter.Status = domain.RentalStatus(status)
		if !filter.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown rental status %q", domain.ErrInvalidOperation, status)
		}
	}
	return s.rentals.List(ctx, filter)
}

// GetRental hides rentals the caller is not a party to.
func (s *rentalService) GetRental(ctx context.Context, actor domain.Principal, rentalID int32) (*domain.RentalDetails, error) {
	details, err := s.rentals.GetDetails(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if details.PartyOf(actor.ID) == domain.RentalPartyNone {
		return nil, fmt.Errorf("%w: rental %d", domain.ErrNotFound, rentalID)
	}
	details.Transactions, err = s.transactions.ListByRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	return details, nil
}

// ExpireStalePending cancels pending rentals whose start date has passed.
func (s *rentalService) ExpireStalePending(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.rentals.CancelStalePending(ctx, utils.StartOfDay(now))
	if err != nil {
		return 0, err
	}
	for range ids {
		metrics.RecordRentalTransition(string(domain.RentalStatusCancelled))
	}
	if len(ids) > 0 {
		logger.InfoContext(ctx, "Cancelled stale pending rentals", "count", len(ids), "rental_ids", ids)
	}
	return len(ids), nil
}
