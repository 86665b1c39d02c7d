package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"surfboard-marketplace-backend/internal/domain"
	"surfboard-marketplace-backend/internal/logger"
	"surfboard-marketplace-backend/internal/repository"
)

type surfboardService struct {
	tx         repository.TxManager
	surfboards repository.SurfboardRepository
}

func NewSurfboardService(tx repository.TxManager, surfboards repository.SurfboardRepository) SurfboardService {
	return &surfboardService{tx: tx, surfboards: surfboards}
}

func (s *surfboardService) ListSurfboards(ctx context.Context, filter domain.SurfboardFilter) ([]domain.Surfboard, error) {
	filter.Location = strings.TrimSpace(filter.Location)
	return s.surfboards.List(ctx, filter)
}

func (s *surfboardService) ListMySurfboards(ctx context.Context, actor domain.Principal) ([]domain.Surfboard, error) {
	return s.surfboards.ListByOwner(ctx, actor.ID)
}

func (s *surfboardService) GetSurfboard(ctx context.Context, id int32) (*domain.Surfboard, error) {
	return s.surfboards.GetByID(ctx, id)
}

func (s *surfboardService) CreateSurfboard(ctx context.Context, actor domain.Principal, in CreateSurfboardInput) (*domain.Surfboard, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidOperation)
	}
	if !in.Condition.IsValid() {
		return nil, fmt.Errorf("%w: unknown condition %q", domain.ErrInvalidOperation, in.Condition)
	}
	check := domain.SurfboardPatch{SalePriceCents: in.SalePriceCents, PricePerDayCents: in.PricePerDayCents}
	if err := check.Validate(); err != nil {
		return nil, err
	}

	board := &domain.Surfboard{
		OwnerID:          actor.ID,
		Title:            in.Title,
		Description:      in.Description,
		Condition:        in.Condition,
		SalePriceCents:   in.SalePriceCents,
		PricePerDayCents: in.PricePerDayCents,
		ImageURL:         in.ImageURL,
		Dimensions:       in.Dimensions,
		Location:         in.Location,
		ForRent:          in.ForRent,
		ForSale:          in.ForSale,
	}
	if err := s.surfboards.Create(ctx, board); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Surfboard listed", "surfboard_id", board.ID, "owner_id", actor.ID)
	return board, nil
}

func (s *surfboardService) UpdateSurfboard(ctx context.Context, actor domain.Principal, id int32, patch domain.SurfboardPatch) (*domain.Surfboard, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Surfboard
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		board, err := repos.Surfboards.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if board.OwnerID != actor.ID {
			return fmt.Errorf("%w: only the owner can edit surfboard %d", domain.ErrForbidden, id)
		}
		if patch.IsEmpty() {
			updated = board
			return nil
		}
		updated, err = repos.Surfboards.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteSurfboard refuses while a live rental or an open storage agreement
// references the surfboard.
func (s *surfboardService) DeleteSurfboard(ctx context.Context, actor domain.Principal, id int32) (err error) {
	const method = "surfboardService.DeleteSurfboard"
	logger.EnterMethod(ctx, method, "surfboard_id", id)
	defer func() { exitMethod(ctx, method, err) }()

	return s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		board, err := repos.Surfboards.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if board.OwnerID != actor.ID {
			return fmt.Errorf("%w: only the owner can delete surfboard %d", domain.ErrForbidden, id)
		}

		live, err := repos.Rentals.CountBySurfboard(ctx, id, domain.LiveRentalStatuses)
		if err != nil {
			return err
		}
		if live > 0 {
			return fmt.Errorf("%w: surfboard %d has %d open rental(s)", domain.ErrConflict, id, live)
		}

		_, err = repos.Agreements.FindOpenBySurfboard(ctx, id)
		switch {
		case err == nil:
			return fmt.Errorf("%w: release surfboard %d from storage first", domain.ErrConflict, id)
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}
		return repos.Surfboards.Delete(ctx, id)
	})
}
