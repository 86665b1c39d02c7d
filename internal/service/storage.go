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
)

// Every workflow that touches both a surfboard and its agreements locks the
// surfboard row first.
type storageService struct {
	tx         repository.TxManager
	partners   repository.StoragePartnerRepository
	agreements repository.StorageAgreementRepository
	surfboards repository.SurfboardRepository
	now        func() time.Time
}

func NewStorageService(tx repository.TxManager, repos repository.Repositories) StorageService {
	return &storageService{
		tx:         tx,
		partners:   repos.Partners,
		agreements: repos.Agreements,
		surfboards: repos.Surfboards,
		now:        time.Now,
	}
}

func (s *storageService) RequestStorage(ctx context.Context, actor domain.Principal, surfboardID, partnerID int32) (agreement *domain.StorageAgreement, err error) {
	const method = "storageService.RequestStorage"
	logger.EnterMethod(ctx, method, "surfboard_id", surfboardID, "partner_id", partnerID)
	defer func() { exitMethod(ctx, method, err) }()

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		board, err := repos.Surfboards.GetByIDForUpdate(ctx, surfboardID)
		if err != nil {
			return err
		}
		if board.OwnerID != actor.ID {
			return fmt.Errorf("%w: only the owner can store surfboard %d", domain.ErrForbidden, board.ID)
		}

		partner, err := repos.Partners.GetByID(ctx, partnerID)
		if err != nil {
			return err
		}
		if !partner.IsVerified {
			return fmt.Errorf("%w: storage partner %d", domain.ErrNotFound, partnerID)
		}

		_, err = repos.Agreements.FindOpenBySurfboard(ctx, board.ID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: surfboard %d already has a storage request", domain.ErrConflict, board.ID)
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		if partner.MaxCapacity != nil {
			held, err := repos.Agreements.CountHeldByPartner(ctx, partner.ID)
			if err != nil {
				return err
			}
			if held >= int(*partner.MaxCapacity) {
				return fmt.Errorf("%w: storage partner %d is at capacity", domain.ErrConflict, partner.ID)
			}
		}

		agreement = &domain.StorageAgreement{
			SurfboardID: board.ID,
			PartnerID:   partner.ID,
			OwnerID:     actor.ID,
			StartDate:   s.now().UTC(),
			Status:      domain.AgreementStatusPending,
		}
		if err := repos.Agreements.Create(ctx, agreement); err != nil {
			return err
		}
		return repos.Surfboards.SetStorage(ctx, board.ID, domain.SurfboardStorage{
			IsStored:  false,
			PartnerID: &partner.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return agreement, nil
}

func (s *storageService) DecideRequest(ctx context.Context, actor domain.Principal, requestID int32, decision domain.StorageDecision) (agreement *domain.StorageAgreement, err error) {
	const method = "storageService.DecideRequest"
	logger.EnterMethod(ctx, method, "request_id", requestID, "decision", decision)
	defer func() { exitMethod(ctx, method, err) }()

	if !decision.IsValid() {
		return nil, fmt.Errorf("%w: status must be 'accepted' or 'rejected'", domain.ErrInvalidOperation)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		peek, err := repos.Agreements.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if peek.PartnerUserID != actor.ID {
			return fmt.Errorf("%w: storage request %d is addressed to another partner", domain.ErrForbidden, requestID)
		}
		if _, err := repos.Surfboards.GetByIDForUpdate(ctx, peek.SurfboardID); err != nil {
			return err
		}
		a, err := repos.Agreements.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if a.Status != domain.AgreementStatusPending {
			return fmt.Errorf("%w: storage request %d is already %s", domain.ErrInvalidOperation, a.ID, a.Status)
		}

		var storage domain.SurfboardStorage
		if decision == domain.StorageDecisionAccepted {
			a.Status = domain.AgreementStatusAccepted
			now := s.now().UTC()
			storage = domain.SurfboardStorage{IsStored: true, PartnerID: &a.PartnerID, StartDate: &now}
		} else {
			a.Status = domain.AgreementStatusRejected
		}
		if err := repos.Agreements.UpdateStatus(ctx, a); err != nil {
			return err
		}
		if err := repos.Surfboards.SetStorage(ctx, a.SurfboardID, storage); err != nil {
			return err
		}
		agreement = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordStorageDecision(string(decision))
	return agreement, nil
}

func (s *storageService) ReleaseStorage(ctx context.Context, actor domain.Principal, surfboardID int32) (agreement *domain.StorageAgreement, err error) {
	const method = "storageService.ReleaseStorage"
	logger.EnterMethod(ctx, method, "surfboard_id", surfboardID)
	defer func() { exitMethod(ctx, method, err) }()

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		board, err := repos.Surfboards.GetByIDForUpdate(ctx, surfboardID)
		if err != nil {
			return err
		}
		if board.OwnerID != actor.ID {
			return fmt.Errorf("%w: only the owner can release surfboard %d", domain.ErrForbidden, board.ID)
		}
		a, err := repos.Agreements.FindOpenBySurfboard(ctx, board.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: surfboard %d has no storage agreement to release", domain.ErrInvalidOperation, board.ID)
		}
		if err != nil {
			return err
		}

		a.Status = domain.AgreementStatusReleased
		if err := repos.Agreements.UpdateStatus(ctx, a); err != nil {
			return err
		}
		if err := repos.Surfboards.SetStorage(ctx, board.ID, domain.SurfboardStorage{}); err != nil {
			return err
		}
		agreement = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return agreement, nil
}

func (s *storageService) ListRequests(ctx context.Context, actor domain.Principal, status string) ([]domain.StorageAgreement, error) {
	st := domain.AgreementStatus(status)
	if st != "" && !st.IsValid() {
		return nil, fmt.Errorf("%w: unknown storage request status %q", domain.ErrInvalidOperation, status)
	}
	partner, err := s.partners.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.agreements.ListByPartner(ctx, partner.ID, st)
}

func (s *storageService) ListStoredSurfboards(ctx context.Context, actor domain.Principal, partnerID int32) ([]domain.StoredSurfboard, error) {
	partner, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if partner.UserID != actor.ID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: not authorized to view this partner's surfboards", domain.ErrForbidden)
	}
	return s.surfboards.ListStoredByPartner(ctx, partner.ID)
}

func (s *storageService) ReconcileStorageFlags(ctx context.Context) (int64, error) {
	n, err := s.surfboards.ReconcileStorageFlags(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.WarnContext(ctx, "Cleared is_stored on surfboards without a held agreement", "count", n)
	}
	return n, nil
}
