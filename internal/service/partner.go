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

type partnerService struct {
	partners repository.StoragePartnerRepository
}

func NewPartnerService(partners repository.StoragePartnerRepository) PartnerService {
	return &partnerService{partners: partners}
}

func (s *partnerService) RegisterPartner(ctx context.Context, actor domain.Principal, in RegisterPartnerInput) (partner *domain.StoragePartner, err error) {
	const method = "partnerService.RegisterPartner"
	logger.EnterMethod(ctx, method, "user_id", actor.ID)
	defer func() { exitMethod(ctx, method, err) }()

	if actor.Role != domain.UserRolePartner && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only partner accounts can register a storage profile", domain.ErrForbidden)
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Location) == "" ||
		strings.TrimSpace(in.Address) == "" || strings.TrimSpace(in.ContactEmail) == "" {
		return nil, fmt.Errorf("%w: name, location, address and contact_email are required", domain.ErrInvalidOperation)
	}
	patch := domain.StoragePartnerPatch{CommissionRate: &in.CommissionRate, MaxCapacity: in.MaxCapacity}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	_, err = s.partners.GetByUserID(ctx, actor.ID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: user already has a storage partner profile", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	partner = &domain.StoragePartner{
		UserID:         actor.ID,
		Name:           in.Name,
		Description:    in.Description,
		Location:       in.Location,
		Address:        in.Address,
		ContactEmail:   in.ContactEmail,
		ContactPhone:   in.ContactPhone,
		CommissionRate: in.CommissionRate,
		MaxCapacity:    in.MaxCapacity,
		IsVerified:     false,
	}
	if err := s.partners.Create(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

func (s *partnerService) ListPartners(ctx context.Context) ([]domain.StoragePartner, error) {
	return s.partners.ListVerified(ctx)
}

func (s *partnerService) GetPartner(ctx context.Context, id int32) (*domain.StoragePartner, error) {
	return s.partners.GetByID(ctx, id)
}

func (s *partnerService) UpdatePartner(ctx context.Context, actor domain.Principal, id int32, patch domain.StoragePartnerPatch) (*domain.StoragePartner, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	current, err := s.partners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.UserID != actor.ID {
		return nil, fmt.Errorf("%w: not authorized to update this partner", domain.ErrForbidden)
	}
	if patch.IsEmpty() {
		return current, nil
	}
	return s.partners.Update(ctx, id, patch)
}

func (s *partnerService) VerifyPartner(ctx context.Context, actor domain.Principal, id int32) (*domain.StoragePartner, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only administrators can verify partners", domain.ErrForbidden)
	}
	partner, err := s.partners.SetVerified(ctx, id, true)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Storage partner verified", "partner_id", id, "admin_id", actor.ID)
	return partner, nil
}
