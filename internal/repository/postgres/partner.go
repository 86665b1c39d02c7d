package postgres

import (
	"context"
	"fmt"

	"surfboard-marketplace-backend/internal/domain"
)

const partnerColumns = `id, user_id, name, description, location, address, contact_email, contact_phone,
	commission_rate, max_capacity, is_verified, created_at, updated_at`

func scanPartner(row scanner) (*domain.StoragePartner, error) {
	p := &domain.StoragePartner{}
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Location, &p.Address, &p.ContactEmail,
		&p.ContactPhone, &p.CommissionRate, &p.MaxCapacity, &p.IsVerified, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

type partnerRepository struct {
	conn
}

func (r *partnerRepository) Create(ctx context.Context, p *domain.StoragePartner) error {
	ctx, cancel := r.call(ctx, "storage_partners.create", "user_id", p.UserID)
	defer cancel()

	query := `INSERT INTO storage_partners (user_id, name, description, location, address, contact_email,
	          contact_phone, commission_rate, max_capacity, is_verified)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, p.UserID, p.Name, p.Description, p.Location, p.Address, p.ContactEmail,
		p.ContactPhone, p.CommissionRate, p.MaxCapacity, p.IsVerified).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return classify(err, "create storage partner")
}

func (r *partnerRepository) GetByID(ctx context.Context, id int32) (*domain.StoragePartner, error) {
	ctx, cancel := r.call(ctx, "storage_partners.get_by_id", "id", id)
	defer cancel()

	p, err := scanPartner(r.db.QueryRowContext(ctx, "SELECT "+partnerColumns+" FROM storage_partners WHERE id = $1", id))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("storage partner %d", id))
	}
	return p, nil
}

func (r *partnerRepository) GetByUserID(ctx context.Context, userID int32) (*domain.StoragePartner, error) {
	ctx, cancel := r.call(ctx, "storage_partners.get_by_user_id", "user_id", userID)
	defer cancel()

	p, err := scanPartner(r.db.QueryRowContext(ctx, "SELECT "+partnerColumns+" FROM storage_partners WHERE user_id = $1", userID))
	if err != nil {
		return nil, classify(err, "storage partner profile")
	}
	return p, nil
}

func partnerAssignments(p domain.StoragePartnerPatch) []assignment {
	var sets []assignment
	if p.Name != nil {
		sets = append(sets, assignment{"name", *p.Name})
	}
	if p.Description != nil {
		sets = append(sets, assignment{"description", *p.Description})
	}
	if p.Location != nil {
		sets = append(sets, assignment{"location", *p.Location})
	}
	if p.Address != nil {
		sets = append(sets, assignment{"address", *p.Address})
	}
	if p.ContactEmail != nil {
		sets = append(sets, assignment{"contact_email", *p.ContactEmail})
	}
	if p.ContactPhone != nil {
		sets = append(sets, assignment{"contact_phone", *p.ContactPhone})
	}
	if p.CommissionRate != nil {
		sets = append(sets, assignment{"commission_rate", *p.CommissionRate})
	}
	if p.MaxCapacity != nil {
		sets = append(sets, assignment{"max_capacity", *p.MaxCapacity})
	}
	return sets
}

func (r *partnerRepository) Update(ctx context.Context, id int32, patch domain.StoragePartnerPatch) (*domain.StoragePartner, error) {
	ctx, cancel := r.call(ctx, "storage_partners.update", "id", id)
	defer cancel()

	query, args := buildUpdate("storage_partners", partnerAssignments(patch), id, partnerColumns)
	p, err := scanPartner(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("storage partner %d", id))
	}
	return p, nil
}

func (r *partnerRepository) SetVerified(ctx context.Context, id int32, verified bool) (*domain.StoragePartner, error) {
	ctx, cancel := r.call(ctx, "storage_partners.set_verified", "id", id, "verified", verified)
	defer cancel()

	query, args := buildUpdate("storage_partners", []assignment{{"is_verified", verified}}, id, partnerColumns)
	p, err := scanPartner(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("storage partner %d", id))
	}
	return p, nil
}

func (r *partnerRepository) ListVerified(ctx context.Context) ([]domain.StoragePartner, error) {
	ctx, cancel := r.call(ctx, "storage_partners.list_verified")
	defer cancel()

	rows, err := r.db.QueryContext(ctx, "SELECT "+partnerColumns+" FROM storage_partners WHERE is_verified ORDER BY name, id")
	if err != nil {
		return nil, classify(err, "list storage partners")
	}
	defer rows.Close()

	partners := []domain.StoragePartner{}
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, classify(err, "scan storage partner")
		}
		partners = append(partners, *p)
	}
	return partners, classify(rows.Err(), "list storage partners")
}
