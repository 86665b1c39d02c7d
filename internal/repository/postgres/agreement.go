package postgres

import (
	"context"
	"fmt"

	"surfboard-marketplace-backend/internal/domain"
)

const agreementColumns = `sa.id, sa.surfboard_id, sa.partner_id, sa.owner_id, sa.start_date, sa.status, sa.created_at, sa.updated_at`

func agreementDest(a *domain.StorageAgreement) []any {
	return []any{&a.ID, &a.SurfboardID, &a.PartnerID, &a.OwnerID, &a.StartDate, &a.Status, &a.CreatedAt, &a.UpdatedAt}
}

type agreementRepository struct {
	conn
}

func (r *agreementRepository) Create(ctx context.Context, a *domain.StorageAgreement) error {
	ctx, cancel := r.call(ctx, "storage_agreements.create", "surfboard_id", a.SurfboardID, "partner_id", a.PartnerID)
	defer cancel()

	query := `INSERT INTO storage_agreements (surfboard_id, partner_id, owner_id, start_date, status)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, a.SurfboardID, a.PartnerID, a.OwnerID, a.StartDate, a.Status).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return classify(err, "create storage agreement")
}

func (r *agreementRepository) GetByID(ctx context.Context, id int32) (*domain.StorageAgreement, error) {
	return r.get(ctx, id, false)
}

func (r *agreementRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.StorageAgreement, error) {
	return r.get(ctx, id, true)
}

func (r *agreementRepository) get(ctx context.Context, id int32, lock bool) (*domain.StorageAgreement, error) {
	ctx, cancel := r.call(ctx, "storage_agreements.get", "id", id, "lock", lock)
	defer cancel()

	query := "SELECT " + agreementColumns + `, sp.user_id
	          FROM storage_agreements sa JOIN storage_partners sp ON sa.partner_id = sp.id
	          WHERE sa.id = $1`
	if lock {
		query += " FOR UPDATE OF sa"
	}
	a := &domain.StorageAgreement{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(append(agreementDest(a), &a.PartnerUserID)...); err != nil {
		return nil, classify(err, fmt.Sprintf("storage request %d", id))
	}
	return a, nil
}

// FindOpenBySurfboard returns the newest pending or held agreement of the
// surfboard.
func (r *agreementRepository) FindOpenBySurfboard(ctx context.Context, surfboardID int32) (*domain.StorageAgreement, error) {
	ctx, cancel := r.call(ctx, "storage_agreements.find_open", "surfboard_id", surfboardID)
	defer cancel()

	query := "SELECT " + agreementColumns + ` FROM storage_agreements sa
	          WHERE sa.surfboard_id = $1 AND sa.status = ANY($2)
	          ORDER BY sa.created_at DESC, sa.id DESC LIMIT 1`
	a := &domain.StorageAgreement{}
	err := r.db.QueryRowContext(ctx, query, surfboardID, statusStrings(domain.OpenAgreementStatuses)).Scan(agreementDest(a)...)
	if err != nil {
		return nil, classify(err, "open storage agreement")
	}
	return a, nil
}

func (r *agreementRepository) UpdateStatus(ctx context.Context, a *domain.StorageAgreement) error {
	ctx, cancel := r.call(ctx, "storage_agreements.update_status", "id", a.ID, "status", a.Status)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `UPDATE storage_agreements SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`,
		a.Status, a.ID).Scan(&a.UpdatedAt)
	return classify(err, fmt.Sprintf("storage request %d", a.ID))
}

func (r *agreementRepository) CountHeldByPartner(ctx context.Context, partnerID int32) (int, error) {
	ctx, cancel := r.call(ctx, "storage_agreements.count_held", "partner_id", partnerID)
	defer cancel()

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM storage_agreements WHERE partner_id = $1 AND status = ANY($2)`,
		partnerID, statusStrings(domain.HeldAgreementStatuses)).Scan(&n)
	return n, classify(err, "count held agreements")
}

func (r *agreementRepository) ListByPartner(ctx context.Context, partnerID int32, status domain.AgreementStatus) ([]domain.StorageAgreement, error) {
	ctx, cancel := r.call(ctx, "storage_agreements.list_by_partner", "partner_id", partnerID, "status", status)
	defer cancel()

	query := "SELECT " + agreementColumns + " FROM storage_agreements sa WHERE sa.partner_id = $1"
	args := []any{partnerID}
	if status != "" {
		args = append(args, status)
		query += " AND sa.status = $2"
	}
	query += " ORDER BY sa.created_at DESC, sa.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "list storage requests")
	}
	defer rows.Close()

	agreements := []domain.StorageAgreement{}
	for rows.Next() {
		var a domain.StorageAgreement
		if err := rows.Scan(agreementDest(&a)...); err != nil {
			return nil, classify(err, "scan storage request")
		}
		agreements = append(agreements, a)
	}
	return agreements, classify(rows.Err(), "list storage requests")
}
