package postgres

import (
	"context"
	"fmt"
	"strings"

	"surfboard-marketplace-backend/internal/domain"
	"surfboard-marketplace-backend/internal/logger"
)

var surfboardColumns = []string{
	"id", "owner_id", "title", "description", "condition",
	"sale_price_cents", "price_per_day_cents", "image_url", "dimensions", "location",
	"for_rent", "for_sale", "is_stored", "storage_partner_id", "storage_start_date",
	"created_at", "updated_at",
}

// surfboardSelect returns the surfboard column list qualified by alias.
func surfboardSelect(alias string) string {
	cols := make([]string, len(surfboardColumns))
	for i, c := range surfboardColumns {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

type scanner interface {
	Scan(dest ...any) error
}

func surfboardDest(s *domain.Surfboard) []any {
	return []any{
		&s.ID, &s.OwnerID, &s.Title, &s.Description, &s.Condition,
		&s.SalePriceCents, &s.PricePerDayCents, &s.ImageURL, &s.Dimensions, &s.Location,
		&s.ForRent, &s.ForSale, &s.IsStored, &s.StoragePartnerID, &s.StorageStartDate,
		&s.CreatedAt, &s.UpdatedAt,
	}
}

func scanSurfboard(row scanner) (*domain.Surfboard, error) {
	s := &domain.Surfboard{}
	if err := row.Scan(surfboardDest(s)...); err != nil {
		return nil, err
	}
	return s, nil
}

type surfboardRepository struct {
	conn
}

func (r *surfboardRepository) Create(ctx context.Context, s *domain.Surfboard) error {
	ctx, cancel := r.call(ctx, "surfboards.create", "owner_id", s.OwnerID)
	defer cancel()

	query := `INSERT INTO surfboards (owner_id, title, description, condition, sale_price_cents, price_per_day_cents,
	          image_url, dimensions, location, for_rent, for_sale)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id, is_stored, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, s.OwnerID, s.Title, s.Description, s.Condition, s.SalePriceCents,
		s.PricePerDayCents, s.ImageURL, s.Dimensions, s.Location, s.ForRent, s.ForSale).
		Scan(&s.ID, &s.IsStored, &s.CreatedAt, &s.UpdatedAt)
	return classify(err, "create surfboard")
}

func (r *surfboardRepository) GetByID(ctx context.Context, id int32) (*domain.Surfboard, error) {
	return r.get(ctx, id, false)
}

func (r *surfboardRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Surfboard, error) {
	return r.get(ctx, id, true)
}

func (r *surfboardRepository) get(ctx context.Context, id int32, lock bool) (*domain.Surfboard, error) {
	ctx, cancel := r.call(ctx, "surfboards.get", "id", id, "lock", lock)
	defer cancel()

	query := "SELECT " + surfboardSelect("s") + " FROM surfboards s WHERE s.id = $1 AND s.deleted_at IS NULL"
	if lock {
		query += " FOR UPDATE"
	}
	s, err := scanSurfboard(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("surfboard %d", id))
	}
	return s, nil
}

func surfboardAssignments(p domain.SurfboardPatch) []assignment {
	var sets []assignment
	if p.Title != nil {
		sets = append(sets, assignment{"title", *p.Title})
	}
	if p.Description != nil {
		sets = append(sets, assignment{"description", *p.Description})
	}
	if p.Condition != nil {
		sets = append(sets, assignment{"condition", *p.Condition})
	}
	if p.SalePriceCents != nil {
		sets = append(sets, assignment{"sale_price_cents", *p.SalePriceCents})
	}
	if p.PricePerDayCents != nil {
		sets = append(sets, assignment{"price_per_day_cents", *p.PricePerDayCents})
	}
	if p.ImageURL != nil {
		sets = append(sets, assignment{"image_url", *p.ImageURL})
	}
	if p.Dimensions != nil {
		sets = append(sets, assignment{"dimensions", *p.Dimensions})
	}
	if p.Location != nil {
		sets = append(sets, assignment{"location", *p.Location})
	}
	if p.ForRent != nil {
		sets = append(sets, assignment{"for_rent", *p.ForRent})
	}
	if p.ForSale != nil {
		sets = append(sets, assignment{"for_sale", *p.ForSale})
	}
	return sets
}

func (r *surfboardRepository) Update(ctx context.Context, id int32, patch domain.SurfboardPatch) (*domain.Surfboard, error) {
	ctx, cancel := r.call(ctx, "surfboards.update", "id", id)
	defer cancel()

	query, args := buildUpdate("surfboards", surfboardAssignments(patch), id, strings.Join(surfboardColumns, ", "))
	s, err := scanSurfboard(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("surfboard %d", id))
	}
	return s, nil
}

// Delete hides the surfboard from every read. Rentals keep referencing it.
func (r *surfboardRepository) Delete(ctx context.Context, id int32) error {
	ctx, cancel := r.call(ctx, "surfboards.delete", "id", id)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE surfboards SET deleted_at = NOW(), for_rent = false, for_sale = false, updated_at = NOW()
	                                   WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return classify(err, "delete surfboard")
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult(ctx, "surfboards.delete", n, nil)
	if n == 0 {
		return fmt.Errorf("%w: surfboard %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *surfboardRepository) List(ctx context.Context, f domain.SurfboardFilter) ([]domain.Surfboard, error) {
	ctx, cancel := r.call(ctx, "surfboards.list")
	defer cancel()

	query := "SELECT " + surfboardSelect("s") + " FROM surfboards s WHERE s.deleted_at IS NULL"
	var args []any
	if f.ForRent != nil {
		args = append(args, *f.ForRent)
		query += fmt.Sprintf(" AND s.for_rent = $%d", len(args))
	}
	if f.ForSale != nil {
		args = append(args, *f.ForSale)
		query += fmt.Sprintf(" AND s.for_sale = $%d", len(args))
	}
	if f.Location != "" {
		args = append(args, containsPattern(f.Location))
		query += fmt.Sprintf(" AND s.location ILIKE $%d", len(args))
	}
	query += " ORDER BY s.created_at DESC, s.id DESC"
	return r.query(ctx, query, args...)
}

func (r *surfboardRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Surfboard, error) {
	ctx, cancel := r.call(ctx, "surfboards.list_by_owner", "owner_id", ownerID)
	defer cancel()

	query := "SELECT " + surfboardSelect("s") + " FROM surfboards s WHERE s.owner_id = $1 AND s.deleted_at IS NULL ORDER BY s.created_at DESC, s.id DESC"
	return r.query(ctx, query, ownerID)
}

func (r *surfboardRepository) query(ctx context.Context, query string, args ...any) ([]domain.Surfboard, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "list surfboards")
	}
	defer rows.Close()

	boards := []domain.Surfboard{}
	for rows.Next() {
		s, err := scanSurfboard(rows)
		if err != nil {
			return nil, classify(err, "scan surfboard")
		}
		boards = append(boards, *s)
	}
	return boards, classify(rows.Err(), "list surfboards")
}

func (r *surfboardRepository) ListStoredByPartner(ctx context.Context, partnerID int32) ([]domain.StoredSurfboard, error) {
	ctx, cancel := r.call(ctx, "surfboards.list_stored_by_partner", "partner_id", partnerID)
	defer cancel()

	query := "SELECT " + surfboardSelect("s") + `, u.email
	          FROM surfboards s JOIN users u ON s.owner_id = u.id
	          WHERE s.storage_partner_id = $1 AND s.is_stored AND s.deleted_at IS NULL
	          ORDER BY s.storage_start_date DESC NULLS LAST, s.id DESC`
	rows, err := r.db.QueryContext(ctx, query, partnerID)
	if err != nil {
		return nil, classify(err, "list stored surfboards")
	}
	defer rows.Close()

	stored := []domain.StoredSurfboard{}
	for rows.Next() {
		var ss domain.StoredSurfboard
		dest := append(surfboardDest(&ss.Surfboard), &ss.OwnerEmail)
		if err := rows.Scan(dest...); err != nil {
			return nil, classify(err, "scan stored surfboard")
		}
		stored = append(stored, ss)
	}
	return stored, classify(rows.Err(), "list stored surfboards")
}

func (r *surfboardRepository) SetStorage(ctx context.Context, id int32, st domain.SurfboardStorage) error {
	ctx, cancel := r.call(ctx, "surfboards.set_storage", "id", id, "is_stored", st.IsStored)
	defer cancel()

	query := `UPDATE surfboards SET is_stored = $1, storage_partner_id = $2, storage_start_date = $3, updated_at = NOW()
	          WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, st.IsStored, st.PartnerID, st.StartDate, id)
	if err != nil {
		return classify(err, "set surfboard storage")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: surfboard %d", domain.ErrNotFound, id)
	}
	return nil
}

// ReconcileStorageFlags clears is_stored where no held agreement backs it.
func (r *surfboardRepository) ReconcileStorageFlags(ctx context.Context) (int64, error) {
	ctx, cancel := r.call(ctx, "surfboards.reconcile_storage_flags")
	defer cancel()

	query := `UPDATE surfboards s SET is_stored = false, updated_at = NOW()
	          WHERE s.is_stored AND (s.storage_partner_id IS NULL OR NOT EXISTS (
	              SELECT 1 FROM storage_agreements sa
	              WHERE sa.surfboard_id = s.id AND sa.partner_id = s.storage_partner_id
	                AND sa.status IN ('active', 'accepted')))`
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		logger.DatabaseResult(ctx, "surfboards.reconcile_storage_flags", 0, err)
		return 0, classify(err, "reconcile storage flags")
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult(ctx, "surfboards.reconcile_storage_flags", n, nil)
	return n, nil
}
