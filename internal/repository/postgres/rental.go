package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"surfboard-marketplace-backend/internal/domain"
	"surfboard-marketplace-backend/internal/logger"
)

const rentalColumns = `r.id, r.surfboard_id, r.renter_id, r.owner_id, r.start_date, r.end_date,
	r.total_amount_cents, r.status, r.created_at, r.updated_at`

func rentalDest(rt *domain.Rental) []any {
	return []any{&rt.ID, &rt.SurfboardID, &rt.RenterID, &rt.OwnerID, &rt.StartDate, &rt.EndDate,
		&rt.TotalAmountCents, &rt.Status, &rt.CreatedAt, &rt.UpdatedAt}
}

func statusStrings[S ~string](statuses []S) pq.StringArray {
	out := make(pq.StringArray, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

type rentalRepository struct {
	conn
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	ctx, cancel := r.call(ctx, "rentals.create", "surfboard_id", rt.SurfboardID)
	defer cancel()

	query := `INSERT INTO rentals (surfboard_id, renter_id, owner_id, start_date, end_date, total_amount_cents, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, rt.SurfboardID, rt.RenterID, rt.OwnerID, rt.StartDate, rt.EndDate,
		rt.TotalAmountCents, rt.Status).Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
	return classify(err, "create rental")
}

// GetByIDForUpdate locks the rental row until the surrounding transaction ends.
func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	ctx, cancel := r.call(ctx, "rentals.get_for_update", "id", id)
	defer cancel()

	query := "SELECT " + rentalColumns + " FROM rentals r WHERE r.id = $1 FOR UPDATE"
	rt := &domain.Rental{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(rentalDest(rt)...); err != nil {
		return nil, classify(err, fmt.Sprintf("rental %d", id))
	}
	return rt, nil
}

func (r *rentalRepository) GetDetails(ctx context.Context, id int32) (*domain.RentalDetails, error) {
	ctx, cancel := r.call(ctx, "rentals.get_details", "id", id)
	defer cancel()

	query := "SELECT " + rentalColumns + `, s.title, s.image_url, uo.email, ur.email, p.name, p.location
	          FROM rentals r
	          JOIN surfboards s ON r.surfboard_id = s.id
	          JOIN users uo ON r.owner_id = uo.id
	          JOIN users ur ON r.renter_id = ur.id
	          LEFT JOIN storage_partners p ON s.storage_partner_id = p.id
	          WHERE r.id = $1`
	d := &domain.RentalDetails{}
	dest := append(rentalDest(&d.Rental), &d.SurfboardTitle, &d.SurfboardImage, &d.OwnerEmail, &d.RenterEmail,
		&d.StoragePartnerName, &d.StoragePartnerLocation)
	if err := r.db.QueryRowContext(ctx, query, id).Scan(dest...); err != nil {
		return nil, classify(err, fmt.Sprintf("rental %d", id))
	}
	return d, nil
}

// UpdateStatus persists rt.Status and refreshes rt.UpdatedAt.
func (r *rentalRepository) UpdateStatus(ctx context.Context, rt *domain.Rental) error {
	ctx, cancel := r.call(ctx, "rentals.update_status", "id", rt.ID, "status", rt.Status)
	defer cancel()

	query := `UPDATE rentals SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, rt.Status, rt.ID).Scan(&rt.UpdatedAt)
	return classify(err, fmt.Sprintf("rental %d", rt.ID))
}

// CountOverlapping counts live rentals of the surfboard whose inclusive date
// range intersects [start, end].
func (r *rentalRepository) CountOverlapping(ctx context.Context, surfboardID int32, start, end time.Time) (int, error) {
	ctx, cancel := r.call(ctx, "rentals.count_overlapping", "surfboard_id", surfboardID)
	defer cancel()

	query := `SELECT COUNT(*) FROM rentals
	          WHERE surfboard_id = $1 AND status = ANY($2) AND start_date <= $4 AND end_date >= $3`
	var n int
	err := r.db.QueryRowContext(ctx, query, surfboardID, statusStrings(domain.LiveRentalStatuses), start, end).Scan(&n)
	return n, classify(err, "count overlapping rentals")
}

func (r *rentalRepository) CountBySurfboard(ctx context.Context, surfboardID int32, statuses []domain.RentalStatus) (int, error) {
	ctx, cancel := r.call(ctx, "rentals.count_by_surfboard", "surfboard_id", surfboardID)
	defer cancel()

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rentals WHERE surfboard_id = $1 AND status = ANY($2)`,
		surfboardID, statusStrings(statuses)).Scan(&n)
	return n, classify(err, "count rentals")
}

var rentalRoleClauses = map[domain.RentalRole]string{
	domain.RentalRoleOwner:  "r.owner_id = $1",
	domain.RentalRoleRenter: "r.renter_id = $1",
	domain.RentalRoleAll:    "(r.owner_id = $1 OR r.renter_id = $1)",
}

func (r *rentalRepository) List(ctx context.Context, f domain.RentalFilter) ([]domain.RentalDetails, error) {
	ctx, cancel := r.call(ctx, "rentals.list", "user_id", f.UserID, "role", f.Role, "status", f.Status)
	defer cancel()

	clause, ok := rentalRoleClauses[f.Role]
	if !ok {
		clause = rentalRoleClauses[domain.RentalRoleAll]
	}
	query := "SELECT " + rentalColumns + `, s.title, s.image_url, uo.email, ur.email
	          FROM rentals r
	          JOIN surfboards s ON r.surfboard_id = s.id
	          JOIN users uo ON r.owner_id = uo.id
	          JOIN users ur ON r.renter_id = ur.id
	          WHERE ` + clause
	args := []any{f.UserID}
	if f.Status != "" {
		args = append(args, f.Status)
		query += " AND r.status = $2"
	}
	query += " ORDER BY r.created_at DESC, r.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "list rentals")
	}
	defer rows.Close()

	rentals := []domain.RentalDetails{}
	for rows.Next() {
		var d domain.RentalDetails
		dest := append(rentalDest(&d.Rental), &d.SurfboardTitle, &d.SurfboardImage, &d.OwnerEmail, &d.RenterEmail)
		if err := rows.Scan(dest...); err != nil {
			return nil, classify(err, "scan rental")
		}
		rentals = append(rentals, d)
	}
	return rentals, classify(rows.Err(), "list rentals")
}

// CancelStalePending cancels pending rentals whose start_date is before the
// cutoff and returns their ids. Callers pass the start of the current day so
// that rentals starting today stay pending.
func (r *rentalRepository) CancelStalePending(ctx context.Context, startedBefore time.Time) ([]int32, error) {
	ctx, cancel := r.call(ctx, "rentals.cancel_stale_pending", "before", startedBefore)
	defer cancel()

	query := `UPDATE rentals SET status = $1, updated_at = NOW()
	          WHERE status = $2 AND start_date < $3 RETURNING id`
	rows, err := r.db.QueryContext(ctx, query, domain.RentalStatusCancelled, domain.RentalStatusPending, startedBefore)
	if err != nil {
		return nil, classify(err, "cancel stale rentals")
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, classify(err, "scan rental id")
		}
		ids = append(ids, id)
	}
	logger.DatabaseResult(ctx, "rentals.cancel_stale_pending", int64(len(ids)), rows.Err())
	return ids, classify(rows.Err(), "cancel stale rentals")
}
