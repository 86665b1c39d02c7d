package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surfboard-marketplace-backend/internal/domain"
	"surfboard-marketplace-backend/internal/repository"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db, time.Second), mock
}

var rentalRowColumns = []string{"id", "surfboard_id", "renter_id", "owner_id", "start_date", "end_date",
	"total_amount_cents", "status", "created_at", "updated_at"}

func TestRentalRepository_Create(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		rental := &domain.Rental{SurfboardID: 2, RenterID: 3, OwnerID: 4, StartDate: start, EndDate: end,
			TotalAmountCents: 15000, Status: domain.RentalStatusPending}
		now := time.Now()

		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs(int32(2), int32(3), int32(4), start, end, int64(15000), "pending").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

		err := store.Rentals.Create(ctx, rental)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), rental.ID)
		assert.Equal(t, now, rental.CreatedAt)
	})

	t.Run("ExclusionViolationIsConflict", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO rentals").
			WillReturnError(&pq.Error{Code: "23P01", Message: "conflicting key value violates exclusion constraint"})

		err := store.Rentals.Create(ctx, &domain.Rental{StartDate: start, EndDate: end, Status: domain.RentalStatusPending})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_GetByIDForUpdate(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rentals r WHERE r.id = \$1 FOR UPDATE`).
			WithArgs(int32(9)).
			WillReturnRows(sqlmock.NewRows(rentalRowColumns).AddRow(9, 2, 3, 4, now, now.Add(48*time.Hour), 10000, "approved", now, now))

		rental, err := store.Rentals.GetByIDForUpdate(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusApproved, rental.Status)
		assert.Equal(t, int32(4), rental.OwnerID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rentals r WHERE r.id = \$1 FOR UPDATE`).
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows(rentalRowColumns))

		_, err := store.Rentals.GetByIDForUpdate(ctx, 10)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_CountOverlapping(t *testing.T) {
	store, mock := newMockStore(t)
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rentals\s+WHERE surfboard_id = \$1 AND status = ANY\(\$2\) AND start_date <= \$4 AND end_date >= \$3`).
		WithArgs(int32(2), pq.StringArray{"pending", "approved", "active"}, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n, err := store.Rentals.CountOverlapping(context.Background(), 2, start, end)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_List(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()
	cols := append(append([]string{}, rentalRowColumns...), "title", "image_url", "owner_email", "renter_email")

	t.Run("OwnerWithStatus", func(t *testing.T) {
		mock.ExpectQuery(`WHERE r.owner_id = \$1 AND r.status = \$2 ORDER BY r.created_at DESC`).
			WithArgs(int32(4), "pending").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(1, 2, 3, 4, now, now, 5000, "pending", now, now, "Fish", nil, "o@x.io", "r@x.io"))

		rentals, err := store.Rentals.List(context.Background(), domain.RentalFilter{
			UserID: 4, Role: domain.RentalRoleOwner, Status: domain.RentalStatusPending,
		})
		require.NoError(t, err)
		require.Len(t, rentals, 1)
		assert.Equal(t, "Fish", rentals[0].SurfboardTitle)
		assert.Nil(t, rentals[0].SurfboardImage)
		assert.Equal(t, "r@x.io", rentals[0].RenterEmail)
	})

	t.Run("UnknownRoleFallsBackToAll", func(t *testing.T) {
		mock.ExpectQuery(`WHERE \(r.owner_id = \$1 OR r.renter_id = \$1\) ORDER BY`).
			WithArgs(int32(4)).
			WillReturnRows(sqlmock.NewRows(cols))

		rentals, err := store.Rentals.List(context.Background(), domain.RentalFilter{UserID: 4, Role: "nobody"})
		require.NoError(t, err)
		assert.Empty(t, rentals)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_CancelStalePending(t *testing.T) {
	store, mock := newMockStore(t)
	cutoff := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE rentals SET status = \$1, updated_at = NOW\(\)\s+WHERE status = \$2 AND start_date < \$3 RETURNING id`).
		WithArgs("cancelled", "pending", cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3).AddRow(5))

	ids, err := store.Rentals.CancelStalePending(context.Background(), cutoff)
	assert.NoError(t, err)
	assert.Equal(t, []int32{3, 5}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Commit", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO transactions").
			WithArgs(int32(1), int64(15000), "pending", "rental").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, time.Now()))
		mock.ExpectCommit()

		err := store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			return repos.Transactions.Create(ctx, &domain.Transaction{RentalID: 1, AmountCents: 15000,
				Status: domain.TransactionStatusPending, TransactionType: domain.TransactionTypeRental})
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnError", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil, "x"))
	assert.ErrorIs(t, classify(context.DeadlineExceeded, "x"), domain.ErrUnavailable)
	assert.ErrorIs(t, classify(&pq.Error{Code: "57014"}, "x"), domain.ErrUnavailable)
	assert.ErrorIs(t, classify(&pq.Error{Code: "23505"}, "x"), domain.ErrConflict)
	assert.ErrorIs(t, classify(&pq.Error{Code: "23P01"}, "x"), domain.ErrConflict)

	other := errors.New("connection reset")
	err := classify(other, "x")
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}
