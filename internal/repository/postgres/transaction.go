package postgres

import (
	"context"

	"surfboard-marketplace-backend/internal/domain"
)

type transactionRepository struct {
	conn
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	ctx, cancel := r.call(ctx, "transactions.create", "rental_id", t.RentalID)
	defer cancel()

	query := `INSERT INTO transactions (rental_id, amount_cents, status, transaction_type)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, t.RentalID, t.AmountCents, t.Status, t.TransactionType).Scan(&t.ID, &t.CreatedAt)
	return classify(err, "create transaction")
}

func (r *transactionRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.Transaction, error) {
	ctx, cancel := r.call(ctx, "transactions.list_by_rental", "rental_id", rentalID)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, rental_id, amount_cents, status, transaction_type, created_at
	                                     FROM transactions WHERE rental_id = $1 ORDER BY id`, rentalID)
	if err != nil {
		return nil, classify(err, "list transactions")
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.RentalID, &t.AmountCents, &t.Status, &t.TransactionType, &t.CreatedAt); err != nil {
			return nil, classify(err, "scan transaction")
		}
		txs = append(txs, t)
	}
	return txs, classify(rows.Err(), "list transactions")
}
