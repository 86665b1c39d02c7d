package domain

import "time"

type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
)

type TransactionType string

const (
	TransactionTypeRental TransactionType = "rental"
)

// Transaction records a payment obligation. Nothing in this service settles it.
type Transaction struct {
	ID              int32             `json:"id"`
	RentalID        int32             `json:"rental_id"`
	AmountCents     Cents             `json:"amount"`
	Status          TransactionStatus `json:"status"`
	TransactionType TransactionType   `json:"transaction_type"`
	CreatedAt       time.Time         `json:"created_at"`
}
