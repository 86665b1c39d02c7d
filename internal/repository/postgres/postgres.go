package postgres

import (
	"context"
	"database/sql"
	"time"

	"surfboard-marketplace-backend/internal/logger"
	"surfboard-marketplace-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn carries the handle and per-call timeout shared by every repository.
type conn struct {
	db      DBTX
	timeout time.Duration
}

// call logs the operation and bounds it by the configured timeout.
func (c conn) call(ctx context.Context, operation string, args ...any) (context.Context, context.CancelFunc) {
	logger.DatabaseCall(ctx, operation, args...)
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

type Store struct {
	db      *sql.DB
	timeout time.Duration
	repository.Repositories
}

func NewStore(db *sql.DB, queryTimeout time.Duration) *Store {
	return &Store{
		db:           db,
		timeout:      queryTimeout,
		Repositories: newRepositories(db, queryTimeout),
	}
}

func newRepositories(db DBTX, timeout time.Duration) repository.Repositories {
	c := conn{db: db, timeout: timeout}
	return repository.Repositories{
		Users:        &userRepository{c},
		Surfboards:   &surfboardRepository{c},
		Rentals:      &rentalRepository{c},
		Transactions: &transactionRepository{c},
		Partners:     &partnerRepository{c},
		Agreements:   &agreementRepository{c},
	}
}

// WithinTx runs fn in a READ COMMITTED transaction. Row locks taken with the
// *ForUpdate reads are held until commit or rollback.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) (err error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return classify(err, "begin transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, newRepositories(tx, s.timeout)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.WarnContext(ctx, "rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return classify(err, "commit transaction")
	}
	return nil
}

// Ping checks connectivity within the query timeout.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := conn{db: s.db, timeout: s.timeout}.call(ctx, "ping")
	defer cancel()
	return classify(s.db.PingContext(ctx), "ping")
}
