package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"surfboard-marketplace-backend/internal/domain"
)

const (
	uniqueViolation    = "23505"
	exclusionViolation = "23P01"
	queryCanceled      = "57014"
)

// classify maps driver errors onto domain error kinds. Unrecognised errors
// are returned wrapped but otherwise untouched.
func classify(err error, what string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: database call timed out", domain.ErrUnavailable, what)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s: already exists", domain.ErrConflict, what)
		case exclusionViolation:
			return fmt.Errorf("%w: %s: overlaps an existing booking", domain.ErrConflict, what)
		case queryCanceled:
			return fmt.Errorf("%w: %s: database call canceled", domain.ErrUnavailable, what)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
