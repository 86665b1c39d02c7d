package db

import (
	"context"
	"database/sql"
	"fmt"

	"surfboard-marketplace-backend/internal/logger"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: live rentals of one surfboard may not share a day.
	`DO $$
	BEGIN
	    IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'rentals_no_overlap') THEN
	        ALTER TABLE rentals ADD CONSTRAINT rentals_no_overlap EXCLUDE USING gist (
	            surfboard_id WITH =,
	            tstzrange(start_date, end_date, '[]') WITH &&
	        ) WHERE (status IN ('pending', 'approved', 'active'));
	    END IF;
	END $$`,
	// Migration 2: at most one pending or held agreement per surfboard.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_storage_agreements_open
	     ON storage_agreements (surfboard_id) WHERE status IN ('pending', 'active', 'accepted')`,
}

// Migrate runs the database schema migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	logger.Info("Applying database schema", "migrations", len(migrations))
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("running schema: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}
	return nil
}
