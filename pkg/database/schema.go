package database

import (
	"context"
	"fmt"
)

// migrations are applied in order; each statement is idempotent
var migrations = []string{
	`CREATE SCHEMA IF NOT EXISTS rugscan`,
	`CREATE TABLE IF NOT EXISTS rugscan.scans (
		id                 BIGSERIAL PRIMARY KEY,
		mint               TEXT        NOT NULL,
		token_name         TEXT,
		token_symbol       TEXT,
		total_score        INTEGER     NOT NULL CHECK (total_score BETWEEN 0 AND 100),
		risk_level         TEXT        NOT NULL,
		degradation_factor NUMERIC(4,2) NOT NULL,
		clamped            BOOLEAN     NOT NULL DEFAULT FALSE,
		snapshot_available BOOLEAN     NOT NULL,
		signals            JSONB       NOT NULL,
		scanned_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS scans_mint_scanned_at_idx
		ON rugscan.scans (mint, scanned_at DESC)`,
	`CREATE TABLE IF NOT EXISTS rugscan.stats (
		counter    TEXT PRIMARY KEY,
		value      BIGINT      NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the tables used for scan history and global counters
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
