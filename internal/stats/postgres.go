package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps counters in rugscan.stats, one row per counter
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed store
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Get returns the current totals
func (s *PostgresStore) Get(ctx context.Context) (Counters, error) {
	query := `
		SELECT counter, value
		FROM rugscan.stats
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return Counters{}, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	var c Counters
	for rows.Next() {
		var counter string
		var value int64
		if err := rows.Scan(&counter, &value); err != nil {
			return Counters{}, fmt.Errorf("failed to scan row: %w", err)
		}
		c.set(counter, value)
	}

	if err := rows.Err(); err != nil {
		return Counters{}, fmt.Errorf("error iterating rows: %w", err)
	}

	return c, nil
}

// Increment bumps the counter for kind and returns the new totals
func (s *PostgresStore) Increment(ctx context.Context, kind Kind) (Counters, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Counters{}, err
	}

	query := `
		INSERT INTO rugscan.stats (counter, value, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (counter) DO UPDATE
		SET value = rugscan.stats.value + 1,
			updated_at = NOW()
	`

	if _, err := s.pool.Exec(ctx, query, kind.Counter()); err != nil {
		return Counters{}, fmt.Errorf("failed to increment %s: %w", kind, err)
	}

	return s.Get(ctx)
}
