package scan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/rugscan/internal/contracts"
	"github.com/wonny/rugscan/internal/signals"
)

// Repository implements contracts.ScanRepository on Postgres
// ⭐ SSOT: 스캔 결과 저장/조회는 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new scan repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Save inserts one scan report
func (r *Repository) Save(ctx context.Context, report *contracts.ScanReport) error {
	signalsJSON, err := json.Marshal(report.Signals)
	if err != nil {
		return fmt.Errorf("failed to marshal signals: %w", err)
	}

	var name, symbol *string
	if report.Token != nil {
		name, symbol = &report.Token.Name, &report.Token.Symbol
	}

	query := `
		INSERT INTO rugscan.scans (
			mint, token_name, token_symbol,
			total_score, risk_level, degradation_factor, clamped,
			snapshot_available, signals, scanned_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.pool.Exec(ctx, query,
		report.Mint,
		name,
		symbol,
		report.TotalScore,
		string(report.RiskLevel),
		report.DegradationFactor,
		report.Clamped,
		report.SnapshotAvailable,
		signalsJSON,
		report.ScannedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scan: %w", err)
	}

	return nil
}

// ListByMint returns up to limit reports for mint, newest first
func (r *Repository) ListByMint(ctx context.Context, mint string, limit int) ([]contracts.ScanReport, error) {
	query := `
		SELECT
			mint, token_name, token_symbol,
			total_score, risk_level, degradation_factor::float8, clamped,
			snapshot_available, signals, scanned_at
		FROM rugscan.scans
		WHERE mint = $1
		ORDER BY scanned_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, mint, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	reports := make([]contracts.ScanReport, 0, limit)
	for rows.Next() {
		var (
			rep         contracts.ScanReport
			name        *string
			symbol      *string
			riskLevel   string
			signalsJSON []byte
		)

		err := rows.Scan(
			&rep.Mint,
			&name,
			&symbol,
			&rep.TotalScore,
			&riskLevel,
			&rep.DegradationFactor,
			&rep.Clamped,
			&rep.SnapshotAvailable,
			&signalsJSON,
			&rep.ScannedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rep.RiskLevel = contracts.RiskLevel(riskLevel)
		rep.Explanation = signals.Explain(rep.TotalScore)
		if err := json.Unmarshal(signalsJSON, &rep.Signals); err != nil {
			return nil, fmt.Errorf("failed to decode signals: %w", err)
		}
		if name != nil {
			rep.Token = &contracts.TokenInfo{Mint: rep.Mint, Name: *name}
			if symbol != nil {
				rep.Token.Symbol = *symbol
			}
		}
		rep.ShareText = signals.ShareText(tokenName(rep.Token), rep.TotalScore, rep.RiskLevel)

		reports = append(reports, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reports, nil
}
