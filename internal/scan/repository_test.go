package scan

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rugscan/internal/contracts"
	"github.com/wonny/rugscan/internal/signals"
	"github.com/wonny/rugscan/pkg/config"
	"github.com/wonny/rugscan/pkg/database"
)

func TestRepository_RoundTrip(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := database.New(ctx, &config.Config{
		Database: config.DatabaseConfig{URL: url, MaxConns: 2, MinConns: 1},
	})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate(ctx))

	repo := NewRepository(db.Pool)
	mint := "RepoTest" + time.Now().Format("150405.000000")

	result := signals.Score(healthySnapshot())
	older := &contracts.ScanReport{
		Mint:              mint,
		Token:             &contracts.TokenInfo{Name: "Moon Cat", Symbol: "MCAT"},
		TotalScore:        result.TotalScore,
		RiskLevel:         result.RiskLevel,
		DegradationFactor: result.DegradationFactor,
		Signals:           result.Signals,
		SnapshotAvailable: true,
		ScannedAt:         time.Now().Add(-time.Minute).UTC().Truncate(time.Microsecond),
	}
	newer := *older
	newer.Token = nil
	newer.ScannedAt = older.ScannedAt.Add(30 * time.Second)

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, &newer))

	got, err := repo.ListByMint(ctx, mint, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.True(t, got[0].ScannedAt.Equal(newer.ScannedAt))
	assert.Nil(t, got[0].Token)
	assert.Equal(t, "Moon Cat", got[1].Token.Name)
	assert.Equal(t, 79, got[1].TotalScore)
	assert.Equal(t, signals.Explain(79), got[1].Explanation)
	assert.Equal(t, result.Signals, got[1].Signals)
}
