package signals

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rugscan/internal/contracts"
)

func TestDegradationFactor(t *testing.T) {
	tests := []struct {
		mi   int
		want float64
	}{
		{100, 1.0},
		{85, 1.0},
		{80, 1.0},
		{79, 0.8},
		{55, 0.8},
		{54, 0.55},
		{35, 0.55},
		{34, 0.35},
		{20, 0.35},
		{19, 0.2},
		{10, 0.2},
		{0, 0.2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DegradationFactor(tt.mi), "market integrity %d", tt.mi)
	}
}

func TestDegrade(t *testing.T) {
	tests := []struct {
		raw    int
		factor float64
		want   int
	}{
		{85, 1.0, 85},
		{30, 0.35, 11}, // 10.5 rounds up
		{50, 0.35, 18}, // 17.5 rounds up
		{75, 0.35, 26},
		{85, 0.2, 17},
		{100, 1.0, 100},
		{0, 0.55, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Degrade(tt.raw, tt.factor), "%d x %v", tt.raw, tt.factor)
	}
}

func TestDegrade_MonotonicInMarketIntegrity(t *testing.T) {
	for raw := 0; raw <= 100; raw++ {
		for hi := 0; hi <= 100; hi++ {
			for lo := 0; lo < hi; lo++ {
				require.LessOrEqual(t,
					Degrade(raw, DegradationFactor(lo)),
					Degrade(raw, DegradationFactor(hi)),
					"raw=%d mi %d -> %d", raw, hi, lo)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		total int
		want  contracts.RiskLevel
	}{
		{100, contracts.RiskLow},
		{70, contracts.RiskLow},
		{69, contracts.RiskModerate},
		{45, contracts.RiskModerate},
		{44, contracts.RiskHigh},
		{0, contracts.RiskHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.total), "total %d", tt.total)
	}
}

func TestTotalWeight(t *testing.T) {
	assert.InDelta(t, 1.0, TotalWeight(), 1e-9)
	assert.Len(t, Extractors(), 11)
}

func TestScore_Unavailable(t *testing.T) {
	result := Score(nil)

	assert.Equal(t, 0.35, result.DegradationFactor)
	assert.Equal(t, 15, result.TotalScore)
	assert.Equal(t, contracts.RiskHigh, result.RiskLevel)
	assert.False(t, result.Clamped)

	want := []int{14, 11, 14, 14, 14, 18, 14, 14, 14, 25, 26}
	require.Len(t, result.Signals, len(want))
	for i, s := range result.Signals {
		assert.Equal(t, want[i], s.Score, s.Label)
	}
}

func TestScore_CollapsedToken(t *testing.T) {
	snap := nominal
	snap.pc24h = -90

	result := Score(snap.build())

	mi, ok := result.Signal(LabelMarketIntegrity)
	require.True(t, ok)
	assert.Equal(t, 0, mi.RawScore)
	assert.Equal(t, 0.2, result.DegradationFactor)

	for _, s := range result.Signals {
		assert.LessOrEqual(t, s.Score, 17, s.Label)
	}
	assert.Equal(t, 12, result.TotalScore)
	assert.LessOrEqual(t, result.TotalScore, CollapseCap)
	assert.Equal(t, contracts.RiskHigh, result.RiskLevel)
}

func TestScore_Healthy(t *testing.T) {
	snap := snapshot{
		pc1h:   5,
		pc6h:   3,
		pc24h:  10,
		vol1h:  3_000,
		vol24h: 24_000,
		liq:    200_000,
		buys:   30,
		sells:  10,
	}

	result := Score(snap.build())

	assert.Equal(t, 1.0, result.DegradationFactor)
	assert.Equal(t, 79, result.TotalScore)
	assert.Equal(t, contracts.RiskLow, result.RiskLevel)

	labels := make([]string, 0, len(result.Signals))
	for _, s := range result.Signals {
		labels = append(labels, s.Label)
		assert.Equal(t, s.RawScore, s.Score, "factor 1.0 leaves %s untouched", s.Label)
	}
	assert.Equal(t, []string{
		LabelMarketIntegrity, LabelLPStrength, LabelLPStability, LabelVolumeConsistency,
		LabelHolderRisk, LabelDevBehavior, LabelDipAbsorption, LabelReversalVolume,
		LabelHigherLow, LabelCommunitySentiment, LabelSmartMoney,
	}, labels)
}

func TestScore_Idempotent(t *testing.T) {
	snap := snapshot{pc1h: -12, pc6h: -20, pc24h: -45, vol1h: 700, vol24h: 9_000, liq: 42_000, buys: 14, sells: 30}.build()

	first := Score(snap)
	second := Score(snap)

	assert.Equal(t, first, second)
}

func TestCapCollapsed(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		change24h   float64
		want        int
		wantClamped bool
	}{
		{"collapse above cap", 60, -80, 35, true},
		{"deep collapse above cap", 90, -95, 35, true},
		{"collapse already below cap", 20, -85, 20, false},
		{"collapse at cap", 35, -81, 35, false},
		{"no collapse", 60, -79.99, 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := capCollapsed(tt.total, tt.change24h)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantClamped, clamped)
		})
	}
}

func TestScore_RandomSnapshotsStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5_000; i++ {
		snap := snapshot{
			pc1h:   rng.Float64()*200 - 100,
			pc6h:   rng.Float64()*200 - 100,
			pc24h:  rng.Float64()*200 - 100,
			vol1h:  rng.Float64() * 50_000,
			vol24h: float64(rng.Intn(3)) * rng.Float64() * 500_000,
			liq:    rng.Float64() * 300_000,
			buys:   rng.Int63n(200),
			sells:  rng.Int63n(200),
		}.build()

		result := Score(snap)

		require.GreaterOrEqual(t, result.TotalScore, 0)
		require.LessOrEqual(t, result.TotalScore, 100)
		for _, s := range result.Signals {
			require.GreaterOrEqual(t, s.RawScore, 0)
			require.LessOrEqual(t, s.RawScore, 100)
			require.GreaterOrEqual(t, s.Score, 0)
			require.LessOrEqual(t, s.Score, s.RawScore)
		}
		if snap.Change(contracts.Window24H) <= CollapseThreshold {
			require.LessOrEqual(t, result.TotalScore, CollapseCap)
		}
		require.Equal(t, Classify(result.TotalScore), result.RiskLevel)
	}
}
