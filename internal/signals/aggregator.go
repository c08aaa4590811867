package signals

import (
	"math"

	"github.com/wonny/rugscan/internal/contracts"
)

const (
	// CollapseThreshold is the 24h change (percent) at or below which the
	// composite is capped
	CollapseThreshold = -80.0
	// CollapseCap is the highest composite a collapsed token can read
	CollapseCap = 35

	lowRiskFloor      = 70
	moderateRiskFloor = 45
)

// Score runs the full pipeline over one snapshot. A nil snapshot means
// the provider had nothing usable; every extractor then uses its fallback.
// Score is pure: the same snapshot always yields the same result.
// ⭐ SSOT: 종합 스코어 계산은 여기서만
func Score(snap *contracts.MarketSnapshot) contracts.ScoreResult {
	table := extractors[:]

	raw := make([]int, len(table))
	for i, e := range table {
		raw[i] = e.Extract(snap)
	}

	// Market Integrity is always the first row
	factor := DegradationFactor(raw[0])

	result := contracts.ScoreResult{
		DegradationFactor: factor,
		Signals:           make([]contracts.SubSignal, len(table)),
	}

	var weighted float64
	for i, e := range table {
		adjusted := Degrade(raw[i], factor)
		result.Signals[i] = contracts.SubSignal{
			Label:    e.Label,
			RawScore: raw[i],
			Weight:   e.Weight,
			Score:    adjusted,
		}
		weighted += float64(adjusted) * e.Weight
	}

	total := clampScore(int(math.Round(weighted)))
	if snap != nil {
		total, result.Clamped = capCollapsed(total, snap.Change(contracts.Window24H))
	}

	result.TotalScore = total
	result.RiskLevel = Classify(total)
	return result
}

// capCollapsed caps the composite of a token whose 24h change shows a
// collapse. Applied after weighting.
func capCollapsed(total int, change24h float64) (int, bool) {
	if change24h <= CollapseThreshold && total > CollapseCap {
		return CollapseCap, true
	}
	return total, false
}

// Classify maps a composite score to its risk tier.
// Lower bounds are inclusive.
func Classify(total int) contracts.RiskLevel {
	switch {
	case total >= lowRiskFloor:
		return contracts.RiskLow
	case total >= moderateRiskFloor:
		return contracts.RiskModerate
	default:
		return contracts.RiskHigh
	}
}

// TotalWeight returns the sum of the fixed weight vector
func TotalWeight() float64 {
	var sum float64
	for _, e := range extractors {
		sum += e.Weight
	}
	return sum
}
