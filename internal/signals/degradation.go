package signals

import "math"

// degradationTiers maps a Market Integrity score to a multiplier.
// First tier whose floor is met wins.
var degradationTiers = []struct {
	floor  int
	factor float64
}{
	{80, 1.0},
	{55, 0.8},
	{35, 0.55},
	{20, 0.35},
}

const minDegradationFactor = 0.2

// DegradationFactor returns the multiplier applied to every sub-score
// given the raw Market Integrity score
// ⭐ SSOT: 감쇠 계수 결정은 여기서만
func DegradationFactor(marketIntegrity int) float64 {
	for _, t := range degradationTiers {
		if marketIntegrity >= t.floor {
			return t.factor
		}
	}
	return minDegradationFactor
}

// Degrade applies factor to a raw score, rounding once and staying in [0,100]
func Degrade(raw int, factor float64) int {
	return clampScore(int(math.Round(float64(raw) * factor)))
}
