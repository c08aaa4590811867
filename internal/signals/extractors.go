package signals

import (
	"math"

	"github.com/wonny/rugscan/internal/contracts"
)

// Signal labels in display order
const (
	LabelMarketIntegrity    = "Market Integrity"
	LabelLPStrength         = "LP Strength"
	LabelLPStability        = "LP Stability"
	LabelVolumeConsistency  = "Volume Consistency"
	LabelHolderRisk         = "Holder Risk Pattern"
	LabelDevBehavior        = "Dev Behavior"
	LabelDipAbsorption      = "Dip Absorption"
	LabelReversalVolume     = "Reversal Volume"
	LabelHigherLow          = "Higher Low Structure"
	LabelCommunitySentiment = "Community Sentiment"
	LabelSmartMoney         = "Smart Money"
)

// Extractor maps a market snapshot to one sub-score in [0,100].
// Fallback is used when the snapshot is unavailable.
type Extractor struct {
	Label    string
	Weight   float64
	Fallback int
	extract  func(s contracts.MarketSnapshot) int
}

// Extract returns the raw sub-score for a snapshot, or Fallback when snap is nil
func (e Extractor) Extract(snap *contracts.MarketSnapshot) int {
	if snap == nil {
		return clampScore(e.Fallback)
	}
	return clampScore(e.extract(*snap))
}

// extractors is the fixed signal table
// ⭐ SSOT: 시그널 순서/가중치/폴백은 이 테이블에서만
var extractors = [...]Extractor{
	{LabelMarketIntegrity, 0.18, 40, marketIntegrity},
	{LabelLPStrength, 0.10, 30, lpStrength},
	{LabelLPStability, 0.08, 40, lpStability},
	{LabelVolumeConsistency, 0.08, 40, volumeConsistency},
	{LabelHolderRisk, 0.08, 40, holderRisk},
	{LabelDevBehavior, 0.08, 50, devBehavior},
	{LabelDipAbsorption, 0.10, 40, dipAbsorption},
	{LabelReversalVolume, 0.10, 40, reversalVolume},
	{LabelHigherLow, 0.10, 40, higherLowStructure},
	// Placeholders: no sentiment or wallet-cluster source is wired yet
	{LabelCommunitySentiment, 0.05, 70, constant(70)},
	{LabelSmartMoney, 0.05, 75, constant(75)},
}

// Extractors returns a copy of the signal table in display order
func Extractors() []Extractor {
	out := make([]Extractor, len(extractors))
	copy(out, extractors[:])
	return out
}

// tier is one step of a single-variable threshold ladder: below limit → score
type tier struct {
	limit float64
	score int
}

// ladder returns the score of the first tier whose limit exceeds v
func ladder(v float64, tiers []tier, otherwise int) int {
	for _, t := range tiers {
		if v < t.limit {
			return t.score
		}
	}
	return otherwise
}

// rule is one step of a compound ladder; first match wins
type rule struct {
	when  func(s contracts.MarketSnapshot) bool
	score int
}

func firstMatch(s contracts.MarketSnapshot, rules []rule, otherwise int) int {
	for _, r := range rules {
		if r.when(s) {
			return r.score
		}
	}
	return otherwise
}

func constant(score int) func(contracts.MarketSnapshot) int {
	return func(contracts.MarketSnapshot) int { return score }
}

func marketIntegrity(s contracts.MarketSnapshot) int {
	pc1h := s.Change(contracts.Window1H)
	pc6h := s.Change(contracts.Window6H)
	pc24h := s.Change(contracts.Window24H)
	tx := s.Txns(contracts.Window1H)

	if pc24h <= -85 {
		return 0
	}

	flags := 0
	if pc6h <= -35 && pc24h <= -60 {
		flags++
	}
	if tx.Sells >= tx.Buys*4 && tx.Sells > 20 {
		flags++
	}
	if flags >= 2 {
		return 10
	}

	switch {
	case pc24h <= -50:
		return 20
	case pc24h <= -30:
		return 35
	case pc1h <= -15:
		return 50
	}
	return 85
}

var lpStrengthTiers = []tier{
	{8_000, 10},
	{30_000, 30},
	{120_000, 60},
}

func lpStrength(s contracts.MarketSnapshot) int {
	return ladder(s.LiquidityValue(), lpStrengthTiers, 85)
}

// lpStabilityRules: (liquidity below, |1h change| above) → score
var lpStabilityRules = []struct {
	liqBelow  float64
	moveAbove float64
	score     int
}{
	{15_000, 20, 20},
	{50_000, 15, 40},
	{100_000, 10, 60},
}

func lpStability(s contracts.MarketSnapshot) int {
	liq := s.LiquidityValue()
	move := math.Abs(s.Change(contracts.Window1H))
	for _, r := range lpStabilityRules {
		if liq < r.liqBelow && move > r.moveAbove {
			return r.score
		}
	}
	return 85
}

var volumeRatioTiers = []tier{
	{0.2, 25},
	{0.5, 45},
	{0.8, 65},
}

func volumeConsistency(s contracts.MarketSnapshot) int {
	h24 := s.VolumeAt(contracts.Window24H)
	if h24 == 0 {
		return 20
	}
	ratio := s.VolumeAt(contracts.Window1H) / (h24 / 24)
	return ladder(ratio, volumeRatioTiers, 85)
}

// No holder data is available, so liquidity depth and sell pressure stand in
var holderRiskRules = []rule{
	{func(s contracts.MarketSnapshot) bool { return s.LiquidityValue() < 10_000 }, 20},
	{func(s contracts.MarketSnapshot) bool { return s.LiquidityValue() < 30_000 }, 40},
	{func(s contracts.MarketSnapshot) bool { return sellsOver(s, 3) }, 35},
	{func(s contracts.MarketSnapshot) bool { return sellsOver(s, 2) }, 55},
	{func(s contracts.MarketSnapshot) bool { return s.LiquidityValue() > 150_000 }, 85},
}

func holderRisk(s contracts.MarketSnapshot) int {
	return firstMatch(s, holderRiskRules, 70)
}

var devBehaviorRules = []rule{
	{func(s contracts.MarketSnapshot) bool { return sellsOver(s, 3) && s.Change(contracts.Window1H) < -20 }, 20},
	{func(s contracts.MarketSnapshot) bool { return sellsOver(s, 2) }, 45},
	{func(s contracts.MarketSnapshot) bool { return s.Change(contracts.Window1H) < -10 }, 60},
}

func devBehavior(s contracts.MarketSnapshot) int {
	return firstMatch(s, devBehaviorRules, 85)
}

var dipAbsorptionRules = []rule{
	{func(s contracts.MarketSnapshot) bool { return s.Change(contracts.Window1H) < -10 && buysOver(s, 1.5) }, 85},
	{func(s contracts.MarketSnapshot) bool { return s.Change(contracts.Window1H) < -5 && buysOver(s, 1) }, 70},
	{func(s contracts.MarketSnapshot) bool { return buysOver(s, 1) }, 60},
}

func dipAbsorption(s contracts.MarketSnapshot) int {
	return firstMatch(s, dipAbsorptionRules, 40)
}

func reversalVolume(s contracts.MarketSnapshot) int {
	h24 := s.VolumeAt(contracts.Window24H)
	if h24 == 0 {
		return 30
	}
	avg := h24 / 24
	h1 := s.VolumeAt(contracts.Window1H)
	rising := s.Change(contracts.Window1H) > 0

	switch {
	case rising && h1 > avg*2:
		return 85
	case rising && h1 > avg*1.4:
		return 70
	case h1 > avg:
		return 60
	}
	return 40
}

var higherLowRules = []rule{
	{func(s contracts.MarketSnapshot) bool {
		return s.Change(contracts.Window24H) < -40 && s.Change(contracts.Window6H) > -10
	}, 80},
	{func(s contracts.MarketSnapshot) bool {
		return s.Change(contracts.Window24H) < -25 && s.Change(contracts.Window6H) > 0
	}, 75},
	{func(s contracts.MarketSnapshot) bool { return s.Change(contracts.Window6H) > 0 }, 65},
}

func higherLowStructure(s contracts.MarketSnapshot) int {
	return firstMatch(s, higherLowRules, 45)
}

// sellsOver reports 1h sells > k × 1h buys
func sellsOver(s contracts.MarketSnapshot, k int64) bool {
	tx := s.Txns(contracts.Window1H)
	return tx.Sells > tx.Buys*k
}

// buysOver reports 1h buys > k × 1h sells
func buysOver(s contracts.MarketSnapshot, k float64) bool {
	tx := s.Txns(contracts.Window1H)
	return float64(tx.Buys) > float64(tx.Sells)*k
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
