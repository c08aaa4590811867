package signals

import (
	"fmt"

	"github.com/wonny/rugscan/internal/contracts"
)

// Band is the display state of a single sub-signal
type Band string

const (
	BandGood Band = "good"
	BandWarn Band = "warn"
	BandBad  Band = "bad"
)

// BandOf returns the display band for an adjusted sub-score
func BandOf(score int) Band {
	switch {
	case score >= 70:
		return BandGood
	case score >= 40:
		return BandWarn
	default:
		return BandBad
	}
}

// Explain returns a one-line human explanation for a composite score
func Explain(total int) string {
	switch {
	case total >= lowRiskFloor:
		return "Healthy structure. No critical sell pressure or liquidity abuse detected."
	case total >= moderateRiskFloor:
		return "Mixed signals. Possible liquidity weakness or elevated sell pressure."
	default:
		return "High-risk behavior detected. Strong rug indicators present."
	}
}

// ShareText renders the plain-text summary used when a result is shared
func ShareText(tokenName string, total int, level contracts.RiskLevel) string {
	if tokenName == "" {
		tokenName = "Unknown Token"
	}
	return fmt.Sprintf("Rug Risk Scan\n%s\n\nScore: %d/100\nRisk Level: %s\n\nOn-chain risk intelligence. No hype. Just data.",
		tokenName, total, level)
}
