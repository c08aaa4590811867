package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/rugscan/internal/contracts"
)

func TestBandOf(t *testing.T) {
	assert.Equal(t, BandGood, BandOf(70))
	assert.Equal(t, BandWarn, BandOf(69))
	assert.Equal(t, BandWarn, BandOf(40))
	assert.Equal(t, BandBad, BandOf(39))
}

func TestExplain(t *testing.T) {
	assert.Contains(t, Explain(70), "Healthy structure")
	assert.Contains(t, Explain(45), "Mixed signals")
	assert.Contains(t, Explain(44), "High-risk behavior")
}

func TestShareText(t *testing.T) {
	text := ShareText("", 15, contracts.RiskHigh)

	assert.Contains(t, text, "Unknown Token")
	assert.Contains(t, text, "Score: 15/100")
	assert.Contains(t, text, "Risk Level: HIGH RUG RISK")
}
