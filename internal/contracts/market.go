package contracts

import (
	"errors"
	"time"
)

// ErrSnapshotUnavailable is the only failure the scoring core knows about.
// Provider failures and unlisted tokens both collapse into it.
var ErrSnapshotUnavailable = errors.New("market snapshot unavailable")

// Window identifies a market-data aggregation window
type Window string

const (
	WindowM5  Window = "5m"
	Window1H  Window = "1h"
	Window6H  Window = "6h"
	Window24H Window = "24h"
)

// TxnCount holds buy/sell transaction counts for a window
type TxnCount struct {
	Buys  int64 `json:"buys"`
	Sells int64 `json:"sells"`
}

// MarketSnapshot is one normalized market-data record for a token.
// Price changes are signed percentages; volume and liquidity are quote
// currency values.
// ⭐ SSOT: 스코어링 입력 데이터는 이 구조체로만 전달
type MarketSnapshot struct {
	Mint         string              `json:"mint"`
	PriceChange  map[Window]float64  `json:"priceChange"`
	Volume       map[Window]float64  `json:"volume"`
	Liquidity    float64             `json:"liquidity"`
	Transactions map[Window]TxnCount `json:"transactions"`
	FetchedAt    time.Time           `json:"fetchedAt"`
}

// Change returns the price change for a window, 0 when absent
func (s MarketSnapshot) Change(w Window) float64 {
	return s.PriceChange[w]
}

// VolumeAt returns the traded value for a window, 0 when absent or negative
func (s MarketSnapshot) VolumeAt(w Window) float64 {
	v := s.Volume[w]
	if v < 0 {
		return 0
	}
	return v
}

// LiquidityValue returns liquidity clamped to non-negative
func (s MarketSnapshot) LiquidityValue() float64 {
	if s.Liquidity < 0 {
		return 0
	}
	return s.Liquidity
}

// Txns returns the transaction counts for a window, zero when absent
func (s MarketSnapshot) Txns(w Window) TxnCount {
	t := s.Transactions[w]
	if t.Buys < 0 {
		t.Buys = 0
	}
	if t.Sells < 0 {
		t.Sells = 0
	}
	return t
}

// TokenInfo is display metadata for a token (name, logo, market cap)
type TokenInfo struct {
	Mint            string  `json:"mint"`
	Name            string  `json:"name"`
	Symbol          string  `json:"symbol"`
	Logo            string  `json:"logo,omitempty"`
	MarketCap       float64 `json:"marketCap"`
	MarketCapText   string  `json:"marketCapText"`
	DexID           string  `json:"dexId,omitempty"`
	LiquidityStatus string  `json:"liquidityStatus"`
}
