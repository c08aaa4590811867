package signals

import "github.com/wonny/rugscan/internal/contracts"

// snapshot builds a MarketSnapshot from the 1h/6h/24h fields the extractors read
type snapshot struct {
	pc1h, pc6h, pc24h float64
	vol1h, vol24h     float64
	liq               float64
	buys, sells       int64
}

func (b snapshot) build() *contracts.MarketSnapshot {
	return &contracts.MarketSnapshot{
		Mint: "TestMint111111111111111111111111111111111",
		PriceChange: map[contracts.Window]float64{
			contracts.Window1H:  b.pc1h,
			contracts.Window6H:  b.pc6h,
			contracts.Window24H: b.pc24h,
		},
		Volume: map[contracts.Window]float64{
			contracts.Window1H:  b.vol1h,
			contracts.Window24H: b.vol24h,
		},
		Liquidity: b.liq,
		Transactions: map[contracts.Window]contracts.TxnCount{
			contracts.Window1H: {Buys: b.buys, Sells: b.sells},
		},
	}
}

// nominal is a calm, deep-liquidity market
var nominal = snapshot{
	vol1h:  1_000,
	vol24h: 24_000,
	liq:    200_000,
	buys:   10,
	sells:  10,
}
