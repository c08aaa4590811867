package dexscreener

// TokensResponse is the body of GET /latest/dex/tokens/{address}
type TokensResponse struct {
	SchemaVersion string `json:"schemaVersion"`
	Pairs         []Pair `json:"pairs"`
}

// Pair is one trading pair for a token
type Pair struct {
	ChainID     string       `json:"chainId"`
	DexID       string       `json:"dexId"`
	URL         string       `json:"url"`
	PairAddress string       `json:"pairAddress"`
	BaseToken   Token        `json:"baseToken"`
	QuoteToken  Token        `json:"quoteToken"`
	PriceUsd    string       `json:"priceUsd"`
	Txns        PairTxns     `json:"txns"`
	Volume      WindowValues `json:"volume"`
	PriceChange WindowValues `json:"priceChange"`
	Liquidity   *Liquidity   `json:"liquidity"` // null for some freshly created pairs
	Fdv         float64      `json:"fdv"`
	MarketCap   float64      `json:"marketCap"`
	Info        *PairInfo    `json:"info"`
}

// Token is a base or quote token of a pair
type Token struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	LogoURI string `json:"logoURI"`
}

// Liquidity is pooled value of a pair
type Liquidity struct {
	Usd   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

// PairTxns holds transaction counts per window
type PairTxns struct {
	M5  TxnSummary `json:"m5"`
	H1  TxnSummary `json:"h1"`
	H6  TxnSummary `json:"h6"`
	H24 TxnSummary `json:"h24"`
}

// TxnSummary contains buy and sell counts
type TxnSummary struct {
	Buys  int64 `json:"buys"`
	Sells int64 `json:"sells"`
}

// WindowValues is a per-window number (volume or price change %)
type WindowValues struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// PairInfo carries optional display assets
type PairInfo struct {
	ImageURL  string     `json:"imageUrl"`
	OpenGraph *OpenGraph `json:"openGraph"`
}

// OpenGraph holds the social preview image
type OpenGraph struct {
	Image string `json:"image"`
}
