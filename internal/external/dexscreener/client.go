package dexscreener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/wonny/rugscan/internal/contracts"
	"github.com/wonny/rugscan/pkg/httputil"
	"github.com/wonny/rugscan/pkg/logger"
)

// ErrPairNotFound is returned when the token has no trading pairs
var ErrPairNotFound = errors.New("no trading pair found")

// Client handles communication with the DexScreener public API
// ⭐ SSOT: DexScreener API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	chain      string
}

// NewClient creates a new DexScreener client.
// chain is the preferred chainId when a token trades on several chains.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL, chain string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
		chain:      chain,
	}
}

// FetchPair returns the most relevant pair for a token
func (c *Client) FetchPair(ctx context.Context, mint string) (*Pair, error) {
	endpoint := fmt.Sprintf("%s/latest/dex/tokens/%s", c.baseURL, url.PathEscape(mint))

	var body TokensResponse
	if err := c.httpClient.GetJSON(ctx, endpoint, &body); err != nil {
		return nil, fmt.Errorf("fetch pairs for %s: %w", mint, err)
	}

	pair := SelectPair(body.Pairs, c.chain)
	if pair == nil {
		return nil, fmt.Errorf("%s: %w", mint, ErrPairNotFound)
	}

	c.logger.WithMint(mint).WithFields(map[string]interface{}{
		"chain": pair.ChainID,
		"dex":   pair.DexID,
		"pairs": len(body.Pairs),
	}).Debug("Pair selected")

	return pair, nil
}

// SelectPair picks the first pair on the preferred chain, else the first pair
func SelectPair(pairs []Pair, chain string) *Pair {
	if len(pairs) == 0 {
		return nil
	}
	for i := range pairs {
		if pairs[i].ChainID == chain {
			return &pairs[i]
		}
	}
	return &pairs[0]
}

// ToSnapshot normalizes a pair into a market snapshot
func ToSnapshot(mint string, p *Pair, fetchedAt time.Time) *contracts.MarketSnapshot {
	snap := &contracts.MarketSnapshot{
		Mint: mint,
		PriceChange: map[contracts.Window]float64{
			contracts.WindowM5:  p.PriceChange.M5,
			contracts.Window1H:  p.PriceChange.H1,
			contracts.Window6H:  p.PriceChange.H6,
			contracts.Window24H: p.PriceChange.H24,
		},
		Volume: map[contracts.Window]float64{
			contracts.WindowM5:  p.Volume.M5,
			contracts.Window1H:  p.Volume.H1,
			contracts.Window6H:  p.Volume.H6,
			contracts.Window24H: p.Volume.H24,
		},
		Transactions: map[contracts.Window]contracts.TxnCount{
			contracts.WindowM5:  txnCount(p.Txns.M5),
			contracts.Window1H:  txnCount(p.Txns.H1),
			contracts.Window6H:  txnCount(p.Txns.H6),
			contracts.Window24H: txnCount(p.Txns.H24),
		},
		FetchedAt: fetchedAt,
	}
	if p.Liquidity != nil {
		snap.Liquidity = p.Liquidity.Usd
	}
	return snap
}

func txnCount(t TxnSummary) contracts.TxnCount {
	return contracts.TxnCount{Buys: t.Buys, Sells: t.Sells}
}
