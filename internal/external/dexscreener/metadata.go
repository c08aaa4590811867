package dexscreener

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wonny/rugscan/internal/contracts"
)

// Display fallbacks for tokens without metadata
const (
	UnknownName     = "Unknown Token"
	UnknownSymbol   = "N/A"
	PlaceholderLogo = "https://placehold.co/80x80"
	NoLiquidity     = "No Liquidity Found"
	UnknownStatus   = "Unknown"
)

const ipfsGateway = "https://ipfs.io/ipfs/"

var amountPrinter = message.NewPrinter(language.English)

// DefaultTokenInfo is the metadata shown when no pair is known.
// status distinguishes "no pairs" from "lookup failed".
func DefaultTokenInfo(mint, status string) *contracts.TokenInfo {
	return &contracts.TokenInfo{
		Mint:            mint,
		Name:            UnknownName,
		Symbol:          UnknownSymbol,
		Logo:            PlaceholderLogo,
		MarketCapText:   FormatMarketCap(0),
		LiquidityStatus: status,
	}
}

// ToTokenInfo extracts display metadata from a pair
func ToTokenInfo(mint string, p *Pair) *contracts.TokenInfo {
	info := DefaultTokenInfo(mint, LiquidityStatus(p))
	info.DexID = p.DexID

	if p.BaseToken.Name != "" {
		info.Name = p.BaseToken.Name
	}
	if p.BaseToken.Symbol != "" {
		info.Symbol = p.BaseToken.Symbol
	}
	if logo := pairLogo(p); logo != "" {
		info.Logo = logo
	}

	info.MarketCap = p.MarketCap
	if info.MarketCap <= 0 {
		info.MarketCap = p.Fdv
	}
	info.MarketCapText = FormatMarketCap(info.MarketCap)

	return info
}

func pairLogo(p *Pair) string {
	candidates := []string{p.BaseToken.LogoURI}
	if p.Info != nil {
		candidates = []string{p.Info.ImageURL, p.BaseToken.LogoURI}
		if p.Info.OpenGraph != nil {
			candidates = append(candidates, p.Info.OpenGraph.Image)
		}
	}
	for _, c := range candidates {
		if resolved := ResolveImage(c); resolved != "" {
			return resolved
		}
	}
	return ""
}

// ResolveImage rewrites ipfs:// references to a public gateway
func ResolveImage(raw string) string {
	if strings.HasPrefix(raw, "ipfs://") {
		return ipfsGateway + strings.TrimPrefix(raw, "ipfs://")
	}
	return raw
}

// FormatMarketCap renders a value with T/B/M/K suffixes
func FormatMarketCap(v float64) string {
	switch {
	case v <= 0:
		return "N/A"
	case v >= 1e12:
		return strconv.FormatFloat(v/1e12, 'f', 2, 64) + "T"
	case v >= 1e9:
		return strconv.FormatFloat(v/1e9, 'f', 2, 64) + "B"
	case v >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 2, 64) + "M"
	case v >= 1e3:
		return strconv.FormatFloat(v/1e3, 'f', 2, 64) + "K"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// LiquidityStatus describes the pool backing a pair
func LiquidityStatus(p *Pair) string {
	if p == nil {
		return NoLiquidity
	}
	if p.Liquidity == nil || p.Liquidity.Usd == 0 {
		return "Liquidity Found (" + p.DexID + ")"
	}
	return amountPrinter.Sprintf("$%.2f (%s)", p.Liquidity.Usd, p.DexID)
}
