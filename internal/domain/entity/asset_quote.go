package entity

import (
	"strings"
	"time"
)

// MarketAsset is one row of a provider market page.
type MarketAsset struct {
	ID           string
	Name         string
	Symbol       string
	CurrentPrice float64
	AllTimeHigh  float64
	MarketCap    float64
}

// AssetQuote is an asset retained by a market scan.
type AssetQuote struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
	CurrentPrice   float64 `json:"currentPrice"`
	AllTimeHigh    float64 `json:"allTimeHigh"`
	MarketCap      float64 `json:"marketCap"`
	DropPercentage float64 `json:"dropPercentage"`
}

// NewAssetQuote builds a quote from a market row. It reports false when the
// asset has no established peak or is not currently priced.
func NewAssetQuote(a MarketAsset) (AssetQuote, bool) {
	if a.AllTimeHigh <= 0 || a.CurrentPrice <= 0 {
		return AssetQuote{}, false
	}
	return AssetQuote{
		ID:             a.ID,
		Name:           a.Name,
		Symbol:         strings.ToUpper(a.Symbol),
		CurrentPrice:   a.CurrentPrice,
		AllTimeHigh:    a.AllTimeHigh,
		MarketCap:      a.MarketCap,
		DropPercentage: (a.AllTimeHigh - a.CurrentPrice) * 100 / a.AllTimeHigh,
	}, true
}

// ScanResult holds the quotes of a scan ordered by market cap, highest first.
type ScanResult struct {
	Threshold    float64      `json:"threshold"`
	Currency     string       `json:"currency"`
	PagesFetched int          `json:"pagesFetched"`
	Quotes       []AssetQuote `json:"quotes"`
}

// Top returns at most n quotes from the head of the result.
func (r ScanResult) Top(n int) []AssetQuote {
	if n < 0 || n >= len(r.Quotes) {
		return r.Quotes
	}
	return r.Quotes[:n]
}

// PricePoint is a single sample of a historical price series.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// MarketPageRequest selects one page of the market listing.
type MarketPageRequest struct {
	Currency string
	Page     int
	PerPage  int
}

// ScanRequest holds the parameters of a market scan.
type ScanRequest struct {
	ThresholdPercent float64
	Currency         string
	PageSize         int
	MaxPages         int
}
