package entity

import "github.com/shopspring/decimal"

// PortfolioValuation is the valued set of holdings in one currency.
type PortfolioValuation struct {
	Currency string           `json:"currency"`
	Items    []HoldingValue   `json:"items"`
	Total    decimal.Decimal  `json:"total"`
	Errors   []PortfolioError `json:"errors,omitempty"`
}

// HoldingValue represents a single priced holding.
type HoldingValue struct {
	AssetID string          `json:"assetId"`
	Amount  decimal.Decimal `json:"amount"`
	Price   decimal.Decimal `json:"price"`
	Value   decimal.Decimal `json:"value"`
}
