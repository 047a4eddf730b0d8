package entity

import "github.com/shopspring/decimal"

// Holding is an amount of an asset, identified by its provider id.
type Holding struct {
	AssetID string          `json:"assetId" yaml:"assetId"`
	Amount  decimal.Decimal `json:"amount" yaml:"amount"`
}
