package port

import (
	"context"

	"market_scout/internal/domain/entity"
)

// PriceService is the market-data collaborator used by the scanner and the portfolio service.
type PriceService interface {
	GetCurrentPrice(ctx context.Context, assetID, currency string) (float64, error)
	GetHistoricalPrices(ctx context.Context, assetID, currency string, days int) ([]entity.PricePoint, error)
	// GetMarketPage returns one page of assets ordered by market cap, highest first.
	GetMarketPage(ctx context.Context, req entity.MarketPageRequest) ([]entity.MarketAsset, error)
}

// MarketScanner finds assets trading at least a given percentage below their all-time high.
type MarketScanner interface {
	Scan(ctx context.Context, req entity.ScanRequest) (entity.ScanResult, error)
}

// HoldingProvider defines the interface for fetching configured holdings.
type HoldingProvider interface {
	GetHoldings() ([]entity.Holding, error)
}
