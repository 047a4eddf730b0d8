package restapi

import (
	"context"

	"github.com/stretchr/testify/mock"

	"market_scout/internal/domain/entity"
)

type mockPriceService struct{ mock.Mock }

func (m *mockPriceService) GetCurrentPrice(ctx context.Context, assetID, currency string) (float64, error) {
	args := m.Called(ctx, assetID, currency)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockPriceService) GetHistoricalPrices(ctx context.Context, assetID, currency string, days int) ([]entity.PricePoint, error) {
	args := m.Called(ctx, assetID, currency, days)
	points, _ := args.Get(0).([]entity.PricePoint)
	return points, args.Error(1)
}

func (m *mockPriceService) GetMarketPage(ctx context.Context, req entity.MarketPageRequest) ([]entity.MarketAsset, error) {
	args := m.Called(ctx, req)
	assets, _ := args.Get(0).([]entity.MarketAsset)
	return assets, args.Error(1)
}

type mockScanner struct{ mock.Mock }

func (m *mockScanner) Scan(ctx context.Context, req entity.ScanRequest) (entity.ScanResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(entity.ScanResult), args.Error(1)
}

type mockClassifier struct{ mock.Mock }

func (m *mockClassifier) Classify(ctx context.Context, address string) (entity.Classification, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(entity.Classification), args.Error(1)
}

func (m *mockClassifier) ClassifyWithOverride(ctx context.Context, address, chain string) (entity.Classification, error) {
	args := m.Called(ctx, address, chain)
	return args.Get(0).(entity.Classification), args.Error(1)
}

type mockPortfolio struct{ mock.Mock }

func (m *mockPortfolio) Value(ctx context.Context, holdings []entity.Holding, currency string) entity.PortfolioValuation {
	args := m.Called(ctx, holdings, currency)
	return args.Get(0).(entity.PortfolioValuation)
}

type mockHoldings struct{ mock.Mock }

func (m *mockHoldings) GetHoldings() ([]entity.Holding, error) {
	args := m.Called()
	holdings, _ := args.Get(0).([]entity.Holding)
	return holdings, args.Error(1)
}

type staticSignatures struct{ table entity.SignatureTable }

func (s staticSignatures) SignatureTable() entity.SignatureTable { return s.table }
