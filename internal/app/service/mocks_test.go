package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"market_scout/internal/domain/entity"
)

type MockPriceService struct {
	mock.Mock
}

func (m *MockPriceService) GetCurrentPrice(ctx context.Context, assetID, currency string) (float64, error) {
	args := m.Called(ctx, assetID, currency)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockPriceService) GetHistoricalPrices(ctx context.Context, assetID, currency string, days int) ([]entity.PricePoint, error) {
	args := m.Called(ctx, assetID, currency, days)
	points, _ := args.Get(0).([]entity.PricePoint)
	return points, args.Error(1)
}

func (m *MockPriceService) GetMarketPage(ctx context.Context, req entity.MarketPageRequest) ([]entity.MarketAsset, error) {
	args := m.Called(ctx, req)
	assets, _ := args.Get(0).([]entity.MarketAsset)
	return assets, args.Error(1)
}

type MockAmbiguityResolver struct {
	mock.Mock
}

func (m *MockAmbiguityResolver) ResolveAmbiguity(ctx context.Context, address string, candidates []string) (string, error) {
	args := m.Called(ctx, address, candidates)
	return args.String(0), args.Error(1)
}

type MockUnknownResolver struct {
	mock.Mock
}

func (m *MockUnknownResolver) ResolveUnknown(ctx context.Context, address string) (string, error) {
	args := m.Called(ctx, address)
	return args.String(0), args.Error(1)
}

// pageRequest matches a market page request by page number.
func pageRequest(page int) any {
	return mock.MatchedBy(func(req entity.MarketPageRequest) bool { return req.Page == page })
}
