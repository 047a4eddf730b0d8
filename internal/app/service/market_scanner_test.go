package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"market_scout/internal/domain/entity"
	"market_scout/internal/pkg/logger"
)

func asset(id string, price, ath, marketCap float64) entity.MarketAsset {
	return entity.MarketAsset{ID: id, Name: id, Symbol: id, CurrentPrice: price, AllTimeHigh: ath, MarketCap: marketCap}
}

func ids(quotes []entity.AssetQuote) []string {
	out := make([]string, len(quotes))
	for i, q := range quotes {
		out[i] = q.ID
	}
	return out
}

func TestScan_FiltersByThreshold(t *testing.T) {
	prices := new(MockPriceService)
	prices.On("GetMarketPage", mock.Anything, pageRequest(1)).Return([]entity.MarketAsset{
		asset("first", 80, 100, 500),
		asset("second", 40, 100, 900),
		asset("third", 95, 100, 100),
	}, nil).Once()

	scanner := NewMarketScanner(prices, logger.Nop(), 250, "usd")
	result, err := scanner.Scan(context.Background(), entity.ScanRequest{ThresholdPercent: 25, Currency: "usd", PageSize: 3, MaxPages: 1})

	require.NoError(t, err)
	require.Len(t, result.Quotes, 1)
	assert.Equal(t, "second", result.Quotes[0].ID)
	assert.InDelta(t, 60.0, result.Quotes[0].DropPercentage, 1e-9)
	assert.Equal(t, 1, result.PagesFetched)
	prices.AssertExpectations(t)
}

func TestScan_ThresholdIsInclusive(t *testing.T) {
	prices := new(MockPriceService)
	prices.On("GetMarketPage", mock.Anything, pageRequest(1)).Return([]entity.MarketAsset{
		asset("exactly-twenty", 80, 100, 500),
	}, nil).Once()

	scanner := NewMarketScanner(prices, logger.Nop(), 250, "usd")
	result, err := scanner.Scan(context.Background(), entity.ScanRequest{ThresholdPercent: 20, PageSize: 10, MaxPages: 1})

	require.NoError(t, err)
	assert.Equal(t, []string{"exactly-twenty"}, ids(result.Quotes))
}

func TestScan_ExcludesAssetsWithoutPeakOrPrice(t *testing.T) {
	prices := new(MockPriceService)
	prices.On("GetMarketPage", mock.Anything, pageRequest(1)).Return([]entity.MarketAsset{
		asset("no-ath", 10, 0, 1000),
		asset("no-price", 0, 100, 900),
		asset("ok", 10, 100, 800),
	}, nil).Once()

	scanner := NewMarketScanner(prices, logger.Nop(), 250, "usd")
	result, err := scanner.Scan(context.Background(), entity.ScanRequest{ThresholdPercent: 0, PageSize: 10, MaxPages: 1})

	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, ids(result.Quotes))
}

func TestScan_StopsOnEmptyPage(t *testing.T) {
	prices := new(MockPriceService)
	prices.On("GetMarketPage", mock.Anything, pageRequest(1)).Return([]entity.MarketAsset{
		asset("a", 10, 100, 1000),
	}, nil).Once()
	prices.On("GetMarketPage", mock.Anything, pageRequest(2)).Return([]entity.MarketAsset{}, nil).Once()

	scanner := NewMarketScanner(prices, logger.Nop(), 250, "usd")
	result, err := scanner.Scan(context.Background(), entity.ScanRequest{ThresholdPercent: 30, PageSize: 1, MaxPages: 3})

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(result.Quotes))
	assert.Equal(t, 2, result.PagesFetched)
	prices.AssertExpectations(t)
	prices.AssertNotCalled(t, "GetMarketPage", mock.Anything, pageRequest(3))
}

func TestScan_TransportFailureDiscardsEarlierPages(t *testing.T) {
	prices := new(MockPriceService)
	prices.On("GetMarketPage", mock.Anything, pageRequest(1)).Return([]entity.MarketAsset{
		asset("a", 10, 100, 1000),
	}, nil).Once()
	prices.On("GetMarketPage", mock.Anything, pageRequest(2)).
		Return(nil, fmt.Errorf("%w: connection reset", entity.ErrTransport)).Once()

	scanner := NewMarketScanner(prices, logger.Nop(), 250, "usd")
	result, err := scanner.Scan(context.Background(), entity.ScanRequest{ThresholdPercent: 30, PageSize: 1, MaxPages: 3})

	require.ErrorIs(t, err, entity.ErrScanAborted)
	require.ErrorIs(t, err, entity.ErrTransport)
	assert.Empty(t, result.Quotes)
	assert.NotNil(t, result.Quotes)
	prices.AssertNotCalled(t, "GetMarketPage", mock.Anything, pageRequest(3))
}

func TestScan_MalformedPageAborts(t *testing.T) {
	prices := new(MockPriceService)
	prices.On("GetMarketPage", mock.Anything, pageRequest(1)).
		Return(nil, fmt.Errorf("%w: bad json", entity.ErrMalformedResponse)).Once()

	scanner := NewMarketScanner(prices, logger.Nop(), 250, "usd")
	result, err := scanner.Scan(context.Background(), entity.ScanRequest{ThresholdPercent: 30, PageSize: 10, MaxPages: 2})

	require.ErrorIs(t, err, entity.ErrScanAborted)
	require.ErrorIs(t, err, entity.ErrMalformedResponse)
	assert.Empty(t, result.Quotes)
}

func TestScan_CancelledBetweenPages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prices := new(MockPriceService)
	prices.On("GetMarketPage", mock.Anything, pageRequest(1)).
		Run(func(mock.Arguments) { cancel() }).
		Return([]entity.MarketAsset{asset("a", 10, 100, 1000)}, nil).Once()

	scanner := NewMarketScanner(prices, logger.Nop(), 250, "usd")
	result, err := scanner.Scan(ctx, entity.ScanRequest{ThresholdPercent: 30, PageSize: 1, MaxPages: 3})

	require.ErrorIs(t, err, entity.ErrScanAborted)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Quotes)
	prices.AssertNumberOfCalls(t, "GetMarketPage", 1)
}

func TestScan_SortsByMarketCapStable(t *testing.T) {
	prices := new(MockPriceService)
	prices.On("GetMarketPage", mock.Anything, pageRequest(1)).Return([]entity.MarketAsset{
		asset("small", 10, 100, 100),
		asset("tie-a", 10, 100, 500),
		asset("big", 10, 100, 900),
	}, nil).Once()
	prices.On("GetMarketPage", mock.Anything, pageRequest(2)).Return([]entity.MarketAsset{
		asset("tie-b", 10, 100, 500),
		asset("tie-c", 10, 100, 500),
	}, nil).Once()

	scanner := NewMarketScanner(prices, logger.Nop(), 250, "usd")
	result, err := scanner.Scan(context.Background(), entity.ScanRequest{ThresholdPercent: 50, PageSize: 3, MaxPages: 2})

	require.NoError(t, err)
	assert.Equal(t, []string{"big", "tie-a", "tie-b", "tie-c", "small"}, ids(result.Quotes))
}

func TestScan_MonotonicInThreshold(t *testing.T) {
	page := []entity.MarketAsset{
		asset("a", 90, 100, 700),
		asset("b", 50, 100, 600),
		asset("c", 5, 100, 500),
		asset("d", 70, 100, 400),
		asset("e", 1, 0, 300),
	}
	prices := new(MockPriceService)
	prices.On("GetMarketPage", mock.Anything, pageRequest(1)).Return(page, nil)
	scanner := NewMarketScanner(prices, logger.Nop(), 250, "usd")

	var previous map[string]bool
	for _, threshold := range []float64{0, 10, 30, 50, 95, 100} {
		result, err := scanner.Scan(context.Background(), entity.ScanRequest{ThresholdPercent: threshold, PageSize: 5, MaxPages: 1})
		require.NoError(t, err)

		current := map[string]bool{}
		for i, q := range result.Quotes {
			current[q.ID] = true
			assert.Positive(t, q.AllTimeHigh)
			assert.Positive(t, q.CurrentPrice)
			assert.GreaterOrEqual(t, q.DropPercentage, threshold)
			if i > 0 {
				assert.GreaterOrEqual(t, result.Quotes[i-1].MarketCap, q.MarketCap)
			}
		}
		for id := range current {
			if previous != nil {
				assert.Truef(t, previous[id], "%s retained at %v but not at a lower threshold", id, threshold)
			}
		}
		previous = current
	}
}

func TestScan_ClampsPageSizeAndDefaultsCurrency(t *testing.T) {
	prices := new(MockPriceService)
	prices.On("GetMarketPage", mock.Anything, entity.MarketPageRequest{Currency: "eur", Page: 1, PerPage: 250}).
		Return([]entity.MarketAsset{}, nil).Once()

	scanner := NewMarketScanner(prices, logger.Nop(), 250, "eur")
	result, err := scanner.Scan(context.Background(), entity.ScanRequest{ThresholdPercent: 30, PageSize: 1000, MaxPages: 1})

	require.NoError(t, err)
	assert.Equal(t, "eur", result.Currency)
	prices.AssertExpectations(t)
}

func TestScan_RejectsInvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  entity.ScanRequest
	}{
		{name: "negative threshold", req: entity.ScanRequest{ThresholdPercent: -1, PageSize: 10, MaxPages: 1}},
		{name: "zero pages", req: entity.ScanRequest{ThresholdPercent: 10, PageSize: 10, MaxPages: 0}},
		{name: "zero page size", req: entity.ScanRequest{ThresholdPercent: 10, PageSize: 0, MaxPages: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prices := new(MockPriceService)
			scanner := NewMarketScanner(prices, logger.Nop(), 250, "usd")

			_, err := scanner.Scan(context.Background(), tt.req)
			require.ErrorIs(t, err, entity.ErrInvalidArgument)
			prices.AssertNotCalled(t, "GetMarketPage", mock.Anything, mock.Anything)
		})
	}
}
