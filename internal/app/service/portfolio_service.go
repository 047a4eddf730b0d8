package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"market_scout/internal/app/port"
	"market_scout/internal/domain/entity"
)

const defaultMaxConcurrentLookups = 5

// portfolioServiceImpl implements port.PortfolioService
type portfolioServiceImpl struct {
	priceSvc      port.PriceService
	logger        port.Logger
	maxConcurrent int
}

// NewPortfolioService creates a new instance of portfolioServiceImpl.
func NewPortfolioService(priceSvc port.PriceService, l port.Logger, maxConcurrent int) port.PortfolioService {
	if maxConcurrent < 1 {
		maxConcurrent = defaultMaxConcurrentLookups
	}
	return &portfolioServiceImpl{
		priceSvc:      priceSvc,
		logger:        l,
		maxConcurrent: maxConcurrent,
	}
}

// Value prices every holding concurrently. Holdings that cannot be priced are
// left out of the total and reported in Errors, in input order.
func (s *portfolioServiceImpl) Value(ctx context.Context, holdings []entity.Holding, currency string) entity.PortfolioValuation {
	currency = strings.ToLower(strings.TrimSpace(currency))
	s.logger.Info("Valuing portfolio", "holdings", len(holdings), "currency", currency)

	values := make([]*entity.HoldingValue, len(holdings))
	failures := make([]*entity.PortfolioError, len(holdings))
	var mu sync.Mutex

	eg, childCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.maxConcurrent)

	for i, holding := range holdings {
		eg.Go(func() error {
			value, failure := s.valueHolding(childCtx, holding, currency)
			mu.Lock()
			defer mu.Unlock()
			values[i] = value
			failures[i] = failure
			// Failures are recorded per holding; the group itself never fails.
			return nil
		})
	}
	_ = eg.Wait()

	valuation := entity.PortfolioValuation{
		Currency: currency,
		Items:    make([]entity.HoldingValue, 0, len(holdings)),
		Total:    decimal.Zero,
		Errors:   make([]entity.PortfolioError, 0),
	}
	for i := range holdings {
		if failures[i] != nil {
			valuation.Errors = append(valuation.Errors, *failures[i])
			continue
		}
		valuation.Items = append(valuation.Items, *values[i])
		valuation.Total = valuation.Total.Add(values[i].Value)
	}
	sort.SliceStable(valuation.Items, func(i, j int) bool {
		return valuation.Items[i].Value.GreaterThan(valuation.Items[j].Value)
	})

	s.logger.Info("Portfolio valuation complete",
		"items", len(valuation.Items),
		"errors", len(valuation.Errors),
		"total", valuation.Total.String())
	return valuation
}

func (s *portfolioServiceImpl) valueHolding(ctx context.Context, h entity.Holding, currency string) (*entity.HoldingValue, *entity.PortfolioError) {
	if strings.TrimSpace(h.AssetID) == "" {
		return nil, &entity.PortfolioError{AssetID: h.AssetID, Message: "asset id is empty"}
	}
	if h.Amount.IsNegative() {
		return nil, &entity.PortfolioError{AssetID: h.AssetID, Message: "amount must not be negative"}
	}

	price, err := s.priceSvc.GetCurrentPrice(ctx, h.AssetID, currency)
	if err != nil {
		s.logger.Warn("Failed to price holding", "asset", h.AssetID, "error", err)
		return nil, &entity.PortfolioError{AssetID: h.AssetID, Message: err.Error()}
	}

	p := decimal.NewFromFloat(price)
	return &entity.HoldingValue{
		AssetID: h.AssetID,
		Amount:  h.Amount,
		Price:   p,
		Value:   h.Amount.Mul(p),
	}, nil
}
