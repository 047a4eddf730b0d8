package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"market_scout/internal/app/port"
	"market_scout/internal/domain/entity"
	"market_scout/internal/pkg/metrics"
)

// priceServiceImpl caches current and historical prices in front of an
// upstream port.PriceService. Market pages always go upstream so that a scan
// never sees a listing mixed from two points in time.
type priceServiceImpl struct {
	upstream port.PriceService
	logger   port.Logger
	prices   *cache.Cache
}

// NewPriceService wraps upstream with a TTL cache. A non-positive ttl disables caching.
func NewPriceService(upstream port.PriceService, l port.Logger, ttl, cleanupInterval time.Duration) port.PriceService {
	s := &priceServiceImpl{
		upstream: upstream,
		logger:   l,
	}
	if ttl > 0 {
		s.prices = cache.New(ttl, cleanupInterval)
	}
	l.Info("PriceService initialized", "ttl", ttl, "cache_enabled", s.prices != nil)
	return s
}

func (s *priceServiceImpl) GetCurrentPrice(ctx context.Context, assetID, currency string) (float64, error) {
	key := fmt.Sprintf("current:%s:%s", strings.ToLower(assetID), strings.ToLower(currency))
	if price, ok := s.lookup(key, "current"); ok {
		return price.(float64), nil
	}

	price, err := s.upstream.GetCurrentPrice(ctx, assetID, currency)
	if err != nil {
		return 0, err
	}
	s.store(key, price)
	return price, nil
}

func (s *priceServiceImpl) GetHistoricalPrices(ctx context.Context, assetID, currency string, days int) ([]entity.PricePoint, error) {
	key := fmt.Sprintf("history:%s:%s:%d", strings.ToLower(assetID), strings.ToLower(currency), days)
	if points, ok := s.lookup(key, "history"); ok {
		return slices.Clone(points.([]entity.PricePoint)), nil
	}

	points, err := s.upstream.GetHistoricalPrices(ctx, assetID, currency, days)
	if err != nil {
		return nil, err
	}
	s.store(key, slices.Clone(points))
	return points, nil
}

func (s *priceServiceImpl) GetMarketPage(ctx context.Context, req entity.MarketPageRequest) ([]entity.MarketAsset, error) {
	return s.upstream.GetMarketPage(ctx, req)
}

func (s *priceServiceImpl) lookup(key, kind string) (any, bool) {
	if s.prices == nil {
		return nil, false
	}
	v, ok := s.prices.Get(key)
	if ok {
		metrics.PriceCacheLookups.WithLabelValues(kind, "hit").Inc()
		s.logger.Debug("Price cache hit", "key", key)
		return v, true
	}
	metrics.PriceCacheLookups.WithLabelValues(kind, "miss").Inc()
	return nil, false
}

func (s *priceServiceImpl) store(key string, v any) {
	if s.prices == nil {
		return
	}
	s.prices.Set(key, v, cache.DefaultExpiration)
}
