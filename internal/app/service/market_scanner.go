package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"market_scout/internal/app/port"
	"market_scout/internal/domain/entity"
	"market_scout/internal/pkg/metrics"
)

// marketScannerImpl implements port.MarketScanner.
type marketScannerImpl struct {
	priceSvc        port.PriceService
	logger          port.Logger
	maxPageSize     int
	defaultCurrency string
}

// NewMarketScanner creates a scanner over priceSvc. Page sizes above
// maxPageSize are clamped to it.
func NewMarketScanner(priceSvc port.PriceService, l port.Logger, maxPageSize int, defaultCurrency string) port.MarketScanner {
	if defaultCurrency == "" {
		defaultCurrency = "usd"
	}
	return &marketScannerImpl{
		priceSvc:        priceSvc,
		logger:          l,
		maxPageSize:     maxPageSize,
		defaultCurrency: defaultCurrency,
	}
}

// Scan walks the market listing page by page and keeps assets whose drop from
// their all-time high is at least req.ThresholdPercent. Any failure, including
// cancellation, discards everything gathered so far: the result is empty and
// the error wraps entity.ErrScanAborted.
func (s *marketScannerImpl) Scan(ctx context.Context, req entity.ScanRequest) (entity.ScanResult, error) {
	req, err := s.normalize(req)
	if err != nil {
		metrics.Scans.WithLabelValues("invalid").Inc()
		return entity.ScanResult{Quotes: []entity.AssetQuote{}}, err
	}

	s.logger.Info("Starting market scan",
		"threshold", req.ThresholdPercent,
		"currency", req.Currency,
		"page_size", req.PageSize,
		"max_pages", req.MaxPages)

	var retained []entity.AssetQuote
	pagesFetched := 0
	skipped := 0

	for page := 1; page <= req.MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return s.abort(req, page, err)
		}

		assets, err := s.priceSvc.GetMarketPage(ctx, entity.MarketPageRequest{
			Currency: req.Currency,
			Page:     page,
			PerPage:  req.PageSize,
		})
		if err != nil {
			return s.abort(req, page, err)
		}
		pagesFetched++
		metrics.ScanPages.Inc()

		if len(assets) == 0 {
			s.logger.Debug("Provider returned an empty page, stopping scan", "page", page)
			break
		}

		for _, asset := range assets {
			quote, ok := entity.NewAssetQuote(asset)
			if !ok {
				skipped++
				continue
			}
			if quote.DropPercentage >= req.ThresholdPercent {
				retained = append(retained, quote)
			}
		}
	}

	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].MarketCap > retained[j].MarketCap
	})
	if retained == nil {
		retained = []entity.AssetQuote{}
	}

	metrics.Scans.WithLabelValues("ok").Inc()
	s.logger.Info("Market scan finished",
		"pages_fetched", pagesFetched,
		"matches", len(retained),
		"skipped_without_peak_or_price", skipped)

	return entity.ScanResult{
		Threshold:    req.ThresholdPercent,
		Currency:     req.Currency,
		PagesFetched: pagesFetched,
		Quotes:       retained,
	}, nil
}

func (s *marketScannerImpl) normalize(req entity.ScanRequest) (entity.ScanRequest, error) {
	if req.ThresholdPercent < 0 {
		return req, fmt.Errorf("%w: threshold must not be negative, got %v", entity.ErrInvalidArgument, req.ThresholdPercent)
	}
	if req.MaxPages < 1 {
		return req, fmt.Errorf("%w: max pages must be at least 1, got %d", entity.ErrInvalidArgument, req.MaxPages)
	}
	if req.PageSize < 1 {
		return req, fmt.Errorf("%w: page size must be at least 1, got %d", entity.ErrInvalidArgument, req.PageSize)
	}
	if s.maxPageSize > 0 && req.PageSize > s.maxPageSize {
		s.logger.Warn("Page size exceeds provider maximum, clamping", "requested", req.PageSize, "max", s.maxPageSize)
		req.PageSize = s.maxPageSize
	}
	req.Currency = strings.ToLower(strings.TrimSpace(req.Currency))
	if req.Currency == "" {
		req.Currency = s.defaultCurrency
	}
	return req, nil
}

func (s *marketScannerImpl) abort(req entity.ScanRequest, page int, cause error) (entity.ScanResult, error) {
	metrics.Scans.WithLabelValues("aborted").Inc()
	s.logger.Error("Market scan aborted, discarding partial results", "page", page, "error", cause)
	return entity.ScanResult{
		Threshold: req.ThresholdPercent,
		Currency:  req.Currency,
		Quotes:    []entity.AssetQuote{},
	}, fmt.Errorf("%w on page %d: %w", entity.ErrScanAborted, page, cause)
}
