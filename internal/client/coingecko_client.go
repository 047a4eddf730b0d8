package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"market_scout/internal/domain/entity"
	cg "market_scout/internal/entity"
	"market_scout/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultMaxPerPage is the largest page size /coins/markets accepts.
	DefaultMaxPerPage = 250
	// DefaultAPIKeyHeader is the header used by demo (free tier) API keys.
	DefaultAPIKeyHeader = "x-cg-demo-api-key"

	endpointSimplePrice = "simple_price"
	endpointMarketChart = "market_chart"
	endpointMarkets     = "markets"
)

// CoinGeckoClient talks to the CoinGecko v3 REST API.
type CoinGeckoClient struct {
	client       *fasthttp.Client
	baseURL      string
	apiKey       string
	apiKeyHeader string
	timeout      time.Duration
	limiter      *rate.Limiter
	maxPerPage   int
	logger       *zap.Logger
}

// Option configures a CoinGeckoClient.
type Option func(*CoinGeckoClient)

// WithHTTPClient replaces the underlying fasthttp client.
func WithHTTPClient(c *fasthttp.Client) Option {
	return func(cl *CoinGeckoClient) {
		cl.client = c
	}
}

// WithAPIKey attaches key to every request under header. An empty header
// falls back to DefaultAPIKeyHeader.
func WithAPIKey(header, key string) Option {
	return func(cl *CoinGeckoClient) {
		if header == "" {
			header = DefaultAPIKeyHeader
		}
		cl.apiKeyHeader = header
		cl.apiKey = key
	}
}

// WithRateLimit caps outgoing requests. perMinute <= 0 disables limiting.
func WithRateLimit(perMinute, burst int) Option {
	return func(cl *CoinGeckoClient) {
		if perMinute <= 0 {
			cl.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		if burst <= 0 {
			burst = 1
		}
		cl.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
	}
}

// WithMaxPerPage overrides the provider page size cap.
func WithMaxPerPage(n int) Option {
	return func(cl *CoinGeckoClient) {
		if n > 0 {
			cl.maxPerPage = n
		}
	}
}

// NewCoinGeckoClient creates a client for the API rooted at baseURL
// (for example https://api.coingecko.com/api/v3).
func NewCoinGeckoClient(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) *CoinGeckoClient {
	c := &CoinGeckoClient{
		client:     &fasthttp.Client{Name: "market_scout"},
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		maxPerPage: DefaultMaxPerPage,
		logger:     logger.Named("CoinGeckoClient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxPerPage returns the largest page size GetMarketPage accepts.
func (c *CoinGeckoClient) MaxPerPage() int {
	return c.maxPerPage
}

// GetCurrentPrice returns the spot price of assetID in currency.
func (c *CoinGeckoClient) GetCurrentPrice(ctx context.Context, assetID, currency string) (float64, error) {
	currency = strings.ToLower(currency)
	query := url.Values{}
	query.Set("ids", assetID)
	query.Set("vs_currencies", currency)

	var data cg.SimplePriceResponse
	if err := c.get(ctx, endpointSimplePrice, "/simple/price", query, &data); err != nil {
		return 0, err
	}

	prices, ok := data[assetID]
	if !ok {
		c.logger.Warn("Asset missing from simple price response", zap.String("assetId", assetID))
		return 0, fmt.Errorf("%w: %w: asset %q", entity.ErrMalformedResponse, entity.ErrNotFound, assetID)
	}
	price, ok := prices[currency]
	if !ok {
		c.logger.Warn("Currency missing from simple price response", zap.String("assetId", assetID), zap.String("currency", currency))
		return 0, fmt.Errorf("%w: %w: asset %q has no %q price", entity.ErrMalformedResponse, entity.ErrNotFound, assetID, currency)
	}
	return price, nil
}

// GetHistoricalPrices returns the price series of assetID over the last days days.
func (c *CoinGeckoClient) GetHistoricalPrices(ctx context.Context, assetID, currency string, days int) ([]entity.PricePoint, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", entity.ErrInvalidArgument, days)
	}
	query := url.Values{}
	query.Set("vs_currency", strings.ToLower(currency))
	query.Set("days", strconv.Itoa(days))

	var chart cg.MarketChartResponse
	path := "/coins/" + url.PathEscape(assetID) + "/market_chart"
	if err := c.get(ctx, endpointMarketChart, path, query, &chart); err != nil {
		return nil, err
	}
	if chart.Prices == nil {
		return nil, fmt.Errorf("%w: %w: no price series for %q", entity.ErrMalformedResponse, entity.ErrNotFound, assetID)
	}

	points := make([]entity.PricePoint, 0, len(*chart.Prices))
	for i, sample := range *chart.Prices {
		if len(sample) < 2 {
			return nil, fmt.Errorf("%w: price sample #%d of %q has %d fields", entity.ErrMalformedResponse, i, assetID, len(sample))
		}
		points = append(points, entity.PricePoint{
			Timestamp: time.UnixMilli(int64(sample[0])).UTC(),
			Price:     sample[1],
		})
	}
	return points, nil
}

// GetMarketPage returns one page of coins ordered by market cap, highest first.
func (c *CoinGeckoClient) GetMarketPage(ctx context.Context, req entity.MarketPageRequest) ([]entity.MarketAsset, error) {
	if req.Page < 1 || req.PerPage < 1 {
		return nil, fmt.Errorf("%w: page and per page must be positive (page=%d, perPage=%d)", entity.ErrInvalidArgument, req.Page, req.PerPage)
	}
	if req.PerPage > c.maxPerPage {
		return nil, fmt.Errorf("%w: per page %d exceeds provider maximum %d", entity.ErrInvalidArgument, req.PerPage, c.maxPerPage)
	}

	query := url.Values{}
	query.Set("vs_currency", strings.ToLower(req.Currency))
	query.Set("order", "market_cap_desc")
	query.Set("per_page", strconv.Itoa(req.PerPage))
	query.Set("page", strconv.Itoa(req.Page))
	query.Set("sparkline", "false")

	var coins []cg.MarketCoin
	if err := c.get(ctx, endpointMarkets, "/coins/markets", query, &coins); err != nil {
		return nil, err
	}
	for i, coin := range coins {
		if coin.ID == "" {
			return nil, fmt.Errorf("%w: market entry #%d on page %d has no id", entity.ErrMalformedResponse, i, req.Page)
		}
	}

	return lo.Map(coins, func(coin cg.MarketCoin, _ int) entity.MarketAsset {
		return entity.MarketAsset{
			ID:           coin.ID,
			Name:         coin.Name,
			Symbol:       coin.Symbol,
			CurrentPrice: lo.FromPtr(coin.CurrentPrice),
			AllTimeHigh:  lo.FromPtr(coin.ATH),
			MarketCap:    lo.FromPtr(coin.MarketCap),
		}
	}), nil
}

// get performs a GET request and decodes the JSON body into dst.
func (c *CoinGeckoClient) get(ctx context.Context, endpoint, path string, query url.Values, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		metrics.ProviderRequests.WithLabelValues(endpoint, "cancelled").Inc()
		return fmt.Errorf("%w: waiting for rate limiter: %w", entity.ErrTransport, err)
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}
	c.logger.Debug("Requesting CoinGecko", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(c.apiKeyHeader, c.apiKey)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	start := time.Now()
	err := c.client.DoDeadline(req, resp, deadline)
	metrics.ProviderLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(endpoint, "transport_error").Inc()
		if errors.Is(err, fasthttp.ErrTimeout) {
			c.logger.Warn("CoinGecko request timed out", zap.String("url", requestURL), zap.Duration("timeout", c.timeout))
		} else {
			c.logger.Error("Failed to execute request to CoinGecko", zap.String("url", requestURL), zap.Error(err))
		}
		return fmt.Errorf("%w: request to %s: %w", entity.ErrTransport, requestURL, err)
	}

	body := resp.Body()
	if status := resp.StatusCode(); status < 200 || status > 299 {
		metrics.ProviderRequests.WithLabelValues(endpoint, "http_"+strconv.Itoa(status)).Inc()
		message := string(body)
		var apiErr cg.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil {
			if apiErr.Error != "" {
				message = apiErr.Error
			} else if apiErr.Status.ErrorMessage != "" {
				message = apiErr.Status.ErrorMessage
			}
		}
		c.logger.Error("CoinGecko API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", status),
			zap.String("message", message))
		return fmt.Errorf("%w: %s returned status %d: %s", entity.ErrTransport, requestURL, status, message)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		metrics.ProviderRequests.WithLabelValues(endpoint, "malformed").Inc()
		c.logger.Error("Failed to unmarshal CoinGecko response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", body),
			zap.Error(err))
		return fmt.Errorf("%w: decoding %s: %w", entity.ErrMalformedResponse, requestURL, err)
	}

	metrics.ProviderRequests.WithLabelValues(endpoint, "ok").Inc()
	return nil
}
