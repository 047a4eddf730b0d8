package restapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"market_scout/internal/app/port"
	"market_scout/internal/domain/entity"
)

const defaultHistoryDays = 7

// APIPriceResponse is returned by the current price endpoint.
type APIPriceResponse struct {
	AssetID  string  `json:"assetId"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
}

// APIHistoryResponse is returned by the price history endpoint.
type APIHistoryResponse struct {
	AssetID  string              `json:"assetId"`
	Currency string              `json:"currency"`
	Days     int                 `json:"days"`
	Prices   []entity.PricePoint `json:"prices"`
}

// PriceHandler serves current and historical prices.
type PriceHandler struct {
	priceSvc        port.PriceService
	defaultCurrency string
}

// NewPriceHandler creates a new instance of PriceHandler.
func NewPriceHandler(ps port.PriceService, defaultCurrency string) *PriceHandler {
	return &PriceHandler{priceSvc: ps, defaultCurrency: defaultCurrency}
}

// GetPriceHandler handles GET /prices/:assetId?currency=
func (h *PriceHandler) GetPriceHandler(c *gin.Context) {
	assetID := strings.ToLower(c.Param("assetId"))
	currency := queryCurrency(c, h.defaultCurrency)

	price, err := h.priceSvc.GetCurrentPrice(c.Request.Context(), assetID, currency)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIPriceResponse{AssetID: assetID, Currency: currency, Price: price})
}

// GetHistoryHandler handles GET /prices/:assetId/history?currency=&days=
func (h *PriceHandler) GetHistoryHandler(c *gin.Context) {
	assetID := strings.ToLower(c.Param("assetId"))
	currency := queryCurrency(c, h.defaultCurrency)

	days := defaultHistoryDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, fmt.Errorf("%w: days must be an integer", entity.ErrInvalidArgument))
			return
		}
		days = n
	}

	points, err := h.priceSvc.GetHistoricalPrices(c.Request.Context(), assetID, currency, days)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIHistoryResponse{AssetID: assetID, Currency: currency, Days: days, Prices: points})
}

func queryCurrency(c *gin.Context, fallback string) string {
	if v := strings.TrimSpace(c.Query("currency")); v != "" {
		return strings.ToLower(v)
	}
	return fallback
}
