package restapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"market_scout/internal/app/port"
	"market_scout/internal/domain/entity"
)

// ScanDefaults fills query parameters the caller leaves out.
type ScanDefaults struct {
	ThresholdPercent float64
	Currency         string
	PerPage          int
	MaxPages         int
}

// ScanHandler runs market scans.
type ScanHandler struct {
	scanner  port.MarketScanner
	defaults ScanDefaults
}

// NewScanHandler creates a new instance of ScanHandler.
func NewScanHandler(s port.MarketScanner, defaults ScanDefaults) *ScanHandler {
	return &ScanHandler{scanner: s, defaults: defaults}
}

// GetScanHandler handles GET /scan?threshold=&currency=&perPage=&pages=&limit=
// A failed scan answers 502 and never returns partial quotes.
func (h *ScanHandler) GetScanHandler(c *gin.Context) {
	req := entity.ScanRequest{
		ThresholdPercent: h.defaults.ThresholdPercent,
		Currency:         queryCurrency(c, h.defaults.Currency),
		PageSize:         h.defaults.PerPage,
		MaxPages:         h.defaults.MaxPages,
	}

	var err error
	if req.ThresholdPercent, err = queryFloat(c, "threshold", req.ThresholdPercent); err != nil {
		abortWithError(c, err)
		return
	}
	if req.PageSize, err = queryInt(c, "perPage", req.PageSize); err != nil {
		abortWithError(c, err)
		return
	}
	if req.MaxPages, err = queryInt(c, "pages", req.MaxPages); err != nil {
		abortWithError(c, err)
		return
	}
	limit, err := queryInt(c, "limit", -1)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := h.scanner.Scan(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	result.Quotes = result.Top(limit)
	c.JSON(http.StatusOK, result)
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", entity.ErrInvalidArgument, key)
	}
	return n, nil
}

func queryFloat(c *gin.Context, key string, fallback float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", entity.ErrInvalidArgument, key)
	}
	return f, nil
}
