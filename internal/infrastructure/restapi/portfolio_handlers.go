package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"market_scout/internal/app/port"
	"market_scout/internal/domain/entity"
)

// APIPortfolioResponse is the body returned by the portfolio endpoint.
type APIPortfolioResponse struct {
	Data          entity.PortfolioValuation `json:"data"`
	StatusMessage string                    `json:"status_message"`
}

// PortfolioHandler values the configured holdings.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
	holdings         port.HoldingProvider
	defaultCurrency  string
}

// NewPortfolioHandler creates a new instance of PortfolioHandler.
func NewPortfolioHandler(ps port.PortfolioService, hp port.HoldingProvider, defaultCurrency string) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: ps,
		holdings:         hp,
		defaultCurrency:  defaultCurrency,
	}
}

// GetPortfolioHandler handles GET /portfolio?currency=
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	holdings, err := h.holdings.GetHoldings()
	if err != nil {
		abortWithError(c, err)
		return
	}

	valuation := h.portfolioService.Value(c.Request.Context(), holdings, queryCurrency(c, h.defaultCurrency))

	response := APIPortfolioResponse{Data: valuation}
	switch {
	case len(valuation.Errors) > 0 && len(valuation.Items) == 0:
		response.StatusMessage = "Failed to price any holding."
	case len(valuation.Errors) > 0:
		response.StatusMessage = "Portfolio valued. Some holdings could not be priced."
	case len(valuation.Items) == 0:
		response.StatusMessage = "No holdings configured."
	default:
		response.StatusMessage = "Portfolio valued successfully."
	}
	c.JSON(http.StatusOK, response)
}
