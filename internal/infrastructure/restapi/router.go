package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers groups the API handlers mounted by SetupRouter.
type Handlers struct {
	Price     *PriceHandler
	Scan      *ScanHandler
	Classify  *ClassifyHandler
	Portfolio *PortfolioHandler
}

// SetupRouter builds the gin engine with CORS, request logging, recovery,
// the v1 API and the Prometheus endpoint.
func SetupRouter(zapLogger *zap.Logger, h Handlers) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/prices/:assetId", h.Price.GetPriceHandler)
		v1.GET("/prices/:assetId/history", h.Price.GetHistoryHandler)
		v1.GET("/scan", h.Scan.GetScanHandler)
		v1.GET("/classify/:address", h.Classify.GetClassificationHandler)
		v1.GET("/chains", h.Classify.GetChainsHandler)
		v1.GET("/portfolio", h.Portfolio.GetPortfolioHandler)
	}

	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
