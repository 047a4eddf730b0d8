package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"market_scout/internal/app/bootstrap"
	"market_scout/internal/infrastructure/resolver"
	"market_scout/internal/infrastructure/restapi"
)

func main() {
	configPath := pflag.StringP("config", "c", "config/config.yml", "path to the YAML configuration file")
	pflag.Parse()

	_ = godotenv.Load() // Load .env if present

	app, err := bootstrap.New(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: %v\n", err)
		os.Exit(1)
	}
	defer app.ZapLogger.Sync()
	zapLogger := app.ZapLogger

	if app.Config.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// An HTTP request cannot answer a prompt, so ambiguity and unknown
	// addresses are reported back to the caller.
	classifier := app.Classifier(resolver.FailClosed{}, resolver.FailClosed{})

	router := restapi.SetupRouter(zapLogger, restapi.Handlers{
		Price: restapi.NewPriceHandler(app.Prices, app.Config.Scanner.Currency),
		Scan: restapi.NewScanHandler(app.Scanner, restapi.ScanDefaults{
			ThresholdPercent: app.Config.Scanner.ThresholdPercent,
			Currency:         app.Config.Scanner.Currency,
			PerPage:          app.Config.Scanner.PerPage,
			MaxPages:         app.Config.Scanner.MaxPages,
		}),
		Classify:  restapi.NewClassifyHandler(classifier, app.Signatures),
		Portfolio: restapi.NewPortfolioHandler(app.Portfolio, app.Holdings, app.Config.Scanner.Currency),
	})

	srv := &http.Server{
		Addr:         ":" + app.Config.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(app.Config.Server.WriteTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exiting")
}
