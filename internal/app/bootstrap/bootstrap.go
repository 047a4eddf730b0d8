package bootstrap

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"market_scout/internal/app/port"
	"market_scout/internal/app/provider"
	"market_scout/internal/app/service"
	"market_scout/internal/client"
	"market_scout/internal/domain/entity"
	"market_scout/internal/infrastructure/configloader"
	networkdefinition "market_scout/internal/infrastructure/network/definition"
	"market_scout/internal/pkg/logger"
	"market_scout/internal/pkg/metrics"
)

// App holds the wired services shared by the CLI and the API server.
type App struct {
	Config     *configloader.Config
	ZapLogger  *zap.Logger
	Logger     port.Logger
	Prices     port.PriceService
	Scanner    port.MarketScanner
	Portfolio  port.PortfolioService
	Signatures *networkdefinition.SignatureProvider
	Wallets    port.WalletProvider
	Holdings   port.HoldingProvider
}

// New loads the configuration at configPath, initializes logging and metrics
// and wires every service. Callers must Sync ZapLogger before exit.
func New(configPath string) (*App, error) {
	cfg, err := configloader.Load(configPath)
	if err != nil {
		return nil, err
	}

	zapLogger, err := logger.Init(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	metrics.MustRegisterMetrics()

	appLogger := logger.NewSlogAdapter()
	appLogger.Info("Configuration loaded", "path", configPath, "log_level", cfg.Logging.Level)

	cg := client.NewCoinGeckoClient(
		cfg.CoinGecko.BaseURL,
		time.Duration(cfg.CoinGecko.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
		client.WithAPIKey(cfg.CoinGecko.APIKeyHeader, cfg.CoinGecko.APIKey),
		client.WithRateLimit(cfg.CoinGecko.RateLimitPerMinute, cfg.CoinGecko.RateLimitBurst),
		client.WithMaxPerPage(cfg.CoinGecko.MaxPerPage),
	)

	prices := service.NewPriceService(
		cg,
		appLogger,
		time.Duration(cfg.Cache.PriceTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.CleanupIntervalSeconds)*time.Second,
	)

	signatures, err := networkdefinition.NewSignatureProvider(appLogger, cfg.Chains)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:     cfg,
		ZapLogger:  zapLogger,
		Logger:     appLogger,
		Prices:     prices,
		Scanner:    service.NewMarketScanner(prices, appLogger, cg.MaxPerPage(), cfg.Scanner.Currency),
		Portfolio:  service.NewPortfolioService(prices, appLogger, cfg.Performance.MaxConcurrentRoutines),
		Signatures: signatures,
		Wallets:    provider.NewWalletProvider(cfg.Files.Wallets, appLogger),
		Holdings:   provider.NewHoldingProvider(cfg.Files.Holdings, appLogger),
	}, nil
}

// Classifier builds an address classifier over the configured signature
// table using the given resolvers.
func (a *App) Classifier(ambiguity port.AmbiguityResolver, unknown port.UnknownResolver) port.AddressClassifier {
	return service.NewAddressClassifier(a.Signatures.SignatureTable(), ambiguity, unknown, a.Logger)
}

// ScanRequest returns the scan configured in the scanner section.
func (a *App) ScanRequest() entity.ScanRequest {
	return entity.ScanRequest{
		ThresholdPercent: a.Config.Scanner.ThresholdPercent,
		Currency:         a.Config.Scanner.Currency,
		PageSize:         a.Config.Scanner.PerPage,
		MaxPages:         a.Config.Scanner.MaxPages,
	}
}
