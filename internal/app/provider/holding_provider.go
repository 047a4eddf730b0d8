package provider

import (
	"sync"

	"market_scout/internal/app/port"
	"market_scout/internal/domain/entity"
	"market_scout/internal/infrastructure/holdingloader"
)

type holdingProviderImpl struct {
	filePath string
	logger   port.Logger

	mu    sync.Mutex
	cache []entity.Holding
}

// NewHoldingProvider creates a new HoldingProvider.
func NewHoldingProvider(filePath string, logger port.Logger) port.HoldingProvider {
	return &holdingProviderImpl{filePath: filePath, logger: logger}
}

// GetHoldings loads holdings from the configured file.
// It caches the results after the first successful load.
func (p *holdingProviderImpl) GetHoldings() ([]entity.Holding, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cache != nil {
		p.logger.Debug("Returning cached holdings")
		return p.cache, nil
	}

	p.logger.Debug("Loading holdings from disk", "path", p.filePath)
	holdings, err := holdingloader.LoadHoldings(p.filePath)
	if err != nil {
		p.logger.Error("Failed to load holdings", "path", p.filePath, "error", err)
		return nil, err
	}

	p.cache = holdings
	p.logger.Info("Holdings loaded and cached successfully", "count", len(holdings))
	return holdings, nil
}
