package port

import (
	"context"

	"market_scout/internal/domain/entity"
)

// PortfolioService values holdings at current prices.
type PortfolioService interface {
	// Value never fails as a whole; holdings that could not be priced are reported in Errors.
	Value(ctx context.Context, holdings []entity.Holding, currency string) entity.PortfolioValuation
}
