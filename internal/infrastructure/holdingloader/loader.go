package holdingloader

import (
	"fmt"
	"strings"

	"market_scout/internal/domain/entity"
	"market_scout/internal/pkg/utils"
)

// LoadHoldings reads a JSON array of holdings:
//
//	[{"assetId": "bitcoin", "amount": "0.25"}]
//
// Amounts may be JSON strings or numbers. Entries for the same asset are summed.
func LoadHoldings(path string) ([]entity.Holding, error) {
	raw, err := utils.LoadJSON[[]entity.Holding](path)
	if err != nil {
		return nil, err
	}

	holdings := make([]entity.Holding, 0, len(raw))
	index := make(map[string]int, len(raw))
	for i, h := range raw {
		id := strings.ToLower(strings.TrimSpace(h.AssetID))
		if id == "" {
			return nil, fmt.Errorf("%w: holding #%d in %s has no assetId", entity.ErrInvalidArgument, i, path)
		}
		if h.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: holding %s in %s has a negative amount", entity.ErrInvalidArgument, id, path)
		}
		if j, ok := index[id]; ok {
			holdings[j].Amount = holdings[j].Amount.Add(h.Amount)
			continue
		}
		index[id] = len(holdings)
		holdings = append(holdings, entity.Holding{AssetID: id, Amount: h.Amount})
	}
	return holdings, nil
}
