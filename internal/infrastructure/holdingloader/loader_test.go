package holdingloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_scout/internal/domain/entity"
)

func writeHoldings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdings.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadHoldings(t *testing.T) {
	path := writeHoldings(t, `[
		{"assetId": "bitcoin", "amount": "0.25"},
		{"assetId": " Solana ", "amount": 12},
		{"assetId": "BITCOIN", "amount": "0.05"}
	]`)

	got, err := LoadHoldings(path)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bitcoin", got[0].AssetID)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("0.3")))
	assert.Equal(t, "solana", got[1].AssetID)
	assert.True(t, got[1].Amount.Equal(decimal.NewFromInt(12)))
}

func TestLoadHoldings_Invalid(t *testing.T) {
	_, err := LoadHoldings(writeHoldings(t, `[{"amount": "1"}]`))
	require.ErrorIs(t, err, entity.ErrInvalidArgument)

	_, err = LoadHoldings(writeHoldings(t, `[{"assetId": "bitcoin", "amount": "-1"}]`))
	require.ErrorIs(t, err, entity.ErrInvalidArgument)

	_, err = LoadHoldings(writeHoldings(t, `{"assetId": "bitcoin"}`))
	require.Error(t, err)
}
