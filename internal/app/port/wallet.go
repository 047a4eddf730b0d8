package port

import "market_scout/internal/domain/entity"

// WalletProvider defines the interface for fetching wallet addresses to classify.
type WalletProvider interface {
	GetWallets() ([]entity.Wallet, error)
}
