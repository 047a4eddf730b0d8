package entity

// Wallet is an address listed in the wallets file. Chain is set only when the
// file pins the chain explicitly.
type Wallet struct {
	Address string
	Chain   string
}
