package entity

// PortfolioError represents a holding that could not be valued.
type PortfolioError struct {
	AssetID string `json:"assetId"`
	Message string `json:"message"`
}
