package entity

// SimplePriceResponse is the body of /simple/price: asset id -> currency -> price.
type SimplePriceResponse map[string]map[string]float64

// MarketChartResponse is the body of /coins/{id}/market_chart.
// Each sample is a [unix millis, value] pair. Prices is a pointer so that an
// absent key can be told apart from an empty series.
type MarketChartResponse struct {
	Prices       *[][]float64 `json:"prices"`
	MarketCaps   [][]float64  `json:"market_caps"`
	TotalVolumes [][]float64  `json:"total_volumes"`
}

// MarketCoin is one element of the /coins/markets array. Numeric fields are
// nullable upstream for delisted or newly listed coins.
type MarketCoin struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	Image                    string   `json:"image"`
	CurrentPrice             *float64 `json:"current_price"`
	MarketCap                *float64 `json:"market_cap"`
	MarketCapRank            *int     `json:"market_cap_rank"`
	TotalVolume              *float64 `json:"total_volume"`
	High24h                  *float64 `json:"high_24h"`
	Low24h                   *float64 `json:"low_24h"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	ATH                      *float64 `json:"ath"`
	ATHChangePercentage      *float64 `json:"ath_change_percentage"`
	ATHDate                  string   `json:"ath_date"`
	LastUpdated              string   `json:"last_updated"`
}

// ErrorResponse is the error envelope CoinGecko returns on 4xx/5xx.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
}
