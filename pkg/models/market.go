package models

// PricePoint is one daily close in a market price series.
type PricePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Close float64 `json:"close"`
}

// MarketSeries is a named price series for a single instrument.
type MarketSeries struct {
	Symbol string       `json:"symbol"`
	Series []PricePoint `json:"series"`
}

// MarketData is the combined equities-proxy and crypto payload served
// by GET /market.
type MarketData struct {
	DevStocks MarketSeries `json:"devStocks"`
	Crypto    MarketSeries `json:"crypto"`
}
