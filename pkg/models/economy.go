// Package models defines the shared value types exchanged between the
// data providers, the aggregation services, and the HTTP API.
// All types are transient: they are derived from the latest successful
// upstream fetch plus request parameters and are never persisted.
package models

// IndicatorObservation is a single annual World Bank indicator value.
type IndicatorObservation struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// YearValue is one row of an inflation series as served by the API:
// year as a string (matching the upstream date field) plus the value.
type YearValue struct {
	Year  string  `json:"year"`
	Value float64 `json:"value"`
}

// Direction labels the period-over-period movement of a dashboard tile.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// DashboardItem is one tile of the mini dashboard.
type DashboardItem struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Value     string    `json:"value"`
	Change    string    `json:"change"`
	Direction Direction `json:"direction"`
	Year      string    `json:"year"`
}

// RateReading is a policy rate extracted from a provider page.
type RateReading struct {
	Value  float64 `json:"value"`
	Source string  `json:"source"`
}

// MacroSnapshot aggregates the UK macro picture. Any component may be
// nil when its provider call failed; the snapshot is still served.
type MacroSnapshot struct {
	Inflation    *IndicatorObservation `json:"inflation"`
	GDP          *IndicatorObservation `json:"gdp"`
	Unemployment *IndicatorObservation `json:"unemployment"`
	BankRate     *RateReading          `json:"bankRate"`
}
