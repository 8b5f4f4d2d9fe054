package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/zaskhakhalfani/finance-lab/pkg/models"
)

// World Bank indicator codes used across the application.
const (
	IndicatorCPI            = "FP.CPI.TOTL.ZG"    // CPI inflation, annual %
	IndicatorGDPGrowth      = "NY.GDP.MKTP.KD.ZG" // real GDP growth, annual %
	IndicatorUnemployment   = "SL.UEM.TOTL.ZS"    // unemployment, % of labour force (ILO)
	IndicatorUnemploymentNE = "SL.UEM.TOTL.NE.ZS" // unemployment, national estimate
)

const defaultWorldBankBaseURL = "https://api.worldbank.org/v2"

// WorldBank fetches annual indicator series from the World Bank API.
type WorldBank struct {
	baseURL string
	cache   *Cache
	limiter *RateLimiter
}

// NewWorldBank creates a World Bank client. An empty baseURL selects
// the public API. Responses are cached for an hour.
func NewWorldBank(baseURL string) *WorldBank {
	if baseURL == "" {
		baseURL = defaultWorldBankBaseURL
	}
	return &WorldBank{
		baseURL: baseURL,
		cache:   NewCache(time.Hour),
		limiter: NewRateLimiter(5, time.Second),
	}
}

// Name returns the data source name.
func (wb *WorldBank) Name() string { return "World Bank" }

// wbRow is one observation as the API returns it: a year string and a
// possibly-null value.
type wbRow struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// fetchRows retrieves the raw observation rows for a country/indicator
// pair, newest first, as served by the API.
func (wb *WorldBank) fetchRows(ctx context.Context, country, indicator string, perPage int) ([]wbRow, error) {
	cacheKey := fmt.Sprintf("wb:%s:%s:%d", country, indicator, perPage)
	if cached, ok := wb.cache.Get(cacheKey); ok {
		return cached.([]wbRow), nil
	}
	if err := wb.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/country/%s/indicator/%s?format=json&per_page=%d",
		wb.baseURL, country, indicator, perPage)
	body, err := doGet(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("world bank %s/%s: %w", country, indicator, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("world bank read: %w", err)
	}

	// The API returns a two-element array: [metadata, rows].
	var envelope []json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		snippet := string(raw)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, fmt.Errorf("world bank decode: %w: %s", err, snippet)
	}
	if len(envelope) < 2 {
		return nil, fmt.Errorf("world bank: unexpected envelope with %d elements", len(envelope))
	}

	var rows []wbRow
	if err := json.Unmarshal(envelope[1], &rows); err != nil {
		return nil, fmt.Errorf("world bank decode rows: %w", err)
	}

	wb.cache.Set(cacheKey, rows)
	return rows, nil
}

// InflationSeries returns the most recent 15 non-null CPI inflation
// observations for a country, oldest first.
func (wb *WorldBank) InflationSeries(ctx context.Context, country string) ([]models.YearValue, error) {
	rows, err := wb.fetchRows(ctx, country, IndicatorCPI, 20)
	if err != nil {
		return nil, err
	}

	// Rows arrive newest first; keep the 15 most recent non-null
	// values, then reverse to oldest-first for charting.
	var recent []models.YearValue
	for _, row := range rows {
		if row.Value == nil {
			continue
		}
		recent = append(recent, models.YearValue{Year: row.Date, Value: *row.Value})
		if len(recent) == 15 {
			break
		}
	}

	series := make([]models.YearValue, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		series = append(series, recent[i])
	}
	return series, nil
}

// InflationHistory returns every non-null CPI observation served for
// a country, in the API's newest-first order. Callers reshape as
// needed for comparison charts.
func (wb *WorldBank) InflationHistory(ctx context.Context, country string) ([]models.YearValue, error) {
	rows, err := wb.fetchRows(ctx, country, IndicatorCPI, 80)
	if err != nil {
		return nil, err
	}

	history := make([]models.YearValue, 0, len(rows))
	for _, row := range rows {
		if row.Value == nil {
			continue
		}
		history = append(history, models.YearValue{Year: row.Date, Value: *row.Value})
	}
	return history, nil
}

// LatestPair returns the two most recent observation rows for an
// indicator, whether or not their values are present. Either pointer
// may be nil when the row is missing or its value is null.
func (wb *WorldBank) LatestPair(ctx context.Context, country, indicator string) (latest, prev *models.IndicatorObservation, err error) {
	rows, err := wb.fetchRows(ctx, country, indicator, 2)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) > 0 {
		latest = observation(rows[0])
	}
	if len(rows) > 1 {
		prev = observation(rows[1])
	}
	return latest, prev, nil
}

// Latest returns the most recent non-null observation for an
// indicator, or nil when the whole series is empty.
func (wb *WorldBank) Latest(ctx context.Context, country, indicator string) (*models.IndicatorObservation, error) {
	rows, err := wb.fetchRows(ctx, country, indicator, 60)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if obs := observation(row); obs != nil {
			return obs, nil
		}
	}
	return nil, nil
}

// observation converts a raw row, dropping null values and unparseable
// years.
func observation(row wbRow) *models.IndicatorObservation {
	if row.Value == nil {
		return nil
	}
	year, err := strconv.Atoi(row.Date)
	if err != nil {
		return nil
	}
	return &models.IndicatorObservation{Year: year, Value: *row.Value}
}
