package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/zaskhakhalfani/finance-lab/pkg/models"
)

const defaultStooqURL = "https://stooq.com/q/d/l/?s=spy.us&i=d"

// StooqSymbol is the equities proxy instrument served by GET /market.
const StooqSymbol = "SPY"

// Stooq fetches daily close prices from Stooq's CSV endpoint. SPY is
// used as a developed-markets proxy.
type Stooq struct {
	url     string
	cache   *Cache
	limiter *RateLimiter
}

// NewStooq creates a Stooq client. An empty url selects the SPY daily
// feed.
func NewStooq(url string) *Stooq {
	if url == "" {
		url = defaultStooqURL
	}
	return &Stooq{
		url:     url,
		cache:   NewCache(time.Hour),
		limiter: NewRateLimiter(2, time.Second),
	}
}

// Name returns the data source name.
func (s *Stooq) Name() string { return "Stooq" }

// DailyCloses returns roughly the last year of daily closes, ascending
// by date. When the 365-day window filter leaves 10 rows or fewer
// (a provider glitch), the last 252 rows of the full series are
// returned instead.
func (s *Stooq) DailyCloses(ctx context.Context) ([]models.PricePoint, error) {
	return s.dailyClosesAt(ctx, time.Now())
}

// dailyClosesAt applies the recency filter relative to now; split out
// so tests can pin the clock.
func (s *Stooq) dailyClosesAt(ctx context.Context, now time.Time) ([]models.PricePoint, error) {
	const cacheKey = "stooq:daily"
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]models.PricePoint), nil
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := doGet(ctx, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("stooq: %w", err)
	}
	defer body.Close()

	all, err := parseStooqCSV(body)
	if err != nil {
		return nil, err
	}

	cutoff := now.AddDate(0, 0, -365).Format("2006-01-02")
	var recent []models.PricePoint
	for _, p := range all {
		if p.Date >= cutoff {
			recent = append(recent, p)
		}
	}

	// Fall back to the last 252 trading days if the date filter
	// returned next to nothing.
	final := recent
	if len(recent) <= 10 {
		if len(all) > 252 {
			final = all[len(all)-252:]
		} else {
			final = all
		}
	}

	s.cache.Set(cacheKey, final)
	return final, nil
}

// parseStooqCSV reads the Date,Open,High,Low,Close,Volume rows,
// keeping only rows with a positive close, ascending by date.
func parseStooqCSV(r io.Reader) ([]models.PricePoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("stooq parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("stooq: CSV has no data rows")
	}

	points := make([]models.PricePoint, 0, len(records)-1)
	for _, cols := range records[1:] { // skip header
		if len(cols) < 5 {
			continue
		}
		closePrice, err := strconv.ParseFloat(cols[4], 64)
		if err != nil || closePrice <= 0 {
			continue
		}
		points = append(points, models.PricePoint{Date: cols[0], Close: closePrice})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points, nil
}
