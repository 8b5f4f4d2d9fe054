package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zaskhakhalfani/finance-lab/pkg/models"
)

const defaultCoinGeckoURL = "https://api.coingecko.com/api/v3/coins/bitcoin/market_chart?vs_currency=usd&days=365&interval=daily"

// CoinGeckoSymbol is the crypto instrument served by GET /market.
const CoinGeckoSymbol = "BTC-USD"

// CoinGecko fetches the BTC market chart, a year of daily
// [timestamp, price] pairs.
type CoinGecko struct {
	url     string
	cache   *Cache
	limiter *RateLimiter
}

// NewCoinGecko creates a CoinGecko client. An empty url selects the
// BTC/USD 365-day daily chart.
func NewCoinGecko(url string) *CoinGecko {
	if url == "" {
		url = defaultCoinGeckoURL
	}
	return &CoinGecko{
		url:     url,
		cache:   NewCache(time.Hour),
		limiter: NewRateLimiter(2, time.Second),
	}
}

// Name returns the data source name.
func (cg *CoinGecko) Name() string { return "CoinGecko" }

type marketChart struct {
	Prices [][2]float64 `json:"prices"`
}

// DailyCloses converts the [timestamp, price] pairs into date-stamped
// points. Timestamps are Unix milliseconds; dates are YYYY-MM-DD UTC.
func (cg *CoinGecko) DailyCloses(ctx context.Context) ([]models.PricePoint, error) {
	const cacheKey = "coingecko:btc"
	if cached, ok := cg.cache.Get(cacheKey); ok {
		return cached.([]models.PricePoint), nil
	}
	if err := cg.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := doGet(ctx, cg.url, nil)
	if err != nil {
		return nil, fmt.Errorf("coingecko: %w", err)
	}
	defer body.Close()

	var chart marketChart
	if err := json.NewDecoder(body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("coingecko decode: %w", err)
	}

	points := make([]models.PricePoint, 0, len(chart.Prices))
	for _, pair := range chart.Prices {
		ts := time.UnixMilli(int64(pair[0])).UTC()
		points = append(points, models.PricePoint{
			Date:  ts.Format("2006-01-02"),
			Close: pair[1],
		})
	}

	cg.cache.Set(cacheKey, points)
	return points, nil
}
