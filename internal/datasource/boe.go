package datasource

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/zaskhakhalfani/finance-lab/pkg/models"
)

const defaultBankRateURL = "https://www.bankofengland.co.uk/boeapps/database/Bank-Rate.asp"

// bankRatePattern matches phrasing like "Bank Rate is 5.25%" in the
// page text. The page has no structured source for this number, so
// this extraction is inherently brittle; a format change upstream
// breaks it and the caller falls back to nothing.
var bankRatePattern = regexp.MustCompile(`(?i)Bank Rate[^0-9]*([0-9.]+)\s*%`)

// BankRate scrapes the current Bank of England policy rate from its
// database page.
type BankRate struct {
	url     string
	cache   *Cache
	limiter *RateLimiter
}

// NewBankRate creates a Bank Rate scraper. An empty url selects the
// official page. Results are cached for 15 minutes.
func NewBankRate(url string) *BankRate {
	if url == "" {
		url = defaultBankRateURL
	}
	return &BankRate{
		url:     url,
		cache:   NewCache(15 * time.Minute),
		limiter: NewRateLimiter(1, time.Second),
	}
}

// Name returns the data source name.
func (b *BankRate) Name() string { return "Bank of England" }

// Current returns the policy rate extracted from the page, or nil when
// the pattern does not match (best effort, not an error).
func (b *BankRate) Current(ctx context.Context) (*models.RateReading, error) {
	const cacheKey = "boe:rate"
	if cached, ok := b.cache.Get(cacheKey); ok {
		return cached.(*models.RateReading), nil
	}
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := doGet(ctx, b.url, nil)
	if err != nil {
		return nil, fmt.Errorf("bank rate fetch: %w", err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("bank rate parse: %w", err)
	}

	match := bankRatePattern.FindStringSubmatch(doc.Text())
	if match == nil {
		return nil, nil
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil, nil
	}

	reading := &models.RateReading{Value: value, Source: "Bank of England"}
	b.cache.Set(cacheKey, reading)
	return reading, nil
}
