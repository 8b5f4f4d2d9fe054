package datasource

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/zaskhakhalfani/finance-lab/pkg/models"
)

// News fetches headlines from configured economics RSS feeds. Feeds
// that fail are skipped; the remaining headlines are still served.
type News struct {
	feeds   []string
	cache   *Cache
	limiter *RateLimiter
	parser  *gofeed.Parser
}

// NewNews creates a news source over the given feed URLs.
func NewNews(feeds []string) *News {
	return &News{
		feeds:   feeds,
		cache:   NewCache(10 * time.Minute),
		limiter: NewRateLimiter(2, time.Second),
		parser:  gofeed.NewParser(),
	}
}

// Name returns the data source name.
func (n *News) Name() string { return "Economics News" }

// Headlines returns up to limit recent items across all feeds, newest
// first.
func (n *News) Headlines(ctx context.Context, limit int) ([]models.NewsItem, error) {
	const cacheKey = "news:headlines"
	if cached, ok := n.cache.Get(cacheKey); ok {
		return capItems(cached.([]models.NewsItem), limit), nil
	}

	var items []models.NewsItem
	for _, url := range n.feeds {
		if err := n.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		feed, err := n.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			log.Printf("news: skipping feed %s: %v", url, err)
			continue
		}
		for _, item := range feed.Items {
			published := time.Time{}
			if item.PublishedParsed != nil {
				published = *item.PublishedParsed
			}
			items = append(items, models.NewsItem{
				Title:       item.Title,
				Link:        item.Link,
				Source:      feed.Title,
				PublishedAt: published,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	n.cache.Set(cacheKey, items)
	return capItems(items, limit), nil
}

func capItems(items []models.NewsItem, limit int) []models.NewsItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
