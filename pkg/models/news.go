package models

import "time"

// NewsItem is a single headline pulled from an economics RSS feed.
type NewsItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
}
