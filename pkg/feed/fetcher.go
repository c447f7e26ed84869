package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/feedrank/pkg/domain"
)

// unknownSource is used when a feed has no title
const unknownSource = "Unknown"

// HTTPFetcher fetches RSS/Atom feeds via HTTP and parses them with gofeed
type HTTPFetcher struct {
	parser     *Parser
	maxPerFeed int
}

// Params configures a fetcher
type Params struct {
	Timeout    time.Duration
	UserAgent  string
	MaxPerFeed int // entries taken from the top of each feed, 0 means all
}

// NewHTTPFetcher creates a new feed fetcher
func NewHTTPFetcher(params Params) *HTTPFetcher {
	return &HTTPFetcher{parser: NewParser(params.Timeout, params.UserAgent), maxPerFeed: params.MaxPerFeed}
}

// Fetch retrieves and parses a feed from the given URL
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) ([]domain.Article, error) {
	feed, err := f.parser.Parse(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = unknownSource
	}

	items := feed.Items
	if f.maxPerFeed > 0 && len(items) > f.maxPerFeed {
		items = items[:f.maxPerFeed]
	}

	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, domain.Article{
			Title:     strings.TrimSpace(item.Title),
			Summary:   cleanText(item.Description),
			Link:      strings.TrimSpace(item.Link),
			Published: strings.TrimSpace(item.Published),
			Source:    source,
			FeedURL:   feedURL,
		})
	}
	return articles, nil
}
