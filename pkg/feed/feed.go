// Package feed fetches RSS and Atom feeds and turns their entries into articles.
// Two fetchers are provided: HTTPFetcher parses feeds with gofeed, SimpleFetcher scrapes RSS items with regular expressions.
package feed

import (
	"context"
	"html"
	"log"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/feedrank/pkg/domain"
)

// Fetcher retrieves articles from a single feed
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]domain.Article, error)
}

var stripPolicy = bluemonday.StrictPolicy()

// FetchAll fetches all feeds with up to workers concurrent requests. Articles are returned in feed order,
// feeds that fail are logged and skipped. The only error returned is context cancellation.
func FetchAll(ctx context.Context, f Fetcher, urls []string, workers int) ([]domain.Article, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([][]domain.Article, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			articles, err := f.Fetch(gctx, u)
			if err != nil {
				log.Printf("[WARN] failed to fetch feed %s: %v", u, err)
				return nil
			}
			log.Printf("[DEBUG] fetched %d articles from %s", len(articles), u)
			results[i] = articles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var res []domain.Article
	for _, r := range results {
		res = append(res, r...)
	}
	return res, nil
}

// cleanText removes markup from a feed field and returns plain text
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<![CDATA[") && strings.HasSuffix(s, "]]>") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "<![CDATA["), "]]>")
	}
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	// escaped markup shows up as tags only after the first pass
	if strings.ContainsRune(s, '<') {
		s = html.UnescapeString(stripPolicy.Sanitize(s))
	}
	return strings.TrimSpace(s)
}
