package feed

import (
	"context"
	"fmt"
	"regexp"

	"github.com/umputun/feedrank/pkg/domain"
)

// simpleSource is the source name given to every article of the simple fetcher
const simpleSource = "RSS Feed"

var (
	reItem        = regexp.MustCompile(`(?s)<item>(.*?)</item>`)
	reTitle       = regexp.MustCompile(`(?s)<title>(.*?)</title>`)
	reLink        = regexp.MustCompile(`(?s)<link>(.*?)</link>`)
	reDescription = regexp.MustCompile(`(?s)<description>(.*?)</description>`)
	rePubDate     = regexp.MustCompile(`(?s)<pubDate>(.*?)</pubDate>`)
)

// SimpleFetcher scrapes RSS 2.0 items with regular expressions. It doesn't understand Atom,
// items without title or link are ignored.
type SimpleFetcher struct {
	parser     *Parser
	maxPerFeed int
}

// NewSimpleFetcher creates a regex based fetcher
func NewSimpleFetcher(params Params) *SimpleFetcher {
	return &SimpleFetcher{parser: NewParser(params.Timeout, params.UserAgent), maxPerFeed: params.MaxPerFeed}
}

// Fetch downloads the feed and extracts its items
func (f *SimpleFetcher) Fetch(ctx context.Context, feedURL string) ([]domain.Article, error) {
	body, err := f.parser.fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feedURL, err)
	}
	defer body.Close()

	data, err := f.parser.readAll(body)
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", feedURL, err)
	}
	return scrapeItems(string(data), feedURL, f.maxPerFeed), nil
}

func scrapeItems(content, feedURL string, limit int) []domain.Article {
	items := reItem.FindAllStringSubmatch(content, -1)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	res := make([]domain.Article, 0, len(items))
	for _, item := range items {
		title, link := reTitle.FindStringSubmatch(item[1]), reLink.FindStringSubmatch(item[1])
		if title == nil || link == nil {
			continue
		}
		res = append(res, domain.Article{
			Title:     cleanText(title[1]),
			Link:      cleanText(link[1]),
			Summary:   submatch(reDescription, item[1]),
			Published: submatch(rePubDate, item[1]),
			Source:    simpleSource,
			FeedURL:   feedURL,
		})
	}
	return res
}

func submatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return cleanText(m[1])
}
