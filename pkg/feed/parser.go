package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// maxFeedSize caps how much of a feed response is read
const maxFeedSize = 10 << 20

// Parser downloads and parses RSS/Atom feeds
type Parser struct {
	client    *http.Client
	userAgent string
	maxSize   int64
}

// NewParser creates a new feed parser
func NewParser(timeout time.Duration, userAgent string) *Parser {
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		maxSize:   maxFeedSize,
	}
}

// Parse fetches and parses a feed from the given URL
func (p *Parser) Parse(ctx context.Context, url string) (*gofeed.Feed, error) {
	body, err := p.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	// a truncated document fails to parse
	feed, err := gofeed.NewParser().Parse(io.LimitReader(body, p.maxSize))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

// fetch retrieves content from a URL, any status other than 200 is an error
func (p *Parser) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	addBrowserHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// readAll reads the whole body, failing if it is larger than maxSize
func (p *Parser) readAll(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, p.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > p.maxSize {
		return nil, fmt.Errorf("feed is larger than %d bytes", p.maxSize)
	}
	return data, nil
}
