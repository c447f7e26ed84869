// Package content extracts readable article text from web pages.
package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/markusmobius/go-trafilatura"
)

// HTTPExtractor extracts article content from URLs using trafilatura
type HTTPExtractor struct {
	client    *http.Client
	userAgent string
	maxLength int
}

// Params configures HTTPExtractor
type Params struct {
	Timeout   time.Duration
	UserAgent string
	MaxLength int // maximum length of returned text in characters, 0 means unlimited
}

// NewHTTPExtractor creates a new content extractor
func NewHTTPExtractor(params Params) *HTTPExtractor {
	return &HTTPExtractor{
		client:    &http.Client{Timeout: params.Timeout},
		userAgent: params.UserAgent,
		maxLength: params.MaxLength,
	}
}

// Extract retrieves the page and returns its main text, cut to the configured length
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}
	addBrowserHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}

	result, err := trafilatura.Extract(resp.Body, opts)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", urlStr, err)
	}
	if result == nil {
		return "", fmt.Errorf("no content extracted from %s", urlStr)
	}

	text := strings.Join(strings.Fields(result.ContentText), " ")
	if text == "" {
		return "", fmt.Errorf("no text content extracted from %s", urlStr)
	}
	return truncate(text, e.maxLength), nil
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}
