package industry

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// feedPatterns are url fragments typical for feed links
var feedPatterns = []string{"/feed/", "/rss/", "/rss.xml", "/feed.xml", "/atom.xml", "/feeds/", ".rss", ".xml"}

// Crawler looks for feed links on web pages. Requests are paced by a rate limiter shared by all calls.
type Crawler struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// NewCrawler makes a crawler. rps is the maximum requests per second, 0 disables pacing.
func NewCrawler(timeout time.Duration, rps float64, userAgent string) *Crawler {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Crawler{
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(limit, 1),
		userAgent: userAgent,
	}
}

// Crawl collects feed candidates from all sites. Sites which can't be loaded are logged and skipped.
func (c *Crawler) Crawl(ctx context.Context, sites []string) []string {
	var res []string
	seen := map[string]bool{}
	for _, site := range sites {
		if ctx.Err() != nil {
			break
		}
		links, err := c.FindFeeds(ctx, site)
		if err != nil {
			log.Printf("[WARN] can't crawl %s: %v", site, err)
			continue
		}
		for _, l := range links {
			if !seen[l] {
				seen[l] = true
				res = append(res, l)
			}
		}
	}
	return res
}

// FindFeeds returns absolute urls of feeds advertised or linked on the page.
// Advertised feeds (link rel alternate) come first, then anchors matching feed url patterns.
func (c *Crawler) FindFeeds(ctx context.Context, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	if err = c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var res []string
	seen := map[string]bool{}
	add := func(href string) {
		abs, ok := resolve(base, href)
		if ok && !seen[abs] {
			seen[abs] = true
			res = append(res, abs)
		}
	}

	doc.Find(`link[type="application/rss+xml"], link[type="application/atom+xml"]`).Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			add(href)
		}
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if looksLikeFeed(href) {
			add(href)
		}
	})

	return res, nil
}

func looksLikeFeed(href string) bool {
	h := strings.ToLower(href)
	for _, p := range feedPatterns {
		if strings.Contains(h, p) {
			return true
		}
	}
	return false
}

// resolve makes href absolute against base, only http(s) results are accepted
func resolve(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	u.Fragment = ""
	return u.String(), true
}
