package industry

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"

	"github.com/umputun/feedrank/pkg/domain"
)

const (
	// DefaultMaxFeeds is the discovery result size used when none is given
	DefaultMaxFeeds = 10
	unknownTitle    = "Unknown Feed"
)

// FeedParser downloads and parses a feed
type FeedParser interface {
	Parse(ctx context.Context, url string) (*gofeed.Feed, error)
}

// SiteCrawler finds feed candidates on web sites
type SiteCrawler interface {
	Crawl(ctx context.Context, sites []string) []string
}

// Manager provides industry profiles and feed discovery
type Manager struct {
	profiles []Profile
	index    map[string]int
	parser   FeedParser
	crawler  SiteCrawler
	titles   *cache.Cache
}

// NewManager makes a manager for the given profiles. Feed titles are cached for titleTTL.
func NewManager(profiles []Profile, parser FeedParser, crawler SiteCrawler, titleTTL time.Duration) *Manager {
	if titleTTL <= 0 {
		titleTTL = time.Hour
	}
	res := &Manager{
		profiles: profiles,
		index:    make(map[string]int, len(profiles)),
		parser:   parser,
		crawler:  crawler,
		titles:   cache.New(titleTTL, 2*titleTTL),
	}
	for i, p := range profiles {
		res.index[strings.ToLower(p.Name)] = i
	}
	return res
}

// Industries returns names of all known industries in profile order
func (m *Manager) Industries() []string {
	res := make([]string, 0, len(m.profiles))
	for _, p := range m.profiles {
		res = append(res, p.Name)
	}
	return res
}

// Keywords returns industry keywords for scoring
func (m *Manager) Keywords() map[string][]string {
	res := make(map[string][]string, len(m.profiles))
	for _, p := range m.profiles {
		res[p.Name] = append([]string(nil), p.Keywords...)
	}
	return res
}

// Feeds returns seed feeds of the industry, nil for unknown industry
func (m *Manager) Feeds(industry string) []string {
	p, ok := m.profile(industry)
	if !ok {
		return nil
	}
	return append([]string(nil), p.Feeds...)
}

// Discover returns up to maxFeeds feeds for the industry. Seed feeds come first, the rest is filled
// with feeds found by crawling the industry sites. For an unknown (custom) industry all known sites are crawled
// and only feeds mentioning the industry in the title or description are accepted.
func (m *Manager) Discover(ctx context.Context, industry string, maxFeeds int) ([]domain.DiscoveredFeed, error) {
	if maxFeeds <= 0 {
		maxFeeds = DefaultMaxFeeds
	}

	res := []domain.DiscoveredFeed{}
	seen := map[string]bool{}
	p, known := m.profile(industry)

	if known {
		for _, u := range p.Feeds {
			if len(res) >= maxFeeds {
				break
			}
			seen[u] = true
			res = append(res, domain.DiscoveredFeed{URL: u, Title: m.title(ctx, u), Type: domain.FeedPredefined, Industry: industry})
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(res) >= maxFeeds || m.crawler == nil {
		return res, nil
	}

	sites := p.Sites
	if !known {
		sites = m.allSites()
	}

	for _, u := range m.crawler.Crawl(ctx, sites) {
		if len(res) >= maxFeeds || ctx.Err() != nil {
			break
		}
		if seen[u] {
			continue
		}
		seen[u] = true

		title, err := m.validate(ctx, u, industry, known)
		if err != nil {
			log.Printf("[DEBUG] rejected feed candidate %s: %v", u, err)
			continue
		}
		res = append(res, domain.DiscoveredFeed{URL: u, Title: title, Type: domain.FeedDiscovered, Industry: industry})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Printf("[INFO] discovered %d feeds for %q", len(res), industry)
	return res, nil
}

// validate parses the candidate and returns its title
func (m *Manager) validate(ctx context.Context, u, industry string, known bool) (string, error) {
	feed, err := m.parser.Parse(ctx, u)
	if err != nil {
		return "", err
	}
	if len(feed.Items) == 0 {
		return "", fmt.Errorf("no entries")
	}
	if !known {
		term := strings.ToLower(strings.TrimSpace(industry))
		text := strings.ToLower(feed.Title + " " + feed.Description)
		if term != "" && !strings.Contains(text, term) {
			return "", fmt.Errorf("not about %q", industry)
		}
	}

	title := strings.TrimSpace(feed.Title)
	if title == "" {
		title = unknownTitle
	}
	m.titles.SetDefault(u, title)
	return title, nil
}

// title returns the feed title, looked up once and cached. Failed lookups are not cached.
func (m *Manager) title(ctx context.Context, u string) string {
	if v, ok := m.titles.Get(u); ok {
		return v.(string)
	}
	if m.parser == nil {
		return unknownTitle
	}
	feed, err := m.parser.Parse(ctx, u)
	if err != nil {
		log.Printf("[DEBUG] can't get title of %s: %v", u, err)
		return unknownTitle
	}
	title := strings.TrimSpace(feed.Title)
	if title == "" {
		title = unknownTitle
	}
	m.titles.SetDefault(u, title)
	return title
}

func (m *Manager) profile(industry string) (Profile, bool) {
	i, ok := m.index[strings.ToLower(strings.TrimSpace(industry))]
	if !ok {
		return Profile{}, false
	}
	return m.profiles[i], true
}

func (m *Manager) allSites() []string {
	var res []string
	for _, p := range m.profiles {
		res = append(res, p.Sites...)
	}
	return uniq(res)
}
