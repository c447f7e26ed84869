package domain

// FeedType tells how a feed was found
type FeedType string

// feed types
const (
	FeedPredefined FeedType = "predefined"
	FeedDiscovered FeedType = "discovered"
)

// DiscoveredFeed represents a feed suggested for an industry
type DiscoveredFeed struct {
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Type     FeedType `json:"type"`
	Industry string   `json:"industry"`
}
