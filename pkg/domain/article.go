package domain

// Article is a single feed entry with the fields added by scoring and annotation
type Article struct {
	Title          string  `json:"title"`
	Summary        string  `json:"summary"`
	Link           string  `json:"link"`
	Published      string  `json:"published"` // raw date string as found in the feed, not normalized
	Source         string  `json:"source"`
	FeedURL        string  `json:"feed_url"`
	RelevanceScore float64 `json:"relevance_score"`
	Analysis       string  `json:"analysis"`
}
