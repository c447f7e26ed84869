// Package scoring computes relevance scores for feed articles. The score is a weighted
// composite of four sub-scores (content, recency, authority and criteria), each in [0, 100].
package scoring

import (
	"strings"
	"time"

	"github.com/umputun/feedrank/pkg/domain"
)

const (
	weightContent   = 0.4
	weightRecency   = 0.2
	weightAuthority = 0.2
	weightCriteria  = 0.2

	neutralScore   = 50.0
	maxScore       = 100.0
	keywordPoints  = 20.0
	authorityKnown = 90.0
	authorityHint  = 70.0
)

// Breakdown shows how each sub-score contributed to the final score
type Breakdown struct {
	Content   float64
	Recency   float64
	Authority float64
	Criteria  float64
	Final     float64
}

// Scorer calculates article relevance. It is safe for concurrent use, tables are never modified after creation.
type Scorer struct {
	tables Tables
	now    func() time.Time
}

// NewScorer creates a scorer with the given tables. The now func is the clock used for
// recency, time.Now is used if nil.
func NewScorer(tables Tables, now func() time.Time) *Scorer {
	if now == nil {
		now = time.Now
	}
	return &Scorer{tables: tables.normalize(), now: now}
}

// Score returns the composite relevance score of the article in [0, 100]
func (s *Scorer) Score(article domain.Article, industry string, criteria domain.Criteria) float64 {
	return s.ScoreWithBreakdown(article, industry, criteria).Final
}

// ScoreWithBreakdown computes the composite score along with all sub-scores
func (s *Scorer) ScoreWithBreakdown(article domain.Article, industry string, criteria domain.Criteria) Breakdown {
	b := Breakdown{
		Content:   s.Content(article, industry),
		Recency:   s.Recency(article),
		Authority: s.Authority(article),
		Criteria:  s.Criteria(article, criteria),
	}
	b.Final = clamp(b.Content*weightContent + b.Recency*weightRecency +
		b.Authority*weightAuthority + b.Criteria*weightCriteria)
	return b
}

// Content scores topical relevance as 20 points per distinct industry keyword found in title and summary.
// Matching is plain substring containment, a keyword may match inside a longer word.
func (s *Scorer) Content(article domain.Article, industry string) float64 {
	if industry == "" {
		return neutralScore
	}

	keywords, ok := s.tables.Keywords[strings.ToLower(industry)]
	if !ok {
		keywords = []string{strings.ToLower(industry)}
	}

	text := articleText(article)
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matches++
		}
	}
	return min(float64(matches)*keywordPoints, maxScore)
}

// Recency scores the age of the article from its published string, 50 if the date is missing or unparsable
func (s *Scorer) Recency(article domain.Article) float64 {
	if strings.TrimSpace(article.Published) == "" {
		return neutralScore
	}
	now := s.now()
	date, ok := parsePublished(article.Published, now.Location())
	if !ok {
		return neutralScore
	}
	return recencyForDays(daysOld(date, now))
}

// Authority scores the source name, known outlets first, then generic news indicators
func (s *Scorer) Authority(article domain.Article) float64 {
	source := strings.ToLower(article.Source)
	if containsAny(source, s.tables.Outlets) {
		return authorityKnown
	}
	if containsAny(source, s.tables.Indicators) {
		return authorityHint
	}
	return neutralScore
}

// Criteria scores the user-selected criteria. Each selected criterion with a trigger list adds
// its points if any trigger word is present. Criteria without triggers contribute nothing.
func (s *Scorer) Criteria(article domain.Article, criteria domain.Criteria) float64 {
	if criteria.Len() == 0 {
		return neutralScore
	}

	text := articleText(article)
	score := 0.0
	for id, tr := range s.tables.Triggers {
		if !criteria.Has(id) {
			continue
		}
		if containsAny(text, tr.Words) {
			score += tr.Points
		}
	}
	return min(score, maxScore)
}

// articleText returns lowercased title and summary joined with a space
func articleText(article domain.Article) string {
	return strings.ToLower(article.Title + " " + article.Summary)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > maxScore:
		return maxScore
	default:
		return v
	}
}
