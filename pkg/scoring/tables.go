package scoring

import (
	"strings"

	"github.com/umputun/feedrank/pkg/domain"
)

// Trigger is a set of words which, if any is found in the article text, adds Points to the criteria sub-score
type Trigger struct {
	Words  []string
	Points float64
}

// Tables holds the static lookup data used by the scorer
type Tables struct {
	Keywords   map[string][]string // industry -> keywords, industry keys are matched case-insensitively
	Outlets    []string            // known authoritative outlets
	Indicators []string            // generic words hinting at a news outlet
	Triggers   map[domain.Criterion]Trigger
}

// DefaultOutlets are the sources treated as authoritative
var DefaultOutlets = []string{
	"reuters", "bloomberg", "wsj", "wall street journal", "new york times",
	"techcrunch", "wired", "arstechnica", "hacker news", "medium",
	"forbes", "cnn", "bbc", "npr", "pbs", "scientific american",
	"nature", "science", "harvard", "mit", "stanford",
}

// DefaultIndicators are generic words found in names of news outlets
var DefaultIndicators = []string{"news", "journal", "times", "post", "tribune", "herald"}

// DefaultTriggers maps scoring criteria to their trigger words
var DefaultTriggers = map[domain.Criterion]Trigger{
	domain.CriterionTrending:   {Words: []string{"trending", "viral", "popular", "breaking", "urgent"}, Points: 20},
	domain.CriterionInnovation: {Words: []string{"new", "breakthrough", "innovation", "disruptive", "revolutionary"}, Points: 20},
	domain.CriterionExpertise:  {Words: []string{"expert", "analysis", "research", "study", "report"}, Points: 20},
}

// DefaultTables makes tables with the default authority and criteria data and the given industry keywords
func DefaultTables(keywords map[string][]string) Tables {
	return Tables{
		Keywords:   keywords,
		Outlets:    DefaultOutlets,
		Indicators: DefaultIndicators,
		Triggers:   DefaultTriggers,
	}
}

// normalize lowercases keys and words and drops duplicate keywords, keeping the first occurrence
func (t Tables) normalize() Tables {
	res := Tables{
		Keywords:   make(map[string][]string, len(t.Keywords)),
		Outlets:    lowerAll(t.Outlets),
		Indicators: lowerAll(t.Indicators),
		Triggers:   make(map[domain.Criterion]Trigger, len(t.Triggers)),
	}
	for industry, words := range t.Keywords {
		res.Keywords[strings.ToLower(strings.TrimSpace(industry))] = lowerAll(words)
	}
	for id, tr := range t.Triggers {
		res.Triggers[id] = Trigger{Words: lowerAll(tr.Words), Points: tr.Points}
	}
	return res
}

func lowerAll(words []string) []string {
	seen := make(map[string]bool, len(words))
	res := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		res = append(res, w)
	}
	return res
}
