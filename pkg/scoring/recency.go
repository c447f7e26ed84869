package scoring

import (
	"math"
	"regexp"
	"time"
)

// dateFamily is a date pattern with the layouts able to parse what it captures
type dateFamily struct {
	name    string
	re      *regexp.Regexp
	layouts []string
}

// date families in priority order, the first one able to parse its match wins
var dateFamilies = []dateFamily{
	{name: "iso", re: regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`), layouts: []string{"2006-01-02"}},
	{name: "slash", re: regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`), layouts: []string{"01/02/2006"}},
	{name: "long", re: regexp.MustCompile(`(\w+ \d{1,2}, \d{4})`), layouts: []string{"January 2, 2006", "Jan 2, 2006"}},
}

// recencyStep maps an age limit in days to a score
type recencyStep struct {
	maxDays int
	score   float64
}

var recencySteps = []recencyStep{
	{maxDays: 1, score: 100},
	{maxDays: 7, score: 90},
	{maxDays: 30, score: 70},
	{maxDays: 90, score: 50},
}

const staleScore = 30.0

// parsePublished extracts a calendar date from a free-text published string.
// Returns false if none of the date families produced a valid date.
func parsePublished(published string, loc *time.Location) (time.Time, bool) {
	for _, f := range dateFamilies {
		m := f.re.FindStringSubmatch(published)
		if m == nil {
			continue
		}
		for _, layout := range f.layouts {
			if t, err := time.ParseInLocation(layout, m[1], loc); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// daysOld returns whole days elapsed from date to now, rounded down. Future dates give negative values.
func daysOld(date, now time.Time) int {
	return int(math.Floor(now.Sub(date).Hours() / 24))
}

// recencyForDays maps an age in days to the recency sub-score
func recencyForDays(days int) float64 {
	for _, st := range recencySteps {
		if days <= st.maxDays {
			return st.score
		}
	}
	return staleScore
}
