package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/feedrank/pkg/domain"
)

func TestScorer_Recency(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	s := NewScorer(DefaultTables(nil), fixedClock(now))

	t.Run("step breakpoints", func(t *testing.T) {
		tbl := []struct {
			days int
			want float64
		}{
			{-10, 100}, {0, 100}, {1, 100}, {2, 90}, {7, 90}, {8, 70},
			{30, 70}, {31, 50}, {90, 50}, {91, 30}, {400, 30},
		}
		prev := 101.0
		for _, tt := range tbl {
			published := now.AddDate(0, 0, -tt.days).Format("2006-01-02")
			got := s.Recency(domain.Article{Published: published})
			assert.InDelta(t, tt.want, got, 0.0001, "days=%d published=%s", tt.days, published)
			assert.LessOrEqual(t, got, prev, "non-increasing with age")
			prev = got
		}
	})

	t.Run("formats", func(t *testing.T) {
		tbl := []struct {
			published string
			want      float64
		}{
			{"", 50},
			{"   ", 50},
			{"2024-03-30", 100},
			{"2024-03-30T10:00:00Z", 100},
			{"Published on 2024-03-20 by staff", 70},
			{"03/25/2024", 90},
			{"March 25, 2024", 90},
			{"Mar 1, 2024", 70},
			{"Posted Saturday March 2, 2024", 70},
			{"Sat, 30 Mar 2024 10:00:00 GMT", 50}, // not one of the recognized families
			{"no date here", 50},
			{"2024-13-45", 50},                // iso match that fails to parse, nothing else to try
			{"2024-13-45 or 03/30/2024", 100}, // falls through to the slash family
			{"Foo 12, 2024", 50},              // long-form match with an unknown month
		}
		for _, tt := range tbl {
			t.Run(tt.published, func(t *testing.T) {
				assert.InDelta(t, tt.want, s.Recency(domain.Article{Published: tt.published}), 0.0001)
			})
		}
	})
}

func TestParsePublished(t *testing.T) {
	d, ok := parsePublished("updated 12/01/2023 08:00", time.UTC)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), d)

	d, ok = parsePublished("December 1, 2023", time.UTC)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), d)

	_, ok = parsePublished("yesterday", time.UTC)
	assert.False(t, ok)
}

func TestDaysOld(t *testing.T) {
	now := time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 1, daysOld(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 2, daysOld(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, -1, daysOld(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), now))
}
