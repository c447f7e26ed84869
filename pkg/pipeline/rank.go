package pipeline

import (
	"sort"

	"github.com/umputun/feedrank/pkg/domain"
)

// Rank orders articles by relevance score, highest first, keeping input order for equal scores,
// and truncates the result to limit articles. A limit of zero or less keeps all of them.
// The input slice is not modified.
func Rank(articles []domain.Article, limit int) []domain.Article {
	res := make([]domain.Article, len(articles))
	copy(res, articles)

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].RelevanceScore > res[j].RelevanceScore
	})

	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res
}
