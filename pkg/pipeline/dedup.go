package pipeline

import (
	"strings"

	"github.com/umputun/feedrank/pkg/domain"
)

// Dedup drops articles whose trimmed link or trimmed title was already emitted, keeping the first occurrence.
// Both keys are checked independently, a match on either one drops the article. Empty keys never match,
// except that an article with both link and title empty is a duplicate of an earlier such article.
func Dedup(articles []domain.Article) []domain.Article {
	seenLinks := make(map[string]struct{}, len(articles))
	seenTitles := make(map[string]struct{}, len(articles))
	blankSeen := false
	res := make([]domain.Article, 0, len(articles))

	for _, a := range articles {
		link := strings.TrimSpace(a.Link)
		title := strings.TrimSpace(a.Title)

		if link == "" && title == "" {
			if blankSeen {
				continue
			}
			blankSeen = true
			res = append(res, a)
			continue
		}

		if _, ok := seenLinks[link]; ok && link != "" {
			continue
		}
		if _, ok := seenTitles[title]; ok && title != "" {
			continue
		}

		if link != "" {
			seenLinks[link] = struct{}{}
		}
		if title != "" {
			seenTitles[title] = struct{}{}
		}
		res = append(res, a)
	}
	return res
}
