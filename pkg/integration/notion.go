package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/umputun/feedrank/pkg/domain"
)

type notionSender struct {
	client  *http.Client
	baseURL string
}

type notionText struct {
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
}

func richText(s string) []notionText {
	var t notionText
	t.Text.Content = s
	return []notionText{t}
}

// send creates a database page per article, stopping at the first failed one
func (s *notionSender) send(ctx context.Context, articles []domain.Article, cfg map[string]string) (string, error) {
	apiKey, dbID := cfg["api_key"], cfg["database_id"]
	if apiKey == "" || dbID == "" {
		return "", errors.New("Notion API key and database ID required") //nolint:staticcheck // api response
	}

	endpoint := strings.TrimSuffix(s.baseURL, "/") + "/pages"
	headers := map[string]string{"Authorization": "Bearer " + apiKey, "Notion-Version": notionVersion}

	for i, a := range articles {
		code, err := postJSON(ctx, s.client, endpoint, notionPage(dbID, a), headers)
		if err != nil {
			return "", fmt.Errorf("notion request for article %d: %w", i, err)
		}
		if !isSuccess(code) {
			return "", &statusError{service: "Notion", code: code}
		}
	}
	return fmt.Sprintf("%d articles sent to Notion", len(articles)), nil
}

func notionPage(dbID string, a domain.Article) map[string]any {
	var link *string // notion rejects empty urls, null clears the property
	if a.Link != "" {
		link = &a.Link
	}
	return map[string]any{
		"parent": map[string]string{"database_id": dbID},
		"properties": map[string]any{
			"Title":           map[string]any{"title": richText(a.Title)},
			"Summary":         map[string]any{"rich_text": richText(a.Summary)},
			"Link":            map[string]any{"url": link},
			"Source":          map[string]any{"rich_text": richText(a.Source)},
			"Relevance Score": map[string]any{"number": a.RelevanceScore},
		},
	}
}
