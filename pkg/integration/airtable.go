package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/umputun/feedrank/pkg/domain"
)

const (
	airtableBatch        = 10
	defaultAirtableTable = "RSS Articles"
)

type airtableSender struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

type airtableFields struct {
	Title          string  `json:"Title"`
	Summary        string  `json:"Summary"`
	Link           string  `json:"Link"`
	Source         string  `json:"Source"`
	Published      string  `json:"Published"`
	RelevanceScore float64 `json:"Relevance Score"`
	Analysis       string  `json:"Analysis"`
}

type airtableRecord struct {
	Fields airtableFields `json:"fields"`
}

// send creates one record per article, in batches of ten records per request
func (s *airtableSender) send(ctx context.Context, articles []domain.Article, cfg map[string]string) (string, error) {
	apiKey, baseID := cfg["api_key"], cfg["base_id"]
	if apiKey == "" || baseID == "" {
		return "", errors.New("Airtable API key and base ID required") //nolint:staticcheck // api response
	}
	table := cfg["table_name"]
	if table == "" {
		table = defaultAirtableTable
	}

	endpoint := strings.TrimSuffix(s.baseURL, "/") + "/" + url.PathEscape(baseID) + "/" + url.PathEscape(table)
	headers := map[string]string{"Authorization": "Bearer " + apiKey}

	for start := 0; start < len(articles); start += airtableBatch {
		end := min(start+airtableBatch, len(articles))
		records := make([]airtableRecord, 0, end-start)
		for _, a := range articles[start:end] {
			records = append(records, airtableRecord{Fields: airtableFields{
				Title: a.Title, Summary: a.Summary, Link: a.Link, Source: a.Source,
				Published: a.Published, RelevanceScore: a.RelevanceScore, Analysis: a.Analysis,
			}})
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("airtable rate limiter: %w", err)
		}
		code, err := postJSON(ctx, s.client, endpoint, map[string]any{"records": records}, headers)
		if err != nil {
			return "", fmt.Errorf("airtable request: %w", err)
		}
		if !isSuccess(code) {
			return "", &statusError{service: "Airtable", code: code}
		}
	}
	return fmt.Sprintf("%d articles sent to Airtable", len(articles)), nil
}
