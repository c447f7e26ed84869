package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/umputun/feedrank/pkg/domain"
)

const slackSummaryLen = 200

type slackSender struct {
	client *http.Client
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackBlock struct {
	Type string    `json:"type"`
	Text slackText `json:"text"`
}

type slackMessage struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

// send posts a message with a header block and a section per article to the incoming webhook
func (s *slackSender) send(ctx context.Context, articles []domain.Article, cfg map[string]string) (string, error) {
	webhook := cfg["webhook_url"]
	if webhook == "" {
		return "", errors.New("Slack webhook URL required") //nolint:staticcheck // api response
	}

	code, err := postJSON(ctx, s.client, webhook, slackPayload(articles), nil)
	if err != nil {
		return "", fmt.Errorf("slack request: %w", err)
	}
	if !isSuccess(code) {
		return "", &statusError{service: "Slack", code: code}
	}
	return "Message sent to Slack", nil
}

func slackPayload(articles []domain.Article) slackMessage {
	blocks := make([]slackBlock, 0, len(articles)+1)
	blocks = append(blocks, slackBlock{
		Type: "header",
		Text: slackText{Type: "plain_text", Text: fmt.Sprintf("%s (%d articles)", reportTitle, len(articles))},
	})
	for _, a := range articles {
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: slackText{
				Type: "mrkdwn",
				Text: fmt.Sprintf("*%s*\n%s...\nSource: %s | Relevance: %.1f%%",
					a.Title, cutRunes(a.Summary, slackSummaryLen), a.Source, a.RelevanceScore),
			},
		})
	}
	return slackMessage{Text: fmt.Sprintf("%s - %d articles", reportTitle, len(articles)), Blocks: blocks}
}

func cutRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
