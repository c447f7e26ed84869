package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/feedrank/pkg/config"
	"github.com/umputun/feedrank/pkg/domain"
)

// NoKeyMessage is the analysis returned when no API key is configured
const NoKeyMessage = "AI analysis not available (OpenAI API key required)"

// Annotator uses LLM to write a short analysis of an article
type Annotator struct {
	client *openai.Client
	config config.LLMConfig
}

// NewAnnotator creates a new LLM annotator. The client is created once and never changed.
func NewAnnotator(cfg config.LLMConfig) *Annotator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	return &Annotator{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

// Enabled reports whether an API key is configured
func (a *Annotator) Enabled() bool {
	return a.config.APIKey != ""
}

// Annotate returns a short analysis of the article's relevance to the industry.
// It never fails: a missing key gives a placeholder, a failed call gives an error string.
// Only one attempt is made.
func (a *Annotator) Annotate(ctx context.Context, article domain.Article, industry string) string {
	if !a.Enabled() {
		return NoKeyMessage
	}

	analysis, err := a.complete(ctx, buildPrompt(article, industry))
	if err != nil {
		return fmt.Sprintf("AI analysis error: %s", errorDetail(err))
	}
	return analysis
}

func (a *Annotator) complete(ctx context.Context, prompt string) (string, error) {
	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       a.config.Model,
		Temperature: temperature(a.config.Temperature),
		MaxTokens:   a.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// temperature converts the configured value for the request. The request field is omitted when zero,
// so an explicit zero is sent as the smallest positive float.
func temperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

// buildPrompt creates the analysis prompt for a single article
func buildPrompt(article domain.Article, industry string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analyze this article for relevance to the %s industry:\n\n", industry))
	sb.WriteString(fmt.Sprintf("Title: %s\n", article.Title))
	sb.WriteString(fmt.Sprintf("Summary: %s\n\n", article.Summary))
	sb.WriteString("Provide a brief analysis (2-3 sentences) covering:\n")
	sb.WriteString(fmt.Sprintf("1. Key relevance to %s\n", industry))
	sb.WriteString("2. Main insights or implications\n")
	sb.WriteString("3. Why this article matters")
	return sb.String()
}

// errorDetail makes a readable failure detail, with HTTP status for API errors
func errorDetail(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("HTTP %d - %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Sprintf("HTTP %d - %v", reqErr.HTTPStatusCode, reqErr.Err)
	}
	return err.Error()
}
