package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedrank/pkg/config"
	"github.com/umputun/feedrank/pkg/domain"
)

func testConfig(endpoint string) config.LLMConfig {
	return config.LLMConfig{
		Endpoint:    endpoint,
		APIKey:      "test-key",
		Model:       "gpt-3.5-turbo",
		Temperature: 0.7,
		MaxTokens:   150,
		Timeout:     5 * time.Second,
	}
}

func TestAnnotator_Annotate(t *testing.T) {
	var received openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "  Cloud pricing changes matter for SaaS margins.\n"}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	annotator := NewAnnotator(testConfig(server.URL + "/v1"))
	require.True(t, annotator.Enabled())

	article := domain.Article{Title: "Cloud prices rise", Summary: "Major providers raise prices"}
	res := annotator.Annotate(context.Background(), article, "technology")
	assert.Equal(t, "Cloud pricing changes matter for SaaS margins.", res)

	assert.Equal(t, "gpt-3.5-turbo", received.Model)
	assert.Equal(t, 150, received.MaxTokens)
	assert.InDelta(t, 0.7, received.Temperature, 0.0001)
	require.Len(t, received.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, received.Messages[0].Role)
	assert.Contains(t, received.Messages[0].Content, "relevance to the technology industry")
	assert.Contains(t, received.Messages[0].Content, "Title: Cloud prices rise")
	assert.Contains(t, received.Messages[0].Content, "Summary: Major providers raise prices")
}

func TestAnnotator_ZeroTemperature(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "ok"}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	cfg := testConfig(server.URL + "/v1")
	cfg.Temperature = 0
	res := NewAnnotator(cfg).Annotate(context.Background(), domain.Article{Title: "x"}, "finance")
	assert.Equal(t, "ok", res)

	temp, ok := raw["temperature"]
	require.True(t, ok, "temperature must be sent even when configured as zero")
	assert.InDelta(t, 0, temp, 0.0001)
}

func TestAnnotator_NoKey(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	cfg := testConfig(server.URL + "/v1")
	cfg.APIKey = ""
	annotator := NewAnnotator(cfg)
	assert.False(t, annotator.Enabled())

	res := annotator.Annotate(context.Background(), domain.Article{Title: "x"}, "finance")
	assert.Equal(t, NoKeyMessage, res)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "endpoint must not be called without a key")
}

func TestAnnotator_Errors(t *testing.T) {
	t.Run("api error status", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
		}))
		defer server.Close()

		res := NewAnnotator(testConfig(server.URL+"/v1")).Annotate(context.Background(), domain.Article{Title: "x"}, "ai")
		assert.Equal(t, "AI analysis error: HTTP 401 - Incorrect API key provided", res)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "single attempt")
	})

	t.Run("non-json error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("bad gateway"))
		}))
		defer server.Close()

		res := NewAnnotator(testConfig(server.URL+"/v1")).Annotate(context.Background(), domain.Article{Title: "x"}, "ai")
		assert.Contains(t, res, "AI analysis error: ")
		assert.Contains(t, res, "502")
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices": []}`))
		}))
		defer server.Close()

		res := NewAnnotator(testConfig(server.URL+"/v1")).Annotate(context.Background(), domain.Article{Title: "x"}, "ai")
		assert.Equal(t, "AI analysis error: no response from llm", res)
	})

	t.Run("network error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		res := NewAnnotator(testConfig(url+"/v1")).Annotate(context.Background(), domain.Article{Title: "x"}, "ai")
		assert.Contains(t, res, "AI analysis error: llm request failed")
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		cfg := testConfig(server.URL + "/v1")
		cfg.Timeout = 20 * time.Millisecond
		res := NewAnnotator(cfg).Annotate(context.Background(), domain.Article{Title: "x"}, "ai")
		assert.Contains(t, res, "AI analysis error: ")
		assert.Contains(t, res, "context deadline exceeded")
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(domain.Article{Title: "T1", Summary: "S1"}, "healthcare")
	assert.Contains(t, prompt, "Analyze this article for relevance to the healthcare industry:")
	assert.Contains(t, prompt, "Title: T1\nSummary: S1\n")
	assert.Contains(t, prompt, "1. Key relevance to healthcare")
	assert.Contains(t, prompt, "3. Why this article matters")
}
