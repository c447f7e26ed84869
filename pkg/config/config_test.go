package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configPath := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
pipeline:
  variant: simple
  max_articles: 5
fetch:
  timeout: 3s
  max_per_feed: 7
llm:
  endpoint: http://localhost:11434/v1
  api_key: key-123
  model: llama3
  temperature: 0.2
  max_concurrent: 2
smtp:
  server: mail.example.com
  port: 2525
  username: bot@example.com
`)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, VariantSimple, cfg.Pipeline.Variant)
		assert.Equal(t, 5, cfg.Pipeline.MaxArticles)
		assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, 7, cfg.Fetch.MaxPerFeed)
		assert.Equal(t, "http://localhost:11434/v1", cfg.LLM.Endpoint)
		assert.Equal(t, "key-123", cfg.LLM.APIKey)
		assert.Equal(t, "llama3", cfg.LLM.Model)
		assert.InDelta(t, 0.2, cfg.LLM.Temperature, 0.0001)
		assert.Equal(t, 2, cfg.LLM.MaxConcurrent)
		assert.Equal(t, "mail.example.com", cfg.SMTP.Server)
		assert.Equal(t, 2525, cfg.SMTP.Port)
		assert.Equal(t, "bot@example.com", cfg.SMTP.Username)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8081\"\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8081", cfg.Server.Listen)
		assert.Equal(t, 60*time.Second, cfg.Server.Timeout)
		assert.Equal(t, VariantFull, cfg.Pipeline.Variant)
		assert.Equal(t, 20, cfg.Pipeline.MaxArticles)
		assert.Equal(t, 10, cfg.Fetch.MaxPerFeed)
		assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
		assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.0001)
		assert.Equal(t, 150, cfg.LLM.MaxTokens)
		assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
		assert.Empty(t, cfg.LLM.APIKey)
		assert.False(t, cfg.Extraction.Enabled)
		assert.Equal(t, 500, cfg.Extraction.MaxSummary)
		assert.Equal(t, time.Hour, cfg.Discovery.CacheTTL)
		assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Server)
		assert.Equal(t, 587, cfg.SMTP.Port)
		assert.InDelta(t, 5.0, cfg.Integrations.AirtableRate, 0.0001)
	})

	t.Run("environment expansion", func(t *testing.T) {
		t.Setenv("TEST_FEEDRANK_KEY", "secret-from-env")
		cfg, err := Load(writeConfig(t, "llm:\n  api_key: ${TEST_FEEDRANK_KEY}\n"))
		require.NoError(t, err)
		assert.Equal(t, "secret-from-env", cfg.LLM.APIKey)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "invalid yaml content\n  with bad indentation\n    and no structure\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid variant", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "pipeline:\n  variant: fancy\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "pipeline.variant")
	})

	t.Run("explicit zero temperature", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "llm:\n  model: gpt-4o-mini\n  temperature: 0\n"))
		require.NoError(t, err)
		assert.InDelta(t, 0, cfg.LLM.Temperature, 0.0001)
		assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
		assert.Equal(t, 150, cfg.LLM.MaxTokens, "absent keys keep defaults")
	})

	t.Run("invalid temperature", func(t *testing.T) {
		_, err := Load(writeConfig(t, "llm:\n  temperature: 3.5\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm.temperature")
	})
}

func TestNew(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, VariantFull, cfg.Pipeline.Variant)
	assert.Equal(t, 4, cfg.Fetch.MaxConcurrent)
}

func TestValidate(t *testing.T) {
	tbl := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"ok", func(c *Config) {}, ""},
		{"max articles", func(c *Config) { c.Pipeline.MaxArticles = 0 }, "pipeline.max_articles"},
		{"max per feed", func(c *Config) { c.Fetch.MaxPerFeed = -1 }, "fetch.max_per_feed"},
		{"fetch workers", func(c *Config) { c.Fetch.MaxConcurrent = 0 }, "fetch.max_concurrent"},
		{"llm workers", func(c *Config) { c.LLM.MaxConcurrent = 0 }, "llm.max_concurrent"},
		{"extraction timeout", func(c *Config) { c.Extraction.Enabled = true; c.Extraction.Timeout = time.Millisecond }, "extraction timeout"},
		{"extraction disabled ignores timeout", func(c *Config) { c.Extraction.Timeout = time.Millisecond }, ""},
		{"smtp port", func(c *Config) { c.SMTP.Port = 70000 }, "smtp.port"},
		{"server timeout", func(c *Config) { c.Server.Timeout = time.Millisecond }, "server timeout"},
		{"negative rate", func(c *Config) { c.Discovery.RateLimit = -1 }, "discovery.rate_limit"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_Getters(t *testing.T) {
	cfg := New()
	cfg.Server.Listen = ":9999"
	cfg.LLM.APIKey = "key"
	cfg.SMTP.Password = "pass"

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9999", listen)
	assert.Equal(t, 60*time.Second, timeout)
	assert.Equal(t, "key", cfg.GetLLMConfig().APIKey)
	variant, maxArticles := cfg.GetPipelineConfig()
	assert.Equal(t, VariantFull, variant)
	assert.Equal(t, 20, maxArticles)
	assert.Equal(t, []string{"key", "pass"}, cfg.Secrets())

	assert.Empty(t, New().Secrets())
}
