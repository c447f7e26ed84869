package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

const defaultTemperature = 0.7

// pipeline variants
const (
	VariantFull   = "full"
	VariantSimple = "simple"
)

// Config holds the application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Pipeline     PipelineConfig     `yaml:"pipeline" json:"pipeline" jsonschema:"description=Analysis pipeline configuration"`
	Fetch        FetchConfig        `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`
	LLM          LLMConfig          `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for article annotation"`
	Extraction   ExtractionConfig   `yaml:"extraction" json:"extraction" jsonschema:"description=Content extraction configuration"`
	Discovery    DiscoveryConfig    `yaml:"discovery" json:"discovery" jsonschema:"description=Feed discovery configuration"`
	SMTP         SMTPConfig         `yaml:"smtp" json:"smtp" jsonschema:"description=SMTP configuration for the email integration"`
	Integrations IntegrationsConfig `yaml:"integrations" json:"integrations" jsonschema:"description=Outbound integrations configuration"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=HTTP server timeout"`
}

// PipelineConfig holds analysis pipeline settings
type PipelineConfig struct {
	Variant     string `yaml:"variant" json:"variant" jsonschema:"default=full,enum=full,enum=simple,description=Pipeline variant"`
	MaxArticles int    `yaml:"max_articles" json:"max_articles" jsonschema:"default=20,minimum=1,description=Default number of articles returned"`
}

// FetchConfig holds feed fetching settings
type FetchConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Timeout for a single feed request"`
	MaxPerFeed    int           `yaml:"max_per_feed" json:"max_per_feed" jsonschema:"default=10,minimum=1,description=Maximum entries taken from each feed"`
	MaxConcurrent int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=4,minimum=1,description=Maximum feeds fetched concurrently"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Feedrank/1.0,description=User agent for feed requests"`
}

// LLMConfig holds LLM configuration for article annotation
type LLMConfig struct {
	Endpoint      string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint (OpenAI if empty)"`
	APIKey        string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (annotation is disabled if empty)"`
	Model         string        `yaml:"model" json:"model" jsonschema:"default=gpt-3.5-turbo,description=Model name"`
	Temperature   float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,minimum=0,maximum=2,description=Temperature for response generation"`
	MaxTokens     int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=150,description=Maximum tokens in response"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	MaxConcurrent int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=4,minimum=1,description=Maximum concurrent annotation requests"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Enabled    bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Fill empty summaries from the article page"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Extraction timeout per article"`
	MaxSummary int           `yaml:"max_summary" json:"max_summary" jsonschema:"default=500,description=Maximum length of an extracted summary"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; Feedrank/1.0),description=User agent for page requests"`
}

// DiscoveryConfig holds feed discovery settings
type DiscoveryConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Timeout for a single discovery request"`
	CacheTTL  time.Duration `yaml:"cache_ttl" json:"cache_ttl" jsonschema:"default=1h,description=How long feed titles are cached"`
	RateLimit float64       `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=2,description=Maximum crawl requests per second"`
}

// SMTPConfig holds mail server settings
type SMTPConfig struct {
	Server   string `yaml:"server" json:"server" jsonschema:"default=smtp.gmail.com,description=SMTP server host"`
	Port     int    `yaml:"port" json:"port" jsonschema:"default=587,description=SMTP server port"`
	Username string `yaml:"username" json:"username" jsonschema:"description=SMTP user (also used as sender address)"`
	Password string `yaml:"password" json:"password" jsonschema:"description=SMTP password"`
}

// IntegrationsConfig holds outbound integration settings
type IntegrationsConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Timeout for a single integration request"`
	AirtableRate float64       `yaml:"airtable_rate" json:"airtable_rate" jsonschema:"default=5,description=Maximum Airtable requests per second"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	// start from defaults, keys present in the file override them, including explicit zero values
	cfg := New()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(cfg)

	// validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		log.Printf("[WARN] schema validation failed: %v", err)
	}

	return cfg, nil
}

// New makes a configuration with all defaults set, used when no config file is given
func New() *Config {
	cfg := Config{LLM: LLMConfig{Temperature: defaultTemperature}}
	setDefaults(&cfg)
	return &cfg
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 60 * time.Second
	}

	// pipeline
	if cfg.Pipeline.Variant == "" {
		cfg.Pipeline.Variant = VariantFull
	}
	if cfg.Pipeline.MaxArticles == 0 {
		cfg.Pipeline.MaxArticles = 20
	}

	// fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 10 * time.Second
	}
	if cfg.Fetch.MaxPerFeed == 0 {
		cfg.Fetch.MaxPerFeed = 10
	}
	if cfg.Fetch.MaxConcurrent == 0 {
		cfg.Fetch.MaxConcurrent = 4
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "Feedrank/1.0"
	}

	// llm
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-3.5-turbo"
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 150
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}
	if cfg.LLM.MaxConcurrent == 0 {
		cfg.LLM.MaxConcurrent = 4
	}

	// extraction
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 15 * time.Second
	}
	if cfg.Extraction.MaxSummary == 0 {
		cfg.Extraction.MaxSummary = 500
	}
	if cfg.Extraction.UserAgent == "" {
		cfg.Extraction.UserAgent = "Mozilla/5.0 (compatible; Feedrank/1.0)"
	}

	// discovery
	if cfg.Discovery.Timeout == 0 {
		cfg.Discovery.Timeout = 10 * time.Second
	}
	if cfg.Discovery.CacheTTL == 0 {
		cfg.Discovery.CacheTTL = time.Hour
	}
	if cfg.Discovery.RateLimit == 0 {
		cfg.Discovery.RateLimit = 2
	}

	// smtp
	if cfg.SMTP.Server == "" {
		cfg.SMTP.Server = "smtp.gmail.com"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}

	// integrations
	if cfg.Integrations.Timeout == 0 {
		cfg.Integrations.Timeout = 30 * time.Second
	}
	if cfg.Integrations.AirtableRate == 0 {
		cfg.Integrations.AirtableRate = 5
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Pipeline.Variant != VariantFull && cfg.Pipeline.Variant != VariantSimple {
		return fmt.Errorf("pipeline.variant must be %q or %q, got %q", VariantFull, VariantSimple, cfg.Pipeline.Variant)
	}
	if cfg.Pipeline.MaxArticles < 1 {
		return fmt.Errorf("pipeline.max_articles must be at least 1")
	}

	if cfg.Fetch.MaxPerFeed < 1 {
		return fmt.Errorf("fetch.max_per_feed must be at least 1")
	}
	if cfg.Fetch.MaxConcurrent < 1 {
		return fmt.Errorf("fetch.max_concurrent must be at least 1")
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.MaxConcurrent < 1 {
		return fmt.Errorf("llm.max_concurrent must be at least 1")
	}

	if cfg.Extraction.Enabled && cfg.Extraction.Timeout < time.Second {
		return fmt.Errorf("extraction timeout must be at least 1 second")
	}

	if cfg.Discovery.RateLimit < 0 {
		return fmt.Errorf("discovery.rate_limit must be non-negative")
	}
	if cfg.Integrations.AirtableRate < 0 {
		return fmt.Errorf("integrations.airtable_rate must be non-negative")
	}

	if cfg.SMTP.Port < 1 || cfg.SMTP.Port > 65535 {
		return fmt.Errorf("smtp.port must be between 1 and 65535")
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// Validate checks a configuration built or modified outside of Load
func (c *Config) Validate() error {
	return validate(c)
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetPipelineConfig returns analysis pipeline configuration
func (c *Config) GetPipelineConfig() (variant string, maxArticles int) {
	return c.Pipeline.Variant, c.Pipeline.MaxArticles
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// Secrets returns configured secret values, used to mask them in logs
func (c *Config) Secrets() []string {
	var res []string
	for _, s := range []string{c.LLM.APIKey, c.SMTP.Password} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}
