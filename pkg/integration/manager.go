// Package integration sends analyzed articles to external services: email, Slack, Airtable and Notion.
package integration

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/umputun/feedrank/pkg/config"
	"github.com/umputun/feedrank/pkg/domain"
)

// integration types
const (
	TypeEmail    = "email"
	TypeSlack    = "slack"
	TypeAirtable = "airtable"
	TypeNotion   = "notion"
)

const (
	defaultAirtableURL = "https://api.airtable.com/v0"
	defaultNotionURL   = "https://api.notion.com/v1"
	notionVersion      = "2022-06-28"
	reportTitle        = "RSS Feed Analysis Results"
)

// errUnsupported is returned for unknown integration types
var errUnsupported = errors.New("Unsupported integration type") //nolint:staticcheck // message is part of the api response

// sender delivers articles to a single service and returns a human readable confirmation
type sender interface {
	send(ctx context.Context, articles []domain.Article, cfg map[string]string) (string, error)
}

// Params configures the manager
type Params struct {
	SMTP         config.SMTPConfig
	Timeout      time.Duration // per request timeout
	AirtableRate float64       // requests per second
	AirtableURL  string        // api base, official one if empty
	NotionURL    string        // api base, official one if empty
}

// Manager dispatches articles to the requested integration. Only one attempt is made for each request.
type Manager struct {
	senders map[string]sender
}

// NewManager makes a manager with all supported integrations
func NewManager(params Params) *Manager {
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	if params.AirtableRate <= 0 {
		params.AirtableRate = 5
	}
	if params.AirtableURL == "" {
		params.AirtableURL = defaultAirtableURL
	}
	if params.NotionURL == "" {
		params.NotionURL = defaultNotionURL
	}

	client := &http.Client{Timeout: params.Timeout}
	return &Manager{senders: map[string]sender{
		TypeEmail: &emailSender{smtp: params.SMTP, timeout: params.Timeout, deliver: smtpDeliver},
		TypeSlack: &slackSender{client: client},
		TypeAirtable: &airtableSender{
			client:  client,
			baseURL: params.AirtableURL,
			limiter: rate.NewLimiter(rate.Limit(params.AirtableRate), 1),
		},
		TypeNotion: &notionSender{client: client, baseURL: params.NotionURL},
	}}
}

// Types returns supported integration types
func (m *Manager) Types() []string {
	return []string{TypeEmail, TypeSlack, TypeAirtable, TypeNotion}
}

// Send delivers articles to the integration. Failures are reported in the result, never returned.
func (m *Manager) Send(ctx context.Context, articles []domain.Article, integrationType string, cfg map[string]string) domain.Result {
	s, ok := m.senders[integrationType]
	if !ok {
		return domain.Fail(errUnsupported)
	}
	if cfg == nil {
		cfg = map[string]string{}
	}

	msg, err := s.send(ctx, articles, cfg)
	if err != nil {
		log.Printf("[WARN] %s integration failed: %v", integrationType, err)
		return domain.Fail(err)
	}
	log.Printf("[INFO] %s integration: %s", integrationType, msg)
	return domain.OK(msg)
}

// statusError is a non-2xx response of an external api
type statusError struct {
	service string
	code    int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s API error: %d", e.service, e.code)
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
