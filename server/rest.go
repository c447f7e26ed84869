package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/umputun/feedrank/pkg/domain"
	"github.com/umputun/feedrank/pkg/industry"
	"github.com/umputun/feedrank/pkg/pipeline"
)

type discoverRequest struct {
	Industry       string `json:"industry"`
	CustomIndustry string `json:"custom_industry"`
	MaxFeeds       int    `json:"max_feeds"`
}

type analyzeRequest struct {
	FeedURLs          []string `json:"feed_urls"`
	MaxArticles       int      `json:"max_articles"`
	RelevanceCriteria []string `json:"relevance_criteria"`
	Industry          string   `json:"industry"`
}

type sendRequest struct {
	Articles        []domain.Article  `json:"articles"`
	IntegrationType string            `json:"integration_type"`
	Config          map[string]string `json:"config"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	variant, _ := s.config.GetPipelineConfig()
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"variant": variant,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// industriesHandler returns names of the known industries
func (s *Server) industriesHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.industries.Industries())
}

// criteriaHandler returns the scoring criteria a client can select
func (s *Server) criteriaHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, domain.AllCriteria())
}

// discoverHandler finds feeds for an industry, custom_industry takes precedence over industry
func (s *Server) discoverHandler(w http.ResponseWriter, r *http.Request) {
	var req discoverRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.CustomIndustry)
	if name == "" {
		name = strings.TrimSpace(req.Industry)
	}
	if name == "" {
		renderError(w, r, errors.New("industry is required"), http.StatusBadRequest)
		return
	}
	if req.MaxFeeds <= 0 {
		req.MaxFeeds = industry.DefaultMaxFeeds
	}

	feeds, err := s.industries.Discover(r.Context(), name, req.MaxFeeds)
	if err != nil {
		log.Printf("[ERROR] failed to discover feeds for %q: %v", name, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, feeds)
}

// analyzeHandler fetches the given feeds and returns scored, ranked and annotated articles
func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if req.MaxArticles <= 0 {
		_, req.MaxArticles = s.config.GetPipelineConfig()
	}

	articles, err := s.analyzer.Analyze(r.Context(), pipeline.AnalyzeRequest{
		FeedURLs:    req.FeedURLs,
		Industry:    req.Industry,
		Criteria:    domain.NewCriteria(req.RelevanceCriteria...),
		MaxArticles: req.MaxArticles,
	})
	if err != nil {
		log.Printf("[ERROR] failed to analyze feeds: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	renderJSON(w, r, http.StatusOK, articles)
}

// sendHandler forwards articles to an integration. Integration failures are reported in the result body with status 200.
func (s *Server) sendHandler(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	renderJSON(w, r, http.StatusOK, s.integrations.Send(r.Context(), req.Articles, req.IntegrationType, req.Config))
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
