// Package server implements the HTTP API: industries and criteria lookup, feed discovery,
// feed analysis and forwarding results to integrations.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/rs/cors"

	"github.com/umputun/feedrank/pkg/domain"
	"github.com/umputun/feedrank/pkg/pipeline"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/analyzer.go -pkg mocks -skip-ensure -fmt goimports . Analyzer
//go:generate moq -out mocks/industries.go -pkg mocks -skip-ensure -fmt goimports . Industries
//go:generate moq -out mocks/integrations.go -pkg mocks -skip-ensure -fmt goimports . Integrations

// Server represents HTTP server instance
type Server struct {
	config       ConfigProvider
	analyzer     Analyzer
	industries   Industries
	integrations Integrations
	version      string
	debug        bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetPipelineConfig() (variant string, maxArticles int)
}

// Analyzer runs the fetch, score, rank and annotate pipeline
type Analyzer interface {
	Analyze(ctx context.Context, req pipeline.AnalyzeRequest) ([]domain.Article, error)
}

// Industries provides industry list and feed discovery
type Industries interface {
	Industries() []string
	Discover(ctx context.Context, industry string, maxFeeds int) ([]domain.DiscoveredFeed, error)
}

// Integrations sends articles to external services
type Integrations interface {
	Send(ctx context.Context, articles []domain.Article, integrationType string, cfg map[string]string) domain.Result
}

// Deps holds the services used by handlers
type Deps struct {
	Analyzer     Analyzer
	Industries   Industries
	Integrations Integrations
}

// New initializes a new server instance
func New(cfg ConfigProvider, deps Deps, version string, debug bool) *Server {
	s := &Server{
		config:       cfg,
		analyzer:     deps.Analyzer,
		industries:   deps.Industries,
		integrations: deps.Integrations,
		version:      version,
		debug:        debug,
		router:       routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		// no WriteTimeout, analysis time is bounded by per-call fetch and llm timeouts
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("feedrank", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /industries", s.industriesHandler)
		r.HandleFunc("GET /criteria", s.criteriaHandler)
		r.HandleFunc("POST /feeds/discover", s.discoverHandler)
		r.HandleFunc("POST /feeds/analyze", s.analyzeHandler)
		r.HandleFunc("POST /integrations/send", s.sendHandler)
	})
}
