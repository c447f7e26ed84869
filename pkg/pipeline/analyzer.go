// Package pipeline turns a list of feed URLs into a ranked list of scored and annotated articles.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/umputun/feedrank/pkg/domain"
	"github.com/umputun/feedrank/pkg/feed"
)

// Scorer computes a relevance score in [0, 100] for an article
type Scorer interface {
	Score(article domain.Article, industry string, criteria domain.Criteria) float64
}

// Annotator writes a short analysis for an article, it never fails
type Annotator interface {
	Annotate(ctx context.Context, article domain.Article, industry string) string
}

// Extractor pulls readable text from an article page
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Config defines analyzer behavior
type Config struct {
	Dedup           bool // drop duplicated articles before scoring
	FetchWorkers    int  // concurrent feed fetches
	AnnotateWorkers int  // concurrent annotation calls
	ExtractWorkers  int  // concurrent page extractions
	MaxArticles     int  // used when request doesn't set a limit
}

// Analyzer fetches, scores, ranks and annotates articles
type Analyzer struct {
	fetcher   feed.Fetcher
	scorer    Scorer
	annotator Annotator
	extractor Extractor // optional, nil disables summary enrichment
	cfg       Config
}

// AnalyzeRequest describes a single analysis run
type AnalyzeRequest struct {
	FeedURLs    []string
	Industry    string
	Criteria    domain.Criteria
	MaxArticles int
}

// NewAnalyzer makes an analyzer. Extractor can be nil.
func NewAnalyzer(fetcher feed.Fetcher, scorer Scorer, annotator Annotator, extractor Extractor, cfg Config) *Analyzer {
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = 4
	}
	if cfg.AnnotateWorkers <= 0 {
		cfg.AnnotateWorkers = 4
	}
	if cfg.ExtractWorkers <= 0 {
		cfg.ExtractWorkers = 4
	}
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = 20
	}
	return &Analyzer{fetcher: fetcher, scorer: scorer, annotator: annotator, extractor: extractor, cfg: cfg}
}

// Analyze runs the whole pipeline. Failed feeds are skipped, failed annotations are reported in the
// article's analysis. The only error returned is context cancellation.
func (a *Analyzer) Analyze(ctx context.Context, req AnalyzeRequest) ([]domain.Article, error) {
	limit := req.MaxArticles
	if limit <= 0 {
		limit = a.cfg.MaxArticles
	}

	articles, err := feed.FetchAll(ctx, a.fetcher, req.FeedURLs, a.cfg.FetchWorkers)
	if err != nil {
		return nil, fmt.Errorf("fetch feeds: %w", err)
	}
	log.Printf("[DEBUG] fetched %d articles from %d feeds", len(articles), len(req.FeedURLs))

	if a.cfg.Dedup {
		before := len(articles)
		articles = Dedup(articles)
		log.Printf("[DEBUG] dedup kept %d of %d articles", len(articles), before)
	}

	if a.extractor != nil {
		if err := a.enrich(ctx, articles); err != nil {
			return nil, fmt.Errorf("extract content: %w", err)
		}
	}

	for i := range articles {
		articles[i].RelevanceScore = a.scorer.Score(articles[i], req.Industry, req.Criteria)
	}

	ranked := Rank(articles, limit)

	// annotation doesn't affect the order, so only articles that made the cut are annotated
	if err := a.annotate(ctx, ranked, req.Industry); err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	log.Printf("[INFO] analyzed %d feeds, returning %d of %d articles", len(req.FeedURLs), len(ranked), len(articles))
	return ranked, nil
}

// enrich fills empty summaries from the article pages, errors are logged and ignored
func (a *Analyzer) enrich(ctx context.Context, articles []domain.Article) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.ExtractWorkers)
	for i := range articles {
		if strings.TrimSpace(articles[i].Summary) != "" || articles[i].Link == "" {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			text, err := a.extractor.Extract(gctx, articles[i].Link)
			if err != nil {
				log.Printf("[WARN] failed to extract content from %s: %v", articles[i].Link, err)
				return nil
			}
			articles[i].Summary = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// annotate sets the analysis of each article, each goroutine writes only its own slot
func (a *Analyzer) annotate(ctx context.Context, articles []domain.Article, industry string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.AnnotateWorkers)
	for i := range articles {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			articles[i].Analysis = a.annotator.Annotate(gctx, articles[i], industry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
