package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/feedrank/pkg/config"
	"github.com/umputun/feedrank/pkg/content"
	"github.com/umputun/feedrank/pkg/feed"
	"github.com/umputun/feedrank/pkg/industry"
	"github.com/umputun/feedrank/pkg/integration"
	"github.com/umputun/feedrank/pkg/llm"
	"github.com/umputun/feedrank/pkg/pipeline"
	"github.com/umputun/feedrank/pkg/scoring"
	"github.com/umputun/feedrank/server"
)

// Opts with all CLI options
type Opts struct {
	Config    string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if not set"`
	Listen    string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Port      int    `long:"port" env:"PORT" description:"listen port, overrides config"`
	Variant   string `long:"variant" env:"VARIANT" choice:"full" choice:"simple" description:"pipeline variant, overrides config"`
	OpenAIKey string `long:"openai-key" env:"OPENAI_API_KEY" description:"OpenAI API key, overrides config"`

	SMTP struct {
		Server   string `long:"server" env:"SERVER" description:"SMTP server host"`
		Port     int    `long:"port" env:"PORT" description:"SMTP server port"`
		Username string `long:"username" env:"USERNAME" description:"SMTP user"`
		Password string `long:"password" env:"PASSWORD" description:"SMTP password"`
	} `group:"smtp" namespace:"smtp" env-namespace:"SMTP"`

	// common options
	Verbose bool `short:"v" long:"verbose" description:"verbose mode"`
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug, opts.Verbose)
	log.Printf("[INFO] starting feedrank version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run loads configuration, builds all services and runs the server until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg := config.New()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	applyOverrides(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if secrets := cfg.Secrets(); len(secrets) > 0 {
		setupLog(opts.Debug, opts.Verbose, secrets...)
	}

	srv, err := makeServer(cfg, opts.Debug)
	if err != nil {
		return fmt.Errorf("failed to make server: %w", err)
	}
	return srv.Run(ctx)
}

// applyOverrides sets values given on the command line or in the environment over the config
func applyOverrides(cfg *config.Config, opts Opts) {
	if opts.Port > 0 {
		cfg.Server.Listen = ":" + strconv.Itoa(opts.Port)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.Variant != "" {
		cfg.Pipeline.Variant = opts.Variant
	}
	if opts.OpenAIKey != "" {
		cfg.LLM.APIKey = opts.OpenAIKey
	}
	if opts.SMTP.Server != "" {
		cfg.SMTP.Server = opts.SMTP.Server
	}
	if opts.SMTP.Port > 0 {
		cfg.SMTP.Port = opts.SMTP.Port
	}
	if opts.SMTP.Username != "" {
		cfg.SMTP.Username = opts.SMTP.Username
	}
	if opts.SMTP.Password != "" {
		cfg.SMTP.Password = opts.SMTP.Password
	}
}

// makeServer wires the pipeline, industry manager and integrations for the configured variant
func makeServer(cfg *config.Config, debug bool) (*server.Server, error) {
	simple := cfg.Pipeline.Variant == config.VariantSimple
	profileSet := "general"
	if simple {
		profileSet = "ai"
	}

	profiles, err := industry.LoadProfiles(profileSet)
	if err != nil {
		return nil, fmt.Errorf("load industry profiles: %w", err)
	}
	industries := industry.NewManager(profiles,
		feed.NewParser(cfg.Discovery.Timeout, cfg.Fetch.UserAgent),
		industry.NewCrawler(cfg.Discovery.Timeout, cfg.Discovery.RateLimit, cfg.Extraction.UserAgent),
		cfg.Discovery.CacheTTL)

	fetchParams := feed.Params{Timeout: cfg.Fetch.Timeout, UserAgent: cfg.Fetch.UserAgent, MaxPerFeed: cfg.Fetch.MaxPerFeed}
	var fetcher feed.Fetcher = feed.NewHTTPFetcher(fetchParams)
	if simple {
		fetcher = feed.NewSimpleFetcher(fetchParams)
	}

	annotator := llm.NewAnnotator(cfg.GetLLMConfig())
	if !annotator.Enabled() {
		log.Printf("[WARN] llm api key is not set, articles won't be annotated")
	}

	var extractor pipeline.Extractor
	if cfg.Extraction.Enabled {
		extractor = content.NewHTTPExtractor(content.Params{
			Timeout:   cfg.Extraction.Timeout,
			UserAgent: cfg.Extraction.UserAgent,
			MaxLength: cfg.Extraction.MaxSummary,
		})
	}

	scorer := scoring.NewScorer(scoring.DefaultTables(industries.Keywords()), nil)
	analyzer := pipeline.NewAnalyzer(fetcher, scorer, annotator, extractor, pipeline.Config{
		Dedup:           simple,
		FetchWorkers:    cfg.Fetch.MaxConcurrent,
		AnnotateWorkers: cfg.LLM.MaxConcurrent,
		ExtractWorkers:  cfg.Fetch.MaxConcurrent,
		MaxArticles:     cfg.Pipeline.MaxArticles,
	})

	integrations := integration.NewManager(integration.Params{
		SMTP:         cfg.SMTP,
		Timeout:      cfg.Integrations.Timeout,
		AirtableRate: cfg.Integrations.AirtableRate,
	})

	log.Printf("[INFO] variant %s, profiles %q, %d industries, extraction %v",
		cfg.Pipeline.Variant, profileSet, len(industries.Industries()), cfg.Extraction.Enabled)

	return server.New(cfg, server.Deps{Analyzer: analyzer, Industries: industries, Integrations: integrations}, revision, debug), nil
}

func setupLog(dbg, verbose bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)} // quiet unless verbose or debug
	if verbose {
		logOpts = []lgr.Option{lgr.Msec, lgr.LevelBraces}
	}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
