package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"StockDashboard/internal/cache"
	"StockDashboard/internal/collector"
	"StockDashboard/internal/config"
	"StockDashboard/internal/dashboard"
	"StockDashboard/internal/logger"
	"StockDashboard/internal/metrics"
	"StockDashboard/internal/renderer"
)

// app holds everything a command needs, built from one config.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	store     cache.Store
	client    *http.Client
	metrics   *metrics.Prometheus
	generator *dashboard.Generator
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, metrics: metrics.NewPrometheus()}
	a.store, err = openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	opts := collector.HTTPOptions{Proxy: cfg.Proxy, OnLookup: a.metrics.RecordCacheLookup, Log: log}
	if _, ok := a.store.(*cache.NoopStore); !ok {
		opts.Store = a.store
		opts.TTL = cfg.Cache.TTL
	}
	a.client = collector.NewHTTPClient(opts)

	sec := collector.NewSECFetcher(cfg.SEC.UserAgent, cfg.SEC.RateLimit, a.client, log)
	sec.BaseURL = cfg.SEC.BaseURL
	sec.TickersURL = cfg.SEC.TickersURL

	a.generator = &dashboard.Generator{
		Filings: sec,
		Renderer: renderer.NewExcelRenderer(cfg.Output.Dir, renderer.Classification{
			Positive: cfg.Classification.Positive,
			Neutral:  cfg.Classification.Neutral,
			Negative: cfg.Classification.Negative,
		}, log),
		Metrics: a.metrics,
		Log:     log,
	}
	if cfg.Market.Enabled {
		yahoo := collector.NewYahooFetcher(a.client)
		yahoo.BaseURL = cfg.Market.BaseURL
		a.generator.Prices = yahoo
	}
	log.Debug().Str("cache", cfg.Cache.Backend).Bool("market", cfg.Market.Enabled).Msg("pipeline ready")
	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case "sqlite":
		s, err := cache.NewSQLiteStore(cfg.Cache.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite cache failed, caching disabled")
			return cache.NewNoopStore(), nil
		}
		return s, nil
	case "redis":
		r := cfg.Cache.Redis
		s, err := cache.NewRedisStore(ctx, cache.RedisConfig{Addr: r.Addr, Password: r.Password, DB: r.DB, Prefix: r.Prefix})
		if err != nil {
			log.Warn().Err(err).Msg("init redis cache failed, caching disabled")
			return cache.NewNoopStore(), nil
		}
		return s, nil
	default:
		return cache.NewNoopStore(), nil
	}
}

// flushMetrics writes the metrics textfile when one is configured.
func (a *app) flushMetrics() {
	if a.cfg.Metrics.Textfile == "" {
		return
	}
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		a.log.Error().Err(err).Msg("write metrics textfile")
	}
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("close cache")
	}
}

func fail(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
