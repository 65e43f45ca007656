// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package app assembles Marquee's components from configuration. The server
// and the CLI share it so both resolve posters and rank titles identically.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/artifacts"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/poster"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/tmdb"
)

// App holds the wired components.
type App struct {
	Config       *config.Config
	Artifacts    *artifacts.Artifacts
	Fetcher      tmdb.MovieFetcher
	Breaker      *poster.BreakerFetcher // nil when the breaker is disabled
	Resolver     *poster.Resolver
	Orchestrator *recommend.Orchestrator
	Carousel     *recommend.Carousel // nil when the carousel is disabled
}

// Option customizes construction.
type Option func(*options)

type options struct {
	tmdbOpts []tmdb.Option
}

// WithTMDBOptions passes extra options to the TMDB client.
func WithTMDBOptions(opts ...tmdb.Option) Option {
	return func(o *options) {
		o.tmdbOpts = append(o.tmdbOpts, opts...)
	}
}

// New loads the artifacts and wires the poster pipeline. An artifact load
// failure is returned as *artifacts.LoadError; callers treat it as fatal.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	arts, err := artifacts.Load(ctx, cfg.Artifacts)
	if err != nil {
		return nil, err
	}

	tmdbOpts := append([]tmdb.Option{
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithRateLimit(cfg.TMDB.RequestsPerSecond, cfg.TMDB.Burst),
	}, o.tmdbOpts...)
	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language, tmdbOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tmdb client: %w", err)
	}

	a := &App{Config: cfg, Artifacts: arts, Fetcher: client}
	if cfg.Breaker.Enabled {
		a.Breaker = poster.NewBreakerFetcher(poster.DefaultBreakerName, client, cfg.Breaker)
		a.Fetcher = a.Breaker
	}

	a.Resolver = poster.New(a.Fetcher,
		poster.WithTimeout(cfg.TMDB.Timeout),
		poster.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
	)

	a.Orchestrator, err = recommend.NewOrchestrator(arts.Catalog, arts.Similarity, a.Resolver, recommend.ConfigFrom(cfg.Recommend))
	if err != nil {
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	if cfg.Carousel.Enabled {
		a.Carousel = recommend.NewCarousel(cfg.Carousel.IDs, a.Resolver)
	}

	logging.Info().
		Bool("breaker", cfg.Breaker.Enabled).
		Bool("carousel", cfg.Carousel.Enabled).
		Int("concurrency", cfg.Recommend.Concurrency).
		Msg("Recommendation pipeline ready")
	return a, nil
}

// Handler returns the HTTP API handler.
func (a *App) Handler() http.Handler {
	opts := []api.HandlerOption{api.WithRequestTimeout(a.Config.Recommend.RequestTimeout)}
	if a.Carousel != nil {
		opts = append(opts, api.WithCarousel(a.Carousel))
	}
	handler := api.NewHandler(a.Artifacts.Catalog, a.Orchestrator, opts...)
	chiMw := api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(a.Config.Security))
	return api.NewRouter(handler, chiMw).SetupChi()
}

// HTTPServer returns an *http.Server serving Handler on the configured address.
func (a *App) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              a.Config.Server.Addr(),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       a.Config.Server.Timeout,
		WriteTimeout:      a.Config.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
}
