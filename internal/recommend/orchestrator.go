// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/notice"
	"github.com/tomtom215/marquee/internal/similarity"
)

// User-visible messages.
const (
	MessageNotFound  = "Selected movie not found in dataset."
	MessageNoResults = "No valid recommendations found. Try a different movie."
)

// Orchestrator runs the recommendation pipeline over loaded artifacts.
// It holds no mutable state and is safe for concurrent use.
type Orchestrator struct {
	catalog  *catalog.Catalog
	table    *similarity.Table
	resolver PosterResolver
	config   *Config
	logger   zerolog.Logger
}

// NewOrchestrator creates an orchestrator. A nil cfg uses DefaultConfig.
func NewOrchestrator(cat *catalog.Catalog, table *similarity.Table, resolver PosterResolver, cfg *Config) (*Orchestrator, error) {
	if cat == nil || table == nil {
		return nil, errors.New("catalog and similarity table are required")
	}
	if resolver == nil {
		return nil, errors.New("poster resolver is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Orchestrator{
		catalog:  cat,
		table:    table,
		resolver: resolver,
		config:   cfg,
		logger:   logging.WithComponent("recommend"),
	}, nil
}

// Catalog returns the catalog the orchestrator resolves titles against.
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

// Recommend returns up to MaxResults movies similar to titleInput, in rank
// order, each with a resolved poster. It never fails: an unknown title yields
// an empty result with NotFound set, and poster failures only shrink the list.
func (o *Orchestrator) Recommend(ctx context.Context, titleInput string) Result {
	start := time.Now()
	if notice.FromContext(ctx) == nil {
		ctx, _ = notice.WithCollector(ctx)
	}
	col := notice.FromContext(ctx)
	logger := o.requestLogger(ctx, titleInput)

	row, err := o.catalog.Resolve(titleInput)
	if err != nil {
		notice.Error(ctx, notice.CodeNotFound, MessageNotFound)
		metrics.RecordRecommendation(metrics.OutcomeNotFound, 0, 0)
		logger.Debug().Msg("title not in catalog")
		return Result{Query: titleInput, Items: []Item{}, NotFound: true, Notices: col.Notices()}
	}

	candidates := o.candidates(row, logger)

	var items []Item
	var probed int
	if o.config.Concurrency <= 1 {
		items, probed = o.probeSequential(ctx, candidates)
	} else {
		items, probed = o.probeWindowed(ctx, candidates)
	}

	notice.Info(ctx, notice.CodeResultCount, "Found %d recommendations for '%s'.", len(items), titleInput)
	outcome := metrics.OutcomeFound
	if len(items) == 0 {
		outcome = metrics.OutcomeEmpty
		notice.Emit(ctx, notice.Notice{Level: notice.LevelWarning, Code: notice.CodeNoResults, Message: MessageNoResults})
	}
	metrics.RecordRecommendation(outcome, len(items), probed)

	logger.Debug().
		Int("row_index", row).
		Int("candidates", len(candidates)).
		Int("probed", probed).
		Int("returned", len(items)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return Result{
		Query:   titleInput,
		Items:   items,
		Count:   len(items),
		Probed:  probed,
		Notices: col.Notices(),
	}
}

// candidates returns ranked movies, dropping rows the catalog does not know.
// Dropped rows are never probed.
func (o *Orchestrator) candidates(row int, logger zerolog.Logger) []catalog.Movie {
	ranked := o.table.Rank(row)
	movies := make([]catalog.Movie, 0, len(ranked))
	for _, r := range ranked {
		m, ok := o.catalog.Movie(r)
		if !ok {
			logger.Debug().Int("candidate_row", r).Msg("candidate not in catalog, skipping")
			continue
		}
		movies = append(movies, m)
	}
	return movies
}

func (o *Orchestrator) probeSequential(ctx context.Context, candidates []catalog.Movie) ([]Item, int) {
	items := make([]Item, 0, o.config.MaxResults)
	probed := 0
	for _, m := range candidates {
		if len(items) >= o.config.MaxResults || probed >= o.config.ProbeBudget {
			break
		}
		probed++
		if url, ok := o.resolver.Resolve(ctx, m.ExternalID); ok {
			items = append(items, itemFor(m, url))
		}
	}
	return items, probed
}

// probeWindowed resolves candidates in rank-ordered windows of Concurrency.
// Each lookup writes only its own slot and acceptance walks the slots in
// order, so completion order never affects the output.
func (o *Orchestrator) probeWindowed(ctx context.Context, candidates []catalog.Movie) ([]Item, int) {
	items := make([]Item, 0, o.config.MaxResults)
	probed := 0
	next := 0

	for next < len(candidates) && len(items) < o.config.MaxResults && probed < o.config.ProbeBudget {
		size := min(o.config.Concurrency, o.config.ProbeBudget-probed, len(candidates)-next)
		window := candidates[next : next+size]
		urls := make([]string, size)
		oks := make([]bool, size)

		var g errgroup.Group
		g.SetLimit(o.config.Concurrency)
		for i, m := range window {
			g.Go(func() error {
				urls[i], oks[i] = o.resolver.Resolve(ctx, m.ExternalID)
				return nil
			})
		}
		_ = g.Wait() // lookups never return errors

		next += size
		probed += size
		for i, m := range window {
			if len(items) >= o.config.MaxResults {
				break
			}
			if oks[i] {
				items = append(items, itemFor(m, urls[i]))
			}
		}
	}
	return items, probed
}

func itemFor(m catalog.Movie, url string) Item {
	return Item{RowIndex: m.RowIndex, ExternalID: m.ExternalID, Title: m.Title, PosterURL: url}
}

func (o *Orchestrator) requestLogger(ctx context.Context, title string) zerolog.Logger {
	logCtx := o.logger.With().Str("title", title)
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("correlation_id", id)
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	return logCtx.Logger()
}
