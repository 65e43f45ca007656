// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package poster turns TMDB movie ids into poster image URLs.
//
// Resolve never returns an error. Every failure is folded into an absent
// result plus a warning notice on the request context, so a single bad
// lookup cannot fail a recommendation request.
package poster

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/notice"
	"github.com/tomtom215/marquee/internal/tmdb"
)

const (
	// DefaultImageBaseURL is the TMDB image CDN.
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"

	// ImageSize is the rendition requested from the CDN.
	ImageSize = "w500"
)

// Resolver maps external ids to poster URLs.
type Resolver struct {
	fetcher      tmdb.MovieFetcher
	imageBaseURL string
	timeout      time.Duration
	logger       zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTimeout bounds each lookup. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithImageBaseURL overrides the CDN base.
func WithImageBaseURL(base string) Option {
	return func(r *Resolver) {
		if base = strings.TrimRight(strings.TrimSpace(base), "/"); base != "" {
			r.imageBaseURL = base
		}
	}
}

// New creates a resolver over fetcher.
func New(fetcher tmdb.MovieFetcher, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:      fetcher,
		imageBaseURL: DefaultImageBaseURL,
		timeout:      tmdb.DefaultTimeout,
		logger:       logging.WithComponent("poster"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ImageURL builds the CDN URL for a poster path such as "/abc.jpg".
func (r *Resolver) ImageURL(posterPath string) string {
	return r.imageBaseURL + "/" + ImageSize + posterPath
}

// Resolve looks up the poster for externalID with a single bounded call.
// ok is false when the movie has no poster or the lookup failed.
func (r *Resolver) Resolve(ctx context.Context, externalID int64) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	details, err := r.fetcher.GetMovieDetails(callCtx, externalID)
	duration := time.Since(start)

	if err != nil {
		r.reportFailure(ctx, externalID, err, duration)
		return "", false
	}

	if details.PosterPath == nil || *details.PosterPath == "" {
		metrics.RecordPosterLookup(metrics.PosterResultAbsent, duration)
		r.log(ctx).Debug().Int64("external_id", externalID).Msg("No poster available")
		notice.Emit(ctx, notice.Notice{
			Level:      notice.LevelInfo,
			Code:       notice.CodePosterMissing,
			Message:    "No poster available",
			ExternalID: externalID,
		})
		return "", false
	}

	metrics.RecordPosterLookup(metrics.PosterResultSuccess, duration)
	return r.ImageURL(*details.PosterPath), true
}

func (r *Resolver) reportFailure(ctx context.Context, externalID int64, err error, duration time.Duration) {
	result := Classify(err)
	metrics.RecordPosterLookup(result, duration)

	event := r.log(ctx).Warn().Int64("external_id", externalID).Str("result", result).Dur("duration", duration)

	switch result {
	case metrics.PosterResultTimeout:
		event.Msg("Poster lookup timed out")
		notice.Warn(ctx, notice.CodePosterTimeout, externalID, "Timeout for movie ID: %d", externalID)
	case metrics.PosterResultNetwork:
		event.Err(err).Msg("Poster lookup network error")
		notice.Warn(ctx, notice.CodePosterNetwork, externalID, "Network error for movie ID: %d - %v", externalID, err)
	case metrics.PosterResultRejected:
		event.Msg("Poster lookup rejected by circuit breaker")
		notice.Warn(ctx, notice.CodePosterUnavailable, externalID, "Poster service unavailable for movie ID: %d", externalID)
	default:
		event.Err(err).Msg("Poster lookup failed")
		notice.Warn(ctx, notice.CodePosterError, externalID, "Error for movie ID: %d - %v", externalID, err)
	}
}

func (r *Resolver) log(ctx context.Context) *zerolog.Logger {
	logCtx := r.logger.With()
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("correlation_id", id)
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	l := logCtx.Logger()
	return &l
}

// Classify maps a lookup error to a poster lookup result label.
func Classify(err error) string {
	if isRejected(err) {
		return metrics.PosterResultRejected
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, tmdb.ErrRateLimited) {
		return metrics.PosterResultTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return metrics.PosterResultTimeout
	}

	var decodeErr *tmdb.DecodeError
	if errors.As(err, &decodeErr) {
		return metrics.PosterResultError
	}

	var statusErr *tmdb.StatusError
	var urlErr *url.Error
	if errors.As(err, &statusErr) || errors.As(err, &urlErr) || netErr != nil {
		return metrics.PosterResultNetwork
	}
	return metrics.PosterResultError
}
