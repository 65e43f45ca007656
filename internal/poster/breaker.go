// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package poster

import (
	"context"
	"errors"
	"net/http"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/tmdb"
)

// DefaultBreakerName labels the TMDB breaker in metrics.
const DefaultBreakerName = "tmdb-api"

// BreakerFetcher wraps a MovieFetcher with a circuit breaker. While the
// circuit is open, calls fail fast with gobreaker.ErrOpenState and the
// resolver reports the poster as unavailable.
//
// The breaker uses real time for its interval and timeout; tests drive it
// through request counts rather than the clock.
type BreakerFetcher struct {
	next tmdb.MovieFetcher
	cb   *gobreaker.CircuitBreaker[*tmdb.MovieDetails]
	name string
}

var _ tmdb.MovieFetcher = (*BreakerFetcher)(nil)

// NewBreakerFetcher creates a breaker named name around next.
// With the default configuration:
//   - Max 3 requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
func NewBreakerFetcher(name string, next tmdb.MovieFetcher, cfg config.BreakerConfig) *BreakerFetcher {
	if name == "" {
		name = DefaultBreakerName
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*tmdb.MovieDetails](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio

			if shouldTrip {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return !tripsBreaker(err)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerFetcher{next: next, cb: cb, name: name}
}

// GetMovieDetails fetches through the breaker.
func (b *BreakerFetcher) GetMovieDetails(ctx context.Context, movieID int64) (*tmdb.MovieDetails, error) {
	details, err := b.cb.Execute(func() (*tmdb.MovieDetails, error) {
		return b.next.GetMovieDetails(ctx, movieID)
	})

	if err != nil {
		switch {
		case isRejected(err):
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Debug().Err(err).Int64("external_id", movieID).Msg("[CIRCUIT BREAKER] Request rejected")
		case !tripsBreaker(err):
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "item_error").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			counts := b.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return details, nil
}

// State returns the breaker state as closed, half-open or open.
func (b *BreakerFetcher) State() string {
	return stateToString(b.cb.State())
}

// tripsBreaker reports whether err says something about TMDB health.
// A caller that gave up, a movie TMDB does not know (4xx other than 429)
// and a malformed payload are per-movie outcomes and stay out of the
// failure ratio.
func tripsBreaker(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *tmdb.StatusError
	if errors.As(err, &statusErr) {
		code := statusErr.StatusCode
		return code == http.StatusTooManyRequests || code >= 500 || code < 400
	}

	var decodeErr *tmdb.DecodeError
	return !errors.As(err, &decodeErr)
}

func isRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
