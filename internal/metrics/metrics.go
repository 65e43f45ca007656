// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Poster lookup results.
const (
	PosterResultSuccess  = "success"
	PosterResultAbsent   = "absent"
	PosterResultTimeout  = "timeout"
	PosterResultNetwork  = "network"
	PosterResultError    = "error"
	PosterResultRejected = "rejected"
)

// Recommendation outcomes.
const (
	OutcomeFound    = "found"
	OutcomeEmpty    = "empty"
	OutcomeNotFound = "not_found"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Poster Metrics
	PosterLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_lookups_total",
			Help: "Total number of poster lookups by result",
		},
		[]string{"result"}, // success, absent, timeout, network, error, rejected
	)

	PosterLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_lookup_duration_seconds",
			Help:    "Duration of poster lookups against the metadata service",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // found, empty, not_found
	)

	RecommendationResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_results",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	RecommendationCandidatesProbed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates_probed",
			Help:    "Number of ranked candidates probed per request",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		},
	)

	// Carousel and Artifact Metrics
	CarouselPosters = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "carousel_posters",
			Help: "Number of carousel posters resolved at the last load",
		},
	)

	ArtifactRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artifact_rows",
			Help: "Rows loaded from the precomputed artifacts",
		},
		[]string{"table"}, // movies, similarity
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "item_error", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPosterLookup records one poster resolution attempt.
func RecordPosterLookup(result string, duration time.Duration) {
	PosterLookups.WithLabelValues(result).Inc()
	if result != PosterResultRejected {
		PosterLookupDuration.Observe(duration.Seconds())
	}
}

// RecordRecommendation records the outcome of one recommendation request.
func RecordRecommendation(outcome string, results, probed int) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeNotFound {
		return
	}
	RecommendationResults.Observe(float64(results))
	RecommendationCandidatesProbed.Observe(float64(probed))
}

// RecordArtifactRows records table sizes after artifact load.
func RecordArtifactRows(movies, similarityRows int) {
	ArtifactRows.WithLabelValues("movies").Set(float64(movies))
	ArtifactRows.WithLabelValues("similarity").Set(float64(similarityRows))
}
