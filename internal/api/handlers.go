// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

// DefaultRequestTimeout bounds a recommendation request when no timeout is
// configured.
const DefaultRequestTimeout = 60 * time.Second

// Recommender runs the recommendation pipeline for one title.
type Recommender interface {
	Recommend(ctx context.Context, title string) recommend.Result
}

// CarouselSource exposes the most recent carousel snapshot.
type CarouselSource interface {
	Snapshot() (*recommend.CarouselSnapshot, bool)
}

// Handler serves the HTTP API over the loaded catalog.
type Handler struct {
	catalog        *catalog.Catalog
	recommender    Recommender
	carousel       CarouselSource // nil when the carousel is disabled
	requestTimeout time.Duration
	startTime      time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithCarousel enables the carousel route and makes readiness wait for the
// first carousel load.
func WithCarousel(c CarouselSource) HandlerOption {
	return func(h *Handler) {
		h.carousel = c
	}
}

// WithRequestTimeout sets the deadline applied to each recommendation request.
func WithRequestTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.requestTimeout = d
		}
	}
}

// NewHandler creates the API handler. cat may be nil only in tests that
// exercise readiness before artifacts are loaded.
func NewHandler(cat *catalog.Catalog, rec Recommender, opts ...HandlerOption) *Handler {
	h := &Handler{
		catalog:        cat,
		recommender:    rec,
		requestTimeout: DefaultRequestTimeout,
		startTime:      time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// artifactsLoaded reports whether there is a catalog to serve from.
func (h *Handler) artifactsLoaded() bool {
	return h.catalog != nil && h.recommender != nil
}

// carouselReady reports whether the carousel is disabled or has loaded once.
func (h *Handler) carouselReady() bool {
	if h.carousel == nil {
		return true
	}
	_, ok := h.carousel.Snapshot()
	return ok
}
