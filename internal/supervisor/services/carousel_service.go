// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
)

// CarouselLoader resolves the carousel and stores the snapshot.
type CarouselLoader interface {
	Load(ctx context.Context) *recommend.CarouselSnapshot
}

// CarouselService loads the carousel once at startup and, when
// refreshInterval is positive, again on every tick.
type CarouselService struct {
	carousel        CarouselLoader
	refreshInterval time.Duration
	logger          zerolog.Logger
	name            string
}

// NewCarouselService creates the service. refreshInterval <= 0 loads once.
func NewCarouselService(carousel CarouselLoader, refreshInterval time.Duration) *CarouselService {
	return &CarouselService{
		carousel:        carousel,
		refreshInterval: refreshInterval,
		logger:          logging.WithComponent("carousel"),
		name:            "carousel-service",
	}
}

// Serve implements suture.Service.
func (s *CarouselService) Serve(ctx context.Context) error {
	s.load(ctx)

	if s.refreshInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.load(ctx)
		}
	}
}

func (s *CarouselService) load(ctx context.Context) {
	start := time.Now()
	ctx = logging.ContextWithNewCorrelationID(ctx)
	snap := s.carousel.Load(ctx)
	if snap == nil {
		return
	}
	s.logger.Debug().
		Str("correlation_id", logging.CorrelationIDFromContext(ctx)).
		Int("posters", len(snap.Posters)).
		Int("notices", len(snap.Notices)).
		Dur("duration", time.Since(start)).
		Msg("Carousel load finished")
}

// String returns the service name for logging.
func (s *CarouselService) String() string {
	return s.name
}
