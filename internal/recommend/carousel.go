// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/notice"
)

// CarouselSnapshot is the result of one carousel load.
type CarouselSnapshot struct {
	Posters  []Poster        `json:"posters"`
	Notices  []notice.Notice `json:"notices,omitempty"`
	LoadedAt time.Time       `json:"loaded_at"`
}

// Carousel resolves a fixed list of external ids and keeps the posters that
// resolved, in input order.
type Carousel struct {
	ids      []int64
	resolver PosterResolver
	snapshot atomic.Pointer[CarouselSnapshot]
}

// NewCarousel creates a carousel over ids. The slice is copied.
func NewCarousel(ids []int64, resolver PosterResolver) *Carousel {
	return &Carousel{
		ids:      append([]int64(nil), ids...),
		resolver: resolver,
	}
}

// IDs returns the configured ids.
func (c *Carousel) IDs() []int64 {
	return append([]int64(nil), c.ids...)
}

// Load resolves every id sequentially and publishes a new snapshot.
// Unresolved ids are left out. A canceled ctx stops early and publishes
// whatever resolved so far.
func (c *Carousel) Load(ctx context.Context) *CarouselSnapshot {
	ctx, col := notice.WithCollector(ctx)

	posters := make([]Poster, 0, len(c.ids))
	for _, id := range c.ids {
		if ctx.Err() != nil {
			break
		}
		if url, ok := c.resolver.Resolve(ctx, id); ok {
			posters = append(posters, Poster{ExternalID: id, URL: url})
		}
	}

	snap := &CarouselSnapshot{Posters: posters, Notices: col.Notices(), LoadedAt: time.Now()}
	c.snapshot.Store(snap)
	metrics.CarouselPosters.Set(float64(len(posters)))

	logging.CtxInfo(ctx).
		Int("requested", len(c.ids)).
		Int("resolved", len(posters)).
		Msg("Carousel loaded")
	return snap
}

// Snapshot returns the latest snapshot and whether a load has completed.
func (c *Carousel) Snapshot() (*CarouselSnapshot, bool) {
	snap := c.snapshot.Load()
	return snap, snap != nil
}
