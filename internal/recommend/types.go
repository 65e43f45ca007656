// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"

	"github.com/tomtom215/marquee/internal/notice"
)

// PosterResolver resolves an external id to a poster URL. ok is false when
// no poster could be obtained; failures are reported through notices, not
// return values.
type PosterResolver interface {
	Resolve(ctx context.Context, externalID int64) (url string, ok bool)
}

// Item is one accepted recommendation.
type Item struct {
	RowIndex   int    `json:"row_index"`
	ExternalID int64  `json:"id"`
	Title      string `json:"title"`
	PosterURL  string `json:"poster_url"`
}

// Result is the outcome of one recommendation request.
type Result struct {
	// Query is the title as the user entered it.
	Query string `json:"query"`

	// Items are in rank order and always carry a poster.
	Items []Item `json:"items"`

	// Count equals len(Items).
	Count int `json:"count"`

	// Probed is the number of poster lookups made.
	Probed int `json:"probed"`

	// NotFound is set when the title did not match the catalog.
	NotFound bool `json:"-"`

	// Notices holds every notice in the request context's collector.
	Notices []notice.Notice `json:"notices"`
}

// Poster is one resolved carousel entry.
type Poster struct {
	ExternalID int64  `json:"id"`
	URL        string `json:"poster_url"`
}
