// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

// RecommendRequest holds the query parameters of GET /api/v1/recommendations.
type RecommendRequest struct {
	Title string `query:"title" validate:"required,notblank,max=500"`
}

// AutocompleteRequest holds the query parameters of GET /api/v1/titles/autocomplete.
type AutocompleteRequest struct {
	Query string `query:"q" validate:"required,notblank,max=200"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
}
