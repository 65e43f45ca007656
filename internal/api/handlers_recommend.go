// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/notice"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

// TitlesResponse is the body of GET /titles.
type TitlesResponse struct {
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

// AutocompleteResponse is the body of GET /titles/autocomplete.
type AutocompleteResponse struct {
	Query       string               `json:"query"`
	Suggestions []catalog.Suggestion `json:"suggestions"`
}

// CarouselResponse is the body of GET /carousel.
type CarouselResponse struct {
	Posters []recommend.Poster `json:"posters"`
	Count   int                `json:"count"`
	Notices []notice.Notice    `json:"notices,omitempty"`
}

// NotFoundDetails is carried in error.details when the title is unknown.
type NotFoundDetails struct {
	Query   string          `json:"query"`
	Notices []notice.Notice `json:"notices"`
}

// Titles returns the sorted unique titles for the selector.
//
// @Summary List catalog titles
// @Description Returns every distinct title in the catalog, sorted
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=TitlesResponse} "Titles"
// @Failure 503 {object} APIResponse "Artifacts not loaded"
// @Router /titles [get]
func (h *Handler) Titles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.artifactsLoaded() {
		rw.ServiceUnavailable("Artifacts not loaded")
		return
	}
	titles := h.catalog.Titles()
	rw.Success(TitlesResponse{Titles: titles, Count: len(titles)})
}

// Autocomplete returns titles starting with a prefix.
//
// @Summary Autocomplete titles
// @Tags Catalog
// @Produce json
// @Param q query string true "Title prefix"
// @Param limit query int false "Maximum suggestions (1-50)"
// @Success 200 {object} APIResponse{data=AutocompleteResponse} "Suggestions"
// @Failure 400 {object} APIResponse "Invalid query"
// @Router /titles/autocomplete [get]
func (h *Handler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.artifactsLoaded() {
		rw.ServiceUnavailable("Artifacts not loaded")
		return
	}

	req := validation.AutocompleteRequest{Query: r.URL.Query().Get("q")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			rw.ValidationError("limit must be an integer", map[string]interface{}{"field": "limit", "value": raw})
			return
		}
		req.Limit = limit
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	suggestions := h.catalog.Autocomplete(req.Query, req.Limit)
	if suggestions == nil {
		suggestions = []catalog.Suggestion{}
	}
	rw.Success(AutocompleteResponse{Query: req.Query, Suggestions: suggestions})
}

// Carousel returns the posters resolved at startup.
//
// @Summary Startup carousel
// @Description Returns the posters of the fixed carousel ids that resolved, in configured order
// @Tags Recommendations
// @Produce json
// @Success 200 {object} APIResponse{data=CarouselResponse} "Carousel posters"
// @Failure 404 {object} APIResponse "Carousel disabled"
// @Failure 503 {object} APIResponse "Carousel still loading"
// @Router /carousel [get]
func (h *Handler) Carousel(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.carousel == nil {
		rw.NotFound("Carousel is disabled")
		return
	}
	snap, ok := h.carousel.Snapshot()
	if !ok {
		rw.ServiceUnavailable("Carousel is still loading")
		return
	}
	rw.Success(CarouselResponse{Posters: snap.Posters, Count: len(snap.Posters), Notices: snap.Notices})
}

// Recommendations returns up to five similar movies with posters.
//
// @Summary Recommend similar movies
// @Description Looks up the title, ranks similar movies and keeps those whose poster resolves. Poster failures are reported as notices.
// @Tags Recommendations
// @Produce json
// @Param title query string true "Movie title (case-insensitive)"
// @Success 200 {object} APIResponse{data=recommend.Result} "Recommendations, possibly empty"
// @Failure 400 {object} APIResponse "Invalid title"
// @Failure 404 {object} APIResponse "Title not in catalog, details carry NotFoundDetails"
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.artifactsLoaded() {
		rw.ServiceUnavailable("Artifacts not loaded")
		return
	}

	req := validation.RecommendRequest{Title: r.URL.Query().Get("title")}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()
	ctx, _ = notice.WithCollector(ctx)

	result := h.recommender.Recommend(ctx, req.Title)
	if result.NotFound {
		logging.CtxDebug(ctx).Str("title", req.Title).Msg("Recommendation title not found")
		rw.NotFoundWithDetails(recommend.MessageNotFound, NotFoundDetails{
			Query:   result.Query,
			Notices: result.Notices,
		})
		return
	}

	rw.Success(result)
}
