// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend turns a movie title into a short list of similar movies
// that have posters.
//
// # Pipeline
//
//  1. The title is resolved against the catalog. An unknown title ends the
//     request with an error notice and an empty result.
//  2. Candidates are ranked by the precomputed similarity table.
//  3. Candidates are probed in rank order. A candidate is accepted when its
//     poster resolves and skipped otherwise, with no substitution.
//  4. Probing stops after MaxResults accepts or ProbeBudget probes.
//
// Poster failures never fail a request. They surface as notices on the
// request context (see package notice) and as metrics.
//
// # Fan-out
//
// With Concurrency above one, candidates are probed in rank-ordered windows
// of that size. Results are written into per-candidate slots and accepted by
// walking the slots in rank order, so the output matches the sequential
// pipeline no matter which lookup finishes first.
//
// # Carousel
//
// Carousel resolves a fixed list of ids once at startup and publishes the
// posters that resolved as an immutable snapshot.
//
// # Usage
//
//	orch, err := recommend.NewOrchestrator(cat, table, resolver, recommend.DefaultConfig())
//	ctx, col := notice.WithCollector(ctx)
//	result := orch.Recommend(ctx, "Avatar")
package recommend
