// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api serves the Marquee HTTP JSON API on a chi router.

Routes:

	GET /api/v1/health               service health
	GET /api/v1/health/live          liveness probe
	GET /api/v1/health/ready         readiness probe (artifacts and carousel loaded)
	GET /api/v1/titles               sorted unique catalog titles
	GET /api/v1/titles/autocomplete  prefix suggestions (?q=&limit=)
	GET /api/v1/carousel             startup carousel posters
	GET /api/v1/recommendations      similar movies with posters (?title=)
	GET /metrics                     Prometheus metrics
	GET /swagger/*                   API documentation

Every JSON response uses the APIResponse envelope. Recommendation requests
that match no title return 404 NOT_FOUND with the request's notices in
error.details; requests that match but resolve no posters return 200 with an
empty item list and a NO_RESULTS notice.

Middleware order: request ID and correlation ID, real IP, panic recovery,
access log, CORS, then per-group rate limits (go-chi/httprate) and security
headers. API routes also record Prometheus request metrics.
*/
package api
