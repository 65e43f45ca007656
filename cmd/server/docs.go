// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// @title Marquee API
// @version 1.0
// @description Movie recommendations with TMDB poster resolution.
// @description
// @description Given a title from the catalog, the API returns up to five similar
// @description movies in similarity order. Only movies whose poster resolves are
// @description returned; lookup failures are reported as notices.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/marquee/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Health
// @tag.description Liveness and readiness probes
//
// @tag.name Catalog
// @tag.description Title listing and autocomplete
//
// @tag.name Recommendations
// @tag.description Similar-movie recommendations and the startup carousel
package main
