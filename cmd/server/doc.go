// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Command server runs the Marquee HTTP API.

Startup order:

 1. Load configuration (defaults, optional YAML/TOML file, environment)
 2. Initialize logging
 3. Load the movie catalog and similarity artifacts. Failure is fatal.
 4. Wire the TMDB client, circuit breaker, poster resolver and orchestrator
 5. Start the supervisor tree: carousel loader (data layer) and HTTP server
    (api layer)

SIGINT and SIGTERM cancel the tree; the HTTP server drains for up to ten
seconds.

Minimal environment:

	TMDB_API_KEY=...            required
	ARTIFACTS_PATH=/data/marquee.db
	HTTP_PORT=8501

Build the artifact database with the marquee CLI:

	marquee artifacts import --movies movies.json --similarity similarity.json --out /data/marquee.db
*/
package main
