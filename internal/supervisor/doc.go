// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package supervisor runs Marquee's long-lived services under a suture tree.
//
// The tree has two layers:
//
//	marquee (root)
//	├── data-layer   carousel loader
//	└── api-layer    HTTP server
//
// A crash in one layer is restarted by its own supervisor with backoff and
// does not take the other layer down. Suture events are logged through
// sutureslog into the zerolog-backed slog handler from the logging package.
package supervisor
