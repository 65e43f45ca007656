// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package artifacts loads the precomputed catalog and similarity table.

Both tables are produced offline and are read exactly once at startup. Two
on-disk formats are supported:

  - sqlite (default): a single database file with schema_version, movies and
    similarity tables, opened read-only with modernc.org/sqlite.
  - json: a movies.json array and a similarity.json object keyed by row.

Any failure is reported as a *LoadError naming the table that could not be
read. The server treats it as fatal; there is no partial catalog.

# Importing

The import command converts a JSON pair into the SQLite format:

	stats, err := artifacts.Import(ctx, artifacts.ImportOptions{
	    MoviesPath:     "movies.json",
	    SimilarityPath: "similarity.json",
	    OutPath:        "/data/marquee.db",
	})

The output is built in a temp file beside the target and renamed over it
while an exclusive file lock is held, so readers never see a half-written
database.
*/
package artifacts
