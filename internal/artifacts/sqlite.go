// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package artifacts

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/similarity"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the artifact schema this build reads and writes.
// Bump it when schema.sql changes; older databases must be re-imported.
const schemaVersion = 1

// openSQLite opens an existing artifact database read-only and verifies its
// schema version.
func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, loadError(TableSchema, path, err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, loadError(TableSchema, path, fmt.Errorf("open sqlite db: %w", err))
	}

	pragmas := []string{
		"PRAGMA query_only = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, loadError(TableSchema, path, fmt.Errorf("apply pragma %q: %w", pragma, execErr))
		}
	}

	if err := checkSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, loadError(TableSchema, path, err)
	}
	return db, nil
}

func checkSchema(ctx context.Context, db *sql.DB) error {
	var tableExists int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return fmt.Errorf("%w: schema_version table missing (run 'marquee artifacts import')", ErrSchemaMismatch)
	}

	var version int
	if err := db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (re-run 'marquee artifacts import')",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

// LoadSQLite reads the catalog and similarity table from an artifact database.
func LoadSQLite(ctx context.Context, path string) (*Artifacts, error) {
	db, err := openSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	movies, err := readMovies(ctx, db)
	if err != nil {
		return nil, loadError(TableMovies, path, err)
	}
	entries, err := readSimilarity(ctx, db)
	if err != nil {
		return nil, loadError(TableSimilarity, path, err)
	}
	return assemble(movies, entries, path, path)
}

// Inspect reports counts for an artifact database without building the catalog.
func Inspect(ctx context.Context, path string) (Stats, error) {
	db, err := openSQLite(ctx, path)
	if err != nil {
		return Stats{}, err
	}
	defer func() { _ = db.Close() }()

	movies, err := readMovies(ctx, db)
	if err != nil {
		return Stats{}, loadError(TableMovies, path, err)
	}
	entries, err := readSimilarity(ctx, db)
	if err != nil {
		return Stats{}, loadError(TableSimilarity, path, err)
	}
	return statsFor(movies, entries), nil
}

func readMovies(ctx context.Context, db *sql.DB) ([]catalog.Movie, error) {
	rows, err := db.QueryContext(ctx, "SELECT row_index, external_id, title FROM movies ORDER BY row_index")
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var movies []catalog.Movie
	for rows.Next() {
		var m catalog.Movie
		if err := rows.Scan(&m.RowIndex, &m.ExternalID, &m.Title); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	if len(movies) == 0 {
		return nil, errors.New("no movies in artifact")
	}
	return movies, nil
}

func readSimilarity(ctx context.Context, db *sql.DB) (map[int]similarity.Entry, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT row_index, candidate_row, score FROM similarity ORDER BY row_index, position")
	if err != nil {
		return nil, fmt.Errorf("query similarity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make(map[int]similarity.Entry)
	for rows.Next() {
		var (
			row, candidate int
			score          sql.NullFloat64
		)
		if err := rows.Scan(&row, &candidate, &score); err != nil {
			return nil, fmt.Errorf("scan similarity: %w", err)
		}

		e, seen := entries[row]
		if !seen {
			e.Ranked = !score.Valid
		} else if e.Ranked == score.Valid {
			return nil, fmt.Errorf("%w: row %d", ErrMixedEntry, row)
		}
		e.Candidates = append(e.Candidates, similarity.Candidate{Row: candidate, Score: score.Float64})
		entries[row] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate similarity: %w", err)
	}
	return entries, nil
}
