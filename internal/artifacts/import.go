// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package artifacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/similarity"
)

// ImportOptions names the JSON inputs and the SQLite output of an import.
type ImportOptions struct {
	MoviesPath     string
	SimilarityPath string
	OutPath        string

	// LockTimeout bounds the wait for another import on the same output.
	// Zero means 30 seconds.
	LockTimeout time.Duration
}

// ErrLocked indicates another import holds the output lock.
var ErrLocked = errors.New("another import is writing this artifact")

// Import validates a JSON artifact pair and writes it as an SQLite artifact
// database at opts.OutPath, replacing any existing file atomically.
func Import(ctx context.Context, opts ImportOptions) (Stats, error) {
	if opts.OutPath == "" {
		return Stats{}, errors.New("output path is required")
	}

	movies, entries, err := readJSONPair(opts.MoviesPath, opts.SimilarityPath)
	if err != nil {
		return Stats{}, err
	}
	// Reject dangling references before touching the output.
	if _, err := assemble(movies, entries, opts.MoviesPath, opts.SimilarityPath); err != nil {
		return Stats{}, err
	}

	dir := filepath.Dir(opts.OutPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("create output directory: %w", err)
	}

	timeout := opts.LockTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	lock := flock.New(opts.OutPath + ".lock")
	ok, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Stats{}, ErrLocked
		}
		return Stats{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return Stats{}, ErrLocked
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			logging.Warn().Err(unlockErr).Str("path", opts.OutPath).Msg("Failed to release import lock")
		}
	}()

	tmp, err := os.CreateTemp(dir, filepath.Base(opts.OutPath)+".*.tmp")
	if err != nil {
		return Stats{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := writeSQLite(ctx, tmpPath, movies, entries); err != nil {
		return Stats{}, err
	}
	if err := os.Rename(tmpPath, opts.OutPath); err != nil {
		return Stats{}, fmt.Errorf("replace %s: %w", opts.OutPath, err)
	}

	stats := statsFor(movies, entries)
	logging.Info().
		Str("path", opts.OutPath).
		Int("movies", stats.Movies).
		Int("similarity_rows", stats.SimilarityRows).
		Int("candidates", stats.Candidates).
		Msg("Artifacts imported")
	return stats, nil
}

func writeSQLite(ctx context.Context, path string, movies []catalog.Movie, entries map[int]similarity.Entry) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=DELETE"); err != nil {
		return fmt.Errorf("apply pragma: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	movieStmt, err := tx.PrepareContext(ctx, "INSERT INTO movies (row_index, external_id, title) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare movie insert: %w", err)
	}
	defer func() { _ = movieStmt.Close() }()
	for _, m := range movies {
		if _, err := movieStmt.ExecContext(ctx, m.RowIndex, m.ExternalID, m.Title); err != nil {
			return fmt.Errorf("insert movie row %d: %w", m.RowIndex, err)
		}
	}

	simStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO similarity (row_index, position, candidate_row, score) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare similarity insert: %w", err)
	}
	defer func() { _ = simStmt.Close() }()

	rows := make([]int, 0, len(entries))
	for row := range entries {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	for _, row := range rows {
		e := entries[row]
		for pos, c := range e.Candidates {
			var score sql.NullFloat64
			if !e.Ranked {
				score = sql.NullFloat64{Float64: c.Score, Valid: true}
			}
			if _, err := simStmt.ExecContext(ctx, row, pos, c.Row, score); err != nil {
				return fmt.Errorf("insert similarity row %d position %d: %w", row, pos, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}
