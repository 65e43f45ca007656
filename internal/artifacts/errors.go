// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package artifacts

import (
	"errors"
	"fmt"
)

// Table names used in LoadError.
const (
	TableMovies     = "movies"
	TableSimilarity = "similarity"
	TableSchema     = "schema_version"
)

var (
	// ErrSchemaMismatch indicates the database schema version is not the one this build reads.
	ErrSchemaMismatch = errors.New("schema version mismatch")

	// ErrUnknownRow indicates a similarity entry refers to a row missing from the catalog.
	ErrUnknownRow = errors.New("row not in catalog")

	// ErrMixedEntry indicates a similarity row mixes scored and unscored candidates.
	ErrMixedEntry = errors.New("row mixes scored and ranked candidates")

	// ErrUnsupportedFormat indicates an unknown artifacts.format value.
	ErrUnsupportedFormat = errors.New("unsupported artifact format")
)

// LoadError reports which table failed to load.
type LoadError struct {
	Table string
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to load %s: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("failed to load %s from %s: %v", e.Table, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadError(table, path string, err error) error {
	return &LoadError{Table: table, Path: path, Err: err}
}
