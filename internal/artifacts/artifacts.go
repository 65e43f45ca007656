// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package artifacts

import (
	"context"
	"fmt"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/similarity"
)

// Supported values of artifacts.format.
const (
	FormatSQLite = "sqlite"
	FormatJSON   = "json"
)

// Artifacts is the loaded, read-only data the recommender works from.
type Artifacts struct {
	Catalog    *catalog.Catalog
	Similarity *similarity.Table
}

// Stats summarizes an artifact set.
type Stats struct {
	SchemaVersion  int `json:"schema_version"`
	Movies         int `json:"movies"`
	SimilarityRows int `json:"similarity_rows"`
	Candidates     int `json:"candidates"`
	RankedRows     int `json:"ranked_rows"`
	ScoredRows     int `json:"scored_rows"`
}

// Load reads the artifacts described by cfg.
func Load(ctx context.Context, cfg config.ArtifactsConfig) (*Artifacts, error) {
	var (
		a   *Artifacts
		err error
	)
	switch cfg.Format {
	case FormatSQLite, "":
		a, err = LoadSQLite(ctx, cfg.Path)
	case FormatJSON:
		a, err = LoadJSON(cfg.MoviesPath, cfg.SimilarityPath)
	default:
		return nil, loadError(TableMovies, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, cfg.Format))
	}
	if err != nil {
		return nil, err
	}

	metrics.RecordArtifactRows(a.Catalog.Len(), a.Similarity.Len())
	logging.Info().
		Str("format", cfg.Format).
		Int("movies", a.Catalog.Len()).
		Int("similarity_rows", a.Similarity.Len()).
		Msg("Artifacts loaded")
	return a, nil
}

// assemble builds the catalog and checks that every similarity row and
// candidate refers to a catalog row.
func assemble(movies []catalog.Movie, entries map[int]similarity.Entry, moviesPath, simPath string) (*Artifacts, error) {
	cat, err := catalog.New(movies)
	if err != nil {
		return nil, loadError(TableMovies, moviesPath, err)
	}

	for row, e := range entries {
		if _, ok := cat.Movie(row); !ok {
			return nil, loadError(TableSimilarity, simPath, fmt.Errorf("%w: entry for row %d", ErrUnknownRow, row))
		}
		for _, c := range e.Candidates {
			if _, ok := cat.Movie(c.Row); !ok {
				return nil, loadError(TableSimilarity, simPath,
					fmt.Errorf("%w: row %d lists candidate %d", ErrUnknownRow, row, c.Row))
			}
		}
	}

	return &Artifacts{Catalog: cat, Similarity: similarity.NewTable(entries)}, nil
}

func statsFor(movies []catalog.Movie, entries map[int]similarity.Entry) Stats {
	s := Stats{SchemaVersion: schemaVersion, Movies: len(movies), SimilarityRows: len(entries)}
	for _, e := range entries {
		s.Candidates += len(e.Candidates)
		if e.Ranked {
			s.RankedRows++
		} else {
			s.ScoredRows++
		}
	}
	return s
}
