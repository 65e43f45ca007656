// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package artifacts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/similarity"
)

// movieRecord is one element of movies.json. RowIndex defaults to the
// element's position when omitted. The catalog is ordered by RowIndex, the
// same order the SQLite loader reads, so "first row wins" for duplicate
// titles means the lowest row index in both formats.
type movieRecord struct {
	RowIndex *int   `json:"row_index"`
	ID       int64  `json:"id"`
	Title    string `json:"title"`
}

// LoadJSON reads the catalog from moviesPath and the similarity table from simPath.
func LoadJSON(moviesPath, simPath string) (*Artifacts, error) {
	movies, entries, err := readJSONPair(moviesPath, simPath)
	if err != nil {
		return nil, err
	}
	return assemble(movies, entries, moviesPath, simPath)
}

func readJSONPair(moviesPath, simPath string) ([]catalog.Movie, map[int]similarity.Entry, error) {
	moviesData, err := os.ReadFile(moviesPath)
	if err != nil {
		return nil, nil, loadError(TableMovies, moviesPath, err)
	}
	movies, err := decodeMovies(moviesData)
	if err != nil {
		return nil, nil, loadError(TableMovies, moviesPath, err)
	}

	simData, err := os.ReadFile(simPath)
	if err != nil {
		return nil, nil, loadError(TableSimilarity, simPath, err)
	}
	entries, err := decodeSimilarity(simData)
	if err != nil {
		return nil, nil, loadError(TableSimilarity, simPath, err)
	}
	return movies, entries, nil
}

func decodeMovies(data []byte) ([]catalog.Movie, error) {
	var records []movieRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("no movies in artifact")
	}

	movies := make([]catalog.Movie, len(records))
	for i, r := range records {
		row := i
		if r.RowIndex != nil {
			row = *r.RowIndex
		}
		movies[i] = catalog.Movie{RowIndex: row, ExternalID: r.ID, Title: r.Title}
	}
	sort.SliceStable(movies, func(i, j int) bool { return movies[i].RowIndex < movies[j].RowIndex })
	return movies, nil
}

// decodeSimilarity accepts, per row, either a ranked array of rows or an
// array of {"row","score"} objects.
func decodeSimilarity(data []byte) (map[int]similarity.Entry, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode similarity: %w", err)
	}

	entries := make(map[int]similarity.Entry, len(raw))
	for key, value := range raw {
		row, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("similarity key %q is not a row index: %w", key, err)
		}
		entry, err := decodeEntry(value)
		if err != nil {
			return nil, fmt.Errorf("similarity row %d: %w", row, err)
		}
		entries[row] = entry
	}
	return entries, nil
}

func decodeEntry(value json.RawMessage) (similarity.Entry, error) {
	trimmed := bytes.TrimSpace(value)
	if bytes.Equal(trimmed, []byte("null")) {
		return similarity.RankedEntry(), nil
	}

	var ranked []int
	if err := json.Unmarshal(trimmed, &ranked); err == nil {
		return similarity.RankedEntry(ranked...), nil
	}

	var scored []similarity.Candidate
	if err := json.Unmarshal(trimmed, &scored); err != nil {
		return similarity.Entry{}, fmt.Errorf("expected an array of rows or of {row, score}: %w", err)
	}
	return similarity.ScoredEntry(scored...), nil
}
