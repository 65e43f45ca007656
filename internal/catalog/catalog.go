// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package catalog holds the immutable movie catalog and resolves user-entered
// titles to catalog rows.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// ErrNotFound is returned when no catalog title matches the input.
var ErrNotFound = errors.New("movie not found in catalog")

// Movie is one catalog row.
type Movie struct {
	RowIndex   int    `json:"row_index"`
	ExternalID int64  `json:"external_id"`
	Title      string `json:"title"`
}

// Catalog is an ordered, read-only collection of movies.
type Catalog struct {
	movies []Movie
	byRow  map[int]int    // row index -> position in movies
	byKey  map[string]int // normalized title -> first row index
	titles []string
	index  *TitleIndex
}

// folder is stateless and safe for concurrent use.
var folder = cases.Fold()

// Normalize trims surrounding whitespace and case-folds s.
func Normalize(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// New builds a catalog from movies in row order. Row indices must be unique.
// When several rows share a normalized title, the first one in the slice wins.
func New(movies []Movie) (*Catalog, error) {
	c := &Catalog{
		movies: make([]Movie, len(movies)),
		byRow:  make(map[int]int, len(movies)),
		byKey:  make(map[string]int, len(movies)),
		index:  NewTitleIndex(),
	}
	copy(c.movies, movies)

	unique := make(map[string]struct{}, len(movies))
	for pos, m := range c.movies {
		if _, dup := c.byRow[m.RowIndex]; dup {
			return nil, fmt.Errorf("duplicate row index %d", m.RowIndex)
		}
		c.byRow[m.RowIndex] = pos

		key := Normalize(m.Title)
		if _, seen := c.byKey[key]; !seen {
			c.byKey[key] = m.RowIndex
		}

		display := strings.TrimSpace(m.Title)
		if _, seen := unique[display]; !seen {
			unique[display] = struct{}{}
			c.titles = append(c.titles, display)
		}
		c.index.Insert(display, m.RowIndex)
	}
	sort.Strings(c.titles)

	return c, nil
}

// Resolve returns the row index of the first movie whose normalized title
// equals the normalized input, or ErrNotFound.
func (c *Catalog) Resolve(input string) (int, error) {
	row, ok := c.byKey[Normalize(input)]
	if !ok {
		return 0, ErrNotFound
	}
	return row, nil
}

// Movie returns the movie stored at row.
func (c *Catalog) Movie(row int) (Movie, bool) {
	pos, ok := c.byRow[row]
	if !ok {
		return Movie{}, false
	}
	return c.movies[pos], true
}

// Len returns the number of rows.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Titles returns the sorted set of unique trimmed titles for the selector.
// The returned slice must not be modified.
func (c *Catalog) Titles() []string {
	return c.titles
}

// Autocomplete returns up to limit titles whose normalized form starts with
// the normalized prefix.
func (c *Catalog) Autocomplete(prefix string, limit int) []Suggestion {
	return c.index.Search(prefix, limit)
}
