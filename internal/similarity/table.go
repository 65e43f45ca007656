// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package similarity ranks catalog rows by precomputed similarity.
//
// The table is built externally and loaded once. Each row holds either
// scored candidates, which Rank sorts by descending score, or a list that is
// already ranked best-first, which Rank returns as stored.
package similarity

import (
	"sort"
)

// Candidate is a scored neighbour of a row.
type Candidate struct {
	Row   int     `json:"row"`
	Score float64 `json:"score"`
}

// Entry is the stored neighbourhood of a single row.
type Entry struct {
	// Ranked is true when Candidates are already in best-first order and
	// their scores carry no meaning.
	Ranked     bool
	Candidates []Candidate
}

// Table maps a row index to its entry. It is read-only after construction.
type Table struct {
	entries map[int]Entry
}

// NewTable creates a table from entries. The map is copied.
func NewTable(entries map[int]Entry) *Table {
	t := &Table{entries: make(map[int]Entry, len(entries))}
	for row, e := range entries {
		cands := make([]Candidate, len(e.Candidates))
		copy(cands, e.Candidates)
		t.entries[row] = Entry{Ranked: e.Ranked, Candidates: cands}
	}
	return t
}

// RankedEntry builds an entry from a best-first list of rows.
func RankedEntry(rows ...int) Entry {
	cands := make([]Candidate, len(rows))
	for i, r := range rows {
		cands[i] = Candidate{Row: r}
	}
	return Entry{Ranked: true, Candidates: cands}
}

// ScoredEntry builds an entry from scored candidates in stored order.
func ScoredEntry(cands ...Candidate) Entry {
	return Entry{Candidates: cands}
}

// Len returns the number of rows with an entry.
func (t *Table) Len() int {
	return len(t.entries)
}

// Rows returns every row that has an entry, ascending.
func (t *Table) Rows() []int {
	rows := make([]int, 0, len(t.entries))
	for row := range t.entries {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}

// Entry returns the stored entry for row.
func (t *Table) Entry(row int) (Entry, bool) {
	e, ok := t.entries[row]
	return e, ok
}

// Rank returns candidate rows for row, best first, never including row
// itself. Scored entries are stable-sorted by descending score so ties keep
// stored order. A row without an entry yields an empty slice.
func (t *Table) Rank(row int) []int {
	e, ok := t.entries[row]
	if !ok {
		return []int{}
	}

	cands := make([]Candidate, len(e.Candidates))
	copy(cands, e.Candidates)
	if !e.Ranked {
		sort.SliceStable(cands, func(i, j int) bool {
			return cands[i].Score > cands[j].Score
		})
	}

	ranked := make([]int, 0, len(cands))
	for _, c := range cands {
		if c.Row == row {
			continue
		}
		ranked = append(ranked, c.Row)
	}
	return ranked
}
