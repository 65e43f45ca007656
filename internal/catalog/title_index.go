// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"sort"
	"strings"
	"sync"
	"unicode"
)

// DefaultSuggestionLimit is used when Search is called with limit <= 0.
const DefaultSuggestionLimit = 10

// Suggestion is one autocomplete match.
type Suggestion struct {
	Title    string `json:"title"`
	RowIndex int    `json:"row_index"`
	Count    int    `json:"-"` // rows sharing this normalized title
}

type titleNode struct {
	children map[rune]*titleNode
	isEnd    bool
	title    string
	row      int
	count    int
}

func newTitleNode() *titleNode {
	return &titleNode{children: make(map[rune]*titleNode)}
}

// TitleIndex is a thread-safe prefix tree over case-folded titles.
type TitleIndex struct {
	mu   sync.RWMutex
	root *titleNode
	size int
}

// NewTitleIndex creates an empty index.
func NewTitleIndex() *TitleIndex {
	return &TitleIndex{root: newTitleNode()}
}

// Insert adds title for row. Re-inserting a title that folds to an existing
// key keeps the first row and bumps the count.
func (t *TitleIndex) Insert(title string, row int) {
	key := Normalize(title)
	if key == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range key {
		next := node.children[ch]
		if next == nil {
			next = newTitleNode()
			node.children[ch] = next
		}
		node = next
	}

	if !node.isEnd {
		node.isEnd = true
		node.title = strings.TrimSpace(title)
		node.row = row
		t.size++
	}
	node.count++
}

// Size returns the number of distinct normalized titles.
func (t *TitleIndex) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Search returns titles starting with prefix, most duplicated first, then
// alphabetically. Leading whitespace in prefix is ignored; trailing
// whitespace narrows the match to word boundaries.
func (t *TitleIndex) Search(prefix string, limit int) []Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	key := folder.String(strings.TrimLeftFunc(prefix, unicode.IsSpace))
	if key == "" {
		return nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.root
	for _, ch := range key {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}

	var results []Suggestion
	collect(node, &results)

	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Title < results[j].Title
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func collect(node *titleNode, results *[]Suggestion) {
	if node.isEnd {
		*results = append(*results, Suggestion{Title: node.title, RowIndex: node.row, Count: node.count})
	}
	for _, child := range node.children {
		collect(child, results)
	}
}
