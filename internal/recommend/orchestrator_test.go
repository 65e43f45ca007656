// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/notice"
	"github.com/tomtom215/marquee/internal/poster"
	"github.com/tomtom215/marquee/internal/similarity"
	"github.com/tomtom215/marquee/internal/tmdb"
)

// avatarRanking is the precomputed ranking for row 10.
var avatarRanking = []int{42, 7, 103, 9, 55, 61, 2, 88, 14, 30}

// externalID derives a TMDB id from a row index.
func externalID(row int) int64 { return int64(row)*100 + 1 }

func testCatalog(t *testing.T, rows ...int) *catalog.Catalog {
	t.Helper()
	movies := []catalog.Movie{{RowIndex: 10, ExternalID: 19995, Title: "Avatar"}}
	for _, r := range rows {
		movies = append(movies, catalog.Movie{RowIndex: r, ExternalID: externalID(r), Title: fmt.Sprintf("Movie %d", r)})
	}
	cat, err := catalog.New(movies)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return cat
}

func avatarTable() *similarity.Table {
	return similarity.NewTable(map[int]similarity.Entry{
		10: similarity.RankedEntry(avatarRanking...),
	})
}

// fetcherFunc adapts a function to tmdb.MovieFetcher.
type fetcherFunc func(ctx context.Context, id int64) (*tmdb.MovieDetails, error)

func (f fetcherFunc) GetMovieDetails(ctx context.Context, id int64) (*tmdb.MovieDetails, error) {
	return f(ctx, id)
}

// scenarioFetcher serves a poster for every id except row 7 (times out) and
// row 9 (HTTP 503).
func scenarioFetcher(calls *atomic.Int32) tmdb.MovieFetcher {
	return fetcherFunc(func(ctx context.Context, id int64) (*tmdb.MovieDetails, error) {
		calls.Add(1)
		switch id {
		case externalID(7):
			<-ctx.Done()
			return nil, fmt.Errorf("execute request: %w", ctx.Err())
		case externalID(9):
			return nil, &tmdb.StatusError{StatusCode: http.StatusServiceUnavailable}
		}
		path := fmt.Sprintf("/%d.jpg", id)
		return &tmdb.MovieDetails{ID: id, PosterPath: &path}, nil
	})
}

func newOrchestrator(t *testing.T, cat *catalog.Catalog, table *similarity.Table, r PosterResolver, cfg *Config) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(cat, table, r, cfg)
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}
	return o
}

func rowsOf(items []Item) []int {
	rows := make([]int, len(items))
	for i, it := range items {
		rows[i] = it.RowIndex
	}
	return rows
}

func TestRecommend_AvatarScenario(t *testing.T) {
	t.Parallel()

	for _, concurrency := range []int{1, 3, 10} {
		var calls atomic.Int32
		resolver := poster.New(scenarioFetcher(&calls), poster.WithTimeout(20*time.Millisecond))
		cfg := DefaultConfig()
		cfg.Concurrency = concurrency
		o := newOrchestrator(t, testCatalog(t, avatarRanking...), avatarTable(), resolver, cfg)

		ctx, col := notice.WithCollector(context.Background())
		result := o.Recommend(ctx, "avatar ")

		want := []int{42, 103, 55, 61, 2}
		if got := rowsOf(result.Items); !reflect.DeepEqual(got, want) {
			t.Errorf("concurrency=%d: expected rows %v, got %v", concurrency, want, got)
		}
		if result.Count != 5 || result.NotFound {
			t.Errorf("concurrency=%d: unexpected result %+v", concurrency, result)
		}
		if int(calls.Load()) != result.Probed || result.Probed > cfg.ProbeBudget {
			t.Errorf("concurrency=%d: probed %d, fetcher calls %d", concurrency, result.Probed, calls.Load())
		}
		if concurrency == 1 && result.Probed != 7 {
			t.Errorf("expected 7 sequential probes, got %d", result.Probed)
		}

		if got := result.Items[0].PosterURL; got != "https://image.tmdb.org/t/p/w500/4201.jpg" {
			t.Errorf("concurrency=%d: unexpected poster url %q", concurrency, got)
		}
		if !col.Has(notice.CodePosterTimeout) || !col.Has(notice.CodePosterNetwork) {
			t.Errorf("concurrency=%d: expected timeout and network warnings, got %+v", concurrency, col.Notices())
		}
		if !reflect.DeepEqual(result.Notices, col.Notices()) {
			t.Errorf("concurrency=%d: result notices differ from collector", concurrency)
		}

		last := result.Notices[len(result.Notices)-1]
		if last.Code != notice.CodeResultCount || last.Message != "Found 5 recommendations for 'avatar '." {
			t.Errorf("concurrency=%d: unexpected final notice %+v", concurrency, last)
		}
	}
}

func TestRecommend_NotFound(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	o := newOrchestrator(t, testCatalog(t, avatarRanking...), avatarTable(), poster.New(scenarioFetcher(&calls)), nil)

	ctx, col := notice.WithCollector(context.Background())
	result := o.Recommend(ctx, "Nonexistent Movie 9999")

	if !result.NotFound {
		t.Error("expected NotFound")
	}
	if result.Items == nil || len(result.Items) != 0 || result.Count != 0 {
		t.Errorf("expected empty non-nil items, got %+v", result.Items)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no poster lookups, got %d", calls.Load())
	}

	notices := col.Notices()
	if len(notices) != 1 {
		t.Fatalf("expected 1 notice, got %+v", notices)
	}
	if notices[0].Level != notice.LevelError || notices[0].Code != notice.CodeNotFound || notices[0].Message != MessageNotFound {
		t.Errorf("unexpected notice %+v", notices[0])
	}
}

func TestRecommend_AllLookupsTimeOut(t *testing.T) {
	t.Parallel()

	hang := fetcherFunc(func(ctx context.Context, _ int64) (*tmdb.MovieDetails, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	for _, concurrency := range []int{1, 5} {
		cfg := DefaultConfig()
		cfg.Concurrency = concurrency
		resolver := poster.New(hang, poster.WithTimeout(10*time.Millisecond))
		o := newOrchestrator(t, testCatalog(t, avatarRanking...), avatarTable(), resolver, cfg)

		ctx, col := notice.WithCollector(context.Background())
		result := o.Recommend(ctx, "Avatar")

		if len(result.Items) != 0 || result.NotFound {
			t.Errorf("concurrency=%d: expected empty result, got %+v", concurrency, result)
		}
		if result.Probed != 10 {
			t.Errorf("concurrency=%d: expected the full probe budget to be spent, got %d", concurrency, result.Probed)
		}

		timeouts := 0
		for _, n := range col.Notices() {
			if n.Code == notice.CodePosterTimeout {
				timeouts++
			}
		}
		if timeouts != 10 {
			t.Errorf("concurrency=%d: expected 10 timeout warnings, got %d", concurrency, timeouts)
		}
		if !col.Has(notice.CodeNoResults) {
			t.Errorf("concurrency=%d: expected no-results warning", concurrency)
		}
	}
}

// stubResolver succeeds for every id not in fail, optionally after a random delay.
type stubResolver struct {
	fail     map[int64]bool
	maxDelay time.Duration

	mu    sync.Mutex
	calls []int64
}

func (s *stubResolver) Resolve(ctx context.Context, id int64) (string, bool) {
	s.mu.Lock()
	s.calls = append(s.calls, id)
	s.mu.Unlock()

	if s.maxDelay > 0 {
		select {
		case <-time.After(rand.N(s.maxDelay)):
		case <-ctx.Done():
			return "", false
		}
	}
	if s.fail[id] {
		return "", false
	}
	return fmt.Sprintf("https://cdn.example/w500/%d.jpg", id), true
}

func (s *stubResolver) called() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.calls...)
}

func TestRecommend_StopsAtMaxResults(t *testing.T) {
	t.Parallel()

	r := &stubResolver{}
	o := newOrchestrator(t, testCatalog(t, avatarRanking...), avatarTable(), r, nil)

	result := o.Recommend(context.Background(), "Avatar")
	if got := rowsOf(result.Items); !reflect.DeepEqual(got, []int{42, 7, 103, 9, 55}) {
		t.Errorf("expected first five ranked rows, got %v", got)
	}
	if result.Probed != 5 || len(r.called()) != 5 {
		t.Errorf("expected 5 probes, got %d (calls %d)", result.Probed, len(r.called()))
	}
}

func TestRecommend_ProbeBudget(t *testing.T) {
	t.Parallel()

	// Eleven candidates; only the 10th and 11th have posters.
	ranking := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 30, 31}
	fail := map[int64]bool{}
	for _, row := range ranking[:9] {
		fail[externalID(row)] = true
	}

	for _, concurrency := range []int{1, 4} {
		r := &stubResolver{fail: fail}
		cfg := DefaultConfig()
		cfg.Concurrency = concurrency
		table := similarity.NewTable(map[int]similarity.Entry{10: similarity.RankedEntry(ranking...)})
		o := newOrchestrator(t, testCatalog(t, ranking...), table, r, cfg)

		result := o.Recommend(context.Background(), "Avatar")
		if got := rowsOf(result.Items); !reflect.DeepEqual(got, []int{30}) {
			t.Errorf("concurrency=%d: expected only row 30, got %v", concurrency, got)
		}
		if result.Probed != 10 {
			t.Errorf("concurrency=%d: expected 10 probes, got %d", concurrency, result.Probed)
		}
		for _, id := range r.called() {
			if id == externalID(31) {
				t.Errorf("concurrency=%d: candidate beyond the probe budget was looked up", concurrency)
			}
		}
	}
}

func TestRecommend_SkipsUnknownCandidatesWithoutProbing(t *testing.T) {
	t.Parallel()

	r := &stubResolver{}
	table := similarity.NewTable(map[int]similarity.Entry{10: similarity.RankedEntry(999, 42, 10)})
	o := newOrchestrator(t, testCatalog(t, 42), table, r, nil)

	result := o.Recommend(context.Background(), "AVATAR")
	if got := rowsOf(result.Items); !reflect.DeepEqual(got, []int{42}) {
		t.Errorf("expected [42], got %v", got)
	}
	if calls := r.called(); len(calls) != 1 {
		t.Errorf("expected a single lookup, got %v", calls)
	}
}

func TestRecommend_NoSimilarityEntry(t *testing.T) {
	t.Parallel()

	r := &stubResolver{}
	o := newOrchestrator(t, testCatalog(t, 42), similarity.NewTable(nil), r, nil)

	ctx, col := notice.WithCollector(context.Background())
	result := o.Recommend(ctx, "Avatar")
	if len(result.Items) != 0 || result.NotFound {
		t.Errorf("expected empty found result, got %+v", result)
	}
	if len(r.called()) != 0 {
		t.Error("expected no lookups")
	}
	if !col.Has(notice.CodeNoResults) {
		t.Error("expected no-results warning")
	}
}

func TestRecommend_FanOutPreservesRankOrder(t *testing.T) {
	t.Parallel()

	ranking := make([]int, 0, 40)
	fail := map[int64]bool{}
	for row := 100; row < 140; row++ {
		ranking = append(ranking, row)
		if row%3 == 0 {
			fail[externalID(row)] = true
		}
	}
	table := similarity.NewTable(map[int]similarity.Entry{10: similarity.RankedEntry(ranking...)})
	cat := testCatalog(t, ranking...)

	seq := newOrchestrator(t, cat, table, &stubResolver{fail: fail}, DefaultConfig())
	want := seq.Recommend(context.Background(), "Avatar")

	for _, concurrency := range []int{2, 3, 7, 10} {
		cfg := &Config{MaxResults: 5, ProbeBudget: 10, Concurrency: concurrency}
		for run := 0; run < 5; run++ {
			r := &stubResolver{fail: fail, maxDelay: 5 * time.Millisecond}
			o := newOrchestrator(t, cat, table, r, cfg)
			got := o.Recommend(context.Background(), "Avatar")

			if !reflect.DeepEqual(got.Items, want.Items) {
				t.Errorf("concurrency=%d run=%d: expected %v, got %v", concurrency, run, rowsOf(want.Items), rowsOf(got.Items))
			}
			if n := len(r.called()); n > cfg.ProbeBudget {
				t.Errorf("concurrency=%d run=%d: %d lookups exceed the probe budget", concurrency, run, n)
			}
		}
	}
}

func TestRecommend_Idempotent(t *testing.T) {
	t.Parallel()

	o := newOrchestrator(t, testCatalog(t, avatarRanking...), avatarTable(), &stubResolver{}, nil)

	first := o.Recommend(context.Background(), "Avatar")
	for i := 0; i < 3; i++ {
		again := o.Recommend(context.Background(), "Avatar")
		if !reflect.DeepEqual(again.Items, first.Items) {
			t.Fatalf("call %d returned %v, first call returned %v", i, rowsOf(again.Items), rowsOf(first.Items))
		}
	}
}

func TestRecommend_ResultBounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	ranking := make([]int, 0, 30)
	for row := 200; row < 230; row++ {
		ranking = append(ranking, row)
	}
	cat := testCatalog(t, ranking...)
	table := similarity.NewTable(map[int]similarity.Entry{10: similarity.RankedEntry(ranking...)})

	for trial := 0; trial < 50; trial++ {
		fail := map[int64]bool{}
		for _, row := range ranking {
			if rng.IntN(2) == 0 {
				fail[externalID(row)] = true
			}
		}
		o := newOrchestrator(t, cat, table, &stubResolver{fail: fail}, nil)
		result := o.Recommend(context.Background(), "Avatar")

		if len(result.Items) > 5 {
			t.Fatalf("trial %d: %d items exceed the maximum", trial, len(result.Items))
		}
		allFailed := true
		for _, row := range ranking[:10] {
			if !fail[externalID(row)] {
				allFailed = false
			}
		}
		if (len(result.Items) == 0) != allFailed {
			t.Fatalf("trial %d: empty=%v but allFailed=%v", trial, len(result.Items) == 0, allFailed)
		}
	}
}

func TestNewOrchestrator_Validation(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	table := similarity.NewTable(nil)
	r := &stubResolver{}

	if _, err := NewOrchestrator(nil, table, r, nil); err == nil {
		t.Error("expected error for nil catalog")
	}
	if _, err := NewOrchestrator(cat, table, nil, nil); err == nil {
		t.Error("expected error for nil resolver")
	}
	if _, err := NewOrchestrator(cat, table, r, &Config{MaxResults: 5, ProbeBudget: 3, Concurrency: 1}); err == nil {
		t.Error("expected error for probe budget below max results")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", *DefaultConfig(), false},
		{"fan-out", Config{MaxResults: 5, ProbeBudget: 10, Concurrency: 10}, false},
		{"zero results", Config{MaxResults: 0, ProbeBudget: 10, Concurrency: 1}, true},
		{"budget too small", Config{MaxResults: 5, ProbeBudget: 4, Concurrency: 1}, true},
		{"zero concurrency", Config{MaxResults: 5, ProbeBudget: 10, Concurrency: 0}, true},
		{"concurrency above budget", Config{MaxResults: 5, ProbeBudget: 10, Concurrency: 11}, true},
	}

	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
