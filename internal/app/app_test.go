// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/artifacts"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/recommend"
)

const moviesJSON = `[
	{"row_index": 0, "id": 19995, "title": "Avatar"},
	{"row_index": 1, "id": 285, "title": "Pirates of the Caribbean: At World's End"},
	{"row_index": 2, "id": 206647, "title": "Spectre"},
	{"row_index": 3, "id": 49026, "title": "The Dark Knight Rises"}
]`

const similarityJSON = `{"0": [0, 3, 1, 2], "3": [3, 0]}`

// tmdbServer serves poster paths for every id except 285, which has none.
func tmdbServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/movie/")
		w.Header().Set("Content-Type", "application/json")
		if id == "285" {
			fmt.Fprintf(w, `{"id": 285, "poster_path": null}`)
			return
		}
		fmt.Fprintf(w, `{"id": %s, "poster_path": "/%s.jpg"}`, id, id)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, tmdbURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	moviesPath := filepath.Join(dir, "movies.json")
	simPath := filepath.Join(dir, "similarity.json")
	if err := os.WriteFile(moviesPath, []byte(moviesJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(simPath, []byte(similarityJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8501, Timeout: 30 * time.Second},
		TMDB: config.TMDBConfig{
			APIKey:       "test-key",
			BaseURL:      tmdbURL,
			ImageBaseURL: "https://image.tmdb.org/t/p",
			Language:     "en-US",
			Timeout:      2 * time.Second,
		},
		Artifacts: config.ArtifactsConfig{Format: "json", MoviesPath: moviesPath, SimilarityPath: simPath},
		Recommend: config.RecommendConfig{MaxResults: 5, ProbeBudget: 10, Concurrency: 1, RequestTimeout: 10 * time.Second},
		Carousel:  config.CarouselConfig{Enabled: true, IDs: []int64{1632, 285, 155}},
		Breaker: config.BreakerConfig{
			Enabled: true, MaxRequests: 3, Interval: time.Minute, Timeout: time.Minute,
			MinRequests: 10, FailureRatio: 0.6,
		},
		Security: config.SecurityConfig{RateLimitDisabled: true},
	}
}

func TestNew_EndToEnd(t *testing.T) {
	srv := tmdbServer(t)
	cfg := testConfig(t, srv.URL)

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.Breaker == nil || a.Carousel == nil {
		t.Fatal("breaker and carousel should be wired when enabled")
	}

	result := a.Orchestrator.Recommend(context.Background(), "AVATAR")
	if result.Count != 2 {
		t.Fatalf("Count = %d, want 2 (285 has no poster)", result.Count)
	}
	if result.Items[0].PosterURL != "https://image.tmdb.org/t/p/w500/49026.jpg" {
		t.Errorf("first poster = %q", result.Items[0].PosterURL)
	}
	if result.Items[1].ExternalID != 206647 {
		t.Errorf("second id = %d, want 206647", result.Items[1].ExternalID)
	}

	snap := a.Carousel.Load(context.Background())
	if len(snap.Posters) != 2 || snap.Posters[0].ExternalID != 1632 || snap.Posters[1].ExternalID != 155 {
		t.Errorf("carousel posters = %+v", snap.Posters)
	}

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?title=the+dark+knight+rises", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body=%s)", rec.Code, rec.Body.String())
	}
	var env struct {
		Data recommend.Result `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.Count != 1 || env.Data.Items[0].ExternalID != 19995 {
		t.Errorf("result = %+v", env.Data)
	}

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("ready status = %d after carousel load, want 200", rec.Code)
	}
}

func TestNew_ArtifactFailureIsLoadError(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Artifacts.MoviesPath = filepath.Join(t.TempDir(), "missing.json")

	_, err := New(context.Background(), cfg)
	var loadErr *artifacts.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("New() error = %v, want *artifacts.LoadError", err)
	}
}

func TestNew_OptionalComponents(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Breaker.Enabled = false
	cfg.Carousel.Enabled = false

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.Breaker != nil || a.Carousel != nil {
		t.Error("disabled components should be nil")
	}
	if srv := a.HTTPServer(); srv.Addr != "127.0.0.1:8501" {
		t.Errorf("Addr = %q", srv.Addr)
	}
}
