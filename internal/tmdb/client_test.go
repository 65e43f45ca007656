// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	if _, err := New("  ", "https://api.themoviedb.org/3", "en-US"); err == nil {
		t.Error("expected error for empty api key")
	}
	if _, err := New("key", "", "en-US"); err == nil {
		t.Error("expected error for empty base url")
	}
	c, err := New("key", "https://api.themoviedb.org/3/", "en-US")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.baseURL != "https://api.themoviedb.org/3" {
		t.Errorf("expected trailing slash trimmed, got %q", c.baseURL)
	}
	if c.httpClient.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultTimeout, c.httpClient.Timeout)
	}
}

func TestGetMovieDetails(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		gotLang = r.URL.Query().Get("language")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 19995, "title": "Avatar", "poster_path": "/kyeqWdyUXW608qlYkRqosgbbJyK.jpg"}`))
	}))
	defer srv.Close()

	c, err := New("secret", srv.URL, "en-US")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	details, err := c.GetMovieDetails(context.Background(), 19995)
	if err != nil {
		t.Fatalf("GetMovieDetails() error = %v", err)
	}

	if gotPath != "/movie/19995" {
		t.Errorf("expected path /movie/19995, got %s", gotPath)
	}
	if gotKey != "secret" || gotLang != "en-US" {
		t.Errorf("unexpected query: api_key=%q language=%q", gotKey, gotLang)
	}
	if details.PosterPath == nil || *details.PosterPath != "/kyeqWdyUXW608qlYkRqosgbbJyK.jpg" {
		t.Errorf("unexpected poster path: %v", details.PosterPath)
	}
}

func TestGetMovieDetails_NullPoster(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": 1, "poster_path": null}`))
	}))
	defer srv.Close()

	c, _ := New("k", srv.URL, "en-US")
	details, err := c.GetMovieDetails(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetMovieDetails() error = %v", err)
	}
	if details.PosterPath != nil {
		t.Errorf("expected nil poster path, got %q", *details.PosterPath)
	}
}

func TestGetMovieDetails_StatusRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status  int
		wantErr bool
	}{
		{http.StatusOK, false},
		{http.StatusNonAuthoritativeInfo, false},
		{http.StatusMultipleChoices, true},
		{http.StatusTooManyRequests, true},
		{http.StatusServiceUnavailable, true},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"id": 1, "poster_path": "/p.jpg"}`))
			}))
			defer srv.Close()

			c, _ := New("k", srv.URL, "en-US")
			_, err := c.GetMovieDetails(context.Background(), 1)
			var statusErr *StatusError
			if got := errors.As(err, &statusErr); got != tt.wantErr {
				t.Errorf("status %d: StatusError = %v, want %v (err=%v)", tt.status, got, tt.wantErr, err)
			}
		})
	}
}

func TestGetMovieDetails_Errors(t *testing.T) {
	t.Parallel()

	t.Run("status", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"status_code":34}`, http.StatusNotFound)
		}))
		defer srv.Close()

		c, _ := New("k", srv.URL, "en-US")
		_, err := c.GetMovieDetails(context.Background(), 1)
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected *StatusError, got %v", err)
		}
		if statusErr.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", statusErr.StatusCode)
		}
		if !strings.Contains(err.Error(), "returned 404") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("decode", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>not json</html>`))
		}))
		defer srv.Close()

		c, _ := New("k", srv.URL, "en-US")
		_, err := c.GetMovieDetails(context.Background(), 1)
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("expected *DecodeError, got %v", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		c, _ := New("k", srv.URL, "en-US", WithTimeout(50*time.Millisecond))
		_, err := c.GetMovieDetails(context.Background(), 1)
		if err == nil {
			t.Fatal("expected timeout error")
		}
		var timeoutErr interface{ Timeout() bool }
		if !errors.As(err, &timeoutErr) || !timeoutErr.Timeout() {
			t.Errorf("expected a timeout error, got %v", err)
		}
	})

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()

		c, _ := New("k", addr, "en-US")
		if _, err := c.GetMovieDetails(context.Background(), 1); err == nil {
			t.Fatal("expected connection error")
		}
	})
}

func TestGetMovieDetails_RateLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": 1, "poster_path": "/a.jpg"}`))
	}))
	defer srv.Close()

	// One token per hour: the second call cannot be served before the deadline.
	c, _ := New("k", srv.URL, "en-US", WithRateLimit(1.0/3600, 1))
	if _, err := c.GetMovieDetails(context.Background(), 1); err != nil {
		t.Fatalf("first call error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := c.GetMovieDetails(ctx, 1)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestWithRateLimit_Disabled(t *testing.T) {
	t.Parallel()

	c, _ := New("k", "http://example.invalid", "", WithRateLimit(0, 0))
	if c.limiter != nil {
		t.Error("expected limiter to be disabled")
	}
	c, _ = New("k", "http://example.invalid", "", WithRateLimit(10, 0))
	if c.limiter == nil || c.limiter.Burst() != 1 {
		t.Error("expected limiter with burst 1")
	}
}
