// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package notice carries user-visible messages alongside a request.
//
// Poster lookups and the recommendation pipeline report problems to the user
// without failing the request. Those messages travel through a Collector
// attached to the request context rather than through return values:
//
//	ctx, col := notice.WithCollector(ctx)
//	items := orchestrator.Recommend(ctx, title)
//	for _, n := range col.Notices() { ... }
//
// Emitting into a context without a collector is a no-op.
package notice

import (
	"context"
	"fmt"
	"sync"
)

// Level is the severity of a notice as shown to the user.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Code identifies the kind of notice.
type Code string

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodePosterTimeout     Code = "POSTER_TIMEOUT"
	CodePosterNetwork     Code = "POSTER_NETWORK_ERROR"
	CodePosterError       Code = "POSTER_ERROR"
	CodePosterUnavailable Code = "POSTER_UNAVAILABLE"
	CodePosterMissing     Code = "POSTER_MISSING"
	CodeResultCount       Code = "RESULT_COUNT"
	CodeNoResults         Code = "NO_RESULTS"
)

// Notice is one user-visible message.
type Notice struct {
	Level      Level  `json:"level"`
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	ExternalID int64  `json:"external_id,omitempty"`
}

// Collector accumulates notices for a single request. Safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	notices []Notice
}

// Add appends n.
func (c *Collector) Add(n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, n)
}

// Notices returns a copy of the collected notices in emission order.
func (c *Collector) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// Has reports whether a notice with code was emitted.
func (c *Collector) Has(code Code) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.notices {
		if n.Code == code {
			return true
		}
	}
	return false
}

type collectorKey struct{}

// WithCollector returns a context carrying a fresh Collector.
func WithCollector(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}
	return context.WithValue(ctx, collectorKey{}, c), c
}

// FromContext returns the collector in ctx, or nil.
func FromContext(ctx context.Context) *Collector {
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

// Emit adds n to the collector in ctx, if any.
func Emit(ctx context.Context, n Notice) {
	if c := FromContext(ctx); c != nil {
		c.Add(n)
	}
}

// Info emits an info notice.
func Info(ctx context.Context, code Code, format string, args ...any) {
	Emit(ctx, Notice{Level: LevelInfo, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Warn emits a warning about a single external id.
func Warn(ctx context.Context, code Code, externalID int64, format string, args ...any) {
	Emit(ctx, Notice{Level: LevelWarning, Code: code, Message: fmt.Sprintf(format, args...), ExternalID: externalID})
}

// Error emits an error notice.
func Error(ctx context.Context, code Code, format string, args ...any) {
	Emit(ctx, Notice{Level: LevelError, Code: code, Message: fmt.Sprintf(format, args...)})
}
