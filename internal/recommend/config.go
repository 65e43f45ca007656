// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"

	"github.com/tomtom215/marquee/internal/config"
)

// Config contains the limits of the recommendation pipeline.
type Config struct {
	// MaxResults is the number of accepted recommendations to stop at.
	MaxResults int `json:"max_results"`

	// ProbeBudget is the maximum number of poster lookups per request.
	ProbeBudget int `json:"probe_budget"`

	// Concurrency is the fan-out window size. One means sequential.
	Concurrency int `json:"concurrency"`
}

// DefaultConfig returns the canonical limits: accept 5 out of at most 10 probes, sequentially.
func DefaultConfig() *Config {
	return &Config{
		MaxResults:  5,
		ProbeBudget: 10,
		Concurrency: 1,
	}
}

// ConfigFrom converts the application configuration section.
func ConfigFrom(cfg config.RecommendConfig) *Config {
	return &Config{
		MaxResults:  cfg.MaxResults,
		ProbeBudget: cfg.ProbeBudget,
		Concurrency: cfg.Concurrency,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.ProbeBudget < c.MaxResults {
		return fmt.Errorf("probe_budget (%d) must be at least max_results (%d)", c.ProbeBudget, c.MaxResults)
	}
	if c.Concurrency < 1 || c.Concurrency > c.ProbeBudget {
		return fmt.Errorf("concurrency must be in [1, %d], got %d", c.ProbeBudget, c.Concurrency)
	}
	return nil
}
