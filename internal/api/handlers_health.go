// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status          string  `json:"status"` // healthy, degraded
	Version         string  `json:"version"`
	ArtifactsLoaded bool    `json:"artifacts_loaded"`
	Movies          int     `json:"movies"`
	CarouselEnabled bool    `json:"carousel_enabled"`
	CarouselLoaded  bool    `json:"carousel_loaded"`
	Uptime          float64 `json:"uptime_seconds"`
}

func (h *Handler) healthStatus() HealthStatus {
	status := HealthStatus{
		Status:          "healthy",
		Version:         Version,
		ArtifactsLoaded: h.artifactsLoaded(),
		CarouselEnabled: h.carousel != nil,
		CarouselLoaded:  h.carousel != nil && h.carouselReady(),
		Uptime:          time.Since(h.startTime).Seconds(),
	}
	if h.catalog != nil {
		status.Movies = h.catalog.Len()
	}
	if !status.ArtifactsLoaded || !h.carouselReady() {
		status.Status = "degraded"
	}
	return status
}

// Health handles health check requests
//
// @Summary Get service health
// @Description Returns artifact and carousel state plus uptime
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.healthStatus())
}

// HealthLive is the liveness probe. It succeeds whenever the process serves HTTP.
//
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse "Alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe. Ready means the artifacts are loaded
// and the carousel, when enabled, has completed its first load.
//
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Ready"
// @Failure 503 {object} APIResponse{data=HealthStatus} "Not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := h.healthStatus()
	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	NewResponseWriter(w, r).SuccessWithStatus(code, status)
}
