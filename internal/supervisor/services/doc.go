// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package services adapts Marquee components to suture.Service.
//
// Every service implements Serve(ctx) error and String(). Serve blocks until
// ctx is canceled and returns ctx.Err() on a clean stop, so suture does not
// restart a service that was asked to shut down.
//
//	tree.AddDataService(services.NewCarouselService(carousel, 0))
//	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
package services
