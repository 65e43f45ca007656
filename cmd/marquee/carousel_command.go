// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/recommend"
)

func newCarouselCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "carousel",
		Short: "Resolve the landing carousel posters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}

			carousel := a.Carousel
			if carousel == nil {
				ids := a.Config.Carousel.IDs
				if len(ids) == 0 {
					ids = config.DefaultCarouselIDs
				}
				carousel = recommend.NewCarousel(ids, a.Resolver)
			}
			snap := carousel.Load(cmd.Context())

			if ctx.jsonOutput() {
				return writeJSON(cmd, snap)
			}
			stdout := cmd.OutOrStdout()
			rows := make([][]string, 0, len(snap.Posters))
			for _, p := range snap.Posters {
				rows = append(rows, []string{strconv.FormatInt(p.ExternalID, 10), p.URL})
			}
			fmt.Fprintln(stdout, renderTable(
				[]string{"TMDB ID", "Poster"},
				rows,
				[]columnAlignment{alignRight, alignLeft},
			))
			fmt.Fprintf(stdout, "%d of %d posters resolved\n", len(snap.Posters), len(carousel.IDs()))
			writeNotices(stdout, snap.Notices)
			return nil
		},
	}
}
