// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/notice"
	"github.com/tomtom215/marquee/internal/recommend"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <title>",
		Short: "Show up to five similar movies with posters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}

			title := strings.Join(args, " ")
			reqCtx, _ := notice.WithCollector(cmd.Context())
			if timeout := a.Config.Recommend.RequestTimeout; timeout > 0 {
				var cancel context.CancelFunc
				reqCtx, cancel = context.WithTimeout(reqCtx, timeout)
				defer cancel()
			}
			result := a.Orchestrator.Recommend(reqCtx, title)

			if ctx.jsonOutput() {
				return writeJSON(cmd, result)
			}
			writeRecommendations(cmd, result)
			return nil
		},
	}
}

func writeRecommendations(cmd *cobra.Command, result recommend.Result) {
	stdout := cmd.OutOrStdout()
	if len(result.Items) > 0 {
		rows := make([][]string, 0, len(result.Items))
		for i, item := range result.Items {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				item.Title,
				strconv.FormatInt(item.ExternalID, 10),
				item.PosterURL,
			})
		}
		fmt.Fprintln(stdout, renderTable(
			[]string{"#", "Title", "TMDB ID", "Poster"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
		))
	}
	writeNotices(stdout, result.Notices)
}
