// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTitlesCommand(ctx *commandContext) *cobra.Command {
	var prefix string
	var limit int

	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List catalog titles, or autocomplete a prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			cat := a.Artifacts.Catalog

			if prefix == "" {
				titles := cat.Titles()
				if limit > 0 && len(titles) > limit {
					titles = titles[:limit]
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, titles)
				}
				for _, title := range titles {
					fmt.Fprintln(cmd.OutOrStdout(), title)
				}
				return nil
			}

			suggestions := cat.Autocomplete(prefix, limit)
			if ctx.jsonOutput() {
				return writeJSON(cmd, suggestions)
			}
			if len(suggestions) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No titles start with %q\n", prefix)
				return nil
			}
			rows := make([][]string, 0, len(suggestions))
			for _, s := range suggestions {
				rows = append(rows, []string{s.Title, strconv.Itoa(s.RowIndex)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Title", "Row"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Only titles starting with this prefix")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of titles (0 = all, or 10 with --prefix)")
	return cmd
}
