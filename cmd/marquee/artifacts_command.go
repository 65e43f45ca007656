// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/artifacts"
)

func newArtifactsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "Build and inspect artifact databases",
	}
	cmd.AddCommand(newArtifactsImportCommand(ctx))
	cmd.AddCommand(newArtifactsInspectCommand(ctx))
	return cmd
}

func newArtifactsImportCommand(ctx *commandContext) *cobra.Command {
	var opts artifacts.ImportOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert a movies/similarity JSON pair into an SQLite artifact database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := artifacts.Import(cmd.Context(), opts)
			if err != nil {
				if errors.Is(err, artifacts.ErrLocked) {
					return fmt.Errorf("%w (lock file %s.lock)", err, opts.OutPath)
				}
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, stats)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.OutPath)
			writeStats(cmd, stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.MoviesPath, "movies", "", "Movies JSON file")
	cmd.Flags().StringVar(&opts.SimilarityPath, "similarity", "", "Similarity JSON file")
	cmd.Flags().StringVar(&opts.OutPath, "out", "", "Output SQLite database")
	cmd.Flags().DurationVar(&opts.LockTimeout, "lock-timeout", 30*time.Second, "How long to wait for a concurrent import")
	_ = cmd.MarkFlagRequired("movies")
	_ = cmd.MarkFlagRequired("similarity")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newArtifactsInspectCommand(ctx *commandContext) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print row and similarity counts of an artifact database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return fmt.Errorf("no --path given and config unavailable: %w", err)
				}
				path = cfg.Artifacts.Path
			}
			stats, err := artifacts.Inspect(cmd.Context(), path)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, stats)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			writeStats(cmd, stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "SQLite artifact database (default: artifacts.path from config)")
	return cmd
}

func writeStats(cmd *cobra.Command, stats artifacts.Stats) {
	rows := [][]string{
		{"Schema version", strconv.Itoa(stats.SchemaVersion)},
		{"Movies", strconv.Itoa(stats.Movies)},
		{"Similarity rows", strconv.Itoa(stats.SimilarityRows)},
		{"Candidates", strconv.Itoa(stats.Candidates)},
		{"Ranked rows", strconv.Itoa(stats.RankedRows)},
		{"Scored rows", strconv.Itoa(stats.ScoredRows)},
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Field", "Value"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))
}
