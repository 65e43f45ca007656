// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/logging"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevel string
	var jsonOutput bool

	ctx := newCommandContext(&configFlag, &jsonOutput)

	rootCmd := &cobra.Command{
		Use:           "marquee",
		Short:         "Movie recommendations with poster resolution",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.Init(logging.CLIConfig(logLevel, cmd.ErrOrStderr()))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Write JSON instead of tables")

	rootCmd.AddCommand(newRecommendCommand(ctx))
	rootCmd.AddCommand(newTitlesCommand(ctx))
	rootCmd.AddCommand(newCarouselCommand(ctx))
	rootCmd.AddCommand(newArtifactsCommand(ctx))

	return rootCmd
}
