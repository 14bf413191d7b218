// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli implements the edakit command-line interface.
//
// Each subcommand corresponds to one part of the exploratory-data-
// analysis workflow: listing and peeking at the built-in datasets,
// running transformation pipelines, rendering plots, pushing a dataset
// into a database and querying it lazily, and serving plots over HTTP.
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// travel through context.Context.
package cli

import (
	"os"
	"runtime"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version string displayed by --version, typically
// injected via ldflags at build time.
func SetVersion(v string) {
	version = v
}

// Execute runs the edakit CLI and returns an error if any command
// fails.
func Execute() error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   "edakit",
		Short: "edakit explores tabular data: transform, plot, query",
		Long: `edakit is a toolkit for exploratory data analysis. It ships small
example datasets and exposes the standard EDA loop: transform a table
with filter/arrange/mutate/select/group-by/summarize verbs, render it
as an SVG plot (histograms, scatterplots, boxplots, facets), or load it
into SQLite or DuckDB and run the same verbs as a lazily translated SQL
query.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			logger.Debug("starting", "version", version, "cores", runtime.NumCPU())
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")

	root.AddCommand(
		newDatasetsCmd(),
		newPeekCmd(),
		newTransformCmd(),
		newPlotCmd(),
		newDBCmd(),
		newServeCmd(),
	)

	return root.Execute()
}
