// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"edakit/vis"
)

func newPlotCmd() *cobra.Command {
	var (
		spec          vis.Spec
		out           string
		open          bool
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "plot <kind> <dataset>",
		Short: "Render a dataset as an SVG plot",
		Long: fmt.Sprintf(`Plot maps dataset columns to visual channels and renders an SVG.
Kinds: %s.

Histograms answer distribution questions. Try narrowing the bin width
to see where diamond carats cluster:

  edakit plot histogram diamonds -x carat --bin-width 0.01 -o carat.svg

Scatterplots with color and facets:

  edakit plot scatter mpg -x displ -y hwy --color class --facet-x drv`,
			strings.Join(vis.Kinds(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg := configFromContext(cmd.Context())

			spec.Kind = args[0]
			t, err := loadInput(args[1])
			if err != nil {
				return err
			}
			if spec.Bins == 0 {
				spec.Bins = cfg.Plot.Bins
			}
			if width == 0 {
				width = cfg.Plot.Width
			}
			if height == 0 {
				height = cfg.Plot.Height
			}
			if out == "" {
				out = args[1] + ".svg"
			}

			dropped, err := vis.RenderFile(out, t, spec, width, height)
			if err != nil {
				return err
			}
			if dropped > 0 {
				logger.Warn("dropped rows with missing values", "rows", dropped)
			}
			logger.Info("wrote plot", "path", out)

			if open {
				return openViewer(cmd, cfg.Plot.Viewer, out)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&spec.X, "x", "x", "", "column mapped to x (required)")
	f.StringVarP(&spec.Y, "y", "y", "", "column mapped to y (two-variable kinds)")
	f.StringVar(&spec.Color, "color", "", "column mapped to color")
	f.StringVar(&spec.FacetX, "facet-x", "", "facet into columns by this column")
	f.StringVar(&spec.FacetY, "facet-y", "", "facet into rows by this column")
	f.IntVar(&spec.Bins, "bins", 0, "histogram bin count")
	f.Float64Var(&spec.BinWidth, "bin-width", 0, "histogram bin width (overrides --bins)")
	f.StringVar(&spec.Title, "title", "", "plot title")
	f.BoolVar(&spec.DropNaN, "drop-na", false, "silently drop rows with missing values")
	f.StringVarP(&out, "out", "o", "", "output SVG path (default <dataset>.svg)")
	f.BoolVar(&open, "open", false, "open the rendered SVG in the configured viewer")
	f.IntVar(&width, "width", 0, "SVG width per facet column in pixels")
	f.IntVar(&height, "height", 0, "SVG height per facet row in pixels")
	cmd.MarkFlagRequired("x")
	return cmd
}

// openViewer launches the configured viewer command on the rendered
// file. The viewer setting is a shell-quoted command prefix, so
// values like "open -a Preview" work.
func openViewer(cmd *cobra.Command, viewer, path string) error {
	if viewer == "" {
		return fmt.Errorf("no viewer configured; set plot.viewer in the config file")
	}
	words, err := shellquote.Split(viewer)
	if err != nil {
		return fmt.Errorf("bad viewer command %q: %w", viewer, err)
	}
	words = append(words, path)
	c := exec.CommandContext(cmd.Context(), words[0], words[1:]...)
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	return c.Run()
}
