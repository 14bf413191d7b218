// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vis renders declarative plot specifications to SVG using the
// go-gg grammar-of-graphics library.
//
// A Spec maps columns to visual channels (x, y, color, facets) and
// names a plot kind; Build translates it into go-gg stats and layers.
// Kinds that need statistics the pinned go-gg does not provide
// (histograms, bar counts, boxplots) use the custom Stats in this
// package.
package vis

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"reflect"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
)

// Plot kinds understood by Build.
const (
	Histogram    = "histogram"
	FreqPoly     = "freqpoly"
	Scatter      = "scatter"
	Line         = "line"
	Boxplot      = "boxplot"
	Density      = "density"
	ECDF         = "ecdf"
	Bar          = "bar"
	Smooth       = "smooth"
	SmoothLinear = "smoothlinear"
)

// Kinds returns the supported plot kinds.
func Kinds() []string {
	return []string{
		Bar, Boxplot, Density, ECDF, FreqPoly,
		Histogram, Line, Scatter, Smooth, SmoothLinear,
	}
}

// ErrEmptyTable is returned by Build when the input has no rows.
var ErrEmptyTable = fmt.Errorf("empty table")

// Spec is a declarative plot description: a kind plus column-to-channel
// mappings.
type Spec struct {
	// Kind selects the plot type (one of the kind constants).
	Kind string

	// X is the column mapped to the horizontal position channel.
	// Required for every kind.
	X string

	// Y is the column mapped to the vertical position channel.
	// Required for two-variable kinds (scatter, line, boxplot,
	// smooth); rejected for one-variable kinds (histogram,
	// freqpoly, density, ecdf, bar), whose Y is computed.
	Y string

	// Color maps a column to the color channel. For binned kinds
	// the data is grouped by this column first, so each color gets
	// its own bins or density.
	Color string

	// FacetX and FacetY split the plot into columns and rows by
	// the distinct values of the named columns.
	FacetX, FacetY string

	// Bins and BinWidth control binning for histogram and
	// freqpoly. Zero values mean 30 bins; a non-zero BinWidth
	// overrides Bins.
	Bins     int
	BinWidth float64

	// Title is an optional plot title.
	Title string

	// DropNaN suppresses the missing-value warning: rows with NaN
	// in a mapped numeric column are always dropped before
	// statting, but with DropNaN set Build does not count them.
	DropNaN bool
}

// Build translates a Spec against data into a go-gg plot. It returns
// the number of rows dropped because a mapped numeric column held NaN;
// callers that did not set DropNaN should surface that count as a
// "removed N rows with missing values" warning.
func Build(g table.Grouping, s Spec) (*gg.Plot, int, error) {
	if table.Flatten(g).Len() == 0 {
		return nil, 0, ErrEmptyTable
	}
	if s.X == "" {
		return nil, 0, fmt.Errorf("plot kind %q requires an x column", s.Kind)
	}
	oneVar := false
	switch s.Kind {
	case Histogram, FreqPoly, Density, ECDF, Bar:
		oneVar = true
		if s.Y != "" {
			return nil, 0, fmt.Errorf("plot kind %q computes its own y; remove the y mapping", s.Kind)
		}
	case Scatter, Line, Boxplot, Smooth, SmoothLinear:
		if s.Y == "" {
			return nil, 0, fmt.Errorf("plot kind %q requires a y column", s.Kind)
		}
	default:
		return nil, 0, fmt.Errorf("unknown plot kind %q (have %v)", s.Kind, Kinds())
	}

	if s.Kind == Bar && isFloatColumn(g, s.X) {
		return nil, 0, fmt.Errorf("bar counts discrete values; use %q for continuous column %q", Histogram, s.X)
	}

	// Missing values poison every downstream stat, so drop them
	// up front and report how many rows went.
	var numCols []string
	for _, col := range []string{s.X, s.Y} {
		if col != "" && isFloatColumn(g, col) && s.Kind != Bar {
			numCols = append(numCols, col)
		}
	}
	dropped := 0
	if len(numCols) > 0 {
		before := table.Flatten(g).Len()
		g = dropNaNRows(g, numCols)
		dropped = before - table.Flatten(g).Len()
		if table.Flatten(g).Len() == 0 {
			return nil, dropped, fmt.Errorf("%w after dropping %d rows with missing values", ErrEmptyTable, dropped)
		}
	}
	if s.DropNaN {
		dropped = 0
	}

	plot := gg.NewPlot(g)
	if s.Color != "" && (oneVar || s.Kind == Smooth || s.Kind == SmoothLinear) {
		// Binned and fitted kinds compute per group, so the
		// color grouping must happen before the stat.
		plot.GroupBy(s.Color)
	}

	switch s.Kind {
	case Histogram:
		lo, hi := groupingBounds(g, s.X)
		plot.Stat(StatBin{X: s.X, Bins: s.Bins, Width: s.BinWidth, lo: lo, hi: hi})
		plot.SetScale("y", gg.NewLinearScaler().Include(0))
		plot.Add(gg.LayerSteps{
			LayerPaths: gg.LayerPaths{X: s.X, Y: "count", Color: s.Color, Fill: fillCol(plot, s.Color)},
			Step:       gg.StepHMid,
		})
	case FreqPoly:
		lo, hi := groupingBounds(g, s.X)
		plot.Stat(StatBin{X: s.X, Bins: s.Bins, Width: s.BinWidth, lo: lo, hi: hi})
		plot.SetScale("y", gg.NewLinearScaler().Include(0))
		plot.Add(gg.LayerLines{X: s.X, Y: "count", Color: s.Color})
	case Bar:
		plot.Stat(StatCount{X: s.X})
		plot.SetScale("y", gg.NewLinearScaler().Include(0))
		plot.Add(gg.LayerPoints{X: s.X, Y: "count", Color: s.Color})
	case Density:
		plot.Stat(ggstat.Density{X: s.X})
		plot.Add(gg.LayerLines{X: s.X, Y: "probability density", Color: s.Color})
	case ECDF:
		plot.Stat(ggstat.ECDF{X: s.X})
		plot.Add(gg.LayerSteps{
			LayerPaths: gg.LayerPaths{X: s.X, Y: "cumulative density", Color: s.Color},
		})
	case Scatter:
		plot.Add(gg.LayerPoints{X: s.X, Y: s.Y, Color: s.Color})
	case Line:
		plot.Add(gg.LayerLines{X: s.X, Y: s.Y, Color: s.Color})
	case Boxplot:
		// One five-number summary per X category, drawn as a
		// vertical whisker path with quartile markers. The
		// grammar library has no box mark, and a path through
		// the summary reads the same way.
		plot.SetData(table.GroupBy(plot.Data(), s.X))
		plot.Stat(StatBoxplot{Y: s.Y})
		plot.Add(gg.LayerPaths{X: s.X, Y: s.Y})
		plot.Add(gg.LayerPoints{X: s.X, Y: s.Y})
	case Smooth:
		plot.Save()
		plot.Add(gg.LayerPoints{X: s.X, Y: s.Y, Color: s.Color})
		plot.Stat(ggstat.LOESS{X: s.X, Y: s.Y})
		plot.Add(gg.LayerLines{X: s.X, Y: s.Y, Color: s.Color})
		plot.Restore()
	case SmoothLinear:
		plot.Save()
		plot.Add(gg.LayerPoints{X: s.X, Y: s.Y, Color: s.Color})
		plot.Stat(ggstat.LeastSquares{X: s.X, Y: s.Y})
		plot.Add(gg.LayerLines{X: s.X, Y: s.Y, Color: s.Color})
		plot.Restore()
	}

	if s.FacetX != "" {
		plot.Add(gg.FacetX{Col: s.FacetX})
	}
	if s.FacetY != "" {
		plot.Add(gg.FacetY{Col: s.FacetY})
	}
	if s.Title != "" {
		plot.Add(gg.Title(s.Title))
	}
	return plot, dropped, nil
}

// Render builds the plot and writes it as SVG. Width and height are in
// pixels; zero values default to 800x600, scaled up by the number of
// facet columns and rows.
func Render(w io.Writer, g table.Grouping, s Spec, width, height int) (int, error) {
	plot, dropped, err := Build(g, s)
	if err != nil {
		return dropped, err
	}
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}
	if s.FacetX != "" {
		width *= distinctCount(g, s.FacetX)
	}
	if s.FacetY != "" {
		height *= distinctCount(g, s.FacetY)
	}
	if err := plot.WriteSVG(w, width, height); err != nil {
		return dropped, fmt.Errorf("render svg: %w", err)
	}
	return dropped, nil
}

// RenderFile renders the plot to the named SVG file.
func RenderFile(path string, g table.Grouping, s Spec, width, height int) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	dropped, err := Render(f, g, s, width, height)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return dropped, err
}

// fillCol returns a constant light fill for ungrouped histograms and
// no fill when the histogram is split by color (stacked translucent
// fills are not available, and overlapping opaque fills hide data).
func fillCol(plot *gg.Plot, colorCol string) string {
	if colorCol != "" {
		return ""
	}
	return plot.Const(color.Gray{0xc0})
}

// dropNaNRows filters out rows holding NaN in any of the named float64
// columns.
func dropNaNRows(g table.Grouping, cols []string) table.Grouping {
	for _, col := range cols {
		g = table.Filter(g, func(x float64) bool {
			return !math.IsNaN(x)
		}, col)
	}
	return g
}

// isFloatColumn reports whether the named column is a []float64 in the
// first group of g.
func isFloatColumn(g table.Grouping, col string) bool {
	tabs := g.Tables()
	if len(tabs) == 0 {
		return false
	}
	_, ok := g.Table(tabs[0]).Column(col).([]float64)
	return ok
}

// distinctCount returns the number of distinct values in a column
// across all of g.
func distinctCount(g table.Grouping, col string) int {
	seen := make(map[interface{}]bool)
	for _, gid := range g.Tables() {
		v := reflect.ValueOf(g.Table(gid).MustColumn(col))
		for i := 0; i < v.Len(); i++ {
			seen[v.Index(i).Interface()] = true
		}
	}
	if len(seen) == 0 {
		return 1
	}
	return len(seen)
}
