// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vis

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// The stats here fill holes in ggstat: the pinned go-gg has density,
// ECDF, and regression stats, but no binning or categorical counting.
// They follow the same contract as ggstat: a struct whose F method maps
// a Grouping to a Grouping.

// StatBin computes a histogram of column X in each group.
//
// The output replaces each group with two columns: X holds the bin
// centers and "count" holds the number of samples in each bin. Bins
// are left-closed; the rightmost bin is closed on both sides. Constant
// columns of the input are preserved.
type StatBin struct {
	// X is the name of the column to bin. It is converted to
	// float64.
	X string

	// Bins is the number of bins. If it is 0, 30 bins are used.
	Bins int

	// Width is the bin width. If it is non-zero it overrides
	// Bins, and the first bin starts at a multiple of Width at or
	// below the smallest sample. This is the "binwidth 0.01
	// reveals the carat spikes" control.
	Width float64

	// lo and hi, when set by Build, fix the bin range across all
	// groups so grouped histograms share bins.
	lo, hi float64
}

func (s StatBin) F(g table.Grouping) table.Grouping {
	lo, hi := s.lo, s.hi
	if lo == 0 && hi == 0 {
		lo, hi = groupingBounds(g, s.X)
	}

	width := s.Width
	nbins := s.Bins
	if nbins <= 0 {
		nbins = 30
	}
	var left float64
	if width > 0 {
		left = math.Floor(lo/width) * width
		nbins = int(math.Ceil((hi-left)/width + 1e-9))
		if nbins < 1 {
			nbins = 1
		}
	} else {
		if hi == lo {
			hi = lo + 1
		}
		width = (hi - lo) / float64(nbins)
		left = lo
	}

	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		var xs []float64
		slice.Convert(&xs, t.MustColumn(s.X))

		counts := make([]float64, nbins)
		for _, x := range xs {
			if math.IsNaN(x) || x < left {
				continue
			}
			i := int((x - left) / width)
			if i >= nbins {
				if x > hi {
					continue
				}
				i = nbins - 1 // rightmost bin is closed
			}
			counts[i]++
		}

		centers := make([]float64, nbins)
		for i := range centers {
			centers[i] = left + (float64(i)+0.5)*width
		}

		nt := new(table.Builder).Add(s.X, centers).Add("count", counts)
		preserveConsts(nt, t)
		return nt.Done()
	})
}

// StatCount counts the rows of each distinct value of column X in each
// group. The output has column X (distinct values, in value order) and
// column "count". Constant columns of the input are preserved.
type StatCount struct {
	// X is the name of the column to count by. Any scalar column
	// type works; strings are the usual case.
	X string
}

func (s StatCount) F(g table.Grouping) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		v := reflect.ValueOf(t.MustColumn(s.X))
		counts := make(map[interface{}]float64)
		var order []interface{}
		for i := 0; i < v.Len(); i++ {
			key := v.Index(i).Interface()
			if _, ok := counts[key]; !ok {
				order = append(order, key)
			}
			counts[key]++
		}
		sort.Slice(order, func(i, j int) bool {
			return fmt.Sprint(order[i]) < fmt.Sprint(order[j])
		})

		keys := reflect.MakeSlice(v.Type(), len(order), len(order))
		ns := make([]float64, len(order))
		for i, key := range order {
			keys.Index(i).Set(reflect.ValueOf(key))
			ns[i] = counts[key]
		}

		nt := new(table.Builder).Add(s.X, keys.Interface()).Add("count", ns)
		preserveConsts(nt, t)
		return nt.Done()
	})
}

// StatBoxplot reduces column Y of each group to its five-number
// summary, emitted as five rows so a path layer draws a vertical
// whisker line through them.
//
// The output columns are Y (the five values, ascending) and "role"
// ("lower whisker", "first quartile", "median", "third quartile",
// "upper whisker"). Whiskers extend to the most extreme sample within
// 1.5 IQR of the box, Tukey style. NaN samples are dropped. Constant
// columns (such as a GroupBy category) are preserved, which is what
// positions each summary at its category on the X axis.
type StatBoxplot struct {
	// Y is the name of the column to summarize. It is converted
	// to float64.
	Y string
}

var boxplotRoles = []string{
	"lower whisker", "first quartile", "median", "third quartile", "upper whisker",
}

func (s StatBoxplot) F(g table.Grouping) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		var raw []float64
		slice.Convert(&raw, t.MustColumn(s.Y))
		var xs []float64
		for _, x := range raw {
			if !math.IsNaN(x) {
				xs = append(xs, x)
			}
		}

		nt := new(table.Builder)
		if len(xs) == 0 {
			nt.Add(s.Y, []float64{}).Add("role", []string{})
			preserveConsts(nt, t)
			return nt.Done()
		}

		sample := stats.Sample{Xs: xs}
		q1 := sample.Quantile(0.25)
		q3 := sample.Quantile(0.75)
		iqr := q3 - q1
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, x := range xs {
			if x >= q1-1.5*iqr && x <= q3+1.5*iqr {
				lo = math.Min(lo, x)
				hi = math.Max(hi, x)
			}
		}

		nt.Add(s.Y, []float64{lo, q1, sample.Quantile(0.5), q3, hi}).
			Add("role", append([]string(nil), boxplotRoles...))
		preserveConsts(nt, t)
		return nt.Done()
	})
}

// groupingBounds returns the min and max of a column across all groups
// of g, ignoring NaNs.
func groupingBounds(g table.Grouping, col string) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, gid := range g.Tables() {
		var xs []float64
		slice.Convert(&xs, g.Table(gid).MustColumn(col))
		for _, x := range xs {
			if math.IsNaN(x) {
				continue
			}
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 0
	}
	return
}

// preserveConsts copies the constant columns from t into nt. It is the
// same helper ggstat keeps for its stats.
func preserveConsts(nt *table.Builder, t *table.Table) {
	for _, col := range t.Columns() {
		if nt.Has(col) {
			continue
		}
		if cv, ok := t.Const(col); ok {
			nt.AddConst(col, cv)
		}
	}
}
