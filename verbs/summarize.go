// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package verbs

import (
	"fmt"
	"math"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// An Agg computes one summary value from a column of one group.
// Construct Aggs with Mean, Median, Sum, Min, Max, StdDev, Quantile,
// and N, and rename the output column with As.
type Agg struct {
	col  string
	name string
	f    func(xs []float64, n int) float64
}

// As sets the output column name of the aggregate.
func (a Agg) As(name string) Agg {
	a.name = name
	return a
}

// Name returns the output column name of the aggregate.
func (a Agg) Name() string { return a.name }

func colAgg(verb, col string, f func(s stats.Sample) float64) Agg {
	return Agg{col: col, name: verb + " " + col, f: func(xs []float64, _ int) float64 {
		xs = dropNaNs(xs)
		if len(xs) == 0 {
			return math.NaN()
		}
		return f(stats.Sample{Xs: xs})
	}}
}

// Mean aggregates a column to its arithmetic mean. NaN values are
// dropped first; an all-NaN column aggregates to NaN. The other
// column aggregators treat NaN the same way.
func Mean(col string) Agg { return colAgg("mean", col, stats.Sample.Mean) }

// Median aggregates a column to its median.
func Median(col string) Agg {
	return colAgg("median", col, func(s stats.Sample) float64 { return s.Quantile(0.5) })
}

// Sum aggregates a column to its sum.
func Sum(col string) Agg {
	return colAgg("sum", col, func(s stats.Sample) float64 {
		var sum float64
		for _, x := range s.Xs {
			sum += x
		}
		return sum
	})
}

// Min aggregates a column to its minimum.
func Min(col string) Agg {
	return colAgg("min", col, func(s stats.Sample) float64 {
		m, _ := s.Bounds()
		return m
	})
}

// Max aggregates a column to its maximum.
func Max(col string) Agg {
	return colAgg("max", col, func(s stats.Sample) float64 {
		_, m := s.Bounds()
		return m
	})
}

// StdDev aggregates a column to its sample standard deviation.
func StdDev(col string) Agg { return colAgg("sd", col, stats.Sample.StdDev) }

// Quantile aggregates a column to its q'th quantile, 0 <= q <= 1.
func Quantile(col string, q float64) Agg {
	return colAgg(fmt.Sprintf("p%g", q*100), col, func(s stats.Sample) float64 {
		return s.Quantile(q)
	})
}

// N counts the rows of the group, including rows with NaNs.
func N() Agg {
	return Agg{name: "n", f: func(_ []float64, n int) float64 {
		return float64(n)
	}}
}

// Summarize reduces each leaf group to a single row holding the given
// aggregates. Input columns that are constant within a group (notably
// the GroupBy columns) are carried through; varying columns are
// dropped. The group structure of g is preserved.
//
// A typical pipeline reads
//
//	g := verbs.GroupBy(flights, "carrier")
//	g = verbs.Summarize(g, verbs.Mean("dep_delay"), verbs.N())
//	t := verbs.Flatten(g)
func Summarize(g table.Grouping, aggs ...Agg) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		b := new(table.Builder)

		// Carry constant columns. GroupBy marks its grouping
		// columns as constants, so they survive; a column that
		// merely happens to be single-valued in this group is
		// carried too.
		for _, col := range t.Columns() {
			if cv, ok := t.Const(col); ok {
				b.AddConst(col, cv)
				continue
			}
			v := reflect.ValueOf(t.MustColumn(col))
			if c, ok := constValue(v); ok {
				out := reflect.MakeSlice(v.Type(), 1, 1)
				out.Index(0).Set(c)
				b.Add(col, out.Interface())
			}
		}

		for _, agg := range aggs {
			var xs []float64
			if agg.col != "" {
				slice.Convert(&xs, t.MustColumn(agg.col))
			}
			b.Add(agg.name, []float64{agg.f(xs, t.Len())})
		}
		return b.Done()
	})
}

// Count is GroupBy + Summarize(N()) + Flatten: one row per distinct
// combination of the named columns with the group size in column "n".
func Count(g table.Grouping, cols ...string) *table.Table {
	return Flatten(Summarize(GroupBy(g, cols...), N()))
}

// constValue reports whether every element of the slice v is equal, and
// if so returns the first element. An empty slice has no constant.
func constValue(v reflect.Value) (reflect.Value, bool) {
	if v.Len() == 0 {
		return reflect.Value{}, false
	}
	first := v.Index(0)
	for i := 1; i < v.Len(); i++ {
		if first.Interface() != v.Index(i).Interface() {
			return reflect.Value{}, false
		}
	}
	return first, true
}

func dropNaNs(xs []float64) []float64 {
	clean := xs[:0:0]
	for _, x := range xs {
		if !math.IsNaN(x) {
			clean = append(clean, x)
		}
	}
	return clean
}
