// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package verbs provides dplyr-flavored transformation verbs over go-gg
// table groupings.
//
// Where go-gg already has a verb (Filter, GroupBy, SortBy, Rename) these
// are thin delegations kept for uniform naming; the rest are built from
// table.MapTables and table.Builder. Verbs never modify their input.
package verbs

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Filter filters each group to the rows where pred returns true. The
// arguments of pred are taken from the named columns, which must match
// pred's argument types.
func Filter(g table.Grouping, pred interface{}, cols ...string) table.Grouping {
	return table.Filter(g, pred, cols...)
}

// FilterEq filters each group to the rows where column col equals val.
func FilterEq(g table.Grouping, col string, val interface{}) table.Grouping {
	return table.FilterEq(g, col, val)
}

// GroupBy splits each group by the values of the named columns.
func GroupBy(g table.Grouping, cols ...string) table.Grouping {
	return table.GroupBy(g, cols...)
}

// Rename renames column "from" to "to" in every group.
func Rename(g table.Grouping, from, to string) table.Grouping {
	return table.Rename(g, from, to)
}

// Ungroup undoes the innermost level of grouping.
func Ungroup(g table.Grouping) table.Grouping {
	return table.Ungroup(g)
}

// Flatten concatenates all groups into a single table.
func Flatten(g table.Grouping) *table.Table {
	return table.Flatten(g)
}

// Arrange sorts each group by the named columns. A column name with a
// leading "-" sorts descending. Later columns break ties in earlier
// ones. Column values must be ordered types (or sort.Interface slices,
// per go-gg's sorting rules).
func Arrange(g table.Grouping, cols ...string) table.Grouping {
	type key struct {
		col  string
		desc bool
	}
	keys := make([]key, len(cols))
	for i, c := range cols {
		if len(c) > 1 && c[0] == '-' {
			keys[i] = key{c[1:], true}
		} else {
			keys[i] = key{c, false}
		}
	}

	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		perm := make([]int, t.Len())
		for i := range perm {
			perm[i] = i
		}
		vals := make([]reflect.Value, len(keys))
		for i, k := range keys {
			vals[i] = reflect.ValueOf(t.MustColumn(k.col))
		}
		sort.SliceStable(perm, func(a, b int) bool {
			for i, k := range keys {
				c := compareCell(vals[i].Index(perm[a]), vals[i].Index(perm[b]))
				if c == 0 {
					continue
				}
				if k.desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
		return permute(t, perm)
	})
}

// Select keeps only the named columns, in the given order.
func Select(g table.Grouping, cols ...string) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		b := new(table.Builder)
		for _, col := range cols {
			b.Add(col, t.MustColumn(col))
		}
		return b.Done()
	})
}

// Mutate adds a float64 column computed row-wise from the named
// columns, which are converted to float64 first. An existing column of
// the same name is replaced.
func Mutate(g table.Grouping, name string, f func(v ...float64) float64, cols ...string) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		ins := make([][]float64, len(cols))
		for i, col := range cols {
			slice.Convert(&ins[i], t.MustColumn(col))
		}
		out := make([]float64, t.Len())
		args := make([]float64, len(cols))
		for row := range out {
			for i := range ins {
				args[i] = ins[i][row]
			}
			out[row] = f(args...)
		}
		return table.NewBuilder(t).Add(name, out).Done()
	})
}

// Distinct keeps the first row of each distinct combination of the
// named columns (all columns if none are named).
func Distinct(g table.Grouping, cols ...string) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		keyCols := cols
		if len(keyCols) == 0 {
			keyCols = t.Columns()
		}
		vals := make([]reflect.Value, len(keyCols))
		for i, col := range keyCols {
			vals[i] = reflect.ValueOf(t.MustColumn(col))
		}
		seen := make(map[string]bool)
		var keep []int
		for row := 0; row < t.Len(); row++ {
			key := ""
			for _, v := range vals {
				key += fmt.Sprintf("%v\x00", v.Index(row).Interface())
			}
			if !seen[key] {
				seen[key] = true
				keep = append(keep, row)
			}
		}
		return permute(t, keep)
	})
}

// Head keeps the first n rows of each group.
func Head(g table.Grouping, n int) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		if t.Len() <= n {
			return t
		}
		keep := make([]int, n)
		for i := range keep {
			keep[i] = i
		}
		return permute(t, keep)
	})
}

// permute builds a new table whose rows are t's rows at the given
// indexes, in order.
func permute(t *table.Table, rows []int) *table.Table {
	b := new(table.Builder)
	for _, col := range t.Columns() {
		v := reflect.ValueOf(t.MustColumn(col))
		out := reflect.MakeSlice(v.Type(), len(rows), len(rows))
		for i, row := range rows {
			out.Index(i).Set(v.Index(row))
		}
		b.Add(col, out.Interface())
	}
	return b.Done()
}

// compareCell orders two reflected scalar values of the same type.
func compareCell(a, b reflect.Value) int {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		x, y := a.Int(), b.Int()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		x, y := a.Uint(), b.Uint()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case reflect.Float32, reflect.Float64:
		x, y := a.Float(), b.Float()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		// NaNs compare equal to everything so they neither
		// poison the sort nor move rows around.
		return 0
	case reflect.String:
		x, y := a.String(), b.String()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	panic(fmt.Sprintf("cannot order values of type %s", a.Type()))
}
