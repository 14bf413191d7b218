// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbframe provides a lazy database table in the dbplyr manner.
//
// A Lazy names a relation in a database/sql database. Verbs (Filter,
// Select, GroupBy, Summarize, Arrange, Head) refine the description
// without touching the database; ShowQuery renders the accumulated
// pipeline as a single SQL statement, and Collect executes it and
// materializes the result as a go-gg table. The translation targets
// the shared SQL subset of SQLite and DuckDB, the two drivers edakit
// ships with.
package dbframe

import (
	"fmt"
	"strings"
)

// A cond is one WHERE condition: a raw SQL expression with ?
// placeholders and its arguments.
type cond struct {
	expr string
	args []interface{}
}

// An AggExpr is one aggregate output column of Summarize.
type AggExpr struct {
	fn    string // SQL aggregate function, "" for COUNT(*)
	col   string
	alias string
}

// As renames the aggregate's output column.
func (a AggExpr) As(alias string) AggExpr {
	a.alias = alias
	return a
}

func agg(fn, col string) AggExpr {
	return AggExpr{fn: fn, col: col, alias: strings.ToLower(fn) + "_" + col}
}

// Mean aggregates a column with AVG.
func Mean(col string) AggExpr { return AggExpr{fn: "AVG", col: col, alias: "mean_" + col} }

// Sum aggregates a column with SUM.
func Sum(col string) AggExpr { return agg("SUM", col) }

// Min aggregates a column with MIN.
func Min(col string) AggExpr { return agg("MIN", col) }

// Max aggregates a column with MAX.
func Max(col string) AggExpr { return agg("MAX", col) }

// N counts rows with COUNT(*).
func N() AggExpr { return AggExpr{alias: "n"} }

func (a AggExpr) sql() string {
	if a.fn == "" {
		return "COUNT(*) AS " + quoteIdent(a.alias)
	}
	return fmt.Sprintf("%s(%s) AS %s", a.fn, quoteIdent(a.col), quoteIdent(a.alias))
}

// Lazy is a deferred query against one relation. The zero value is not
// useful; start from Tbl. Lazy values are immutable: every verb
// returns a copy, so pipelines can be forked freely.
type Lazy struct {
	q Queryer
	// Exactly one of name and sub is set: the relation is either a
	// base table or the subquery of an earlier pipeline stage.
	name string
	sub  *Lazy

	wheres  []cond
	selects []string
	groupBy []string
	aggs    []AggExpr
	orderBy []string
	limit   int
}

// Tbl returns a lazy reference to the named table. Nothing is checked
// against the database until Collect; a misspelled table or column
// surfaces as a database error then, not here.
func Tbl(q Queryer, name string) *Lazy {
	return &Lazy{q: q, name: name}
}

// clone returns a shallow copy with copied slices, safe to extend.
func (l *Lazy) clone() *Lazy {
	n := *l
	n.wheres = append([]cond(nil), l.wheres...)
	n.selects = append([]string(nil), l.selects...)
	n.groupBy = append([]string(nil), l.groupBy...)
	n.aggs = append([]AggExpr(nil), l.aggs...)
	n.orderBy = append([]string(nil), l.orderBy...)
	return &n
}

// subquery wraps l as the FROM-relation of a fresh pipeline stage.
// Verbs that cannot compose with what l already holds (a second
// Summarize, a Filter over aggregate output) call this.
func (l *Lazy) subquery() *Lazy {
	return &Lazy{q: l.q, sub: l}
}

// Filter appends a WHERE condition. The expression is a raw SQL
// predicate with ? placeholders; arguments always travel as
// placeholders, never interpolated into the SQL text. Multiple Filter
// calls AND together. Filtering after Summarize filters the aggregate
// output by wrapping the pipeline in a subquery.
func (l *Lazy) Filter(expr string, args ...interface{}) *Lazy {
	if len(l.aggs) > 0 || l.limit > 0 {
		return l.subquery().Filter(expr, args...)
	}
	n := l.clone()
	n.wheres = append(n.wheres, cond{expr, args})
	return n
}

// Select restricts the output to the named columns, in order. After
// Summarize, Select wraps the pipeline in a subquery so aggregate
// aliases can be selected.
func (l *Lazy) Select(cols ...string) *Lazy {
	if len(l.aggs) > 0 || len(l.selects) > 0 {
		return l.subquery().Select(cols...)
	}
	n := l.clone()
	n.selects = append(n.selects, cols...)
	return n
}

// GroupBy sets the grouping columns for a following Summarize.
// Grouping after Head wraps the limited stage in a subquery so the
// aggregate sees only the limited rows.
func (l *Lazy) GroupBy(cols ...string) *Lazy {
	if len(l.aggs) > 0 || l.limit > 0 {
		return l.subquery().GroupBy(cols...)
	}
	n := l.clone()
	n.groupBy = append(n.groupBy, cols...)
	return n
}

// Summarize reduces each group to one row per aggregate. The output
// columns are the GroupBy columns followed by the aggregate aliases.
func (l *Lazy) Summarize(aggs ...AggExpr) *Lazy {
	if len(l.aggs) > 0 || l.limit > 0 {
		return l.subquery().Summarize(aggs...)
	}
	n := l.clone()
	n.aggs = append(n.aggs, aggs...)
	return n
}

// Arrange sets the ordering. A column name with a leading "-" sorts
// descending. Arranging after Head wraps the limited stage in a
// subquery: SQL applies ORDER BY before LIMIT, so composing into the
// same SELECT would reorder the whole relation and then limit, not
// sort the limited rows.
func (l *Lazy) Arrange(cols ...string) *Lazy {
	if l.limit > 0 {
		return l.subquery().Arrange(cols...)
	}
	n := l.clone()
	for _, c := range cols {
		if len(c) > 1 && c[0] == '-' {
			n.orderBy = append(n.orderBy, quoteIdent(c[1:])+" DESC")
		} else {
			n.orderBy = append(n.orderBy, quoteIdent(c))
		}
	}
	return n
}

// Head limits the output to the first n rows. A second Head wraps the
// first in a subquery rather than replacing its limit.
func (l *Lazy) Head(n int) *Lazy {
	if l.limit > 0 {
		return l.subquery().Head(n)
	}
	c := l.clone()
	c.limit = n
	return c
}

// ShowQuery returns the SQL statement Collect would execute, with ?
// placeholders for the filter arguments.
func (l *Lazy) ShowQuery() string {
	sql, _ := l.build()
	return sql
}

// build renders the SQL and collects placeholder arguments in
// left-to-right order (innermost subquery first).
func (l *Lazy) build() (string, []interface{}) {
	var args []interface{}

	var from string
	if l.sub != nil {
		inner, innerArgs := l.sub.build()
		from = "(" + inner + ")"
		args = append(args, innerArgs...)
	} else {
		from = quoteIdent(l.name)
	}

	sel := "*"
	switch {
	case len(l.aggs) > 0:
		parts := make([]string, 0, len(l.groupBy)+len(l.aggs))
		for _, c := range l.groupBy {
			parts = append(parts, quoteIdent(c))
		}
		for _, a := range l.aggs {
			parts = append(parts, a.sql())
		}
		sel = strings.Join(parts, ", ")
	case len(l.selects) > 0:
		parts := make([]string, len(l.selects))
		for i, c := range l.selects {
			parts[i] = quoteIdent(c)
		}
		sel = strings.Join(parts, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", sel, from)
	if len(l.wheres) > 0 {
		exprs := make([]string, len(l.wheres))
		for i, w := range l.wheres {
			exprs[i] = "(" + w.expr + ")"
			args = append(args, w.args...)
		}
		b.WriteString(" WHERE " + strings.Join(exprs, " AND "))
	}
	if len(l.aggs) > 0 && len(l.groupBy) > 0 {
		cols := make([]string, len(l.groupBy))
		for i, c := range l.groupBy {
			cols[i] = quoteIdent(c)
		}
		b.WriteString(" GROUP BY " + strings.Join(cols, ", "))
	}
	if len(l.orderBy) > 0 {
		b.WriteString(" ORDER BY " + strings.Join(l.orderBy, ", "))
	}
	if l.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", l.limit)
	}
	return b.String(), args
}

// quoteIdent quotes a SQL identifier with double quotes, doubling any
// embedded quote.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
