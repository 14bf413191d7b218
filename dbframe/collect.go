// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dbframe

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/aclements/go-gg/table"
)

// Queryer is the query surface a Lazy needs; *sql.DB and *sql.Tx both
// satisfy it.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Open opens a database/sql handle and verifies the connection.
// Drivers must be registered by the caller's imports; edakit's CLI
// registers "sqlite3" and "duckdb".
func Open(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to %s database: %w", driver, err)
	}
	return db, nil
}

// Collect executes the pipeline and materializes the result.
//
// Integer result columns become []int, floating-point columns
// []float64, everything else []string. NULL becomes NaN in float
// columns and "" in string columns; an integer column containing NULL
// is promoted to []float64 so the NULL can be NaN, and a column that
// is entirely NULL becomes []float64 when its declared type is
// numeric. A query with no result rows yields an empty table with the
// selected columns.
func (l *Lazy) Collect(ctx context.Context) (*table.Table, error) {
	query, args := l.build()
	rows, err := l.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("collect %q: %w", query, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("collect %q: %w", query, err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("collect %q: %w", query, err)
	}

	raw := make([][]interface{}, len(cols))
	scan := make([]interface{}, len(cols))
	for rows.Next() {
		for i := range scan {
			scan[i] = new(interface{})
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i := range scan {
			raw[i] = append(raw[i], *scan[i].(*interface{}))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("collect %q: %w", query, err)
	}

	b := new(table.Builder)
	for i, col := range cols {
		b.Add(col, materialize(raw[i], types[i].DatabaseTypeName()))
	}
	return b.Done(), nil
}

// materialize converts one result column from driver values to a typed
// slice. declType is the column's declared database type; it decides
// the all-NULL case, where the values alone cannot.
func materialize(vals []interface{}, declType string) interface{} {
	ints, floats, nulls := 0, 0, 0
	for _, v := range vals {
		switch v.(type) {
		case int64:
			ints++
		case float64:
			floats++
		case nil:
			nulls++
		}
	}
	switch {
	case ints == len(vals):
		out := make([]int, len(vals))
		for i, v := range vals {
			out[i] = int(v.(int64))
		}
		return out
	case nulls == len(vals) && len(vals) > 0 && numericType(declType):
		out := make([]float64, len(vals))
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	case ints+floats+nulls == len(vals) && ints+floats > 0:
		out := make([]float64, len(vals))
		for i, v := range vals {
			switch v := v.(type) {
			case int64:
				out[i] = float64(v)
			case float64:
				out[i] = v
			default:
				out[i] = math.NaN()
			}
		}
		return out
	default:
		out := make([]string, len(vals))
		for i, v := range vals {
			switch v := v.(type) {
			case nil:
				out[i] = ""
			case []byte:
				out[i] = string(v)
			case string:
				out[i] = v
			default:
				out[i] = fmt.Sprint(v)
			}
		}
		return out
	}
}

// numericType reports whether a declared SQL column type holds
// numbers. Drivers report the declared type uppercased (sqlite and
// duckdb both do); computed columns may report "".
func numericType(declType string) bool {
	declType = strings.ToUpper(declType)
	for _, t := range []string{"INT", "DOUBLE", "REAL", "FLOAT", "NUMERIC", "DECIMAL"} {
		if strings.Contains(declType, t) {
			return true
		}
	}
	return false
}

// CopyTo creates table name in the database and bulk-inserts t into
// it. Column types map as []int → INTEGER, []float64 → DOUBLE,
// anything else → TEXT; float NaN inserts as NULL. The whole copy runs
// in one transaction.
func CopyTo(ctx context.Context, db *sql.DB, name string, t *table.Table) error {
	cols := t.Columns()
	if len(cols) == 0 {
		return fmt.Errorf("copy to %s: table has no columns", name)
	}

	defs := make([]string, len(cols))
	vals := make([]reflect.Value, len(cols))
	for i, col := range cols {
		c := t.MustColumn(col)
		vals[i] = reflect.ValueOf(c)
		sqlType := "TEXT"
		switch c.(type) {
		case []int:
			sqlType = "INTEGER"
		case []float64:
			sqlType = "DOUBLE"
		}
		defs[i] = quoteIdent(col) + " " + sqlType
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("copy to %s: %w", name, err)
	}
	defer tx.Rollback()

	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}

	placeholders := make([]string, len(cols))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	ins, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		quoteIdent(name), strings.Join(placeholders, ", ")))
	if err != nil {
		return fmt.Errorf("prepare insert into %s: %w", name, err)
	}
	defer ins.Close()

	args := make([]interface{}, len(cols))
	for row := 0; row < t.Len(); row++ {
		for i := range cols {
			v := vals[i].Index(row).Interface()
			if f, ok := v.(float64); ok && math.IsNaN(f) {
				v = nil
			}
			args[i] = v
		}
		if _, err := ins.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d into %s: %w", row+1, name, err)
		}
	}
	return tx.Commit()
}
