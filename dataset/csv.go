// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/aclements/go-gg/table"
)

// ReadCSV reads comma-separated data with a header row into a table.
// Columns whose values all parse as integers or floats become []int or
// []float64; everything else stays []string. "NaN" parses as a float,
// so WriteCSV output round-trips with its column types intact.
func ReadCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return new(table.Table), nil
	}
	return table.TableFromStrings(rows[0], rows[1:], true), nil
}

// WriteCSV writes a table as comma-separated data with a header row.
// Float NaNs are written as "NaN".
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	cols := t.Columns()
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	vals := make([]reflect.Value, len(cols))
	for i, col := range cols {
		vals[i] = reflect.ValueOf(t.MustColumn(col))
	}
	record := make([]string, len(cols))
	for row := 0; row < t.Len(); row++ {
		for i := range cols {
			record[i] = formatCell(vals[i].Index(row))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", row+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Float64, reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.String:
		return v.String()
	default:
		return fmt.Sprint(v.Interface())
	}
}
