// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset provides the built-in example datasets used throughout
// edakit.
//
// The datasets are synthetic: they are generated deterministically with
// the marginal distributions and correlations of the classic teaching
// datasets (diamonds, mpg, penguins, flights, faithful), so the familiar
// lessons reproduce (the spike of diamonds at whole and half carats, the
// bimodal Old Faithful eruptions, the per-species penguin clusters)
// without shipping a copy of anyone's data.
//
// Each dataset loads as a *table.Table from github.com/aclements/go-gg,
// which is the table type the rest of edakit operates on.
package dataset

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/aclements/go-gg/table"
)

// ErrUnknownDataset is returned by Load and Describe for names that are
// not in the registry.
var ErrUnknownDataset = fmt.Errorf("unknown dataset")

var registry = map[string]func() *table.Table{
	"diamonds": genDiamonds,
	"mpg":      genMPG,
	"penguins": genPenguins,
	"flights":  genFlights,
	"faithful": genFaithful,
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*table.Table{}
)

// Names returns the names of the built-in datasets, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns the named built-in dataset. The table is generated on
// first use and cached; callers must not modify its column slices.
func Load(name string) (*table.Table, error) {
	gen, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownDataset, name, Names())
	}
	cacheMu.Lock()
	defer cacheMu.Unlock()
	t, ok := cache[name]
	if !ok {
		t = gen()
		cache[name] = t
	}
	return t, nil
}

// Info summarizes the shape of a dataset.
type Info struct {
	Name    string
	Rows    int
	Columns []ColumnInfo
}

// ColumnInfo describes one column of a dataset.
type ColumnInfo struct {
	Name string
	Kind string // "int", "float64", or "string"
}

// Describe returns shape information for the named dataset.
func Describe(name string) (Info, error) {
	t, err := Load(name)
	if err != nil {
		return Info{}, err
	}
	info := Info{Name: name, Rows: t.Len()}
	for _, col := range t.Columns() {
		info.Columns = append(info.Columns, ColumnInfo{
			Name: col,
			Kind: ColumnKind(t, col),
		})
	}
	return info, nil
}

// ColumnKind reports the element kind of a table column as a string:
// "int", "float64", "string", or the reflected kind for anything else.
func ColumnKind(t *table.Table, col string) string {
	c := t.Column(col)
	if c == nil {
		return ""
	}
	return reflect.TypeOf(c).Elem().Kind().String()
}
