// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestNames(t *testing.T) {
	want := []string{"diamonds", "faithful", "flights", "mpg", "penguins"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v; want %v", got, want)
	}
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load("iris")
	if !errors.Is(err, ErrUnknownDataset) {
		t.Fatalf("Load(iris) error = %v; want ErrUnknownDataset", err)
	}
	if !strings.Contains(err.Error(), "diamonds") {
		t.Errorf("error should list valid names; got %q", err)
	}
}

func TestShapes(t *testing.T) {
	tests := []struct {
		name string
		rows int
		cols []string
	}{
		{"mpg", 234, []string{"manufacturer", "model", "displ", "year", "cyl", "trans", "drv", "cty", "hwy", "fl", "class"}},
		{"penguins", 344, []string{"species", "island", "bill_len", "bill_dep", "flipper_len", "body_mass", "sex"}},
		{"faithful", 272, []string{"eruptions", "waiting"}},
		{"diamonds", 5000, []string{"carat", "cut", "color", "clarity", "depth", "table", "price", "x", "y", "z"}},
		{"flights", 10000, []string{"year", "month", "day", "hour", "dep_delay", "arr_delay", "carrier", "origin", "dest", "distance", "air_time"}},
	}
	for _, test := range tests {
		tab, err := Load(test.name)
		if err != nil {
			t.Fatalf("Load(%s): %v", test.name, err)
		}
		if tab.Len() != test.rows {
			t.Errorf("%s has %d rows; want %d", test.name, tab.Len(), test.rows)
		}
		if got := tab.Columns(); !reflect.DeepEqual(got, test.cols) {
			t.Errorf("%s columns = %v; want %v", test.name, got, test.cols)
		}
	}
}

func TestLoadDeterministic(t *testing.T) {
	a := genFaithful()
	b := genFaithful()
	if !reflect.DeepEqual(a.MustColumn("eruptions"), b.MustColumn("eruptions")) {
		t.Error("two generations of faithful differ")
	}
}

func TestPenguinsMissing(t *testing.T) {
	tab, err := Load("penguins")
	if err != nil {
		t.Fatal(err)
	}
	missing := 0
	for _, x := range tab.MustColumn("body_mass").([]float64) {
		if math.IsNaN(x) {
			missing++
		}
	}
	if missing != 11 {
		t.Errorf("penguins has %d rows with missing body_mass; want 11", missing)
	}
}

func TestDiamondsCaratSpikes(t *testing.T) {
	tab, err := Load("diamonds")
	if err != nil {
		t.Fatal(err)
	}
	carats := tab.MustColumn("carat").([]float64)
	// More stones in [1.00, 1.05) than just below it in [0.95,
	// 1.00): the whole-carat spike the histogram lesson looks for.
	below, at := 0, 0
	for _, c := range carats {
		switch {
		case 0.95 <= c && c < 1.00:
			below++
		case 1.00 <= c && c < 1.05:
			at++
		}
	}
	if at <= below {
		t.Errorf("carat spike missing: %d stones at [1.00,1.05) vs %d at [0.95,1.00)", at, below)
	}
}

func TestDescribe(t *testing.T) {
	info, err := Describe("faithful")
	if err != nil {
		t.Fatal(err)
	}
	want := Info{
		Name: "faithful",
		Rows: 272,
		Columns: []ColumnInfo{
			{"eruptions", "float64"},
			{"waiting", "float64"},
		},
	}
	if !reflect.DeepEqual(info, want) {
		t.Errorf("Describe(faithful) = %+v; want %+v", info, want)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	tab, err := Load("faithful")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, tab); err != nil {
		t.Fatal(err)
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if got.Len() != tab.Len() {
		t.Fatalf("round trip changed row count: %d -> %d", tab.Len(), got.Len())
	}
	if !reflect.DeepEqual(got.Columns(), tab.Columns()) {
		t.Fatalf("round trip changed columns: %v -> %v", tab.Columns(), got.Columns())
	}
	if _, ok := got.MustColumn("eruptions").([]float64); !ok {
		t.Error("eruptions did not round trip as []float64")
	}
}

func TestReadCSVEmpty(t *testing.T) {
	tab, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 0 {
		t.Errorf("empty input gave %d rows", tab.Len())
	}
}

func TestReadCSVRagged(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2\n3\n"))
	if err == nil {
		t.Fatal("ragged csv did not error")
	}
}
