// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vis

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"

	"edakit/dataset"
)

func nan() float64 { return math.NaN() }

func TestBuildErrors(t *testing.T) {
	faithful, err := dataset.Load("faithful")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{"unknown kind", Spec{Kind: "pie", X: "eruptions"}, "unknown plot kind"},
		{"no x", Spec{Kind: Histogram}, "requires an x column"},
		{"y on histogram", Spec{Kind: Histogram, X: "eruptions", Y: "waiting"}, "computes its own y"},
		{"no y on scatter", Spec{Kind: Scatter, X: "eruptions"}, "requires a y column"},
		{"bar on continuous", Spec{Kind: Bar, X: "eruptions"}, "counts discrete values"},
	}
	for _, test := range tests {
		_, _, err := Build(faithful, test.spec)
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: Build error = %v; want %q", test.name, err, test.want)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	_, _, err := Build(new(table.Table), Spec{Kind: Histogram, X: "x"})
	if !errors.Is(err, ErrEmptyTable) {
		t.Errorf("Build on empty table = %v; want ErrEmptyTable", err)
	}
}

func TestBuildAllNaN(t *testing.T) {
	tab := new(table.Builder).
		Add("x", []float64{nan(), nan()}).
		Done()
	_, dropped, err := Build(tab, Spec{Kind: Histogram, X: "x"})
	if !errors.Is(err, ErrEmptyTable) {
		t.Errorf("Build = %v; want ErrEmptyTable", err)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d; want 2", dropped)
	}
}

func TestBuildDropsMissing(t *testing.T) {
	penguins, err := dataset.Load("penguins")
	if err != nil {
		t.Fatal(err)
	}
	spec := Spec{Kind: Scatter, X: "bill_len", Y: "bill_dep", Color: "species"}

	_, dropped, err := Build(penguins, spec)
	if err != nil {
		t.Fatal(err)
	}
	if dropped != 11 {
		t.Errorf("dropped = %d rows with missing values; want 11", dropped)
	}

	spec.DropNaN = true
	_, dropped, err = Build(penguins, spec)
	if err != nil {
		t.Fatal(err)
	}
	if dropped != 0 {
		t.Errorf("dropped = %d with DropNaN set; want 0", dropped)
	}
}

func TestBuildKinds(t *testing.T) {
	penguins, err := dataset.Load("penguins")
	if err != nil {
		t.Fatal(err)
	}

	specs := []Spec{
		{Kind: Histogram, X: "body_mass", Color: "species"},
		{Kind: FreqPoly, X: "body_mass", BinWidth: 100},
		{Kind: Density, X: "flipper_len", Color: "species"},
		{Kind: ECDF, X: "body_mass"},
		{Kind: Bar, X: "island"},
		{Kind: Scatter, X: "bill_len", Y: "bill_dep", FacetX: "island"},
		{Kind: Line, X: "bill_len", Y: "bill_dep"},
		{Kind: Boxplot, X: "species", Y: "body_mass"},
		{Kind: Smooth, X: "flipper_len", Y: "body_mass"},
		{Kind: SmoothLinear, X: "flipper_len", Y: "body_mass", Color: "species"},
	}
	for _, spec := range specs {
		if _, _, err := Build(penguins, spec); err != nil {
			t.Errorf("Build(%s): %v", spec.Kind, err)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	faithful, err := dataset.Load("faithful")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	_, err = Render(&buf, faithful, Spec{
		Kind:  Histogram,
		X:     "eruptions",
		Bins:  40,
		Title: "Eruption durations",
	}, 640, 480)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Errorf("output does not look like SVG: %.80q", buf.String())
	}
}

func TestKindsSorted(t *testing.T) {
	kinds := Kinds()
	for i := 1; i < len(kinds); i++ {
		if kinds[i] < kinds[i-1] {
			t.Errorf("Kinds() not sorted at %q", kinds[i])
		}
	}
}
