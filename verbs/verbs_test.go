// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package verbs

import (
	"math"
	"reflect"
	"testing"

	"github.com/aclements/go-gg/table"
)

func carsTable() *table.Table {
	return new(table.Builder).
		Add("model", []string{"civic", "corvette", "camry", "a4", "jetta"}).
		Add("class", []string{"subcompact", "2seater", "midsize", "compact", "compact"}).
		Add("displ", []float64{1.6, 5.7, 2.2, 2.0, 2.0}).
		Add("hwy", []int{33, 26, 27, 29, 29}).
		Done()
}

func column(t *testing.T, g table.Grouping, col string) interface{} {
	t.Helper()
	return Flatten(g).MustColumn(col)
}

func TestArrange(t *testing.T) {
	g := Arrange(carsTable(), "displ")
	want := []string{"civic", "a4", "jetta", "camry", "corvette"}
	if got := column(t, g, "model"); !reflect.DeepEqual(got, want) {
		t.Errorf("Arrange(displ) order = %v; want %v", got, want)
	}

	g = Arrange(carsTable(), "-displ")
	want = []string{"corvette", "camry", "a4", "jetta", "civic"}
	if got := column(t, g, "model"); !reflect.DeepEqual(got, want) {
		t.Errorf("Arrange(-displ) order = %v; want %v", got, want)
	}
}

func TestArrangeMultiKey(t *testing.T) {
	// Ties in class break by descending hwy.
	g := Arrange(carsTable(), "class", "-hwy")
	want := []string{"corvette", "a4", "jetta", "camry", "civic"}
	if got := column(t, g, "model"); !reflect.DeepEqual(got, want) {
		t.Errorf("Arrange(class, -hwy) order = %v; want %v", got, want)
	}
}

func TestArrangeStable(t *testing.T) {
	// a4 and jetta tie on displ; input order holds.
	g := Arrange(carsTable(), "displ")
	models := column(t, g, "model").([]string)
	if models[1] != "a4" || models[2] != "jetta" {
		t.Errorf("equal keys were reordered: %v", models)
	}
}

func TestSelect(t *testing.T) {
	g := Select(carsTable(), "hwy", "model")
	want := []string{"hwy", "model"}
	if got := Flatten(g).Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Select columns = %v; want %v", got, want)
	}
}

func TestMutate(t *testing.T) {
	g := Mutate(carsTable(), "hwy per litre", func(v ...float64) float64 {
		return v[0] / v[1]
	}, "hwy", "displ")
	got := column(t, g, "hwy per litre").([]float64)
	if want := 33.0 / 1.6; math.Abs(got[0]-want) > 1e-9 {
		t.Errorf("hwy per litre[0] = %v; want %v", got[0], want)
	}
}

func TestDistinct(t *testing.T) {
	g := Distinct(carsTable(), "class")
	want := []string{"subcompact", "2seater", "midsize", "compact"}
	if got := column(t, g, "class"); !reflect.DeepEqual(got, want) {
		t.Errorf("Distinct(class) = %v; want %v", got, want)
	}
}

func TestHead(t *testing.T) {
	if got := Flatten(Head(carsTable(), 2)).Len(); got != 2 {
		t.Errorf("Head(2) kept %d rows", got)
	}
	if got := Flatten(Head(carsTable(), 10)).Len(); got != 5 {
		t.Errorf("Head(10) kept %d rows; want all 5", got)
	}
}

func TestSummarize(t *testing.T) {
	g := GroupBy(carsTable(), "class")
	g = Summarize(g, Mean("hwy"), N())
	flat := Flatten(Arrange(Flatten(g), "class"))

	classes := flat.MustColumn("class").([]string)
	means := flat.MustColumn("mean hwy").([]float64)
	ns := flat.MustColumn("n").([]float64)

	wantClasses := []string{"2seater", "compact", "midsize", "subcompact"}
	if !reflect.DeepEqual(classes, wantClasses) {
		t.Fatalf("classes = %v; want %v", classes, wantClasses)
	}
	if means[1] != 29 {
		t.Errorf("mean hwy for compact = %v; want 29", means[1])
	}
	if ns[1] != 2 {
		t.Errorf("n for compact = %v; want 2", ns[1])
	}
}

func TestSummarizeNaN(t *testing.T) {
	tab := new(table.Builder).
		Add("g", []string{"a", "a", "a"}).
		Add("x", []float64{1, math.NaN(), 3}).
		Done()
	flat := Flatten(Summarize(GroupBy(tab, "g"), Mean("x"), N()))
	if got := flat.MustColumn("mean x").([]float64)[0]; got != 2 {
		t.Errorf("mean with NaN = %v; want 2 (NaN dropped)", got)
	}
	if got := flat.MustColumn("n").([]float64)[0]; got != 3 {
		t.Errorf("n = %v; want 3 (N counts NaN rows)", got)
	}
}

func TestAggAs(t *testing.T) {
	flat := Flatten(Summarize(carsTable(), Mean("hwy").As("avg")))
	if flat.Column("avg") == nil {
		t.Fatalf("renamed aggregate missing; have %v", flat.Columns())
	}
}

func TestCount(t *testing.T) {
	tab := Count(carsTable(), "class")
	classes := tab.MustColumn("class").([]string)
	ns := tab.MustColumn("n").([]float64)
	counts := map[string]float64{}
	for i, c := range classes {
		counts[c] = ns[i]
	}
	if counts["compact"] != 2 || counts["midsize"] != 1 {
		t.Errorf("Count(class) = %v", counts)
	}
}

func TestVerbsDoNotMutateInput(t *testing.T) {
	tab := carsTable()
	Arrange(tab, "-hwy")
	Select(tab, "model")
	Summarize(GroupBy(tab, "class"), Mean("hwy"))

	if got := tab.MustColumn("model").([]string)[0]; got != "civic" {
		t.Errorf("input table changed: first model = %q", got)
	}
	if len(tab.Columns()) != 4 {
		t.Errorf("input table changed: columns = %v", tab.Columns())
	}
}
