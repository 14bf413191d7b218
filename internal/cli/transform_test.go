// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"

	"edakit/dataset"
	"edakit/verbs"
)

func TestSplitFilterEq(t *testing.T) {
	col, val, err := splitFilterEq("class=compact")
	if err != nil || col != "class" || val != "compact" {
		t.Errorf("splitFilterEq(class=compact) = %q, %q, %v", col, val, err)
	}

	// Values may contain "=".
	_, val, err = splitFilterEq("trans=auto(l5)=x")
	if err != nil || val != "auto(l5)=x" {
		t.Errorf("splitFilterEq kept splitting: %q, %v", val, err)
	}

	for _, bad := range []string{"class", "=compact", ""} {
		if _, _, err := splitFilterEq(bad); err == nil {
			t.Errorf("splitFilterEq(%q) did not fail", bad)
		}
	}
}

func TestCoerceTo(t *testing.T) {
	tab := new(table.Builder).
		Add("cyl", []int{4, 6}).
		Add("displ", []float64{1.8, 2.0}).
		Add("class", []string{"compact", "midsize"}).
		Done()

	if v, err := coerceTo(tab, "cyl", "6"); err != nil || v != 6 {
		t.Errorf("coerceTo(cyl, 6) = %v (%T), %v; want int 6", v, v, err)
	}
	if v, err := coerceTo(tab, "displ", "2.0"); err != nil || v != 2.0 {
		t.Errorf("coerceTo(displ, 2.0) = %v (%T), %v; want float64 2", v, v, err)
	}
	if v, err := coerceTo(tab, "class", "compact"); err != nil || v != "compact" {
		t.Errorf("coerceTo(class, compact) = %v, %v", v, err)
	}
	if _, err := coerceTo(tab, "cyl", "six"); err == nil {
		t.Error("coerceTo(cyl, six) did not fail")
	}
	if _, err := coerceTo(tab, "nope", "1"); err == nil {
		t.Error("coerceTo on unknown column did not fail")
	}
}

func TestParseAgg(t *testing.T) {
	agg, err := parseAgg("mean:price")
	if err != nil {
		t.Fatal(err)
	}
	if got := agg.Name(); got != "mean price" {
		t.Errorf("parseAgg(mean:price).Name() = %q; want %q", got, "mean price")
	}

	agg, err = parseAgg("n:")
	if err != nil {
		t.Fatal(err)
	}
	if got := agg.Name(); got != "n" {
		t.Errorf("parseAgg(n:).Name() = %q; want n", got)
	}

	if _, err := parseAgg("mode:price"); err == nil {
		t.Error("parseAgg(mode:price) did not fail")
	}
}

func TestPipelineRun(t *testing.T) {
	mpg, err := dataset.Load("mpg")
	if err != nil {
		t.Fatal(err)
	}

	p := pipeline{
		filterEq:  []string{"cyl=4"},
		groupBy:   []string{"class"},
		summarize: []string{"mean:hwy", "n:"},
		arrange:   []string{"-mean hwy"},
		head:      3,
	}
	g, err := p.run(mpg)
	if err != nil {
		t.Fatal(err)
	}
	flat := verbs.Flatten(g)
	if flat.Len() == 0 || flat.Len() > 3 {
		t.Fatalf("pipeline kept %d rows; want 1..3", flat.Len())
	}

	means := flat.MustColumn("mean hwy").([]float64)
	for i := 1; i < len(means); i++ {
		if means[i] > means[i-1] {
			t.Errorf("not sorted descending: %v", means)
		}
	}
	for _, n := range flat.MustColumn("n").([]float64) {
		if n < 1 {
			t.Errorf("empty group in summarize output: n = %v", n)
		}
	}
}

func TestPipelineRunErrors(t *testing.T) {
	mpg, err := dataset.Load("mpg")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		p    pipeline
		want string
	}{
		{"bad filter", pipeline{filterEq: []string{"class"}}, "want col=value"},
		{"bad column", pipeline{filterEq: []string{"nope=1"}}, "unknown column"},
		{"bad value", pipeline{filterEq: []string{"cyl=six"}}, "holds integers"},
		{"bad aggregate", pipeline{summarize: []string{"mode:hwy"}}, "unknown aggregate"},
	}
	for _, test := range tests {
		_, err := test.p.run(mpg)
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: run error = %v; want %q", test.name, err, test.want)
		}
	}
}
