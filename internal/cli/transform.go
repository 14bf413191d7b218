// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"

	"edakit/dataset"
	"edakit/verbs"
)

// pipeline is the verb chain shared by the transform and db commands.
// Verbs apply in the fixed EDA order: filter, select, group-by,
// summarize, arrange, head.
type pipeline struct {
	filterEq  []string // col=val
	selects   []string
	groupBy   []string
	summarize []string // verb:col, e.g. "mean:price" or "n:"
	arrange   []string // col or -col
	head      int
}

func addPipelineFlags(cmd *cobra.Command, p *pipeline) {
	f := cmd.Flags()
	f.StringArrayVar(&p.filterEq, "filter-eq", nil, "keep rows where `col=value` (repeatable)")
	f.StringSliceVar(&p.selects, "select", nil, "keep only these `columns`")
	f.StringSliceVar(&p.groupBy, "group-by", nil, "group by these `columns`")
	f.StringSliceVar(&p.summarize, "summarize", nil, "aggregate as `verb:col` (mean, median, sum, min, max, sd, n)")
	f.StringSliceVar(&p.arrange, "arrange", nil, "sort by `columns`; prefix with - for descending")
	f.IntVar(&p.head, "head", 0, "keep only the first `n` rows")
}

// run applies the pipeline to an in-memory table using the verbs
// package.
func (p *pipeline) run(t *table.Table) (table.Grouping, error) {
	var g table.Grouping = t

	for _, f := range p.filterEq {
		col, val, err := splitFilterEq(f)
		if err != nil {
			return nil, err
		}
		typed, err := coerceTo(t, col, val)
		if err != nil {
			return nil, err
		}
		g = verbs.FilterEq(g, col, typed)
	}
	if len(p.selects) > 0 {
		g = verbs.Select(g, p.selects...)
	}
	if len(p.groupBy) > 0 {
		g = verbs.GroupBy(g, p.groupBy...)
	}
	if len(p.summarize) > 0 {
		aggs := make([]verbs.Agg, len(p.summarize))
		for i, s := range p.summarize {
			agg, err := parseAgg(s)
			if err != nil {
				return nil, err
			}
			aggs[i] = agg
		}
		g = verbs.Flatten(verbs.Summarize(g, aggs...))
	}
	if len(p.arrange) > 0 {
		g = verbs.Arrange(g, p.arrange...)
	}
	if p.head > 0 {
		g = verbs.Head(g, p.head)
	}
	return g, nil
}

func splitFilterEq(s string) (col, val string, err error) {
	col, val, ok := strings.Cut(s, "=")
	if !ok || col == "" {
		return "", "", fmt.Errorf("bad --filter-eq %q: want col=value", s)
	}
	return col, val, nil
}

// coerceTo converts a flag value string to the type of the named
// column so FilterEq compares like with like.
func coerceTo(t *table.Table, col, val string) (interface{}, error) {
	switch kind := dataset.ColumnKind(t, col); kind {
	case "":
		return nil, fmt.Errorf("unknown column %q (have %v)", col, t.Columns())
	case "int":
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("column %q holds integers: %w", col, err)
		}
		return n, nil
	case "float64":
		x, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q holds floats: %w", col, err)
		}
		return x, nil
	default:
		return val, nil
	}
}

func splitAgg(s string) (verb, col string, ok bool) {
	verb, col, ok = strings.Cut(s, ":")
	return
}

// parseAgg maps a verb:col flag value to a verbs aggregator.
func parseAgg(s string) (verbs.Agg, error) {
	verb, col, _ := splitAgg(s)
	switch verb {
	case "mean":
		return verbs.Mean(col), nil
	case "median":
		return verbs.Median(col), nil
	case "sum":
		return verbs.Sum(col), nil
	case "min":
		return verbs.Min(col), nil
	case "max":
		return verbs.Max(col), nil
	case "sd":
		return verbs.StdDev(col), nil
	case "n":
		return verbs.N(), nil
	}
	return verbs.Agg{}, fmt.Errorf("unknown aggregate %q: want verb:col with verb one of mean, median, sum, min, max, sd, n", s)
}

func newTransformCmd() *cobra.Command {
	var p pipeline
	cmd := &cobra.Command{
		Use:   "transform <dataset>",
		Short: "Run a verb pipeline over a dataset and print the result",
		Long: `Transform applies filter/select/group-by/summarize/arrange/head verbs
to a built-in dataset (or a CSV file) and prints the resulting table.

For example, the average departure delay per carrier, worst first:

  edakit transform flights --group-by carrier \
      --summarize mean:dep_delay,n: --arrange "-mean dep_delay"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadInput(args[0])
			if err != nil {
				return err
			}
			g, err := p.run(t)
			if err != nil {
				return err
			}
			table.Fprint(cmd.OutOrStdout(), g)
			return nil
		},
	}
	addPipelineFlags(cmd, &p)
	return cmd
}
