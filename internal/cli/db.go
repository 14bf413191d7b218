// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/mattn/go-sqlite3"

	"edakit/dbframe"
)

func newDBCmd() *cobra.Command {
	var (
		p         pipeline
		driver    string
		dsn       string
		showQuery bool
	)
	cmd := &cobra.Command{
		Use:   "db <dataset>",
		Short: "Load a dataset into a database and query it lazily",
		Long: `Db copies a dataset into a SQL database and runs the verb pipeline as
a single lazily-built query: nothing touches the database until the
result is collected, and --show-query prints the translated SQL instead
of running it.

By default the database is an in-memory SQLite; point --driver/--dsn at
duckdb or at a file to keep the data around:

  edakit db flights --group-by carrier --summarize mean:dep_delay,n: \
      --arrange "-mean_dep_delay" --show-query`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)
			if driver == "" {
				driver = cfg.DB.Driver
			}
			if dsn == "" {
				dsn = cfg.DB.DSN
			}

			t, err := loadInput(args[0])
			if err != nil {
				return err
			}

			db, err := dbframe.Open(driver, dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			logger.Debug("copying dataset", "dataset", args[0], "driver", driver, "rows", t.Len())
			if err := dbframe.CopyTo(ctx, db, args[0], t); err != nil {
				return err
			}

			lazy, err := p.lazy(dbframe.Tbl(db, args[0]), t)
			if err != nil {
				return err
			}

			if showQuery {
				fmt.Fprintln(cmd.OutOrStdout(), lazy.ShowQuery())
				return nil
			}

			logger.Debug("collecting", "query", lazy.ShowQuery())
			res, err := lazy.Collect(ctx)
			if err != nil {
				return err
			}
			table.Fprint(cmd.OutOrStdout(), res)
			return nil
		},
	}

	addPipelineFlags(cmd, &p)
	cmd.Flags().StringVar(&driver, "driver", "", `database driver ("sqlite3" or "duckdb")`)
	cmd.Flags().StringVar(&dsn, "dsn", "", "database DSN (default in-memory)")
	cmd.Flags().BoolVar(&showQuery, "show-query", false, "print the translated SQL and exit")
	return cmd
}

// lazy translates the pipeline onto a lazy database table. The same
// flags drive the in-memory verbs; only the summarize aliases differ
// (SQL aliases use underscores: mean_dep_delay, not "mean dep_delay").
// The source table is consulted only to coerce filter values to the
// column type before they become placeholder arguments.
func (p *pipeline) lazy(l *dbframe.Lazy, t *table.Table) (*dbframe.Lazy, error) {
	for _, f := range p.filterEq {
		col, val, err := splitFilterEq(f)
		if err != nil {
			return nil, err
		}
		typed, err := coerceTo(t, col, val)
		if err != nil {
			return nil, err
		}
		l = l.Filter(fmt.Sprintf("%q = ?", col), typed)
	}
	if len(p.selects) > 0 {
		l = l.Select(p.selects...)
	}
	if len(p.groupBy) > 0 {
		l = l.GroupBy(p.groupBy...)
	}
	if len(p.summarize) > 0 {
		aggs := make([]dbframe.AggExpr, len(p.summarize))
		for i, s := range p.summarize {
			agg, err := parseSQLAgg(s)
			if err != nil {
				return nil, err
			}
			aggs[i] = agg
		}
		l = l.Summarize(aggs...)
	}
	if len(p.arrange) > 0 {
		l = l.Arrange(p.arrange...)
	}
	if p.head > 0 {
		l = l.Head(p.head)
	}
	return l, nil
}

func parseSQLAgg(s string) (dbframe.AggExpr, error) {
	verb, col, _ := splitAgg(s)
	switch verb {
	case "mean":
		return dbframe.Mean(col), nil
	case "sum":
		return dbframe.Sum(col), nil
	case "min":
		return dbframe.Min(col), nil
	case "max":
		return dbframe.Max(col), nil
	case "n":
		return dbframe.N(), nil
	}
	return dbframe.AggExpr{}, fmt.Errorf("unknown SQL aggregate %q: want verb:col with verb one of mean, sum, min, max, n", s)
}
