// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"

	"edakit/dataset"
	"edakit/verbs"
)

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the built-in example datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tROWS\tCOLUMNS")
			for _, name := range dataset.Names() {
				info, err := dataset.Describe(name)
				if err != nil {
					return err
				}
				cols := ""
				for i, c := range info.Columns {
					if i > 0 {
						cols += ", "
					}
					cols += c.Name
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", info.Name, info.Rows, cols)
			}
			return w.Flush()
		},
	}
}

func newPeekCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "peek <dataset>",
		Short: "Print the first rows of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadInput(args[0])
			if err != nil {
				return err
			}
			table.Fprint(cmd.OutOrStdout(), verbs.Head(t, n))
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "rows", "n", 10, "number of rows to print")
	return cmd
}

// loadInput resolves a dataset argument: a built-in dataset name, or a
// path to a CSV file.
func loadInput(arg string) (*table.Table, error) {
	if t, err := dataset.Load(arg); err == nil {
		return t, nil
	} else if _, statErr := os.Stat(arg); statErr != nil {
		// Not a dataset and not a file: the dataset error has
		// the list of valid names, so it is the useful one.
		return nil, err
	}
	f, err := os.Open(arg)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dataset.ReadCSV(f)
}
