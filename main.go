// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command edakit is a toolkit for exploratory data analysis: built-in
// example datasets, dplyr-style transformation verbs, declarative SVG
// plots, and lazy SQL queries against SQLite or DuckDB.
package main

import (
	"os"

	"edakit/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
