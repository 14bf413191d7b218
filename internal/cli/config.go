// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the defaults a user can set once instead of repeating
// them as flags. Flags always win over config values.
type Config struct {
	Plot struct {
		// Width and Height are the default SVG dimensions per
		// facet, in pixels.
		Width  int `toml:"width"`
		Height int `toml:"height"`
		// Bins is the default histogram bin count.
		Bins int `toml:"bins"`
		// Viewer is the command used by plot --open, e.g.
		// "firefox" or "open -a Preview". It is parsed with
		// shell quoting rules.
		Viewer string `toml:"viewer"`
	} `toml:"plot"`
	DB struct {
		// Driver and DSN are the default database for the db
		// command.
		Driver string `toml:"driver"`
		DSN    string `toml:"dsn"`
	} `toml:"db"`
}

func defaultConfig() Config {
	var c Config
	c.Plot.Width = 800
	c.Plot.Height = 600
	c.Plot.Bins = 30
	c.DB.Driver = "sqlite3"
	c.DB.DSN = ":memory:"
	return c
}

// loadConfig reads the TOML config at path. An empty path falls back
// to $XDG_CONFIG_HOME/edakit/config.toml (or ~/.config/...), and a
// missing default file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := os.UserConfigDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "edakit", "config.toml")
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

type configKey struct{}

func withConfig(ctx context.Context, c Config) context.Context {
	return context.WithValue(ctx, configKey{}, c)
}

func configFromContext(ctx context.Context) Config {
	if c, ok := ctx.Value(configKey{}).(Config); ok {
		return c
	}
	return defaultConfig()
}
