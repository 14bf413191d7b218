// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"edakit/dataset"
	"edakit/vis"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve plots of the built-in datasets over HTTP",
		Long: `Serve starts an HTTP server that renders plots on demand, so a browser
can be used as the plot viewer:

  GET /datasets                 dataset descriptions as JSON
  GET /plot/{dataset}?kind=...  an SVG; query params mirror the plot flags
                                (kind, x, y, color, facet_x, facet_y,
                                bins, bin_width, width, height)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg := configFromContext(cmd.Context())

			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(cfg),
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				<-cmd.Context().Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()

			logger.Info("serving plots", "addr", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	return cmd
}

func newRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/datasets", func(w http.ResponseWriter, req *http.Request) {
		var infos []dataset.Info
		for _, name := range dataset.Names() {
			info, err := dataset.Describe(name)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			infos = append(infos, info)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(infos)
	})

	r.Get("/plot/{dataset}", func(w http.ResponseWriter, req *http.Request) {
		t, err := dataset.Load(chi.URLParam(req, "dataset"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		q := req.URL.Query()
		spec := vis.Spec{
			Kind:    q.Get("kind"),
			X:       q.Get("x"),
			Y:       q.Get("y"),
			Color:   q.Get("color"),
			FacetX:  q.Get("facet_x"),
			FacetY:  q.Get("facet_y"),
			DropNaN: true,
		}
		bins, err := intParam(q, "bins", cfg.Plot.Bins)
		if err == nil {
			spec.Bins = bins
			spec.BinWidth, err = floatParam(q, "bin_width")
		}
		var width, height int
		if err == nil {
			width, err = intParam(q, "width", cfg.Plot.Width)
		}
		if err == nil {
			height, err = intParam(q, "height", cfg.Plot.Height)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var buf bytes.Buffer
		if _, err := vis.Render(&buf, t, spec, width, height); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write(buf.Bytes())
	})

	return r
}

// intParam parses an integer query parameter, using def when the
// parameter is absent.
func intParam(q url.Values, name string, def int) (int, error) {
	s := q.Get(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: want an integer", name, s)
	}
	return n, nil
}

// floatParam parses a float query parameter; absent means zero.
func floatParam(q url.Values, name string) (float64, error) {
	s := q.Get(name)
	if s == "" {
		return 0, nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: want a number", name, s)
	}
	return x, nil
}
