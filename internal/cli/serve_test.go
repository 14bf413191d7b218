// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"edakit/dataset"
)

func serveGet(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	newRouter(defaultConfig()).ServeHTTP(rec, req)
	return rec
}

func TestServeDatasets(t *testing.T) {
	rec := serveGet(t, "/datasets")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /datasets = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var infos []dataset.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatal(err)
	}
	if len(infos) != len(dataset.Names()) {
		t.Errorf("got %d datasets; want %d", len(infos), len(dataset.Names()))
	}
}

func TestServePlot(t *testing.T) {
	rec := serveGet(t, "/plot/faithful?kind=histogram&x=eruptions")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /plot/faithful = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Errorf("body does not look like SVG: %.80q", rec.Body.String())
	}
}

func TestServePlotUnknownDataset(t *testing.T) {
	rec := serveGet(t, "/plot/nope?kind=histogram&x=x")
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /plot/nope = %d; want 404", rec.Code)
	}
}

func TestServePlotBadSpec(t *testing.T) {
	rec := serveGet(t, "/plot/faithful?kind=pie&x=eruptions")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad kind = %d; want 400", rec.Code)
	}

	rec = serveGet(t, "/plot/faithful?kind=scatter&x=eruptions")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("scatter without y = %d; want 400", rec.Code)
	}
}

func TestServePlotBadParams(t *testing.T) {
	paths := []string{
		"/plot/faithful?kind=histogram&x=eruptions&bins=abc",
		"/plot/faithful?kind=histogram&x=eruptions&bin_width=wide",
		"/plot/faithful?kind=histogram&x=eruptions&width=1.5x",
		"/plot/faithful?kind=histogram&x=eruptions&height=tall",
	}
	for _, path := range paths {
		if rec := serveGet(t, path); rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s = %d; want 400", path, rec.Code)
		}
	}
}
