// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"io"

	charmlog "github.com/charmbracelet/log"
)

// newLogger creates a logger that writes to w, filtering messages at
// the given level.
func newLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}

type loggerKey struct{}

// withLogger attaches a logger to the context.
func withLogger(ctx context.Context, l *charmlog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the context's logger, or a discarding
// logger if none was attached (as in tests that call command helpers
// directly).
func loggerFromContext(ctx context.Context) *charmlog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*charmlog.Logger); ok {
		return l
	}
	return charmlog.New(io.Discard)
}
