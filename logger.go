// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package placesbench

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a frame is being drawn.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for placesbench and all its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// The logger is forwarded to gg as well, so renderer diagnostics
// (accelerator selection, CPU fallback) end up in the same stream.
//
// Log levels used by placesbench:
//   - [slog.LevelDebug]: per-frame diagnostics (draw errors, group counts)
//   - [slog.LevelInfo]: lifecycle events (window created, mode switched)
//   - [slog.LevelWarn]: non-fatal issues (missing canvas, resize failure)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
		gg.SetLogger(nil)
	} else {
		gg.SetLogger(l)
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call this to share one
// logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
