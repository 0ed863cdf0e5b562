// Package testutil provides shared helpers for tests.
package testutil

import (
	"io"
	"log/slog"
)

// SilentLogger returns a logger that discards all records. Useful for
// exercising code paths that log without polluting test output.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
