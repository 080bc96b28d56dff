// Package logging assembles structured slog loggers and formatting helpers used
// across vidgen.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code tags log lines
// with run IDs and stage names. A no-op logger is provided for tests and for
// wiring code that cannot fail.
package logging
