// Package logging assembles structured slog loggers and formatting helpers used
// across vidscope.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so analysis and metadata code
// can tag log lines with the request correlation id and operation name. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
