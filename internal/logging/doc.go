// Package logging assembles structured slog loggers and formatting helpers used
// across beadcolors.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and tags every line of a conversion run with its run id. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape and routing.
package logging
